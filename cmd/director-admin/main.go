// director-admin is the operator CLI for managing users and the image and
// database host catalogs without going through the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tjcsl/director/pkg/auth"
	"github.com/tjcsl/director/pkg/config"
	"github.com/tjcsl/director/pkg/database"
	"github.com/tjcsl/director/pkg/database/models"
	"github.com/tjcsl/director/pkg/database/repositories"
	"github.com/tjcsl/director/pkg/forms"
	"github.com/tjcsl/director/pkg/logging"
)

var (
	createFullName  string
	createSuperuser bool
	createService   bool
	imageFriendly   string
	imageHidden     bool
	dbHostPort      int
)

func main() {
	root := &cobra.Command{
		Use:           "director-admin",
		Short:         "Administer the Director sites platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	createUserCmd := &cobra.Command{
		Use:   "create-user [username] [email] [password]",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(3),
		RunE:  runCreateUser,
	}
	createUserCmd.Flags().StringVar(&createFullName, "full-name", "", "full name of the user")
	createUserCmd.Flags().BoolVar(&createSuperuser, "superuser", false, "grant administrator privileges")
	createUserCmd.Flags().BoolVar(&createService, "service", false, "mark as a service account")

	setSuperuserCmd := &cobra.Command{
		Use:   "set-superuser [username] [true|false]",
		Short: "Grant or revoke administrator privileges",
		Args:  cobra.ExactArgs(2),
		RunE:  runSetSuperuser,
	}

	listUsersCmd := &cobra.Command{
		Use:   "list-users",
		Short: "List user accounts",
		Args:  cobra.NoArgs,
		RunE:  runListUsers,
	}

	addImageCmd := &cobra.Command{
		Use:   "add-image [name]",
		Short: "Add a container image to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE:  runAddImage,
	}
	addImageCmd.Flags().StringVar(&imageFriendly, "friendly-name", "", "display name shown in the selection form")
	addImageCmd.Flags().BoolVar(&imageHidden, "hidden", false, "keep the image out of the selection form")

	addDBHostCmd := &cobra.Command{
		Use:   "add-dbhost [postgres|mysql] [hostname]",
		Short: "Add a database host to the catalog",
		Args:  cobra.ExactArgs(2),
		RunE:  runAddDBHost,
	}
	addDBHostCmd.Flags().IntVar(&dbHostPort, "port", 0, "port the DBMS listens on (defaults per DBMS)")

	root.AddCommand(createUserCmd, setSuperuserCmd, listUsersCmd, addImageCmd, addDBHostCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openDB() (*config.Config, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logging.Setup(cfg.Log.Level, "console")

	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return cfg, db, nil
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := repositories.NewUserRepository(db.DB)

	if _, err := userRepo.GetByUsername(args[0]); err == nil {
		return auth.ErrUserExists
	}
	if _, err := userRepo.GetByEmail(args[1]); err == nil {
		return auth.ErrUserExists
	}

	user := &models.User{
		Username:    args[0],
		Email:       args[1],
		FullName:    createFullName,
		IsSuperuser: createSuperuser,
		IsService:   createService,
		IsActive:    true,
	}
	if err := user.SetPassword(args[2]); err != nil {
		return err
	}
	if err := userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User created successfully!\n")
	fmt.Printf("ID: %s\n", user.ID)
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Email: %s\n", user.Email)
	return nil
}

func runSetSuperuser(cmd *cobra.Command, args []string) error {
	if args[1] != "true" && args[1] != "false" {
		return fmt.Errorf("second argument must be 'true' or 'false', got %q", args[1])
	}

	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := repositories.NewUserRepository(db.DB)

	user, err := userRepo.GetByUsername(args[0])
	if err != nil {
		return fmt.Errorf("failed to find user %s: %w", args[0], err)
	}

	user.IsSuperuser = args[1] == "true"
	if err := userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	fmt.Printf("User %s superuser=%v\n", user.Username, user.IsSuperuser)
	return nil
}

func runListUsers(cmd *cobra.Command, args []string) error {
	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := repositories.NewUserRepository(db.DB)

	users, err := userRepo.List(100, 0)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	fmt.Printf("Found %d users:\n", len(users))
	for _, user := range users {
		flags := ""
		if user.IsSuperuser {
			flags += " [superuser]"
		}
		if user.IsService {
			flags += " [service]"
		}
		fmt.Printf("- %s (%s) - %s%s\n", user.Username, user.Email, user.FullName, flags)
	}
	return nil
}

func runAddImage(cmd *cobra.Command, args []string) error {
	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	imageRepo := repositories.NewDockerImageRepository(db.DB)

	friendly := imageFriendly
	if friendly == "" {
		friendly = args[0]
	}

	image := &models.DockerImage{
		Name:          args[0],
		FriendlyName:  friendly,
		IsUserVisible: !imageHidden,
	}
	if err := imageRepo.Create(image); err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}

	fmt.Printf("Image %s (%s) created\n", image.Name, image.FriendlyName)
	return nil
}

func runAddDBHost(cmd *cobra.Command, args []string) error {
	dbms := args[0]
	if dbms != models.DBMSPostgres && dbms != models.DBMSMySQL {
		return fmt.Errorf("DBMS must be '%s' or '%s', got %q", models.DBMSPostgres, models.DBMSMySQL, dbms)
	}

	// Hostnames share the custom-domain character rules
	if err := forms.ValidateDomain(args[1]); err != nil {
		return fmt.Errorf("invalid hostname: %w", err)
	}

	port := dbHostPort
	if port == 0 {
		if dbms == models.DBMSPostgres {
			port = 5432
		} else {
			port = 3306
		}
	}

	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	hostRepo := repositories.NewDatabaseHostRepository(db.DB)

	host := &models.DatabaseHost{Hostname: args[1], Port: port, DBMS: dbms}
	if err := hostRepo.Create(host); err != nil {
		return fmt.Errorf("failed to create database host: %w", err)
	}

	fmt.Printf("Database host %s added\n", host.Label())
	return nil
}
