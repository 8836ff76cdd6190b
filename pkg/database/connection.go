package database

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tjcsl/director/pkg/config"
	"github.com/tjcsl/director/pkg/database/models"
)

type DB struct {
	*gorm.DB
}

func NewConnection(cfg *config.Config) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	dsn := buildDSN(cfg.Database.Host, cfg.Database.Port, cfg.Database.Username, cfg.Database.Password, cfg.Database.Database, cfg.Database.SSLMode)

	log.Debug().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("database", cfg.Database.Database).
		Str("sslmode", cfg.Database.SSLMode).
		Msg("Connecting to database")

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	return &DB{db}, nil
}

// Models returns every model registered for migration, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Site{},
		&models.Domain{},
		&models.DatabaseHost{},
		&models.SiteDatabase{},
		&models.DockerImage{},
		&models.DockerImageExtraPackage{},
		&models.ResourceLimits{},
	}
}

func (db *DB) AutoMigrate() error {
	log.Info().Msg("Running database auto-migration...")

	if err := db.DB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	log.Info().Msg("Database auto-migration completed successfully")
	return nil
}

// BootstrapDefaultData seeds the image and database host catalogs if they
// are empty. Idempotent; safe to run on every startup.
func (db *DB) BootstrapDefaultData() error {
	log.Info().Msg("Bootstrapping default data...")

	return db.DB.Transaction(func(tx *gorm.DB) error {
		defaultImages := []models.DockerImage{
			{Name: "director/static", FriendlyName: "Static (nginx)", IsUserVisible: true},
			{Name: "director/node", FriendlyName: "Node.js", IsUserVisible: true,
				RunScriptTemplate: "#!/bin/sh\nnode server.js\n"},
			{Name: "director/python", FriendlyName: "Python 3", IsUserVisible: true,
				RunScriptTemplate: "#!/bin/sh\nexec python3 server.py\n"},
			{Name: "director/base", FriendlyName: "Base image", IsUserVisible: false},
		}
		for i := range defaultImages {
			image := defaultImages[i]
			result := tx.Where("name = ?", image.Name).FirstOrCreate(&image)
			if result.Error != nil {
				return fmt.Errorf("failed to seed image %s: %w", image.Name, result.Error)
			}
		}

		defaultHosts := []models.DatabaseHost{
			{Hostname: "postgres1.director.local", Port: 5432, DBMS: models.DBMSPostgres},
			{Hostname: "mysql1.director.local", Port: 3306, DBMS: models.DBMSMySQL},
		}
		for i := range defaultHosts {
			host := defaultHosts[i]
			result := tx.Where("hostname = ? AND port = ?", host.Hostname, host.Port).FirstOrCreate(&host)
			if result.Error != nil {
				return fmt.Errorf("failed to seed database host %s: %w", host.Hostname, result.Error)
			}
		}

		log.Info().Msg("Default data bootstrap completed successfully")
		return nil
	})
}

// BootstrapInitialAdmin creates an initial superuser if configured, using a
// concurrency-safe approach.
func (db *DB) BootstrapInitialAdmin(cfg *config.Config) error {
	if !cfg.InitialAdmin.Enabled {
		log.Info().Msg("Initial admin not enabled, skipping creation")
		return nil
	}

	if cfg.InitialAdmin.Username == "" {
		log.Info().Msg("Initial admin username not configured, skipping creation")
		return nil
	}

	if cfg.InitialAdmin.Password == "" {
		return fmt.Errorf("initial admin password not configured - check secret loading or environment variables")
	}

	user := &models.User{
		Username:    cfg.InitialAdmin.Username,
		Email:       cfg.InitialAdmin.Email,
		FullName:    cfg.InitialAdmin.FullName,
		IsSuperuser: true,
		IsActive:    true,
	}

	if err := user.SetPassword(cfg.InitialAdmin.Password); err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		// Create only if no superuser exists yet
		var existingAdminCount int64
		if err := tx.Model(&models.User{}).Where("is_superuser = ?", true).Count(&existingAdminCount).Error; err != nil {
			return fmt.Errorf("failed to count existing superusers: %w", err)
		}

		if existingAdminCount > 0 {
			log.Info().Msg("Superuser already exists, skipping initial admin creation")
			return nil
		}

		result := tx.Where("username = ?", user.Username).FirstOrCreate(user)
		if result.Error != nil {
			return fmt.Errorf("failed to create initial admin user: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			// User exists but is not a superuser; promote it
			if err := tx.Model(user).Update("is_superuser", true).Error; err != nil {
				return fmt.Errorf("failed to promote existing user: %w", err)
			}
			log.Info().Str("username", user.Username).Msg("Existing user promoted to superuser")
		} else {
			log.Info().Str("username", user.Username).Str("id", user.ID.String()).Msg("Initial admin user created")
		}

		return nil
	})
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// IsNotFound reports whether the error is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// buildDSN constructs a PostgreSQL DSN using GORM recommended format
// DSN format: host=localhost user=gorm password=gorm dbname=gorm port=5432 sslmode=disable
func buildDSN(host string, port int, username, password, database, sslmode string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		host, username, password, database, port, sslmode)
}
