package unit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tjcsl/director/pkg/api"
	"github.com/tjcsl/director/pkg/auth"
	"github.com/tjcsl/director/pkg/config"
	"github.com/tjcsl/director/pkg/database"
	"github.com/tjcsl/director/pkg/database/models"
	"github.com/tjcsl/director/pkg/database/repositories"
)

func setupTestAPIServer(t *testing.T) (*api.Server, *database.DB, *auth.JWTManager) {
	// Create in-memory SQLite database
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Auto-migrate the schema
	err = gormDB.AutoMigrate(database.Models()...)
	require.NoError(t, err)

	db := &database.DB{DB: gormDB}

	cfg := &config.Config{
		API: config.APIConfig{Port: 8080},
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret",
			TokenExpiry: time.Hour,
		},
		Log: config.LogConfig{Level: "error"},
	}

	userRepo := repositories.NewUserRepository(gormDB)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	authSvc := auth.NewService(userRepo, jwtManager)

	server := api.NewServer(cfg, db, authSvc, jwtManager)

	return server, db, jwtManager
}

// createTestUser creates a user and returns it together with a bearer token.
func createTestUser(t *testing.T, db *database.DB, jwtManager *auth.JWTManager, username string, superuser bool) (*models.User, string) {
	user := &models.User{
		Username:    username,
		Email:       username + "@example.com",
		FullName:    "Test User " + username,
		IsSuperuser: superuser,
		IsActive:    true,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, repositories.NewUserRepository(db.DB).Create(user))

	token, err := jwtManager.Generate(user.ID, user.Username, user.IsSuperuser)
	require.NoError(t, err)

	return user, token
}

func doJSON(t *testing.T, server *api.Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	server.GetRouter().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	server, _, _ := setupTestAPIServer(t)

	w := doJSON(t, server, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin(t *testing.T) {
	server, db, jwtManager := setupTestAPIServer(t)
	_, _ = createTestUser(t, db, jwtManager, "alice", false)

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(t, server, "POST", "/api/v1/sessions", "", map[string]string{
			"username": "alice",
			"password": "password123",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp auth.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice", resp.User.Username)
		assert.False(t, resp.User.IsSuperuser)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, server, "POST", "/api/v1/sessions", "", map[string]string{
			"username": "alice",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(t, server, "POST", "/api/v1/sessions", "", map[string]string{
			"username": "alice",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInactiveUserCannotLogin(t *testing.T) {
	server, db, _ := setupTestAPIServer(t)

	userRepo := repositories.NewUserRepository(db.DB)

	user := &models.User{
		Username: "disabled",
		Email:    "disabled@example.com",
		IsActive: false,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, userRepo.Create(user))

	// The flag must survive the round trip
	got, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	w := doJSON(t, server, "POST", "/api/v1/sessions", "", map[string]string{
		"username": "disabled",
		"password": "password123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthenticationRequired(t *testing.T) {
	server, _, _ := setupTestAPIServer(t)

	w := doJSON(t, server, "GET", "/api/v1/sites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, server, "GET", "/api/v1/sites", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUser(t *testing.T) {
	server, db, jwtManager := setupTestAPIServer(t)
	user, token := createTestUser(t, db, jwtManager, "bob", false)

	w := doJSON(t, server, "GET", "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "bob", got.Username)
}

func TestUserManagementRequiresSuperuser(t *testing.T) {
	server, db, jwtManager := setupTestAPIServer(t)
	_, userToken := createTestUser(t, db, jwtManager, "plain", false)
	_, adminToken := createTestUser(t, db, jwtManager, "admin", true)

	w := doJSON(t, server, "GET", "/api/v1/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, server, "GET", "/api/v1/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, "POST", "/api/v1/users", adminToken, map[string]interface{}{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}
