package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tjcsl/director/pkg/api/types"
	"github.com/tjcsl/director/pkg/auth"
	"github.com/tjcsl/director/pkg/database/repositories"
)

// UserHandlers contains handlers for user endpoints
type UserHandlers struct {
	userRepo *repositories.UserRepository
	authSvc  *auth.Service
}

// NewUserHandlers creates a new UserHandlers instance
func NewUserHandlers(userRepo *repositories.UserRepository, authSvc *auth.Service) *UserHandlers {
	return &UserHandlers{userRepo: userRepo, authSvc: authSvc}
}

// GetCurrentUser handles GET /api/v1/users/me
func (h *UserHandlers) GetCurrentUser(c *gin.Context) {
	claims, ok := auth.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.userRepo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /api/v1/users (superuser only)
func (h *UserHandlers) ListUsers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("page_size", "25"))
	if err != nil || limit < 1 {
		limit = 25
	}
	if limit > 100 {
		limit = 100 // Maximum page size
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	offset := (page - 1) * limit

	totalCount, err := h.userRepo.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	users, err := h.userRepo.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	c.JSON(http.StatusOK, types.NewPage(users, page, limit, totalCount))
}

// CreateUser handles POST /api/v1/users (superuser only)
func (h *UserHandlers) CreateUser(c *gin.Context) {
	var req auth.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.authSvc.CreateUser(&req)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with username or email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}
