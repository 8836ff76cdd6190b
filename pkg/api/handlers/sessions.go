package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tjcsl/director/pkg/auth"
)

// SessionHandlers contains handlers for authentication endpoints
type SessionHandlers struct {
	authSvc *auth.Service
}

// NewSessionHandlers creates a new SessionHandlers instance
func NewSessionHandlers(authSvc *auth.Service) *SessionHandlers {
	return &SessionHandlers{authSvc: authSvc}
}

// Login handles POST /api/v1/sessions
func (h *SessionHandlers) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.authSvc.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		case errors.Is(err, auth.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{"error": "User account is inactive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}
