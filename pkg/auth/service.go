package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tjcsl/director/pkg/database/models"
	"github.com/tjcsl/director/pkg/database/repositories"
)

var (
	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when attempting to create a user that already exists
	ErrUserExists = errors.New("user already exists")
	// ErrUserInactive is returned when attempting to authenticate with an inactive user account
	ErrUserInactive = errors.New("user account is inactive")
)

// Service provides authentication operations including login, user creation, and token validation
type Service struct {
	userRepo   *repositories.UserRepository
	jwtManager *JWTManager
}

// NewService creates a new authentication service with the provided repositories and JWT manager
func NewService(userRepo *repositories.UserRepository, jwtManager *JWTManager) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginRequest represents the data required for user authentication
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse contains the authentication token and user information returned after successful login
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

// UserInfo represents basic user information returned in authentication responses
type UserInfo struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	IsSuperuser bool      `json:"is_superuser"`
}

// CreateUserRequest represents the data required to create a new user account
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name"`
	IsSuperuser bool   `json:"is_superuser"`
	IsService   bool   `json:"is_service"`
}

// Login authenticates a user with username/password and returns a JWT token if successful
func (s *Service) Login(req *LoginRequest) (*LoginResponse, error) {
	if req == nil {
		return nil, errors.New("login request cannot be nil")
	}
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug().Str("username", req.Username).Msg("user not found")
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Str("username", req.Username).Msg("failed to get user")
		return nil, err
	}

	if !user.IsActive {
		log.Debug().Str("username", req.Username).Msg("user is inactive")
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(req.Password) {
		log.Debug().Str("username", req.Username).Msg("invalid password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user.ID, user.Username, user.IsSuperuser)
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("failed to generate token")
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtManager.tokenDuration),
		User: UserInfo{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			FullName:    user.FullName,
			IsSuperuser: user.IsSuperuser,
		},
	}, nil
}

// CreateUser creates a new user account with the provided information
func (s *Service) CreateUser(req *CreateUserRequest) (*models.User, error) {
	if req == nil {
		return nil, errors.New("create user request cannot be nil")
	}
	// Check if user already exists
	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, ErrUserExists
	}

	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, ErrUserExists
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		IsSuperuser: req.IsSuperuser,
		IsService:   req.IsService,
		IsActive:    true,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by their ID
func (s *Service) GetUser(userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// ValidateToken verifies a JWT token and returns the parsed claims if valid
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.jwtManager.Verify(tokenString)
}
