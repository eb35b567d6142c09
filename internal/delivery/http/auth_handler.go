package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"agenthub/internal/delivery/http/dto"
	"agenthub/internal/domain"
)

// minPasswordLength is the shortest password accepted at registration
const minPasswordLength = 8

// TokenIssuer signs bearer tokens for authenticated users
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}

// AuthHandler handles account registration and login
type AuthHandler struct {
	userRepo domain.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo domain.UserRepository, tokens TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login exchanges email and password for a bearer token
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return BadRequestResponse(c, "Email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), repositoryTimeout)
	defer cancel()

	user, err := h.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return UnauthorizedResponse(c, "Invalid credentials")
	}
	if err != nil {
		return InternalServerErrorResponse(c, h.logger, "error loading user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return InternalServerErrorResponse(c, h.logger, "error issuing token", err)
	}

	return JSONResponse(c, dto.LoginResponse{
		Token: token,
		User:  user,
	})
}

// Register creates a standard user account
// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return BadRequestResponse(c, "Email and password are required")
	}

	if len(req.Password) < minPasswordLength {
		return BadRequestResponse(c, "Password must be at least 8 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return InternalServerErrorResponse(c, h.logger, "error hashing password", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), repositoryTimeout)
	defer cancel()

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return ConflictResponse(c, "Email already registered")
		}
		return InternalServerErrorResponse(c, h.logger, "error creating user", err)
	}

	return CreatedResponse(c, dto.UserResponse{User: user})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
