package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned for every bearer token failure
var ErrUnauthorized = errors.New("unauthorized")

const bearerPrefix = "Bearer "

// Context keys set by AuthMiddleware
const (
	contextUserID = "user_id"
	contextEmail  = "email"
)

// JWTClaims represents the JWT token claims
type JWTClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenVerifier checks and issues HMAC-signed bearer tokens
type TokenVerifier struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenVerifier creates a verifier for the given shared secret
func NewTokenVerifier(secret string, ttl time.Duration) *TokenVerifier {
	v := &TokenVerifier{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	v.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithTimeFunc(func() time.Time { return v.now() }),
	)
	return v
}

// Issue signs a token for the user that expires after the configured TTL
func (v *TokenVerifier) Issue(userID uuid.UUID, email string) (string, error) {
	now := v.now()
	claims := &JWTClaims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify authenticates an Authorization header value. All failures return
// ErrUnauthorized so callers cannot tell them apart.
func (v *TokenVerifier) Verify(header string) (*JWTClaims, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, ErrUnauthorized
	}

	claims := &JWTClaims{}
	token, err := v.parser.ParseWithClaims(header[len(bearerPrefix):], claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	if claims.UserID == "" || claims.Email == "" {
		return nil, ErrUnauthorized
	}
	// Ids in this schema are UUIDs. Tokens carrying any other id format, such
	// as cuid ids minted by the dashboard, are rejected even when their
	// signature matches.
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrUnauthorized
	}

	return claims, nil
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's identity in the echo context
func (v *TokenVerifier) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := v.Verify(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}

		c.Set(contextUserID, uuid.MustParse(claims.UserID))
		c.Set(contextEmail, claims.Email)

		return next(c)
	}
}

// GetUserID extracts user ID from echo context
func GetUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(contextUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("user_id not found in context")
	}
	return userID, nil
}

// GetEmail extracts the caller's email from echo context
func GetEmail(c echo.Context) (string, error) {
	email, ok := c.Get(contextEmail).(string)
	if !ok {
		return "", fmt.Errorf("email not found in context")
	}
	return email, nil
}
