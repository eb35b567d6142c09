package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenthub/configs"
)

const testSecret = "test-secret"

func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestTokenVerifier_IssueAndVerify(t *testing.T) {
	verifier := NewTokenVerifier(testSecret, time.Hour)
	userID := uuid.New()

	token, err := verifier.Issue(userID, "trader@example.com")
	require.NoError(t, err)

	claims, err := verifier.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "trader@example.com", claims.Email)
}

func TestTokenVerifier_AcceptsTokenWithoutExpiry(t *testing.T) {
	verifier := NewTokenVerifier(testSecret, time.Hour)
	token := signClaims(t, jwt.SigningMethodHS512, []byte(testSecret), &JWTClaims{
		UserID: uuid.NewString(),
		Email:  "trader@example.com",
	})

	_, err := verifier.Verify("Bearer " + token)
	assert.NoError(t, err)
}

func TestTokenVerifier_FallbackSecretRequiresUUIDUserID(t *testing.T) {
	verifier := NewTokenVerifier(configs.FallbackJWTSecret, time.Hour)
	secret := []byte(configs.FallbackJWTSecret)

	uuidToken := signClaims(t, jwt.SigningMethodHS256, secret, &JWTClaims{
		UserID: uuid.NewString(),
		Email:  "gabriel@gmail.com",
	})
	_, err := verifier.Verify("Bearer " + uuidToken)
	assert.NoError(t, err)

	cuidToken := signClaims(t, jwt.SigningMethodHS256, secret, &JWTClaims{
		UserID: "clx8k2n9s0000qz0h4f7b1c2d",
		Email:  "gabriel@gmail.com",
	})
	_, err = verifier.Verify("Bearer " + cuidToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenVerifier_Rejects(t *testing.T) {
	verifier := NewTokenVerifier(testSecret, time.Hour)
	valid, err := verifier.Issue(uuid.New(), "trader@example.com")
	require.NoError(t, err)

	expired := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), &JWTClaims{
		UserID: uuid.NewString(),
		Email:  "trader@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	wrongSecret := signClaims(t, jwt.SigningMethodHS256, []byte("other-secret"), &JWTClaims{
		UserID: uuid.NewString(),
		Email:  "trader@example.com",
	})
	unsigned := signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, &JWTClaims{
		UserID: uuid.NewString(),
		Email:  "trader@example.com",
	})
	noEmail := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), &JWTClaims{
		UserID: uuid.NewString(),
	})
	noUser := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), &JWTClaims{
		Email: "trader@example.com",
	})
	badUser := signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), &JWTClaims{
		UserID: "clx0000000000",
		Email:  "trader@example.com",
	})

	cases := map[string]string{
		"empty header":     "",
		"missing prefix":   valid,
		"lowercase scheme": "bearer " + valid,
		"double space":     "Bearer  " + valid,
		"basic scheme":     "Basic dXNlcjpwYXNz",
		"garbage token":    "Bearer not-a-jwt",
		"expired":          "Bearer " + expired,
		"wrong secret":     "Bearer " + wrongSecret,
		"alg none":         "Bearer " + unsigned,
		"missing email":    "Bearer " + noEmail,
		"missing user id":  "Bearer " + noUser,
		"non-uuid user id": "Bearer " + badUser,
		"prefix only":      "Bearer ",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			claims, err := verifier.Verify(header)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestTokenVerifier_ExpiryUsesClock(t *testing.T) {
	verifier := NewTokenVerifier(testSecret, time.Hour)
	token, err := verifier.Issue(uuid.New(), "trader@example.com")
	require.NoError(t, err)

	verifier.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = verifier.Verify("Bearer " + token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthMiddleware(t *testing.T) {
	verifier := NewTokenVerifier(testSecret, time.Hour)
	userID := uuid.New()
	token, err := verifier.Issue(userID, "trader@example.com")
	require.NoError(t, err)

	e := echo.New()

	t.Run("sets identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/agents", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		c := e.NewContext(req, httptest.NewRecorder())

		called := false
		handler := verifier.AuthMiddleware(func(c echo.Context) error {
			called = true
			gotID, err := GetUserID(c)
			require.NoError(t, err)
			assert.Equal(t, userID, gotID)

			email, err := GetEmail(c)
			require.NoError(t, err)
			assert.Equal(t, "trader@example.com", email)
			return nil
		})

		require.NoError(t, handler(c))
		assert.True(t, called)
	})

	t.Run("rejects before handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/agents", nil)
		c := e.NewContext(req, httptest.NewRecorder())

		handler := verifier.AuthMiddleware(func(c echo.Context) error {
			t.Fatal("handler must not run")
			return nil
		})

		err := handler(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		assert.Equal(t, "Unauthorized", httpErr.Message)
	})
}

func TestGetUserID_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, err := GetUserID(c)
	assert.Error(t, err)
}
