package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hello-web/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "testsecret"

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestExtractClaims(t *testing.T) {
	// missing header
	ctx, _ := newContext("")
	_, err := extractClaims(ctx, testSecret)
	require.Error(t, err)

	// bad format
	ctx, _ = newContext("BadHeader")
	_, err = extractClaims(ctx, testSecret)
	require.Error(t, err)

	// invalid token
	ctx, _ = newContext("Bearer invalid")
	_, err = extractClaims(ctx, testSecret)
	require.Error(t, err)

	// valid token
	tok, _, err := service.IssueAdminToken(testSecret, time.Minute)
	require.NoError(t, err)
	ctx, _ = newContext("bearer " + tok)
	claims, err := extractClaims(ctx, testSecret)
	require.NoError(t, err)
	require.True(t, claims.IsAdmin)
}

func TestRequireAdmin(t *testing.T) {
	adminTok, _, err := service.IssueAdminToken(testSecret, time.Minute)
	require.NoError(t, err)

	// admin ok
	ctx, rec := newContext("Bearer " + adminTok)
	called := false
	err = RequireAdmin(testSecret)(func(c echo.Context) error {
		called = true
		require.NotNil(t, c.Get(ContextAdminKey))
		return c.String(http.StatusOK, "admin")
	})(ctx)
	require.NoError(t, err)
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// token without admin flag
	userTok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	ctx, _ = newContext("Bearer " + userTok)
	called = false
	err = RequireAdmin(testSecret)(func(c echo.Context) error { called = true; return nil })(ctx)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusForbidden, he.Code)
	require.False(t, called)

	// missing token
	ctx, _ = newContext("")
	err = RequireAdmin(testSecret)(func(echo.Context) error { called = true; return nil })(ctx)
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
	require.False(t, called)
}
