package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hello-web/internal/dto"
	"hello-web/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// helper to build echo context
func newFormCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

type errValidator struct{}

func (errValidator) Validate(i any) error { return errors.New("v") }

type okValidator struct{}

func (okValidator) Validate(i any) error { return nil }

func TestTokenHandler(t *testing.T) {
	hash, err := service.HashPassword("letmein")
	require.NoError(t, err)

	// bind error
	e := echo.New()
	e.Binder = errBinder{}
	ctx, rec := newFormCtx(e, "")
	require.NoError(t, TokenHandler(hash, "s", time.Hour)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// validate error
	e = echo.New()
	e.Validator = errValidator{}
	ctx, rec = newFormCtx(e, "password=x")
	require.NoError(t, TokenHandler(hash, "s", time.Hour)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// wrong password
	e = echo.New()
	e.Validator = okValidator{}
	ctx, rec = newFormCtx(e, "password=nope")
	require.NoError(t, TokenHandler(hash, "s", time.Hour)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// issue error (no secret)
	ctx, rec = newFormCtx(e, "password=letmein")
	require.NoError(t, TokenHandler(hash, "", time.Hour)(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// success
	ctx, rec = newFormCtx(e, "password=letmein")
	require.NoError(t, TokenHandler(hash, "s", time.Hour)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AdminTokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Bearer", resp.TokenType)
	claims, err := service.VerifyAdminToken("s", resp.AccessToken)
	require.NoError(t, err)
	require.True(t, claims.IsAdmin)
}

func TestShutdownHandler(t *testing.T) {
	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	triggered := 0
	ctx, rec := newFormCtx(e, "")
	require.NoError(t, ShutdownHandler(func() { triggered++ })(ctx))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, 1, triggered)
	require.Contains(t, rec.Body.String(), "shutting down")
}

type fakePurger struct {
	n   int64
	err error
}

func (f fakePurger) Purge(context.Context) (int64, error) { return f.n, f.err }

func TestPurgeCacheHandler(t *testing.T) {
	e := echo.New()
	ctx, rec := newFormCtx(e, "")
	require.NoError(t, PurgeCacheHandler(fakePurger{n: 3})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"purged":3}`, rec.Body.String())

	ctx, rec = newFormCtx(e, "")
	require.NoError(t, PurgeCacheHandler(fakePurger{err: errors.New("redis down")})(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
