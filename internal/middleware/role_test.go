package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeWithRole(t *testing.T, mw echo.MiddlewareFunc, role any) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	rec := invokeWithRole(t, RequireRole("ADMIN", "PASSENGER"), "PASSENGER")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleForbidsOtherRole(t *testing.T) {
	rec := invokeWithRole(t, RequireRole("ADMIN"), "PASSENGER")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleForbidsMissingRole(t *testing.T) {
	rec := invokeWithRole(t, RequireRole("ADMIN"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
