package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"simplecache/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(issuer *auth.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(issuer))
	r.GET("/protected", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("username")) })
	return r
}

func TestJWTAuthMiddleware_Success(t *testing.T) {
	issuer := auth.NewIssuer([]byte("secret"), "simplecache", "simplecache-admin", time.Hour)
	r := newProtectedRouter(issuer)

	token, err := issuer.GenerateToken("admin")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "admin", w.Body.String())
}

func TestJWTAuthMiddleware_QueryToken(t *testing.T) {
	issuer := auth.NewIssuer([]byte("secret"), "simplecache", "simplecache-admin", time.Hour)
	r := newProtectedRouter(issuer)

	token, err := issuer.GenerateToken("admin")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	issuer := auth.NewIssuer([]byte("secret"), "simplecache", "simplecache-admin", time.Hour)
	r := newProtectedRouter(issuer)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
