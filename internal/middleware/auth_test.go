package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroongit/Smart-news-hub/internal/auth"
	"github.com/zeroongit/Smart-news-hub/internal/domain"
)

func issueToken(t *testing.T, tokens *auth.TokenManager, role string) string {
	t.Helper()
	token, err := tokens.Issue(&domain.User{ID: "user-1", Name: "Writer One", Role: role})
	require.NoError(t, err)
	return token
}

func authRouter(tokens *auth.TokenManager, capture *domain.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Authenticate(tokens), func(c *gin.Context) {
		if identity, ok := GetIdentity(c); ok {
			*capture = identity
		}
		c.Status(http.StatusOK)
	})
	router.GET("/admin", Authenticate(tokens), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	t.Run("valid token attaches identity", func(t *testing.T) {
		var identity domain.Identity
		router := authRouter(tokens, &identity)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, domain.RoleUser))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", identity.UserID)
		assert.Equal(t, domain.RoleUser, identity.Role)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		var identity domain.Identity
		router := authRouter(tokens, &identity)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, identity.UserID)
	})

	t.Run("non-bearer header rejected", func(t *testing.T) {
		var identity domain.Identity
		router := authRouter(tokens, &identity)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		var identity domain.Identity
		router := authRouter(tokens, &identity)
		other := auth.NewTokenManager("other-secret", time.Hour)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, other, domain.RoleUser))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	t.Run("admin passes", func(t *testing.T) {
		var identity domain.Identity
		router := authRouter(tokens, &identity)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, domain.RoleAdmin))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("regular user forbidden", func(t *testing.T) {
		var identity domain.Identity
		router := authRouter(tokens, &identity)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, domain.RoleUser))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unauthenticated request rejected before the role check", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/admin-only", RequireAdmin(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
