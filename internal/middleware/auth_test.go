package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secret-pages-service/internal/auth"
	"secret-pages-service/internal/config"
)

func setupProtectedRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":    c.GetString("userID"),
			"email": c.GetString("userEmail"),
		})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenService(config.AuthConfig{
		Secret:   "test-secret",
		Issuer:   "secret-pages-service",
		TokenTTL: time.Hour,
	})
	router := setupProtectedRouter(tokens)

	token, err := tokens.Issue("alice", "alice@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alice"`)
	assert.Contains(t, rec.Body.String(), `"alice@x.com"`)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	tokens := auth.NewTokenService(config.AuthConfig{
		Secret:   "test-secret",
		Issuer:   "secret-pages-service",
		TokenTTL: time.Hour,
	})
	router := setupProtectedRouter(tokens)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc123"},
		{"no token", "Bearer"},
		{"garbage token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
