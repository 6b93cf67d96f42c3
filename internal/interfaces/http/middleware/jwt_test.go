package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/companies-office/backend/internal/infrastructure/audit"
	"github.com/companies-office/backend/internal/infrastructure/auth"
	"github.com/companies-office/backend/internal/infrastructure/config"
	"github.com/companies-office/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-middleware-tests",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "companies-register-test",
	})
}

func TestJWTAuth(t *testing.T) {
	jwtService := newTestJWTService()

	router := gin.New()
	router.Use(JWTAuth(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetJWTUserID(c),
			"role":    GetJWTRole(c),
		})
	})

	t.Run("valid token passes and populates context", func(t *testing.T) {
		userID := uuid.New()
		token, err := jwtService.GenerateToken(userID, "registrar@example.com", auth.RoleRegistrar)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, auth.RoleRegistrar, body["role"])
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "UNAUTHORIZED", resp.Error)
		assert.Equal(t, "/protected", resp.Path)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		otherService := auth.NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-secret",
			AccessTokenExpiration: 15 * time.Minute,
			Issuer:                "companies-register-test",
		})
		token, err := otherService.GenerateToken(uuid.New(), "intruder", auth.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestJWTAuth_AuditActor(t *testing.T) {
	jwtService := newTestJWTService()
	userID := uuid.New()

	var actor audit.Actor

	router := gin.New()
	router.Use(JWTAuth(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		actor = audit.ActorFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	token, err := jwtService.GenerateToken(userID, "registrar@example.com", auth.RoleRegistrar)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), actor.UserID)
	assert.Equal(t, "registrar@example.com", actor.Username)
	assert.Equal(t, auth.RoleRegistrar, actor.Role)
}

func TestRequireRoles(t *testing.T) {
	jwtService := newTestJWTService()

	router := gin.New()
	router.Use(JWTAuth(jwtService))
	router.DELETE("/admin-only", RequireRoles(auth.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.POST("/registrar-or-admin", RequireRoles(auth.RoleAdmin, auth.RoleRegistrar), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	do := func(method, path, role string) *httptest.ResponseRecorder {
		token, err := jwtService.GenerateToken(uuid.New(), "someone", role)
		require.NoError(t, err)
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("admin allowed on admin route", func(t *testing.T) {
		w := do("DELETE", "/admin-only", auth.RoleAdmin)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("registrar forbidden on admin route", func(t *testing.T) {
		w := do("DELETE", "/admin-only", auth.RoleRegistrar)
		assert.Equal(t, http.StatusForbidden, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "FORBIDDEN", resp.Error)
	})

	t.Run("registrar allowed on shared route", func(t *testing.T) {
		w := do("POST", "/registrar-or-admin", auth.RoleRegistrar)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
