package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raf-aleaqarih/raf24-api/internal/auth"
	"github.com/raf-aleaqarih/raf24-api/internal/models"
)

const testJWTSecret = "test-secret"

func setupAuthEngine(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(testJWTSecret)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": c.GetString(ContextKeyAdminID)})
	})
	r.GET("/test", chain...)
	return r
}

func authRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := setupAuthEngine()
	w := authRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	r := setupAuthEngine()
	w := authRequest(r, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r := setupAuthEngine()
	w := authRequest(r, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	adminID := primitive.NewObjectID().Hex()
	token, err := auth.GenerateRefreshToken(adminID, testJWTSecret, time.Minute)
	require.NoError(t, err)

	r := setupAuthEngine()
	w := authRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	adminID := primitive.NewObjectID().Hex()
	token, err := auth.GenerateAccessToken(adminID, string(models.RoleAdmin), []string{models.PermManageContent}, testJWTSecret, time.Minute)
	require.NoError(t, err)

	r := setupAuthEngine()
	w := authRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), adminID)
}

func TestRequireRole(t *testing.T) {
	adminID := primitive.NewObjectID().Hex()
	editorToken, err := auth.GenerateAccessToken(adminID, string(models.RoleEditor), nil, testJWTSecret, time.Minute)
	require.NoError(t, err)
	superToken, err := auth.GenerateAccessToken(adminID, string(models.RoleSuperAdmin), nil, testJWTSecret, time.Minute)
	require.NoError(t, err)

	r := setupAuthEngine(RequireRole(models.RoleSuperAdmin))

	assert.Equal(t, http.StatusForbidden, authRequest(r, "Bearer "+editorToken).Code)
	assert.Equal(t, http.StatusOK, authRequest(r, "Bearer "+superToken).Code)
}

func TestRequirePermission(t *testing.T) {
	adminID := primitive.NewObjectID().Hex()
	withPerm, err := auth.GenerateAccessToken(adminID, string(models.RoleEditor), []string{models.PermManageMedia}, testJWTSecret, time.Minute)
	require.NoError(t, err)
	withoutPerm, err := auth.GenerateAccessToken(adminID, string(models.RoleEditor), []string{models.PermManageContent}, testJWTSecret, time.Minute)
	require.NoError(t, err)
	superAdmin, err := auth.GenerateAccessToken(adminID, string(models.RoleSuperAdmin), nil, testJWTSecret, time.Minute)
	require.NoError(t, err)

	r := setupAuthEngine(RequirePermission(models.PermManageMedia))

	assert.Equal(t, http.StatusOK, authRequest(r, "Bearer "+withPerm).Code)
	assert.Equal(t, http.StatusForbidden, authRequest(r, "Bearer "+withoutPerm).Code)
	// Super admins bypass permission checks.
	assert.Equal(t, http.StatusOK, authRequest(r, "Bearer "+superAdmin).Code)
}
