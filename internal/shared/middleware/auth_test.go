package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/pkg/jwt"
)

func newTestRouter(manager *jwt.Manager) (*gin.Engine, *bool, *bool) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protectedHit := false
	adminHit := false

	router.GET("/protected", AuthMiddleware(manager), func(c *gin.Context) {
		protectedHit = true
		id, ok := GetAuthorID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"author_id": id.String()})
	})

	router.GET("/admin", AuthMiddleware(manager), AdminMiddleware(), func(c *gin.Context) {
		adminHit = true
		c.Status(http.StatusOK)
	})

	return router, &protectedHit, &adminHit
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	manager := jwt.NewManager("test-secret", 15, 72)
	router, protectedHit, _ := newTestRouter(manager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *protectedHit, "handler must not run without a token")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	manager := jwt.NewManager("test-secret", 15, 72)
	router, protectedHit, _ := newTestRouter(manager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *protectedHit)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issuer := jwt.NewManager("test-secret", -1, 72)
	manager := jwt.NewManager("test-secret", 15, 72)
	router, protectedHit, _ := newTestRouter(manager)

	tok, err := issuer.GenerateAccessToken("2f0d9c40-52f4-4e3e-9f0b-0e4deccd8f61", "author")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *protectedHit)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", 15, 72)
	router, protectedHit, _ := newTestRouter(manager)

	tok, err := manager.GenerateAccessToken("2f0d9c40-52f4-4e3e-9f0b-0e4deccd8f61", "author")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *protectedHit)
	assert.Contains(t, w.Body.String(), "2f0d9c40-52f4-4e3e-9f0b-0e4deccd8f61")
}

func TestAdminMiddleware_NonAdminForbidden(t *testing.T) {
	manager := jwt.NewManager("test-secret", 15, 72)
	router, _, adminHit := newTestRouter(manager)

	tok, err := manager.GenerateAccessToken("2f0d9c40-52f4-4e3e-9f0b-0e4deccd8f61", "author")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, *adminHit, "admin handler must not run for non-admin role")
}

func TestAdminMiddleware_AdminAllowed(t *testing.T) {
	manager := jwt.NewManager("test-secret", 15, 72)
	router, _, adminHit := newTestRouter(manager)

	tok, err := manager.GenerateAccessToken("2f0d9c40-52f4-4e3e-9f0b-0e4deccd8f61", "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *adminHit)
}

func TestAdminMiddleware_WithoutAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/bare-admin", AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bare-admin", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
