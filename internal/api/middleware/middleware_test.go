package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volleyhub/registration-api/internal/domain"
	"github.com/volleyhub/registration-api/internal/pkg/jwthelper"
)

const testKey = "middleware-test-key"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	auth := NewAuthenticator(testKey)
	r := gin.New()
	r.Use(auth.Session())
	r.GET("/admin", auth.RequireAdmin(), func(ctx *gin.Context) {
		principal, _ := domain.PrincipalFromContext(ctx.Request.Context())
		ctx.String(http.StatusOK, principal.UserID.String())
	})
	r.GET("/deadline", Timeout(time.Second), func(ctx *gin.Context) {
		_, ok := ctx.Request.Context().Deadline()
		ctx.JSON(http.StatusOK, gin.H{"deadline": ok})
	})

	return r
}

func sessionCookie(t *testing.T, role domain.Role) (*http.Cookie, uuid.UUID) {
	t.Helper()

	id := uuid.New()
	token, err := jwthelper.GenerateToken([]byte(testKey), domain.User{ID: id, Role: role}, "", time.Hour)
	require.NoError(t, err)

	return &http.Cookie{Name: SessionCookie, Value: token}, id
}

func TestRequireAdmin(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userCookie, _ := sessionCookie(t, domain.RoleUser)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(userCookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminCookie, id := sessionCookie(t, domain.RoleAdministrator)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(adminCookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTimeoutSetsDeadline(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/deadline", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deadline":true}`, w.Body.String())
}
