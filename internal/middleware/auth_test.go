package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devboard/devboard/internal/authz"
	"github.com/devboard/devboard/internal/constants"
	"github.com/devboard/devboard/internal/models"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))

	// Test-only login endpoint that stores the requested role
	r.POST("/login/:role", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, uint64(1))
		session.Set(constants.ContextKeyUserRole, c.Param("role"))
		_ = session.Save()
		c.Status(http.StatusOK)
	})

	protected := r.Group("", RequireAuth())
	protected.GET("/tasks", RequireAction(authz.ActionViewTasks), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	protected.DELETE("/tasks/1", RequireAction(authz.ActionDeleteTask), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, url string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, role models.Role) []*http.Cookie {
	t.Helper()
	w := doRequest(t, r, "POST", "/login/"+string(role), nil)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, "GET", "/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unauthenticated beats forbidden, even on admin-only routes
	w = doRequest(t, r, "DELETE", "/tasks/1", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAction_DeveloperCannotDelete(t *testing.T) {
	r := newTestRouter()
	cookies := login(t, r, models.RoleDeveloper)

	w := doRequest(t, r, "GET", "/tasks", cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, "DELETE", "/tasks/1", cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAction_AdminCanDelete(t *testing.T) {
	r := newTestRouter()
	cookies := login(t, r, models.RoleAdmin)

	w := doRequest(t, r, "DELETE", "/tasks/1", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}
