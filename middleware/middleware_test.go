package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homecollect/models"
	"homecollect/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/who", func(c *gin.Context) {
		req := RequesterFrom(c)
		c.JSON(http.StatusOK, gin.H{"userId": req.UserID, "role": req.Role})
	})
	return r
}

func get(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, sub, role string) map[string]string {
	t.Helper()
	token, err := utils.GenerateToken(sub, role, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter(JWTAuthMiddleware())

	w := get(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, bearer(t, "c-1", models.RoleCollector))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"c-1","role":"collector"}`, w.Body.String())

	w = get(r, bearer(t, "x", "superuser"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	r := newRouter(JWTAuthMiddleware(), RequireRoles(models.RoleCollector, models.RoleAdmin))

	assert.Equal(t, http.StatusForbidden, get(r, bearer(t, "u-1", models.RoleCustomer)).Code)
	assert.Equal(t, http.StatusOK, get(r, bearer(t, "a-1", models.RoleAdmin)).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))
	ip := map[string]string{"X-Forwarded-For": "10.0.0.1, 172.16.0.1"}

	assert.Equal(t, http.StatusOK, get(r, ip).Code)
	assert.Equal(t, http.StatusOK, get(r, ip).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, ip).Code)

	// Other clients have their own budget.
	assert.Equal(t, http.StatusOK, get(r, map[string]string{"X-Real-IP": "10.0.0.2"}).Code)
}

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestTimeout(time.Second))
	r.GET("/who", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"deadline": ok})
	})

	w := get(r, nil)
	assert.JSONEq(t, `{"deadline":true}`, w.Body.String())
}
