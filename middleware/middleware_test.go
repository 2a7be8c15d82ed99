package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"phantoms-store/helper"
	"phantoms-store/models"
	"phantoms-store/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

type stubAuthService struct {
	services.AuthService
	principals map[string]*models.Principal
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*models.Principal, error) {
	if p, ok := s.principals[token]; ok {
		return p, nil
	}
	return nil, models.ErrorUnauthorized{Message: "invalid token"}
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		p := CurrentPrincipal(c)
		if p == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, p.UserID)
	})
	r.GET("/", handlers...)
	return r
}

func do(r http.Handler, token string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testAuth() *stubAuthService {
	return &stubAuthService{principals: map[string]*models.Principal{
		"root":   {UserID: models.SuperAdminID, Role: models.RoleSuperAdmin, Permissions: models.AllPermissions()},
		"seller": {UserID: "alice", Role: models.RoleSeller, Permissions: models.RoleSeller.Grants()},
		"fake":   {UserID: "eve", Role: models.RoleSuperAdmin},
		"helper": {UserID: "bob", Role: models.RoleUser, Permissions: models.NewPermissionSet(models.PermManageMessages)},
	}}
}

func TestAuthMiddleware(t *testing.T) {
	h := helper.NewHTTPHelper()
	r := newRouter(AuthMiddleware(testAuth(), h))

	w := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "", "Authorization", "Token seller")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "unknown")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "seller")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}

func TestRequireSuperAdmin(t *testing.T) {
	h := helper.NewHTTPHelper()
	r := newRouter(AuthMiddleware(testAuth(), h), RequireSuperAdmin(h))

	assert.Equal(t, http.StatusOK, do(r, "root").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "seller").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "fake").Code)

	bare := newRouter(RequireSuperAdmin(h))
	assert.Equal(t, http.StatusUnauthorized, do(bare, "").Code)
}

func TestRequirePermission(t *testing.T) {
	h := helper.NewHTTPHelper()
	r := newRouter(AuthMiddleware(testAuth(), h), RequirePermission(h, models.PermManageMessages))

	assert.Equal(t, http.StatusOK, do(r, "root").Code)
	assert.Equal(t, http.StatusOK, do(r, "helper").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "seller").Code)
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := helper.NewHTTPHelper()
	rl := NewRateLimiter(ctx, rate.Every(time.Hour), 2, time.Minute)
	r := newRouter(RateLimit(rl, h))

	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "").Code)
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, rate.Every(time.Hour), 1, time.Minute)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	rl.evict(time.Now().Add(2 * time.Minute))
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestCORS(t *testing.T) {
	r := newRouter(CORS([]string{"https://shop.example.com"}))

	w := do(r, "", "Origin", "https://shop.example.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, "", "Origin", "https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, "", "Origin", "https://shop.example.com")
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSWildcardOmitsCredentials(t *testing.T) {
	r := newRouter(CORS([]string{"*"}))

	w := do(r, "", "Origin", "https://anyone.example.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://anyone.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestSecurityHeaders(t *testing.T) {
	w := do(newRouter(SecurityHeaders()), "")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
