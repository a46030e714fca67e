package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func signToken(t *testing.T, tenantID, rol string, dur time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": uuid.NewString(), "tenant_id": tenantID, "nombre": "Lucia", "rol": rol,
		"exp": time.Now().Add(dur).Unix(), "iat": time.Now().Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func staffRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant_id": TenantID(c).String(), "rol": GetClaims(c).Rol})
	})
	r.GET("/admin", RequireRole("administrador"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ResolvesTenant(t *testing.T) {
	tenant := uuid.NewString()
	tok := signToken(t, tenant, "mesero", time.Hour)

	w := get(staffRouter(), "/protected", map[string]string{"Authorization": "Bearer " + tok})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tenant)
}

func TestJWTAuth_Rejections(t *testing.T) {
	r := staffRouter()
	cases := map[string]string{
		"sin header":      "",
		"no bearer":       "Basic abc",
		"expirado":        "Bearer " + signToken(t, uuid.NewString(), "mesero", -time.Hour),
		"tenant invalido": "Bearer " + signToken(t, "no-uuid", "mesero", time.Hour),
		"token basura":    "Bearer abc.def.ghi",
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			w := get(r, "/protected", map[string]string{"Authorization": h})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := staffRouter()
	tenant := uuid.NewString()

	w := get(r, "/admin", map[string]string{"Authorization": "Bearer " + signToken(t, tenant, "mesero", time.Hour)})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(r, "/admin", map[string]string{"Authorization": "Bearer " + signToken(t, tenant, "administrador", time.Hour)})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPublicTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/menu", PublicTenant(), func(c *gin.Context) {
		c.String(http.StatusOK, TenantID(c).String())
	})

	assert.Equal(t, http.StatusBadRequest, get(r, "/menu", nil).Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/menu", map[string]string{TenantHeader: uuid.Nil.String()}).Code)

	tenant := uuid.NewString()
	w := get(r, "/menu", map[string]string{TenantHeader: tenant})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tenant, w.Body.String())
}

func TestRateLimiter(t *testing.T) {
	now := time.Now()
	l := NewRateLimiter(2, time.Minute, "")
	l.now = func() time.Time { return now }

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/x", nil).Code)
	assert.Equal(t, http.StatusOK, get(r, "/x", nil).Code)
	w := get(r, "/x", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, http.StatusOK, get(r, "/x", nil).Code)
}

func TestRateLimiter_PurgesExpired(t *testing.T) {
	now := time.Now()
	l := NewRateLimiter(5, time.Second, "")
	l.now = func() time.Time { return now }
	l.allow("1.1.1.1")
	l.allow("2.2.2.2")

	now = now.Add(purgeInterval + time.Second)
	l.allow("3.3.3.3")

	assert.Len(t, l.entries, 1)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := get(r, "/", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = get(r, "/", nil)
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	w := get(r, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}
