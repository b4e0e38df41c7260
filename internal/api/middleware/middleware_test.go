package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JorgeWendell/clinics/config"
	"github.com/JorgeWendell/clinics/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-at-least-16",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 7 * 24 * time.Hour,
	})
}

func do(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

// ── JWTAuth ──

func TestJWTAuth(t *testing.T) {
	mgr := testJWTManager()
	access, err := mgr.GenerateAccessToken("user-1", "operator", "clinic-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	refresh, err := mgr.GenerateRefreshToken("user-1", "operator", "clinic-1", false)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	var gotUser, gotClinic, gotJTI string
	r := gin.New()
	r.GET("/me", JWTAuth(mgr, nil), func(c *gin.Context) {
		gotUser = c.GetString("user_id")
		gotClinic = c.GetString("clinic_id")
		gotJTI = c.GetString("token_jti")
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + access, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"access token", "Bearer " + access, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := map[string]string{}
			if tt.header != "" {
				header["Authorization"] = tt.header
			}
			if w := do(r, "GET", "/me", header); w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}

	if gotUser != "user-1" || gotClinic != "clinic-1" || gotJTI == "" {
		t.Errorf("identity not stored: user=%q clinic=%q jti=%q", gotUser, gotClinic, gotJTI)
	}
}

// ── ClinicRequired / RoleAuth ──

func TestClinicRequired(t *testing.T) {
	tests := []struct {
		clinicID string
		want     int
	}{
		{"", http.StatusForbidden},
		{"clinic-1", http.StatusOK},
	}
	for _, tt := range tests {
		r := gin.New()
		r.GET("/x", func(c *gin.Context) { c.Set("clinic_id", tt.clinicID) }, ClinicRequired(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := do(r, "GET", "/x", nil)
		if w.Code != tt.want {
			t.Errorf("clinic %q: expected %d, got %d", tt.clinicID, tt.want, w.Code)
		}
		if tt.want == http.StatusForbidden && !strings.Contains(w.Body.String(), "12001") {
			t.Errorf("expected code 12001, got %s", w.Body.String())
		}
	}
}

func TestRoleAuth(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{"administrator", http.StatusOK},
		{"manager", http.StatusOK},
		{"operator", http.StatusForbidden},
		{"", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		r := gin.New()
		r.DELETE("/x", func(c *gin.Context) {
			if tt.role != "" {
				c.Set("role", tt.role)
			}
		}, RoleAuth("administrator", "manager"), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		if w := do(r, "DELETE", "/x", nil); w.Code != tt.want {
			t.Errorf("role %q: expected %d, got %d", tt.role, tt.want, w.Code)
		}
	}
}

// ── RateLimit ──

func TestRateLimit_LocalFallback(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(nil, 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		if w := do(r, "POST", "/login", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
	w := do(r, "POST", "/login", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}

	other := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	r.ServeHTTP(other, req)
	if other.Code != http.StatusOK {
		t.Errorf("another client should have its own bucket, got %d", other.Code)
	}
}

func TestLocalLimiter_EvictsLeastRecentClient(t *testing.T) {
	l := newLocalLimiter(1, time.Hour, 2)

	if !l.allow("a") {
		t.Fatal("first request from a should pass")
	}
	if l.allow("a") {
		t.Fatal("second request from a should be limited")
	}
	l.allow("b")
	l.allow("c")

	if got := l.limiters.Len(); got != 2 {
		t.Errorf("expected 2 buckets kept, got %d", got)
	}
	// a was evicted, so it starts with a fresh bucket
	if !l.allow("a") {
		t.Error("evicted client should get a new bucket")
	}
}

// ── RequestID / Recovery / BodyLimit ──

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, "GET", "/x", map[string]string{"X-Request-ID": "abc-123"})
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected propagated id, got %q", got)
	}

	w = do(r, "GET", "/x", map[string]string{"X-Request-ID": strings.Repeat("x", 100)})
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("oversized id should be replaced by a UUID, got %q", got)
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(r, "GET", "/boom", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "50000") {
		t.Errorf("expected envelope code 50000, got %s", w.Body.String())
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/x", strings.NewReader(strings.Repeat("a", 64)))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}
