package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestKeyFuncs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = net.JoinHostPort("203.0.113.9", "12345")
	c.Request = req

	if got := KeyByIP()(c); got != "ip:203.0.113.9" {
		t.Fatalf("KeyByIP = %q", got)
	}
	if got := KeyByAdminOrIP()(c); got != "ip:203.0.113.9" {
		t.Fatalf("KeyByAdminOrIP without admin = %q", got)
	}
	c.Set(ctxKeyAdminUser, "admin")
	if got := KeyByAdminOrIP()(c); got != "admin:admin" {
		t.Fatalf("KeyByAdminOrIP with admin = %q", got)
	}
}

func TestNewRateLimiter_DefaultsAndReuse(t *testing.T) {
	rl := NewRateLimiter(2.0, 0, nil)
	if rl.burst != 1 || rl.keyFn == nil {
		t.Fatalf("defaults not applied: burst=%d keyFn=%v", rl.burst, rl.keyFn != nil)
	}
	lim := rl.getVisitor("k1")
	if got := rl.getVisitor("k1"); got != lim {
		t.Fatalf("expected same limiter instance to be reused")
	}
}

func TestRateLimiter_GetVisitorGC(t *testing.T) {
	rl := NewRateLimiter(1.0, 1, KeyByIP())
	rl.ttl = time.Nanosecond

	rl.mu.Lock()
	rl.visitors["old"] = &visitor{limiter: rate.NewLimiter(1, 1), lastSeen: time.Now().Add(-time.Hour)}
	rl.cleanupN = 4999
	rl.mu.Unlock()

	_ = rl.getVisitor("new")

	rl.mu.Lock()
	_, existsOld := rl.visitors["old"]
	_, existsNew := rl.visitors["new"]
	n := rl.cleanupN
	rl.mu.Unlock()
	if existsOld || !existsNew || n != 0 {
		t.Fatalf("gc: old=%v new=%v cleanupN=%d", existsOld, existsNew, n)
	}
}

func TestRateLimiter_Handler_LimitsPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(0.0001, 2, KeyByIP())

	r := gin.New()
	r.Use(RequestID(), rl.Handler())
	r.POST("/contact/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip, accept string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/contact/", nil)
		req.RemoteAddr = ip + ":1000"
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := send("203.0.113.1", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d -> %d", i, w.Code)
		}
	}
	w := send("203.0.113.1", "")
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected 429 with Retry-After, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["code"] != "rate_limited" || body["request_id"] == "" {
		t.Fatalf("unexpected body: %v", body)
	}

	w = send("203.0.113.1", "text/html")
	if w.Code != http.StatusTooManyRequests || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("browser should get HTML 429, got %d %q", w.Code, w.Header().Get("Content-Type"))
	}

	if w := send("198.51.100.2", ""); w.Code != http.StatusOK {
		t.Fatalf("other IP should have its own bucket, got %d", w.Code)
	}
}

func TestRateLimiter_Handler_ReplayBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(0.0001, 1, KeyByIP())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-Replay") == "1" {
			c.Set(ctxKeyRateBypass, true)
		}
		c.Next()
	}, rl.Handler())
	r.POST("/contact/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/contact/", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/contact/", nil)
		req.Header.Set("X-Replay", "1")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("replay %d should bypass limiter, got %d", i, w.Code)
		}
	}
}
