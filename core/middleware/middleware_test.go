package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roundtable-api/core/config"
	"roundtable-api/core/constants"
	"roundtable-api/core/controller"
	"roundtable-api/core/utils"

	"github.com/labstack/echo/v4"
)

func setupEcho(t *testing.T) *echo.Echo {
	t.Helper()
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "test-secret", Issuer: "roundtable"}})
	e := echo.New()
	e.HTTPErrorHandler = controller.HTTPErrorHandler
	return e
}

func viewerHandler(c echo.Context) error {
	return c.String(http.StatusOK, ViewerID(c))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) controller.Envelope {
	t.Helper()
	var env controller.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestAuthMiddleware(t *testing.T) {
	e := setupEcho(t)
	mw := NewMiddleware(nil)
	e.GET("/private", viewerHandler, mw.AuthMiddleware())

	token, err := utils.GenerateToken("user-1", "a@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing token", "", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, ""},
		{"valid token", "Bearer " + token, http.StatusOK, "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("want %d, got %d", tt.status, rec.Code)
			}
			if tt.status == http.StatusOK {
				if rec.Body.String() != tt.body {
					t.Fatalf("want %q, got %q", tt.body, rec.Body.String())
				}
				return
			}
			env := decodeEnvelope(t, rec)
			if env.Success || len(env.Errors) != 1 || env.Errors[0].Code != "AUTH_ERROR" {
				t.Fatalf("unexpected envelope %+v", env)
			}
		})
	}
}

func TestOptionalAuthMiddlewareFallsBackToAnonymous(t *testing.T) {
	e := setupEcho(t)
	mw := NewMiddleware(nil)
	e.GET("/public", viewerHandler, mw.OptionalAuthMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer expired.or.bad")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "" {
		t.Fatalf("want anonymous 200, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	e := setupEcho(t)
	rl := NewIPRateLimiter(0.001, 2, time.Minute)
	e.GET("/search", viewerHandler, RateLimit(rl))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			env := decodeEnvelope(t, rec)
			if env.Errors[0].Code != "RATE_LIMITED" {
				t.Fatalf("want RATE_LIMITED, got %s", env.Errors[0].Code)
			}
		}
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	// a different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200 for second client, got %d", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	e := setupEcho(t)
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(constants.ContextRequestID).(string))
	}, RequestID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderRequestID, "abc")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Body.String() != "abc" || rec.Header().Get(constants.HeaderRequestID) != "abc" {
		t.Fatalf("request id not propagated: %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(rec.Body.String()) != 16 {
		t.Fatalf("want generated 16 char id, got %q", rec.Body.String())
	}
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	e := setupEcho(t)
	extractor, err := NewIPExtractor(nil)
	if err != nil {
		t.Fatal(err)
	}
	e.IPExtractor = extractor
	e.GET("/search", viewerHandler, RateLimit(NewIPRateLimiter(1, 1, time.Minute)))

	allowed := 0
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		req.Header.Set(echo.HeaderXForwardedFor, fmt.Sprintf("198.51.100.%d", i+1))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			allowed++
		}
	}
	if allowed != 1 {
		t.Fatalf("one peer must share one bucket, %d/10 allowed", allowed)
	}
}

func TestRateLimitHonoursTrustedProxy(t *testing.T) {
	e := setupEcho(t)
	extractor, err := NewIPExtractor([]string{"10.1.0.0/16"})
	if err != nil {
		t.Fatal(err)
	}
	e.IPExtractor = extractor
	e.GET("/search", viewerHandler, RateLimit(NewIPRateLimiter(0.001, 1, time.Minute)))

	send := func(peer, xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		req.RemoteAddr = peer
		req.Header.Set(echo.HeaderXForwardedFor, xff)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	// behind the proxy each forwarded client gets its own bucket
	if code := send("10.1.2.3:80", "198.51.100.1"); code != http.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}
	if code := send("10.1.2.3:80", "198.51.100.2"); code != http.StatusOK {
		t.Fatalf("want 200 for second forwarded client, got %d", code)
	}
	if code := send("10.1.2.3:80", "198.51.100.1"); code != http.StatusTooManyRequests {
		t.Fatalf("want 429 for repeated client, got %d", code)
	}

	// an untrusted peer cannot pick its own bucket
	if code := send("203.0.113.9:80", "198.51.100.3"); code != http.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}
	if code := send("203.0.113.9:80", "198.51.100.4"); code != http.StatusTooManyRequests {
		t.Fatalf("want 429 for spoofed header, got %d", code)
	}
}

func TestNewIPExtractorRejectsBadCIDR(t *testing.T) {
	if _, err := NewIPExtractor([]string{"not-a-cidr"}); err == nil {
		t.Fatal("want error for malformed CIDR")
	}
}
