package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roomus/rooms-api/internal/config"
)

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func lastLogEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}
	return entry
}

func TestLoggingMiddleware(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newJSONLogger(buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "rid-123")

	err := Logging(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry := lastLogEntry(t, buf)
	if entry["request_id"] != "rid-123" || entry["path"] != "/api/rooms/search" || entry["level"] != "INFO" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Fatalf("expected status 200 in log, got %v", entry["status"])
	}

	// errors are handed to echo and still bubble up
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "rid-456")
	expected := errors.New("boom")
	err = Logging(logger)(func(c echo.Context) error {
		return expected
	})(c)
	if !errors.Is(err, expected) {
		t.Fatalf("expected error to bubble up")
	}
	entry = lastLogEntry(t, buf)
	if entry["request_id"] != "rid-456" || entry["level"] != "ERROR" || entry["error"] != "boom" {
		t.Fatalf("unexpected error log entry: %v", entry)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected echo to render 500, got %d", rec.Code)
	}
}

func TestLoggingMiddleware_ClientErrorsAreWarnings(t *testing.T) {
	buf := &bytes.Buffer{}
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/rooms/nope", nil), httptest.NewRecorder())

	_ = Logging(newJSONLogger(buf))(func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	})(c)

	if entry := lastLogEntry(t, buf); entry["level"] != "WARN" {
		t.Fatalf("expected WARN level, got %v", entry["level"])
	}
}

func TestRateLimiter(t *testing.T) {
	mw := RateLimiter("contact", config.RateLimitConfig{Requests: 1, Interval: time.Minute})

	e := echo.New()
	nextCalls := 0
	next := func(c echo.Context) error {
		nextCalls++
		return c.NoContent(http.StatusOK)
	}
	handler := mw(next)

	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(httptest.NewRequest(http.MethodPost, "/api/rooms/1/contact", nil), rec))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}

	rec2 := httptest.NewRecorder()
	_ = handler(e.NewContext(httptest.NewRequest(http.MethodPost, "/api/rooms/2/contact", nil), rec2))
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request rejected, got %d", rec2.Code)
	}
	if rec2.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
	if !strings.Contains(rec2.Body.String(), "contact rate limit exceeded") {
		t.Fatalf("unexpected body: %s", rec2.Body.String())
	}

	// rejected requests must not consume tokens or reach the handler
	if nextCalls != 1 {
		t.Fatalf("expected handler invoked once, got %d", nextCalls)
	}

	// zero config should behave as passthrough
	passthrough := RateLimiter("contact", config.RateLimitConfig{})(next)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		_ = passthrough(e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected passthrough when limiter disabled")
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	handler := RequestID()

	t.Run("reuse incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "incoming")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(func(c echo.Context) error {
			if RequestIDFromContext(c) != "incoming" {
				t.Fatalf("expected request id to be stored")
			}
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rec.Header().Get(HeaderRequestID) != "incoming" {
			t.Fatalf("expected response header to propagate request id")
		}
	})

	t.Run("generate when missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(func(c echo.Context) error {
			if RequestIDFromContext(c) == "" {
				t.Fatalf("expected generated request id")
			}
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rec.Header().Get(HeaderRequestID) == "" {
			t.Fatalf("expected response header set")
		}
	})

	t.Run("replace oversized header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, strings.Repeat("x", maxRequestIDLength+1))
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

		if got := rec.Header().Get(HeaderRequestID); len(got) > maxRequestIDLength || got == "" {
			t.Fatalf("expected generated id, got %q", got)
		}
	})

	if RequestIDFromContext(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())) != "" {
		t.Fatalf("expected empty id without middleware")
	}
}
