package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTokenBucketExhausts(t *testing.T) {
	l := NewSimpleTokenBucket(2, 2)

	if !l.allow("1.2.3.4") {
		t.Fatal("first request should pass")
	}
	if !l.allow("1.2.3.4") {
		t.Fatal("second request should pass")
	}
	if l.allow("1.2.3.4") {
		t.Fatal("third request should be limited")
	}

	// A different client has its own bucket.
	if !l.allow("5.6.7.8") {
		t.Fatal("other client should pass")
	}
}

func TestTokenBucketDefaults(t *testing.T) {
	l := NewSimpleTokenBucket(0, 0)
	if l.capacity != 60 || l.rate != 60 {
		t.Errorf("defaults = (%d, %d), want (60, 60)", l.capacity, l.rate)
	}
	if got := l.retryAfter(); got != 1 {
		t.Errorf("retryAfter = %d, want 1", got)
	}
}

func TestGinMiddlewareSetsRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewSimpleTokenBucket(1, 2).GinMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w
	}

	if w := do(); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}
	w := do()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "30" {
		t.Errorf("Retry-After = %q, want \"30\"", got)
	}
}
