package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveCORS(t *testing.T, origins []string, requestOrigin, method string) *httptest.ResponseRecorder {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := CORS(origins)(next)

	req := httptest.NewRequest(method, "/api/status", nil)
	if requestOrigin != "" {
		req.Header.Set("Origin", requestOrigin)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCORSWildcard(t *testing.T) {
	w := serveCORS(t, []string{"*"}, "http://example.com", http.MethodGet)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin=*, got %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "" {
		t.Error("Credentials must never be allowed")
	}
}

func TestCORSWildcardWithoutOriginHeader(t *testing.T) {
	// Same-origin requests carry no Origin header; no CORS headers should be
	// written, and never an empty Allow-Origin value.
	w := serveCORS(t, []string{"*"}, "", http.MethodGet)

	if _, ok := w.Header()["Access-Control-Allow-Origin"]; ok {
		t.Errorf("Expected no Access-Control-Allow-Origin header, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORSExactOrigin(t *testing.T) {
	origins := []string{"http://localhost:3000"}

	w := serveCORS(t, origins, "http://localhost:3000", http.MethodGet)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected matching origin echoed, got %q", got)
	}

	w = serveCORS(t, origins, "http://evil.example", http.MethodGet)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no header for unlisted origin, got %q", got)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	w := serveCORS(t, []string{"*"}, "http://example.com", http.MethodOptions)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", w.Code)
	}
}
