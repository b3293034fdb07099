package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	handler := RateLimitMiddleware(0, 0)(okHandler())

	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("POST", "/evaluate", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want %d", i, rr.Code, http.StatusOK)
		}
	}
}

func TestRateLimitMiddleware_BurstExhausted_429(t *testing.T) {
	// One token per hour: only the burst passes.
	handler := RateLimitMiddleware(1.0/3600, 2)(okHandler())

	codes := make([]int, 3)
	var last *httptest.ResponseRecorder
	for i := range codes {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("POST", "/evaluate", http.NoBody))
		codes[i] = rr.Code
		last = rr
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests: got %v", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third request: got %d, want %d", codes[2], http.StatusTooManyRequests)
	}
	if last.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(last.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != ErrorResponseCodeRateLimited {
		t.Errorf("error code: got %s, want %s", errResp.Code, ErrorResponseCodeRateLimited)
	}
}

func TestRateLimitMiddleware_ExemptPaths(t *testing.T) {
	handler := RateLimitMiddleware(1.0/3600, 1)(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/evaluate", http.NoBody))

	for i := 0; i < 5; i++ {
		rr = httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/health", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("health %d: got %d, want %d", i, rr.Code, http.StatusOK)
		}
	}
}
