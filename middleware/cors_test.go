package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestIsAllowedOrigin(t *testing.T) {
	allowedOrigins := []string{
		"https://example.com",
		"http://localhost:5173",
	}

	testCases := []struct {
		name     string
		origin   string
		expected bool
	}{
		{
			name:     "Allowed origin",
			origin:   "https://example.com",
			expected: true,
		},
		{
			name:     "Another allowed origin",
			origin:   "http://localhost:5173",
			expected: true,
		},
		{
			name:     "Disallowed origin",
			origin:   "https://evil.com",
			expected: false,
		},
		{
			name:     "Empty origin",
			origin:   "",
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := isAllowedOrigin(tc.origin, allowedOrigins)
			if result != tc.expected {
				t.Errorf("Expected %v, got %v for origin %s", tc.expected, result, tc.origin)
			}
		})
	}
}

func TestGetAllowedOriginsFromEnv(t *testing.T) {
	originalCors := os.Getenv("CORS_ALLOWED_ORIGINS")
	defer os.Setenv("CORS_ALLOWED_ORIGINS", originalCors)

	os.Setenv("CORS_ALLOWED_ORIGINS", "https://test1.com,https://test2.com")

	origins := getAllowedOrigins()
	if len(origins) != 2 {
		t.Fatalf("Expected 2 origins, got %d", len(origins))
	}
	if origins[0] != "https://test1.com" || origins[1] != "https://test2.com" {
		t.Errorf("Expected specific origins, got %v", origins)
	}
}

func TestEnableCORSPreflight(t *testing.T) {
	handler := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called for a preflight request")
	}))

	req := httptest.NewRequest("OPTIONS", "/apartments", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("Unexpected Access-Control-Allow-Origin: %s", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestEnableCORSPassesThrough(t *testing.T) {
	called := false
	handler := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/apartments", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if !called {
		t.Error("Expected handler to be called for a non-preflight request")
	}
}
