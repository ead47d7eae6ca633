package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func corsProbe(t *testing.T, allowList []string, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	handler := CORS(allowList)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(method, "/sessions", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestCORSAbsentOriginAlwaysAllowed(t *testing.T) {
	w := corsProbe(t, []string{"https://app.example"}, http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSEmptyAllowListAllowsAny(t *testing.T) {
	w := corsProbe(t, nil, http.MethodGet, "https://anywhere.example")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "https://anywhere.example", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSListedOriginAllowed(t *testing.T) {
	w := corsProbe(t, []string{"https://app.example", "https://admin.example"}, http.MethodGet, "https://app.example")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Values("Vary"), "Origin")
}

func TestCORSUnlistedOriginDeniedSilently(t *testing.T) {
	w := corsProbe(t, []string{"https://app.example"}, http.MethodGet, "https://evil.example")
	// The request itself still runs; only the access headers are withheld.
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	handler := CORS([]string{"https://app.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	r := httptest.NewRequest(http.MethodOptions, "/sessions", nil)
	r.Header.Set("Origin", "https://app.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET,POST,PUT,DELETE,OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-API-Key")
}

func TestCORSPreflightDeniedOriginGetsNoHeaders(t *testing.T) {
	w := corsProbe(t, []string{"https://app.example"}, http.MethodOptions, "https://evil.example")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
