package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHSTS_SetsHeader(t *testing.T) {
	handler := HSTS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	want := "max-age=31536000; includeSubDomains"
	if got := rr.Header().Get("Strict-Transport-Security"); got != want {
		t.Errorf("Strict-Transport-Security = %q, want %q", got, want)
	}
}

func TestSecureCookies_AddsMissingFlags(t *testing.T) {
	handler := SecureCookies(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "access_token=abc; Path=/")
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	cookies := rr.Header()["Set-Cookie"]
	if len(cookies) != 1 {
		t.Fatalf("got %d Set-Cookie headers, want 1", len(cookies))
	}
	for _, attr := range []string{"Secure", "HttpOnly", "SameSite=Strict"} {
		if !strings.Contains(cookies[0], attr) {
			t.Errorf("cookie %q missing %s", cookies[0], attr)
		}
	}
}

func TestSecureCookies_KeepsExistingSameSite(t *testing.T) {
	handler := SecureCookies(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "access_token=abc; Path=/; SameSite=Lax; HttpOnly")
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	cookie := rr.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "SameSite=Lax") {
		t.Errorf("cookie %q should keep SameSite=Lax", cookie)
	}
	if strings.Contains(cookie, "SameSite=Strict") {
		t.Errorf("cookie %q should not gain SameSite=Strict", cookie)
	}
	if !strings.Contains(cookie, "Secure") {
		t.Errorf("cookie %q missing Secure", cookie)
	}
}

func TestSecureCookies_ImplicitWriteHeader(t *testing.T) {
	handler := SecureCookies(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "access_token=abc")
		w.Write([]byte("ok")) // no explicit WriteHeader
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !strings.Contains(rr.Header().Get("Set-Cookie"), "Secure") {
		t.Errorf("cookie %q missing Secure after implicit header write", rr.Header().Get("Set-Cookie"))
	}
}

func TestIsHostAllowed(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		allowedHosts []string
		want         bool
	}{
		{
			name:         "no allowed hosts accepts anything",
			host:         "evil.example.org",
			allowedHosts: nil,
			want:         true,
		},
		{
			name:         "exact match",
			host:         "contas.example.com",
			allowedHosts: []string{"contas.example.com"},
			want:         true,
		},
		{
			name:         "host with port matches allowed without port",
			host:         "contas.example.com:443",
			allowedHosts: []string{"contas.example.com"},
			want:         true,
		},
		{
			name:         "case insensitive",
			host:         "Contas.Example.COM",
			allowedHosts: []string{"contas.example.com"},
			want:         true,
		},
		{
			name:         "unknown host rejected",
			host:         "evil.example.org",
			allowedHosts: []string{"contas.example.com"},
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHostAllowed(tt.host, tt.allowedHosts); got != tt.want {
				t.Errorf("IsHostAllowed(%q, %v) = %v, want %v", tt.host, tt.allowedHosts, got, tt.want)
			}
		})
	}
}
