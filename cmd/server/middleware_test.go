package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Seen-ID", requestIDFrom(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	h := requestIDMiddleware(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	id := rec.Header().Get(headerRequestID)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated id %q is not a uuid: %v", id, err)
	}
	if rec.Header().Get("X-Seen-ID") != id {
		t.Error("request id not propagated through the context")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "caller-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(headerRequestID); got != "caller-id" {
		t.Errorf("id = %q, want caller-id", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(discard, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		origins string
		origin  string
		want    string
	}{
		{"any", "", "http://ui.local", "*"},
		{"listed", "http://a.local, http://ui.local", "http://ui.local", "http://ui.local"},
		{"unlisted", "http://a.local", "http://ui.local", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/generate-map", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			corsMiddleware(tt.origins, okHandler()).ServeHTTP(rec, req)

			if rec.Code != http.StatusNoContent {
				t.Errorf("preflight status = %d", rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("allow origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	h := authMiddleware("secret", okHandler())

	tests := []struct {
		path   string
		auth   string
		status int
	}{
		{"/health", "", http.StatusOK},
		{"/api/generate-map", "", http.StatusUnauthorized},
		{"/api/generate-map", "Bearer wrong", http.StatusUnauthorized},
		{"/api/generate-map", "Bearer secret", http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, tt.path, nil)
		if tt.auth != "" {
			req.Header.Set("Authorization", tt.auth)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.status {
			t.Errorf("%s %q: status = %d, want %d", tt.path, tt.auth, rec.Code, tt.status)
		}
	}
}

func TestLogMiddlewareKeepsStatus(t *testing.T) {
	h := logMiddleware(discard, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
}
