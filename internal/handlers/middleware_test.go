package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"solarac_dashboard/internal/service"
)

func TestUserIDMiddleware_RejectsRefreshWithoutValidToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		errMsg string
	}{
		{"missing header", "", "missing Authorization header"},
		{"invalid scheme", "Token valid", "invalid Authorization header format"},
		{"bearer without token", "Bearer", "invalid Authorization header format"},
		{"unknown token", "Bearer expired", "invalid or expired token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dash := &mockDashboard{}
			r := newTestRouter(&service.Service{Authorization: operator(7), Dashboard: dash})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/refresh", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401", w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("json: %v", err)
			}
			if body["error"] != tc.errMsg {
				t.Fatalf("error: got %q, want %q", body["error"], tc.errMsg)
			}
			if dash.refreshCalls != 0 {
				t.Fatalf("Refresh called %d times without a valid token", dash.refreshCalls)
			}
		})
	}
}

func TestUserIDMiddleware_TokenUserKeysDashboardSession(t *testing.T) {
	dash := &mockDashboard{topics: []string{"X"}}
	auth := &mockAuth{tokens: map[string]int{"ops": 11, "field": 22}}
	r := newTestRouter(&service.Service{Authorization: auth, Dashboard: dash})

	steps := []struct {
		method, target, token string
	}{
		{http.MethodPost, "/api/v1/dashboard/refresh", "ops"},
		{http.MethodGet, "/api/v1/dashboard?topic=X", "field"},
		{http.MethodGet, "/api/v1/dashboard/topics", "ops"},
	}
	for _, s := range steps {
		if w := do(r, s.method, s.target, s.token, nil); w.Code != http.StatusOK {
			t.Fatalf("%s %s: status %d, body %s", s.method, s.target, w.Code, w.Body.String())
		}
	}

	want := []string{"refresh:11", "view:22", "topics:11"}
	if !reflect.DeepEqual(dash.calls, want) {
		t.Fatalf("session keys: got %v, want %v", dash.calls, want)
	}
}

func TestUserIDMiddleware_PublicRoutesNeedNoToken(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: operator(1), Dashboard: &mockDashboard{}})

	for _, path := range []string{"/", "/health"} {
		if w := do(r, http.MethodGet, path, "", nil); w.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d, want 200", path, w.Code)
		}
	}
}
