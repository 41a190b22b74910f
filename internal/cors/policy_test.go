package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewPolicy(t *testing.T) {
	tests := []struct {
		name            string
		origin          string
		wantOrigin      string
		wantCredentials bool
	}{
		{name: "empty means wildcard", origin: "", wantOrigin: "*"},
		{name: "explicit wildcard", origin: "*", wantOrigin: "*"},
		{name: "explicit origin", origin: " https://vighnaharta.example ", wantOrigin: "https://vighnaharta.example", wantCredentials: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := NewPolicy(tt.origin).Headers()

			if headers[HeaderAllowOrigin] != tt.wantOrigin {
				t.Errorf("origin = %q, want %q", headers[HeaderAllowOrigin], tt.wantOrigin)
			}
			if headers[HeaderAllowMethods] != "GET, POST, PUT, DELETE, OPTIONS" {
				t.Errorf("unexpected methods %q", headers[HeaderAllowMethods])
			}
			if headers[HeaderAllowHeaders] != "Content-Type, Authorization, X-JWT, X-XSRF-TOKEN" {
				t.Errorf("unexpected allowed headers %q", headers[HeaderAllowHeaders])
			}
			if headers[HeaderMaxAge] != "86400" {
				t.Errorf("unexpected max age %q", headers[HeaderMaxAge])
			}
			_, hasCreds := headers[HeaderAllowCredentials]
			if hasCreds != tt.wantCredentials {
				t.Errorf("credentials present = %v, want %v", hasCreds, tt.wantCredentials)
			}
		})
	}
}

func TestHeadersReturnsCopy(t *testing.T) {
	p := NewPolicy("*")

	first := p.Headers()
	first[HeaderAllowOrigin] = "https://evil.example"
	delete(first, HeaderMaxAge)

	second := p.Headers()
	if second[HeaderAllowOrigin] != "*" {
		t.Errorf("mutating a returned map changed the policy: %q", second[HeaderAllowOrigin])
	}
	if second[HeaderMaxAge] != "86400" {
		t.Error("deleting from a returned map changed the policy")
	}
}

func TestApplyOverwrites(t *testing.T) {
	p := NewPolicy("https://vighnaharta.example")

	h := http.Header{}
	h.Set(HeaderAllowOrigin, "https://other.example")
	h.Add(HeaderAllowMethods, "GET")
	h.Add(HeaderAllowMethods, "PATCH")
	h.Set("Content-Type", "application/json")

	p.Apply(h)

	if got := h.Values(HeaderAllowOrigin); len(got) != 1 || got[0] != "https://vighnaharta.example" {
		t.Errorf("origin not overwritten: %v", got)
	}
	if got := h.Values(HeaderAllowMethods); len(got) != 1 || got[0] != allowedMethods {
		t.Errorf("methods not overwritten: %v", got)
	}
	if h.Get("Content-Type") != "application/json" {
		t.Error("unrelated header was touched")
	}
}

func TestPreflight(t *testing.T) {
	p := NewPolicy("*")
	rec := httptest.NewRecorder()

	p.Preflight(rec)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
	for k, v := range p.Headers() {
		if rec.Header().Get(k) != v {
			t.Errorf("header %s = %q, want %q", k, rec.Header().Get(k), v)
		}
	}
}
