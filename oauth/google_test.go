package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestGoogleClient_AuthURL(t *testing.T) {
	g := NewGoogleClient("client-id", "client-secret", "https://app.flowly.test/auth/google/callback")

	raw := g.AuthURL("state-123")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("AuthURL() produced an unparseable url: %v", err)
	}

	q := parsed.Query()
	if q.Get("state") != "state-123" {
		t.Errorf("state = %q, want %q", q.Get("state"), "state-123")
	}
	if q.Get("client_id") != "client-id" {
		t.Errorf("client_id = %q, want %q", q.Get("client_id"), "client-id")
	}
	if q.Get("prompt") != "consent" {
		t.Errorf("prompt = %q, want consent", q.Get("prompt"))
	}
	if !strings.Contains(q.Get("scope"), "userinfo.email") {
		t.Errorf("scope %q is missing userinfo.email", q.Get("scope"))
	}
	if q.Get("redirect_uri") != "https://app.flowly.test/auth/google/callback" {
		t.Errorf("redirect_uri = %q", q.Get("redirect_uri"))
	}
}

func TestGoogleClient_FetchUserByAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer access-token-xyz" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		_, _ = w.Write([]byte(`{
			"id": "g-42",
			"email": "alice@example.com",
			"verified_email": true,
			"name": "Alice Doe",
			"picture": "https://example.com/p.jpg"
		}`))
	}))
	defer server.Close()

	g := NewGoogleClient("client-id", "client-secret", "https://cb")
	g.userInfoURL = server.URL

	profile, err := g.FetchUserByAccessToken(context.Background(), "access-token-xyz")
	if err != nil {
		t.Fatalf("FetchUserByAccessToken() error = %v", err)
	}
	if profile.ID != "g-42" {
		t.Errorf("ID = %q, want g-42", profile.ID)
	}
	if profile.Email != "alice@example.com" {
		t.Errorf("Email = %q", profile.Email)
	}
	if profile.Name != "Alice Doe" {
		t.Errorf("Name = %q", profile.Name)
	}
}

func TestGoogleClient_FetchUser_RejectsBadResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "upstream error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
			},
		},
		{
			name: "profile without id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"email":"alice@example.com"}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(test.handler)
			defer server.Close()

			g := NewGoogleClient("client-id", "client-secret", "https://cb")
			g.userInfoURL = server.URL

			if _, err := g.FetchUserByAccessToken(context.Background(), "tok"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
