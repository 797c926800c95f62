package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestSender(t *testing.T, handler http.HandlerFunc) (*ResendSender, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sender := NewResendSender("test-api-key", "Flowly <no-reply@flowly.app>", "https://app.flowly.test", zap.NewNop())
	sender.baseURL = server.URL
	return sender, server
}

func TestResendSender_SendVerificationEmail(t *testing.T) {
	var captured resendRequest
	var gotAuth string

	sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/emails" {
			t.Errorf("path = %q, want /emails", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(resendResponse{ID: "mail-1"})
	})

	err := sender.SendVerificationEmail(context.Background(), "alice@example.com", "alice", "tok123")
	if err != nil {
		t.Fatalf("SendVerificationEmail() error = %v", err)
	}

	if gotAuth != "Bearer test-api-key" {
		t.Errorf("Authorization = %q, want bearer key", gotAuth)
	}
	if len(captured.To) != 1 || captured.To[0] != "alice@example.com" {
		t.Errorf("To = %v, want [alice@example.com]", captured.To)
	}
	if captured.Subject != "Verifikasi Email - Flowly App" {
		t.Errorf("Subject = %q", captured.Subject)
	}
	wantLink := "https://app.flowly.test/auth/verify-email?token=tok123"
	if !strings.Contains(captured.HTML, wantLink) {
		t.Errorf("html does not contain verification link %q", wantLink)
	}
	if !strings.Contains(captured.HTML, "Halo alice!") {
		t.Error("html does not greet the user")
	}
}

func TestResendSender_SendPasswordResetOTP(t *testing.T) {
	var captured resendRequest

	sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(resendResponse{ID: "mail-2"})
	})

	err := sender.SendPasswordResetOTP(context.Background(), "alice@example.com", "alice", "424242")
	if err != nil {
		t.Fatalf("SendPasswordResetOTP() error = %v", err)
	}

	if captured.Subject != "Reset Password - Flowly App" {
		t.Errorf("Subject = %q", captured.Subject)
	}
	if !strings.Contains(captured.HTML, "424242") {
		t.Error("html does not contain the otp")
	}
}

func TestResendSender_SurfacesAPIErrors(t *testing.T) {
	sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	})

	err := sender.SendVerificationEmail(context.Background(), "alice@example.com", "alice", "tok123")
	if err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error %q should include the status code", err)
	}
	if !strings.Contains(err.Error(), "invalid from address") {
		t.Errorf("error %q should include the response body", err)
	}
}
