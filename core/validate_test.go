package core

import (
	"strings"
	"testing"
)

func hasMessage(t *testing.T, vErr *ValidationError, want string) {
	t.Helper()
	if vErr == nil {
		t.Fatalf("expected a validation error containing %q, got nil", want)
	}
	for _, msg := range vErr.Errors {
		if msg == want {
			return
		}
	}
	t.Errorf("messages %v do not contain %q", vErr.Errors, want)
}

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name     string
		input    RegisterInput
		wantMsgs []string
	}{
		{
			name:  "accepts valid input",
			input: RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret123"},
		},
		{
			name:     "requires every field",
			input:    RegisterInput{},
			wantMsgs: []string{"Username is required", "Email is required", "Password is required"},
		},
		{
			name:     "enforces username length",
			input:    RegisterInput{Username: "ab", Email: "a@b.co", Password: "secret123"},
			wantMsgs: []string{"Username minimal 3 karakter"},
		},
		{
			name:     "enforces email format",
			input:    RegisterInput{Username: "alice", Email: "alice@", Password: "secret123"},
			wantMsgs: []string{"Format email tidak valid"},
		},
		{
			name:     "enforces password length",
			input:    RegisterInput{Username: "alice", Email: "a@b.co", Password: "12345"},
			wantMsgs: []string{"Password minimal 6 karakter"},
		},
		{
			name:     "collects multiple problems at once",
			input:    RegisterInput{Username: "ab", Email: "nope", Password: "123"},
			wantMsgs: []string{"Username minimal 3 karakter", "Format email tidak valid", "Password minimal 6 karakter"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vErr := ValidateRegister(test.input)

			if len(test.wantMsgs) == 0 {
				if vErr != nil {
					t.Fatalf("ValidateRegister() = %v, want nil", vErr)
				}
				return
			}
			for _, want := range test.wantMsgs {
				hasMessage(t, vErr, want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{name: "plain address", email: "a@b.co", valid: true},
		{name: "subdomain", email: "a@mail.b.co", valid: true},
		{name: "plus tag", email: "a+tag@b.co", valid: true},
		{name: "empty", email: "", valid: false},
		{name: "missing domain", email: "a@", valid: false},
		{name: "missing tld", email: "a@b", valid: false},
		{name: "contains space", email: "a b@c.co", valid: false},
		{name: "double at", email: "a@@b.co", valid: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vErr := ValidateEmail(test.email)
			if (vErr == nil) != test.valid {
				t.Errorf("ValidateEmail(%q) = %v, want valid=%v", test.email, vErr, test.valid)
			}
		})
	}
}

func TestValidateOTP(t *testing.T) {
	if vErr := ValidateOTP("a@b.co", "123456"); vErr != nil {
		t.Errorf("ValidateOTP(valid) = %v, want nil", vErr)
	}
	hasMessage(t, ValidateOTP("a@b.co", ""), "OTP is required")
	hasMessage(t, ValidateOTP("a@b.co", "12345"), "OTP harus 6 digit")
	hasMessage(t, ValidateOTP("", "123456"), "Email is required")
}

func TestValidateResetPassword(t *testing.T) {
	valid := ResetPasswordInput{Email: "a@b.co", OTP: "123456", NewPassword: "secret123"}
	if vErr := ValidateResetPassword(valid); vErr != nil {
		t.Errorf("ValidateResetPassword(valid) = %v, want nil", vErr)
	}

	hasMessage(t, ValidateResetPassword(ResetPasswordInput{Email: "a@b.co", OTP: "123456"}),
		"Password baru is required")
	hasMessage(t, ValidateResetPassword(ResetPasswordInput{Email: "a@b.co", OTP: "123456", NewPassword: "123"}),
		"Password baru minimal 6 karakter")

	// Shared email+otp rules still apply.
	vErr := ValidateResetPassword(ResetPasswordInput{OTP: "12", NewPassword: "123"})
	hasMessage(t, vErr, "Email is required")
	hasMessage(t, vErr, "OTP harus 6 digit")
	hasMessage(t, vErr, "Password baru minimal 6 karakter")
}

func TestValidateCreateTask(t *testing.T) {
	if vErr := ValidateCreateTask(CreateTaskInput{Judul: "Belanja"}); vErr != nil {
		t.Errorf("ValidateCreateTask(valid) = %v, want nil", vErr)
	}
	hasMessage(t, ValidateCreateTask(CreateTaskInput{}), "Judul is required")
	hasMessage(t, ValidateCreateTask(CreateTaskInput{Judul: "   "}), "Judul is required")
}

func TestValidateUpdateTask(t *testing.T) {
	selesai := TaskStatusDone
	if vErr := ValidateUpdateTask(UpdateTaskInput{Status: &selesai}); vErr != nil {
		t.Errorf("ValidateUpdateTask(selesai) = %v, want nil", vErr)
	}
	if vErr := ValidateUpdateTask(UpdateTaskInput{}); vErr != nil {
		t.Errorf("ValidateUpdateTask(empty) = %v, want nil", vErr)
	}

	bogus := "done"
	vErr := ValidateUpdateTask(UpdateTaskInput{Status: &bogus})
	if vErr == nil {
		t.Fatal("ValidateUpdateTask should reject an unknown status")
	}
	if !strings.Contains(vErr.Errors[0], "Status") {
		t.Errorf("message = %q, want a status message", vErr.Errors[0])
	}
}
