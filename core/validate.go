package core

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterInput contains the data needed to register a new account.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput contains the credentials for authentication. Username also
// accepts an email address.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResetPasswordInput authorizes a password change with a previously issued
// OTP.
type ResetPasswordInput struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// CreateTaskInput contains the data needed to create a task.
type CreateTaskInput struct {
	Judul        string  `json:"judul"`
	Deskripsi    *string `json:"deskripsi"`
	Kategori     *string `json:"kategori"`
	TenggatWaktu *string `json:"tenggat_waktu"`
}

// UpdateTaskInput patches a task; nil fields are left untouched.
type UpdateTaskInput struct {
	Judul        *string `json:"judul"`
	Deskripsi    *string `json:"deskripsi"`
	Kategori     *string `json:"kategori"`
	Status       *string `json:"status"`
	TenggatWaktu *string `json:"tenggat_waktu"`
}

// ValidateRegister collects every problem with a registration request in one
// pass.
func ValidateRegister(in RegisterInput) *ValidationError {
	var errs []string

	if in.Username == "" {
		errs = append(errs, "Username is required")
	} else if len(in.Username) < 3 {
		errs = append(errs, "Username minimal 3 karakter")
	}

	if in.Email == "" {
		errs = append(errs, "Email is required")
	} else if !emailRegex.MatchString(in.Email) {
		errs = append(errs, "Format email tidak valid")
	}

	if in.Password == "" {
		errs = append(errs, "Password is required")
	} else if len(in.Password) < 6 {
		errs = append(errs, "Password minimal 6 karakter")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ValidateLogin checks that both credential fields are present.
func ValidateLogin(in LoginInput) *ValidationError {
	var errs []string

	if in.Username == "" {
		errs = append(errs, "Username is required")
	}
	if in.Password == "" {
		errs = append(errs, "Password is required")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ValidateEmail checks a lone email field (forgot-password, resend flows).
func ValidateEmail(email string) *ValidationError {
	var errs []string

	if email == "" {
		errs = append(errs, "Email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "Format email tidak valid")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ValidateOTP checks the email+otp pair shared by verify-otp and
// reset-password.
func ValidateOTP(email, otp string) *ValidationError {
	var errs []string

	if email == "" {
		errs = append(errs, "Email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "Format email tidak valid")
	}

	if otp == "" {
		errs = append(errs, "OTP is required")
	} else if len(otp) != 6 {
		errs = append(errs, "OTP harus 6 digit")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ValidateResetPassword extends ValidateOTP with the new password rules.
func ValidateResetPassword(in ResetPasswordInput) *ValidationError {
	var errs []string
	if vErr := ValidateOTP(in.Email, in.OTP); vErr != nil {
		errs = vErr.Errors
	}

	if in.NewPassword == "" {
		errs = append(errs, "Password baru is required")
	} else if len(in.NewPassword) < 6 {
		errs = append(errs, "Password baru minimal 6 karakter")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ValidateCreateTask checks a task creation request.
func ValidateCreateTask(in CreateTaskInput) *ValidationError {
	var errs []string

	if strings.TrimSpace(in.Judul) == "" {
		errs = append(errs, "Judul is required")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ValidateUpdateTask rejects an unknown status value; field presence is
// checked by the task service.
func ValidateUpdateTask(in UpdateTaskInput) *ValidationError {
	var errs []string

	if in.Status != nil && *in.Status != TaskStatusPending && *in.Status != TaskStatusDone {
		errs = append(errs, "Status harus 'selesai' atau 'belum_selesai'")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
