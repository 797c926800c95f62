package core

import "errors"

// Conflict errors
var (
	ErrUsernameTaken = errors.New("username sudah digunakan") // 409 Conflict
	ErrEmailTaken    = errors.New("email sudah digunakan")    // 409 Conflict
)

// Authentication errors. These share deliberately generic messages so a
// caller cannot tell which check failed.
var (
	ErrInvalidCredentials = errors.New("username atau password salah")                              // 401
	ErrEmailNotVerified   = errors.New("email belum diverifikasi")                                  // 401
	ErrUseGoogleLogin     = errors.New("akun ini terdaftar melalui google, silakan login dengan google") // 401
	ErrMissingAuthHeader  = errors.New("token tidak ditemukan")                                     // 401
	ErrInvalidToken       = errors.New("token tidak valid")                                         // 401
)

// Verification and reset errors. Expired and mismatched values are
// indistinguishable from absent ones.
var (
	ErrInvalidVerifyToken = errors.New("token verifikasi tidak valid atau sudah kedaluwarsa") // 400
	ErrAlreadyVerified    = errors.New("email sudah diverifikasi")                            // 400
	ErrInvalidOTP         = errors.New("kode OTP tidak valid atau sudah kedaluwarsa")         // 400
)

// Not-found errors
var (
	ErrAccountNotFound = errors.New("user tidak ditemukan") // 404
	ErrTaskNotFound    = errors.New("task tidak ditemukan") // 404
)

// Task input errors
var (
	ErrNoFieldsToUpdate = errors.New("tidak ada field yang diupdate") // 400
)

// ValidationError carries the itemized field errors collected in one pass
// over a request body.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "Validation failed"
}
