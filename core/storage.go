package core

import (
	"context"
	"time"
)

// AccountStorage defines account lookups and mutations. Every method maps to
// a single parameterized statement; uniqueness and single-use guarantees are
// enforced by the backing store.
type AccountStorage interface {
	CreateAccount(ctx context.Context, a *Account) error

	GetAccountByID(ctx context.Context, id int64) (*Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	GetAccountByUsernameOrEmail(ctx context.Context, identifier string) (*Account, error)
	// GetAccountByVerificationToken only matches tokens whose expiry is after
	// now; an expired token behaves as absent.
	GetAccountByVerificationToken(ctx context.Context, token string, now time.Time) (*Account, error)
	// GetAccountByResetOTP only matches an unexpired OTP for the given email.
	GetAccountByResetOTP(ctx context.Context, email, otp string, now time.Time) (*Account, error)
	GetAccountByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*Account, error)

	// MarkEmailVerified sets the verified flag and clears the token pair.
	MarkEmailVerified(ctx context.Context, id int64) error
	SetVerificationToken(ctx context.Context, id int64, token string, expires time.Time) error
	SetResetOTP(ctx context.Context, id int64, otp string, expires time.Time) error
	// UpdatePassword stores the new hash and clears the reset pair.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	// LinkGoogle backfills the federated fields on first touch only; an
	// already-linked account is left untouched.
	LinkGoogle(ctx context.Context, id int64, googleID string, avatar *string) error
}

// TaskStorage defines owner-scoped task persistence.
type TaskStorage interface {
	CreateTask(ctx context.Context, t *Task) error
	GetTaskByID(ctx context.Context, id, accountID int64) (*Task, error)
	ListTasks(ctx context.Context, accountID int64, filter TaskFilter) ([]*Task, error)
	UpdateTask(ctx context.Context, t *Task) error
	DeleteTask(ctx context.Context, id, accountID int64) error
}

// Storage is the full persistence port implemented by adapters.
type Storage interface {
	AccountStorage
	TaskStorage
}

// Mailer dispatches transactional mail. Sends are best-effort single
// attempts; implementations must not retry.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, username, token string) error
	SendPasswordResetOTP(ctx context.Context, to, username, otp string) error
}
