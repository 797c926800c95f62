package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flowlyhq/flowly/core"
)

const accountColumns = `id, username, email, password_hash, email_verified, provider, google_id, avatar,
	verification_token, verification_expires, reset_otp, reset_expires, created_at, updated_at`

func scanAccount(row pgx.Row) (*core.Account, error) {
	a := &core.Account{}
	err := row.Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.EmailVerified, &a.Provider, &a.GoogleID, &a.Avatar,
		&a.VerificationToken, &a.VerificationExpires, &a.ResetOTP, &a.ResetExpires, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

func (a *Adapter) CreateAccount(ctx context.Context, account *core.Account) error {
	query := `INSERT INTO accounts
		(username, email, password_hash, email_verified, provider, google_id, avatar, verification_token, verification_expires)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := a.pool.QueryRow(ctx, query,
		account.Username, account.Email, account.PasswordHash, account.EmailVerified,
		account.Provider, account.GoogleID, account.Avatar,
		account.VerificationToken, account.VerificationExpires,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return uniqueViolation(err)
	}
	return nil
}

func (a *Adapter) GetAccountByID(ctx context.Context, id int64) (*core.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(a.pool.QueryRow(ctx, q, id))
}

func (a *Adapter) GetAccountByUsername(ctx context.Context, username string) (*core.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	return scanAccount(a.pool.QueryRow(ctx, q, username))
}

func (a *Adapter) GetAccountByEmail(ctx context.Context, email string) (*core.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return scanAccount(a.pool.QueryRow(ctx, q, email))
}

// GetAccountByUsernameOrEmail prefers the username match when one account's
// username equals another account's email.
func (a *Adapter) GetAccountByUsernameOrEmail(ctx context.Context, identifier string) (*core.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1 OR email = $1
		ORDER BY (username = $1) DESC LIMIT 1`
	return scanAccount(a.pool.QueryRow(ctx, q, identifier))
}

// GetAccountByVerificationToken only matches unexpired tokens; expiry is
// enforced in the predicate rather than by a cleanup job.
func (a *Adapter) GetAccountByVerificationToken(ctx context.Context, token string, now time.Time) (*core.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts
		WHERE verification_token = $1 AND verification_expires > $2`
	return scanAccount(a.pool.QueryRow(ctx, q, token, now))
}

func (a *Adapter) GetAccountByResetOTP(ctx context.Context, email, otp string, now time.Time) (*core.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts
		WHERE email = $1 AND reset_otp = $2 AND reset_expires > $3`
	return scanAccount(a.pool.QueryRow(ctx, q, email, otp, now))
}

func (a *Adapter) GetAccountByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*core.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts
		WHERE google_id = $1 OR email = $2
		ORDER BY (google_id = $1) DESC
		LIMIT 1`
	return scanAccount(a.pool.QueryRow(ctx, q, googleID, email))
}

func (a *Adapter) MarkEmailVerified(ctx context.Context, id int64) error {
	q := `UPDATE accounts
		SET email_verified = true, verification_token = NULL, verification_expires = NULL, updated_at = now()
		WHERE id = $1`
	tag, err := a.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}

func (a *Adapter) SetVerificationToken(ctx context.Context, id int64, token string, expires time.Time) error {
	q := `UPDATE accounts
		SET verification_token = $2, verification_expires = $3, updated_at = now()
		WHERE id = $1`
	tag, err := a.pool.Exec(ctx, q, id, token, expires)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}

func (a *Adapter) SetResetOTP(ctx context.Context, id int64, otp string, expires time.Time) error {
	q := `UPDATE accounts
		SET reset_otp = $2, reset_expires = $3, updated_at = now()
		WHERE id = $1`
	tag, err := a.pool.Exec(ctx, q, id, otp, expires)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}

// UpdatePassword clears the reset pair in the same statement, so an OTP
// redeems at most once.
func (a *Adapter) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	q := `UPDATE accounts
		SET password_hash = $2, reset_otp = NULL, reset_expires = NULL, updated_at = now()
		WHERE id = $1`
	tag, err := a.pool.Exec(ctx, q, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}

// LinkGoogle backfills the federated fields on first touch only; an account
// that already carries a google_id is left as is.
func (a *Adapter) LinkGoogle(ctx context.Context, id int64, googleID string, avatar *string) error {
	q := `UPDATE accounts
		SET google_id = $2, provider = $3, email_verified = true, avatar = COALESCE($4, avatar), updated_at = now()
		WHERE id = $1 AND google_id IS NULL`
	_, err := a.pool.Exec(ctx, q, id, googleID, core.ProviderGoogle, avatar)
	return err
}
