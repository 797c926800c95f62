package core

import "time"

// Account providers
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Account represents a registered identity, local or Google-federated.
//
// Verification and reset secrets live as nullable column pairs
// (value + absolute expiry) and are cleared the moment they are consumed.
type Account struct {
	ID            int64   `json:"id"`
	Username      string  `json:"username"`
	Email         *string `json:"email,omitempty"`
	PasswordHash  *string `json:"-"` // Never expose in JSON
	EmailVerified bool    `json:"email_verified"`
	Provider      string  `json:"provider"`
	GoogleID      *string `json:"-"`
	Avatar        *string `json:"avatar,omitempty"`

	VerificationToken   *string    `json:"-"`
	VerificationExpires *time.Time `json:"-"`
	ResetOTP            *string    `json:"-"`
	ResetExpires        *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicAccount is the client-safe view of an Account.
type PublicAccount struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	Avatar        *string   `json:"avatar,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Public strips credentials and secrets from the account.
func (a *Account) Public() *PublicAccount {
	email := ""
	if a.Email != nil {
		email = *a.Email
	}
	return &PublicAccount{
		ID:            a.ID,
		Username:      a.Username,
		Email:         email,
		EmailVerified: a.EmailVerified,
		Avatar:        a.Avatar,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// GoogleProfile is the subset of a Google userinfo response the auth flows
// care about.
type GoogleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	VerifiedEmail bool   `json:"verified_email"`
}
