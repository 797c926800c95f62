package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/flowlyhq/flowly/pkg/crypto"
	"github.com/flowlyhq/flowly/pkg/token"
)

// Validity windows for the single-use secrets handed out by the auth flows.
const (
	VerificationTokenTTL = 24 * time.Hour
	ResetOTPTTL          = 1 * time.Hour
)

// genericResetMessage is returned whether or not the email exists so the
// endpoint cannot be used to enumerate accounts.
const genericResetMessage = "Jika email terdaftar, instruksi telah dikirim"

// AuthService composes hashing, token issuing, OTP generation, storage and
// mail dispatch into the user-facing auth flows.
type AuthService struct {
	db     AccountStorage
	hasher crypto.PasswordHandler
	codec  *token.Codec
	mailer Mailer
	logger *zap.Logger

	now func() time.Time
}

func NewAuthService(db AccountStorage, hasher crypto.PasswordHandler, codec *token.Codec, mailer Mailer, logger *zap.Logger) *AuthService {
	return &AuthService{
		db:     db,
		hasher: hasher,
		codec:  codec,
		mailer: mailer,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates an unverified local account and sends the verification
// mail. Mail dispatch is best-effort; a failed send does not abort the
// registration.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*PublicAccount, error) {
	if vErr := ValidateRegister(input); vErr != nil {
		return nil, vErr
	}

	if _, err := s.db.GetAccountByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}

	if _, err := s.db.GetAccountByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verifyToken, err := crypto.GenerateVerificationToken()
	if err != nil {
		return nil, err
	}
	expires := s.now().Add(VerificationTokenTTL)

	email := input.Email
	account := &Account{
		Username:            input.Username,
		Email:               &email,
		PasswordHash:        &hashedPassword,
		EmailVerified:       false,
		Provider:            ProviderLocal,
		VerificationToken:   &verifyToken,
		VerificationExpires: &expires,
	}

	// The pre-checks above race with concurrent registrations; the storage
	// uniqueness constraints are the final authority and surface as the
	// same conflict errors.
	if err := s.db.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(ctx, email, account.Username, verifyToken); err != nil {
		s.logger.Warn("failed to send verification email",
			zap.String("username", account.Username),
			zap.Error(err))
	}

	return account.Public(), nil
}

// Login authenticates a local account by username or email and issues a
// session token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, *PublicAccount, error) {
	if vErr := ValidateLogin(input); vErr != nil {
		return "", nil, vErr
	}

	account, err := s.db.GetAccountByUsernameOrEmail(ctx, input.Username)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find account: %w", err)
	}

	if !account.EmailVerified {
		return "", nil, ErrEmailNotVerified
	}
	if account.Provider != ProviderLocal {
		return "", nil, ErrUseGoogleLogin
	}
	if account.PasswordHash == nil {
		return "", nil, ErrInvalidCredentials
	}

	valid, err := s.hasher.Verify(input.Password, *account.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return "", nil, ErrInvalidCredentials
	}

	sessionToken, err := s.issueToken(account)
	if err != nil {
		return "", nil, err
	}

	return sessionToken, account.Public(), nil
}

// Profile returns the public view of the authenticated account.
func (s *AuthService) Profile(ctx context.Context, accountID int64) (*PublicAccount, error) {
	account, err := s.db.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Public(), nil
}

// VerifyEmail consumes a verification token. An expired or unknown token is
// rejected without revealing which.
func (s *AuthService) VerifyEmail(ctx context.Context, verifyToken string) error {
	if verifyToken == "" {
		return ErrInvalidVerifyToken
	}

	account, err := s.db.GetAccountByVerificationToken(ctx, verifyToken, s.now())
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return ErrInvalidVerifyToken
		}
		return fmt.Errorf("failed to find account by token: %w", err)
	}

	return s.db.MarkEmailVerified(ctx, account.ID)
}

// ResendVerification rotates the verification token for an unverified local
// account. An unknown email gets the same generic answer as a known one.
func (s *AuthService) ResendVerification(ctx context.Context, email string) (string, error) {
	if vErr := ValidateEmail(email); vErr != nil {
		return "", vErr
	}

	account, err := s.db.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return genericResetMessage, nil
		}
		return "", fmt.Errorf("failed to find account: %w", err)
	}

	if account.EmailVerified {
		return "", ErrAlreadyVerified
	}

	verifyToken, err := crypto.GenerateVerificationToken()
	if err != nil {
		return "", err
	}
	if err := s.db.SetVerificationToken(ctx, account.ID, verifyToken, s.now().Add(VerificationTokenTTL)); err != nil {
		return "", fmt.Errorf("failed to store verification token: %w", err)
	}

	if err := s.mailer.SendVerificationEmail(ctx, email, account.Username, verifyToken); err != nil {
		s.logger.Warn("failed to send verification email",
			zap.String("username", account.Username),
			zap.Error(err))
	}

	return genericResetMessage, nil
}

// ForgotPassword issues a reset OTP. The response is identical whether or
// not the email belongs to an account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if vErr := ValidateEmail(email); vErr != nil {
		return "", vErr
	}

	account, err := s.db.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return genericResetMessage, nil
		}
		return "", fmt.Errorf("failed to find account: %w", err)
	}

	// Google-only accounts have no password to reset; answering with the
	// generic message keeps them indistinguishable.
	if account.Provider != ProviderLocal {
		return genericResetMessage, nil
	}

	otp, err := crypto.GenerateOTP()
	if err != nil {
		return "", err
	}
	if err := s.db.SetResetOTP(ctx, account.ID, otp, s.now().Add(ResetOTPTTL)); err != nil {
		return "", fmt.Errorf("failed to store reset otp: %w", err)
	}

	if err := s.mailer.SendPasswordResetOTP(ctx, email, account.Username, otp); err != nil {
		s.logger.Warn("failed to send reset otp email",
			zap.String("username", account.Username),
			zap.Error(err))
	}

	return genericResetMessage, nil
}

// VerifyOTP reports whether an OTP is currently redeemable. It never mutates
// state, so a client can pre-check a code without consuming it.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (bool, error) {
	if vErr := ValidateOTP(email, otp); vErr != nil {
		return false, vErr
	}

	if _, err := s.db.GetAccountByResetOTP(ctx, email, otp, s.now()); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check otp: %w", err)
	}

	return true, nil
}

// ResetPassword redeems an OTP and replaces the password. The OTP is cleared
// in the same statement that stores the hash, so it redeems at most once.
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if vErr := ValidateResetPassword(input); vErr != nil {
		return vErr
	}

	account, err := s.db.GetAccountByResetOTP(ctx, input.Email, input.OTP, s.now())
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to check otp: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.UpdatePassword(ctx, account.ID, hashedPassword)
}

// GoogleAuthResult reports the outcome of a federated login.
type GoogleAuthResult struct {
	Token     string
	Account   *PublicAccount
	IsNewUser bool
}

// GoogleAuth logs in (or registers) a Google identity. A brand-new profile
// becomes an auto-verified account; an existing account gets the federated
// fields backfilled exactly once, on first touch.
func (s *AuthService) GoogleAuth(ctx context.Context, profile GoogleProfile) (*GoogleAuthResult, error) {
	if profile.ID == "" || profile.Email == "" {
		return nil, &ValidationError{Errors: []string{"Google profile is missing id or email"}}
	}

	account, err := s.db.GetAccountByGoogleIDOrEmail(ctx, profile.ID, profile.Email)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	isNew := false
	switch {
	case err != nil:
		account, err = s.createGoogleAccount(ctx, profile)
		if err != nil {
			return nil, err
		}
		isNew = true

	case account.GoogleID == nil:
		var avatar *string
		if profile.Picture != "" {
			avatar = &profile.Picture
		}
		if err := s.db.LinkGoogle(ctx, account.ID, profile.ID, avatar); err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		account, err = s.db.GetAccountByID(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload account: %w", err)
		}
	}

	sessionToken, err := s.issueToken(account)
	if err != nil {
		return nil, err
	}

	return &GoogleAuthResult{
		Token:     sessionToken,
		Account:   account.Public(),
		IsNewUser: isNew,
	}, nil
}

func (s *AuthService) createGoogleAccount(ctx context.Context, profile GoogleProfile) (*Account, error) {
	username := deriveUsername(profile.Name)
	if _, err := s.db.GetAccountByUsername(ctx, username); err == nil {
		username += strconv.FormatInt(s.now().Unix(), 10)
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}

	email := profile.Email
	googleID := profile.ID
	var avatar *string
	if profile.Picture != "" {
		avatar = &profile.Picture
	}

	account := &Account{
		Username:      username,
		Email:         &email,
		EmailVerified: true,
		Provider:      ProviderGoogle,
		GoogleID:      &googleID,
		Avatar:        avatar,
	}
	if err := s.db.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AuthService) issueToken(account *Account) (string, error) {
	email := ""
	if account.Email != nil {
		email = *account.Email
	}
	sessionToken, err := s.codec.Issue(account.ID, account.Username, email)
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return sessionToken, nil
}

// deriveUsername lowercases a display name and strips everything that is not
// a letter or digit. "user" stands in for names with nothing usable.
func deriveUsername(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
