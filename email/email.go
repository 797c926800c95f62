// Package email delivers transactional mail for the auth flows. The Resend
// sender is the production implementation; the console sender stands in when
// no API key is configured, so local development works without an account.
package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/flowlyhq/flowly/core"
)

// ConsoleSender logs outgoing mail instead of delivering it.
type ConsoleSender struct {
	logger *zap.Logger
}

func NewConsoleSender(logger *zap.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

func (s *ConsoleSender) SendVerificationEmail(_ context.Context, to, username, token string) error {
	s.logger.Info("verification email (console sender)",
		zap.String("to", to),
		zap.String("username", username),
		zap.String("token", token))
	return nil
}

func (s *ConsoleSender) SendPasswordResetOTP(_ context.Context, to, username, otp string) error {
	s.logger.Info("password reset otp (console sender)",
		zap.String("to", to),
		zap.String("username", username),
		zap.String("otp", otp))
	return nil
}

var _ core.Mailer = (*ConsoleSender)(nil)
