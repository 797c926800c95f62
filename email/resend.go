package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/flowlyhq/flowly/core"
)

const defaultResendBaseURL = "https://api.resend.com"

// ResendSender delivers mail through the Resend HTTP API.
type ResendSender struct {
	apiKey     string
	from       string
	appBaseURL string
	baseURL    string
	client     *http.Client
	logger     *zap.Logger
}

func NewResendSender(apiKey, from, appBaseURL string, logger *zap.Logger) *ResendSender {
	return &ResendSender{
		apiKey:     apiKey,
		from:       from,
		appBaseURL: appBaseURL,
		baseURL:    defaultResendBaseURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID string `json:"id"`
}

func (s *ResendSender) SendVerificationEmail(ctx context.Context, to, username, token string) error {
	verifyURL := fmt.Sprintf("%s/auth/verify-email?token=%s", s.appBaseURL, token)
	html := fmt.Sprintf(verificationHTML, username, verifyURL, verifyURL)
	return s.send(ctx, to, "Verifikasi Email - Flowly App", html)
}

func (s *ResendSender) SendPasswordResetOTP(ctx context.Context, to, username, otp string) error {
	html := fmt.Sprintf(resetOTPHTML, username, otp)
	return s.send(ctx, to, "Reset Password - Flowly App", html)
}

func (s *ResendSender) send(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(resendRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to encode mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend returned %d: %s", resp.StatusCode, detail)
	}

	var parsed resendResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil {
		s.logger.Info("email sent", zap.String("resend_id", parsed.ID), zap.String("subject", subject))
	}
	return nil
}

const verificationHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Verifikasi Email</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #4CAF50; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 8px 8px; }
    .button { display: inline-block; background: #4CAF50; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; margin: 20px 0; }
    .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Selamat Datang di Flowly!</h1>
    </div>
    <div class="content">
      <h2>Halo %s!</h2>
      <p>Terima kasih telah mendaftar di Flowly App. Untuk melengkapi proses registrasi, silakan verifikasi email Anda dengan mengklik tombol di bawah ini:</p>
      <div style="text-align: center;">
        <a href="%s" class="button">Verifikasi Email</a>
      </div>
      <p>Atau salin dan tempel tautan berikut ke browser Anda:</p>
      <p style="background: #eee; padding: 10px; border-radius: 4px; word-break: break-all;">%s</p>
      <p><strong>Catatan:</strong> Tautan verifikasi ini akan kedaluwarsa dalam 24 jam.</p>
      <p>Jika Anda tidak mendaftar di Flowly App, silakan abaikan email ini.</p>
    </div>
    <div class="footer">
      <p>&copy; 2025 Flowly App. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`

const resetOTPHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Reset Password</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #FF9800; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 8px 8px; }
    .otp-code { background: #fff; border: 2px dashed #FF9800; padding: 20px; text-align: center; margin: 20px 0; border-radius: 8px; }
    .otp-number { font-size: 32px; font-weight: bold; color: #FF9800; letter-spacing: 5px; }
    .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Reset Password</h1>
    </div>
    <div class="content">
      <h2>Halo %s!</h2>
      <p>Kami menerima permintaan untuk reset password akun Flowly Anda. Gunakan kode OTP berikut untuk melanjutkan proses reset password:</p>
      <div class="otp-code">
        <p style="margin: 0; font-size: 14px; color: #666;">Kode OTP Anda:</p>
        <div class="otp-number">%s</div>
      </div>
      <p><strong>Penting:</strong></p>
      <ul>
        <li>Kode OTP ini hanya berlaku selama <strong>1 jam</strong></li>
        <li>Jangan bagikan kode ini kepada siapa pun</li>
        <li>Masukkan kode ini di aplikasi Flowly untuk melanjutkan reset password</li>
      </ul>
      <p>Jika Anda tidak meminta reset password, silakan abaikan email ini dan pastikan akun Anda aman.</p>
    </div>
    <div class="footer">
      <p>&copy; 2025 Flowly App. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`

var _ core.Mailer = (*ResendSender)(nil)
