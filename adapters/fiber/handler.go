// Package fiber exposes the auth and task services over HTTP.
//
// Every response uses the same envelope: a success flag, an optional
// message, and either a payload or a list of validation errors.
package fiber

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/flowlyhq/flowly/core"
	"github.com/flowlyhq/flowly/oauth"
	"github.com/flowlyhq/flowly/pkg/token"
)

const oauthStateCookie = "oauthstate"

type Handler struct {
	auth   *core.AuthService
	tasks  *core.TaskService
	google *oauth.GoogleClient
	codec  *token.Codec
	logger *zap.Logger
}

func NewHandler(auth *core.AuthService, tasks *core.TaskService, google *oauth.GoogleClient, codec *token.Codec, logger *zap.Logger) *Handler {
	return &Handler{
		auth:   auth,
		tasks:  tasks,
		google: google,
		codec:  codec,
		logger: logger,
	}
}

func badJSON(c fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Invalid JSON format. Please check your request body.",
	})
}

// respondError translates service errors into the envelope. Anything without
// a dedicated status is logged and hidden behind a 500.
func (h *Handler) respondError(c fiber.Ctx, err error) error {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  vErr.Errors,
		})
	}

	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, core.ErrUsernameTaken),
		errors.Is(err, core.ErrEmailTaken):
		status = http.StatusConflict

	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrEmailNotVerified),
		errors.Is(err, core.ErrUseGoogleLogin),
		errors.Is(err, core.ErrMissingAuthHeader),
		errors.Is(err, core.ErrInvalidToken):
		status = http.StatusUnauthorized

	case errors.Is(err, core.ErrAccountNotFound),
		errors.Is(err, core.ErrTaskNotFound):
		status = http.StatusNotFound

	case errors.Is(err, core.ErrInvalidVerifyToken),
		errors.Is(err, core.ErrAlreadyVerified),
		errors.Is(err, core.ErrInvalidOTP),
		errors.Is(err, core.ErrNoFieldsToUpdate):
		status = http.StatusBadRequest

	default:
		h.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		message = "Internal server error"
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func (h *Handler) health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "ok",
	})
}

func (h *Handler) register(c fiber.Ctx) error {
	var input core.RegisterInput
	if err := c.Bind().Body(&input); err != nil {
		return badJSON(c)
	}

	account, err := h.auth.Register(c.Context(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User berhasil dibuat",
		"user":    account,
	})
}

func (h *Handler) login(c fiber.Ctx) error {
	var input core.LoginInput
	if err := c.Bind().Body(&input); err != nil {
		return badJSON(c)
	}

	accessToken, account, err := h.auth.Login(c.Context(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"access_token": accessToken,
		"user":         account,
	})
}

func (h *Handler) profile(c fiber.Ctx) error {
	claims := claimsFrom(c)

	account, err := h.auth.Profile(c.Context(), claims.UserID)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile berhasil diambil",
		"user":    account,
	})
}

func (h *Handler) verifyEmail(c fiber.Ctx) error {
	if err := h.auth.VerifyEmail(c.Context(), c.Query("token")); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Email berhasil diverifikasi",
	})
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *Handler) resendVerification(c fiber.Ctx) error {
	var req emailRequest
	if err := c.Bind().Body(&req); err != nil {
		return badJSON(c)
	}

	message, err := h.auth.ResendVerification(c.Context(), req.Email)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

func (h *Handler) forgotPassword(c fiber.Ctx) error {
	var req emailRequest
	if err := c.Bind().Body(&req); err != nil {
		return badJSON(c)
	}

	message, err := h.auth.ForgotPassword(c.Context(), req.Email)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *Handler) verifyOTP(c fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.Bind().Body(&req); err != nil {
		return badJSON(c)
	}

	ok, err := h.auth.VerifyOTP(c.Context(), req.Email, req.OTP)
	if err != nil {
		return h.respondError(c, err)
	}
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"valid":   false,
			"message": core.ErrInvalidOTP.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"valid":   true,
		"message": "Kode OTP valid",
	})
}

func (h *Handler) resetPassword(c fiber.Ctx) error {
	var input core.ResetPasswordInput
	if err := c.Bind().Body(&input); err != nil {
		return badJSON(c)
	}

	if err := h.auth.ResetPassword(c.Context(), input); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password berhasil direset",
	})
}

func (h *Handler) googleAuthURL(c fiber.Ctx) error {
	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return h.respondError(c, err)
	}
	state := hex.EncodeToString(stateBytes)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"success":  true,
		"auth_url": h.google.AuthURL(state),
		"message":  "Redirect user to this URL for Google authentication",
	})
}

func (h *Handler) googleCallback(c fiber.Ctx) error {
	if upstream := c.Query("error"); upstream != "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Google authentication was cancelled or failed",
			"error":   upstream,
		})
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Authorization code is required",
		})
	}

	if state := c.Cookies(oauthStateCookie); state == "" || c.Query("state") != state {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid oauth state",
		})
	}
	c.ClearCookie(oauthStateCookie)

	// The code exchange forwards Google's own error text; everything after
	// it stays behind the generic mapping.
	oauthToken, err := h.google.Exchange(c.Context(), code)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	profile, err := h.google.FetchUser(c.Context(), oauthToken)
	if err != nil {
		return h.respondError(c, err)
	}

	return h.finishGoogleAuth(c, profile)
}

type googleMobileRequest struct {
	AccessToken string `json:"access_token"`
}

func (h *Handler) googleMobile(c fiber.Ctx) error {
	var req googleMobileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badJSON(c)
	}
	if req.AccessToken == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Google access token is required",
		})
	}

	profile, err := h.google.FetchUserByAccessToken(c.Context(), req.AccessToken)
	if err != nil {
		return h.respondError(c, err)
	}

	return h.finishGoogleAuth(c, profile)
}

func (h *Handler) finishGoogleAuth(c fiber.Ctx, profile *core.GoogleProfile) error {
	result, err := h.auth.GoogleAuth(c.Context(), *profile)
	if err != nil {
		return h.respondError(c, err)
	}

	message := "Login successful"
	if result.IsNewUser {
		message = "Account created successfully"
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      message,
		"access_token": result.Token,
		"user":         result.Account,
		"is_new_user":  result.IsNewUser,
	})
}
