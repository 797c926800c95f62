package fiber

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/flowlyhq/flowly/core"
	"github.com/flowlyhq/flowly/pkg/token"
)

const claimsKey = "claims"

// requireAuth validates the bearer token and stores the claims for the
// handler behind it.
func (h *Handler) requireAuth(c fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": core.ErrMissingAuthHeader.Error(),
		})
	}

	claims, err := h.codec.Parse(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": core.ErrInvalidToken.Error(),
		})
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// claimsFrom is only safe behind requireAuth.
func claimsFrom(c fiber.Ctx) *token.Claims {
	return c.Locals(claimsKey).(*token.Claims)
}
