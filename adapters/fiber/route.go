package fiber

import (
	"github.com/gofiber/fiber/v3"
)

// Register mounts every route on the app. Auth endpoints are public except
// the profile; the whole task group sits behind the bearer middleware.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.health)

	auth := app.Group("/auth")
	auth.Post("/register", h.register)
	auth.Post("/login", h.login)
	auth.Get("/profile", h.requireAuth, h.profile)
	auth.Get("/verify-email", h.verifyEmail)
	auth.Post("/resend-verification", h.resendVerification)
	auth.Post("/forgot-password", h.forgotPassword)
	auth.Post("/verify-otp", h.verifyOTP)
	auth.Post("/reset-password", h.resetPassword)
	auth.Get("/google", h.googleAuthURL)
	auth.Get("/google/callback", h.googleCallback)
	auth.Post("/google/mobile", h.googleMobile)

	tasks := app.Group("/api/tasks", h.requireAuth)
	tasks.Post("/", h.createTask)
	tasks.Get("/", h.listTasks)
	tasks.Get("/:id", h.getTask)
	tasks.Put("/:id", h.updateTask)
	tasks.Delete("/:id", h.deleteTask)
	tasks.Patch("/:id/toggle", h.toggleTask)
}
