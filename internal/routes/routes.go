package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chinnasivakrishna/techtrole-backend/internal/handlers"
)

func Setup(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/api")
	auth := api.Group("/auth")

	auth.Post("/send-otp", h.SendOTP)
	auth.Post("/verify-otp", h.VerifyOTP)
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
}
