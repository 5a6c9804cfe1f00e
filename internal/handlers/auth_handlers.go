package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/chinnasivakrishna/techtrole-backend/internal/models"
	"github.com/chinnasivakrishna/techtrole-backend/internal/services"
	"github.com/chinnasivakrishna/techtrole-backend/internal/utils"
)

type Handler struct {
	svc    services.AuthService
	logger *zap.Logger
}

func NewHandler(svc services.AuthService, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// SendOTP handles POST /api/auth/send-otp.
func (h *Handler) SendOTP(c *fiber.Ctx) error {
	var req models.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Phone number is required")
	}
	if utils.MissingRequired(&req) {
		return message(c, fiber.StatusBadRequest, "Phone number is required")
	}

	if err := h.svc.SendOTP(c.Context(), req.PhoneNumber); err != nil {
		switch {
		case errors.Is(err, services.ErrOTPRateLimited):
			return message(c, fiber.StatusTooManyRequests, "Too many OTP requests, please try again later")
		case errors.Is(err, services.ErrDeliveryFailed):
			return message(c, fiber.StatusInternalServerError, "Failed to send OTP")
		default:
			h.logger.Error("send-otp failed", zap.Error(err))
			return message(c, fiber.StatusInternalServerError, "Server error")
		}
	}

	return message(c, fiber.StatusOK, "OTP sent successfully")
}

// VerifyOTP handles POST /api/auth/verify-otp.
func (h *Handler) VerifyOTP(c *fiber.Ctx) error {
	var req models.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Phone number and OTP are required")
	}
	if utils.MissingRequired(&req) {
		return message(c, fiber.StatusBadRequest, "Phone number and OTP are required")
	}

	if err := h.svc.VerifyOTP(c.Context(), req.PhoneNumber, req.OTP); err != nil {
		switch {
		case errors.Is(err, services.ErrOTPNotFoundOrExpired):
			return message(c, fiber.StatusBadRequest, "OTP expired or invalid")
		case errors.Is(err, services.ErrOTPMismatch):
			return message(c, fiber.StatusBadRequest, "Invalid OTP")
		default:
			h.logger.Error("verify-otp failed", zap.Error(err))
			return message(c, fiber.StatusInternalServerError, "Server error")
		}
	}

	return message(c, fiber.StatusOK, "OTP verified successfully")
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "All fields are required")
	}
	if utils.MissingRequired(&req) {
		return message(c, fiber.StatusBadRequest, "All fields are required")
	}

	user, token, err := h.svc.Register(c.Context(), req.Username, req.PhoneNumber, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			return message(c, fiber.StatusBadRequest, "Username or phone number already registered")
		case errors.Is(err, services.ErrPhoneNotVerified):
			return message(c, fiber.StatusBadRequest, "Phone number not verified")
		default:
			h.logger.Error("register failed", zap.Error(err))
			return message(c, fiber.StatusInternalServerError, "Server error")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "All fields are required")
	}
	if utils.MissingRequired(&req) {
		return message(c, fiber.StatusBadRequest, "All fields are required")
	}

	user, token, err := h.svc.Login(c.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return message(c, fiber.StatusBadRequest, "User not found")
		case errors.Is(err, services.ErrInvalidPassword):
			return message(c, fiber.StatusBadRequest, "Invalid password")
		default:
			h.logger.Error("login failed", zap.Error(err))
			return message(c, fiber.StatusInternalServerError, "Server error")
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}
