package services

import (
	"context"
	"errors"

	"github.com/chinnasivakrishna/techtrole-backend/internal/models"
)

var (
	ErrUserAlreadyExists    = errors.New("username or phone number already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrOTPNotFoundOrExpired = errors.New("otp expired or invalid")
	ErrOTPMismatch          = errors.New("invalid otp")
	ErrOTPRateLimited       = errors.New("too many OTP requests, please try again later")
	ErrPhoneNotVerified     = errors.New("phone number not verified")
	ErrDeliveryFailed       = errors.New("failed to send OTP")
	ErrInternal             = errors.New("internal server error")
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	SendOTP(ctx context.Context, phoneNumber string) error
	VerifyOTP(ctx context.Context, phoneNumber, code string) error
	Register(ctx context.Context, username, phoneNumber, password string) (*models.User, string, error)
	Login(ctx context.Context, phoneNumber, password string) (*models.User, string, error)
}
