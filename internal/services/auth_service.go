package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/chinnasivakrishna/techtrole-backend/internal/models"
	"github.com/chinnasivakrishna/techtrole-backend/internal/otp"
	"github.com/chinnasivakrishna/techtrole-backend/internal/repository"
	"github.com/chinnasivakrishna/techtrole-backend/internal/sms"
	"github.com/chinnasivakrishna/techtrole-backend/internal/utils"
)

// Store key namespaces. Codes and verification markers live in the same
// otp.Store, so both prefixes are mandatory: a raw phone string as a key
// would let a crafted "phone number" collide with another entry class.
const (
	otpCodePrefix       = "code:"
	verifiedPhonePrefix = "verified:"
	otpRateLimitPrefix  = "otp_rate_limit:"
)

// authService implements the AuthService interface
type authService struct {
	userRepo                    repository.UserRepository
	gateway                     sms.Gateway
	otpStore                    otp.Store
	counter                     Counter
	jwtSecret                   string
	sessionTTLHours             int
	otpTTLMinutes               int
	otpRateLimitPerPhonePerHour int
	passwordHashCost            int
	requirePhoneVerification    bool
	verifiedTTLMinutes          int
	logger                      *zap.SugaredLogger
}

// NewAuthService creates a new authentication service. counter may be
// nil when rate limiting is disabled; the OTP store itself is whatever
// backend the caller injected.
func NewAuthService(
	userRepo repository.UserRepository,
	gateway sms.Gateway,
	otpStore otp.Store,
	counter Counter,
	jwtSecret string,
	sessionTTLHours int,
	otpTTLMinutes int,
	otpRateLimitPerPhonePerHour int,
	passwordHashCost int,
	requirePhoneVerification bool,
	verifiedTTLMinutes int,
	logger *zap.SugaredLogger,
) AuthService {
	return &authService{
		userRepo:                    userRepo,
		gateway:                     gateway,
		otpStore:                    otpStore,
		counter:                     counter,
		jwtSecret:                   jwtSecret,
		sessionTTLHours:             sessionTTLHours,
		otpTTLMinutes:               otpTTLMinutes,
		otpRateLimitPerPhonePerHour: otpRateLimitPerPhonePerHour,
		passwordHashCost:            passwordHashCost,
		requirePhoneVerification:    requirePhoneVerification,
		verifiedTTLMinutes:          verifiedTTLMinutes,
		logger:                      logger,
	}
}

// SendOTP generates a code for the phone number, caches it and hands it
// to the delivery gateway. A fresh code overwrites any earlier one for
// the same number. The cached code is not rolled back when delivery
// fails; it stays verifiable until it expires.
func (s *authService) SendOTP(ctx context.Context, phoneNumber string) error {
	if err := s.checkRateLimit(ctx, phoneNumber); err != nil {
		return err
	}

	code := otp.GenerateCode()

	ttl := time.Duration(s.otpTTLMinutes) * time.Minute
	if err := s.otpStore.Set(ctx, otpCodePrefix+phoneNumber, code, ttl); err != nil {
		return fmt.Errorf("failed to store OTP: %w", ErrInternal)
	}

	if err := s.gateway.SendOTP(ctx, phoneNumber, code); err != nil {
		s.logger.Errorw("OTP delivery failed", "phone", phoneNumber, "error", err)
		return ErrDeliveryFailed
	}

	return nil
}

// VerifyOTP checks the supplied code against the cached one. The entry
// is deleted only on a match; a mismatch leaves it live until expiry.
func (s *authService) VerifyOTP(ctx context.Context, phoneNumber, code string) error {
	stored, err := s.otpStore.Get(ctx, otpCodePrefix+phoneNumber)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			return ErrOTPNotFoundOrExpired
		}
		return fmt.Errorf("failed to read OTP: %w", ErrInternal)
	}

	if stored != code {
		return ErrOTPMismatch
	}

	if err := s.otpStore.Delete(ctx, otpCodePrefix+phoneNumber); err != nil {
		return fmt.Errorf("failed to delete OTP: %w", ErrInternal)
	}

	if s.requirePhoneVerification {
		ttl := time.Duration(s.verifiedTTLMinutes) * time.Minute
		if err := s.otpStore.Set(ctx, verifiedPhonePrefix+phoneNumber, "1", ttl); err != nil {
			return fmt.Errorf("failed to mark phone verified: %w", ErrInternal)
		}
	}

	return nil
}

// Register creates the user and issues a session token. Uniqueness is
// settled by the insert itself; the lookup beforehand only produces the
// friendlier conflict message without waiting for the index violation.
func (s *authService) Register(ctx context.Context, username, phoneNumber, password string) (*models.User, string, error) {
	if s.requirePhoneVerification {
		if _, err := s.otpStore.Get(ctx, verifiedPhonePrefix+phoneNumber); err != nil {
			if errors.Is(err, otp.ErrNotFound) {
				return nil, "", ErrPhoneNotVerified
			}
			return nil, "", fmt.Errorf("failed to check phone verification: %w", ErrInternal)
		}
	}

	existing, err := s.userRepo.FindByUsernameOrPhone(ctx, username, phoneNumber)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check existing user: %w", ErrInternal)
	}
	if existing != nil {
		return nil, "", ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordHashCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", ErrInternal)
	}

	user := &models.User{
		Username:        username,
		PhoneNumber:     phoneNumber,
		PasswordHash:    string(hash),
		IsPhoneVerified: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, "", ErrUserAlreadyExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", ErrInternal)
	}

	if s.requirePhoneVerification {
		// marker is single-use, same as the code itself
		_ = s.otpStore.Delete(ctx, verifiedPhonePrefix+phoneNumber)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by phone number and password.
func (s *authService) Login(ctx context.Context, phoneNumber, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to find user: %w", ErrInternal)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidPassword
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		// auth already succeeded, the stale timestamp is tolerable
		s.logger.Warnw("failed to update last login time", "user", user.UUID, "error", err)
	}

	return user, token, nil
}

func (s *authService) issueToken(user *models.User) (string, error) {
	token, _, err := utils.GenerateSessionToken(user.UUID, s.jwtSecret, s.sessionTTLHours)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", ErrInternal)
	}
	return token, nil
}

// checkRateLimit applies the per-phone hourly send limit via
// INCR/EXPIRE on the counter. Disabled when no counter or no limit is
// configured.
func (s *authService) checkRateLimit(ctx context.Context, phoneNumber string) error {
	if s.counter == nil || s.otpRateLimitPerPhonePerHour <= 0 {
		return nil
	}

	rateLimitKey := otpRateLimitPrefix + phoneNumber
	count, err := s.counter.Incr(ctx, rateLimitKey)
	if err != nil {
		return fmt.Errorf("failed to increment OTP rate limit: %w", ErrInternal)
	}

	if count == 1 {
		if err := s.counter.Expire(ctx, rateLimitKey, time.Hour); err != nil {
			return fmt.Errorf("failed to set expiry for OTP rate limit: %w", ErrInternal)
		}
	} else if count > int64(s.otpRateLimitPerPhonePerHour) {
		// keep the window count at the number of allowed sends
		_ = s.counter.Decr(ctx, rateLimitKey)
		return ErrOTPRateLimited
	}

	return nil
}
