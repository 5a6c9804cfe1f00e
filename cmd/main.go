package main

import (
	"context"
	"fmt"
	"log" // standard log for errors before zap is set up
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chinnasivakrishna/techtrole-backend/internal/config"
	"github.com/chinnasivakrishna/techtrole-backend/internal/database"
	"github.com/chinnasivakrishna/techtrole-backend/internal/handlers"
	"github.com/chinnasivakrishna/techtrole-backend/internal/otp"
	"github.com/chinnasivakrishna/techtrole-backend/internal/repository"
	"github.com/chinnasivakrishna/techtrole-backend/internal/server"
	"github.com/chinnasivakrishna/techtrole-backend/internal/services"
	"github.com/chinnasivakrishna/techtrole-backend/internal/sms"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables:", err)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.App.Env == "development" {
		l, _ := zap.NewDevelopment()
		logger = l
	} else {
		l, _ := zap.NewProduction()
		logger = l
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()
	sugar.Infof("Starting auth backend in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	// Database connections
	db, mongoClient, err := database.ConnectMongo(cfg.Mongo, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	// Redis is optional: without it the OTP cache is process-local and
	// send rate limiting is off, which only suits a single instance.
	var rdb *redis.Client
	var otpStore otp.Store
	var counter services.Counter
	if cfg.Redis.Addr != "" {
		rdb, err = database.ConnectRedis(cfg.Redis, sugar)
		if err != nil {
			sugar.Fatal(err)
		}
		otpStore = otp.NewRedisStore(rdb)
		counter = services.NewRedisCounter(rdb)
	} else {
		sugar.Warn("REDIS_ADDR not set, falling back to in-memory OTP store")
		otpStore = otp.NewMemoryStore()
	}

	gateway := buildGateway(cfg)
	if !gateway.IsConfigured() {
		sugar.Warnf("SMS gateway %q not fully configured. OTP delivery will fail.", cfg.SMS.Provider)
	} else {
		sugar.Infof("SMS gateway %q configured.", cfg.SMS.Provider)
	}

	userRepo := repository.NewMongoUserRepo(db, cfg.User.Collection)
	authSvc := services.NewAuthService(
		userRepo,
		gateway,
		otpStore,
		counter,
		cfg.App.JWT.Secret,
		cfg.App.JWT.SessionHours,
		cfg.Security.OtpTTLMinutes,
		cfg.Security.OtpRateLimitPerPhonePerHour,
		cfg.Security.PasswordHashCost,
		cfg.Security.RequirePhoneVerification,
		cfg.Security.VerifiedTTLMinutes,
		sugar,
	)
	h := handlers.NewHandler(authSvc, logger)

	app := server.New(cfg, h, logger)

	// Start server
	go func() {
		listenAddr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", listenAddr)
		if err := app.Listen(listenAddr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}

	if err := mongoClient.Disconnect(ctxShut); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			sugar.Errorf("Redis client close error: %v", err)
		}
	}

	sugar.Info("Graceful shutdown complete. Goodbye!")
}

func buildGateway(cfg *config.Config) sms.Gateway {
	if cfg.SMS.Provider == "twilio" {
		return sms.NewTwilioClient(cfg.SMS.Twilio.AccountSID, cfg.SMS.Twilio.AuthToken, cfg.SMS.Twilio.From)
	}
	return sms.NewMSG91Client(cfg.SMS.MSG91.AuthKey, cfg.SMS.MSG91.TemplateID)
}
