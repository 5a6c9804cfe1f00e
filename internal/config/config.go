package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppCfg struct {
	Env          string        `yaml:"env"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	JWT          struct {
		Secret       string `yaml:"secret"`
		SessionHours int    `yaml:"sessionHours"`
	} `yaml:"jwt"`
}

type MongoCfg struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

type RedisCfg struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

type SMSCfg struct {
	// Provider selects the outbound gateway: "msg91" or "twilio".
	Provider string `yaml:"provider"`
	MSG91    struct {
		AuthKey    string `yaml:"authKey"`
		TemplateID string `yaml:"templateID"`
	} `yaml:"msg91"`
	Twilio struct {
		AccountSID string `yaml:"accountSID"`
		AuthToken  string `yaml:"authToken"`
		From       string `yaml:"from"`
	} `yaml:"twilio"`
}

type UserCfg struct {
	Collection string `yaml:"collection"`
}

type SecurityCfg struct {
	OtpTTLMinutes               int  `yaml:"otpTTLMinutes"`
	OtpRateLimitPerPhonePerHour int  `yaml:"otpRateLimitPerPhonePerHour"`
	PasswordHashCost            int  `yaml:"passwordHashCost"`
	RequirePhoneVerification    bool `yaml:"requirePhoneVerification"`
	VerifiedTTLMinutes          int  `yaml:"verifiedTTLMinutes"`
}

type Config struct {
	App      AppCfg      `yaml:"app"`
	Mongo    MongoCfg    `yaml:"mongo"`
	Redis    RedisCfg    `yaml:"redis"`
	SMS      SMSCfg      `yaml:"sms"`
	User     UserCfg     `yaml:"user"`
	Security SecurityCfg `yaml:"security"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	override := func(env string, apply func(string)) {
		if v := os.Getenv(env); v != "" {
			apply(v)
		}
	}

	override("APP_ENV", func(v string) { cfg.App.Env = v })
	override("APP_PORT", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = n
		}
	})
	// PORT is the platform convention and wins over APP_PORT
	override("PORT", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = n
		}
	})
	override("JWT_SECRET", func(v string) { cfg.App.JWT.Secret = v })
	override("MONGODB_URI", func(v string) { cfg.Mongo.URI = v })
	override("MONGO_DB", func(v string) { cfg.Mongo.Database = v })
	override("REDIS_ADDR", func(v string) { cfg.Redis.Addr = v })
	override("REDIS_PASSWORD", func(v string) { cfg.Redis.Password = v })
	override("SMS_PROVIDER", func(v string) { cfg.SMS.Provider = v })
	override("MSG91_AUTH_KEY", func(v string) { cfg.SMS.MSG91.AuthKey = v })
	override("MSG91_TEMPLATE_ID", func(v string) { cfg.SMS.MSG91.TemplateID = v })
	override("TWILIO_ACCOUNT_SID", func(v string) { cfg.SMS.Twilio.AccountSID = v })
	override("TWILIO_AUTH_TOKEN", func(v string) { cfg.SMS.Twilio.AuthToken = v })
	override("TWILIO_FROM", func(v string) { cfg.SMS.Twilio.From = v })

	override("JWT_SESSION_HOURS", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.App.JWT.SessionHours = n
		}
	})
	override("OTP_TTL_MINUTES", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.OtpTTLMinutes = n
		}
	})
	override("OTP_RATE_LIMIT_PER_PHONE_PER_HOUR", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.OtpRateLimitPerPhonePerHour = n
		}
	})
	override("PASSWORD_HASH_COST", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.PasswordHashCost = n
		}
	})
	if v := os.Getenv("REQUIRE_PHONE_VERIFICATION"); v == "true" {
		cfg.Security.RequirePhoneVerification = true
	}

	cfg.applyDefaults()

	if cfg.App.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required (set in .env or config.yaml)")
	}
	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 3000
	}
	if c.App.JWT.SessionHours == 0 {
		c.App.JWT.SessionHours = 24
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "techtrole"
	}
	if c.Mongo.ConnectTimeout == 0 {
		c.Mongo.ConnectTimeout = 15 * time.Second
	}
	if c.Redis.ConnectTimeout == 0 {
		c.Redis.ConnectTimeout = 5 * time.Second
	}
	if c.User.Collection == "" {
		c.User.Collection = "users"
	}
	if c.Security.OtpTTLMinutes == 0 {
		c.Security.OtpTTLMinutes = 10
	}
	if c.Security.PasswordHashCost == 0 {
		c.Security.PasswordHashCost = 10
	}
	if c.Security.VerifiedTTLMinutes == 0 {
		c.Security.VerifiedTTLMinutes = 30
	}
	if c.SMS.Provider == "" {
		c.SMS.Provider = "msg91"
	}
}
