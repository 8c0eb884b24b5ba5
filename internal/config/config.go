package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port                 int    `env:"PORT" envDefault:"8080"`
	AppEnv               string `env:"APP_ENV" envDefault:"development"`
	DatabaseURL          string `env:"DATABASE_URL,required"`
	AutoMigrate          bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	RedisURL             string `env:"REDIS_URL"`
	CacheTTLSeconds      int    `env:"CACHE_TTL_SECONDS" envDefault:"300"`
	AdminUsername        string `env:"ADMIN_USERNAME"`
	AdminPassword        string `env:"ADMIN_PASSWORD"`
	JWTSecret            string `env:"JWT_SECRET"`
	RequireAuthForWrites bool   `env:"REQUIRE_AUTH_FOR_WRITES" envDefault:"true"`
	LogLevel             string `env:"LOG_LEVEL" envDefault:"info"`
	StaticDir            string `env:"STATIC_DIR" envDefault:"static"`

	S3Bucket           string `env:"S3_BUCKET"`
	S3Region           string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint         string `env:"S3_ENDPOINT"`
	S3AccessKey        string `env:"S3_ACCESS_KEY"`
	S3SecretKey        string `env:"S3_SECRET_KEY"`
	MediaPublicBaseURL string `env:"MEDIA_PUBLIC_BASE_URL"`

	MailFrom             string `env:"MAIL_FROM"`
	ContactTo            string `env:"CONTACT_TO"`
	SESRegion            string `env:"SES_REGION" envDefault:"us-east-1"`
	ContactRetentionDays int    `env:"CONTACT_RETENTION_DAYS" envDefault:"180"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// ContactRetention is zero when old contact messages are kept forever.
func (c *Config) ContactRetention() time.Duration {
	if c.ContactRetentionDays <= 0 {
		return 0
	}
	return time.Duration(c.ContactRetentionDays) * 24 * time.Hour
}

func (c *Config) AdminConfigured() bool {
	return c.AdminUsername != "" && c.AdminPassword != "" && c.JWTSecret != ""
}

func (c *Config) MediaConfigured() bool {
	return c.S3Bucket != "" && c.MediaPublicBaseURL != ""
}

func (c *Config) MailConfigured() bool {
	return c.MailFrom != "" && c.ContactTo != ""
}

func (c *Config) Validate(isProduction bool) error {
	if isProduction {
		if !c.AdminConfigured() {
			return fmt.Errorf("ADMIN_USERNAME, ADMIN_PASSWORD and JWT_SECRET must be set in production")
		}
		if err := validateSecret("JWT_SECRET", c.JWTSecret); err != nil {
			return err
		}

		if c.RedisURL == "" {
			log.Warn().Msg("REDIS_URL is empty in production: content cache disabled")
		}
		if !c.MediaConfigured() {
			log.Warn().Msg("S3_BUCKET or MEDIA_PUBLIC_BASE_URL is empty in production: image upload disabled")
		}
		if !c.MailConfigured() {
			log.Warn().Msg("MAIL_FROM or CONTACT_TO is empty in production: contact messages will only be logged")
		}
		if !c.RequireAuthForWrites {
			log.Warn().Msg("REQUIRE_AUTH_FOR_WRITES is false in production: content API accepts unauthenticated writes")
		}
	} else if !c.AdminConfigured() {
		log.Warn().Msg("admin credentials or JWT_SECRET not set: admin login will fail")
	}

	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
