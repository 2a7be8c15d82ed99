package config

import (
	"os"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-this-in-production"

type AuthConfig struct {
	JWTSecret          []byte
	SessionTTL         time.Duration
	SuperAdminEmail    string
	SuperAdminPassword string
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:          []byte(getEnv("JWT_SECRET", defaultJWTSecret)),
		SessionTTL:         getEnvDuration("SESSION_TTL", 24*time.Hour),
		SuperAdminEmail:    strings.ToLower(getEnv("SUPER_ADMIN_EMAIL", "mohit@mohitcorporation.com")),
		SuperAdminPassword: os.Getenv("SUPER_ADMIN_PASSWORD"),
	}
}

// UsesDefaultSecret reports whether JWT_SECRET was left unset.
func (c AuthConfig) UsesDefaultSecret() bool {
	return string(c.JWTSecret) == defaultJWTSecret
}
