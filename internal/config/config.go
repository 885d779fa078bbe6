package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string

	// TokenSecret signs every issued token. Changing it invalidates all
	// outstanding tokens at once; there is no rotation path.
	TokenSecret     string
	TokenTTLMinutes int

	AuthzMode string

	MailProvider string

	BcryptCost int

	LoginRateLimit         int
	LoginRateWindowSeconds int
	RateLimitMaxKeys       int
	RateLimitFailClosed    bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:               addr,
		PostgresDSN:            os.Getenv("POSTGRES_DSN"),
		TokenSecret:            os.Getenv("TOKEN_SECRET"),
		TokenTTLMinutes:        envIntDefault("TOKEN_TTL_MINUTES", 10),
		AuthzMode:              envDefault("AUTHZ_MODE", "static"),
		MailProvider:           envDefault("MAIL_PROVIDER", "log"),
		BcryptCost:             envIntDefault("BCRYPT_COST", 0),
		LoginRateLimit:         envIntDefault("LOGIN_RATE_LIMIT", 0),
		LoginRateWindowSeconds: envIntDefault("LOGIN_RATE_WINDOW_SECONDS", 60),
		RateLimitMaxKeys:       envIntDefault("RATE_LIMIT_MAX_KEYS", 10000),
		RateLimitFailClosed:    envBoolDefault("RATE_LIMIT_FAIL_CLOSED", false),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                envIntDefault("REDIS_DB", 0),
	}
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func envBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "Yes":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "No":
		return false
	default:
		return def
	}
}

func (c Config) TokenTTL() time.Duration {
	if c.TokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

func (c Config) LoginRateWindow() time.Duration {
	if c.LoginRateWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.LoginRateWindowSeconds) * time.Second
}
