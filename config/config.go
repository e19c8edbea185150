package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the process-wide configuration, read from the environment once
// at startup and never mutated afterwards. Components receive it by pointer
// instead of reading the environment themselves.
type Config struct {
	DatabaseURI    string
	JWTSecret      string
	JWTAlgorithm   string
	TokenTTL       time.Duration
	AllowedOrigins string
	Port           string
	Debug          bool
	MQTTURL        string
}

// Load builds a Config from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURI:    os.Getenv("POSTGRESQL_URI"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTAlgorithm:   getenv("JWT_ALGORITHM", "HS256"),
		AllowedOrigins: getenv("ALLOWED_ORIGINS", "http://localhost:3000"),
		Port:           getenv("PORT", "3000"),
		Debug:          os.Getenv("DEBUG") == "true",
		MQTTURL:        os.Getenv("MQTT_URL"),
	}

	if cfg.DatabaseURI == "" {
		return nil, errors.New("you must set your 'POSTGRESQL_URI' environmental variable")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("you must set your 'JWT_SECRET' environmental variable")
	}

	switch cfg.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return nil, fmt.Errorf("unsupported JWT_ALGORITHM %q", cfg.JWTAlgorithm)
	}

	// Default TTL is 7 days, expressed in minutes like the rest of the
	// deployment tooling expects.
	minutes := 7 * 24 * 60
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES %q", v)
		}
		minutes = n
	}
	cfg.TokenTTL = time.Duration(minutes) * time.Minute

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
