package config

import (
	"os"
	"time"
)

// parseEnv overlays configuration from environment variables. The secret key
// in particular is expected to arrive this way in production rather than
// living in a file or the command line.
//
// Recognized variables:
//
//	ADDRESS        HTTP bind address
//	DATABASE_DSN   postgres URL or sqlite file path
//	SECRET_KEY     token signing secret
//	TOKEN_VALIDITY session lifetime as a Go duration ("1h")
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidity = d
		}
	}
}
