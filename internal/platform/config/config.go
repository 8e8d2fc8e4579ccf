package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	Environment    string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	DefaultQRSize  int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:           ":8080",
		Environment:    "dev",
		RequestTimeout: 30 * time.Second,
		MaxBodyBytes:   64 * 1024,
		DefaultQRSize:  256,
	}

	if addr := os.Getenv("SPAYD_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if env := os.Getenv("SPAYD_ENV"); env != "" {
		cfg.Environment = env
	}
	if raw := os.Getenv("SPAYD_REQUEST_TIMEOUT"); raw != "" {
		if duration, err := time.ParseDuration(raw); err == nil {
			cfg.RequestTimeout = duration
		}
	}
	if raw := os.Getenv("SPAYD_MAX_BODY_BYTES"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			cfg.MaxBodyBytes = n
		}
	}
	if raw := os.Getenv("SPAYD_QR_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.DefaultQRSize = n
		}
	}

	return cfg
}
