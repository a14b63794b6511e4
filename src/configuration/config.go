package configuration

import (
	"os"
	"time"
)

const (
	PORT                 = "PORT"
	REDIS_URL            = "REDIS_URL"
	GATEWAY_API_URL      = "GATEWAY_API_URL"
	GATEWAY_KEY_ID       = "GATEWAY_KEY_ID"
	GATEWAY_KEY_SECRET   = "GATEWAY_KEY_SECRET"
	DEFAULT_CURRENCY     = "INR"
	DEFAULT_GATEWAY_URL  = "https://api.razorpay.com/v1"
	DEFAULT_HTTP_TIMEOUT = 10 * time.Second
)

// Credentials holds the gateway secret pair. It is read once at startup and
// injected; handlers never reach into the environment.
type Credentials struct {
	KeyID     string
	KeySecret string
}

func (c Credentials) Configured() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

type Config struct {
	Port        string
	RedisURL    string
	GatewayURL  string
	Credentials Credentials
}

func Load() Config {
	cfg := Config{
		Port:       os.Getenv(PORT),
		RedisURL:   os.Getenv(REDIS_URL),
		GatewayURL: os.Getenv(GATEWAY_API_URL),
		Credentials: Credentials{
			KeyID:     os.Getenv(GATEWAY_KEY_ID),
			KeySecret: os.Getenv(GATEWAY_KEY_SECRET),
		},
	}
	if cfg.Port == "" {
		cfg.Port = ":8080"
	}
	if cfg.GatewayURL == "" {
		cfg.GatewayURL = DEFAULT_GATEWAY_URL
	}
	return cfg
}
