package network

import (
	"net/http"
	"time"
)

// DefaultConfig is the default configuration for the Client.
var DefaultConfig = Config{
	Timeout:   120 * time.Second,
	UserAgent: "eosapi-go",
}

type Config struct {
	// Timeout bounds each request, including reading the body.
	Timeout time.Duration
	// UserAgent is sent on every request when not empty.
	UserAgent string
	// HTTPClient replaces the default client; Timeout is then ignored.
	HTTPClient *http.Client
}

// Option configures optional parameters of the Client on initialization.
type Option func(*Config)

func WithTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		if timeout > 0 {
			cfg.Timeout = timeout
		}
	}
}

func WithUserAgent(agent string) Option {
	return func(cfg *Config) {
		cfg.UserAgent = agent
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(cfg *Config) {
		cfg.HTTPClient = client
	}
}
