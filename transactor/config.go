package transactor

import (
	"time"

	"github.com/encoderlee/eosapi/chain"
)

// DefaultConfig is the default configuration for the Transactor.
var DefaultConfig = Config{
	Compression:        chain.None,
	ExpirationDelaySec: chain.DefaultExpirationDelaySec,
	Clock:              time.Now,
}

type Config struct {
	// Compression of packed_trx when pushing.
	Compression chain.CompressionType
	// ExpirationDelaySec is added to the current time when linking.
	ExpirationDelaySec uint32
	// Clock gives the current time used for expirations.
	Clock func() time.Time
}

// Option configures optional parameters of the Transactor on initialization.
type Option func(*Config)

func WithCompression(compression chain.CompressionType) Option {
	return func(cfg *Config) {
		cfg.Compression = compression
	}
}

func WithExpirationDelay(seconds uint32) Option {
	return func(cfg *Config) {
		if seconds > 0 {
			cfg.ExpirationDelaySec = seconds
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(cfg *Config) {
		if clock != nil {
			cfg.Clock = clock
		}
	}
}
