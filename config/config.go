package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/encoderlee/eosapi/chain"
	"github.com/encoderlee/eosapi/wallet"
)

const envPrefix = "EOSAPI"

// Keys of the configuration, also used as viper keys.
const (
	KeyRPCHost            = "rpc_host"
	KeyTimeout            = "timeout"
	KeyUserAgent          = "user_agent"
	KeyCompression        = "compression"
	KeyExpirationDelaySec = "expiration_delay_sec"
	KeyLogLevel           = "log_level"
)

// FlagNames maps configuration keys to the command line flags that can set
// them.
var FlagNames = map[string]string{
	KeyRPCHost:            "rpc-host",
	KeyTimeout:            "timeout",
	KeyUserAgent:          "user-agent",
	KeyCompression:        "compression",
	KeyExpirationDelaySec: "expiration-delay",
	KeyLogLevel:           "log-level",
}

// DefaultConfig holds the values used when neither a file, the environment
// nor a flag sets a key.
var DefaultConfig = Config{
	RPCHost:            "https://wax.pink.gg",
	Timeout:            120 * time.Second,
	UserAgent:          "eosapi-go",
	Compression:        "none",
	ExpirationDelaySec: chain.DefaultExpirationDelaySec,
	LogLevel:           "info",
}

type Config struct {
	RPCHost            string           `mapstructure:"rpc_host" validate:"required,url"`
	Timeout            time.Duration    `mapstructure:"timeout" validate:"gt=0"`
	UserAgent          string           `mapstructure:"user_agent"`
	Compression        string           `mapstructure:"compression" validate:"compression"`
	ExpirationDelaySec uint32           `mapstructure:"expiration_delay_sec" validate:"gt=0"`
	LogLevel           string           `mapstructure:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Accounts           []wallet.Account `mapstructure:"accounts" validate:"dive"`
	Payer              *wallet.Account  `mapstructure:"payer" validate:"omitempty"`
}

// CompressionType returns the parsed compression; it cannot fail on a
// validated configuration.
func (c *Config) CompressionType() chain.CompressionType {
	compression, _ := chain.ParseCompression(c.Compression)
	return compression
}

// Load reads the configuration from the optional file, the EOSAPI_*
// environment and the flags that were set, in increasing priority.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyRPCHost, DefaultConfig.RPCHost)
	v.SetDefault(KeyTimeout, DefaultConfig.Timeout)
	v.SetDefault(KeyUserAgent, DefaultConfig.UserAgent)
	v.SetDefault(KeyCompression, DefaultConfig.Compression)
	v.SetDefault(KeyExpirationDelaySec, DefaultConfig.ExpirationDelaySec)
	v.SetDefault(KeyLogLevel, DefaultConfig.LogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		err := v.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
	}

	if flags != nil {
		for key, name := range FlagNames {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			err := v.BindPFlag(key, flag)
			if err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every field, including the account names.
func (c *Config) Validate() error {
	validate, err := NewValidator()
	if err != nil {
		return err
	}
	err = validate.Struct(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, verr := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on %q", verr.Namespace(), verr.Tag()))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
	}
	return err
}
