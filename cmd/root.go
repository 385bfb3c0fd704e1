package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/encoderlee/eosapi/config"
	"github.com/encoderlee/eosapi/network"
	"github.com/encoderlee/eosapi/transactor"
	"github.com/encoderlee/eosapi/wallet"
)

// app carries what the subcommands share once the configuration is loaded.
type app struct {
	log    zerolog.Logger
	cfg    *config.Config
	client *network.Client
	keys   *wallet.Registry
}

func (a *app) transactor() *transactor.Transactor {
	return transactor.New(a.log, a.client, a.client, a.client, a.keys,
		transactor.WithCompression(a.cfg.CompressionType()),
		transactor.WithExpirationDelay(a.cfg.ExpirationDelaySec),
	)
}

// NewRootCmd builds the command tree. Logs go to the command's error
// writer, results to its output writer.
func NewRootCmd() *cobra.Command {
	var (
		flagConfig  string
		flagJSONLog bool
	)

	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "eosapi",
		Short:         "Build, sign and push EOSIO transactions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flagConfig, cmd.Flags())
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}

			log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, flagJSONLog)
			if err != nil {
				return err
			}

			keys := wallet.NewRegistry()
			err = keys.ImportAccounts(cfg.Accounts)
			if err != nil {
				return fmt.Errorf("could not import accounts: %w", err)
			}
			if cfg.Payer != nil {
				err = keys.SetPayer(cfg.Payer.Account, cfg.Payer.PrivateKey, cfg.Payer.Permission)
				if err != nil {
					return err
				}
			}

			a.log = log
			a.cfg = cfg
			a.keys = keys
			a.client = network.NewClient(log, cfg.RPCHost,
				network.WithTimeout(cfg.Timeout),
				network.WithUserAgent(cfg.UserAgent),
			)

			log.Debug().Str("rpc_host", cfg.RPCHost).Int("accounts", len(cfg.Accounts)).Msg("configuration loaded")
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&flagConfig, "config", "c", "", "path to a YAML, TOML or JSON configuration file")
	flags.BoolVar(&flagJSONLog, "json-log", false, "write logs as JSON instead of console output")
	flags.StringP(config.FlagNames[config.KeyRPCHost], "u", config.DefaultConfig.RPCHost, "node HTTP API address")
	flags.Duration(config.FlagNames[config.KeyTimeout], config.DefaultConfig.Timeout, "timeout of each request to the node")
	flags.String(config.FlagNames[config.KeyUserAgent], config.DefaultConfig.UserAgent, "user agent sent to the node")
	flags.String(config.FlagNames[config.KeyCompression], config.DefaultConfig.Compression, "packed_trx compression (none or zlib)")
	flags.Uint32(config.FlagNames[config.KeyExpirationDelaySec], config.DefaultConfig.ExpirationDelaySec, "transaction expiration delay in seconds")
	flags.StringP(config.FlagNames[config.KeyLogLevel], "l", config.DefaultConfig.LogLevel, "log output level")

	root.AddCommand(
		newNameCmd(),
		newInfoCmd(a),
		newPackCmd(a),
		newPushCmd(a),
		newSignDigestCmd(),
		newKeyCmd(),
		newDecodeCmd(),
	)

	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, levelName string, jsonLog bool) (zerolog.Logger, error) {
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	if !jsonLog {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	log := zerolog.New(w).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return log, fmt.Errorf("could not parse log level %q: %w", levelName, err)
	}
	return log.Level(level), nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func readRequest(path string) (transactor.TransactionRequest, error) {
	var req transactor.TransactionRequest
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return req, fmt.Errorf("could not read transaction: %w", err)
	}
	err = json.Unmarshal(data, &req)
	if err != nil {
		return req, fmt.Errorf("could not decode transaction: %w", err)
	}
	return req, nil
}
