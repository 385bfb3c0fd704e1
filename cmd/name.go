package cmd

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/encoderlee/eosapi/chain"
)

type nameOutput struct {
	Name  string `json:"name"`
	Value uint64 `json:"value"`
	Hex   string `json:"hex"`
}

func newNameOutput(name string, value uint64) nameOutput {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, value)
	return nameOutput{Name: name, Value: value, Hex: hex.EncodeToString(buf)}
}

func newNameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name",
		Short: "Convert account and action names",
	}

	encode := &cobra.Command{
		Use:   "encode <name>",
		Short: "Encode a name into its 64-bit value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := chain.StringToName(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, newNameOutput(args[0], value))
		},
	}

	var flagKeepDots bool
	decode := &cobra.Command{
		Use:   "decode <value>",
		Short: "Decode a 64-bit value, decimal or 16 hex digits of packed bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseNameValue(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, newNameOutput(chain.NameToString(value, !flagKeepDots), value))
		},
	}
	decode.Flags().BoolVar(&flagKeepDots, "keep-dots", false, "keep the trailing padding dots")

	cmd.AddCommand(encode, decode)
	return cmd
}

func parseNameValue(s string) (uint64, error) {
	if len(s) == 16 {
		if buf, err := hex.DecodeString(s); err == nil {
			return binary.LittleEndian.Uint64(buf), nil
		}
	}
	value, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid name value %q", s)
	}
	return value, nil
}
