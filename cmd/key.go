package cmd

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/encoderlee/eosapi/crypto"
)

type keyOutput struct {
	PrivateKey   string `json:"private_key"`
	PrivateKeyK1 string `json:"private_key_k1"`
	PublicKey    string `json:"public_key"`
	PublicKeyK1  string `json:"public_key_k1"`
}

func newKeyOutput(key *crypto.PrivateKey) keyOutput {
	pub := key.PublicKey()
	return keyOutput{
		PrivateKey:   key.String(),
		PrivateKeyK1: key.K1String(),
		PublicKey:    pub.String(),
		PublicKeyK1:  pub.K1String(),
	}
}

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Create and inspect key pairs",
	}

	var flagSeed string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a key pair, random unless a seed is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				key *crypto.PrivateKey
				err error
			)
			if flagSeed == "" {
				key, err = crypto.NewRandomPrivateKey()
			} else {
				seed, derr := hex.DecodeString(flagSeed)
				if derr != nil {
					return fmt.Errorf("could not decode seed: %w", derr)
				}
				key, err = crypto.NewDeterministicPrivateKey(bytes.NewReader(seed))
			}
			if err != nil {
				return fmt.Errorf("could not create key: %w", err)
			}
			return printJSON(cmd, newKeyOutput(key))
		},
	}
	create.Flags().StringVar(&flagSeed, "seed", "", "32 bytes of hex to derive the key from")

	show := &cobra.Command{
		Use:   "show <private key>",
		Short: "Show every text form of a private key and its public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := crypto.NewPrivateKey(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, newKeyOutput(key))
		},
	}

	cmd.AddCommand(create, show)
	return cmd
}
