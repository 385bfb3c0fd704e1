package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/encoderlee/eosapi/crypto"
)

type signOutput struct {
	Signature string `json:"signature"`
	PublicKey string `json:"public_key"`
}

func newSignDigestCmd() *cobra.Command {
	var flagKey string
	cmd := &cobra.Command{
		Use:   "sign-digest <hex>",
		Short: "Sign a 32-byte digest with a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digest, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("could not decode digest: %w", err)
			}
			if len(digest) != 32 {
				return fmt.Errorf("digest must be 32 bytes, got %d", len(digest))
			}
			key, err := crypto.NewPrivateKey(flagKey)
			if err != nil {
				return err
			}
			sig, err := key.Sign(digest)
			if err != nil {
				return err
			}
			text, err := sig.Text()
			if err != nil {
				return err
			}
			return printJSON(cmd, signOutput{Signature: text, PublicKey: key.PublicKey().String()})
		},
	}
	cmd.Flags().StringVarP(&flagKey, "key", "k", "", "private key (WIF, PVT_K1_ or hex)")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
