package cmd

import (
	"github.com/spf13/cobra"

	"github.com/encoderlee/eosapi/chain"
)

func newDecodeCmd() *cobra.Command {
	var flagCompression string
	cmd := &cobra.Command{
		Use:   "decode <packed_trx hex>",
		Short: "Decode a packed transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compression, err := chain.ParseCompression(flagCompression)
			if err != nil {
				return err
			}
			packed := chain.PackedTransaction{
				Compression: compression,
				PackedTrx:   args[0],
			}
			tx, err := packed.Transaction()
			if err != nil {
				return err
			}
			return printJSON(cmd, tx)
		},
	}
	cmd.Flags().StringVar(&flagCompression, "packed-compression", "none", "compression of the packed bytes (none or zlib)")
	return cmd
}
