package cmd

import (
	"github.com/spf13/cobra"
)

func newPackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pack <trx.json>",
		Short: "Build and sign a transaction without pushing it",
		Long:  "Build and sign a transaction without pushing it. Use - to read the transaction from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(args[0])
			if err != nil {
				return err
			}
			tx, err := a.transactor().MakeTransaction(cmd.Context(), req)
			if err != nil {
				return err
			}
			packed, err := tx.PackedTransaction(a.cfg.CompressionType())
			if err != nil {
				return err
			}
			return printJSON(cmd, packed)
		},
	}
}

func newPushCmd(a *app) *cobra.Command {
	var flagSignatures []string
	cmd := &cobra.Command{
		Use:   "push <trx.json>",
		Short: "Build, sign and push a transaction",
		Long:  "Build, sign and push a transaction. Use - to read the transaction from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(args[0])
			if err != nil {
				return err
			}
			res, err := a.transactor().Push(cmd.Context(), req, flagSignatures...)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().StringSliceVarP(&flagSignatures, "signature", "s", nil, "extra signature to attach, can be repeated")
	return cmd
}
