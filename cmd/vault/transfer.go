// Transfer command for the vault CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/editions/pkg/types"
)

var (
	flagTransferFrom string
	flagTransferTo   string
	flagTransferID   uint64
	flagTransferQty  uint64
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer a token between addresses",
	Long: `Transfer moves one token from --from to --to. The caller must be the
owner, a delegated operator for the token, or the ledger itself when
self-transfer is enabled.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		call, err := callEnvelope(0)
		if err != nil {
			return err
		}

		ledger, store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Detach()

		groups := []types.TransferGroup{{
			From: types.Address(flagTransferFrom),
			Txs: []types.TransferTx{{
				To:       types.Address(flagTransferTo),
				TokenID:  types.TokenID(flagTransferID),
				Quantity: flagTransferQty,
			}},
		}}
		if err := ledger.Transfer(call, groups); err != nil {
			return err
		}

		return printResult(map[string]any{"token_id": flagTransferID, "to": flagTransferTo}, func() {
			fmt.Printf("Token %d transferred to %s\n", flagTransferID, flagTransferTo)
		})
	},
}

func init() {
	transferCmd.Flags().StringVar(&flagTransferFrom, "from", "", "current owner address")
	transferCmd.Flags().StringVar(&flagTransferTo, "to", "", "destination address")
	transferCmd.Flags().Uint64Var(&flagTransferID, "id", 0, "token ID")
	transferCmd.Flags().Uint64Var(&flagTransferQty, "qty", 1, "quantity (0 or 1 for single-edition tokens)")
	transferCmd.MarkFlagRequired("from")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("id")
}
