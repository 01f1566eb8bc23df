// Mint command for the vault CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/editions/pkg/types"
)

var (
	flagMintAmount  int64
	flagMintPayment uint64
)

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint new tokens to the caller",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		call, err := callEnvelope(types.Mutez(flagMintPayment))
		if err != nil {
			return err
		}

		ledger, store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Detach()

		if err := ledger.Mint(call, flagMintAmount); err != nil {
			return err
		}

		total := ledger.CountTokens()
		return printResult(map[string]any{"minted": flagMintAmount, "total_issued": total}, func() {
			fmt.Printf("Minted %d token(s); %d issued in total\n", flagMintAmount, total)
		})
	},
}

func init() {
	mintCmd.Flags().Int64Var(&flagMintAmount, "amount", 1, "number of tokens to mint")
	mintCmd.Flags().Uint64Var(&flagMintPayment, "payment", 0, "payment in base units (must equal price * amount)")
}
