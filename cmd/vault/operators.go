// Operator directory commands for the vault CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/editions/pkg/types"
)

var (
	flagOpOwner    string
	flagOpOperator string
	flagOpTokenID  uint64
)

var operatorsCmd = &cobra.Command{
	Use:   "operators",
	Short: "Manage operator delegation grants",
}

var operatorsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Grant an operator for one token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperatorUpdate(types.OperatorAdd)
	},
}

var operatorsRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Revoke an operator grant (no-op if absent)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperatorUpdate(types.OperatorRemove)
	},
}

func runOperatorUpdate(action string) error {
	call, err := callEnvelope(0)
	if err != nil {
		return err
	}

	ledger, store, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Detach()

	updates := []types.OperatorUpdate{{
		Action:   action,
		Owner:    types.Address(flagOpOwner),
		Operator: types.Address(flagOpOperator),
		TokenID:  types.TokenID(flagOpTokenID),
	}}
	if err := ledger.UpdateOperators(call, updates); err != nil {
		return err
	}

	return printResult(map[string]any{"action": action, "operator": flagOpOperator, "token_id": flagOpTokenID}, func() {
		fmt.Printf("Operator %s: %s for token %d\n", action, flagOpOperator, flagOpTokenID)
	})
}

func init() {
	for _, cmd := range []*cobra.Command{operatorsAddCmd, operatorsRemoveCmd} {
		cmd.Flags().StringVar(&flagOpOwner, "owner", "", "owner address (must equal --caller)")
		cmd.Flags().StringVar(&flagOpOperator, "operator", "", "operator address")
		cmd.Flags().Uint64Var(&flagOpTokenID, "id", 0, "token ID")
		cmd.MarkFlagRequired("owner")
		cmd.MarkFlagRequired("operator")
		cmd.MarkFlagRequired("id")
	}
	operatorsCmd.AddCommand(operatorsAddCmd)
	operatorsCmd.AddCommand(operatorsRemoveCmd)
}
