// Governance commands for the vault CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/editions/pkg/types"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative governance operations",
}

// runGoverned opens the ledger and runs one governance operation with the
// caller envelope.
func runGoverned(op func(ledger types.Ledger, call types.Call) error, done string) error {
	call, err := callEnvelope(0)
	if err != nil {
		return err
	}

	ledger, store, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Detach()

	if err := op(ledger, call); err != nil {
		return err
	}
	return printResult(map[string]string{"status": done}, func() {
		fmt.Println(done)
	})
}

var adminSetAdministratorCmd = &cobra.Command{
	Use:   "set-administrator <address>",
	Short: "Hand administration to a new address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGoverned(func(ledger types.Ledger, call types.Call) error {
			return ledger.SetAdministrator(call, types.Address(args[0]))
		}, "administrator updated")
	},
}

var flagPaused bool

var adminSetPauseCmd = &cobra.Command{
	Use:   "set-pause",
	Short: "Set or clear the minting pause flag",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGoverned(func(ledger types.Ledger, call types.Call) error {
			return ledger.SetPause(call, flagPaused)
		}, "pause flag updated")
	},
}

var adminLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Set the one-way lock latch (irreversible)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGoverned(func(ledger types.Ledger, call types.Call) error {
			return ledger.Lock(call)
		}, "ledger locked")
	},
}

var adminSetScriptCmd = &cobra.Command{
	Use:   "set-script <file>",
	Short: "Replace the rendering script from a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		return runGoverned(func(ledger types.Ledger, call types.Call) error {
			return ledger.SetScript(call, script)
		}, "script updated")
	},
}

var adminSetBaseURICmd = &cobra.Command{
	Use:   "set-base-uri <uri>",
	Short: "Replace the metadata URI prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGoverned(func(ledger types.Ledger, call types.Call) error {
			return ledger.SetBaseURI(call, []byte(args[0]))
		}, "base URI updated")
	},
}

var (
	flagParamPrice       uint64
	flagParamMaxEditions uint64
)

var adminSetMintParametersCmd = &cobra.Command{
	Use:   "set-mint-parameters",
	Short: "Replace price and edition ceiling (pre-sale only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGoverned(func(ledger types.Ledger, call types.Call) error {
			return ledger.SetMintParameters(call, types.Mutez(flagParamPrice), flagParamMaxEditions)
		}, "mint parameters updated")
	},
}

var (
	flagWithdrawDest   string
	flagWithdrawAmount uint64
)

var adminWithdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Pay out native currency held by the ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := ledgerConfig()
		if err != nil {
			return err
		}
		if !config.Options.EnableWithdraw {
			return fmt.Errorf("withdrawal is disabled by configuration")
		}
		return runGoverned(func(ledger types.Ledger, call types.Call) error {
			return ledger.Withdraw(call, types.Address(flagWithdrawDest), types.Mutez(flagWithdrawAmount))
		}, "withdrawal recorded")
	},
}

func init() {
	adminSetPauseCmd.Flags().BoolVar(&flagPaused, "paused", true, "pause state to set")

	adminSetMintParametersCmd.Flags().Uint64Var(&flagParamPrice, "price", 0, "unit price in base units")
	adminSetMintParametersCmd.Flags().Uint64Var(&flagParamMaxEditions, "max-editions", 0, "hard issuance ceiling")
	adminSetMintParametersCmd.MarkFlagRequired("price")
	adminSetMintParametersCmd.MarkFlagRequired("max-editions")

	adminWithdrawCmd.Flags().StringVar(&flagWithdrawDest, "destination", "", "destination address")
	adminWithdrawCmd.Flags().Uint64Var(&flagWithdrawAmount, "amount", 0, "amount in base units")
	adminWithdrawCmd.MarkFlagRequired("destination")
	adminWithdrawCmd.MarkFlagRequired("amount")

	adminCmd.AddCommand(adminSetAdministratorCmd)
	adminCmd.AddCommand(adminSetPauseCmd)
	adminCmd.AddCommand(adminLockCmd)
	adminCmd.AddCommand(adminSetScriptCmd)
	adminCmd.AddCommand(adminSetBaseURICmd)
	adminCmd.AddCommand(adminSetMintParametersCmd)
	adminCmd.AddCommand(adminWithdrawCmd)
}
