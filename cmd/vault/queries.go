// Read-only query commands for the vault CLI.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/editions/pkg/types"
)

// parseTokenID parses a positional token ID argument.
func parseTokenID(arg string) (types.TokenID, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token ID %q: %w", arg, err)
	}
	return types.TokenID(id), nil
}

var ownerCmd = &cobra.Command{
	Use:   "owner <id>",
	Short: "Print the current owner of a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTokenID(args[0])
		if err != nil {
			return err
		}
		ledger, store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Detach()

		owner, err := ledger.OwnerOf(id)
		if err != nil {
			return err
		}
		return printResult(map[string]any{"token_id": id, "owner": owner}, func() {
			fmt.Println(owner)
		})
	},
}

var flagBalanceOwner string

var balanceCmd = &cobra.Command{
	Use:   "balance <id>",
	Short: "Print the 0/1 balance of an owner for a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTokenID(args[0])
		if err != nil {
			return err
		}
		ledger, store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Detach()

		balance, err := ledger.GetBalance(types.Address(flagBalanceOwner), id)
		if err != nil {
			return err
		}
		return printResult(map[string]any{"owner": flagBalanceOwner, "token_id": id, "balance": balance}, func() {
			fmt.Println(balance)
		})
	},
}

var supplyCmd = &cobra.Command{
	Use:   "supply <id>",
	Short: "Print the constant per-token supply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTokenID(args[0])
		if err != nil {
			return err
		}
		ledger, store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Detach()

		supply, err := ledger.TotalSupply(id)
		if err != nil {
			return err
		}
		return printResult(map[string]any{"token_id": id, "total_supply": supply}, func() {
			fmt.Println(supply)
		})
	},
}

var metadataCmd = &cobra.Command{
	Use:   "metadata <id>",
	Short: "Print the metadata record for a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTokenID(args[0])
		if err != nil {
			return err
		}
		ledger, store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Detach()

		md, err := ledger.TokenMetadata(id)
		if err != nil {
			return err
		}
		return printResult(md, func() {
			fmt.Printf("%s (%s) #%d\n", md.Name, md.Symbol, md.ID)
			fmt.Printf("  hash: %s\n", md.TokenHash)
			fmt.Printf("  uri:  %s\n", md.URI)
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every issued token with its owner",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Detach()

		var tokens []types.Token
		for id := range ledger.TokenIDs() {
			owner, err := ledger.OwnerOf(id)
			if err != nil {
				return err
			}
			tokens = append(tokens, types.Token{ID: id, Owner: owner})
		}
		return printResult(tokens, func() {
			for _, tok := range tokens {
				fmt.Printf("%6d  %s\n", tok.ID, tok.Owner)
			}
			fmt.Printf("%d token(s) issued\n", len(tokens))
		})
	},
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Print the committed-call journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		entries, err := store.Journal()
		if err != nil {
			return err
		}
		return printResult(entries, func() {
			for _, e := range entries {
				fmt.Printf("%s  minted=%d owners=%d ops=+%d/-%d gov=%t\n",
					e.CommittedAt.Format("2006-01-02 15:04:05"),
					e.Minted, e.OwnersChanged, e.OperatorsAdded, e.OperatorsRemoved,
					e.GovernanceChanged)
			}
		})
	},
}

func init() {
	balanceCmd.Flags().StringVar(&flagBalanceOwner, "owner", "", "owner address")
	balanceCmd.MarkFlagRequired("owner")
}
