// Caller token issuance for the vault CLI.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/editions/internal/httpapi"
	"github.com/mesh-intelligence/editions/pkg/types"
)

var (
	flagTokenAddress string
	flagTokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue caller tokens for the HTTP API",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a signed caller token for an address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		signingKey := cfg.GetString(cfgKeySigningKey)
		if signingKey == "" {
			return fmt.Errorf("serve.signing_key must be configured")
		}

		tokens := httpapi.NewTokenService(signingKey, cfg.GetString(cfgKeyIssuer))
		signed, err := tokens.Issue(types.Address(flagTokenAddress), flagTokenTTL)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		return printResult(map[string]string{"token": signed}, func() {
			fmt.Println(signed)
		})
	},
}

func init() {
	tokenIssueCmd.Flags().StringVar(&flagTokenAddress, "address", "", "caller address the token identifies")
	tokenIssueCmd.Flags().DurationVar(&flagTokenTTL, "ttl", time.Hour, "token lifetime")
	tokenIssueCmd.MarkFlagRequired("address")
	tokenCmd.AddCommand(tokenIssueCmd)
}
