// Version command for the vault CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/editions/pkg/editions"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vault version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("vault", editions.Version)
	},
}
