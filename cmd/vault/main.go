// Package main provides the vault CLI, the command-line front end for the
// editions token ledger.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/editions/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes user errors (named ledger outcomes, bad flags)
// from system errors (storage, IO).
func exitCode(err error) int {
	if types.WireCode(err) != "" ||
		errors.Is(err, types.ErrBackendEmpty) ||
		errors.Is(err, types.ErrBackendUnknown) ||
		errors.Is(err, types.ErrAdminEmpty) ||
		errors.Is(err, types.ErrNoEditions) {
		return exitUserError
	}
	return exitSysError
}
