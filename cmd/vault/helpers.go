// Shared helpers for vault CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mesh-intelligence/editions/internal/engine"
	"github.com/mesh-intelligence/editions/internal/sqlite"
	"github.com/mesh-intelligence/editions/pkg/types"
)

// errCallerRequired flags mutating verbs invoked without --caller.
var errCallerRequired = errors.New("--caller is required for this command")

// attachStore builds the store Config, creates a SQLite store, and attaches
// it. The caller must defer store.Detach().
func attachStore() (*sqlite.Store, error) {
	config, err := ledgerConfig()
	if err != nil {
		return nil, err
	}
	store := sqlite.NewStore()
	if err := store.Attach(config); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	return store, nil
}

// openLedger attaches the store and loads the engine over it. The caller
// must defer store.Detach().
func openLedger() (*engine.Engine, *sqlite.Store, error) {
	config, err := ledgerConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := attachStore()
	if err != nil {
		return nil, nil, err
	}
	ledger, err := store.Engine(config.Options)
	if err != nil {
		store.Detach()
		return nil, nil, err
	}
	return ledger, store, nil
}

// callEnvelope builds the call envelope for a CLI-invoked operation. The
// CLI is the trusted local path, so the caller identity comes straight from
// the --caller flag.
func callEnvelope(payment types.Mutez) (types.Call, error) {
	if flagCaller == "" {
		return types.Call{}, errCallerRequired
	}
	return types.Call{
		Caller:    types.Address(flagCaller),
		Payment:   payment,
		Timestamp: time.Now().UTC(),
	}, nil
}

// printResult writes v as JSON when --json is set, otherwise with the
// fallback plain formatter.
func printResult(v any, plain func()) error {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	plain()
	return nil
}
