// Package editions carries the project version and the collection-level
// discovery metadata for the token ledger.
package editions

import "github.com/mesh-intelligence/editions/pkg/types"

// Version is the project version, set at build time for releases.
var Version = "0.3.0"

// LedgerFormat is the descriptive version string stored alongside ledger
// state so discovery tooling can recognize the layout.
const LedgerFormat = "editions-ledger-v1"

// Display constants used in per-token metadata records.
const (
	DisplayName   = "Blocks on Blocks"
	DisplaySymbol = "BOB"
	Decimals      = uint8(0)
)

// CollectionMetadata is the ledger-level discovery record.
type CollectionMetadata struct {
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Interfaces  []string `json:"interfaces"`
	Permissions struct {
		Operator string `json:"operator"`
		Receiver string `json:"receiver"`
		Sender   string `json:"sender"`
	} `json:"permissions"`
}

// Metadata builds the collection metadata record for a ledger running with
// the given options. The operator policy reflects whether the operator
// directory is enabled.
func Metadata(opts types.Options) CollectionMetadata {
	m := CollectionMetadata{
		Version: LedgerFormat,
		Description: "Blocks on Blocks is an abstract NFT collection based on " +
			"an open source FA2 implementation for generative art",
		Interfaces: []string{"TZIP-012", "TZIP-016", "TZIP-021"},
	}
	if opts.SupportOperator {
		m.Permissions.Operator = "owner-or-operator-transfer"
	} else {
		m.Permissions.Operator = "owner-transfer"
	}
	m.Permissions.Receiver = "owner-no-hook"
	m.Permissions.Sender = "owner-no-hook"
	return m
}
