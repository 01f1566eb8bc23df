// Package types defines the Ledger interface, entity types, call envelope,
// and standard errors for the editions token ledger.
package types
