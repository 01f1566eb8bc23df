package types

import "encoding/hex"

// Address identifies a participant: an owner, an operator, the administrator,
// or a withdrawal destination. Addresses are opaque strings; the ledger never
// interprets their contents beyond equality.
type Address string

// TokenID identifies a single-edition token. IDs are assigned consecutively
// from zero by the minting engine.
type TokenID uint64

// Mutez is an amount of the native currency, in base units.
type Mutez uint64

// Commitment is the immutable per-token hash computed at mint time. It binds
// the issuance timestamp, the minter, and the token ID.
type Commitment []byte

// String returns the commitment as lowercase hex.
func (c Commitment) String() string {
	return hex.EncodeToString(c)
}

// Token is one registry entry: a single-edition item with its current owner
// and its mint-time commitment.
type Token struct {
	ID         TokenID    `json:"id"`
	Owner      Address    `json:"owner"`
	Commitment Commitment `json:"commitment"`
}

// TokenMetadata is the discovery record for one token. The URI is the ledger
// base URI followed by the decimal digits of the token ID.
type TokenMetadata struct {
	ID        TokenID    `json:"id"`
	Name      string     `json:"name"`
	Symbol    string     `json:"symbol"`
	Decimals  uint8      `json:"decimals"`
	TokenHash Commitment `json:"token_hash"`
	URI       string     `json:"uri"`
}
