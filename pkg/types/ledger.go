package types

import "iter"

// Ledger is the closed operation surface of the editions token ledger.
// Mutating operations take a Call envelope and are atomic: on any error the
// ledger state is exactly what it was before the call.
type Ledger interface {
	// Transfer applies an ordered batch of transfer groups. Authorization,
	// existence, and quantity are checked per leg in input order; the first
	// failure aborts the whole batch.
	Transfer(call Call, groups []TransferGroup) error

	// BalanceOf answers a batch of (owner, token) balance requests and
	// delivers the responses to sink. A sink failure fails the call.
	BalanceOf(call Call, requests []BalanceRequest, sink BalanceSink) error

	// UpdateOperators applies grant and revoke updates in input order.
	// Only the owner named in each update may change its grants.
	UpdateOperators(call Call, updates []OperatorUpdate) error

	// Mint issues amount new tokens to the caller. The payment must equal
	// price times amount exactly.
	Mint(call Call, amount int64) error

	// SetMintParameters replaces the price and edition ceiling. Only
	// permitted before the sale has started.
	SetMintParameters(call Call, price Mutez, maxEditions uint64) error

	// SetAdministrator hands administration to a new address.
	SetAdministrator(call Call, admin Address) error

	// SetPause sets or clears the minting pause flag.
	SetPause(call Call, paused bool) error

	// Lock sets the one-way lock latch. No operation ever clears it.
	Lock(call Call) error

	// SetScript replaces the rendering script. Fails once locked.
	SetScript(call Call, script []byte) error

	// SetBaseURI replaces the metadata URI prefix. Fails once locked.
	SetBaseURI(call Call, uri []byte) error

	// Withdraw pays out native currency held by the ledger.
	Withdraw(call Call, destination Address, amount Mutez) error

	// GetBalance reports 1 if owner holds the token, 0 otherwise.
	GetBalance(owner Address, id TokenID) (uint64, error)

	// OwnerOf returns the current owner of the token.
	OwnerOf(id TokenID) (Address, error)

	// CountTokens returns the number of tokens issued so far.
	CountTokens() uint64

	// DoesTokenExist reports whether the token has been minted.
	DoesTokenExist(id TokenID) bool

	// TokenIDs yields every issued token ID in ascending order.
	TokenIDs() iter.Seq[TokenID]

	// TotalSupply returns the constant per-token supply of 1. The ID is
	// bounded by the edition ceiling, not the issued count.
	TotalSupply(id TokenID) (uint64, error)

	// IsOperator reports membership of the (owner, operator, token) grant.
	IsOperator(owner, operator Address, id TokenID) bool

	// TokenMetadata assembles the discovery record for one token.
	TokenMetadata(id TokenID) (TokenMetadata, error)
}
