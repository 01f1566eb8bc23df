package types

import "errors"

// Ledger failure outcomes. Each is terminal for the call that triggers it:
// no partial effect survives, so retrying after correcting the violated
// condition is always safe.
var (
	ErrTokenUndefined       = errors.New("token undefined")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrNotOperator          = errors.New("not an operator")
	ErrNotOwner             = errors.New("not the owner")
	ErrBadValue             = errors.New("payment does not match price")
	ErrMaxEditionsReached   = errors.New("maximum editions reached")
	ErrOperatorsUnsupported = errors.New("operators not supported")
	ErrNotAdmin             = errors.New("not the administrator")
	ErrPaused               = errors.New("minting is paused")
	ErrLocked               = errors.New("ledger is locked")
	ErrBadQuantity          = errors.New("bad quantity")
	ErrSaleStarted          = errors.New("sale already started")
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// wireCodes maps ledger errors to their stable wire codes. The FA2_ prefix is
// kept from the contract family this ledger descends from, so existing
// clients can match failures by code.
var wireCodes = map[error]string{
	ErrTokenUndefined:       "FA2_TOKEN_UNDEFINED",
	ErrInsufficientBalance:  "FA2_INSUFFICIENT_BALANCE",
	ErrNotOperator:          "FA2_NOT_OPERATOR",
	ErrNotOwner:             "FA2_NOT_OWNER",
	ErrBadValue:             "FA2_BAD_VALUE",
	ErrMaxEditionsReached:   "FA2_MAX_EDITIONS_REACHED",
	ErrOperatorsUnsupported: "FA2_OPERATORS_UNSUPPORTED",
	ErrNotAdmin:             "FA2_NOT_ADMIN",
	ErrPaused:               "FA2_PAUSED",
	ErrLocked:               "FA2_LOCKED",
	ErrBadQuantity:          "FA2_BAD_QUANTITY",
	ErrSaleStarted:          "FA2_SALE_STARTED",
}

// WireCode returns the stable wire code for a ledger error, or the empty
// string if err is not one of the named outcomes.
func WireCode(err error) string {
	for sentinel, code := range wireCodes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}
