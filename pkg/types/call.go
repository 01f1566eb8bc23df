package types

import "time"

// Call is the envelope every mutating operation receives: who is calling,
// how much native currency accompanied the call, and the call timestamp.
// The timestamp is fixed for the whole call, so every token minted in one
// batch shares the same issuance moment.
type Call struct {
	Caller    Address   `json:"caller"`
	Payment   Mutez     `json:"payment"`
	Timestamp time.Time `json:"timestamp"`
}

// TransferTx is one leg of a transfer group: move quantity of token ID to
// the destination address. Quantity is a presence flag for single-edition
// tokens; 0 is an explicit no-op and anything above 1 fails.
type TransferTx struct {
	To       Address `json:"to"`
	TokenID  TokenID `json:"token_id"`
	Quantity uint64  `json:"quantity"`
}

// TransferGroup batches transfer legs that share a source address.
type TransferGroup struct {
	From Address      `json:"from"`
	Txs  []TransferTx `json:"txs"`
}

// Operator update actions.
const (
	OperatorAdd    = "add_operator"
	OperatorRemove = "remove_operator"
)

// OperatorUpdate is one element of an update_operators batch: grant or
// revoke the operator's permission to move the owner's token. Action is one
// of OperatorAdd or OperatorRemove.
type OperatorUpdate struct {
	Action   string  `json:"action"`
	Owner    Address `json:"owner"`
	Operator Address `json:"operator"`
	TokenID  TokenID `json:"token_id"`
}

// OperatorKey identifies one delegation grant.
type OperatorKey struct {
	Owner    Address `json:"owner"`
	Operator Address `json:"operator"`
	TokenID  TokenID `json:"token_id"`
}

// BalanceRequest asks for the balance of one (owner, token) pair.
type BalanceRequest struct {
	Owner   Address `json:"owner"`
	TokenID TokenID `json:"token_id"`
}

// BalanceResponse pairs a request with its answer (0 or 1).
type BalanceResponse struct {
	Request BalanceRequest `json:"request"`
	Balance uint64         `json:"balance"`
}

// BalanceSink receives the responses of a balance_of call. Delivery is part
// of the call's atomic unit: if the sink returns an error, the whole call
// fails.
type BalanceSink interface {
	ReceiveBalances(responses []BalanceResponse) error
}

// BalanceSinkFunc adapts a function to the BalanceSink interface.
type BalanceSinkFunc func(responses []BalanceResponse) error

// ReceiveBalances calls f.
func (f BalanceSinkFunc) ReceiveBalances(responses []BalanceResponse) error {
	return f(responses)
}
