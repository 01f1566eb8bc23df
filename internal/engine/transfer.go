package engine

import "github.com/mesh-intelligence/editions/pkg/types"

// Transfer applies an ordered batch of transfer groups atomically. Each leg
// is checked in input order: authorization, existence, then quantity.
// Quantity 0 is an explicit no-op kept for symmetry with multi-edition
// transfer batches; quantity above 1 can never succeed for single-edition
// tokens.
func (e *Engine) Transfer(call types.Call, groups []types.TransferGroup) error {
	return e.update(func(st *State) error {
		for _, group := range groups {
			for _, tx := range group.Txs {
				if !e.authorized(st, call.Caller, group.From, tx.TokenID) {
					return types.ErrNotOperator
				}
				if !st.exists(tx.TokenID) {
					return types.ErrTokenUndefined
				}
				if tx.Quantity > 1 {
					return types.ErrInsufficientBalance
				}
				if tx.Quantity == 0 {
					continue
				}
				if st.Owners[tx.TokenID] != group.From {
					return types.ErrInsufficientBalance
				}
				st.Owners[tx.TokenID] = tx.To
			}
		}
		return nil
	})
}

// authorized reports whether caller may move the token out of from's
// holdings: the owner themselves, a delegated operator for that token, or
// the ledger's own identity when self-transfer is enabled.
func (e *Engine) authorized(st *State, caller, from types.Address, id types.TokenID) bool {
	if caller == from {
		return true
	}
	if e.opts.AllowSelfTransfer && caller == e.self {
		return true
	}
	key := types.OperatorKey{Owner: from, Operator: caller, TokenID: id}
	_, ok := st.Operators[key]
	return ok
}
