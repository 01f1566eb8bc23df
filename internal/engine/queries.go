package engine

import (
	"iter"

	"github.com/mesh-intelligence/editions/pkg/editions"
	"github.com/mesh-intelligence/editions/pkg/types"
)

// GetBalance reports 1 if owner currently holds the token, 0 otherwise.
func (e *Engine) GetBalance(owner types.Address, id types.TokenID) (uint64, error) {
	var balance uint64
	err := e.view(func(st *State) error {
		if !st.exists(id) {
			return types.ErrTokenUndefined
		}
		if st.Owners[id] == owner {
			balance = 1
		}
		return nil
	})
	return balance, err
}

// OwnerOf returns the current owner of the token.
func (e *Engine) OwnerOf(id types.TokenID) (types.Address, error) {
	var owner types.Address
	err := e.view(func(st *State) error {
		if !st.exists(id) {
			return types.ErrTokenUndefined
		}
		owner = st.Owners[id]
		return nil
	})
	return owner, err
}

// CountTokens returns the number of tokens issued so far.
func (e *Engine) CountTokens() uint64 {
	var n uint64
	_ = e.view(func(st *State) error {
		n = st.AllTokens
		return nil
	})
	return n
}

// DoesTokenExist reports whether the token has been minted.
func (e *Engine) DoesTokenExist(id types.TokenID) bool {
	var ok bool
	_ = e.view(func(st *State) error {
		ok = st.exists(id)
		return nil
	})
	return ok
}

// TokenIDs yields every issued token ID in ascending order. The count is
// read once when iteration starts.
func (e *Engine) TokenIDs() iter.Seq[types.TokenID] {
	return func(yield func(types.TokenID) bool) {
		for id := uint64(0); id < e.CountTokens(); id++ {
			if !yield(types.TokenID(id)) {
				return
			}
		}
	}
}

// TotalSupply returns the constant per-token supply of 1. The bound is the
// edition ceiling rather than the issued count, preserved from the
// reference contract.
func (e *Engine) TotalSupply(id types.TokenID) (uint64, error) {
	err := e.view(func(st *State) error {
		if uint64(id) >= st.MaxEditions {
			return types.ErrTokenUndefined
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return 1, nil
}

// IsOperator reports membership of the (owner, operator, token) grant. Pure
// membership: it does not depend on whether the token exists.
func (e *Engine) IsOperator(owner, operator types.Address, id types.TokenID) bool {
	var ok bool
	_ = e.view(func(st *State) error {
		_, ok = st.Operators[types.OperatorKey{Owner: owner, Operator: operator, TokenID: id}]
		return nil
	})
	return ok
}

// TokenMetadata assembles the discovery record for one token: the fixed
// display fields, the mint-time commitment, and the metadata URI.
func (e *Engine) TokenMetadata(id types.TokenID) (types.TokenMetadata, error) {
	var md types.TokenMetadata
	err := e.view(func(st *State) error {
		if !st.exists(id) {
			return types.ErrTokenUndefined
		}
		md = types.TokenMetadata{
			ID:        id,
			Name:      editions.DisplayName,
			Symbol:    editions.DisplaySymbol,
			Decimals:  editions.Decimals,
			TokenHash: append(types.Commitment(nil), st.Hashes[id]...),
			URI:       string(tokenURI(st.BaseURI, id)),
		}
		return nil
	})
	return md, err
}

// BalanceOf answers a batch of balance requests and delivers the responses
// to sink. Delivery happens inside the call's transaction boundary: a sink
// failure fails the whole call.
func (e *Engine) BalanceOf(call types.Call, requests []types.BalanceRequest, sink types.BalanceSink) error {
	return e.update(func(st *State) error {
		responses := make([]types.BalanceResponse, 0, len(requests))
		for _, req := range requests {
			if !st.exists(req.TokenID) {
				return types.ErrTokenUndefined
			}
			var balance uint64
			if st.Owners[req.TokenID] == req.Owner {
				balance = 1
			}
			responses = append(responses, types.BalanceResponse{Request: req, Balance: balance})
		}
		if sink == nil {
			return nil
		}
		return sink.ReceiveBalances(responses)
	})
}
