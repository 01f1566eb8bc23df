package engine

import "github.com/mesh-intelligence/editions/pkg/types"

// SetAdministrator hands administration to a new address. Only the current
// administrator may call; the replacement is unconditional.
func (e *Engine) SetAdministrator(call types.Call, admin types.Address) error {
	return e.update(func(st *State) error {
		if call.Caller != st.Administrator {
			return types.ErrNotAdmin
		}
		st.Administrator = admin
		return nil
	})
}

// SetPause sets or clears the minting pause flag. Freely reversible.
func (e *Engine) SetPause(call types.Call, paused bool) error {
	return e.update(func(st *State) error {
		if call.Caller != st.Administrator {
			return types.ErrNotAdmin
		}
		st.Paused = paused
		return nil
	})
}

// Lock sets the one-way lock latch. Once set, SetScript and SetBaseURI fail
// forever; no operation resets the latch.
func (e *Engine) Lock(call types.Call) error {
	return e.update(func(st *State) error {
		if call.Caller != st.Administrator {
			return types.ErrNotAdmin
		}
		st.Locked = true
		return nil
	})
}

// SetScript replaces the rendering script. The lock latch is checked before
// the caller, so a locked ledger reports Locked to everyone.
func (e *Engine) SetScript(call types.Call, script []byte) error {
	return e.update(func(st *State) error {
		if st.Locked {
			return types.ErrLocked
		}
		if call.Caller != st.Administrator {
			return types.ErrNotAdmin
		}
		st.Script = append([]byte(nil), script...)
		return nil
	})
}

// SetBaseURI replaces the metadata URI prefix, under the same latch rules
// as SetScript.
func (e *Engine) SetBaseURI(call types.Call, uri []byte) error {
	return e.update(func(st *State) error {
		if st.Locked {
			return types.ErrLocked
		}
		if call.Caller != st.Administrator {
			return types.ErrNotAdmin
		}
		st.BaseURI = append([]byte(nil), uri...)
		return nil
	})
}

// SetMintParameters replaces the price and edition ceiling. Only permitted
// while the sale has not started. The observed predicate is AllTokens <= 1
// rather than == 0; it is preserved as-is from the reference contract.
func (e *Engine) SetMintParameters(call types.Call, price types.Mutez, maxEditions uint64) error {
	return e.update(func(st *State) error {
		if call.Caller != st.Administrator {
			return types.ErrNotAdmin
		}
		if st.AllTokens > 1 {
			return types.ErrSaleStarted
		}
		if maxEditions < st.AllTokens {
			return types.ErrBadQuantity
		}
		st.Price = price
		st.MaxEditions = maxEditions
		return nil
	})
}

// Withdraw pays out native currency held by the ledger to the destination.
// The engine only debits its balance; actual settlement is the caller's
// concern.
func (e *Engine) Withdraw(call types.Call, destination types.Address, amount types.Mutez) error {
	return e.update(func(st *State) error {
		if call.Caller != st.Administrator {
			return types.ErrNotAdmin
		}
		if amount > st.Balance {
			return types.ErrInsufficientBalance
		}
		st.Balance -= amount
		return nil
	})
}
