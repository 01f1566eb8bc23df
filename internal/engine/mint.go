package engine

import (
	"math"

	"github.com/mesh-intelligence/editions/pkg/types"
)

// Mint issues amount new tokens to the caller. The aggregate preconditions
// run before any mutation: positive amount, not paused, exact payment, and
// supply headroom. Issuance is strictly sequential; the call timestamp and
// caller are fixed for the whole batch, so only the token ID varies across
// the batch's commitments.
func (e *Engine) Mint(call types.Call, amount int64) error {
	return e.update(func(st *State) error {
		if amount <= 0 {
			return types.ErrBadQuantity
		}
		n := uint64(amount)
		if st.Paused {
			return types.ErrPaused
		}
		if expected, ok := mulMutez(st.Price, n); !ok || call.Payment != expected {
			return types.ErrBadValue
		}
		if st.AllTokens+n < st.AllTokens || st.AllTokens+n > st.MaxEditions {
			return types.ErrMaxEditionsReached
		}

		for i := uint64(0); i < n; i++ {
			id := types.TokenID(st.AllTokens)
			// Redundant with the aggregate headroom check above; kept as a
			// per-token guard against the ceiling moving mid-loop.
			if uint64(id) >= st.MaxEditions {
				return types.ErrMaxEditionsReached
			}
			hash := commitment(call.Timestamp, call.Caller, id)
			if err := st.allocate(id, call.Caller, hash); err != nil {
				return err
			}
		}

		st.Balance += call.Payment
		return nil
	})
}

// mulMutez multiplies a price by a count, reporting overflow.
func mulMutez(price types.Mutez, n uint64) (types.Mutez, bool) {
	if price == 0 || n == 0 {
		return 0, true
	}
	if uint64(price) > math.MaxUint64/n {
		return 0, false
	}
	return price * types.Mutez(n), true
}
