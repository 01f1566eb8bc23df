package engine

import (
	"fmt"

	"github.com/mesh-intelligence/editions/pkg/types"
)

// UpdateOperators applies grant and revoke updates in input order. Only the
// owner named in each update may change its own grants. Revoking an absent
// grant is a no-op. Grants are independent of token existence: an owner may
// delegate a token that has not been minted yet.
func (e *Engine) UpdateOperators(call types.Call, updates []types.OperatorUpdate) error {
	return e.update(func(st *State) error {
		if !e.opts.SupportOperator {
			return types.ErrOperatorsUnsupported
		}
		for _, u := range updates {
			if call.Caller != u.Owner {
				return types.ErrNotOwner
			}
			key := types.OperatorKey{Owner: u.Owner, Operator: u.Operator, TokenID: u.TokenID}
			switch u.Action {
			case types.OperatorAdd:
				st.Operators[key] = struct{}{}
			case types.OperatorRemove:
				delete(st.Operators, key)
			default:
				return fmt.Errorf("unknown operator action %q", u.Action)
			}
		}
		return nil
	})
}
