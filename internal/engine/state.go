// Package engine implements the deterministic state machine behind the
// editions ledger: consecutive identifier allocation, the token registry,
// the operator directory, capped minting, and the governance latches. Every
// public operation runs inside a snapshot transaction, so a failing call
// leaves no trace.
package engine

import (
	"github.com/mesh-intelligence/editions/pkg/types"
)

// State is the whole ledger state. It is a plain value: engine operations
// mutate a working copy and the copy only becomes current when the call
// commits.
type State struct {
	// Registry. Owners and Hashes always share the key set [0, AllTokens).
	Owners map[types.TokenID]types.Address
	Hashes map[types.TokenID]types.Commitment

	// Operator directory: membership set of delegation grants.
	Operators map[types.OperatorKey]struct{}

	// Allocator counter. Token IDs are assigned consecutively from zero.
	AllTokens uint64

	// Governance.
	Administrator types.Address
	Paused        bool
	Locked        bool
	Price         types.Mutez
	MaxEditions   uint64
	BaseURI       []byte
	Script        []byte

	// Native currency held by the ledger from mint payments.
	Balance types.Mutez
}

// NewState builds the genesis state for a fresh ledger.
func NewState(g types.Genesis) *State {
	return &State{
		Owners:        make(map[types.TokenID]types.Address),
		Hashes:        make(map[types.TokenID]types.Commitment),
		Operators:     make(map[types.OperatorKey]struct{}),
		Administrator: g.Administrator,
		Price:         g.Price,
		MaxEditions:   g.MaxEditions,
		BaseURI:       []byte(g.BaseURI),
	}
}

// Clone returns a deep copy of the state. Commitment and byte slices are
// copied as well; nothing in the copy aliases the original.
func (s *State) Clone() *State {
	c := &State{
		Owners:        make(map[types.TokenID]types.Address, len(s.Owners)),
		Hashes:        make(map[types.TokenID]types.Commitment, len(s.Hashes)),
		Operators:     make(map[types.OperatorKey]struct{}, len(s.Operators)),
		AllTokens:     s.AllTokens,
		Administrator: s.Administrator,
		Paused:        s.Paused,
		Locked:        s.Locked,
		Price:         s.Price,
		MaxEditions:   s.MaxEditions,
		Balance:       s.Balance,
	}
	for id, owner := range s.Owners {
		c.Owners[id] = owner
	}
	for id, hash := range s.Hashes {
		c.Hashes[id] = append(types.Commitment(nil), hash...)
	}
	for key := range s.Operators {
		c.Operators[key] = struct{}{}
	}
	c.BaseURI = append([]byte(nil), s.BaseURI...)
	c.Script = append([]byte(nil), s.Script...)
	return c
}

// exists reports whether the token has been minted. Registry membership and
// the allocator range are the same predicate by construction.
func (s *State) exists(id types.TokenID) bool {
	_, ok := s.Hashes[id]
	return ok
}

// allocate records a newly minted token. The intended ID must equal the
// current counter value; a mismatch means IDs would no longer be
// consecutive and indicates a double allocation.
func (s *State) allocate(id types.TokenID, owner types.Address, hash types.Commitment) error {
	if uint64(id) != s.AllTokens {
		return errNonConsecutive
	}
	s.Owners[id] = owner
	s.Hashes[id] = hash
	s.AllTokens++
	return nil
}
