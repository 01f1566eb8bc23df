package engine

import (
	"errors"
	"sync"

	"github.com/mesh-intelligence/editions/pkg/types"
)

// errNonConsecutive signals the allocator's defensive consecutiveness check.
// It can only fire on an engine bug, never on bad input.
var errNonConsecutive = errors.New("token ids must be consecutive")

// CommitFunc is invoked with the previous and next state when a mutating
// call is about to commit. A non-nil error aborts the call: the in-memory
// state stays at prev and the caller observes the error.
type CommitFunc func(prev, next *State) error

// Engine is the concrete Ledger implementation. External calls are
// serialized: one call runs to completion before the next begins, and each
// call either commits every mutation or none.
type Engine struct {
	mu     sync.Mutex
	state  *State
	opts   types.Options
	self   types.Address
	commit CommitFunc
}

// Compile-time interface check.
var _ types.Ledger = (*Engine)(nil)

// New creates an engine around an existing state. The commit hook may be
// nil for a purely in-memory ledger.
func New(state *State, opts types.Options, commit CommitFunc) *Engine {
	return &Engine{
		state:  state,
		opts:   opts,
		self:   SelfAddress,
		commit: commit,
	}
}

// SelfAddress is the ledger's own identity, used only when self-transfer is
// enabled by options.
const SelfAddress = types.Address("editions:self")

// Options returns the capability set the engine was created with.
func (e *Engine) Options() types.Options {
	return e.opts
}

// Snapshot returns a deep copy of the current state, for persistence and
// inspection. It never exposes internal maps.
func (e *Engine) Snapshot() *State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// update is the transaction boundary for mutating calls. The operation body
// works on a clone of the current state; only if it and the commit hook both
// succeed does the clone become current. Any error discards the clone.
func (e *Engine) update(op func(st *State) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	work := e.state.Clone()
	if err := op(work); err != nil {
		return err
	}
	if e.commit != nil {
		if err := e.commit(e.state, work); err != nil {
			return err
		}
	}
	e.state = work
	return nil
}

// view runs a read-only operation against the current state.
func (e *Engine) view(op func(st *State) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return op(e.state)
}
