package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/editions/pkg/types"
)

const (
	admin = types.Address("tz1-admin")
	alice = types.Address("tz1-alice")
	bob   = types.Address("tz1-bob")
	carol = types.Address("tz1-carol")

	testPrice = types.Mutez(100)
	testMax   = uint64(5)
)

// mintTime is the fixed issuance timestamp used across engine tests.
var mintTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

// newTestEngine builds an in-memory engine with a small test genesis.
func newTestEngine(t *testing.T, opts types.Options) *Engine {
	t.Helper()
	genesis := types.Genesis{
		Administrator: admin,
		Price:         testPrice,
		MaxEditions:   testMax,
		BaseURI:       "https://editions.test/api/",
	}
	return New(NewState(genesis), opts, nil)
}

// call builds a call envelope with the fixed test timestamp.
func call(caller types.Address, payment types.Mutez) types.Call {
	return types.Call{Caller: caller, Payment: payment, Timestamp: mintTime}
}

// mintTokens issues n tokens to owner, failing the test on error.
func mintTokens(t *testing.T, e *Engine, owner types.Address, n int64) {
	t.Helper()
	payment := testPrice * types.Mutez(n)
	require.NoError(t, e.Mint(call(owner, payment), n))
}

func TestMintPaysExactPrice(t *testing.T) {
	// Scenario: a correctly paid mint creates one token owned by the
	// minter; an underpaid mint fails and leaves the state untouched.
	e := newTestEngine(t, types.DefaultOptions())

	require.NoError(t, e.Mint(call(alice, testPrice), 1))

	owner, err := e.OwnerOf(0)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)
	assert.Equal(t, uint64(1), e.CountTokens())

	before := e.Snapshot()
	err = e.Mint(call(bob, testPrice-1), 1)
	assert.ErrorIs(t, err, types.ErrBadValue)
	assert.Empty(t, cmp.Diff(before, e.Snapshot()))
}

func TestOperatorTransferChain(t *testing.T) {
	// Scenario: alice mints token 0, grants bob as operator, bob moves the
	// token to carol. Balances flip accordingly.
	e := newTestEngine(t, types.DefaultOptions())
	mintTokens(t, e, alice, 1)

	grant := []types.OperatorUpdate{{
		Action:   types.OperatorAdd,
		Owner:    alice,
		Operator: bob,
		TokenID:  0,
	}}
	require.NoError(t, e.UpdateOperators(call(alice, 0), grant))

	groups := []types.TransferGroup{{
		From: alice,
		Txs:  []types.TransferTx{{To: carol, TokenID: 0, Quantity: 1}},
	}}
	require.NoError(t, e.Transfer(call(bob, 0), groups))

	balance, err := e.GetBalance(carol, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)

	balance, err = e.GetBalance(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestMintRespectsCeiling(t *testing.T) {
	// Scenario: mint up to the ceiling, then one more. The extra mint
	// fails and the issued count stays put.
	e := newTestEngine(t, types.DefaultOptions())
	mintTokens(t, e, alice, int64(testMax))

	err := e.Mint(call(alice, testPrice), 1)
	assert.ErrorIs(t, err, types.ErrMaxEditionsReached)
	assert.Equal(t, testMax, e.CountTokens())
}

func TestTransferBatchIsAtomic(t *testing.T) {
	// Scenario: a batch with one valid leg and one unauthorized leg fails
	// as a whole; the valid leg's ownership change does not persist.
	e := newTestEngine(t, types.DefaultOptions())
	mintTokens(t, e, alice, 1)
	mintTokens(t, e, bob, 1)

	before := e.Snapshot()
	groups := []types.TransferGroup{
		{From: alice, Txs: []types.TransferTx{{To: carol, TokenID: 0, Quantity: 1}}},
		{From: bob, Txs: []types.TransferTx{{To: carol, TokenID: 1, Quantity: 1}}},
	}
	err := e.Transfer(call(alice, 0), groups)
	assert.ErrorIs(t, err, types.ErrNotOperator)
	assert.Empty(t, cmp.Diff(before, e.Snapshot()))

	owner, err := e.OwnerOf(0)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)
}

func TestCommitHookFailureReverts(t *testing.T) {
	// A failing commit hook aborts the call and keeps the prior state.
	hookErr := errors.New("disk full")
	genesis := types.DefaultGenesis(admin)
	e := New(NewState(genesis), types.DefaultOptions(), func(prev, next *State) error {
		return hookErr
	})

	err := e.Mint(call(alice, types.DefaultPrice), 1)
	assert.ErrorIs(t, err, hookErr)
	assert.Equal(t, uint64(0), e.CountTokens())
}

func TestCommitHookSeesBothStates(t *testing.T) {
	var gotPrev, gotNext uint64
	genesis := types.DefaultGenesis(admin)
	e := New(NewState(genesis), types.DefaultOptions(), func(prev, next *State) error {
		gotPrev = prev.AllTokens
		gotNext = next.AllTokens
		return nil
	})

	require.NoError(t, e.Mint(call(alice, types.DefaultPrice*2), 2))
	assert.Equal(t, uint64(0), gotPrev)
	assert.Equal(t, uint64(2), gotNext)
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	e := newTestEngine(t, types.DefaultOptions())
	mintTokens(t, e, alice, 1)

	snap := e.Snapshot()
	snap.Owners[0] = bob
	snap.AllTokens = 99

	owner, err := e.OwnerOf(0)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)
	assert.Equal(t, uint64(1), e.CountTokens())
}
