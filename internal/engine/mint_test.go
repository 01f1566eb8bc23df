package engine

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/editions/pkg/types"
)

func TestMint(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, e *Engine)
		caller  types.Address
		payment types.Mutez
		amount  int64
		wantErr error
		want    uint64 // expected CountTokens after the call
	}{
		{
			name:    "single token",
			caller:  alice,
			payment: testPrice,
			amount:  1,
			want:    1,
		},
		{
			name:    "batch of three",
			caller:  alice,
			payment: testPrice * 3,
			amount:  3,
			want:    3,
		},
		{
			name:    "zero amount",
			caller:  alice,
			payment: 0,
			amount:  0,
			wantErr: types.ErrBadQuantity,
		},
		{
			name:    "negative amount",
			caller:  alice,
			payment: testPrice,
			amount:  -1,
			wantErr: types.ErrBadQuantity,
		},
		{
			name:    "underpayment",
			caller:  alice,
			payment: testPrice - 1,
			amount:  1,
			wantErr: types.ErrBadValue,
		},
		{
			name:    "overpayment",
			caller:  alice,
			payment: testPrice + 1,
			amount:  1,
			wantErr: types.ErrBadValue,
		},
		{
			name:    "amount above headroom",
			caller:  alice,
			payment: testPrice * types.Mutez(testMax+1),
			amount:  int64(testMax + 1),
			wantErr: types.ErrMaxEditionsReached,
		},
		{
			name: "paused ledger rejects mint",
			setup: func(t *testing.T, e *Engine) {
				require.NoError(t, e.SetPause(call(admin, 0), true))
			},
			caller:  alice,
			payment: testPrice,
			amount:  1,
			wantErr: types.ErrPaused,
		},
		{
			name: "unpaused ledger mints again",
			setup: func(t *testing.T, e *Engine) {
				require.NoError(t, e.SetPause(call(admin, 0), true))
				require.NoError(t, e.SetPause(call(admin, 0), false))
			},
			caller:  alice,
			payment: testPrice,
			amount:  1,
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, types.DefaultOptions())
			if tt.setup != nil {
				tt.setup(t, e)
			}
			before := e.Snapshot()

			err := e.Mint(call(tt.caller, tt.payment), tt.amount)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, cmp.Diff(before, e.Snapshot()))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.CountTokens())
		})
	}
}

func TestMintAssignsConsecutiveIDs(t *testing.T) {
	e := newTestEngine(t, types.DefaultOptions())
	mintTokens(t, e, alice, 2)
	mintTokens(t, e, bob, 3)

	var ids []types.TokenID
	for id := range e.TokenIDs() {
		ids = append(ids, id)
	}
	assert.Equal(t, []types.TokenID{0, 1, 2, 3, 4}, ids)

	for id := types.TokenID(0); id < 2; id++ {
		owner, err := e.OwnerOf(id)
		require.NoError(t, err)
		assert.Equal(t, alice, owner)
	}
	for id := types.TokenID(2); id < 5; id++ {
		owner, err := e.OwnerOf(id)
		require.NoError(t, err)
		assert.Equal(t, bob, owner)
	}
}

func TestMintAccumulatesBalance(t *testing.T) {
	e := newTestEngine(t, types.DefaultOptions())
	mintTokens(t, e, alice, 2)
	mintTokens(t, e, bob, 1)

	assert.Equal(t, testPrice*3, e.Snapshot().Balance)
}

func TestCommitmentsVaryOnlyByID(t *testing.T) {
	// Within one batch the timestamp and minter are fixed, so commitments
	// differ across IDs but are reproducible for the same inputs.
	e := newTestEngine(t, types.DefaultOptions())
	mintTokens(t, e, alice, 3)

	st := e.Snapshot()
	seen := make(map[string]bool)
	for id := types.TokenID(0); id < 3; id++ {
		hash := st.Hashes[id]
		assert.Len(t, hash, 32)
		assert.False(t, seen[hash.String()], "commitments must be distinct")
		seen[hash.String()] = true
		assert.Equal(t, commitment(mintTime, alice, id), hash)
	}
}

func TestCommitmentBindsAllInputs(t *testing.T) {
	base := commitment(mintTime, alice, 0)
	assert.NotEqual(t, base, commitment(mintTime.Add(time.Second), alice, 0))
	assert.NotEqual(t, base, commitment(mintTime, bob, 0))
	assert.NotEqual(t, base, commitment(mintTime, alice, 1))
}
