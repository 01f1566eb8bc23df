package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/editions/pkg/types"
)

func TestTransfer(t *testing.T) {
	tests := []struct {
		name    string
		opts    types.Options
		caller  types.Address
		groups  []types.TransferGroup
		wantErr error
		// wantOwners lists expected post-call owners by token ID.
		wantOwners map[types.TokenID]types.Address
	}{
		{
			name:   "owner moves own token",
			opts:   types.DefaultOptions(),
			caller: alice,
			groups: []types.TransferGroup{
				{From: alice, Txs: []types.TransferTx{{To: bob, TokenID: 0, Quantity: 1}}},
			},
			wantOwners: map[types.TokenID]types.Address{0: bob, 1: alice},
		},
		{
			name:   "quantity zero is a no-op",
			opts:   types.DefaultOptions(),
			caller: alice,
			groups: []types.TransferGroup{
				{From: alice, Txs: []types.TransferTx{{To: bob, TokenID: 0, Quantity: 0}}},
			},
			wantOwners: map[types.TokenID]types.Address{0: alice, 1: alice},
		},
		{
			name:   "quantity above one fails",
			opts:   types.DefaultOptions(),
			caller: alice,
			groups: []types.TransferGroup{
				{From: alice, Txs: []types.TransferTx{{To: bob, TokenID: 0, Quantity: 2}}},
			},
			wantErr: types.ErrInsufficientBalance,
		},
		{
			name:   "unknown token fails",
			opts:   types.DefaultOptions(),
			caller: alice,
			groups: []types.TransferGroup{
				{From: alice, Txs: []types.TransferTx{{To: bob, TokenID: 42, Quantity: 1}}},
			},
			wantErr: types.ErrTokenUndefined,
		},
		{
			name:   "stranger cannot move the token",
			opts:   types.DefaultOptions(),
			caller: carol,
			groups: []types.TransferGroup{
				{From: alice, Txs: []types.TransferTx{{To: carol, TokenID: 0, Quantity: 1}}},
			},
			wantErr: types.ErrNotOperator,
		},
		{
			name:   "declared from must match current owner",
			opts:   types.DefaultOptions(),
			caller: bob,
			groups: []types.TransferGroup{
				{From: bob, Txs: []types.TransferTx{{To: carol, TokenID: 0, Quantity: 1}}},
			},
			wantErr: types.ErrInsufficientBalance,
		},
		{
			name:   "self identity moves tokens when enabled",
			opts:   types.Options{SupportOperator: true, AllowSelfTransfer: true},
			caller: SelfAddress,
			groups: []types.TransferGroup{
				{From: alice, Txs: []types.TransferTx{{To: bob, TokenID: 0, Quantity: 1}}},
			},
			wantOwners: map[types.TokenID]types.Address{0: bob, 1: alice},
		},
		{
			name:   "self identity rejected when disabled",
			opts:   types.DefaultOptions(),
			caller: SelfAddress,
			groups: []types.TransferGroup{
				{From: alice, Txs: []types.TransferTx{{To: bob, TokenID: 0, Quantity: 1}}},
			},
			wantErr: types.ErrNotOperator,
		},
		{
			name:   "later leg failure reverts earlier legs",
			opts:   types.DefaultOptions(),
			caller: alice,
			groups: []types.TransferGroup{
				{From: alice, Txs: []types.TransferTx{
					{To: bob, TokenID: 0, Quantity: 1},
					{To: bob, TokenID: 42, Quantity: 1},
				}},
			},
			wantErr: types.ErrTokenUndefined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.opts)
			mintTokens(t, e, alice, 2)
			before := e.Snapshot()

			err := e.Transfer(call(tt.caller, 0), tt.groups)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, cmp.Diff(before, e.Snapshot()), "failed call must not mutate state")
				return
			}
			require.NoError(t, err)
			for id, want := range tt.wantOwners {
				owner, err := e.OwnerOf(id)
				require.NoError(t, err)
				assert.Equal(t, want, owner, "token %d", id)
			}
		})
	}
}

func TestTransferRoundTrip(t *testing.T) {
	// A token moved away and back ends where it started, with its
	// commitment untouched.
	e := newTestEngine(t, types.DefaultOptions())
	mintTokens(t, e, alice, 1)

	mdBefore, err := e.TokenMetadata(0)
	require.NoError(t, err)

	forth := []types.TransferGroup{{From: alice, Txs: []types.TransferTx{{To: bob, TokenID: 0, Quantity: 1}}}}
	back := []types.TransferGroup{{From: bob, Txs: []types.TransferTx{{To: alice, TokenID: 0, Quantity: 1}}}}
	require.NoError(t, e.Transfer(call(alice, 0), forth))
	require.NoError(t, e.Transfer(call(bob, 0), back))

	owner, err := e.OwnerOf(0)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)

	mdAfter, err := e.TokenMetadata(0)
	require.NoError(t, err)
	assert.Equal(t, mdBefore.TokenHash, mdAfter.TokenHash)
}
