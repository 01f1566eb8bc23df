package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWireCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrTokenUndefined, "FA2_TOKEN_UNDEFINED"},
		{ErrInsufficientBalance, "FA2_INSUFFICIENT_BALANCE"},
		{ErrNotOperator, "FA2_NOT_OPERATOR"},
		{ErrNotOwner, "FA2_NOT_OWNER"},
		{ErrBadValue, "FA2_BAD_VALUE"},
		{ErrMaxEditionsReached, "FA2_MAX_EDITIONS_REACHED"},
		{ErrOperatorsUnsupported, "FA2_OPERATORS_UNSUPPORTED"},
		{ErrNotAdmin, "FA2_NOT_ADMIN"},
		{ErrPaused, "FA2_PAUSED"},
		{ErrLocked, "FA2_LOCKED"},
		{ErrBadQuantity, "FA2_BAD_QUANTITY"},
		{ErrSaleStarted, "FA2_SALE_STARTED"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WireCode(tt.err))
	}
}

func TestWireCodeWrapped(t *testing.T) {
	wrapped := fmt.Errorf("transfer leg 2: %w", ErrNotOperator)
	assert.Equal(t, "FA2_NOT_OPERATOR", WireCode(wrapped))
}

func TestWireCodeUnknownError(t *testing.T) {
	assert.Equal(t, "", WireCode(errors.New("unrelated")))
	assert.Equal(t, "", WireCode(ErrStoreDetached))
}
