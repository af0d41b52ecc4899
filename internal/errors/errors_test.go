package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// UserError Tests
// =============================================================================

func TestUserError(t *testing.T) {
	err := NewUserError("invalid position", "Use 'hopstack hop list' to see positions.")
	assert.Equal(t, "invalid position", err.Error())
	assert.True(t, IsUserError(err))
	assert.False(t, IsSystemError(err))

	withField := NewUserErrorWithField("index", "abc", "position must be a number", "")
	assert.Equal(t, "position must be a number: 'abc'", withField.Error())
}

func TestAsUserErrorThroughChain(t *testing.T) {
	inner := NewUserError("bad input", "fix it")
	wrapped := fmt.Errorf("running command: %w", inner)

	ue, ok := AsUserError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "fix it", ue.Suggestion)
}

// =============================================================================
// SystemError Tests
// =============================================================================

func TestSystemError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewSystemErrorWithOp("add_hop", "device rejected chain update", cause)

	assert.Equal(t, "device rejected chain update during add_hop", err.Error())
	assert.True(t, IsSystemError(err))
	assert.ErrorIs(t, err, cause, "system errors unwrap to their cause")
}

// =============================================================================
// Suggestion Tests
// =============================================================================

func TestGetSuggestion(t *testing.T) {
	assert.NotEmpty(t, GetSuggestion(ErrHopNotFound))
	assert.Empty(t, GetSuggestion(errors.New("unknown")))

	// Wrapped sentinels still match.
	wrapped := Wrap(ErrInvalidTimestamp, "parsing --since")
	assert.Equal(t, Suggestions[ErrInvalidTimestamp], GetSuggestion(wrapped))

	// An explicit UserError suggestion wins over the sentinel table.
	ue := NewUserError("bad value", "custom hint")
	assert.Equal(t, "custom hint", GetSuggestion(ue))
}

func TestFormatError(t *testing.T) {
	msg := FormatError(ErrChainEmpty)
	assert.Contains(t, msg, "chain has no hops")
	assert.Contains(t, msg, "hopstack hop add")

	plain := FormatError(errors.New("boom"))
	assert.Equal(t, "boom", plain)
}

// =============================================================================
// Wrap Tests
// =============================================================================

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))

	err := Wrapf(ErrHopNotFound, "removing %q", "dns")
	assert.ErrorIs(t, err, ErrHopNotFound)
	assert.Contains(t, err.Error(), `removing "dns"`)
}
