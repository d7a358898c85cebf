package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultOk(t *testing.T) {
	r := Ok(42)

	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.NoError(t, r.Err())

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"data":42}`, string(raw))
}

func TestResultFail(t *testing.T) {
	r := ResultOf(Sale{}, fmt.Errorf("refund sale 3: %w", ErrInvalidStateTransition))

	assert.False(t, r.IsOk())
	assert.Equal(t, KindInvalidStateTransition, r.Kind())
	assert.True(t, errors.Is(r.Err(), ErrInvalidStateTransition))

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"error":{"kind":"InvalidStateTransition","message":"refund sale 3: invalid sale state transition"}}`, string(raw))
}

func TestResultFailHidesInternalDetails(t *testing.T) {
	driverErr := errors.New(`pq: relation "sales" does not exist`)
	r := Fail[Sale](fmt.Errorf("list sales: query sales: %w", driverErr))

	assert.Equal(t, KindInternal, r.Kind())
	assert.ErrorIs(t, r.Err(), driverErr, "full error stays available for logging")

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"error":{"kind":"Internal","message":"internal error"}}`, string(raw))
	assert.NotContains(t, string(raw), "relation")

	raw, err = json.Marshal(Fail[int](nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"error":{"kind":"Internal","message":"internal error"}}`, string(raw))
}

func TestResultZeroValueIsNotOk(t *testing.T) {
	var r Result[int]
	assert.False(t, r.IsOk())
	assert.Equal(t, KindInternal, Fail[int](nil).Kind())
}
