package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStateTransitions(t *testing.T) {
	tests := []struct {
		from, to SessionState
		ok       bool
	}{
		{StateUnconfigured, StateConnecting, true},
		{StateConnecting, StateConnected, true},
		{StateConnecting, StateFailed, true},
		{StateConnected, StateInUse, true},
		{StateInUse, StateConnected, true},
		{StateConnected, StateClosed, true},
		{StateInUse, StateClosed, true},

		// Failed is terminal: no automatic retry, ever.
		{StateFailed, StateConnecting, false},
		{StateFailed, StateConnected, false},
		{StateFailed, StateClosed, false},

		// Closed is terminal.
		{StateClosed, StateConnecting, false},

		// No shortcuts into a connected state.
		{StateUnconfigured, StateConnected, false},
		{StateConnecting, StateInUse, false},
		{StateConnected, StateConnecting, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.ok, canTransition(tt.from, tt.to))
		})
	}
}

func TestFailedStateHasNoExits(t *testing.T) {
	assert.Empty(t, validTransitions[StateFailed])
	assert.Empty(t, validTransitions[StateClosed])
}
