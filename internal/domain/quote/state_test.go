package quote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Transitions(t *testing.T) {
	assert.True(t, StateIdle.CanTransitionTo(StateValidating))
	assert.True(t, StateValidating.CanTransitionTo(StateIdle))
	assert.True(t, StateRoutingInFlight.CanTransitionTo(StateFailed))
	assert.True(t, StateComputing.CanTransitionTo(StateSuccess), "offline preview skips notification")
	assert.True(t, StateNotifyInFlight.CanTransitionTo(StateFailed))

	assert.False(t, StateIdle.CanTransitionTo(StateRoutingInFlight))
	assert.False(t, StateRoutingInFlight.CanTransitionTo(StateSuccess))
	assert.False(t, StateSuccess.CanTransitionTo(StateFailed))
}

func TestState_Classification(t *testing.T) {
	assert.True(t, StateSuccess.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
	assert.False(t, StateIdle.IsTerminal())

	assert.True(t, StateRoutingInFlight.IsInFlight())
	assert.True(t, StateNotifyInFlight.IsInFlight())
	assert.False(t, StateIdle.IsInFlight())
	assert.False(t, StateFailed.IsInFlight())
}

func TestParseState(t *testing.T) {
	s, err := ParseState("notify_in_flight")
	require.NoError(t, err)
	assert.Equal(t, StateNotifyInFlight, s)

	_, err = ParseState("done")
	assert.Error(t, err)
}

func TestState_UnmarshalJSON(t *testing.T) {
	var view struct {
		State State `json:"state"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"state":"routing_in_flight"}`), &view))
	assert.Equal(t, StateRoutingInFlight, view.State)

	assert.Error(t, json.Unmarshal([]byte(`{"state":"done"}`), &view))
	assert.Error(t, json.Unmarshal([]byte(`{"state":3}`), &view))
}
