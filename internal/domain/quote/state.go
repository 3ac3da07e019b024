package quote

import (
	"encoding/json"
	"fmt"
)

// State represents where an estimate request is in its lifecycle.
type State string

const (
	StateIdle            State = "idle"
	StateValidating      State = "validating"
	StateRoutingInFlight State = "routing_in_flight"
	StateComputing       State = "computing"
	StateNotifyInFlight  State = "notify_in_flight"
	StateSuccess         State = "success"
	StateFailed          State = "failed"
)

// validTransitions defines the state machine for estimate requests.
// Restart is allowed from every state and is handled separately.
var validTransitions = map[State][]State{
	StateIdle:            {StateValidating},
	StateValidating:      {StateIdle, StateRoutingInFlight},
	StateRoutingInFlight: {StateComputing, StateFailed},
	StateComputing:       {StateNotifyInFlight, StateSuccess},
	StateNotifyInFlight:  {StateSuccess, StateFailed},
	StateSuccess:         {StateValidating},
	StateFailed:          {StateValidating},
}

// IsValid returns true if the state is a recognized estimate state.
func (s State) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this state to the target is allowed.
func (s State) CanTransitionTo(target State) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true for the states a request settles in.
func (s State) IsTerminal() bool {
	return s == StateSuccess || s == StateFailed
}

// IsInFlight returns true while a collaborator call or computation is pending.
func (s State) IsInFlight() bool {
	switch s {
	case StateValidating, StateRoutingInFlight, StateComputing, StateNotifyInFlight:
		return true
	}
	return false
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// ParseState converts a string to a State, returning an error if invalid.
func ParseState(s string) (State, error) {
	state := State(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid quote state: %s", s)
	}
	return state, nil
}

// UnmarshalJSON rejects unknown state names.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseState(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
