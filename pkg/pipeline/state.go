package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// State is the externally observable state of the controller.
type State uint8

const (
	StateEmpty State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// event triggers a transition. Events are internal: callers drive the
// machine through Controller methods.
type event string

const (
	eventBegin            event = "begin"
	eventSucceeded        event = "succeeded"
	eventCapacityExceeded event = "capacity_exceeded"
	eventFailed           event = "failed"
	eventExport           event = "export"
	eventReset            event = "reset"
)

// action executes side effects during a transition. Returning an error
// prevents the transition.
type action func(ctx context.Context, from, to State, data any) error

type transition struct {
	from    State
	to      State
	actions []action // executed in order before the state change
}

// machine is a table-driven finite state machine. Lookups are
// map[from][event]. It is not safe for concurrent use.
type machine struct {
	current     State
	transitions map[State]map[event]transition
}

func newMachine(initial State) *machine {
	return &machine{
		current:     initial,
		transitions: make(map[State]map[event]transition),
	}
}

// add registers a transition. A later registration for the same from/event
// pair replaces the earlier one.
func (m *machine) add(from, to State, ev event, actions ...action) {
	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[event]transition)
	}
	m.transitions[from][ev] = transition{from: from, to: to, actions: actions}
}

func (m *machine) fire(ctx context.Context, ev event, data any) error {
	t, ok := m.transitions[m.current][ev]
	if !ok {
		return &noTransitionError{state: m.current, event: ev}
	}

	// Any action failure aborts the transition.
	for _, a := range t.actions {
		if a == nil {
			continue
		}
		if err := a(ctx, m.current, t.to, data); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
	}

	m.current = t.to
	return nil
}

func (m *machine) canFire(ev event) bool {
	_, ok := m.transitions[m.current][ev]
	return ok
}

// noTransitionError indicates the current state does not accept the event.
type noTransitionError struct {
	state State
	event event
}

func (e *noTransitionError) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.state, e.event)
}

func isNoTransition(err error) bool {
	var e *noTransitionError
	return errors.As(err, &e)
}
