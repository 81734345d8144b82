package engine

import (
	"errors"
	"slices"
)

var ErrNotAdmin = errors.New("command requires admin role")
var ErrOutOfRange = errors.New("number outside 1-90")
var ErrAlreadyCalled = errors.New("number already called")
var ErrUnsupportedCommand = errors.New("unsupported command")

// MinNumber and MaxNumber bound the tombola board.
const (
	MinNumber = 1
	MaxNumber = 90
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
	RoleNone   Role = ""
)

// State is the in-memory view of the current match. Active is false
// when no match is open; Called holds the drawn numbers in call order.
type State struct {
	Active bool
	Called []int
}

func NewEmptyState() State {
	return State{Active: false, Called: []int{}}
}

type CommandType string

const (
	CmdCallNumber CommandType = "CallNumber"
	CmdResetGame  CommandType = "ResetGame"
)

type Command struct {
	Type   CommandType
	Number int
}

type EventType string

const (
	EvtMatchStarted EventType = "MatchStarted"
	EvtNumberCalled EventType = "NumberCalled"
	EvtMatchClosed  EventType = "MatchClosed"
)

type Event struct {
	Type   EventType
	Number int
}

/*
	CmdCallNumber -> EvtMatchStarted (only when no match is open) -> EvtNumberCalled
	CmdResetGame  -> EvtMatchClosed (only when a match is open)

	A closed match is terminal: the next CallNumber always starts a
	fresh match rather than reopening the old one.
*/

// Apply validates cmd against s for the caller's role and returns the
// events to persist plus the next state. The input state is never
// mutated. Rejections come back as sentinel errors; callers treat them
// as silent no-ops.
func Apply(s State, role Role, cmd Command) ([]Event, State, error) {
	if role != RoleAdmin {
		return nil, s, ErrNotAdmin
	}

	switch cmd.Type {
	case CmdCallNumber:
		if cmd.Number < MinNumber || cmd.Number > MaxNumber {
			return nil, s, ErrOutOfRange
		}
		if slices.Contains(s.Called, cmd.Number) {
			return nil, s, ErrAlreadyCalled
		}

		events := []Event{}
		newState := s
		if !s.Active {
			events = append(events, Event{Type: EvtMatchStarted})
			newState.Active = true
		}
		events = append(events, Event{Type: EvtNumberCalled, Number: cmd.Number})

		newState.Called = append(slices.Clone(s.Called), cmd.Number)
		return events, newState, nil

	case CmdResetGame:
		// Clears unconditionally; the close event only fires when
		// there is a match to close.
		var events []Event
		if s.Active {
			events = []Event{{Type: EvtMatchClosed}}
		}
		return events, NewEmptyState(), nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}
