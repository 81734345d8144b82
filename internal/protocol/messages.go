package protocol

import "github.com/Manuel080806/TombolaNFC/internal/engine"

// Inbound message kinds. The set is closed; anything else is dropped
// by the channel handler.
const (
	KindAuthenticate = "authenticate"
	KindCallNumber   = "callNumber"
	KindResetGame    = "resetGame"
)

type ClientMessage struct {
	Type   string `json:"type"`
	Role   string `json:"role,omitempty"`
	Number int    `json:"number,omitempty"`
}

// GameUpdate is the full-state snapshot pushed to every connected
// party after any mutation. There is no incremental form; each update
// supersedes the previous one.
type GameUpdate struct {
	Type string         `json:"type"` // always "gameUpdate"
	Data GameUpdateData `json:"data"`
}

type GameUpdateData struct {
	Numbers       []BoardNumber `json:"numbers"`
	CalledNumbers []int         `json:"calledNumbers"`
}

type BoardNumber struct {
	Number int  `json:"number"`
	Called bool `json:"called"`
}

// NewGameUpdate renders the board: all 90 numbers in order with their
// called flag, plus the raw draw sequence in call order.
func NewGameUpdate(s engine.State) GameUpdate {
	called := make(map[int]bool, len(s.Called))
	for _, n := range s.Called {
		called[n] = true
	}

	numbers := make([]BoardNumber, 0, engine.MaxNumber)
	for n := engine.MinNumber; n <= engine.MaxNumber; n++ {
		numbers = append(numbers, BoardNumber{Number: n, Called: called[n]})
	}

	seq := s.Called
	if seq == nil {
		seq = []int{}
	}
	return GameUpdate{
		Type: "gameUpdate",
		Data: GameUpdateData{Numbers: numbers, CalledNumbers: seq},
	}
}

// ParseRole maps the wire role strings onto engine roles. Unknown
// strings report false and leave the party's role alone.
func ParseRole(role string) (engine.Role, bool) {
	switch role {
	case "admin":
		return engine.RoleAdmin, true
	case "viewer":
		return engine.RoleViewer, true
	default:
		return engine.RoleNone, false
	}
}
