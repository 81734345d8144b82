package game

import (
	"github.com/Manuel080806/TombolaNFC/internal/engine"
	"go.uber.org/zap"
)

// Session is the recovered starting point of the process: the
// in-memory state plus the storage id of the live match (0 when none).
type Session struct {
	State   engine.State
	MatchID uint
}

// Recover rebuilds the session from storage: the most recent match
// with no end time, and its draws in draw-time order. Query failures
// are logged and fall back to an empty session rather than refusing to
// start.
func Recover(gw Gateway, log *zap.Logger) Session {
	empty := Session{State: engine.NewEmptyState()}

	m, err := gw.CurrentMatch()
	if err != nil {
		log.Error("failed to load current match", zap.Error(err))
		return empty
	}
	if m == nil {
		log.Info("no live match found, ready for a new game")
		return empty
	}

	draws, err := gw.DrawsFor(m.ID)
	if err != nil {
		log.Error("failed to load draws", zap.Uint("match_id", m.ID), zap.Error(err))
		return empty
	}

	called := make([]int, 0, len(draws))
	for _, d := range draws {
		called = append(called, d.Number)
	}
	log.Info("live match restored", zap.Uint("match_id", m.ID), zap.Int("draws", len(called)))
	return Session{
		State:   engine.State{Active: true, Called: called},
		MatchID: m.ID,
	}
}
