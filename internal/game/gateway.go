package game

import (
	"time"

	"github.com/Manuel080806/TombolaNFC/internal/store"
)

// Gateway is the persistence surface the session needs. *store.Store
// satisfies it; tests plug in an in-memory fake.
type Gateway interface {
	CreateMatch(at time.Time) (uint, error)
	CloseMatch(id uint, at time.Time) error
	RecordDraw(matchID uint, number int, at time.Time) error
	CurrentMatch() (*store.Match, error)
	DrawsFor(matchID uint) ([]store.Draw, error)
}
