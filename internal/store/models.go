package store

import "time"

// Match is one game session. EndTime stays NULL while the match is
// live; at most one row may have a NULL EndTime at a time.
type Match struct {
	ID        uint `gorm:"primaryKey"`
	StartTime time.Time
	EndTime   *time.Time
	Draws     []Draw `gorm:"constraint:OnDelete:CASCADE"`
}

// Draw is a single number-call event belonging to a match.
type Draw struct {
	ID      uint `gorm:"primaryKey"`
	MatchID uint `gorm:"index;not null"`
	Number  int  `gorm:"not null"`
	DrawnAt time.Time
}
