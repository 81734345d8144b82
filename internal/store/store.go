package store

import (
	"errors"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// connectRetryDelay is the fixed backoff between connection attempts.
const connectRetryDelay = 2 * time.Second

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open dials the database and migrates the schema. Transient
// connectivity failures are retried forever at a fixed delay; anything
// the server itself reports (bad credentials, unknown database) is
// returned so the process can exit instead of running half-connected.
func Open(dsn string, log *zap.Logger) (*Store, error) {
	for {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			if err := db.AutoMigrate(&Match{}, &Draw{}); err != nil {
				return nil, err
			}
			log.Info("connected to database")
			return &Store{db: db, log: log}, nil
		}
		if !isTransient(err) {
			return nil, err
		}
		log.Warn("database unreachable, retrying", zap.Error(err), zap.Duration("delay", connectRetryDelay))
		time.Sleep(connectRetryDelay)
	}
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// The server answered; retrying will not change its mind.
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.EOF)
}

// CreateMatch opens a new match and returns its generated id.
func (s *Store) CreateMatch(at time.Time) (uint, error) {
	m := Match{StartTime: at}
	if err := s.db.Create(&m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

// CloseMatch stamps the end time of a match.
func (s *Store) CloseMatch(id uint, at time.Time) error {
	return s.db.Model(&Match{}).Where("id = ?", id).Update("end_time", at).Error
}

// RecordDraw persists one number-call under a match.
func (s *Store) RecordDraw(matchID uint, number int, at time.Time) error {
	return s.db.Create(&Draw{MatchID: matchID, Number: number, DrawnAt: at}).Error
}

// CurrentMatch returns the most recent match with no end time, or nil
// when there is no live match.
func (s *Store) CurrentMatch() (*Match, error) {
	var m Match
	err := s.db.Where("end_time IS NULL").Order("id DESC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DrawsFor lists a match's draws ordered by draw time ascending.
func (s *Store) DrawsFor(matchID uint) ([]Draw, error) {
	var draws []Draw
	err := s.db.Where("match_id = ?", matchID).Order("drawn_at ASC").Find(&draws).Error
	if err != nil {
		return nil, err
	}
	return draws, nil
}
