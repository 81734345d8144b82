package game

import (
	"time"

	"github.com/Manuel080806/TombolaNFC/internal/engine"
	"go.uber.org/zap"
)

type op interface{ isOp() }

type opStartMatch struct{ at time.Time }

type opRecordDraw struct {
	number int
	at     time.Time
}

type opCloseMatch struct{ at time.Time }

func (opStartMatch) isOp() {}
func (opRecordDraw) isOp() {}
func (opCloseMatch) isOp() {}

// persister drains an ordered op queue onto the gateway. It owns the
// storage-side id of the live match: a draw enqueued right after a
// match-start op always lands under the new row because ops are
// consumed one at a time, in order. Failures are logged and skipped;
// the session's in-memory state is never rolled back.
type persister struct {
	ops     chan op
	gw      Gateway
	matchID uint
	log     *zap.Logger
}

func newPersister(gw Gateway, matchID uint, log *zap.Logger) *persister {
	p := &persister{
		ops:     make(chan op, 256),
		gw:      gw,
		matchID: matchID,
		log:     log,
	}
	go p.run()
	return p
}

// enqueue translates engine events into storage ops, stamped with the
// command's time. Never blocks the session timeline: if the queue is
// full the op is dropped and logged, mirroring how writes fail while
// the database is away.
func (p *persister) enqueue(events []engine.Event, at time.Time) {
	for _, ev := range events {
		var o op
		switch ev.Type {
		case engine.EvtMatchStarted:
			o = opStartMatch{at: at}
		case engine.EvtNumberCalled:
			o = opRecordDraw{number: ev.Number, at: at}
		case engine.EvtMatchClosed:
			o = opCloseMatch{at: at}
		default:
			continue
		}
		select {
		case p.ops <- o:
		default:
			p.log.Error("persistence queue full, dropping write", zap.String("event", string(ev.Type)))
		}
	}
}

func (p *persister) close() {
	close(p.ops)
}

func (p *persister) run() {
	for o := range p.ops {
		switch o := o.(type) {
		case opStartMatch:
			id, err := p.gw.CreateMatch(o.at)
			if err != nil {
				p.log.Error("failed to open match record", zap.Error(err))
				p.matchID = 0
				continue
			}
			p.matchID = id
			p.log.Info("new match started", zap.Uint("match_id", id))

		case opRecordDraw:
			if p.matchID == 0 {
				p.log.Error("no match record for draw", zap.Int("number", o.number))
				continue
			}
			if err := p.gw.RecordDraw(p.matchID, o.number, o.at); err != nil {
				p.log.Error("failed to record draw", zap.Int("number", o.number), zap.Error(err))
				continue
			}
			p.log.Info("number called", zap.Int("number", o.number))

		case opCloseMatch:
			if p.matchID == 0 {
				continue
			}
			if err := p.gw.CloseMatch(p.matchID, o.at); err != nil {
				p.log.Error("failed to close match record", zap.Uint("match_id", p.matchID), zap.Error(err))
			}
			p.matchID = 0
		}
	}
}
