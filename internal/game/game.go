package game

import (
	"context"
	"time"

	"github.com/Manuel080806/TombolaNFC/internal/engine"
	"github.com/Manuel080806/TombolaNFC/internal/protocol"
	"go.uber.org/zap"
)

type Msg interface{ isGameMsg() }

type Join struct {
	ClientID string
	Outbox   chan protocol.GameUpdate // where this party receives snapshots
}

func (Join) isGameMsg() {}

type Leave struct{ ClientID string }

func (Leave) isGameMsg() {}

// Declare records a party's self-declared role. Roles gate commands
// only; every party sees the same snapshots.
type Declare struct {
	ClientID string
	Role     engine.Role
}

func (Declare) isGameMsg() {}

type FromClient struct {
	ClientID string
	Cmd      engine.Command
}

func (FromClient) isGameMsg() {}

type Shutdown struct{}

func (Shutdown) isGameMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isGameMsg() {}

// View reflects internal state for tests without data races.
type View struct {
	State      engine.State
	NumParties int
	Roles      map[string]engine.Role
}

type party struct {
	role   engine.Role
	outbox chan protocol.GameUpdate
}

// Game is the single authoritative session actor. All command
// handling and broadcasting happen on its loop goroutine, so the state
// needs no locking; storage writes run behind it on the persister.
type Game struct {
	inbox   chan Msg
	state   engine.State
	parties map[string]*party
	persist *persister
	ctx     context.Context
	cancel  context.CancelFunc
	log     *zap.Logger
}

func New(parent context.Context, sess Session, gw Gateway, log *zap.Logger) *Game {
	ctx, cancel := context.WithCancel(parent)

	g := &Game{
		inbox:   make(chan Msg, 64),
		state:   sess.State,
		parties: make(map[string]*party),
		persist: newPersister(gw, sess.MatchID, log),
		ctx:     ctx,
		cancel:  cancel,
		log:     log,
	}

	go g.loop()
	return g
}

func (g *Game) Inbox() chan<- Msg { return g.inbox }

func (g *Game) loop() {
	for {
		select {
		case <-g.ctx.Done():
			g.shutdown()
			return

		case m := <-g.inbox:
			switch msg := m.(type) {
			case Join:
				// Role stays undeclared until an authenticate arrives;
				// the first snapshot is sent on Declare.
				g.parties[msg.ClientID] = &party{role: engine.RoleNone, outbox: msg.Outbox}

			case Leave:
				if p := g.parties[msg.ClientID]; p != nil {
					close(p.outbox)
					delete(g.parties, msg.ClientID)
				}

			case Declare:
				p := g.parties[msg.ClientID]
				if p == nil {
					break
				}
				p.role = msg.Role
				g.log.Info("party authenticated", zap.String("client_id", msg.ClientID), zap.String("role", string(msg.Role)))
				g.broadcast()

			case FromClient:
				p := g.parties[msg.ClientID]
				if p == nil {
					break
				}
				events, next, err := engine.Apply(g.state, p.role, msg.Cmd)
				if err != nil {
					// Invalid commands are silent no-ops on the wire.
					g.log.Debug("command ignored",
						zap.String("client_id", msg.ClientID),
						zap.String("command", string(msg.Cmd.Type)),
						zap.Error(err))
					break
				}
				g.state = next
				g.persist.enqueue(events, time.Now())
				g.broadcast()

			case GetState:
				roles := make(map[string]engine.Role, len(g.parties))
				for id, p := range g.parties {
					roles[id] = p.role
				}
				msg.Reply <- View{
					State:      g.state,
					NumParties: len(g.parties),
					Roles:      roles,
				}

			case Shutdown:
				g.shutdown()
				return
			}
		}
	}
}

func (g *Game) shutdown() {
	for id, p := range g.parties {
		close(p.outbox)
		delete(g.parties, id)
	}
	g.persist.close()
	g.cancel()
}

// broadcast fans the current snapshot out to every party regardless of
// role. A party whose outbox is not writable is skipped, not dropped:
// each snapshot is full state, so the next one supersedes anything
// missed.
func (g *Game) broadcast() {
	update := protocol.NewGameUpdate(g.state)
	for id, p := range g.parties {
		select {
		case p.outbox <- update:
		default:
			g.log.Warn("party not writable, skipping snapshot", zap.String("client_id", id))
		}
	}
}
