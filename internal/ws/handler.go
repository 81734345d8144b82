package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/Manuel080806/TombolaNFC/internal/engine"
	"github.com/Manuel080806/TombolaNFC/internal/game"
	"github.com/Manuel080806/TombolaNFC/internal/protocol"
	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// Handler speaks the game protocol over one websocket per party. The
// channel is state-dissemination only: inbound commands get no reply,
// and bad input is dropped without an error frame.
func Handler(g *game.Game, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan protocol.GameUpdate, 8)
		clientID := randID(6)
		log.Info("new websocket connection", zap.String("client_id", clientID))

		g.Inbox() <- game.Join{ClientID: clientID, Outbox: out}
		defer func() { g.Inbox() <- game.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for update := range out {
				payload, _ := json.Marshal(update)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop. No read deadline: viewers sit idle for as long
		// as the game lasts.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					log.Info("websocket closed", zap.String("client_id", clientID))
				default:
					log.Info("websocket read ended", zap.String("client_id", clientID), zap.Error(err))
				}
				return
			}

			var cm protocol.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				log.Warn("malformed message dropped", zap.String("client_id", clientID), zap.Error(err))
				continue
			}

			switch cm.Type {
			case protocol.KindAuthenticate:
				role, ok := protocol.ParseRole(cm.Role)
				if !ok {
					log.Warn("unknown role dropped", zap.String("client_id", clientID), zap.String("role", cm.Role))
					continue
				}
				g.Inbox() <- game.Declare{ClientID: clientID, Role: role}

			case protocol.KindCallNumber:
				g.Inbox() <- game.FromClient{
					ClientID: clientID,
					Cmd:      engine.Command{Type: engine.CmdCallNumber, Number: cm.Number},
				}

			case protocol.KindResetGame:
				g.Inbox() <- game.FromClient{
					ClientID: clientID,
					Cmd:      engine.Command{Type: engine.CmdResetGame},
				}

			default:
				log.Warn("unknown message kind dropped", zap.String("client_id", clientID), zap.String("kind", cm.Type))
			}
		}
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
