package httpapi

import (
	"net/http"

	"github.com/Manuel080806/TombolaNFC/internal/game"
	"github.com/Manuel080806/TombolaNFC/internal/ws"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func SetupRoutes(g *game.Game, publicDir string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Page routes
	r.Get("/", Page(publicDir, "index.html"))
	r.Get("/admin", Page(publicDir, "admin.html"))
	r.Get("/viewer", Page(publicDir, "viewer.html"))
	r.Get("/nfc", Page(publicDir, "nfc.html"))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(publicDir))))

	r.Get("/ws", ws.Handler(g, log))
	r.Get("/healthz", Healthz)
	return r
}
