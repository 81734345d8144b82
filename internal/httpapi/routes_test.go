package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Manuel080806/TombolaNFC/internal/engine"
	"github.com/Manuel080806/TombolaNFC/internal/game"
	"github.com/Manuel080806/TombolaNFC/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type nopGateway struct{}

func (nopGateway) CreateMatch(at time.Time) (uint, error)             { return 1, nil }
func (nopGateway) CloseMatch(id uint, at time.Time) error             { return nil }
func (nopGateway) RecordDraw(matchID uint, n int, at time.Time) error { return nil }
func (nopGateway) CurrentMatch() (*store.Match, error)                { return nil, nil }
func (nopGateway) DrawsFor(matchID uint) ([]store.Draw, error)        { return nil, nil }

func TestRoutes_PagesAndHealthz(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"index.html", "admin.html", "viewer.html", "nfc.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<html>"+name+"</html>"), 0o644))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g := game.New(ctx, game.Session{State: engine.NewEmptyState()}, nopGateway{}, zaptest.NewLogger(t))

	srv := httptest.NewServer(SetupRoutes(g, dir, zaptest.NewLogger(t)))
	defer srv.Close()

	for path, want := range map[string]string{
		"/":       "index.html",
		"/admin":  "admin.html",
		"/viewer": "viewer.html",
		"/nfc":    "nfc.html",
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		body := make([]byte, 64)
		n, _ := resp.Body.Read(body)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.Contains(t, string(body[:n]), want)
	}

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
