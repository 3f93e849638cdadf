package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Holastor/AION-2-Localization/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUpdater(url string) *Updater {
	cfg := config.DefaultConfig().Updater
	cfg.URL = url
	cfg.Timeout = 5 * time.Second
	return New(cfg, zap.NewNop())
}

func TestUpdate(t *testing.T) {
	payload := []byte("pak file contents")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write(payload)
	}))
	defer srv.Close()

	game := t.TempDir()
	u := newTestUpdater(srv.URL)

	target, err := u.Update(context.Background(), `"`+game+`"`)
	require.NoError(t, err)

	want := filepath.Join(game, "Aion2", "Content", "Paks", "L10N", "Text", "en-US", config.DefaultTargetFilename)
	assert.Equal(t, want, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestUpdateBadStatusKeepsExistingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	game := t.TempDir()
	u := newTestUpdater(srv.URL)
	target := u.Target(game)
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	_, err := u.Update(context.Background(), game)
	assert.ErrorIs(t, err, ErrBadStatus)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestUpdateNoGamePath(t *testing.T) {
	u := newTestUpdater("http://127.0.0.1:0")
	_, err := u.Update(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNoGamePath)
}

func TestUpdateCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestUpdater(srv.URL).Update(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}
