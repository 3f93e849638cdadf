package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Holastor/AION-2-Localization/pkg/api"
	"github.com/Holastor/AION-2-Localization/pkg/config"
	"github.com/Holastor/AION-2-Localization/pkg/updater"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubStarter struct{ called bool }

func (s *stubStarter) StartServer(ctx context.Context, deps api.Dependencies, cfg api.ServerConfig) error {
	s.called = true
	return nil
}

type stubFactory struct{ starter *stubStarter }

func (f stubFactory) CreateServerStarter() api.ServerStarter { return f.starter }

func TestContainerDefaults(t *testing.T) {
	c := NewContainer()
	assert.NotNil(t, c.GetServerFactory())

	store, err := c.OpenSnapshots(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	u := c.NewUpdater(config.DefaultConfig().Updater, zap.NewNop())
	assert.Equal(t, config.DefaultDownloadURL, u.URL)
}

func TestContainerOverrides(t *testing.T) {
	c := NewContainer()

	starter := &stubStarter{}
	c.SetServerFactory(stubFactory{starter: starter})
	require.NoError(t, c.GetServerFactory().CreateServerStarter().StartServer(context.Background(), api.Dependencies{}, api.ServerConfig{}))
	assert.True(t, starter.called)

	c.SetUpdaterFactory(func(cfg config.Updater, logger *zap.Logger) *updater.Updater {
		return &updater.Updater{URL: "http://example.invalid/pak"}
	})
	assert.Equal(t, "http://example.invalid/pak", c.NewUpdater(config.Updater{}, nil).URL)
}
