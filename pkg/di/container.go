// Package di provides dependency injection container
package di

import (
	"github.com/Holastor/AION-2-Localization/pkg/api" //nolint:depguard
	"github.com/Holastor/AION-2-Localization/pkg/config"
	"github.com/Holastor/AION-2-Localization/pkg/snapshot"
	"github.com/Holastor/AION-2-Localization/pkg/updater"
	"go.uber.org/zap"
)

// SnapshotOpener opens the snapshot archive in a directory
type SnapshotOpener func(dir string) (*snapshot.Store, error)

// UpdaterFactory builds a localization updater
type UpdaterFactory func(cfg config.Updater, logger *zap.Logger) *updater.Updater

// Container holds all the dependencies for the application
type Container struct {
	serverFactory  api.ServerFactory
	snapshotOpener SnapshotOpener
	updaterFactory UpdaterFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		serverFactory:  api.NewServerFactory(),
		snapshotOpener: snapshot.Open,
		updaterFactory: updater.New,
	}
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// OpenSnapshots opens the snapshot archive in dir
func (c *Container) OpenSnapshots(dir string) (*snapshot.Store, error) {
	return c.snapshotOpener(dir)
}

// SetSnapshotOpener allows overriding how snapshots are opened (for testing)
func (c *Container) SetSnapshotOpener(opener SnapshotOpener) {
	c.snapshotOpener = opener
}

// NewUpdater builds an updater for cfg
func (c *Container) NewUpdater(cfg config.Updater, logger *zap.Logger) *updater.Updater {
	return c.updaterFactory(cfg, logger)
}

// SetUpdaterFactory allows overriding the updater factory (for testing)
func (c *Container) SetUpdaterFactory(factory UpdaterFactory) {
	c.updaterFactory = factory
}
