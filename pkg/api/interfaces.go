// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/Holastor/AION-2-Localization/pkg/codec"
	"go.uber.org/zap"
)

// Dependencies are the collaborators a server needs
type Dependencies struct {
	Codec     *codec.ContainerCodec
	Snapshots SnapshotReader // may be nil
	Logger    *zap.Logger
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves until ctx is canceled
	StartServer(ctx context.Context, deps Dependencies, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
