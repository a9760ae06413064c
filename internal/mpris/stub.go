//go:build !linux

package mpris

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/sound/internal/ipc"
	"github.com/llehouerou/sound/internal/playback"
	"github.com/llehouerou/sound/internal/playlist"
)

// Controller runs daemon commands on behalf of D-Bus clients.
type Controller interface {
	Handle(ctx context.Context, req ipc.Request) ipc.Response
	Status() (playback.State, *playlist.Track)
}

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ Controller, _ logrus.FieldLogger) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
