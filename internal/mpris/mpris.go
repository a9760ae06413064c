//go:build linux

package mpris

import (
	"context"
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/sound/internal/ipc"
	"github.com/llehouerou/sound/internal/notify"
	"github.com/llehouerou/sound/internal/playback"
	"github.com/llehouerou/sound/internal/playlist"
)

// commandTimeout bounds one media-key command.
const commandTimeout = 5 * time.Second

// Controller runs daemon commands on behalf of D-Bus clients. Calls
// arrive on D-Bus goroutines; implementations serialize them with
// socket requests.
type Controller interface {
	Handle(ctx context.Context, req ipc.Request) ipc.Response
	Status() (playback.State, *playlist.Track)
}

// Adapter exposes the daemon as an MPRIS media player over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(ctrl Controller, log logrus.FieldLogger) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("sound", &rootAdapter{}, &playerAdapter{ctrl: ctrl, log: log}),
	}

	// Start the server in background
	go func() {
		if err := a.server.Listen(); err != nil {
			log.WithError(err).Warn("MPRIS server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // No window
}

func (r *rootAdapter) Quit() error {
	return nil // Stopped through the control socket
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "sound", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	ctrl Controller
	log  logrus.FieldLogger
}

func (p *playerAdapter) do(action ipc.Action) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	resp := p.ctrl.Handle(ctx, ipc.NewRequest(action, ""))
	p.log.WithFields(logrus.Fields{
		"action":  action.String(),
		"status":  resp.Status,
		"message": resp.Message,
	}).Debug("MPRIS command")
}

func (p *playerAdapter) Next() error {
	p.do(ipc.ActionSkip)
	return nil
}

func (p *playerAdapter) Previous() error {
	return nil // Played tracks are not kept
}

func (p *playerAdapter) Pause() error {
	p.do(ipc.ActionPause)
	return nil
}

func (p *playerAdapter) PlayPause() error {
	state, _ := p.ctrl.Status()
	switch state {
	case playback.StatePlaying:
		p.do(ipc.ActionPause)
	case playback.StatePaused:
		p.do(ipc.ActionResume)
	case playback.StateEmpty:
	}
	return nil
}

func (p *playerAdapter) Stop() error {
	p.do(ipc.ActionClear)
	return nil
}

func (p *playerAdapter) Play() error {
	p.do(ipc.ActionResume)
	return nil
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Not supported
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Tracks are queued through the control socket
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	state, _ := p.ctrl.Status()
	switch state {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateEmpty:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	_, track := p.ctrl.Status()
	if track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.Name)),
		Length:  types.Microseconds((time.Duration(track.Duration) * time.Second).Microseconds()),
		Title:   track.Title,
		Album:   track.Album,
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSuffix(filepath.Base(track.Name), filepath.Ext(track.Name))
	}
	if track.Artist != "" {
		meta.Artist = []string{track.Artist}
	}

	if artPath := notify.FindAlbumArtPath(track.Name); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return 0, nil // Not tracked
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	state, _ := p.ctrl.Status()
	return state.IsLoaded(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	state, _ := p.ctrl.Status()
	return state == playback.StatePaused, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	state, _ := p.ctrl.Status()
	return state == playback.StatePlaying, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
