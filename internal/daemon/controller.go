package daemon

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/sound/internal/ipc"
	"github.com/llehouerou/sound/internal/playback"
	"github.com/llehouerou/sound/internal/player"
	"github.com/llehouerou/sound/internal/playlist"
)

// Controller is the daemon's single entry point to its Player. Socket
// requests and media-key commands both go through it, one at a time.
type Controller struct {
	mu         sync.Mutex
	player     *playback.Player
	dispatcher *Dispatcher
}

// NewController creates the Player over sink and a dispatcher for it.
func NewController(sink player.Sink, dec player.Decoder, log logrus.FieldLogger) *Controller {
	p := playback.New(sink, playlist.NewQueue(), log)
	return &Controller{
		player:     p,
		dispatcher: NewDispatcher(p, dec, log),
	}
}

// SetAnnouncer enables now-playing announcements.
func (c *Controller) SetAnnouncer(a Announcer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatcher.SetAnnouncer(a)
}

// Handle implements ipc.Handler.
func (c *Controller) Handle(ctx context.Context, req ipc.Request) ipc.Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatcher.Handle(ctx, req)
}

// Status returns the playback state and the track at the front of the
// queue, if any.
func (c *Controller) Status() (playback.State, *playlist.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.player.Current()
	return c.player.State(), cur.Current
}
