package daemon

import (
	"context"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/sound/internal/ipc"
	"github.com/llehouerou/sound/internal/playback"
	"github.com/llehouerou/sound/internal/player"
)

func newTestController() *Controller {
	log, _ := test.NewNullLogger()
	return NewController(player.NewMock(), newFakeDecoder(), log)
}

func TestController_Status(t *testing.T) {
	c := newTestController()

	state, track := c.Status()
	assert.Equal(t, playback.StateEmpty, state)
	assert.Nil(t, track)

	c.Handle(context.Background(), req("play", "/music/a.mp3"))
	c.Handle(context.Background(), req("pause", ""))

	state, track = c.Status()
	assert.Equal(t, playback.StatePaused, state)
	require.NotNil(t, track)
	assert.Equal(t, "/music/a.mp3", track.Name)
	assert.Equal(t, 3, track.Duration)
}

// Run with -race: socket and media-key callers share one Player.
func TestController_ConcurrentCallers(t *testing.T) {
	c := newTestController()
	c.Handle(context.Background(), req("play", "/music/a.mp3"))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if i%2 == 0 {
					c.Handle(context.Background(), req("queue", "/music/b.mp3"))
					c.Handle(context.Background(), req("skip", ""))
				} else {
					c.Status()
					c.Handle(context.Background(), ipc.NewRequest(ipc.ActionCurrent, ""))
				}
			}
		}()
	}
	wg.Wait()

	resp := c.Handle(context.Background(), req("current", ""))
	assert.True(t, resp.Status)
	assert.Equal(t, 1, *resp.QueueLength)
}
