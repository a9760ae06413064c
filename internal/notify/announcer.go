package notify

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/sound/internal/playlist"
)

// Announcer shows a "now playing" notification for each started track.
// Each one replaces the previous, so at most one is on screen.
type Announcer struct {
	n       Notifier
	timeout time.Duration
	lastID  uint32
	log     logrus.FieldLogger
}

// NewAnnouncer wraps n. A non-positive timeout uses the server default.
func NewAnnouncer(n Notifier, timeout time.Duration, log logrus.FieldLogger) *Announcer {
	return &Announcer{n: n, timeout: timeout, log: log}
}

// NowPlaying announces t. Without a title tag the file name is shown.
// Failures are logged and otherwise ignored.
func (a *Announcer) NowPlaying(t playlist.Track) {
	id, err := a.n.Notify(Notification{
		Summary:    summary(t),
		Body:       body(t),
		Icon:       FindAlbumArtPath(t.Name),
		Timeout:    a.timeout,
		ReplacesID: a.lastID,
	})
	if err != nil {
		a.log.WithError(err).Debug("Desktop notification failed")
		return
	}
	a.lastID = id
}

// Dismiss closes the last notification, if any.
func (a *Announcer) Dismiss() {
	if a.lastID == 0 {
		return
	}
	if err := a.n.Close(a.lastID); err != nil {
		a.log.WithError(err).Debug("Could not close notification")
	}
	a.lastID = 0
}

func summary(t playlist.Track) string {
	if t.Title != "" {
		return t.Title
	}
	return strings.TrimSuffix(filepath.Base(t.Name), filepath.Ext(t.Name))
}

// body joins artist and album, skipping missing ones.
func body(t playlist.Track) string {
	var parts []string
	for _, s := range []string{t.Artist, t.Album} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " - ")
}
