package playback

import (
	"fmt"

	"github.com/llehouerou/sound/internal/playlist"
)

// Result is the outcome of a Player operation. Failures are ordinary
// results: remote clients always get a reply.
type Result struct {
	OK      bool
	Message string

	// Set by Current only.
	Current     *playlist.Track
	QueueLength int
}

func succeed(format string, args ...any) Result {
	return Result{OK: true, Message: fmt.Sprintf(format, args...)}
}

func fail(msg string) Result {
	return Result{OK: false, Message: msg}
}
