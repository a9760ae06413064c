// internal/player/interface.go
package player

import (
	"io"
	"time"

	"github.com/gopxl/beep/v2"
)

// Stream is a decoded track ready to be handed to a Sink.
type Stream interface {
	beep.StreamSeekCloser
	Format() beep.Format
	// TotalDuration reports the track length when the format exposes it.
	TotalDuration() (time.Duration, bool)
	Tags() Tags
}

// Sink is the audio output. It buffers appended streams and plays them
// back to back, front first.
type Sink interface {
	Append(s Stream)
	Play()
	Pause()
	Clear()
	SkipOne()
	IsPaused() bool
	Len() int
	Empty() bool
}

// Decoder turns audio files into Streams.
type Decoder interface {
	Open(path string) (io.ReadSeekCloser, error)
	// Decode takes ownership of rc: it is closed on failure, and by the
	// returned Stream otherwise.
	Decode(path string, rc io.ReadSeekCloser) (Stream, error)
}

// Verify implementations at compile time.
var (
	_ Sink    = (*Speaker)(nil)
	_ Sink    = (*Mock)(nil)
	_ Decoder = (*FileDecoder)(nil)
)
