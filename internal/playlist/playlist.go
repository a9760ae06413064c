package playlist

import "time"

// Track is the metadata of a track handed to the audio sink.
type Track struct {
	Name     string // file path, also used for display
	Duration int    // whole seconds, 0 if unknown

	// Embedded tags, empty when the file has none.
	Title  string
	Artist string
	Album  string
}

// NewTrack builds a Track from a decoded duration.
// Negative or unknown durations are stored as 0.
func NewTrack(name string, d time.Duration) Track {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return Track{Name: name, Duration: secs}
}
