package player

import (
	"io"

	"github.com/dhowden/tag"
)

// Tags holds the descriptive tags of a track, used in logs and desktop
// notifications. Clients always see the file path.
type Tags struct {
	Title  string
	Artist string
	Album  string
}

// readTags reads embedded tags and rewinds rs. Missing or unreadable tags
// yield an empty Tags.
func readTags(rs io.ReadSeeker) Tags {
	var t Tags
	if m, err := tag.ReadFrom(rs); err == nil {
		t = Tags{
			Title:  m.Title(),
			Artist: m.Artist(),
			Album:  m.Album(),
		}
	}
	_, _ = rs.Seek(0, io.SeekStart)
	return t
}
