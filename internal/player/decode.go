package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/sirupsen/logrus"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
)

// ErrUnsupportedFormat is returned by Decode for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported format")

// IsMusicFile reports whether path has an extension the decoder handles.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extWAV, extOGG:
		return true
	default:
		return false
	}
}

// FileDecoder decodes files from the local filesystem.
type FileDecoder struct {
	log logrus.FieldLogger
}

// NewFileDecoder creates a decoder that logs through log.
func NewFileDecoder(log logrus.FieldLogger) *FileDecoder {
	return &FileDecoder{log: log}
}

// Open opens path for decoding.
func (d *FileDecoder) Open(path string) (io.ReadSeekCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if st, err := f.Stat(); err == nil {
		d.log.WithFields(logrus.Fields{
			"path": path,
			"size": humanize.Bytes(uint64(st.Size())), //nolint:gosec // file sizes are non-negative
		}).Debug("Opened audio file")
	}
	return f, nil
}

// Decode decodes rc according to the extension of path.
func (d *FileDecoder) Decode(path string, rc io.ReadSeekCloser) (Stream, error) {
	if !IsMusicFile(path) {
		rc.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, strings.ToLower(filepath.Ext(path)))
	}
	tags := readTags(rc)

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case extMP3:
		streamer, format, err = decodeGoMP3(rc)
	case extFLAC:
		// Skip ID3v2 tag if present (some taggers add it to FLAC files)
		if err = skipID3v2(rc); err == nil {
			streamer, format, err = flac.Decode(rc)
		}
	case extWAV:
		streamer, format, err = wav.Decode(rc)
	case extOGG:
		streamer, format, err = vorbis.Decode(rc)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		rc.Close()
		return nil, err
	}

	if tags.Title == "" {
		tags.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	s := &decodedStream{
		StreamSeekCloser: streamer,
		format:           format,
		tags:             tags,
	}

	fields := logrus.Fields{
		"path":        path,
		"sample_rate": int(format.SampleRate),
		"channels":    format.NumChannels,
		"title":       tags.Title,
	}
	if tags.Artist != "" {
		fields["artist"] = tags.Artist
	}
	if dur, ok := s.TotalDuration(); ok {
		fields["duration"] = dur.Round(time.Second)
	}
	d.log.WithFields(fields).Debug("Decoded audio file")

	return s, nil
}

// decodedStream pairs a beep streamer with what we learned while decoding.
type decodedStream struct {
	beep.StreamSeekCloser
	format beep.Format
	tags   Tags
}

func (s *decodedStream) Format() beep.Format { return s.format }

func (s *decodedStream) Tags() Tags { return s.tags }

// TotalDuration returns false when the decoder cannot tell the length
// (e.g. VBR MP3 without a Xing header).
func (s *decodedStream) TotalDuration() (time.Duration, bool) {
	n := s.Len()
	if n <= 0 || s.format.SampleRate <= 0 {
		return 0, false
	}
	return s.format.SampleRate.D(n), true
}
