package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// go-mp3 always outputs 16-bit little-endian stereo.
const mp3FrameBytes = 4

// mp3Stream adapts an llehouerou/go-mp3 decoder to beep.StreamSeekCloser.
type mp3Stream struct {
	dec    *mp3.Decoder
	closer io.Closer
	err    error
	buf    []byte
}

// decodeGoMP3 decodes an MP3 stream.
func decodeGoMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if dec.SampleRate() == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(dec.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Stream{
		dec:    dec,
		closer: rc,
		buf:    make([]byte, 8192),
	}, format, nil
}

// Stream implements beep.Streamer.
func (s *mp3Stream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}

	want := len(samples) * mp3FrameBytes
	if len(s.buf) < want {
		s.buf = make([]byte, want)
	}

	read, err := io.ReadFull(s.dec, s.buf[:want])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}

	frames := read / mp3FrameBytes
	if frames == 0 {
		return 0, false
	}
	for i := range frames {
		off := i * mp3FrameBytes
		samples[i][0] = pcm16(s.buf[off:])
		samples[i][1] = pcm16(s.buf[off+2:])
	}
	return frames, true
}

func pcm16(b []byte) float64 {
	return float64(int16(binary.LittleEndian.Uint16(b))) / 32768.0 //nolint:gosec // audio samples
}

// Err implements beep.Streamer.
func (s *mp3Stream) Err() error { return s.err }

// Len returns the total number of samples, 0 if unknown.
func (s *mp3Stream) Len() int {
	return int(max(s.dec.SampleCount(), 0))
}

// Position returns the current sample position.
func (s *mp3Stream) Position() int {
	return int(s.dec.SamplePosition())
}

// Seek seeks to the given sample position, clamped to the stream bounds.
func (s *mp3Stream) Seek(p int) error {
	p = max(p, 0)
	if n := s.Len(); n > 0 {
		p = min(p, n)
	}
	if err := s.dec.SeekToSample(int64(p)); err != nil {
		return err
	}
	s.err = nil
	return nil
}

// Close closes the underlying file.
func (s *mp3Stream) Close() error {
	return s.closer.Close()
}
