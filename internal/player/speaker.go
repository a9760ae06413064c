package player

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/sirupsen/logrus"
)

// SpeakerConfig configures the system audio output.
type SpeakerConfig struct {
	SampleRate      int           // output sample rate in Hz
	Buffer          time.Duration // speaker buffer length
	ResampleQuality int           // beep.Resample quality, 1-6
}

// Speaker is the Sink backed by the system audio device.
//
// Every mutation runs under speaker.Lock so it never races with the
// speaker goroutine pulling samples.
type Speaker struct {
	sampleRate beep.SampleRate
	quality    int
	fifo       *fifoStreamer
	ctrl       *beep.Ctrl
	log        logrus.FieldLogger
}

// NewSpeaker opens the default audio device and starts an idle sink on it.
func NewSpeaker(cfg SpeakerConfig, log logrus.FieldLogger) (*Speaker, error) {
	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(cfg.Buffer)); err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}

	s := &Speaker{
		sampleRate: sr,
		quality:    cfg.ResampleQuality,
		log:        log,
	}
	s.fifo = &fifoStreamer{onFinish: s.finished}
	s.ctrl = &beep.Ctrl{Streamer: s.fifo, Paused: false}
	speaker.Play(s.ctrl)

	log.WithFields(logrus.Fields{
		"sample_rate": cfg.SampleRate,
		"buffer":      cfg.Buffer,
	}).Debug("Audio device ready")
	return s, nil
}

// finished runs on the speaker goroutine when a track drains on its own.
func (s *Speaker) finished(src Stream, err error) {
	entry := s.log.WithField("title", src.Tags().Title)
	if err != nil {
		entry.WithError(err).Warn("Track stopped on decode error")
		return
	}
	entry.Debug("Track finished")
}

// Append queues a stream after whatever is already loaded.
func (s *Speaker) Append(st Stream) {
	var play beep.Streamer = st
	if rate := st.Format().SampleRate; rate != s.sampleRate {
		play = beep.Resample(s.quality, rate, s.sampleRate, st)
	}
	speaker.Lock()
	s.fifo.push(fifoItem{src: st, play: play})
	speaker.Unlock()
}

// Play unpauses output.
func (s *Speaker) Play() {
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

// Pause pauses output, keeping the loaded streams.
func (s *Speaker) Pause() {
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// Clear drops every loaded stream. The pause flag is reset so the next
// appended stream starts right away, as on a fresh sink.
func (s *Speaker) Clear() {
	speaker.Lock()
	s.fifo.reset()
	s.ctrl.Paused = false
	speaker.Unlock()
}

// SkipOne drops the stream currently at the front.
func (s *Speaker) SkipOne() {
	speaker.Lock()
	s.fifo.skip()
	speaker.Unlock()
}

// IsPaused reports whether output is paused.
func (s *Speaker) IsPaused() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return s.ctrl.Paused
}

// Len returns the number of loaded streams, including the playing one.
func (s *Speaker) Len() int {
	speaker.Lock()
	defer speaker.Unlock()
	return s.fifo.len()
}

// Empty reports whether nothing is loaded.
func (s *Speaker) Empty() bool {
	return s.Len() == 0
}

// Close stops output and releases the audio device.
func (s *Speaker) Close() {
	speaker.Clear()
	s.fifo.reset()
	speaker.Close()
}
