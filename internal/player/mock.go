// internal/player/mock.go
package player

import (
	"time"

	"github.com/gopxl/beep/v2"
)

// Mock is a test double for Sink. It keeps the same bookkeeping as the
// speaker without touching an audio device.
type Mock struct {
	items  []Stream
	paused bool

	appendCalls int
	playCalls   int
	pauseCalls  int
	clearCalls  int
	skipCalls   int
}

// NewMock creates a new empty, unpaused mock sink.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Append(s Stream) {
	m.appendCalls++
	m.items = append(m.items, s)
}

func (m *Mock) Play() {
	m.playCalls++
	m.paused = false
}

func (m *Mock) Pause() {
	m.pauseCalls++
	m.paused = true
}

func (m *Mock) Clear() {
	m.clearCalls++
	for _, s := range m.items {
		if s != nil {
			_ = s.Close()
		}
	}
	m.items = nil
	m.paused = false
}

func (m *Mock) SkipOne() {
	m.skipCalls++
	if len(m.items) == 0 {
		return
	}
	if m.items[0] != nil {
		_ = m.items[0].Close()
	}
	m.items = m.items[1:]
}

func (m *Mock) IsPaused() bool { return m.paused }

func (m *Mock) Len() int { return len(m.items) }

func (m *Mock) Empty() bool { return len(m.items) == 0 }

// Test helpers

// Items returns the loaded streams, front first.
func (m *Mock) Items() []Stream { return m.items }

// SimulateFinished drops the front stream as if it had played to the end.
func (m *Mock) SimulateFinished() {
	if len(m.items) > 0 {
		m.items = m.items[1:]
	}
}

// ForceAppend loads a stream without counting it as an Append call.
// Used to put the sink out of step with the queue.
func (m *Mock) ForceAppend(s Stream) { m.items = append(m.items, s) }

func (m *Mock) AppendCalls() int { return m.appendCalls }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) PauseCalls() int { return m.pauseCalls }

func (m *Mock) ClearCalls() int { return m.clearCalls }

func (m *Mock) SkipCalls() int { return m.skipCalls }

// MockStream is a silent Stream for tests.
type MockStream struct {
	tags    Tags
	rate    beep.SampleRate
	samples int
	pos     int
	closed  bool
}

// NewMockStream creates a silent stream of duration d. A zero duration
// makes a stream whose length is unknown.
func NewMockStream(title string, d time.Duration) *MockStream {
	rate := beep.SampleRate(44100)
	return &MockStream{tags: Tags{Title: title}, rate: rate, samples: rate.N(d)}
}

// WithTags replaces the stream's tags.
func (s *MockStream) WithTags(t Tags) *MockStream {
	s.tags = t
	return s
}

func (s *MockStream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.samples > 0 && s.pos >= s.samples {
		return 0, false
	}
	n = len(samples)
	if s.samples > 0 {
		n = min(n, s.samples-s.pos)
	}
	clear(samples[:n])
	s.pos += n
	return n, true
}

func (s *MockStream) Err() error { return nil }

func (s *MockStream) Len() int { return s.samples }

func (s *MockStream) Position() int { return s.pos }

func (s *MockStream) Seek(p int) error {
	s.pos = p
	return nil
}

func (s *MockStream) Close() error {
	s.closed = true
	return nil
}

func (s *MockStream) Format() beep.Format {
	return beep.Format{SampleRate: s.rate, NumChannels: 2, Precision: 2}
}

func (s *MockStream) TotalDuration() (time.Duration, bool) {
	if s.samples <= 0 {
		return 0, false
	}
	return s.rate.D(s.samples), true
}

func (s *MockStream) Tags() Tags { return s.tags }

// Closed reports whether Close was called.
func (s *MockStream) Closed() bool { return s.closed }

var _ Stream = (*MockStream)(nil)
