package player

import (
	"sync"

	"github.com/gopxl/beep/v2"
)

var _ beep.Streamer = (*fifoStreamer)(nil)

// fifoItem is one appended track: the source for closing and the
// (possibly resampled) streamer that is actually played.
type fifoItem struct {
	src  Stream
	play beep.Streamer
}

// fifoStreamer plays its items back to back and emits silence when idle,
// so it stays registered with the speaker for the lifetime of the sink.
type fifoStreamer struct {
	mu       sync.Mutex
	items    []fifoItem
	onFinish func(src Stream, err error) // called when an item drains on its own
}

// Stream implements beep.Streamer.
func (f *fifoStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for n < len(samples) && len(f.items) > 0 {
		front := f.items[0]
		m, more := front.play.Stream(samples[n:])
		n += m
		if !more {
			f.items = f.items[1:]
			_ = front.src.Close()
			if f.onFinish != nil {
				f.onFinish(front.src, front.play.Err())
			}
			continue
		}
		if m == 0 {
			// Decoder had nothing for us this round; try again on the next buffer
			break
		}
	}

	clear(samples[n:])
	return len(samples), true
}

// Err implements beep.Streamer.
func (f *fifoStreamer) Err() error {
	return nil
}

func (f *fifoStreamer) push(item fifoItem) {
	f.mu.Lock()
	f.items = append(f.items, item)
	f.mu.Unlock()
}

// skip drops the front item. Returns false if there was none.
func (f *fifoStreamer) skip() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.items) == 0 {
		return false
	}
	_ = f.items[0].src.Close()
	f.items = f.items[1:]
	return true
}

// reset drops every item.
func (f *fifoStreamer) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		_ = it.src.Close()
	}
	f.items = nil
}

func (f *fifoStreamer) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
