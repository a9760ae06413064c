// internal/playlist/queue_test.go
//
//nolint:goconst // test file with repeated string literals
package playlist

import (
	"testing"
	"time"
)

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if !q.IsEmpty() {
		t.Error("IsEmpty() = false, want true")
	}
	if _, ok := q.Front(); ok {
		t.Error("Front() should report no track for empty queue")
	}
}

func TestQueue_PushBack(t *testing.T) {
	q := NewQueue()

	q.PushBack(Track{Name: "/a.mp3"})
	q.PushBack(Track{Name: "/b.mp3"})

	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
	front, ok := q.Front()
	if !ok || front.Name != "/a.mp3" {
		t.Errorf("Front() = %v, %v, want /a.mp3", front, ok)
	}
}

func TestQueue_PopFront(t *testing.T) {
	q := NewQueue()
	q.PushBack(Track{Name: "/a.mp3", Duration: 10})
	q.PushBack(Track{Name: "/b.mp3", Duration: 20})

	got, ok := q.PopFront()

	if !ok || got.Name != "/a.mp3" || got.Duration != 10 {
		t.Errorf("PopFront() = %v, %v, want /a.mp3 (10s)", got, ok)
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
	front, _ := q.Front()
	if front.Name != "/b.mp3" {
		t.Errorf("Front() after pop = %q, want /b.mp3", front.Name)
	}
}

func TestQueue_PopFront_Empty(t *testing.T) {
	q := NewQueue()

	if _, ok := q.PopFront(); ok {
		t.Error("PopFront() on empty queue should report false")
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestQueue_PopUntilEmpty(t *testing.T) {
	q := NewQueue()
	for _, name := range []string{"/a.mp3", "/b.mp3", "/c.mp3"} {
		q.PushBack(Track{Name: name})
	}

	var order []string
	for {
		tr, ok := q.PopFront()
		if !ok {
			break
		}
		order = append(order, tr.Name)
	}

	want := []string{"/a.mp3", "/b.mp3", "/c.mp3"}
	if len(order) != len(want) {
		t.Fatalf("popped %d tracks, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("pop %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue()
	q.PushBack(Track{Name: "/a.mp3"})
	q.PushBack(Track{Name: "/b.mp3"})

	q.Clear()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}

	// Queue stays usable after clear
	q.PushBack(Track{Name: "/c.mp3"})
	front, ok := q.Front()
	if !ok || front.Name != "/c.mp3" {
		t.Errorf("Front() = %v, want /c.mp3", front)
	}
}

func TestQueue_Tracks_ReturnsCopy(t *testing.T) {
	q := NewQueue()
	q.PushBack(Track{Name: "/a.mp3"})

	tracks := q.Tracks()
	tracks[0].Name = "/modified.mp3"

	front, _ := q.Front()
	if front.Name != "/a.mp3" {
		t.Error("Tracks() should return a copy")
	}
}

func TestNewTrack(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     int
	}{
		{"unknown duration", 0, 0},
		{"whole seconds", 3 * time.Second, 3},
		{"truncates fraction", 3*time.Second + 900*time.Millisecond, 3},
		{"negative clamps to zero", -time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTrack("/x.mp3", tt.duration)
			if got.Duration != tt.want {
				t.Errorf("NewTrack(%v).Duration = %d, want %d", tt.duration, got.Duration, tt.want)
			}
			if got.Name != "/x.mp3" {
				t.Errorf("Name = %q, want /x.mp3", got.Name)
			}
		})
	}
}
