package playlist

// Queue is the ordered list of tracks loaded in the sink.
// The front track is the one currently playing (or most recently started).
//
// Queue does no bookkeeping against the sink itself: callers must mutate
// the sink in the same step as the queue so both keep the same length.
type Queue struct {
	tracks []Track
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return &Queue{
		tracks: make([]Track, 0),
	}
}

// PushBack appends a track to the tail of the queue.
func (q *Queue) PushBack(t Track) {
	q.tracks = append(q.tracks, t)
}

// PopFront removes and returns the front track.
// Returns false if the queue is empty.
func (q *Queue) PopFront() (Track, bool) {
	if len(q.tracks) == 0 {
		return Track{}, false
	}
	t := q.tracks[0]
	q.tracks[0] = Track{}
	q.tracks = q.tracks[1:]
	return t, true
}

// Front returns the front track without removing it.
func (q *Queue) Front() (Track, bool) {
	if len(q.tracks) == 0 {
		return Track{}, false
	}
	return q.tracks[0], true
}

// Len returns the number of tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// Clear removes all tracks.
func (q *Queue) Clear() {
	q.tracks = q.tracks[:0]
}

// Tracks returns a copy of all tracks, front first.
func (q *Queue) Tracks() []Track {
	result := make([]Track, len(q.tracks))
	copy(result, q.tracks)
	return result
}
