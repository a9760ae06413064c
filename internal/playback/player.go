package playback

import (
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/sound/internal/player"
	"github.com/llehouerou/sound/internal/playlist"
)

// Failure messages.
const (
	MsgAlreadyPlaying  = "Already playing"
	MsgNothingToPause  = "Nothing is being played to pause"
	MsgNothingToResume = "Nothing to resume"
	MsgNothingToSkip   = "Nothing to skip"
	MsgQueueEmpty      = "Queue is empty"
	MsgNothingPlaying  = "Nothing is being played"
)

// Player owns the audio sink and the track queue and applies every
// playback command to both in the same step.
//
// Player is not safe for concurrent use: the daemon serves one request at
// a time and is its only caller.
type Player struct {
	sink  player.Sink
	queue *playlist.Queue
	log   logrus.FieldLogger
}

// New creates a Player over sink and queue.
func New(sink player.Sink, queue *playlist.Queue, log logrus.FieldLogger) *Player {
	return &Player{
		sink:  sink,
		queue: queue,
		log:   log,
	}
}

// State returns the current state label.
func (p *Player) State() State {
	return stateOf(p.sink)
}

// QueueLen returns the number of queued tracks.
func (p *Player) QueueLen() int {
	return p.queue.Len()
}

// Tracks returns the queued tracks, front first.
func (p *Player) Tracks() []playlist.Track {
	return p.queue.Tracks()
}

// Play replaces everything loaded with s and starts it.
// Rejected while audio is playing; allowed while paused.
func (p *Player) Play(s player.Stream, t playlist.Track) Result {
	p.reconcile()
	if !p.sink.Empty() && !p.sink.IsPaused() {
		return fail(MsgAlreadyPlaying)
	}

	p.sink.Clear()
	p.queue.Clear()
	p.sink.Append(s)
	p.sink.Play()
	p.queue.PushBack(t)

	return succeed("Now playing %s", t.Name)
}

// Queue appends s after whatever is loaded. It never checks playback
// status and always succeeds.
func (p *Player) Queue(s player.Stream, t playlist.Track) Result {
	p.reconcile()
	p.sink.Append(s)
	p.queue.PushBack(t)
	return succeed("%s was successfully added to the queue", t.Name)
}

// Clear empties the sink and the queue.
func (p *Player) Clear() Result {
	p.sink.Clear()
	p.queue.Clear()
	return succeed("Queue was successfully cleared")
}

// Pause pauses playback. Pausing twice succeeds with a distinct message.
func (p *Player) Pause() Result {
	p.reconcile()
	if p.sink.Len() == 0 {
		return fail(MsgNothingToPause)
	}
	if p.sink.IsPaused() {
		return succeed("Already paused")
	}
	p.sink.Pause()
	return succeed("Paused successfully")
}

// Resume resumes paused playback. Resuming while playing succeeds with a
// distinct message.
func (p *Player) Resume() Result {
	p.reconcile()
	if p.sink.Len() == 0 {
		return fail(MsgNothingToResume)
	}
	if !p.sink.IsPaused() {
		return succeed(MsgAlreadyPlaying)
	}
	p.sink.Play()
	return succeed("Resumed successfully")
}

// Skip drops the front track and moves the sink to the next one.
func (p *Player) Skip() Result {
	p.reconcile()
	if p.queue.IsEmpty() && p.sink.Len() == 0 {
		return fail(MsgNothingToSkip)
	}

	skipped, ok := p.queue.PopFront()
	if !ok {
		// The sink holds audio the queue does not know about.
		p.log.WithField("sink_len", p.sink.Len()).Warn("Sink and queue out of step")
		return fail(MsgQueueEmpty)
	}
	p.sink.SkipOne()
	return succeed("Skipped %s", skipped.Name)
}

// Current reports the front track and the queue length. It reads the
// queue only, so a paused track is still reported as current.
func (p *Player) Current() Result {
	p.reconcile()
	if p.queue.IsEmpty() && p.sink.Len() == 0 {
		return fail(MsgNothingPlaying)
	}

	front, ok := p.queue.Front()
	if !ok {
		p.log.WithField("sink_len", p.sink.Len()).Warn("Sink and queue out of step")
		return fail(MsgNothingPlaying)
	}
	res := succeed("Currently playing %s", front.Name)
	res.Current = &front
	res.QueueLength = p.queue.Len()
	return res
}

// reconcile drops queue entries for tracks the sink finished on its own.
// The sink only ever loses items from its front, so the extra queue
// entries are the oldest ones.
func (p *Player) reconcile() {
	for p.queue.Len() > p.sink.Len() {
		done, _ := p.queue.PopFront()
		p.log.WithField("track", done.Name).Info("Track finished")
	}
}
