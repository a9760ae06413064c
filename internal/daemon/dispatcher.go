package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/sound/internal/errmsg"
	"github.com/llehouerou/sound/internal/ipc"
	"github.com/llehouerou/sound/internal/playback"
	"github.com/llehouerou/sound/internal/player"
	"github.com/llehouerou/sound/internal/playlist"
)

// MsgNoTrack is the failure for play/queue requests without a track.
const MsgNoTrack = "No track specified"

// Announcer is told about tracks that start because of a request.
type Announcer interface {
	NowPlaying(t playlist.Track)
}

// Dispatcher turns requests into Player operations, decoding the
// requested file first when the action needs one.
type Dispatcher struct {
	player   *playback.Player
	decoder  player.Decoder
	announce Announcer // optional
	log      logrus.FieldLogger
}

// NewDispatcher creates a dispatcher over p.
func NewDispatcher(p *playback.Player, dec player.Decoder, log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		player:  p,
		decoder: dec,
		log:     log,
	}
}

// SetAnnouncer enables now-playing announcements.
func (d *Dispatcher) SetAnnouncer(a Announcer) {
	d.announce = a
}

// Handle implements ipc.Handler.
func (d *Dispatcher) Handle(_ context.Context, req ipc.Request) ipc.Response {
	action, ok := ipc.ParseAction(req.Action)
	if !ok {
		return ipc.Failure(fmt.Sprintf("Invalid action: %s", req.Action))
	}

	var res playback.Result
	if action.NeedsTrack() {
		if req.Track == nil {
			return ipc.Failure(MsgNoTrack)
		}
		stream, track, err := d.load(*req.Track)
		if err != nil {
			d.log.WithError(err).WithField("path", *req.Track).Warn("Could not load track")
			return ipc.Failure(err.Error())
		}
		res = d.enqueue(action, stream, track)
	} else {
		res = d.control(action)
	}

	d.log.WithFields(logrus.Fields{
		"action":      action.String(),
		"ok":          res.OK,
		"state":       d.player.State().String(),
		"queue_depth": d.player.QueueLen(),
		"queue":       lo.Map(d.player.Tracks(), func(t playlist.Track, _ int) string { return t.Name }),
	}).Debug("Dispatched")

	return toResponse(res)
}

// enqueue hands a decoded stream to play or queue.
func (d *Dispatcher) enqueue(action ipc.Action, stream player.Stream, track playlist.Track) playback.Result {
	var res playback.Result
	if action == ipc.ActionPlay {
		res = d.player.Play(stream, track)
		if res.OK {
			d.nowPlaying(track)
		}
	} else {
		res = d.player.Queue(stream, track)
	}
	if !res.OK {
		// Rejected streams were never handed to the sink.
		stream.Close()
	}
	return res
}

// control runs the actions that carry no track.
func (d *Dispatcher) control(action ipc.Action) playback.Result {
	switch action {
	case ipc.ActionPause:
		return d.player.Pause()
	case ipc.ActionResume:
		return d.player.Resume()
	case ipc.ActionClear:
		return d.player.Clear()
	case ipc.ActionSkip:
		res := d.player.Skip()
		if res.OK {
			if cur := d.player.Current(); cur.OK {
				d.nowPlaying(*cur.Current)
			}
		}
		return res
	case ipc.ActionCurrent:
		return d.player.Current()
	default:
		return playback.Result{Message: fmt.Sprintf("Invalid action: %s", action)}
	}
}

func (d *Dispatcher) nowPlaying(t playlist.Track) {
	if d.announce != nil {
		d.announce.NowPlaying(t)
	}
}

// load opens and decodes path. Errors are *OpError.
func (d *Dispatcher) load(path string) (player.Stream, playlist.Track, error) {
	rc, err := d.decoder.Open(path)
	if err != nil {
		return nil, playlist.Track{}, &OpError{Op: errmsg.OpFileOpen, Err: err}
	}
	stream, err := d.decoder.Decode(path, rc)
	if err != nil {
		return nil, playlist.Track{}, &OpError{Op: errmsg.OpAudioDecode, Err: err}
	}

	var dur time.Duration
	if total, ok := stream.TotalDuration(); ok {
		dur = total
	}
	track := playlist.NewTrack(path, dur)
	tags := stream.Tags()
	track.Title, track.Artist, track.Album = tags.Title, tags.Artist, tags.Album

	d.log.WithFields(logrus.Fields{
		"path":     path,
		"title":    tags.Title,
		"artist":   tags.Artist,
		"album":    tags.Album,
		"duration": track.Duration,
	}).Info("Loaded track")

	return stream, track, nil
}

// OpError records a failed daemon operation. Its message is the one
// shown to the user.
type OpError struct {
	Op      errmsg.Op
	Context string // optional, e.g. the socket path
	Err     error
}

func (e *OpError) Error() string { return errmsg.FormatWith(e.Op, e.Context, e.Err) }

func (e *OpError) Unwrap() error { return e.Err }

func toResponse(res playback.Result) ipc.Response {
	var resp ipc.Response
	if res.OK {
		resp = ipc.Success(res.Message)
	} else {
		resp = ipc.Failure(res.Message)
	}
	if res.Current != nil {
		resp = resp.WithCurrent(res.Current.Name, res.QueueLength)
	}
	return resp
}
