// Package ipc carries requests and responses between the sound CLI and
// the daemon over a unix socket, one request per connection.
package ipc

import (
	"github.com/samber/lo"
)

// Action is a command understood by the daemon.
type Action int

const (
	ActionInvalid Action = iota
	ActionPlay
	ActionPause
	ActionResume
	ActionClear
	ActionQueue
	ActionSkip
	ActionCurrent
)

var actionNames = map[Action]string{
	ActionPlay:    "play",
	ActionPause:   "pause",
	ActionResume:  "resume",
	ActionClear:   "clear",
	ActionQueue:   "queue",
	ActionSkip:    "skip",
	ActionCurrent: "current",
}

var actionsByName = lo.Invert(actionNames)

// ParseAction maps a wire string to an Action. Unknown strings map to
// ActionInvalid and false.
func ParseAction(s string) (Action, bool) {
	a, ok := actionsByName[s]
	if !ok {
		return ActionInvalid, false
	}
	return a, true
}

// String returns the wire name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "invalid"
}

// NeedsTrack reports whether the action requires a track path.
func (a Action) NeedsTrack() bool {
	return a == ActionPlay || a == ActionQueue
}

// Actions returns every valid action in wire order.
func Actions() []Action {
	return []Action{
		ActionPlay, ActionPause, ActionResume, ActionClear,
		ActionQueue, ActionSkip, ActionCurrent,
	}
}

// ActionNames returns the wire names of every valid action.
func ActionNames() []string {
	return lo.Map(Actions(), func(a Action, _ int) string { return a.String() })
}

// Request is one command sent by a client.
type Request struct {
	Action string  `json:"action"`
	Track  *string `json:"track"`
}

// NewRequest builds a request. An empty track is sent as null.
func NewRequest(action Action, track string) Request {
	req := Request{Action: action.String()}
	if track != "" {
		req.Track = &track
	}
	return req
}

// Response is the daemon's reply to a Request.
type Response struct {
	Status      bool    `json:"status"`
	Message     string  `json:"message"`
	Track       *string `json:"track,omitempty"`
	QueueLength *int    `json:"queue_length,omitempty"`
}

// Success builds a successful response.
func Success(msg string) Response {
	return Response{Status: true, Message: msg}
}

// Failure builds a failed response.
func Failure(msg string) Response {
	return Response{Status: false, Message: msg}
}

// WithCurrent attaches the current track and queue length.
func (r Response) WithCurrent(track string, queueLength int) Response {
	r.Track = &track
	r.QueueLength = &queueLength
	return r
}
