package ipc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxRequestBytes bounds a request payload.
const DefaultMaxRequestBytes = 1024

var (
	// ErrEmptyRequest means the peer closed without sending a single byte.
	ErrEmptyRequest = errors.New("empty request")
	// ErrRequestTooLarge means the payload exceeded the size limit.
	ErrRequestTooLarge = errors.New("request too large")
)

// wireRequest mirrors Request with every field optional so missing fields
// can be told apart from empty ones.
type wireRequest struct {
	Action *string `json:"action"`
	Track  *string `json:"track"`
}

// ReadRequest decodes exactly one request of at most limit bytes from r.
// It does not wait for the peer to close its side: decoding stops at the
// end of the JSON value. Unknown fields, a missing action and trailing
// data are rejected.
func ReadRequest(r io.Reader, limit int) (Request, error) {
	if limit <= 0 {
		limit = DefaultMaxRequestBytes
	}
	lr := &io.LimitedReader{R: r, N: int64(limit) + 1}

	dec := json.NewDecoder(lr)
	dec.DisallowUnknownFields()

	var w wireRequest
	if err := dec.Decode(&w); err != nil {
		switch {
		case lr.N <= 0:
			return Request{}, fmt.Errorf("%w (limit %d bytes)", ErrRequestTooLarge, limit)
		case errors.Is(err, io.EOF) && lr.N == int64(limit)+1:
			return Request{}, ErrEmptyRequest
		case errors.Is(err, io.EOF):
			// Only whitespace before the peer closed.
			return Request{}, errors.New("EOF while parsing a value")
		default:
			return Request{}, err
		}
	}
	if dec.InputOffset() > int64(limit) {
		return Request{}, fmt.Errorf("%w (limit %d bytes)", ErrRequestTooLarge, limit)
	}
	if rest, _ := io.ReadAll(dec.Buffered()); len(bytes.TrimSpace(rest)) > 0 {
		return Request{}, errors.New("unexpected data after request object")
	}
	if w.Action == nil {
		return Request{}, errors.New(`missing required field "action"`)
	}

	return Request{Action: *w.Action, Track: w.Track}, nil
}

// WriteRequest encodes req to w.
func WriteRequest(w io.Writer, req Request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteResponse encodes resp to w in full.
func WriteResponse(w io.Writer, resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// wireResponse mirrors Response with the required fields optional.
type wireResponse struct {
	Status      *bool   `json:"status"`
	Message     *string `json:"message"`
	Track       *string `json:"track"`
	QueueLength *int    `json:"queue_length"`
}

// DecodeResponse parses a response payload.
func DecodeResponse(data []byte) (Response, error) {
	var w wireResponse
	if err := json.Unmarshal(data, &w); err != nil {
		return Response{}, err
	}
	if w.Status == nil {
		return Response{}, errors.New(`missing required field "status"`)
	}
	if w.Message == nil {
		return Response{}, errors.New(`missing required field "message"`)
	}
	return Response{
		Status:      *w.Status,
		Message:     *w.Message,
		Track:       w.Track,
		QueueLength: w.QueueLength,
	}, nil
}
