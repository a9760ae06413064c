package ipc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// ErrDaemonUnreachable wraps connection failures to the daemon socket.
var ErrDaemonUnreachable = errors.New("daemon unreachable")

// Client sends one request per connection to the daemon.
type Client struct {
	SocketPath  string
	DialTimeout time.Duration
}

// NewClient creates a client for the socket at path.
func NewClient(path string, dialTimeout time.Duration) *Client {
	return &Client{SocketPath: path, DialTimeout: dialTimeout}
}

// Send performs one request/response exchange. A request with an unknown
// action is answered locally without contacting the daemon.
func (c *Client) Send(ctx context.Context, req Request) (Response, error) {
	if _, ok := ParseAction(req.Action); !ok {
		return Failure(fmt.Sprintf("Invalid action: %s", req.Action)), nil
	}

	d := net.Dialer{Timeout: c.DialTimeout}
	conn, err := d.DialContext(ctx, "unix", c.SocketPath)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrDaemonUnreachable, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if err := WriteRequest(conn, req); err != nil {
		return Response{}, fmt.Errorf("send request: %w", err)
	}
	// Signal end of request; the daemon answers either way.
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		_ = cw.CloseWrite()
	}

	data, err := io.ReadAll(conn)
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}
	resp, err := DecodeResponse(data)
	if err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}

// Shutdown asks the daemon to stop by connecting and closing without
// sending a request.
func (c *Client) Shutdown(ctx context.Context) error {
	d := net.Dialer{Timeout: c.DialTimeout}
	conn, err := d.DialContext(ctx, "unix", c.SocketPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDaemonUnreachable, err)
	}
	return conn.Close()
}
