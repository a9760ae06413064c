package ipc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Handler answers one request.
type Handler interface {
	Handle(ctx context.Context, req Request) Response
}

// Listen binds a unix socket at path, removing a stale socket file first.
// The socket is only accessible to the current user.
func Listen(path string) (net.Listener, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}

	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		l.Close()
		return nil, fmt.Errorf("set socket permissions: %w", err)
	}
	return l, nil
}

// Backoff bounds between failed Accept calls.
const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// ServerConfig tunes per-connection limits.
type ServerConfig struct {
	MaxRequestBytes int
	ReadTimeout     time.Duration // 0 disables the deadline
}

// Server serves one connection at a time: read a request, answer it,
// close. Requests are never handled concurrently.
type Server struct {
	listener net.Listener
	handler  Handler
	cfg      ServerConfig
	log      logrus.FieldLogger
}

// NewServer creates a server on l.
func NewServer(l net.Listener, h Handler, cfg ServerConfig, log logrus.FieldLogger) *Server {
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = DefaultMaxRequestBytes
	}
	return &Server{
		listener: l,
		handler:  h,
		cfg:      cfg,
		log:      log,
	}
}

// Serve accepts connections until ctx is done, the listener is closed, or
// a client connects and sends nothing. Failed accepts are logged and
// retried with backoff. The listener is closed on return.
func (s *Server) Serve(ctx context.Context) error {
	defer s.listener.Close()

	stop := context.AfterFunc(ctx, func() { s.listener.Close() })
	defer stop()

	s.log.WithField("addr", s.listener.Addr().String()).Info("Listening for commands")

	var delay time.Duration
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			// Transient failures (EMFILE, ECONNABORTED, timeouts) must not
			// take the daemon down.
			if delay == 0 {
				delay = minAcceptDelay
			} else {
				delay = min(2*delay, maxAcceptDelay)
			}
			s.log.WithError(err).WithField("retry_in", delay).Warn("Accept failed")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
			continue
		}
		delay = 0

		if shutdown := s.serveConn(ctx, conn); shutdown {
			s.log.Info("Empty request received, shutting down")
			return nil
		}
	}
}

// serveConn handles a single connection. Returns true when the peer sent
// nothing, which asks the daemon to stop.
func (s *Server) serveConn(ctx context.Context, conn net.Conn) bool {
	defer conn.Close()

	log := s.log.WithField("request_id", uuid.NewString())
	if s.cfg.ReadTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}

	req, err := ReadRequest(conn, s.cfg.MaxRequestBytes)
	var resp Response
	switch {
	case errors.Is(err, ErrEmptyRequest):
		return true
	case isTimeout(err):
		log.WithError(err).Warn("Client sent no complete request in time")
		return false
	case err != nil:
		log.WithError(err).Warn("Rejected malformed request")
		resp = Failure(fmt.Sprintf("Invalid JSON: %v", err))
	default:
		start := time.Now()
		resp = s.handler.Handle(ctx, req)
		log.WithFields(logrus.Fields{
			"action":  req.Action,
			"status":  resp.Status,
			"message": resp.Message,
			"took":    time.Since(start).Round(time.Millisecond),
		}).Info("Handled request")
	}

	if s.cfg.ReadTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}
	if err := WriteResponse(conn, resp); err != nil {
		log.WithError(err).Error("Failed to send response")
	}
	return false
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
