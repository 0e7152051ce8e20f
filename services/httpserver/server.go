// Package httpserver is the hand-rolled socket server described in
// spec §5: one accept-loop goroutine hands every accepted connection
// to a bounded worker pool; each connection is parsed, dispatched, and
// answered entirely on the worker goroutine it was handed to.
package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	"github.com/AleutianAI/aleutian-infer-core/pkg/apierr"
	"github.com/AleutianAI/aleutian-infer-core/pkg/rcio"
	"github.com/AleutianAI/aleutian-infer-core/pkg/wpool"
	"github.com/AleutianAI/aleutian-infer-core/services/httpcodec"
	"github.com/AleutianAI/aleutian-infer-core/services/observability"
	"github.com/AleutianAI/aleutian-infer-core/services/router"
)

// Config holds the per-server tunables surfaced on the CLI (spec §6).
type Config struct {
	Port               int
	ReadTimeoutMillis  int
	WriteTimeoutMillis int
	Workers            int

	// Metrics is optional; when set, every served connection records
	// its route, status, and latency through it.
	Metrics *observability.Metrics
}

type state int32

const (
	stateCreated state = iota
	stateStarting
	stateRunning
	stateStopping
	stateStopped
)

// Server runs the accept loop and owns the worker pool that services
// accepted connections. Its lifecycle is CREATED -> STARTING ->
// RUNNING -> STOPPING -> STOPPED; Stop is idempotent and safe to call
// from a signal handler goroutine.
type Server struct {
	cfg    Config
	router *router.Router
	log    *slog.Logger

	pool     *wpool.Pool
	listener net.Listener

	state   atomic.Int32
	port    atomic.Int32
	done    chan struct{}
	stopped chan struct{}
}

// New constructs a Server bound to rt. The listener is not opened
// until Start.
func New(cfg Config, rt *router.Router, log *slog.Logger) *Server {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	s := &Server{
		cfg:     cfg,
		router:  rt,
		log:     log,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	s.state.Store(int32(stateCreated))
	return s
}

// Start binds the listen socket and launches the accept loop in a
// background goroutine. It blocks until the socket is bound (so
// callers can immediately learn the effective port via Port), then
// returns.
func (s *Server) Start() error {
	if !s.state.CompareAndSwap(int32(stateCreated), int32(stateStarting)) {
		return apierr.Internal("server already started")
	}
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		s.state.Store(int32(stateStopped))
		return apierr.Wrap(500, err)
	}
	s.listener = ln
	s.port.Store(int32(ln.Addr().(*net.TCPAddr).Port))
	s.pool = wpool.New(s.cfg.Workers, s.log)
	s.state.Store(int32(stateRunning))

	go s.acceptLoop()
	return nil
}

// Port returns the bound listen port, useful when Config.Port is 0
// (ephemeral) in tests.
func (s *Server) Port() int { return int(s.port.Load()) }

func (s *Server) acceptLoop() {
	defer close(s.done)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if state(s.state.Load()) != stateRunning {
				return
			}
			s.log.Warn("accept failed", "error", err)
			continue
		}
		c := conn
		s.pool.Offer(func() { s.serveConn(c) })
	}
}

func (s *Server) serveConn(conn net.Conn) {
	stream := rcio.NewStream("conn:"+conn.RemoteAddr().String(), conn, s.log)
	defer stream.Close()

	if s.cfg.ReadTimeoutMillis > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(time.Duration(s.cfg.ReadTimeoutMillis) * time.Millisecond))
	}
	if s.cfg.WriteTimeoutMillis > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(time.Duration(s.cfg.WriteTimeoutMillis) * time.Millisecond))
	}

	rw := httpcodec.NewResponseWriter(stream.Writer)
	defer rw.Close()

	start := time.Now()
	route := "unparsed"

	req, err := httpcodec.ParseRequest(stream.Reader, conn.RemoteAddr().String())
	if err != nil {
		s.respondError(rw, err)
		s.recordMetrics(route, rw.Status(), start)
		return
	}
	route = req.Path

	if err := s.router.Dispatch(req, rw); err != nil {
		s.respondError(rw, err)
	}
	s.recordMetrics(route, rw.Status(), start)
}

// recordMetrics reports one completed request's route, status, and
// latency through s.cfg.Metrics, if configured.
func (s *Server) recordMetrics(route string, status int, start time.Time) {
	if s.cfg.Metrics == nil {
		return
	}
	if status == 0 {
		status = 500
	}
	s.cfg.Metrics.RecordRequest(route, status, time.Since(start).Seconds())
}

// respondError applies error-handling policy 1-3 from spec §7: if no
// status has been written yet, turn the failure into a response with
// the matching status; otherwise the response is already partially
// sent, so the failure is only logged.
func (s *Server) respondError(rw *httpcodec.ResponseWriter, err error) {
	if rw.HeaderWritten() {
		s.log.Warn("request failed after response started", "error", err)
		return
	}
	status := apierr.StatusOf(err)
	if werr := rw.WriteStatus(status); werr != nil {
		s.log.Warn("failed to write error status", "error", werr)
		return
	}
	if _, werr := rw.Write([]byte(err.Error())); werr != nil {
		s.log.Warn("failed to write error body", "error", werr)
	}
}

// Stop closes the listener (unblocking Accept), waits for the accept
// loop to exit, then closes the worker pool (draining in-flight
// connections, dropping queued ones). It is idempotent and safe to call
// concurrently with Start having just returned, e.g. from a signal
// handler.
func (s *Server) Stop() {
	old := state(s.state.Load())
	if old == stateStopping || old == stateStopped || old == stateCreated {
		return
	}
	if !s.state.CompareAndSwap(int32(stateRunning), int32(stateStopping)) {
		return
	}
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		s.log.Warn("closing listener", "error", err)
	}
	<-s.done
	if s.pool != nil {
		s.pool.Close()
	}
	s.state.Store(int32(stateStopped))
	close(s.stopped)
}

// Wait blocks until Stop has run to completion from some other
// goroutine: the accept loop has exited *and* the worker pool has
// drained every in-flight task, per spec §4.3 ("Wait joins the
// listener task and destroys the pool"). Waiting on the accept loop
// alone would return as soon as the listener closes, before in-flight
// connections finish — Wait must outlast that.
func (s *Server) Wait() {
	<-s.stopped
}
