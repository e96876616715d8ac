// Package server exposes the narrow phase to remote tools over HTTP,
// WebSocket and QUIC.
package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/quic-go/quic-go"

	"github.com/zeusync/narrowphase/internal/config"
	"github.com/zeusync/narrowphase/internal/core/observability/log"
	"github.com/zeusync/narrowphase/internal/core/systems/narrowphase"
)

// Server is the probe service. One Server may be started once.
type Server struct {
	config   config.ServerConfig
	detector *narrowphase.Detector
	logger   log.Log

	httpServer   *http.Server
	httpListener net.Listener
	quicListener *quic.Listener

	running  atomic.Bool
	requests atomic.Uint64

	workerGroup sync.WaitGroup
	stopChan    chan struct{}
}

func New(cfg config.ServerConfig, detector *narrowphase.Detector, logger log.Log) *Server {
	if logger == nil {
		logger = log.Provide()
	}
	if detector == nil {
		detector = narrowphase.NewDetector(narrowphase.DefaultConfig(), logger)
	}
	s := &Server{
		config:   cfg,
		detector: detector,
		logger:   logger.With(log.String("component", "server")),
		stopChan: make(chan struct{}),
	}
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Start binds the listeners and serves in the background. It returns once
// every listener is bound.
func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.config.HTTPAddr)
	if err != nil {
		s.running.Store(false)
		return errors.Wrapf(ErrListenerFailed, "http %s: %v", s.config.HTTPAddr, err)
	}
	s.httpListener = ln

	if s.config.EnableQUIC {
		if err := s.startQUIC(); err != nil {
			_ = ln.Close()
			s.running.Store(false)
			return err
		}
	}

	s.workerGroup.Add(1)
	go func() {
		defer s.workerGroup.Done()
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server stopped", log.Error(err))
		}
	}()

	s.logger.Info("Probe server started",
		log.String("http_addr", s.Addr()),
		log.Bool("quic", s.quicListener != nil))
	return nil
}

// Stop shuts down the listeners and waits for in-flight work or ctx.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return ErrServerNotRunning
	}
	close(s.stopChan)

	err := s.httpServer.Shutdown(ctx)
	if s.quicListener != nil {
		if cerr := s.quicListener.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	done := make(chan struct{})
	go func() {
		s.workerGroup.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}

	s.logger.Info("Probe server stopped", log.Uint64("requests", s.requests.Load()))
	return err
}

// Addr is the bound HTTP address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.httpListener != nil {
		return s.httpListener.Addr().String()
	}
	return s.config.HTTPAddr
}

// QUICAddr is the bound QUIC address, or empty when QUIC is off.
func (s *Server) QUICAddr() string {
	if s.quicListener != nil {
		return s.quicListener.Addr().String()
	}
	return ""
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /check", s.handleCheck)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// check runs one request through the detector. Failures are reported in
// the response rather than as an error.
func (s *Server) check(req CheckRequest) CheckResponse {
	s.requests.Add(1)
	start := time.Now()

	a, err := req.A.Shape()
	if err != nil {
		return errorResponse(req.ID, errors.Wrap(err, "shape a"))
	}
	b, err := req.B.Shape()
	if err != nil {
		return errorResponse(req.ID, errors.Wrap(err, "shape b"))
	}

	info, cached, err := s.detector.CheckShapes(a, b)
	if err != nil {
		return errorResponse(req.ID, err)
	}

	s.logger.Debug("Probe check",
		log.String("id", req.ID),
		log.Bool("collision", info.HasCollision),
		log.Bool("cached", cached),
		log.Duration("took", time.Since(start)))
	return newResponse(req.ID, info)
}
