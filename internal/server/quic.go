package server

import (
	"bufio"
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/quic-go/quic-go"

	"github.com/zeusync/narrowphase/internal/core/observability/log"
)

const (
	quicIdleTimeout = 30 * time.Second
	quicKeepAlive   = 15 * time.Second
	quicMaxStreams  = 100
)

func quicConfig() *quic.Config {
	return &quic.Config{
		MaxIdleTimeout:     quicIdleTimeout,
		KeepAlivePeriod:    quicKeepAlive,
		MaxIncomingStreams: quicMaxStreams,
	}
}

func (s *Server) startQUIC() error {
	tlsConf, err := GenerateSelfSignedTLS()
	if err != nil {
		return errors.Wrap(err, "generate tls")
	}
	ln, err := quic.ListenAddr(s.config.QUICAddr, tlsConf, quicConfig())
	if err != nil {
		return errors.Wrapf(ErrListenerFailed, "quic %s: %v", s.config.QUICAddr, err)
	}
	s.quicListener = ln

	s.workerGroup.Add(1)
	go s.acceptQUIC(ln)
	return nil
}

func (s *Server) acceptQUIC(ln *quic.Listener) {
	defer s.workerGroup.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-s.stopChan
		cancel()
	}()

	for {
		conn, err := ln.Accept(ctx)
		if err != nil {
			select {
			case <-s.stopChan:
			default:
				s.logger.Error("QUIC accept failed", log.Error(err))
			}
			return
		}
		s.workerGroup.Add(1)
		go s.serveQUICConn(ctx, conn)
	}
}

func (s *Server) serveQUICConn(ctx context.Context, conn *quic.Conn) {
	defer s.workerGroup.Done()
	defer func() { _ = conn.CloseWithError(0, "bye") }()

	logger := s.logger.With(log.String("remote", conn.RemoteAddr().String()))
	logger.Debug("QUIC client connected")

	for {
		stream, err := conn.AcceptStream(ctx)
		if err != nil {
			return
		}
		s.workerGroup.Add(1)
		go s.serveQUICStream(stream, logger)
	}
}

// serveQUICStream reads newline-delimited CheckRequests and writes one
// newline-terminated CheckResponse per line.
func (s *Server) serveQUICStream(stream *quic.Stream, logger log.Log) {
	defer s.workerGroup.Done()
	defer func() { _ = stream.Close() }()

	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	enc := json.NewEncoder(stream)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var resp CheckResponse
		var req CheckRequest
		if err := json.Unmarshal(line, &req); err != nil {
			resp = errorResponse("", errors.Wrap(ErrInvalidMessage, err.Error()))
		} else {
			resp = s.check(req)
		}
		if err := enc.Encode(resp); err != nil {
			logger.Warn("QUIC write failed", log.Error(err))
			return
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Debug("QUIC stream closed", log.Error(err))
	}
}
