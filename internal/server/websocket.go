package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/zeusync/narrowphase/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// handleWebSocket answers every text frame holding a CheckRequest with one
// CheckResponse frame, in order, until the client goes away.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", log.Error(err))
		return
	}
	defer conn.Close()

	s.workerGroup.Add(1)
	defer s.workerGroup.Done()

	logger := s.logger.With(log.String("remote", conn.RemoteAddr().String()))
	logger.Debug("WebSocket client connected")
	conn.SetReadLimit(maxRequestBytes)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-s.stopChan:
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("WebSocket read failed", log.Error(err))
			}
			return
		}

		var resp CheckResponse
		var req CheckRequest
		if err := json.Unmarshal(data, &req); err != nil {
			resp = errorResponse("", errors.Wrap(ErrInvalidMessage, err.Error()))
		} else {
			resp = s.check(req)
		}

		if err := conn.WriteJSON(resp); err != nil {
			logger.Warn("WebSocket write failed", log.Error(err))
			return
		}
	}
}
