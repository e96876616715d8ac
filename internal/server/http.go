package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/zeusync/narrowphase/internal/core/observability/log"
)

const maxRequestBytes = 1 << 20

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("", errors.Wrap(ErrInvalidMessage, err.Error())))
		return
	}

	resp := s.check(req)
	status := http.StatusOK
	if resp.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	if err := writeJSON(w, status, resp); err != nil {
		s.logger.Warn("Failed to write response", log.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	stats := s.detector.Stats()
	_ = writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"requests":   s.requests.Load(),
		"checks":     stats.Checks,
		"cache_hits": stats.CacheHits,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
