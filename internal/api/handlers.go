package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/jgranda1999/agentic-sade/internal/api/presenter"
	"github.com/jgranda1999/agentic-sade/internal/buildinfo"
	"github.com/jgranda1999/agentic-sade/internal/core"
)

// handleHealth responds with a simple OK status to indicate the server is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleInfo responds with service information including version and commit hash.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
}

// handleDecide processes an entry request and returns the decision
// with its full visibility echo. Policy outcomes (denials included)
// are 200 responses; only engine failures produce an error status.
func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var req core.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("failed to decode entry request")
		presenter.Error(w, r, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.service.Decide(ctx, &req)
	if err != nil {
		logger.Error().Err(err).Msg("entry decision failed")
		presenter.Err(w, r, err, "entry decision failed")
		return
	}

	presenter.JSON(w, r, result, http.StatusOK)
}

// handleAdminAudit processes requests to retrieve audit log entries.
func (s *Server) handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	// filters
	q := r.URL.Query()
	limitStr := q.Get("limit")

	filterCorrelationID := q.Get("correlation_id")
	filterPilotID := q.Get("pilot_id")
	filterDroneID := q.Get("drone_id")
	filterDecision := q.Get("decision")

	limit := 50
	if limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 0 {
			logger.Warn().Err(err).Str("limit", limitStr).Msg("invalid limit parameter")
			presenter.Error(w, r, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = v
	}

	entries, err := s.auditor.Find(func(entry core.AuditEntry) bool {
		if filterCorrelationID != "" && entry.ID != filterCorrelationID {
			return false
		}
		if filterPilotID != "" && entry.PilotID != filterPilotID {
			return false
		}
		if filterDroneID != "" && entry.DroneID != filterDroneID {
			return false
		}
		if filterDecision != "" && string(entry.DecisionType) != filterDecision {
			return false
		}
		return true
	}, limit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve audit logs")
		presenter.Error(w, r, "failed to retrieve audit logs", http.StatusInternalServerError)
		return
	}

	presenter.JSON(w, r, entries, http.StatusOK)
}

// handleReplay recomputes a past decision from its audit entry.
func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	replayID := r.URL.Query().Get("replay_id")
	if replayID == "" {
		presenter.Error(w, r, "replay_id is required", http.StatusBadRequest)
		return
	}

	report, err := s.service.Replay(ctx, replayID)
	if err != nil {
		logger.Warn().Err(err).Msg("replay failed")
		presenter.Err(w, r, err, "replay failed")
		return
	}

	presenter.JSON(w, r, report, http.StatusOK)
}
