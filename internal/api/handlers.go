package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"becat/internal/catalog"
	"becat/internal/history"
	"becat/internal/version"
)

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"status":  "ok",
		"version": version.Version,
	}, http.StatusOK)
}

// handleStatus handles GET /status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shell := map[string]interface{}{
		"binary":         s.cfg.Shell.Binary,
		"fallbackBinary": s.cfg.Shell.FallbackBinary,
		"modulePath":     s.cfg.Shell.ModulePath,
		"timeoutSeconds": s.cfg.Shell.TimeoutSeconds,
	}
	if s.resolver != nil {
		if resolved, err := s.resolver.ResolveBinary(); err == nil {
			shell["resolved"] = resolved
		} else {
			shell["resolveError"] = err.Error()
		}
	}

	journal := map[string]interface{}{
		"enabled": s.store != nil,
	}
	if s.store != nil {
		journal["path"] = s.store.Path()
	}

	WriteJSON(w, map[string]interface{}{
		"version":       version.Version,
		"uptimeSeconds": int64(time.Since(s.started).Seconds()),
		"shell":         shell,
		"journal":       journal,
		"auth": map[string]interface{}{
			"enabled": s.verifier != nil && s.verifier.Enabled(),
		},
		"search": map[string]interface{}{
			"lookbackYears": s.cfg.Search.LookbackYears,
		},
	}, http.StatusOK)
}

// handleSearch handles GET /search
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := ParseSearchRequest(r)
	if !ok {
		BadRequest(w, "Missing required query parameter 'path'")
		return
	}

	start := time.Now()
	outcome, searchErr := s.searcher.Search(r.Context(), req)
	duration := time.Since(start)

	if outcome == nil {
		outcome = &catalog.Outcome{Entries: []catalog.Entry{}}
		if searchErr != nil {
			outcome.Error = searchErr.Error()
		}
	}

	s.journal(r, req, outcome, duration)

	response := map[string]interface{}{
		"success":     outcome.Success,
		"count":       outcome.Count(),
		"results":     outcome.Entries,
		"diagnostics": outcome.Diagnostics,
	}
	if outcome.Error != "" {
		response["error"] = outcome.Error
	}

	status := http.StatusOK
	if searchErr != nil {
		status = http.StatusInternalServerError
	}
	WriteJSON(w, response, status)
}

// journal records a finished search, best effort
func (s *Server) journal(r *http.Request, req catalog.SearchRequest, outcome *catalog.Outcome, duration time.Duration) {
	if s.store == nil {
		return
	}

	rec := history.Record{
		Timestamp:  time.Now(),
		Path:       req.Path,
		Agent:      req.AgentName,
		Recurse:    req.Recurse,
		Success:    outcome.Success,
		MatchCount: outcome.Count(),
		DurationMs: duration.Milliseconds(),
		Error:      outcome.Error,
	}

	if _, err := s.store.Append(r.Context(), rec, outcome.Raw); err != nil {
		s.logger.Warn("Failed to journal search", map[string]interface{}{
			"path":  req.Path,
			"error": err.Error(),
		})
	}
}

// handleHistoryList handles GET /history
func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.store == nil {
		WriteJSON(w, map[string]string{"error": "Search journal is disabled"}, http.StatusServiceUnavailable)
		return
	}

	limit := QueryParamInt(r, "limit", 20)
	records, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		InternalError(w, "Failed to read journal", err)
		return
	}
	if records == nil {
		records = []history.Record{}
	}

	WriteJSON(w, map[string]interface{}{
		"count":    len(records),
		"searches": records,
	}, http.StatusOK)
}

// handleHistoryRoutes handles GET /history/:id and GET /history/:id/raw
func (s *Server) handleHistoryRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.store == nil {
		WriteJSON(w, map[string]string{"error": "Search journal is disabled"}, http.StatusServiceUnavailable)
		return
	}

	rest := GetPathParam(r, "/history/")
	idPart, wantRaw := rest, false
	if strings.HasSuffix(rest, "/raw") {
		idPart = strings.TrimSuffix(rest, "/raw")
		wantRaw = true
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		BadRequest(w, "Invalid journal record id")
		return
	}

	if wantRaw {
		raw, err := s.store.RawOutput(r.Context(), id)
		if err != nil {
			NotFound(w, "No journal record with that id")
			return
		}
		WriteJSON(w, map[string]interface{}{"id": id, "raw": raw}, http.StatusOK)
		return
	}

	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		InternalError(w, "Failed to read journal", err)
		return
	}
	if rec == nil {
		NotFound(w, "No journal record with that id")
		return
	}
	WriteJSON(w, rec, http.StatusOK)
}
