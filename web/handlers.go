package web

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// queryInt reads a positive integer query parameter
func queryInt(r *http.Request, name string, def int, allowZero bool) int {
	str := r.URL.Query().Get(name)
	if str == "" {
		return def
	}
	v, err := strconv.Atoi(str)
	if err != nil || v < 0 || (v == 0 && !allowZero) {
		return def
	}
	return v
}

// handleMenu returns the installed menu tree and its accelerators
func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.agent.Menu())
}

// handleEvents returns the event journal, newest first
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		http.Error(w, "Storage is disabled", http.StatusServiceUnavailable)
		return
	}

	limit := queryInt(r, "limit", 50, false)
	offset := queryInt(r, "offset", 0, true)
	kind := r.URL.Query().Get("kind")

	events, err := s.db.GetEvents(kind, limit, offset)
	if err != nil {
		s.logger.Error("Failed to get events", "error", err)
		http.Error(w, "Failed to get events", http.StatusInternalServerError)
		return
	}

	total, err := s.db.GetEventCount(kind)
	if err != nil {
		s.logger.Error("Failed to get event count", "error", err)
		http.Error(w, "Failed to get events", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"events": events,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// handleStats returns statistics for the specified time range
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		http.Error(w, "Storage is disabled", http.StatusServiceUnavailable)
		return
	}

	days := queryInt(r, "days", 7, false)

	overall, err := s.db.GetOverallStats(days)
	if err != nil {
		s.logger.Error("Failed to get overall stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	daily, err := s.db.GetDailyStats(days)
	if err != nil {
		s.logger.Error("Failed to get daily stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	items, err := s.db.GetActivationStats(days)
	if err != nil {
		s.logger.Error("Failed to get activation stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	sources, err := s.db.GetSourceStats(days)
	if err != nil {
		s.logger.Error("Failed to get source stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"overall": overall,
		"daily":   daily,
		"items":   items,
		"sources": sources,
	})
}

// handleStatus returns the current agent status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.agent.Status())
}

// handleReload rebuilds the menu and accelerators from the config file
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.agent.Reload(); err != nil {
		s.logger.Error("Reload failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
		return
	}

	snap := s.agent.Menu()
	s.BroadcastMenu(snap)
	writeJSON(w, map[string]string{"status": "success"})
}
