package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// handleConfig returns the sanitized configuration. The snapshot is
// read-only: it cannot change after startup, so there is no PUT.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := s.config
	sanitized := struct {
		Provider     string  `json:"provider"`
		Model        string  `json:"model"`
		Tone         string  `json:"tone"`
		Alternatives int     `json:"alternatives"`
		Temperature  float64 `json:"temperature"`
		MaxChars     int     `json:"maxChars"`
		AutoPaste    bool    `json:"autoPaste"`
		HasAPIKey    bool    `json:"hasApiKey"`
	}{
		Provider:     cfg.Provider.Name,
		Model:        cfg.Provider.Model,
		Tone:         cfg.Polish.Tone,
		Alternatives: cfg.Polish.Alternatives,
		Temperature:  cfg.Polish.Temperature,
		MaxChars:     cfg.Polish.MaxChars,
		AutoPaste:    cfg.Polish.AutoPaste,
		HasAPIKey:    cfg.Provider.OpenAIAPIKey != "",
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sanitized)
}

// handleStats returns statistics for the specified time range
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.db == nil {
		http.Error(w, "Metrics storage unavailable", http.StatusServiceUnavailable)
		return
	}

	daysStr := r.URL.Query().Get("days")
	days := 7 // default to 7 days
	if daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 {
			days = d
		}
	}

	overall, err := s.db.GetOverallStats(days)
	if err != nil {
		slog.Error("Failed to get overall stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	daily, err := s.db.GetDailyStats(days)
	if err != nil {
		slog.Error("Failed to get daily stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	provider, err := s.db.GetProviderStats(days)
	if err != nil {
		slog.Error("Failed to get provider stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	response := map[string]any{
		"overall":  overall,
		"daily":    daily,
		"provider": provider,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleStatus returns the current agent status and session position
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()

	response := struct {
		Status   string `json:"status"`
		Position int    `json:"position"`
		Total    int    `json:"total"`
	}{
		Status:   state.Status,
		Position: state.Position,
		Total:    state.Total,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
