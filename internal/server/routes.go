package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lazypower/tastequest/internal/energy"
	"github.com/lazypower/tastequest/internal/engine"
	"github.com/lazypower/tastequest/internal/store"
	"github.com/lazypower/tastequest/internal/taste"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
	defaultTopLimit     = 5
)

func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"cards": s.eng.Deck(r.Context()),
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.eng.Map(r.Context()))
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string             `json:"itemId"`
		Type   taste.DecisionKind `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "itemId required")
		return
	}

	out, err := s.eng.Decide(r.Context(), req.ItemID, req.Type)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	h := s.eng.History()
	if h == nil {
		writeError(w, http.StatusNotFound, "decision history disabled")
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	recs, err := h.RecentDecisions(r.Context(), limit)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if recs == nil {
		recs = []store.DecisionRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"decisions": recs})
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	res, err := s.eng.Unlock(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	stats, err := s.eng.Favorite(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopLimit
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "top must be a non-negative integer")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, s.eng.Summarize(r.Context(), limit))
}

func (s *Server) handleResetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.eng.ResetProfile(r.Context())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type statsResponse struct {
	Stats        energy.SessionStats  `json:"stats"`
	State        string               `json:"state"`
	Achievements []energy.Achievement `json:"achievements"`
	Unlocked     []string             `json:"unlocked"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.eng.Stats(r.Context())
	writeJSON(w, http.StatusOK, statsResponse{
		Stats:        stats,
		State:        stats.State().String(),
		Achievements: energy.Achievements(stats),
		Unlocked:     s.eng.Unlocked(r.Context()),
	})
}

func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.eng.ResetStats(r.Context())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrUnknownItem):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrInvalidDecision):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrLocked):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
