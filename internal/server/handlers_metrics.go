package server

import (
	"net/http"

	"github.com/golift/backend/internal/storage"
)

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	records, err := s.db.PersonalRecords(r.Context(), userID)
	if err != nil {
		s.storageError(w, "personal records", err)
		return
	}
	if records == nil {
		records = []storage.PersonalRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	streaks, err := s.db.GetStreaks(r.Context(), userID)
	if err != nil {
		s.storageError(w, "streak", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sucesso":   true,
		"streak":    streaks.Current,
		"maxStreak": streaks.Max,
	})
}
