package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/golift/backend/internal/models"
	"github.com/golift/backend/internal/storage"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	workoutID, err := pathID(r, "treinoId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "id de treino inválido"})
		return
	}

	session, err := s.db.StartSession(r.Context(), workoutID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Treino não encontrado."})
		return
	}
	if err != nil {
		s.storageError(w, "start session", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sucesso":   true,
		"id_sessao": session.ID,
	})
}

func (s *Server) handleRecordSet(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathID(r, "sessaoId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "id de sessão inválido"})
		return
	}

	var entry models.SetEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "JSON inválido: " + err.Error()})
		return
	}

	setID, err := s.db.RecordSet(r.Context(), sessionID, userIDFromContext(r), entry)
	switch {
	case errors.Is(err, models.ErrInvalidSet):
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": err.Error()})
		return
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Sessão não encontrada."})
		return
	case errors.Is(err, storage.ErrSessionClosed):
		writeJSON(w, http.StatusConflict, map[string]string{"erro": storage.ErrSessionClosed.Error()})
		return
	case err != nil:
		s.storageError(w, "record set", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sucesso":  true,
		"id_serie": setID,
	})
}

type finalizeRequest struct {
	DurationSec int `json:"duracao_segundos"`
}

func (s *Server) handleFinalizeSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathID(r, "sessaoId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "id de sessão inválido"})
		return
	}

	var req finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "JSON inválido: " + err.Error()})
		return
	}

	err = s.db.FinalizeSession(r.Context(), sessionID, userIDFromContext(r), req.DurationSec)
	var incomplete *storage.IncompleteWorkoutError
	switch {
	case errors.As(err, &incomplete):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"erro":                "Ainda tens exercícios por concluir.",
			"exerciciosFaltantes": incomplete.Missing,
			"elegivel":            false,
		})
		return
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Sessão não encontrada."})
		return
	case errors.Is(err, storage.ErrSessionClosed):
		writeJSON(w, http.StatusConflict, map[string]string{"erro": storage.ErrSessionClosed.Error()})
		return
	case err != nil:
		s.storageError(w, "finalize session", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sucesso":  true,
		"elegivel": true,
	})
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathID(r, "sessaoId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "id de sessão inválido"})
		return
	}

	// Cancelling twice is fine: the second call finds nothing and succeeds.
	if err := s.db.CancelSession(r.Context(), sessionID, userIDFromContext(r)); err != nil {
		s.storageError(w, "cancel session", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sucesso": true})
}

type saveSessionRequest struct {
	UserID      int64             `json:"userId"`
	WorkoutID   int64             `json:"treinoId"`
	DurationSec int               `json:"duracao_segundos"`
	Sets        []models.SetEntry `json:"series"`
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	var req saveSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "JSON inválido: " + err.Error()})
		return
	}
	if req.UserID == 0 || req.WorkoutID == 0 || req.DurationSec <= 0 || len(req.Sets) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "userId, treinoId, duracao_segundos e series são obrigatórios."})
		return
	}
	if req.UserID != userIDFromContext(r) {
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Treino não encontrado."})
		return
	}

	session, err := s.db.SaveSession(r.Context(), req.WorkoutID, req.UserID, req.DurationSec, req.Sets)
	var incomplete *storage.IncompleteWorkoutError
	switch {
	case errors.Is(err, models.ErrInvalidSet):
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": err.Error()})
		return
	case errors.As(err, &incomplete):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"erro":                "Ainda tens exercícios por concluir.",
			"exerciciosFaltantes": incomplete.Missing,
			"elegivel":            false,
		})
		return
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Treino não encontrado."})
		return
	case err != nil:
		s.storageError(w, "save session", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sucesso":   true,
		"id_sessao": session.ID,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	sessions, err := s.db.ListSessions(r.Context(), userID, limit)
	if err != nil {
		s.storageError(w, "list sessions", err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathID(r, "sessaoId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "id de sessão inválido"})
		return
	}
	detail, err := s.db.GetSessionDetail(r.Context(), sessionID, userIDFromContext(r))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Sessão não encontrada."})
		return
	}
	if err != nil {
		s.storageError(w, "session detail", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleLastWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	last, err := s.db.LastCompletedSession(r.Context(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Sem treinos concluídos."})
		return
	}
	if err != nil {
		s.storageError(w, "last workout", err)
		return
	}
	writeJSON(w, http.StatusOK, last)
}

// pathUserID parses the {userId} path segment and checks it against the
// authenticated user. A mismatch is reported as not-found, the same answer
// given for resources owned by someone else.
func (s *Server) pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathID(r, "userId")
	if err != nil || id != userIDFromContext(r) {
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "não encontrado"})
		return 0, false
	}
	return id, true
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func (s *Server) storageError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"erro": "Erro na base de dados."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
