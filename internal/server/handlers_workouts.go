package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golift/backend/internal/storage"
)

type createWorkoutRequest struct {
	UserID    int64   `json:"userId"`
	Name      string  `json:"nome"`
	Exercises []int64 `json:"exercicios"`
	Date      string  `json:"dataRealizacao"`
	AIOrigin  bool    `json:"origem_ia"`
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req createWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "JSON inválido: " + err.Error()})
		return
	}
	if req.UserID == 0 || len(req.Exercises) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "userId, nome e lista de exercícios são obrigatórios."})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "O nome do treino não pode estar vazio."})
		return
	}
	if req.UserID != userIDFromContext(r) {
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Utilizador não encontrado."})
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "dataRealizacao inválida, formato esperado YYYY-MM-DD."})
			return
		}
		date = parsed
	}

	workout, err := s.db.CreateWorkout(r.Context(), req.UserID, strings.TrimSpace(req.Name), date, req.Exercises, req.AIOrigin)
	if err != nil {
		s.storageError(w, "create workout", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sucesso":     true,
		"id_treino":   workout.ID,
		"nome":        workout.Name,
		"data_treino": workout.Date.Format("2006-01-02"),
		"status":      workout.Status,
		"exercicios":  len(req.Exercises),
	})
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	workouts, err := s.db.ListWorkouts(r.Context(), userID)
	if err != nil {
		s.storageError(w, "list workouts", err)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	workoutID, err := pathID(r, "treinoId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "id de treino inválido"})
		return
	}

	workout, err := s.db.GetWorkout(r.Context(), workoutID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Treino não encontrado."})
		return
	}
	if err != nil {
		s.storageError(w, "get workout", err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}
	workoutID, err := pathID(r, "treinoId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"erro": "id de treino inválido"})
		return
	}

	err = s.db.DeleteWorkout(r.Context(), workoutID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "Treino não encontrado."})
		return
	}
	if err != nil {
		s.storageError(w, "delete workout", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sucesso": true})
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.db.ListExercises(r.Context(), r.URL.Query().Get("grupo"))
	if err != nil {
		s.storageError(w, "list exercises", err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}
