package models

import (
	"time"

	"github.com/google/uuid"
)

// Workout lifecycle status. A workout starts as a draft; completing its first
// session commits the planned exercises and flips the status.
const (
	WorkoutStatusDraft     = "draft"
	WorkoutStatusCompleted = "completed"
)

// WorkoutRow is a row of the treino table.
type WorkoutRow struct {
	ID        int64     `json:"id_treino"`
	UserID    int64     `json:"id_users"`
	Name      string    `json:"nome"`
	Date      time.Time `json:"data_treino"`
	Status    string    `json:"status"`
	AIOrigin  bool      `json:"origem_ia"`
	CreatedAt time.Time `json:"created_at"`
}

// PlannedExerciseRow is a row of the treino_exercicio table. Uncommitted rows
// are the workout's pending plan; they become committed when the first
// session against the workout is finalized.
type PlannedExerciseRow struct {
	WorkoutID  int64 `json:"id_treino"`
	ExerciseID int64 `json:"id_exercicio"`
	Committed  bool  `json:"committed"`
}

// ExerciseRow is a row of the exercicios catalog table. Exercises are shared
// across users; ExternalID links entries imported from the public catalog.
type ExerciseRow struct {
	ID             int64    `json:"id_exercicio"`
	Name           string   `json:"nome"`
	Description    string   `json:"descricao"`
	MuscleGroup    string   `json:"grupo_tipo"`
	SubGroup       string   `json:"sub_tipo"`
	VideoURL       *string  `json:"video,omitempty"`
	ExternalID     *string  `json:"external_id,omitempty"`
	BaselineRecord *float64 `json:"recorde_pessoal,omitempty"`
}

// SessionRow is a row of the treino_sessao table.
// CompletedAt is nil while the session is in progress; once set, the session
// is immutable except for derived fields.
type SessionRow struct {
	ID          int64      `json:"id_sessao"`
	UUID        uuid.UUID  `json:"sessao_uuid"`
	WorkoutID   int64      `json:"id_treino"`
	UserID      int64      `json:"id_users"`
	StartedAt   time.Time  `json:"data_inicio"`
	CompletedAt *time.Time `json:"data_fim,omitempty"`
	DurationSec *int       `json:"duracao_segundos,omitempty"`
}

// Completed reports whether the session has been finalized.
func (s SessionRow) Completed() bool {
	return s.CompletedAt != nil
}

// SetRow is a row of the treino_serie table. Exactly one of the strength
// (Reps/Weight) or cardio (DistanceKm/TimeSec) column groups is populated,
// selected by Type.
type SetRow struct {
	ID             int64     `json:"id_serie"`
	SessionID      int64     `json:"id_sessao"`
	ExerciseID     int64     `json:"id_exercicio"`
	SetNumber      int       `json:"numero_serie"`
	Type           string    `json:"tipo"`
	Reps           *int      `json:"repeticoes,omitempty"`
	Weight         *float64  `json:"peso,omitempty"`
	DistanceKm     *float64  `json:"distancia_km,omitempty"`
	TimeSec        *int      `json:"tempo_segundos,omitempty"`
	PersonalRecord bool      `json:"recorde_pessoal"`
	RecordedAt     time.Time `json:"data_serie"`
}
