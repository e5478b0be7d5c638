package models

import (
	"errors"
	"fmt"
)

// Set type discriminator values for treino_serie.tipo.
const (
	SetTypeStrength = "forca"
	SetTypeCardio   = "cardio"
)

// SetEntry is one set as submitted by the client. The payload is polymorphic:
// the presence of distancia_km or tempo_segundos selects cardio mode, where
// both must be positive; otherwise the set is a strength set requiring a
// positive rep count. Weight is optional for strength sets (bodyweight work).
type SetEntry struct {
	ExerciseID int64    `json:"id_exercicio"`
	SetNumber  int      `json:"numero_serie"`
	Reps       *int     `json:"repeticoes,omitempty"`
	Weight     *float64 `json:"peso,omitempty"`
	DistanceKm *float64 `json:"distancia_km,omitempty"`
	TimeSec    *int     `json:"tempo_segundos,omitempty"`
}

// ErrInvalidSet wraps all set validation failures.
var ErrInvalidSet = errors.New("série inválida")

// Cardio reports whether the entry is in cardio mode.
func (e SetEntry) Cardio() bool {
	return e.DistanceKm != nil || e.TimeSec != nil
}

// Validate checks the entry against the mode selected by its fields.
// Messages are client-facing and mirror the mobile app's expectations.
func (e SetEntry) Validate() error {
	if e.ExerciseID == 0 || e.SetNumber == 0 {
		return fmt.Errorf("%w: id_exercicio e numero_serie são obrigatórios", ErrInvalidSet)
	}
	if e.Cardio() {
		if e.DistanceKm == nil || *e.DistanceKm <= 0 || e.TimeSec == nil || *e.TimeSec <= 0 {
			return fmt.Errorf("%w: para cardio, informe distância (>0) e tempo (>0)", ErrInvalidSet)
		}
		return nil
	}
	if e.Reps == nil || *e.Reps <= 0 {
		return fmt.Errorf("%w: repeticoes são obrigatórias", ErrInvalidSet)
	}
	if e.Weight != nil && *e.Weight < 0 {
		return fmt.Errorf("%w: peso não pode ser negativo", ErrInvalidSet)
	}
	return nil
}

// Row converts a validated entry into a SetRow for the given session.
// RecordedAt and PersonalRecord are filled by the storage layer.
func (e SetEntry) Row(sessionID int64) SetRow {
	row := SetRow{
		SessionID:  sessionID,
		ExerciseID: e.ExerciseID,
		SetNumber:  e.SetNumber,
	}
	if e.Cardio() {
		row.Type = SetTypeCardio
		row.DistanceKm = e.DistanceKm
		row.TimeSec = e.TimeSec
		return row
	}
	row.Type = SetTypeStrength
	row.Reps = e.Reps
	row.Weight = e.Weight
	return row
}
