package models

import (
	"errors"
	"testing"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestSetEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   SetEntry
		wantErr bool
	}{
		{
			name:  "strength set with reps and weight",
			entry: SetEntry{ExerciseID: 1, SetNumber: 1, Reps: intPtr(8), Weight: floatPtr(60)},
		},
		{
			name:  "strength set without weight (bodyweight)",
			entry: SetEntry{ExerciseID: 1, SetNumber: 2, Reps: intPtr(12)},
		},
		{
			name:    "missing exercise id",
			entry:   SetEntry{SetNumber: 1, Reps: intPtr(8)},
			wantErr: true,
		},
		{
			name:    "missing set number",
			entry:   SetEntry{ExerciseID: 1, Reps: intPtr(8)},
			wantErr: true,
		},
		{
			name:    "strength set without reps",
			entry:   SetEntry{ExerciseID: 1, SetNumber: 1, Weight: floatPtr(60)},
			wantErr: true,
		},
		{
			name:    "strength set with zero reps",
			entry:   SetEntry{ExerciseID: 1, SetNumber: 1, Reps: intPtr(0)},
			wantErr: true,
		},
		{
			name:    "strength set with negative weight",
			entry:   SetEntry{ExerciseID: 1, SetNumber: 1, Reps: intPtr(8), Weight: floatPtr(-5)},
			wantErr: true,
		},
		{
			name:  "cardio set with distance and time",
			entry: SetEntry{ExerciseID: 2, SetNumber: 1, DistanceKm: floatPtr(5), TimeSec: intPtr(1500)},
		},
		{
			name:    "cardio set missing time",
			entry:   SetEntry{ExerciseID: 2, SetNumber: 1, DistanceKm: floatPtr(5)},
			wantErr: true,
		},
		{
			name:    "cardio set missing distance",
			entry:   SetEntry{ExerciseID: 2, SetNumber: 1, TimeSec: intPtr(1500)},
			wantErr: true,
		},
		{
			name:    "cardio set with zero distance",
			entry:   SetEntry{ExerciseID: 2, SetNumber: 1, DistanceKm: floatPtr(0), TimeSec: intPtr(1500)},
			wantErr: true,
		},
		{
			name:    "cardio set with negative time",
			entry:   SetEntry{ExerciseID: 2, SetNumber: 1, DistanceKm: floatPtr(5), TimeSec: intPtr(-1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidSet) {
				t.Errorf("error %v does not wrap ErrInvalidSet", err)
			}
		})
	}
}

// TestSetEntryRowDiscriminates verifies that the presence of cardio fields
// selects the cardio column group and leaves the strength group empty, and
// vice versa.
func TestSetEntryRowDiscriminates(t *testing.T) {
	cardio := SetEntry{ExerciseID: 2, SetNumber: 1, DistanceKm: floatPtr(5), TimeSec: intPtr(1500)}
	row := cardio.Row(10)
	if row.Type != SetTypeCardio {
		t.Errorf("type = %q, want %q", row.Type, SetTypeCardio)
	}
	if row.Reps != nil || row.Weight != nil {
		t.Error("cardio row carries strength fields")
	}
	if row.DistanceKm == nil || row.TimeSec == nil {
		t.Error("cardio row missing cardio fields")
	}

	strength := SetEntry{ExerciseID: 1, SetNumber: 1, Reps: intPtr(8), Weight: floatPtr(60)}
	row = strength.Row(10)
	if row.Type != SetTypeStrength {
		t.Errorf("type = %q, want %q", row.Type, SetTypeStrength)
	}
	if row.DistanceKm != nil || row.TimeSec != nil {
		t.Error("strength row carries cardio fields")
	}
	if row.SessionID != 10 {
		t.Errorf("session id = %d, want 10", row.SessionID)
	}
}
