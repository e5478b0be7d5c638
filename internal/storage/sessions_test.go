package storage

import (
	"errors"
	"reflect"
	"testing"
)

// TestMissingExercises verifies the completion eligibility rule: a session may
// complete exactly when every pending planned exercise has at least one
// recorded set.
func TestMissingExercises(t *testing.T) {
	tests := []struct {
		name     string
		pending  []int64
		recorded map[int64]bool
		want     []int64
	}{
		{
			name:     "empty pending plan is trivially eligible",
			pending:  nil,
			recorded: map[int64]bool{7: true},
			want:     nil,
		},
		{
			name:     "all pending exercises recorded",
			pending:  []int64{1, 2, 3},
			recorded: map[int64]bool{1: true, 2: true, 3: true},
			want:     nil,
		},
		{
			name:     "one exercise missing",
			pending:  []int64{1, 2},
			recorded: map[int64]bool{1: true},
			want:     []int64{2},
		},
		{
			name:     "nothing recorded",
			pending:  []int64{3, 1, 2},
			recorded: map[int64]bool{},
			want:     []int64{1, 2, 3},
		},
		{
			name:     "missing ids sorted ascending regardless of plan order",
			pending:  []int64{9, 2, 5},
			recorded: map[int64]bool{2: true},
			want:     []int64{5, 9},
		},
		{
			name:     "extra recorded exercises do not hurt eligibility",
			pending:  []int64{4},
			recorded: map[int64]bool{4: true, 11: true},
			want:     nil,
		},
		{
			name:     "nil recorded map",
			pending:  []int64{1},
			recorded: nil,
			want:     []int64{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := missingExercises(tt.pending, tt.recorded)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("missingExercises = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestIncompleteWorkoutError verifies the ineligibility error reports the
// missing ids ascending and matches errors.As on the wrapped chain.
func TestIncompleteWorkoutError(t *testing.T) {
	err := newIncompleteWorkoutError([]int64{12, 3, 7})

	if got, want := err.Missing, []int64{3, 7, 12}; !reflect.DeepEqual(got, want) {
		t.Errorf("Missing = %v, want %v", got, want)
	}
	if got, want := err.Error(), "exercícios sem séries registadas: 3, 7, 12"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var incomplete *IncompleteWorkoutError
	wrapped := error(err)
	if !errors.As(wrapped, &incomplete) {
		t.Error("errors.As should match *IncompleteWorkoutError")
	}
}
