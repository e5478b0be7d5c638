package storage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a referenced workout or session does not exist
// or is not owned by the requesting user. Ownership failures are deliberately
// indistinguishable from absence.
var ErrNotFound = errors.New("não encontrado")

// ErrSessionClosed is returned when a write targets a session that has
// already been finalized. Racing completion attempts surface this too: the
// completion update is conditional on data_fim still being NULL.
var ErrSessionClosed = errors.New("sessão já finalizada")

// IncompleteWorkoutError reports a completion attempt made before every
// planned exercise had at least one recorded set in the session. Missing
// holds the exercise ids the client still has to record, ascending.
type IncompleteWorkoutError struct {
	Missing []int64
}

func (e *IncompleteWorkoutError) Error() string {
	ids := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		ids[i] = fmt.Sprint(id)
	}
	return "exercícios sem séries registadas: " + strings.Join(ids, ", ")
}

func newIncompleteWorkoutError(missing []int64) *IncompleteWorkoutError {
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return &IncompleteWorkoutError{Missing: missing}
}
