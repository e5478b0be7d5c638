package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/golift/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SessionDetail is a session with its recorded sets.
type SessionDetail struct {
	models.SessionRow
	Sets []models.SetRow `json:"series"`
}

// StartSession creates a new in-progress session against a workout. The
// workout must exist and belong to the user, otherwise ErrNotFound. There is
// no cap on concurrent open sessions.
func (db *DB) StartSession(ctx context.Context, workoutID, userID int64) (models.SessionRow, error) {
	var owned bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM treino WHERE id_treino = $1 AND id_users = $2)`,
		workoutID, userID).Scan(&owned)
	if err != nil {
		return models.SessionRow{}, fmt.Errorf("checking workout ownership: %w", err)
	}
	if !owned {
		return models.SessionRow{}, ErrNotFound
	}

	var row models.SessionRow
	err = db.Pool.QueryRow(ctx,
		`INSERT INTO treino_sessao (sessao_uuid, id_treino, id_users, data_inicio)
		 VALUES ($1, $2, $3, NOW())
		 RETURNING id_sessao, sessao_uuid, id_treino, id_users, data_inicio, data_fim, duracao_segundos`,
		uuid.New(), workoutID, userID,
	).Scan(&row.ID, &row.UUID, &row.WorkoutID, &row.UserID, &row.StartedAt, &row.CompletedAt, &row.DurationSec)
	if err != nil {
		return models.SessionRow{}, fmt.Errorf("inserting session: %w", err)
	}
	return row, nil
}

// GetSession retrieves a session owned by the user.
func (db *DB) GetSession(ctx context.Context, sessionID, userID int64) (models.SessionRow, error) {
	var row models.SessionRow
	err := db.Pool.QueryRow(ctx,
		`SELECT id_sessao, sessao_uuid, id_treino, id_users, data_inicio, data_fim, duracao_segundos
		 FROM treino_sessao
		 WHERE id_sessao = $1 AND id_users = $2`,
		sessionID, userID,
	).Scan(&row.ID, &row.UUID, &row.WorkoutID, &row.UserID, &row.StartedAt, &row.CompletedAt, &row.DurationSec)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SessionRow{}, ErrNotFound
	}
	if err != nil {
		return models.SessionRow{}, fmt.Errorf("querying session: %w", err)
	}
	return row, nil
}

// FinalizeSession marks a session completed, after checking that every
// exercise still pending in the workout's plan has at least one recorded set
// in this session. On success the pending plan rows are committed and the
// workout status flips to completed; the whole sequence runs in one
// transaction so a failure cannot leave a committed plan without a completed
// session or vice versa.
//
// Returns ErrNotFound when the session is absent or not owned,
// ErrSessionClosed when it was already finalized (including a racing
// finalize), and *IncompleteWorkoutError listing the missing exercise ids
// when eligibility fails.
func (db *DB) FinalizeSession(ctx context.Context, sessionID, userID int64, durationSec int) error {
	return db.withTx(ctx, func(tx pgx.Tx) error {
		var workoutID int64
		var completedAt *time.Time
		err := tx.QueryRow(ctx,
			`SELECT id_treino, data_fim FROM treino_sessao
			 WHERE id_sessao = $1 AND id_users = $2
			 FOR UPDATE`,
			sessionID, userID).Scan(&workoutID, &completedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("locking session: %w", err)
		}
		if completedAt != nil {
			return ErrSessionClosed
		}

		if err := commitPlan(ctx, tx, workoutID, sessionID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`UPDATE treino_sessao SET data_fim = NOW(), duracao_segundos = $2
			 WHERE id_sessao = $1 AND data_fim IS NULL`,
			sessionID, durationSec)
		if err != nil {
			return fmt.Errorf("completing session: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrSessionClosed
		}
		return nil
	})
}

// commitPlan runs the completion eligibility check for a session's parent
// workout and, when it passes, commits the pending plan rows and flips the
// workout status. An empty pending plan is trivially eligible: the workout
// was already committed by an earlier session.
func commitPlan(ctx context.Context, tx pgx.Tx, workoutID, sessionID int64) error {
	pending, err := pendingExercises(ctx, tx, workoutID)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	recorded, err := exercisesWithSets(ctx, tx, sessionID)
	if err != nil {
		return err
	}

	if missing := missingExercises(pending, recorded); len(missing) > 0 {
		return newIncompleteWorkoutError(missing)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE treino_exercicio SET committed = TRUE
		 WHERE id_treino = $1 AND NOT committed`,
		workoutID); err != nil {
		return fmt.Errorf("committing planned exercises: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE treino SET status = $2 WHERE id_treino = $1`,
		workoutID, models.WorkoutStatusCompleted); err != nil {
		return fmt.Errorf("updating workout status: %w", err)
	}
	return nil
}

// missingExercises returns the pending exercise ids without a recorded set,
// ascending. An empty result means the session is eligible for completion:
// every planned exercise has at least one set.
func missingExercises(pending []int64, recorded map[int64]bool) []int64 {
	var missing []int64
	for _, id := range pending {
		if !recorded[id] {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

// exercisesWithSets returns the distinct exercise ids with at least one set
// recorded in the session.
func exercisesWithSets(ctx context.Context, tx pgx.Tx, sessionID int64) (map[int64]bool, error) {
	rows, err := tx.Query(ctx,
		`SELECT DISTINCT id_exercicio FROM treino_serie WHERE id_sessao = $1`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying recorded exercises: %w", err)
	}
	defer rows.Close()

	recorded := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning recorded exercise: %w", err)
		}
		recorded[id] = true
	}
	return recorded, rows.Err()
}

// CancelSession deletes a session and all its sets. When the parent workout
// is still a draft, the workout and its plan rows go too: nothing of an
// abandoned first attempt survives. Cancelling a session that does not exist
// is a no-op, matching the client's retry behavior.
func (db *DB) CancelSession(ctx context.Context, sessionID, userID int64) error {
	return db.withTx(ctx, func(tx pgx.Tx) error {
		var workoutID int64
		err := tx.QueryRow(ctx,
			`SELECT id_treino FROM treino_sessao
			 WHERE id_sessao = $1 AND id_users = $2
			 FOR UPDATE`,
			sessionID, userID).Scan(&workoutID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("locking session: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM treino_serie WHERE id_sessao = $1`, sessionID); err != nil {
			return fmt.Errorf("deleting sets: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM treino_sessao WHERE id_sessao = $1`, sessionID); err != nil {
			return fmt.Errorf("deleting session: %w", err)
		}

		var status string
		err = tx.QueryRow(ctx,
			`SELECT status FROM treino WHERE id_treino = $1`, workoutID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("querying workout status: %w", err)
		}
		if status != models.WorkoutStatusDraft {
			return nil
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM treino_exercicio WHERE id_treino = $1`, workoutID); err != nil {
			return fmt.Errorf("deleting planned exercises: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM treino WHERE id_treino = $1`, workoutID); err != nil {
			return fmt.Errorf("deleting draft workout: %w", err)
		}
		return nil
	})
}

// SaveSession persists a whole session in one call: the mobile app batches
// offline workouts and syncs them afterwards. The session is inserted already
// completed, its sets batch-inserted, and the same plan-commit step as
// FinalizeSession applies.
func (db *DB) SaveSession(ctx context.Context, workoutID, userID int64, durationSec int, entries []models.SetEntry) (models.SessionRow, error) {
	var row models.SessionRow
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		var owned bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM treino WHERE id_treino = $1 AND id_users = $2)`,
			workoutID, userID).Scan(&owned)
		if err != nil {
			return fmt.Errorf("checking workout ownership: %w", err)
		}
		if !owned {
			return ErrNotFound
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO treino_sessao (sessao_uuid, id_treino, id_users, data_inicio, data_fim, duracao_segundos)
			 VALUES ($1, $2, $3, NOW() - make_interval(secs => $4), NOW(), $4)
			 RETURNING id_sessao, sessao_uuid, id_treino, id_users, data_inicio, data_fim, duracao_segundos`,
			uuid.New(), workoutID, userID, durationSec,
		).Scan(&row.ID, &row.UUID, &row.WorkoutID, &row.UserID, &row.StartedAt, &row.CompletedAt, &row.DurationSec)
		if err != nil {
			return fmt.Errorf("inserting session: %w", err)
		}

		if err := insertSets(ctx, tx, row.ID, userID, entries); err != nil {
			return err
		}
		return commitPlan(ctx, tx, workoutID, row.ID)
	})
	if err != nil {
		return models.SessionRow{}, err
	}
	return row, nil
}

// ListSessions retrieves a user's sessions, newest first, with the workout
// name joined in for the history screen.
func (db *DB) ListSessions(ctx context.Context, userID int64, limit int) ([]SessionSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT s.id_sessao, s.sessao_uuid, s.id_treino, t.nome, s.data_inicio, s.data_fim, s.duracao_segundos
		 FROM treino_sessao s
		 JOIN treino t ON t.id_treino = s.id_treino
		 WHERE s.id_users = $1
		 ORDER BY s.data_inicio DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.ID, &s.UUID, &s.WorkoutID, &s.WorkoutName, &s.StartedAt, &s.CompletedAt, &s.DurationSec); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// SessionSummary is a session joined with its workout name.
type SessionSummary struct {
	ID          int64      `json:"id_sessao"`
	UUID        uuid.UUID  `json:"sessao_uuid"`
	WorkoutID   int64      `json:"id_treino"`
	WorkoutName string     `json:"nome_treino"`
	StartedAt   time.Time  `json:"data_inicio"`
	CompletedAt *time.Time `json:"data_fim,omitempty"`
	DurationSec *int       `json:"duracao_segundos,omitempty"`
}

// GetSessionDetail retrieves a session with all its sets, ordered the way the
// app renders them.
func (db *DB) GetSessionDetail(ctx context.Context, sessionID, userID int64) (*SessionDetail, error) {
	session, err := db.GetSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT id_serie, id_sessao, id_exercicio, numero_serie, tipo,
		        repeticoes, peso, distancia_km, tempo_segundos, recorde_pessoal, data_serie
		 FROM treino_serie
		 WHERE id_sessao = $1
		 ORDER BY id_exercicio ASC, numero_serie ASC, id_serie ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	detail := &SessionDetail{SessionRow: session}
	for rows.Next() {
		var s models.SetRow
		if err := rows.Scan(&s.ID, &s.SessionID, &s.ExerciseID, &s.SetNumber, &s.Type,
			&s.Reps, &s.Weight, &s.DistanceKm, &s.TimeSec, &s.PersonalRecord, &s.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		detail.Sets = append(detail.Sets, s)
	}
	return detail, rows.Err()
}

// LastCompletedSession returns the user's most recent completed session, or
// ErrNotFound when there is none.
func (db *DB) LastCompletedSession(ctx context.Context, userID int64) (*SessionSummary, error) {
	var s SessionSummary
	err := db.Pool.QueryRow(ctx,
		`SELECT s.id_sessao, s.sessao_uuid, s.id_treino, t.nome, s.data_inicio, s.data_fim, s.duracao_segundos
		 FROM treino_sessao s
		 JOIN treino t ON t.id_treino = s.id_treino
		 WHERE s.id_users = $1 AND s.data_fim IS NOT NULL
		 ORDER BY s.data_fim DESC
		 LIMIT 1`,
		userID,
	).Scan(&s.ID, &s.UUID, &s.WorkoutID, &s.WorkoutName, &s.StartedAt, &s.CompletedAt, &s.DurationSec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying last session: %w", err)
	}
	return &s, nil
}
