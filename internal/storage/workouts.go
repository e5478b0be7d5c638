package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golift/backend/internal/models"
	"github.com/jackc/pgx/v5"
)

// WorkoutDetail is a workout with its planned exercises resolved against the
// catalog.
type WorkoutDetail struct {
	models.WorkoutRow
	Exercises []models.ExerciseRow `json:"exercicios"`
}

// CreateWorkout inserts a draft workout and its planned-exercise rows in one
// transaction. The plan stays uncommitted until the first session against the
// workout is finalized.
func (db *DB) CreateWorkout(ctx context.Context, userID int64, name string, date time.Time, exerciseIDs []int64, aiOrigin bool) (models.WorkoutRow, error) {
	var row models.WorkoutRow
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO treino (id_users, nome, data_treino, status, origem_ia)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id_treino, id_users, nome, data_treino, status, origem_ia, created_at`,
			userID, name, date, models.WorkoutStatusDraft, aiOrigin,
		).Scan(&row.ID, &row.UserID, &row.Name, &row.Date, &row.Status, &row.AIOrigin, &row.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting workout: %w", err)
		}

		for _, exID := range exerciseIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO treino_exercicio (id_treino, id_exercicio, committed)
				 VALUES ($1, $2, FALSE)
				 ON CONFLICT DO NOTHING`,
				row.ID, exID); err != nil {
				return fmt.Errorf("inserting planned exercise %d: %w", exID, err)
			}
		}
		return nil
	})
	if err != nil {
		return models.WorkoutRow{}, err
	}
	return row, nil
}

// ListWorkouts retrieves all workouts owned by a user, newest first, each
// with its planned exercises.
func (db *DB) ListWorkouts(ctx context.Context, userID int64) ([]WorkoutDetail, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id_treino, id_users, nome, data_treino, status, origem_ia, created_at
		 FROM treino
		 WHERE id_users = $1
		 ORDER BY data_treino DESC, id_treino DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []WorkoutDetail
	for rows.Next() {
		var d WorkoutDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Date, &d.Status, &d.AIOrigin, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		exercises, err := db.workoutExercises(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Exercises = exercises
	}
	return result, nil
}

// GetWorkout retrieves a single workout owned by the user, with its planned
// exercises. Returns ErrNotFound when absent or owned by someone else.
func (db *DB) GetWorkout(ctx context.Context, workoutID, userID int64) (*WorkoutDetail, error) {
	var d WorkoutDetail
	err := db.Pool.QueryRow(ctx,
		`SELECT id_treino, id_users, nome, data_treino, status, origem_ia, created_at
		 FROM treino
		 WHERE id_treino = $1 AND id_users = $2`,
		workoutID, userID,
	).Scan(&d.ID, &d.UserID, &d.Name, &d.Date, &d.Status, &d.AIOrigin, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}

	exercises, err := db.workoutExercises(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Exercises = exercises
	return &d, nil
}

// DeleteWorkout removes a workout and its plan rows. Past sessions are kept:
// they are the user's history and reference the workout only by id.
func (db *DB) DeleteWorkout(ctx context.Context, workoutID, userID int64) error {
	return db.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM treino_exercicio
			 WHERE id_treino IN (SELECT id_treino FROM treino WHERE id_treino = $1 AND id_users = $2)`,
			workoutID, userID); err != nil {
			return fmt.Errorf("deleting planned exercises: %w", err)
		}
		tag, err := tx.Exec(ctx,
			`DELETE FROM treino WHERE id_treino = $1 AND id_users = $2`,
			workoutID, userID)
		if err != nil {
			return fmt.Errorf("deleting workout: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (db *DB) workoutExercises(ctx context.Context, workoutID int64) ([]models.ExerciseRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT e.id_exercicio, e.nome, e.descricao, e.grupo_tipo, e.sub_tipo, e.video, e.external_id, e.recorde_pessoal
		 FROM treino_exercicio te
		 JOIN exercicios e ON e.id_exercicio = te.id_exercicio
		 WHERE te.id_treino = $1
		 ORDER BY e.nome ASC`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercises: %w", err)
	}
	defer rows.Close()

	return scanExerciseRows(rows)
}

// pendingExercises returns the exercise ids of the workout's uncommitted plan
// rows, inside the caller's transaction.
func pendingExercises(ctx context.Context, tx pgx.Tx, workoutID int64) ([]int64, error) {
	rows, err := tx.Query(ctx,
		`SELECT id_exercicio FROM treino_exercicio
		 WHERE id_treino = $1 AND NOT committed`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying pending exercises: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning pending exercise: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
