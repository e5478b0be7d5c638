package storage

import (
	"context"
	"fmt"

	"github.com/golift/backend/internal/models"
)

// ListExercises retrieves the shared exercise catalog, optionally filtered by
// muscle group, ordered by name.
func (db *DB) ListExercises(ctx context.Context, muscleGroup string) ([]models.ExerciseRow, error) {
	query := `SELECT id_exercicio, nome, descricao, grupo_tipo, sub_tipo, video, external_id, recorde_pessoal
	          FROM exercicios`
	args := []any{}
	if muscleGroup != "" {
		query += ` WHERE grupo_tipo = $1`
		args = append(args, muscleGroup)
	}
	query += ` ORDER BY nome ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	return scanExerciseRows(rows)
}

// UpsertExercise inserts a catalog entry or refreshes an existing one matched
// by external id (imported entries) or name (manual entries). Returns true
// when a new row was created.
func (db *DB) UpsertExercise(ctx context.Context, ex models.ExerciseRow) (bool, error) {
	var inserted bool
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO exercicios (nome, descricao, grupo_tipo, sub_tipo, video, external_id, recorde_pessoal)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (nome) DO UPDATE
		   SET descricao = EXCLUDED.descricao,
		       grupo_tipo = EXCLUDED.grupo_tipo,
		       sub_tipo = EXCLUDED.sub_tipo,
		       video = COALESCE(EXCLUDED.video, exercicios.video),
		       external_id = COALESCE(EXCLUDED.external_id, exercicios.external_id)
		 RETURNING (xmax = 0)`,
		ex.Name, ex.Description, ex.MuscleGroup, ex.SubGroup, ex.VideoURL, ex.ExternalID, ex.BaselineRecord,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upserting exercise %q: %w", ex.Name, err)
	}
	return inserted, nil
}

func scanExerciseRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]models.ExerciseRow, error) {
	var result []models.ExerciseRow
	for rows.Next() {
		var e models.ExerciseRow
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.MuscleGroup, &e.SubGroup,
			&e.VideoURL, &e.ExternalID, &e.BaselineRecord); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
