package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golift/backend/internal/models"
	"github.com/jackc/pgx/v5"
)

// RecordSet appends one validated set to an in-progress session and returns
// the new set id. Duplicate (session, exercise, set number) rows are allowed:
// the client re-sends corrected sets and display takes the latest.
// A strength set beating the user's previous max for the exercise is flagged
// as a personal record.
func (db *DB) RecordSet(ctx context.Context, sessionID, userID int64, entry models.SetEntry) (int64, error) {
	if err := entry.Validate(); err != nil {
		return 0, err
	}

	var setID int64
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		// Lock the session row so a racing finalize cannot close the
		// session between this check and the insert.
		var completedAt *time.Time
		err := tx.QueryRow(ctx,
			`SELECT data_fim FROM treino_sessao
			 WHERE id_sessao = $1 AND id_users = $2
			 FOR UPDATE`,
			sessionID, userID).Scan(&completedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("querying session: %w", err)
		}
		if completedAt != nil {
			return ErrSessionClosed
		}

		row := entry.Row(sessionID)
		if row.Type == models.SetTypeStrength && row.Weight != nil && *row.Weight > 0 {
			best, err := bestWeight(ctx, tx, userID, row.ExerciseID)
			if err != nil {
				return err
			}
			row.PersonalRecord = *row.Weight > best
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO treino_serie (id_sessao, id_exercicio, numero_serie, tipo,
			   repeticoes, peso, distancia_km, tempo_segundos, recorde_pessoal, data_serie)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
			 RETURNING id_serie`,
			row.SessionID, row.ExerciseID, row.SetNumber, row.Type,
			row.Reps, row.Weight, row.DistanceKm, row.TimeSec, row.PersonalRecord,
		).Scan(&setID)
		if err != nil {
			return fmt.Errorf("inserting set: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return setID, nil
}

// bestWeight returns the user's highest recorded strength weight for an
// exercise, falling back to the exercise's baseline record when there is no
// history yet.
func bestWeight(ctx context.Context, tx pgx.Tx, userID, exerciseID int64) (float64, error) {
	var best float64
	err := tx.QueryRow(ctx,
		`SELECT GREATEST(
		   COALESCE((SELECT MAX(ts.peso)
		             FROM treino_serie ts
		             JOIN treino_sessao s ON s.id_sessao = ts.id_sessao
		             WHERE s.id_users = $1 AND ts.id_exercicio = $2 AND ts.tipo = 'forca'), 0),
		   COALESCE((SELECT recorde_pessoal FROM exercicios WHERE id_exercicio = $2), 0))`,
		userID, exerciseID).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("querying best weight: %w", err)
	}
	return best, nil
}

// insertSets batch-inserts validated entries for a session inside the
// caller's transaction. Personal-record flags are computed against a single
// upfront query per exercise, then tracked across the batch itself.
func insertSets(ctx context.Context, tx pgx.Tx, sessionID, userID int64, entries []models.SetEntry) error {
	if len(entries) == 0 {
		return nil
	}

	best := make(map[int64]float64)
	rows := make([]models.SetRow, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		row := e.Row(sessionID)
		if row.Type == models.SetTypeStrength && row.Weight != nil && *row.Weight > 0 {
			if _, ok := best[row.ExerciseID]; !ok {
				b, err := bestWeight(ctx, tx, userID, row.ExerciseID)
				if err != nil {
					return err
				}
				best[row.ExerciseID] = b
			}
			if *row.Weight > best[row.ExerciseID] {
				row.PersonalRecord = true
				best[row.ExerciseID] = *row.Weight
			}
		}
		rows = append(rows, row)
	}

	query := `INSERT INTO treino_serie (id_sessao, id_exercicio, numero_serie, tipo,
		repeticoes, peso, distancia_km, tempo_segundos, recorde_pessoal, data_serie) VALUES `
	args := make([]any, 0, len(rows)*9)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 9
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,NOW())",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args, r.SessionID, r.ExerciseID, r.SetNumber, r.Type,
			r.Reps, r.Weight, r.DistanceKm, r.TimeSec, r.PersonalRecord)
	}

	query += strings.Join(valueStrings, ",")

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting sets: %w", err)
	}
	return nil
}
