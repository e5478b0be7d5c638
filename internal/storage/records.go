package storage

import (
	"context"
	"fmt"
	"time"
)

// recordLimit caps the records list; the app shows the top 20.
const recordLimit = 20

// PersonalRecord is a user's best strength weight for one exercise.
type PersonalRecord struct {
	ExerciseName string    `json:"nome_exercicio"`
	Weight       float64   `json:"peso"`
	RecordedAt   time.Time `json:"data_serie"`
}

// PersonalRecords returns the user's max weight per exercise, heaviest first,
// top 20. Only strength sets with positive weight count; each exercise
// appears at most once, dated when the record was set. Order among equal
// weights is unspecified.
func (db *DB) PersonalRecords(ctx context.Context, userID int64) ([]PersonalRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT nome, peso, data_serie FROM (
		   SELECT DISTINCT ON (ts.id_exercicio)
		          e.nome, ts.peso, ts.data_serie
		   FROM treino_serie ts
		   JOIN treino_sessao s ON s.id_sessao = ts.id_sessao
		   JOIN exercicios e ON e.id_exercicio = ts.id_exercicio
		   WHERE s.id_users = $1 AND ts.tipo = 'forca' AND ts.peso > 0
		   ORDER BY ts.id_exercicio, ts.peso DESC, ts.data_serie ASC
		 ) best
		 ORDER BY peso DESC
		 LIMIT $2`,
		userID, recordLimit)
	if err != nil {
		return nil, fmt.Errorf("querying personal records: %w", err)
	}
	defer rows.Close()

	var result []PersonalRecord
	for rows.Next() {
		var r PersonalRecord
		if err := rows.Scan(&r.ExerciseName, &r.Weight, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning personal record: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
