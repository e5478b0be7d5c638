package storage

import (
	"context"
	"fmt"
	"time"
)

// TrainingSummaryPeriod holds aggregated session and set volume for one
// period. The weekly report and the MCP get_training_summary tool read this.
type TrainingSummaryPeriod struct {
	Period        string  `json:"period"`
	Sessions      int     `json:"sessions"`
	TotalDuration float64 `json:"total_duration_sec"`
	StrengthSets  int     `json:"strength_sets"`
	TotalReps     int     `json:"total_reps"`
	TonnageKg     float64 `json:"tonnage_kg"`
	CardioSets    int     `json:"cardio_sets"`
	DistanceKm    float64 `json:"distance_km"`
}

// GetTrainingSummary aggregates completed sessions and set volume per period
// (bucket is "1 week" or "1 month").
func (db *DB) GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string, userID int64) ([]TrainingSummaryPeriod, error) {
	sessionRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, data_fim)::date AS period,
		        COUNT(*)::int,
		        COALESCE(SUM(duracao_segundos), 0)::float
		 FROM treino_sessao
		 WHERE data_fim >= $2 AND data_fim < $3 AND id_users = $4
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying session summary: %w", err)
	}
	defer sessionRows.Close()

	periodMap := make(map[string]*TrainingSummaryPeriod)
	var periodOrder []string

	for sessionRows.Next() {
		var periodTime time.Time
		var p TrainingSummaryPeriod
		if err := sessionRows.Scan(&periodTime, &p.Sessions, &p.TotalDuration); err != nil {
			return nil, fmt.Errorf("scanning session summary: %w", err)
		}
		key := periodTime.Format("2006-01-02")
		p.Period = key
		periodMap[key] = &p
		periodOrder = append(periodOrder, key)
	}
	if err := sessionRows.Err(); err != nil {
		return nil, err
	}

	setRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, s.data_fim)::date AS period,
		        COUNT(*) FILTER (WHERE ts.tipo = 'forca')::int,
		        COALESCE(SUM(ts.repeticoes) FILTER (WHERE ts.tipo = 'forca'), 0)::int,
		        COALESCE(SUM(ts.peso * ts.repeticoes) FILTER (WHERE ts.tipo = 'forca'), 0)::float,
		        COUNT(*) FILTER (WHERE ts.tipo = 'cardio')::int,
		        COALESCE(SUM(ts.distancia_km) FILTER (WHERE ts.tipo = 'cardio'), 0)::float
		 FROM treino_serie ts
		 JOIN treino_sessao s ON s.id_sessao = ts.id_sessao
		 WHERE s.data_fim >= $2 AND s.data_fim < $3 AND s.id_users = $4
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying set summary: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var periodTime time.Time
		var strengthSets, totalReps, cardioSets int
		var tonnage, distance float64
		if err := setRows.Scan(&periodTime, &strengthSets, &totalReps, &tonnage, &cardioSets, &distance); err != nil {
			return nil, fmt.Errorf("scanning set summary: %w", err)
		}
		key := periodTime.Format("2006-01-02")
		if _, ok := periodMap[key]; !ok {
			periodMap[key] = &TrainingSummaryPeriod{Period: key}
			periodOrder = append(periodOrder, key)
		}
		p := periodMap[key]
		p.StrengthSets = strengthSets
		p.TotalReps = totalReps
		p.TonnageKg = tonnage
		p.CardioSets = cardioSets
		p.DistanceKm = distance
	}
	if err := setRows.Err(); err != nil {
		return nil, err
	}

	result := make([]TrainingSummaryPeriod, 0, len(periodOrder))
	for _, key := range periodOrder {
		result = append(result, *periodMap[key])
	}
	return result, nil
}

// truncInterval maps bucket strings to date_trunc field names.
func truncInterval(bucket string) string {
	switch bucket {
	case "1 month":
		return "month"
	case "1 day":
		return "day"
	default:
		return "week"
	}
}
