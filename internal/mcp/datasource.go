package mcp

import (
	"context"
	"time"

	"github.com/golift/backend/internal/models"
	"github.com/golift/backend/internal/storage"
)

// DataSource abstracts the data layer for MCP tools, keeping the tool
// handlers independent of the concrete storage implementation.
type DataSource interface {
	ListWorkouts(ctx context.Context, userID int64) ([]storage.WorkoutDetail, error)
	ListSessions(ctx context.Context, userID int64, limit int) ([]storage.SessionSummary, error)
	GetSessionDetail(ctx context.Context, sessionID, userID int64) (*storage.SessionDetail, error)
	PersonalRecords(ctx context.Context, userID int64) ([]storage.PersonalRecord, error)
	GetStreaks(ctx context.Context, userID int64) (storage.Streaks, error)
	GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string, userID int64) ([]storage.TrainingSummaryPeriod, error)
	ListExercises(ctx context.Context, muscleGroup string) ([]models.ExerciseRow, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
