package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/golift/backend/internal/models"
	"github.com/golift/backend/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	ExercisesInserted int
	ExercisesUpdated  int
	EntriesRejected   int
}

// catalogEntry is one exercise in an external catalog JSON file.
type catalogEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	BodyPart     string   `json:"bodyPart"`
	Target       string   `json:"target"`
	GifURL       string   `json:"gifUrl"`
	Instructions []string `json:"instructions"`
}

// Importer reads exercise catalog JSON files and upserts them into the
// shared catalog, tracking processed files in a local SQLite state db.
type Importer struct {
	db     *storage.DB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer.
func New(db *storage.DB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, log: log, dryRun: dryRun}
}

// Import processes all .json catalog files under the given directory. The
// state database lives in stateDir; files whose size and hash are unchanged
// since the last run are skipped.
func (imp *Importer) Import(ctx context.Context, catalogDir, stateDir string) (*Stats, error) {
	state, err := OpenStateDB(stateDir)
	if err != nil {
		return &imp.stats, err
	}
	defer state.Close()

	files, err := filepath.Glob(filepath.Join(catalogDir, "*.json"))
	if err != nil {
		return &imp.stats, fmt.Errorf("listing catalog files: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		if err := imp.importFile(ctx, state, f); err != nil {
			return &imp.stats, fmt.Errorf("importing %s: %w", filepath.Base(f), err)
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, state *StateDB, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		imp.log.Warn("stat failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	hash, err := HashFile(path)
	if err != nil {
		imp.log.Warn("hash failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	name := filepath.Base(path)
	done, err := state.IsImported(name, info.Size(), hash)
	if err != nil {
		return fmt.Errorf("checking state for %s: %w", name, err)
	}
	if done {
		imp.stats.FilesSkipped++
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		imp.log.Warn("read failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	var entries []catalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		imp.log.Warn("parse failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	if len(entries) == 0 {
		imp.stats.FilesSkipped++
		return nil
	}

	imp.stats.FilesProcessed++

	for _, entry := range entries {
		row, ok := catalogToRow(entry)
		if !ok {
			imp.stats.EntriesRejected++
			continue
		}

		if imp.dryRun {
			imp.stats.ExercisesInserted++
			continue
		}

		inserted, err := imp.db.UpsertExercise(ctx, row)
		if err != nil {
			return fmt.Errorf("upserting %q: %w", row.Name, err)
		}
		if inserted {
			imp.stats.ExercisesInserted++
		} else {
			imp.stats.ExercisesUpdated++
		}
	}

	if imp.dryRun {
		return nil
	}
	if err := state.MarkImported(name, info.Size(), hash); err != nil {
		return fmt.Errorf("marking %s imported: %w", name, err)
	}
	return nil
}

// catalogToRow maps a catalog entry onto a catalog row. Entries without a
// name or body part are rejected.
func catalogToRow(entry catalogEntry) (models.ExerciseRow, bool) {
	name := strings.TrimSpace(entry.Name)
	if name == "" || strings.TrimSpace(entry.BodyPart) == "" {
		return models.ExerciseRow{}, false
	}

	row := models.ExerciseRow{
		Name:        titleCase(name),
		Description: strings.Join(entry.Instructions, " "),
		MuscleGroup: titleCase(entry.BodyPart),
		SubGroup:    titleCase(entry.Target),
	}
	if entry.GifURL != "" {
		url := entry.GifURL
		row.VideoURL = &url
	}
	if entry.ID != "" {
		id := entry.ID
		row.ExternalID = &id
	}
	return row, true
}

// titleCase uppercases the first letter of each word. Catalog sources ship
// lowercase names ("barbell bench press").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
