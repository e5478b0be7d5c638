package importer

import (
	"os"
	"path/filepath"
	"testing"
)

// TestCatalogToRow verifies the mapping from an external catalog entry to a
// catalog row, including title-casing and rejection of incomplete entries.
func TestCatalogToRow(t *testing.T) {
	tests := []struct {
		name     string
		entry    catalogEntry
		wantName string
		wantOK   bool
	}{
		{
			name: "complete entry",
			entry: catalogEntry{
				ID:           "0025",
				Name:         "barbell bench press",
				BodyPart:     "chest",
				Target:       "pectorals",
				GifURL:       "https://example.com/0025.gif",
				Instructions: []string{"Lie on the bench.", "Press the bar up."},
			},
			wantName: "Barbell Bench Press",
			wantOK:   true,
		},
		{
			name:   "missing name",
			entry:  catalogEntry{BodyPart: "chest"},
			wantOK: false,
		},
		{
			name:   "missing body part",
			entry:  catalogEntry{Name: "squat"},
			wantOK: false,
		},
		{
			name:     "no optional fields",
			entry:    catalogEntry{Name: "plank", BodyPart: "waist"},
			wantName: "Plank",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := catalogToRow(tt.entry)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if row.Name != tt.wantName {
				t.Errorf("name = %q, want %q", row.Name, tt.wantName)
			}
			if tt.entry.GifURL != "" && (row.VideoURL == nil || *row.VideoURL != tt.entry.GifURL) {
				t.Errorf("video = %v, want %q", row.VideoURL, tt.entry.GifURL)
			}
			if tt.entry.GifURL == "" && row.VideoURL != nil {
				t.Errorf("video = %q, want nil", *row.VideoURL)
			}
		})
	}
}

// TestTitleCase verifies word capitalization of lowercase catalog names.
func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"barbell bench press", "Barbell Bench Press"},
		{"squat", "Squat"},
		{"água na boca", "Água Na Boca"},
		{"élévation latérale", "Élévation Latérale"},
		{"  leg  press ", "Leg Press"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestStateDBRoundTrip verifies that imported files are remembered across
// reopens and that a changed hash invalidates the record.
func TestStateDBRoundTrip(t *testing.T) {
	dir := t.TempDir()

	state, err := OpenStateDB(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	done, err := state.IsImported("catalog.json", 100, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if done {
		t.Error("fresh state db should not report imported")
	}

	if err := state.MarkImported("catalog.json", 100, "abc"); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}
	state.Close()

	// Reopen and check persistence.
	state, err = OpenStateDB(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer state.Close()

	done, err = state.IsImported("catalog.json", 100, "abc")
	if err != nil {
		t.Fatalf("IsImported after reopen: %v", err)
	}
	if !done {
		t.Error("expected file to be remembered after reopen")
	}

	done, err = state.IsImported("catalog.json", 100, "different-hash")
	if err != nil {
		t.Fatalf("IsImported changed hash: %v", err)
	}
	if done {
		t.Error("changed hash should not count as imported")
	}
}

// TestHashFile verifies hashing is stable and content-sensitive.
func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	h1, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	h2, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if h1 != h2 {
		t.Error("hash should be deterministic")
	}

	if err := os.WriteFile(path, []byte(`[{}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	h3, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if h3 == h1 {
		t.Error("hash should change with content")
	}
}
