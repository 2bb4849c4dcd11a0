package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	if err := store.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	id, err := store.SaveRun(Run{Seed: 1, Score: 500})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	r, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID failed: %v", err)
	}
	if r == nil || r.Score != 500 {
		t.Errorf("run after reopen = %+v, want score 500", r)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	in := Run{Seed: 42, Preset: "normal", Score: 1234, Coins: 7, Distance: 534, Chunks: 12}
	id, err := store.SaveRun(in)
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("SaveRun returned non-UUID id %q: %v", id, err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID returned nil for a saved run")
	}

	if got.ID != id {
		t.Errorf("ID = %q, want %q", got.ID, id)
	}
	if got.Seed != 42 || got.Preset != "normal" || got.Score != 1234 {
		t.Errorf("got %+v", got)
	}
	if got.Coins != 7 || got.Distance != 534 || got.Chunks != 12 {
		t.Errorf("got %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	want := uuid.NewString()
	id, err := store.SaveRun(Run{ID: want, Score: 10})
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if id != want {
		t.Errorf("SaveRun id = %q, want %q", id, want)
	}

	if _, err := store.SaveRun(Run{ID: want, Score: 20}); err == nil {
		t.Error("saving a duplicate id should fail")
	}
}

func TestStoreInvalidIDs(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{ID: "not-a-uuid"}); !errors.Is(err, ErrInvalidRunID) {
		t.Errorf("SaveRun error = %v, want ErrInvalidRunID", err)
	}
	if _, err := store.RunByID("not-a-uuid"); !errors.Is(err, ErrInvalidRunID) {
		t.Errorf("RunByID error = %v, want ErrInvalidRunID", err)
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	r, err := store.RunByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RunByID failed: %v", err)
	}
	if r != nil {
		t.Errorf("RunByID = %+v, want nil", r)
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Preset: "easy", Score: 100},
		{Preset: "hard", Score: 500},
		{Preset: "easy", Score: 300},
		{Preset: "normal", Score: 200},
		{Preset: "hard", Score: 400},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		preset string
		limit  int
		want   []int
	}{
		{"all", "", 10, []int{500, 400, 300, 200, 100}},
		{"limited", "", 3, []int{500, 400, 300}},
		{"easy only", "easy", 10, []int{300, 100}},
		{"hard only", "hard", 1, []int{500}},
		{"unknown preset", "fixed", 10, nil},
		{"default limit", "", 0, []int{500, 400, 300, 200, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.TopRuns(tt.preset, tt.limit)
			if err != nil {
				t.Fatalf("TopRuns failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, r := range got {
				if r.Score != tt.want[i] {
					t.Errorf("run %d score = %d, want %d", i, r.Score, tt.want[i])
				}
			}
		})
	}
}

func TestStoreTopRunsTieKeepsInsertOrder(t *testing.T) {
	store := openTestStore(t)

	first, _ := store.SaveRun(Run{Seed: 1, Score: 100})
	second, _ := store.SaveRun(Run{Seed: 2, Score: 100})

	got, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != first || got[1].ID != second {
		t.Errorf("tie order = [%s %s], want [%s %s]", got[0].ID, got[1].ID, first, second)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	score, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore failed: %v", err)
	}
	if score != 0 {
		t.Errorf("HighScore on empty store = %d, want 0", score)
	}

	for _, s := range []int{100, 500, 200} {
		if _, err := store.SaveRun(Run{Score: s}); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	score, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore failed: %v", err)
	}
	if score != 500 {
		t.Errorf("HighScore = %d, want 500", score)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Runs != 0 || stats.HighScore != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	runs := []Run{
		{Score: 100, Coins: 1, Distance: 50},
		{Score: 300, Coins: 4, Distance: 120},
		{Score: 200, Coins: 2, Distance: 90},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Runs != 3 {
		t.Errorf("Runs = %d, want 3", stats.Runs)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.TotalCoins != 7 {
		t.Errorf("TotalCoins = %d, want 7", stats.TotalCoins)
	}
	if stats.LongestDistance != 120 {
		t.Errorf("LongestDistance = %d, want 120", stats.LongestDistance)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 200} {
		if _, err := store.SaveRun(Run{Score: s}); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns failed: %v", err)
	}

	runs, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs after clear, got %d", len(runs))
	}
}
