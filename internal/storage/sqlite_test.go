package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore(ScoreEntry{LevelSet: "original", Score: 1200}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("original")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 1200 {
		t.Errorf("Expected high score 1200 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore(ScoreEntry{LevelSet: "original", Score: score, LevelReached: 2}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	// Different set
	if _, err := store.SaveScore(ScoreEntry{LevelSet: "custom", Score: 500}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("original", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].SessionID == "" {
			t.Errorf("scores[%d] has no session id", i)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d] has no timestamp", i)
		}
	}

	all, err := store.TopScores("", 10)
	if err != nil {
		t.Fatalf("TopScores(\"\") failed: %v", err)
	}
	if len(all) != 4 || all[0].Score != 500 {
		t.Errorf("Expected 4 scores led by 500 across sets, got %+v", all)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveScore(ScoreEntry{LevelSet: "original", Score: i * 10}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("original", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", scores[0].Score)
	}

	// Non-positive limit falls back to 10
	scores, err = store.TopScores("original", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("original")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty set, got %d", high)
	}

	store.SaveScore(ScoreEntry{LevelSet: "original", Score: 100})
	store.SaveScore(ScoreEntry{LevelSet: "original", Score: 300})
	store.SaveScore(ScoreEntry{LevelSet: "original", Score: 200})

	high, err = store.HighScore("original")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStoreLevelResults(t *testing.T) {
	store := openTestStore(t)
	session := NewSessionID()

	attempts := []LevelResult{
		{SessionID: session, LevelSet: "original", LevelNumber: 1, Outcome: OutcomeFailed, Frames: 90},
		{SessionID: session, LevelSet: "original", LevelNumber: 1, Outcome: OutcomeCompleted, Frames: 400, Score: 1300},
		{SessionID: session, LevelSet: "original", LevelNumber: 1, Outcome: OutcomeCompleted, Frames: 350, Score: 1300},
		{SessionID: session, LevelSet: "original", LevelNumber: 2, Outcome: OutcomeAbandoned, Frames: 20},
	}
	for _, a := range attempts {
		if _, err := store.SaveLevelResult(a); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	results, err := store.SessionResults(session)
	if err != nil {
		t.Fatalf("SessionResults() failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}
	if results[0].Outcome != OutcomeFailed || results[3].Outcome != OutcomeAbandoned {
		t.Errorf("Results out of order: %+v", results)
	}

	stats, err := store.LevelStats("original")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(stats))
	}
	first := stats[0]
	if first.LevelNumber != 1 || first.Attempts != 3 || first.Completions != 2 || first.Deaths != 1 {
		t.Errorf("Unexpected level 1 stats: %+v", first)
	}
	if first.BestFrames != 350 {
		t.Errorf("Expected best frames 350, got %d", first.BestFrames)
	}
	if stats[1].BestFrames != 0 {
		t.Errorf("Level never completed should have best frames 0, got %d", stats[1].BestFrames)
	}
}

func TestStoreLevelResultNeedsSession(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveLevelResult(LevelResult{LevelSet: "original", LevelNumber: 1}); err == nil {
		t.Error("Expected an error for a result without session id")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	session := NewSessionID()

	store.SaveScore(ScoreEntry{SessionID: session, LevelSet: "original", Score: 100})
	store.SaveLevelResult(LevelResult{SessionID: session, LevelSet: "original", LevelNumber: 1, Outcome: OutcomeCompleted})
	store.SaveScore(ScoreEntry{LevelSet: "custom", Score: 200})

	if err := store.ClearScores("original"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("original", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	results, _ := store.SessionResults(session)
	if len(results) != 0 {
		t.Errorf("Expected 0 level results after clear, got %d", len(results))
	}

	// Other sets should be unaffected
	custom, _ := store.TopScores("custom", 10)
	if len(custom) != 1 {
		t.Errorf("Expected custom scores to be unaffected, got %d", len(custom))
	}
}

func TestStoreBenchmarks(t *testing.T) {
	store := openTestStore(t)

	runID, err := store.SaveBenchmark(BenchmarkRun{
		LevelSet: "original",
		Frames:   3000,
		Duration: 2 * time.Second,
		Render:   true,
		Reloads:  5,
		Hash:     0xdeadbeefcafef00d,
	})
	if err != nil {
		t.Fatalf("SaveBenchmark() failed: %v", err)
	}
	if runID == "" {
		t.Fatal("Expected a generated run id")
	}
	if _, err := store.SaveBenchmark(BenchmarkRun{RunID: "fixed", LevelSet: "original", Frames: 10}); err != nil {
		t.Fatalf("SaveBenchmark() failed: %v", err)
	}

	runs, err := store.RecentBenchmarks(10)
	if err != nil {
		t.Fatalf("RecentBenchmarks() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].RunID != "fixed" {
		t.Errorf("Expected newest run first, got %q", runs[0].RunID)
	}

	r := runs[1]
	if r.RunID != runID || r.Frames != 3000 || !r.Render || r.Reloads != 5 {
		t.Errorf("Unexpected run: %+v", r)
	}
	if r.Duration != 2*time.Second {
		t.Errorf("Expected duration 2s, got %v", r.Duration)
	}
	if r.Hash != 0xdeadbeefcafef00d {
		t.Errorf("Expected hash to round-trip, got %x", r.Hash)
	}
	if r.FPS() != 1500 {
		t.Errorf("Expected 1500 fps, got %v", r.FPS())
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{LevelSet: "original", Score: 100})
	store.SaveScore(ScoreEntry{LevelSet: "original", Score: 300})
	store.SaveScore(ScoreEntry{LevelSet: "custom", Score: 50})

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 sets, got %d", len(stats))
	}
	// Ordered by set name
	orig := stats[1]
	if orig.LevelSet != "original" || orig.GamesCount != 2 || orig.HighScore != 300 || orig.AvgScore != 200 {
		t.Errorf("Unexpected stats: %+v", orig)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/nested/deep/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, "nested", "deep", "test.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under home")
	}
}
