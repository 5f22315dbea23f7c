package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	rounds := []RoundRecord{
		{MapID: "default", Policy: "player", Survived: true, Ticks: 14, Reward: 234.8},
		{MapID: "default", Policy: "greedy", Survived: false, Ticks: 90, Reward: -105.2},
		{MapID: "cross", Policy: "greedy", Survived: true, Ticks: 120, Reward: 180.4},
	}
	for _, rec := range rounds {
		if _, err := store.SaveRound(rec); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	recent, err := store.RecentRounds(10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(recent))
	}

	// Newest first
	if recent[0].MapID != "cross" {
		t.Errorf("Expected newest round on cross, got %s", recent[0].MapID)
	}
	if recent[2].MapID != "default" || !recent[2].Survived {
		t.Errorf("Oldest round mangled: %+v", recent[2])
	}

	byMap, err := store.MapRounds("default")
	if err != nil {
		t.Fatalf("MapRounds() failed: %v", err)
	}
	if len(byMap) != 2 {
		t.Errorf("Expected 2 rounds on default, got %d", len(byMap))
	}
}

func TestStoreRecentRoundsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRound(RoundRecord{MapID: "default", Policy: "greedy", Ticks: i})
	}

	recent, err := store.RecentRounds(3)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected 3 rounds with limit, got %d", len(recent))
	}
	// Newest first: ticks 4, 3, 2
	if recent[0].Ticks != 4 || recent[2].Ticks != 2 {
		t.Errorf("Rounds not in expected order: %v", recent)
	}
}

func TestStoreBestReward(t *testing.T) {
	store := openTestStore(t)

	// No rounds yet
	best, err := store.BestReward("default")
	if err != nil {
		t.Fatalf("BestReward() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best reward 0 for empty map, got %v", best)
	}

	store.SaveRound(RoundRecord{MapID: "default", Policy: "player", Reward: 120.5})
	store.SaveRound(RoundRecord{MapID: "default", Policy: "player", Reward: 230.1})
	store.SaveRound(RoundRecord{MapID: "default", Policy: "player", Reward: -50})

	best, err = store.BestReward("default")
	if err != nil {
		t.Fatalf("BestReward() failed: %v", err)
	}
	if best != 230.1 {
		t.Errorf("Expected best reward 230.1, got %v", best)
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	store.SaveRound(RoundRecord{MapID: "default", Policy: "player"})
	store.SaveRound(RoundRecord{MapID: "default", Policy: "greedy"})
	store.SaveRound(RoundRecord{MapID: "cross", Policy: "greedy"})

	if err := store.ClearRounds("default"); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	defaultRounds, _ := store.MapRounds("default")
	if len(defaultRounds) != 0 {
		t.Errorf("Expected 0 default rounds after clear, got %d", len(defaultRounds))
	}

	crossRounds, _ := store.MapRounds("cross")
	if len(crossRounds) != 1 {
		t.Errorf("Cross rounds should not be affected by clearing default")
	}
}

func TestStoreMapStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRound(RoundRecord{MapID: "garden", Policy: "greedy", Survived: true, Ticks: 100, Reward: 200})
	store.SaveRound(RoundRecord{MapID: "garden", Policy: "greedy", Survived: false, Ticks: 50, Reward: -100})

	stats, err := store.GetMapStats("garden")
	if err != nil {
		t.Fatalf("GetMapStats() failed: %v", err)
	}
	if stats.Rounds != 2 || stats.Wins != 1 {
		t.Errorf("Expected 2 rounds / 1 win, got %d / %d", stats.Rounds, stats.Wins)
	}
	if stats.AvgTicks != 75 {
		t.Errorf("Expected avg ticks 75, got %v", stats.AvgTicks)
	}
	if stats.AvgReward != 50 || stats.BestReward != 200 {
		t.Errorf("Reward aggregates wrong: avg %v best %v", stats.AvgReward, stats.BestReward)
	}

	all, err := store.GetAllMapStats()
	if err != nil {
		t.Fatalf("GetAllMapStats() failed: %v", err)
	}
	if _, ok := all["garden"]; !ok {
		t.Error("garden missing from aggregated stats")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Nested directories are created on demand.
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
