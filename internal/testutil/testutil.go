// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"pickmycollege/internal/db"
	"pickmycollege/internal/models"
)

// TestDB creates a test database connection and returns a cleanup function.
// Skips the calling test when TEST_DATABASE_URL is not set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		cleanupTestData(ctx, database)
		database.Close()
	}

	// Clean before test as well, in case a prior run crashed.
	cleanupTestData(ctx, database)

	return database, cleanup
}

func cleanupTestData(ctx context.Context, database *db.DB) {
	database.Pool.Exec(ctx, "DELETE FROM weighted_cutoffs")
	database.Pool.Exec(ctx, "DELETE FROM college_rankings")
	database.Pool.Exec(ctx, "DELETE FROM api_key_state")
	database.Pool.Exec(ctx, "DELETE FROM analytics_counters")
}

// SeedCutoff inserts one weighted cutoff row.
func SeedCutoff(t *testing.T, database *db.DB, rec models.CutoffRecord) {
	t.Helper()
	ctx := context.Background()

	history, err := json.Marshal(rec.CutoffHistory)
	if err != nil {
		t.Fatalf("failed to encode cutoff history: %v", err)
	}

	_, err = database.Pool.Exec(ctx, `
		INSERT INTO weighted_cutoffs
			(category, college_code, college_name, branch_code, branch_name,
			 location, weighted_avg_cutoff, latest_cutoff, cutoff_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (category, college_code, branch_code) DO UPDATE
		SET weighted_avg_cutoff = EXCLUDED.weighted_avg_cutoff
	`, rec.Category, rec.CollegeCode, rec.CollegeName, rec.BranchCode,
		rec.BranchName, rec.Location, rec.WeightedAvgCutoff, rec.LatestCutoff, history)
	if err != nil {
		t.Fatalf("failed to seed cutoff row: %v", err)
	}
}

// SeedCollegeRank inserts one NIRF ranking row.
func SeedCollegeRank(t *testing.T, database *db.DB, code string, rank int) {
	t.Helper()

	_, err := database.Pool.Exec(context.Background(), `
		INSERT INTO college_rankings (college_code, rank)
		VALUES ($1, $2)
		ON CONFLICT (college_code) DO UPDATE SET rank = EXCLUDED.rank
	`, code, rank)
	if err != nil {
		t.Fatalf("failed to seed college rank: %v", err)
	}
}

// MemoryStore is an in-memory cache.Store for tests.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailReads / FailWrites force store errors when set.
	FailReads  error
	FailWrites error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns the stored value, or (nil, nil) on a missing key.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	return s.data[key], nil
}

// Set stores a value. The expiry is ignored; tests exercise routing, not
// retention.
func (s *MemoryStore) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	s.data[key] = cp
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
