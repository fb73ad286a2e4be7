package sqlite

import (
	"testing"
	"time"

	"github.com/martijn/jobtrack/internal/core/domain"
)

// newTestDB opens a migrated in-memory database that is closed with the test.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var baseTime = time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)

func testUser(username, email string) *domain.User {
	return domain.NewUser(username, email, []byte("hash-"+username), []byte("salt-"+username), baseTime)
}
