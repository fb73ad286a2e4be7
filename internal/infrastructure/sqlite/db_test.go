package sqlite

import (
	"context"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppliesMigrations(t *testing.T) {
	db := newTestDB(t)

	var version int64
	require.NoError(t, db.Get(&version, `SELECT MAX(version_id) FROM goose_db_version`))
	assert.Equal(t, int64(2), version)
}

func TestNew_ConcurrentOpen(t *testing.T) {
	const n = 8

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db, err := New(":memory:")
			if err != nil {
				errs <- err
				return
			}
			defer db.Close()

			_, err = NewUserRepository(db).ExistsByEmail(context.Background(), "a@x.com")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestMigrate_BrokenMigrationReturnsError(t *testing.T) {
	conn, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetMaxOpenConns(1)

	fsys := fstest.MapFS{
		"00001_broken.sql": &fstest.MapFile{Data: []byte("-- +goose Up\nCREATE TABLEX nope;\n")},
	}

	err = migrate(context.Background(), conn.DB, fsys)
	assert.ErrorContains(t, err, "failed to apply migrations")
}
