package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/martijn/jobtrack/internal/core/domain"
	"github.com/martijn/jobtrack/internal/core/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTokenRepository_FindLatestByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewResetTokenRepository(db)
	ctx := context.Background()

	_, err := repo.FindLatestByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Create(ctx, domain.NewResetToken("a@x.com", "first", baseTime)))
	require.NoError(t, repo.Create(ctx, domain.NewResetToken("a@x.com", "second", baseTime)))
	require.NoError(t, repo.Create(ctx, domain.NewResetToken("b@x.com", "other", baseTime)))

	token, err := repo.FindLatestByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "second", token.Token)
	assert.True(t, token.CreatedAt.Equal(baseTime))
	assert.True(t, token.ExpiresAt.Equal(baseTime.Add(time.Hour)))
}

func TestResetTokenRepository_DeleteByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewResetTokenRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, domain.NewResetToken("a@x.com", "first", baseTime)))
	require.NoError(t, repo.Create(ctx, domain.NewResetToken("a@x.com", "second", baseTime)))
	require.NoError(t, repo.Create(ctx, domain.NewResetToken("b@x.com", "other", baseTime)))

	n, err := repo.DeleteByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repo.FindLatestByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.FindLatestByEmail(ctx, "b@x.com")
	assert.NoError(t, err)

	n, err = repo.DeleteByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestResetTokenRepository_DeleteExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewResetTokenRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, domain.NewResetToken("old@x.com", "old", baseTime)))
	require.NoError(t, repo.Create(ctx, domain.NewResetToken("edge@x.com", "edge", baseTime.Add(30*time.Minute))))
	require.NoError(t, repo.Create(ctx, domain.NewResetToken("new@x.com", "new", baseTime.Add(45*time.Minute))))

	// edge expires exactly now and is still usable, so it stays.
	n, err := repo.DeleteExpired(ctx, baseTime.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindLatestByEmail(ctx, "old@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.FindLatestByEmail(ctx, "edge@x.com")
	assert.NoError(t, err)
	_, err = repo.FindLatestByEmail(ctx, "new@x.com")
	assert.NoError(t, err)
}
