package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/martijn/jobtrack/internal/core/domain"
	"github.com/martijn/jobtrack/internal/core/repository"
)

type resetTokenRepository struct {
	db *DB
}

func NewResetTokenRepository(db *DB) repository.ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

func (r *resetTokenRepository) Create(ctx context.Context, token *domain.ResetToken) error {
	query := `
		INSERT INTO password_resets (email, token, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := r.db.ext(ctx).ExecContext(ctx, query,
		token.Email,
		token.Token,
		token.CreatedAt,
		token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get reset token id: %w", err)
	}
	token.ID = id
	return nil
}

func (r *resetTokenRepository) FindLatestByEmail(ctx context.Context, email string) (*domain.ResetToken, error) {
	query := `
		SELECT id, email, token, created_at, expires_at
		FROM password_resets
		WHERE email = ?
		ORDER BY id DESC
		LIMIT 1
	`
	var token domain.ResetToken
	err := sqlx.GetContext(ctx, r.db.ext(ctx), &token, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reset token for %s: %w", email, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}
	return &token, nil
}

func (r *resetTokenRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	result, err := r.db.ext(ctx).ExecContext(ctx, `DELETE FROM password_resets WHERE email = ?`, email)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reset tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *resetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ext(ctx).ExecContext(ctx, `DELETE FROM password_resets WHERE expires_at < ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}
