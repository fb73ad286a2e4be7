package repository

import (
	"context"
	"time"

	"github.com/martijn/jobtrack/internal/core/domain"
)

type ResetTokenRepository interface {
	Create(ctx context.Context, token *domain.ResetToken) error
	// FindLatestByEmail returns the most recently issued token for the email.
	FindLatestByEmail(ctx context.Context, email string) (*domain.ResetToken, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
