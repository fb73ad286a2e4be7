package domain

import "time"

// ResetTokenLifetime is how long an issued password reset token stays usable.
const ResetTokenLifetime = time.Hour

type ResetToken struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Token     string    `db:"token"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func NewResetToken(email, token string, now time.Time) *ResetToken {
	now = now.UTC()
	return &ResetToken{
		Email:     email,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(ResetTokenLifetime),
	}
}

// IsExpired reports whether the token has lapsed at the given instant.
// A token is still valid at exactly its expiry time.
func (t *ResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
