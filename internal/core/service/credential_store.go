package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/martijn/jobtrack/internal/core/domain"
	"github.com/martijn/jobtrack/internal/core/repository"
	"github.com/martijn/jobtrack/internal/logger"
)

// CredentialStore owns user credentials and password reset tokens.
//
// Every method returns either nil or a *CredentialError. Multi-step writes
// run inside a single transaction so a failure never leaves partial state.
type CredentialStore struct {
	userRepo  repository.UserRepository
	tokenRepo repository.ResetTokenRepository
	tx        repository.Transactor
	now       func() time.Time
}

type StoreOption func(*CredentialStore)

// WithClock overrides the wall clock used for timestamps and token expiry.
func WithClock(now func() time.Time) StoreOption {
	return func(s *CredentialStore) {
		s.now = now
	}
}

func NewCredentialStore(
	userRepo repository.UserRepository,
	tokenRepo repository.ResetTokenRepository,
	tx repository.Transactor,
	opts ...StoreOption,
) *CredentialStore {
	s := &CredentialStore{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tx:        tx,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user account. Preconditions are checked in order and the
// first violation is reported: blank username, username taken, email taken,
// invalid email, weak password.
func (s *CredentialStore) Register(ctx context.Context, username, email, password string) error {
	if strings.TrimSpace(username) == "" {
		return ErrInvalidUsername
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		taken, err := s.userRepo.ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		taken, err = s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		if !IsValidEmail(email) {
			return ErrInvalidEmail
		}
		if !IsStrongPassword(password) {
			return ErrWeakPassword
		}

		hash, salt, err := HashNewPassword(password)
		if err != nil {
			return err
		}

		user := domain.NewUser(username, email, hash, salt, s.now())
		switch err := s.userRepo.Create(ctx, user); {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return ErrEmailTaken
		default:
			return err
		}
	})
	if err != nil {
		return s.fail("register", err, "username", username, "email", email)
	}

	logger.Log.Infow("user registered", "username", username, "email", email)
	return nil
}

// Verify checks password against the stored credential for email.
func (s *CredentialStore) Verify(ctx context.Context, email, password string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return s.fail("verify", err, "email", email)
	}

	if !PasswordMatches(password, user.Salt, user.PasswordHash) {
		logger.Log.Infow("password verification failed", "email", email)
		return ErrInvalidPassword
	}
	return nil
}

// InitiatePasswordReset issues a new reset token for email, replacing any
// token issued before. The returned token is meant for out-of-band delivery.
func (s *CredentialStore) InitiatePasswordReset(ctx context.Context, email string) (*domain.ResetToken, error) {
	var issued *domain.ResetToken

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		registered, err := s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if !registered {
			return ErrEmailNotRegistered
		}

		value, err := NewResetTokenValue()
		if err != nil {
			return err
		}

		if _, err := s.tokenRepo.DeleteByEmail(ctx, email); err != nil {
			return err
		}

		token := domain.NewResetToken(email, value, s.now())
		if err := s.tokenRepo.Create(ctx, token); err != nil {
			return err
		}
		issued = token
		return nil
	})
	if err != nil {
		return nil, s.fail("initiate password reset", err, "email", email)
	}

	logger.Log.Infow("password reset initiated", "email", email, "expires_at", issued.ExpiresAt)
	return issued, nil
}

// ResetPassword sets a new password using a token from InitiatePasswordReset.
// The password update and the token removal commit together or not at all.
func (s *CredentialStore) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		stored, err := s.tokenRepo.FindLatestByEmail(ctx, email)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredToken
		}
		if err != nil {
			return err
		}
		if !tokensEqual(stored.Token, token) || stored.IsExpired(s.now()) {
			return ErrInvalidOrExpiredToken
		}

		if !IsStrongPassword(newPassword) {
			return ErrWeakPassword
		}

		user, err := s.userRepo.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrNotFound) {
			// The account behind a live token is gone; treat the token as dead.
			return ErrInvalidOrExpiredToken
		}
		if err != nil {
			return err
		}

		if err := s.rotatePassword(ctx, user, newPassword); err != nil {
			return err
		}

		_, err = s.tokenRepo.DeleteByEmail(ctx, email)
		return err
	})
	if err != nil {
		return s.fail("reset password", err, "email", email)
	}

	logger.Log.Infow("password reset completed", "email", email)
	return nil
}

// ChangePassword replaces the password after verifying the current one.
// Verification errors are returned unchanged.
func (s *CredentialStore) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if err := s.Verify(ctx, email, currentPassword); err != nil {
		return err
	}

	if !IsStrongPassword(newPassword) {
		return ErrWeakPassword
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		return s.rotatePassword(ctx, user, newPassword)
	})
	if err != nil {
		return s.fail("change password", err, "email", email)
	}

	logger.Log.Infow("password changed", "email", email)
	return nil
}

// GetUser returns the account registered under email.
func (s *CredentialStore) GetUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, s.fail("get user", err, "email", email)
	}
	return user, nil
}

func (s *CredentialStore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, s.fail("list users", err)
	}
	return users, nil
}

// PurgeExpiredTokens removes lapsed reset tokens and returns how many were deleted.
func (s *CredentialStore) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.tokenRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, s.fail("purge expired tokens", err)
	}
	if n > 0 {
		logger.Log.Infow("expired reset tokens purged", "count", n)
	}
	return n, nil
}

func (s *CredentialStore) rotatePassword(ctx context.Context, user *domain.User, password string) error {
	hash, salt, err := HashNewPassword(password)
	if err != nil {
		return err
	}
	user.SetPassword(hash, salt)
	return s.userRepo.UpdatePassword(ctx, user)
}

// fail passes CredentialErrors through and wraps anything else as a storage failure.
func (s *CredentialStore) fail(op string, err error, keysAndValues ...interface{}) error {
	var credErr *CredentialError
	if errors.As(err, &credErr) {
		return credErr
	}

	logger.Log.Errorw("credential store operation failed",
		append([]interface{}{"op", op, "error", err}, keysAndValues...)...)
	return storageFailure(op, err)
}
