package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/service/auth"
	"github.com/taskwell/taskwell-api/internal/store"
)

// UserService provides the user directory operations: registration,
// authentication, and email/password changes.
type UserService interface {
	// Register creates a new account. The password must satisfy the policy
	// (domain.ValidatePassword); violations return domain.ErrWeakPassword.
	// A taken email returns store.ErrEmailExists.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate verifies credentials. An unknown email returns
	// store.ErrUserNotFound; a known email with a wrong password returns
	// ErrIncorrectPassword. Existence is checked before the password so the
	// two failures stay distinguishable to the caller.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ChangeEmail updates the user's email address. An email owned by
	// another user returns store.ErrEmailExists.
	ChangeEmail(ctx context.Context, userID uuid.UUID, newEmail string) (*domain.User, error)

	// ChangePassword replaces the stored hash after verifying the old
	// password. A wrong old password returns ErrIncorrectPassword; a weak
	// new one returns domain.ErrWeakPassword.
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	db        *sql.DB
	logger    *slog.Logger

	// runTx executes a function inside one transaction. Injectable for
	// testing; defaults to store.RunInTransaction.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	db *sql.DB,
	log *slog.Logger,
) *UserServiceImpl {
	if log == nil {
		log = slog.Default()
	}

	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		db:        db,
		logger:    log.With(slog.String("component", "user_service")),
		runTx:     store.RunInTransaction,
	}
}

// Register creates a new account with a hashed password.
func (s *UserServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if err := domain.ValidatePassword(password); err != nil {
		s.logger.Debug("registration rejected by password policy")
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(email, hashed)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		// Fast-path duplicate check. The unique index remains the
		// authoritative guard: a race between two registrations still
		// surfaces as ErrEmailExists from Create.
		if _, err := txStore.GetByEmail(ctx, email); err == nil {
			return store.ErrEmailExists
		} else if !errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("failed to check for existing email: %w", err)
		}

		return txStore.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("registration with already-registered email")
		} else {
			s.logger.Error("failed to register user", "error", err)
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate verifies an email/password pair.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("authentication for unknown email")
			return nil, err
		}
		s.logger.Error("failed to look up user for authentication", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("authentication with wrong password", "user_id", user.ID)
		return nil, ErrIncorrectPassword
	}

	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}

	return user, nil
}

// ChangeEmail updates a user's email address inside one transaction.
func (s *UserServiceImpl) ChangeEmail(ctx context.Context, userID uuid.UUID, newEmail string) (*domain.User, error) {
	var user *domain.User

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		current, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		current.Email = newEmail
		if err := txStore.Update(ctx, current); err != nil {
			return err
		}

		user = current
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("email change to already-registered address",
				"user_id", userID)
		} else {
			s.logger.Error("failed to change email",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}

	s.logger.Info("user email changed", "user_id", userID)
	return user, nil
}

// ChangePassword verifies the old password and stores a hash of the new one
// inside one transaction.
func (s *UserServiceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if err := s.verifier.Compare(user.HashedPassword, oldPassword); err != nil {
			return ErrIncorrectPassword
		}

		if err := domain.ValidatePassword(newPassword); err != nil {
			return err
		}

		hashed, err := s.hasher.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user.HashedPassword = hashed
		return txStore.Update(ctx, user)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrIncorrectPassword):
			s.logger.Debug("password change with wrong old password",
				"user_id", userID)
		case errors.Is(err, domain.ErrWeakPassword):
			s.logger.Debug("password change rejected by password policy",
				"user_id", userID)
		default:
			s.logger.Error("failed to change password",
				"error", err,
				"user_id", userID)
		}
		return err
	}

	s.logger.Info("user password changed", "user_id", userID)
	return nil
}
