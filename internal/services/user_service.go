package services

import (
	"context"
	"errors"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"taskdeck/internal/models"
)

type userServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewUserService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) UserService {
	return &userServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.User, error) {
	user := models.User{
		ID:        params.UserID,
		Username:  params.Username,
		Email:     params.Email,
		UpdatedAt: time.Now(),
	}

	const selectIdentityTakenQuery = `
SELECT EXISTS (SELECT 1
               FROM users
               WHERE (username = $1 OR
                      email = $2) AND
                     id <> $3)
`
	var taken bool
	err := s.pgPool.QueryRow(
		ctx,
		selectIdentityTakenQuery,
		user.Username,
		user.Email,
		user.ID,
	).Scan(&taken)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to check username and email uniqueness")
		return nil, err
	}
	if taken {
		s.logger.Error().
			Str("user_id", user.ID).
			Str("username", user.Username).
			Msg("username or email already taken")
		return nil, ErrIdentityTaken
	}

	if params.Password != nil {
		passwordHash, err := argon2id.CreateHash(*params.Password, argon2id.DefaultParams)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to hash password")
			return nil, err
		}
		user.PasswordHash = passwordHash
	}

	const updateUserQuery = `
UPDATE users
SET username = $1,
    email = $2,
    password_hash = CASE WHEN $3 <> '' THEN $3 ELSE password_hash END,
    updated_at = $4
WHERE id = $5
RETURNING created_at
`
	err = s.pgPool.QueryRow(
		ctx,
		updateUserQuery,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.UpdatedAt,
		user.ID,
	).Scan(&user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("user_id", user.ID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.UniqueViolation {
				s.logger.Error().
					Str("user_id", user.ID).
					Msg("username or email already taken")
				return nil, ErrIdentityTaken
			}
		}

		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to update user")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("updated user")

	s.logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("updated profile")
	user.PasswordHash = ""
	return &user, nil
}

func (s *userServiceImpl) DeleteAccount(ctx context.Context, userID string) error {
	const deleteUserQuery = `
DELETE FROM users
WHERE id = $1
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteUserQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to delete user")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Str("user_id", userID).
			Msg("user not found")
		return ErrUserNotFound
	}

	// Todos, categories, sessions and join rows go with
	// the user via ON DELETE CASCADE.
	s.logger.Info().
		Str("user_id", userID).
		Msg("deleted account")
	return nil
}
