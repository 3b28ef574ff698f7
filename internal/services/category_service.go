package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"taskdeck/internal/models"
)

type categoryServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewCategoryService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) CategoryService {
	return &categoryServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func validCategoryName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 1 && n <= 50
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context, userID string) ([]*models.Category, error) {
	const selectCategoriesByUserIDQuery = `
SELECT id,
       name,
       created_at,
       updated_at
FROM categories
WHERE user_id = $1
ORDER BY id
`
	rows, err := s.pgPool.Query(
		ctx,
		selectCategoriesByUserIDQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select categories by user id")
		return nil, err
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		category := &models.Category{UserID: userID}
		err = rows.Scan(
			&category.ID,
			&category.Name,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan category")
			return nil, err
		}
		categories = append(categories, category)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(categories)).
		Str("user_id", userID).
		Msg("selected categories by user id")

	return categories, nil
}

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, userID, name string) (*models.Category, error) {
	if !validCategoryName(name) {
		return nil, ErrInvalidName
	}

	now := time.Now()
	category := &models.Category{
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	const insertCategoryQuery = `
INSERT INTO categories (user_id,
                        name,
                        created_at,
                        updated_at)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	err := s.pgPool.QueryRow(
		ctx,
		insertCategoryQuery,
		category.UserID,
		category.Name,
		category.CreatedAt,
		category.UpdatedAt,
	).Scan(&category.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert category")
		return nil, err
	}

	s.logger.Info().
		Int64("category_id", category.ID).
		Str("user_id", userID).
		Msg("created category")
	return category, nil
}

func (s *categoryServiceImpl) RenameCategory(ctx context.Context, userID string, id int64, name string) (*models.Category, error) {
	if !validCategoryName(name) {
		return nil, ErrInvalidName
	}

	category := &models.Category{
		ID:        id,
		UserID:    userID,
		Name:      name,
		UpdatedAt: time.Now(),
	}

	const updateCategoryQuery = `
UPDATE categories
SET name = $1,
    updated_at = $2
WHERE id = $3 AND user_id = $4
RETURNING created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateCategoryQuery,
		category.Name,
		category.UpdatedAt,
		category.ID,
		category.UserID,
	).Scan(&category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Int64("category_id", category.ID).
				Str("user_id", userID).
				Msg("category not found")
			return nil, ErrCategoryNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("category_id", category.ID).
			Msg("failed to update category")
		return nil, err
	}

	s.logger.Info().
		Int64("category_id", category.ID).
		Str("user_id", userID).
		Msg("renamed category")
	return category, nil
}

func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, userID string, id int64) error {
	// Join rows referencing the category cascade away with it;
	// the linked todos are untouched.
	const deleteCategoryQuery = `
DELETE FROM categories
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteCategoryQuery,
		id,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("category_id", id).
			Msg("failed to delete category")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Int64("category_id", id).
			Str("user_id", userID).
			Msg("category not found")
		return ErrCategoryNotFound
	}

	s.logger.Info().
		Int64("category_id", id).
		Str("user_id", userID).
		Msg("deleted category")
	return nil
}
