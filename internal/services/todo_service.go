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

type todoServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTodoService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TodoService {
	return &todoServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so category
// lookups can run inside or outside a transaction.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func validTask(task string) bool {
	n := utf8.RuneCountInString(task)
	return n >= 1 && n <= 200
}

func validPriority(priority int) bool {
	return priority >= models.PriorityLow && priority <= models.PriorityHigh
}

func (s *todoServiceImpl) ListTodos(ctx context.Context, userID, search string) ([]*models.Todo, error) {
	query := `
SELECT id,
       task,
       completed,
       due_date,
       priority,
       created_at,
       updated_at
FROM todos
WHERE user_id = $1
`
	args := []any{userID}
	if search != "" {
		query += " AND " + todoSearchClause(2)
		args = append(args, search)
	}
	query += " ORDER BY id"

	rows, err := s.pgPool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select todos by user id")
		return nil, err
	}
	defer rows.Close()

	todos := make([]*models.Todo, 0)
	for rows.Next() {
		todo := &models.Todo{UserID: userID}
		err = rows.Scan(
			&todo.ID,
			&todo.Task,
			&todo.Completed,
			&todo.DueDate,
			&todo.Priority,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan todo")
			return nil, err
		}
		todos = append(todos, todo)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	err = s.attachCategories(ctx, s.pgPool, todos)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(todos)).
		Str("user_id", userID).
		Msg("selected todos by user id")

	return todos, nil
}

func (s *todoServiceImpl) CreateTodo(ctx context.Context, params CreateTodoParams) (*models.Todo, error) {
	if !validTask(params.Task) {
		return nil, ErrInvalidTask
	}

	now := time.Now()
	todo := &models.Todo{
		UserID:    params.UserID,
		Task:      params.Task,
		DueDate:   params.DueDate,
		Priority:  models.PriorityLow,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if params.Priority != nil {
		if !validPriority(*params.Priority) {
			return nil, ErrInvalidPriority
		}
		todo.Priority = *params.Priority
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertTodoQuery = `
INSERT INTO todos (user_id,
                   task,
                   due_date,
                   priority,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	err = tx.QueryRow(
		ctx,
		insertTodoQuery,
		todo.UserID,
		todo.Task,
		todo.DueDate,
		todo.Priority,
		todo.CreatedAt,
		todo.UpdatedAt,
	).Scan(&todo.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert todo")
		return nil, err
	}
	s.logger.Debug().
		Int64("todo_id", todo.ID).
		Msg("inserted todo")

	if len(params.CategoryIDs) > 0 {
		err = s.replaceCategorySet(ctx, tx, todo.ID, params.CategoryIDs)
		if err != nil {
			return nil, err
		}
	}

	err = s.attachCategories(ctx, tx, []*models.Todo{todo})
	if err != nil {
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}

	s.logger.Info().
		Int64("todo_id", todo.ID).
		Str("user_id", todo.UserID).
		Msg("created todo")
	return todo, nil
}

func (s *todoServiceImpl) UpdateTodo(ctx context.Context, params UpdateTodoParams) (*models.Todo, error) {
	if params.Task != nil && !validTask(*params.Task) {
		return nil, ErrInvalidTask
	}
	if params.Priority != nil && !validPriority(*params.Priority) {
		return nil, ErrInvalidPriority
	}

	todo := &models.Todo{
		ID:        params.ID,
		UserID:    params.UserID,
		UpdatedAt: time.Now(),
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// due_date is written as given on every update while the other
	// fields fall back to their stored value, so omitting it clears
	// the stored date.
	const updateTodoQuery = `
UPDATE todos
SET task = COALESCE($1, task),
    completed = COALESCE($2, completed),
    priority = COALESCE($3, priority),
    due_date = $4,
    updated_at = $5
WHERE id = $6 AND user_id = $7
RETURNING task, completed, due_date, priority, created_at
`
	err = tx.QueryRow(
		ctx,
		updateTodoQuery,
		params.Task,
		params.Completed,
		params.Priority,
		params.DueDate,
		todo.UpdatedAt,
		todo.ID,
		todo.UserID,
	).Scan(
		&todo.Task,
		&todo.Completed,
		&todo.DueDate,
		&todo.Priority,
		&todo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Int64("todo_id", todo.ID).
				Str("user_id", todo.UserID).
				Msg("todo not found")
			return nil, ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("todo_id", todo.ID).
			Msg("failed to update todo")
		return nil, err
	}

	if params.CategoryIDs != nil {
		const deleteCategorySetQuery = `
DELETE FROM todo_categories
WHERE todo_id = $1
`
		_, err = tx.Exec(ctx, deleteCategorySetQuery, todo.ID)
		if err != nil {
			s.logger.Error().
				Err(err).
				Int64("todo_id", todo.ID).
				Msg("failed to clear category set")
			return nil, err
		}

		if len(*params.CategoryIDs) > 0 {
			err = s.replaceCategorySet(ctx, tx, todo.ID, *params.CategoryIDs)
			if err != nil {
				return nil, err
			}
		}
	}

	err = s.attachCategories(ctx, tx, []*models.Todo{todo})
	if err != nil {
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}

	s.logger.Info().
		Int64("todo_id", todo.ID).
		Str("user_id", todo.UserID).
		Msg("updated todo")
	return todo, nil
}

func (s *todoServiceImpl) DeleteTodo(ctx context.Context, userID string, id int64) error {
	const deleteTodoQuery = `
DELETE FROM todos
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTodoQuery,
		id,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to delete todo")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Int64("todo_id", id).
			Str("user_id", userID).
			Msg("todo not found")
		return ErrTodoNotFound
	}

	s.logger.Info().
		Int64("todo_id", id).
		Str("user_id", userID).
		Msg("deleted todo")
	return nil
}

// replaceCategorySet links the todo to every category in categoryIDs that
// actually exists. IDs without a matching category row are dropped rather
// than rejected, and duplicates collapse into a single join row.
func (s *todoServiceImpl) replaceCategorySet(ctx context.Context, tx pgx.Tx, todoID int64, categoryIDs []int64) error {
	const insertCategorySetQuery = `
INSERT INTO todo_categories (todo_id, category_id)
SELECT $1, c.id
FROM categories c
WHERE c.id = ANY($2)
ON CONFLICT DO NOTHING
`
	tag, err := tx.Exec(
		ctx,
		insertCategorySetQuery,
		todoID,
		categoryIDs,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("todo_id", todoID).
			Msg("failed to insert category set")
		return err
	}
	s.logger.Debug().
		Int64("todo_id", todoID).
		Int64("attached", tag.RowsAffected()).
		Msg("replaced category set")

	return nil
}

func (s *todoServiceImpl) attachCategories(ctx context.Context, q pgxQuerier, todos []*models.Todo) error {
	if len(todos) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Todo, len(todos))
	todoIDs := make([]int64, 0, len(todos))
	for _, todo := range todos {
		todo.Categories = make([]models.Category, 0)
		byID[todo.ID] = todo
		todoIDs = append(todoIDs, todo.ID)
	}

	const selectCategorySetsQuery = `
SELECT tc.todo_id,
       c.id,
       c.user_id,
       c.name,
       c.created_at,
       c.updated_at
FROM todo_categories tc
     JOIN categories c ON c.id = tc.category_id
WHERE tc.todo_id = ANY($1)
ORDER BY tc.todo_id, c.id
`
	rows, err := q.Query(ctx, selectCategorySetsQuery, todoIDs)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select category sets")
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			todoID   int64
			category models.Category
		)
		err = rows.Scan(
			&todoID,
			&category.ID,
			&category.UserID,
			&category.Name,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan category")
			return err
		}

		todo := byID[todoID]
		todo.Categories = append(todo.Categories, category)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return err
	}
	return nil
}
