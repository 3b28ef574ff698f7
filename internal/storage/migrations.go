package storage

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/01_create_users.up.sql
var createUsersUp string

//go:embed migrations/02_create_sessions.up.sql
var createSessionsUp string

//go:embed migrations/03_create_categories.up.sql
var createCategoriesUp string

//go:embed migrations/04_create_todos.up.sql
var createTodosUp string

//go:embed migrations/05_create_todo_categories.up.sql
var createTodoCategoriesUp string

// Migrate applies the schema in dependency order. Every statement
// is idempotent, so re-running on an existing database is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []struct {
		name string
		sql  string
	}{
		{"create_users", createUsersUp},
		{"create_sessions", createSessionsUp},
		{"create_categories", createCategoriesUp},
		{"create_todos", createTodosUp},
		{"create_todo_categories", createTodoCategoriesUp},
	}

	for _, m := range migrations {
		_, err := pool.Exec(ctx, m.sql)
		if err != nil {
			return fmt.Errorf("apply %s migration: %w", m.name, err)
		}
	}
	return nil
}
