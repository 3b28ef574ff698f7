package services

import (
	"fmt"
	"time"
)

// todoSearchClause returns a SQL predicate matching todos whose task text
// contains the search term or that are linked to a category whose name
// contains it, both case-insensitively. The term is bound to a single
// placeholder numbered argIdx; the clause expects to run in a query where
// the todos table is in scope.
func todoSearchClause(argIdx int) string {
	return fmt.Sprintf(`(todos.task ILIKE '%%' || $%d || '%%' OR
       EXISTS (SELECT 1
               FROM todo_categories tc
                    JOIN categories c ON c.id = tc.category_id
               WHERE tc.todo_id = todos.id AND
                     c.name ILIKE '%%' || $%d || '%%'))`, argIdx, argIdx)
}

// ParseDueDate parses an ISO calendar date (YYYY-MM-DD) into a UTC
// midnight time.Time. It returns ErrInvalidDueDate on anything else,
// including dates carrying a time component.
func ParseDueDate(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, ErrInvalidDueDate
	}
	return t, nil
}

// FormatDueDate renders a stored due date back as YYYY-MM-DD.
func FormatDueDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
