package models

import "time"

const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

type Todo struct {
	ID        int64
	UserID    string
	Task      string
	Completed bool
	// DueDate is a calendar date without a time component.
	DueDate    *time.Time
	Priority   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Categories []Category
}
