package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskdeck/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrIdentityTaken      = errors.New("username or email already taken")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrUserNotFound       = errors.New("user not found")

	ErrTodoNotFound     = errors.New("todo not found")
	ErrCategoryNotFound = errors.New("category not found")

	ErrInvalidTask     = errors.New("task must be between 1 and 200 characters")
	ErrInvalidPriority = errors.New("priority must be 1 (low), 2 (medium) or 3 (high)")
	ErrInvalidDueDate  = errors.New("due date must be a YYYY-MM-DD calendar date")
	ErrInvalidName     = errors.New("name must be between 1 and 50 characters")
)

type AuthService interface {
	// Register creates a user with the given username, email and password.
	//
	// It stores only an argon2id hash of the password, creates a session
	// with the given fingerprint and returns a fresh JWT token pair.
	//
	// It returns ErrIdentityTaken if the username or the
	// email is already claimed by another user.
	Register(ctx context.Context, params RegisterParams) (*LoginResult, error)

	// Login authenticates the user by username and password.
	//
	// It deletes all sessions with the same user ID and creates
	// a new session and generates a new JWT token pair.
	//
	// It returns ErrInvalidCredentials both when no user with the given
	// username exists and when the password doesn't match, so a caller
	// can't probe which usernames are registered.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the
	// given refresh token doesn't exist or ErrSessionExpired
	// if the session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error

	// ParseJWTToken parses the given JWT token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

type UserService interface {
	// UpdateProfile changes the user's username and email, and rehashes
	// the password only when a new one is supplied. Uniqueness is
	// re-checked excluding the user's own row.
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.User, error)

	// DeleteAccount removes the user. Owned todos, categories and
	// sessions go with it.
	DeleteAccount(ctx context.Context, userID string) error
}

type TodoService interface {
	// ListTodos returns all todos owned by the user ordered by ID, each
	// with its category set attached. A non-empty search term narrows
	// the result to todos whose task text or any linked category name
	// contains the term, case-insensitively.
	ListTodos(ctx context.Context, userID, search string) ([]*models.Todo, error)

	// CreateTodo inserts a todo. Category IDs that don't resolve to an
	// existing category are dropped, not rejected.
	CreateTodo(ctx context.Context, params CreateTodoParams) (*models.Todo, error)

	// UpdateTodo applies a partial update. Task, Completed and Priority
	// keep their stored value when nil; DueDate is written as given on
	// every call, so a nil DueDate clears the stored date. A non-nil
	// CategoryIDs replaces the whole category set.
	UpdateTodo(ctx context.Context, params UpdateTodoParams) (*models.Todo, error)

	DeleteTodo(ctx context.Context, userID string, id int64) error
}

type CategoryService interface {
	ListCategories(ctx context.Context, userID string) ([]*models.Category, error)
	CreateCategory(ctx context.Context, userID, name string) (*models.Category, error)
	RenameCategory(ctx context.Context, userID string, id int64, name string) (*models.Category, error)

	// DeleteCategory removes the category and its links
	// to todos. The todos themselves are left alone.
	DeleteCategory(ctx context.Context, userID string, id int64) error
}

type RegisterParams struct {
	Username    string
	Email       string
	Password    string
	Fingerprint string
}

type LoginParams struct {
	Username    string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

type UpdateProfileParams struct {
	UserID   string
	Username string
	Email    string
	// Password is rehashed only when non-nil.
	Password *string
}

type CreateTodoParams struct {
	UserID      string
	Task        string
	DueDate     *time.Time
	Priority    *int
	CategoryIDs []int64
}

type UpdateTodoParams struct {
	UserID      string
	ID          int64
	Task        *string
	Completed   *bool
	Priority    *int
	DueDate     *time.Time
	CategoryIDs *[]int64
}
