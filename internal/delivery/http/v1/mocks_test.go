package v1

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"taskdeck/internal/models"
	"taskdeck/internal/services"
)

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, params services.RegisterParams) (*services.LoginResult, error) {
	args := m.Called(ctx, params)

	var result *services.LoginResult
	if value := args.Get(0); value != nil {
		result = value.(*services.LoginResult)
	}
	return result, args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, params services.LoginParams) (*services.LoginResult, error) {
	args := m.Called(ctx, params)

	var result *services.LoginResult
	if value := args.Get(0); value != nil {
		result = value.(*services.LoginResult)
	}
	return result, args.Error(1)
}

func (m *authServiceMock) Refresh(ctx context.Context, params services.RefreshParams) (*services.LoginResult, error) {
	args := m.Called(ctx, params)

	var result *services.LoginResult
	if value := args.Get(0); value != nil {
		result = value.(*services.LoginResult)
	}
	return result, args.Error(1)
}

func (m *authServiceMock) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *authServiceMock) ParseJWTToken(token string) (*jwt.RegisteredClaims, error) {
	args := m.Called(token)

	var claims *jwt.RegisteredClaims
	if value := args.Get(0); value != nil {
		claims = value.(*jwt.RegisteredClaims)
	}
	return claims, args.Error(1)
}

type sessionServiceMock struct {
	mock.Mock
}

func (m *sessionServiceMock) GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)

	var session *models.Session
	if value := args.Get(0); value != nil {
		session = value.(*models.Session)
	}
	return session, args.Error(1)
}

type userServiceMock struct {
	mock.Mock
}

func (m *userServiceMock) UpdateProfile(ctx context.Context, params services.UpdateProfileParams) (*models.User, error) {
	args := m.Called(ctx, params)

	var user *models.User
	if value := args.Get(0); value != nil {
		user = value.(*models.User)
	}
	return user, args.Error(1)
}

func (m *userServiceMock) DeleteAccount(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type todoServiceMock struct {
	mock.Mock
}

func (m *todoServiceMock) ListTodos(ctx context.Context, userID, search string) ([]*models.Todo, error) {
	args := m.Called(ctx, userID, search)

	var todos []*models.Todo
	if value := args.Get(0); value != nil {
		todos = value.([]*models.Todo)
	}
	return todos, args.Error(1)
}

func (m *todoServiceMock) CreateTodo(ctx context.Context, params services.CreateTodoParams) (*models.Todo, error) {
	args := m.Called(ctx, params)

	var todo *models.Todo
	if value := args.Get(0); value != nil {
		todo = value.(*models.Todo)
	}
	return todo, args.Error(1)
}

func (m *todoServiceMock) UpdateTodo(ctx context.Context, params services.UpdateTodoParams) (*models.Todo, error) {
	args := m.Called(ctx, params)

	var todo *models.Todo
	if value := args.Get(0); value != nil {
		todo = value.(*models.Todo)
	}
	return todo, args.Error(1)
}

func (m *todoServiceMock) DeleteTodo(ctx context.Context, userID string, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type categoryServiceMock struct {
	mock.Mock
}

func (m *categoryServiceMock) ListCategories(ctx context.Context, userID string) ([]*models.Category, error) {
	args := m.Called(ctx, userID)

	var categories []*models.Category
	if value := args.Get(0); value != nil {
		categories = value.([]*models.Category)
	}
	return categories, args.Error(1)
}

func (m *categoryServiceMock) CreateCategory(ctx context.Context, userID, name string) (*models.Category, error) {
	args := m.Called(ctx, userID, name)

	var category *models.Category
	if value := args.Get(0); value != nil {
		category = value.(*models.Category)
	}
	return category, args.Error(1)
}

func (m *categoryServiceMock) RenameCategory(ctx context.Context, userID string, id int64, name string) (*models.Category, error) {
	args := m.Called(ctx, userID, id, name)

	var category *models.Category
	if value := args.Get(0); value != nil {
		category = value.(*models.Category)
	}
	return category, args.Error(1)
}

func (m *categoryServiceMock) DeleteCategory(ctx context.Context, userID string, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
