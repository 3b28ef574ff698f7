package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/models"
	"taskdeck/internal/services"
)

func TestHandleGetTodos_ForwardsSearchTerm(t *testing.T) {
	dueDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	todosMock := new(todoServiceMock)
	todosMock.On("ListTodos", mock.Anything, testUserID, "groceries").Return(
		[]*models.Todo{
			{
				ID:        1,
				UserID:    testUserID,
				Task:      "Buy groceries",
				Completed: false,
				DueDate:   &dueDate,
				Priority:  2,
				Categories: []models.Category{
					{ID: 7, Name: "Errands"},
				},
			},
		},
		nil,
	).Once()
	handler := newTestHandler(nil, nil, nil, todosMock, nil)

	router := gin.New()
	router.GET("/api/v1/todos", identifyTestUser, handler.HandleGetTodos)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos?search=groceries", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []todoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, "Buy groceries", got[0].Task)
	require.False(t, got[0].Completed)
	require.NotNil(t, got[0].DueDate)
	require.Equal(t, "2024-03-01", *got[0].DueDate)
	require.Equal(t, 2, got[0].Priority)
	require.Len(t, got[0].Categories, 1)
	require.Equal(t, int64(7), got[0].Categories[0].ID)
	require.Equal(t, "Errands", got[0].Categories[0].Name)

	todosMock.AssertExpectations(t)
}

func TestHandleGetTodos_EmptyIsArray(t *testing.T) {
	todosMock := new(todoServiceMock)
	todosMock.On("ListTodos", mock.Anything, testUserID, "").Return(
		[]*models.Todo{}, nil,
	).Once()
	handler := newTestHandler(nil, nil, nil, todosMock, nil)

	router := gin.New()
	router.GET("/api/v1/todos", identifyTestUser, handler.HandleGetTodos)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestHandleCreateTodo_ParsesDueDateAndPriority(t *testing.T) {
	dueDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	todosMock := new(todoServiceMock)
	todosMock.On("CreateTodo", mock.Anything, mock.MatchedBy(func(params services.CreateTodoParams) bool {
		return params.UserID == testUserID &&
			params.Task == "Buy groceries" &&
			params.DueDate != nil && params.DueDate.Equal(dueDate) &&
			params.Priority != nil && *params.Priority == 3 &&
			len(params.CategoryIDs) == 2
	})).Return(
		&models.Todo{
			ID:         42,
			UserID:     testUserID,
			Task:       "Buy groceries",
			DueDate:    &dueDate,
			Priority:   3,
			Categories: []models.Category{{ID: 5, Name: "Groceries"}},
		},
		nil,
	).Once()
	handler := newTestHandler(nil, nil, nil, todosMock, nil)

	router := gin.New()
	router.POST("/api/v1/todos", identifyTestUser, handler.HandleCreateTodo)

	body := `{"task":"Buy groceries","due_date":"2024-03-01","priority":3,"category_ids":[5,9]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/todos", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got todoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, int64(42), got.ID)
	require.Equal(t, "2024-03-01", *got.DueDate)

	todosMock.AssertExpectations(t)
}

func TestHandleCreateTodo_MalformedDueDate(t *testing.T) {
	todosMock := new(todoServiceMock)
	handler := newTestHandler(nil, nil, nil, todosMock, nil)

	router := gin.New()
	router.POST("/api/v1/todos", identifyTestUser, handler.HandleCreateTodo)

	body := `{"task":"Buy groceries","due_date":"03/01/2024"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/todos", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	todosMock.AssertNotCalled(t, "CreateTodo", mock.Anything, mock.Anything)
}

func TestHandleCreateTodo_OutOfRangePriority(t *testing.T) {
	todosMock := new(todoServiceMock)
	todosMock.On("CreateTodo", mock.Anything, mock.Anything).Return(
		nil, services.ErrInvalidPriority,
	).Once()
	handler := newTestHandler(nil, nil, nil, todosMock, nil)

	router := gin.New()
	router.POST("/api/v1/todos", identifyTestUser, handler.HandleCreateTodo)

	body := `{"task":"Buy groceries","priority":4}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/todos", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	todosMock.AssertExpectations(t)
}

func TestHandleUpdateTodo_CompletedOnlyLeavesOtherFieldsNil(t *testing.T) {
	todosMock := new(todoServiceMock)
	todosMock.On("UpdateTodo", mock.Anything, mock.MatchedBy(func(params services.UpdateTodoParams) bool {
		return params.UserID == testUserID &&
			params.ID == 42 &&
			params.Completed != nil && *params.Completed &&
			params.Task == nil &&
			params.Priority == nil &&
			params.DueDate == nil &&
			params.CategoryIDs == nil
	})).Return(
		&models.Todo{
			ID:         42,
			UserID:     testUserID,
			Task:       "Buy groceries",
			Completed:  true,
			Priority:   1,
			Categories: []models.Category{},
		},
		nil,
	).Once()
	handler := newTestHandler(nil, nil, nil, todosMock, nil)

	router := gin.New()
	router.PUT("/api/v1/todos/:id", identifyTestUser, handler.HandleUpdateTodo)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/todos/42", strings.NewReader(`{"completed":true}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got todoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Completed)
	require.Nil(t, got.DueDate)

	todosMock.AssertExpectations(t)
}

func TestHandleUpdateTodo_ReplacesCategorySet(t *testing.T) {
	todosMock := new(todoServiceMock)
	todosMock.On("UpdateTodo", mock.Anything, mock.MatchedBy(func(params services.UpdateTodoParams) bool {
		return params.CategoryIDs != nil && len(*params.CategoryIDs) == 0
	})).Return(
		&models.Todo{ID: 42, UserID: testUserID, Task: "Buy groceries", Priority: 1, Categories: []models.Category{}},
		nil,
	).Once()
	handler := newTestHandler(nil, nil, nil, todosMock, nil)

	router := gin.New()
	router.PUT("/api/v1/todos/:id", identifyTestUser, handler.HandleUpdateTodo)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/todos/42", strings.NewReader(`{"category_ids":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	todosMock.AssertExpectations(t)
}

func TestHandleUpdateTodo_NotFound(t *testing.T) {
	todosMock := new(todoServiceMock)
	todosMock.On("UpdateTodo", mock.Anything, mock.Anything).Return(
		nil, services.ErrTodoNotFound,
	).Once()
	handler := newTestHandler(nil, nil, nil, todosMock, nil)

	router := gin.New()
	router.PUT("/api/v1/todos/:id", identifyTestUser, handler.HandleUpdateTodo)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/todos/999", strings.NewReader(`{"completed":true}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	todosMock.AssertExpectations(t)
}

func TestHandleDeleteTodo(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "deleted", serviceErr: nil, wantStatus: http.StatusNoContent},
		{name: "not found", serviceErr: services.ErrTodoNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todosMock := new(todoServiceMock)
			todosMock.On("DeleteTodo", mock.Anything, testUserID, int64(42)).Return(tt.serviceErr).Once()
			handler := newTestHandler(nil, nil, nil, todosMock, nil)

			router := gin.New()
			router.DELETE("/api/v1/todos/:id", identifyTestUser, handler.HandleDeleteTodo)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/todos/42", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			todosMock.AssertExpectations(t)
		})
	}
}

func TestHandleDeleteTodo_BadID(t *testing.T) {
	todosMock := new(todoServiceMock)
	handler := newTestHandler(nil, nil, nil, todosMock, nil)

	router := gin.New()
	router.DELETE("/api/v1/todos/:id", identifyTestUser, handler.HandleDeleteTodo)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/todos/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	todosMock.AssertNotCalled(t, "DeleteTodo", mock.Anything, mock.Anything, mock.Anything)
}
