package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/models"
	"taskdeck/internal/services"
)

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type todoResponse struct {
	ID         int64              `json:"id"`
	Task       string             `json:"task"`
	Completed  bool               `json:"completed"`
	DueDate    *string            `json:"due_date"`
	Priority   int                `json:"priority"`
	Categories []categoryResponse `json:"categories"`
}

func newTodoResponse(todo *models.Todo) todoResponse {
	resp := todoResponse{
		ID:         todo.ID,
		Task:       todo.Task,
		Completed:  todo.Completed,
		Priority:   todo.Priority,
		Categories: make([]categoryResponse, len(todo.Categories)),
	}
	if todo.DueDate != nil {
		dueDate := services.FormatDueDate(*todo.DueDate)
		resp.DueDate = &dueDate
	}
	for i, category := range todo.Categories {
		resp.Categories[i] = categoryResponse{
			ID:   category.ID,
			Name: category.Name,
		}
	}
	return resp
}

func (h *handlerImpl) HandleGetTodos(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	todos, err := h.todos.ListTodos(c, userID, c.Query("search"))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list todos")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	response := make([]todoResponse, len(todos))
	for i, todo := range todos {
		response[i] = newTodoResponse(todo)
	}

	c.JSON(http.StatusOK, response)
}

type createTodoRequest struct {
	Task        string  `json:"task" binding:"required,max=200"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
	CategoryIDs []int64 `json:"category_ids,omitempty"`
}

func (h *handlerImpl) HandleCreateTodo(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req createTodoRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	dueDate, ok := h.parseDueDate(c, req.DueDate)
	if !ok {
		return
	}

	todo, err := h.todos.CreateTodo(c, services.CreateTodoParams{
		UserID:      userID,
		Task:        req.Task,
		DueDate:     dueDate,
		Priority:    req.Priority,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create todo")
		abortTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTodoResponse(todo))
}

type updateTodoRequest struct {
	Task        *string  `json:"task,omitempty"`
	Completed   *bool    `json:"completed,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	CategoryIDs *[]int64 `json:"category_ids,omitempty"`
}

func (h *handlerImpl) HandleUpdateTodo(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateTodoRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	dueDate, ok := h.parseDueDate(c, req.DueDate)
	if !ok {
		return
	}

	todo, err := h.todos.UpdateTodo(c, services.UpdateTodoParams{
		UserID:      userID,
		ID:          id,
		Task:        req.Task,
		Completed:   req.Completed,
		Priority:    req.Priority,
		DueDate:     dueDate,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to update todo")
		abortTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

func (h *handlerImpl) HandleDeleteTodo(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.todos.DeleteTodo(c, userID, id)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("todo_id", id).
			Msg("failed to delete todo")
		abortTodoError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) parseDueDate(c *gin.Context, value *string) (*time.Time, bool) {
	if value == nil {
		return nil, true
	}

	dueDate, err := services.ParseDueDate(*value)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("due_date", *value).
			Msg("failed to parse due date")
		abort(c, newBadRequestError(services.ErrInvalidDueDate.Error()))
		return nil, false
	}
	return &dueDate, true
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abort(c, newBadRequestError(errInvalidResourceID.Error()))
		return 0, false
	}
	return id, true
}

func abortTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTodoNotFound):
		abort(c, newNotFoundError(services.ErrTodoNotFound.Error()))
	case errors.Is(err, services.ErrInvalidTask):
		abort(c, newBadRequestError(services.ErrInvalidTask.Error()))
	case errors.Is(err, services.ErrInvalidPriority):
		abort(c, newBadRequestError(services.ErrInvalidPriority.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
