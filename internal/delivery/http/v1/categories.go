package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/services"
)

func (h *handlerImpl) HandleGetCategories(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	categories, err := h.categories.ListCategories(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list categories")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	response := make([]categoryResponse, len(categories))
	for i, category := range categories {
		response[i] = categoryResponse{
			ID:   category.ID,
			Name: category.Name,
		}
	}

	c.JSON(http.StatusOK, response)
}

type categoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

func (h *handlerImpl) HandleCreateCategory(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req categoryRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	category, err := h.categories.CreateCategory(c, userID, req.Name)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create category")
		abortCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, categoryResponse{
		ID:   category.ID,
		Name: category.Name,
	})
}

func (h *handlerImpl) HandleRenameCategory(c *gin.Context) {
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

	var req categoryRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	category, err := h.categories.RenameCategory(c, userID, id, req.Name)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("category_id", id).
			Msg("failed to rename category")
		abortCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryResponse{
		ID:   category.ID,
		Name: category.Name,
	})
}

func (h *handlerImpl) HandleDeleteCategory(c *gin.Context) {
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

	err := h.categories.DeleteCategory(c, userID, id)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("category_id", id).
			Msg("failed to delete category")
		abortCategoryError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func abortCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		abort(c, newNotFoundError(services.ErrCategoryNotFound.Error()))
	case errors.Is(err, services.ErrInvalidName):
		abort(c, newBadRequestError(services.ErrInvalidName.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
