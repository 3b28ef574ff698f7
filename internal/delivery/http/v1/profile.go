package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/services"
)

type updateProfileRequest struct {
	Username string  `json:"username" binding:"required,max=255"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6,max=255"`
}

type profileResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *handlerImpl) HandleUpdateProfile(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req updateProfileRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	user, err := h.users.UpdateProfile(c, services.UpdateProfileParams{
		UserID:   userID,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update profile")
		switch {
		case errors.Is(err, services.ErrIdentityTaken):
			abort(c, newConflictError(services.ErrIdentityTaken.Error()))
		case errors.Is(err, services.ErrUserNotFound):
			abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

func (h *handlerImpl) HandleDeleteProfile(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	err := h.users.DeleteAccount(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete account")
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	clearCookie(c, accessTokenCookie)
	clearCookie(c, refreshTokenCookie)

	c.Status(http.StatusNoContent)
}
