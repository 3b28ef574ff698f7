package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"taskdeck/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleUpdateProfile(c *gin.Context)
	HandleDeleteProfile(c *gin.Context)

	HandleGetTodos(c *gin.Context)
	HandleCreateTodo(c *gin.Context)
	HandleUpdateTodo(c *gin.Context)
	HandleDeleteTodo(c *gin.Context)

	HandleGetCategories(c *gin.Context)
	HandleCreateCategory(c *gin.Context)
	HandleRenameCategory(c *gin.Context)
	HandleDeleteCategory(c *gin.Context)
}

type handlerImpl struct {
	logger     zerolog.Logger
	auth       services.AuthService
	sessions   services.SessionService
	users      services.UserService
	todos      services.TodoService
	categories services.CategoryService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	sessionService services.SessionService,
	userService services.UserService,
	todoService services.TodoService,
	categoryService services.CategoryService,
) Handler {
	return &handlerImpl{
		logger:     logger,
		auth:       authService,
		sessions:   sessionService,
		users:      userService,
		todos:      todoService,
		categories: categoryService,
	}
}
