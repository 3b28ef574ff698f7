package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/config"
	v1 "taskdeck/internal/delivery/http/v1"
	"taskdeck/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	jwtCfg := config.Global().JWT

	authService := services.NewAuthService(
		globalLogger,
		globalPostgresPool,
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
		jwtCfg.AccessTokenTTL,
		jwtCfg.RefreshTokenTTL,
	)
	sessionService := services.NewSessionService(globalLogger, globalPostgresPool)
	userService := services.NewUserService(globalLogger, globalPostgresPool)
	todoService := services.NewTodoService(globalLogger, globalPostgresPool)
	categoryService := services.NewCategoryService(globalLogger, globalPostgresPool)

	v1Handler := v1.New(
		globalLogger,
		authService,
		sessionService,
		userService,
		todoService,
		categoryService,
	)
	router = router.Group("/api/v1")

	authRouter := router.Group("/auth")
	authRouter.POST("/login", v1Handler.HandleLogin)
	authRouter.POST("/refresh", v1Handler.HandleRefresh)
	authRouter.POST("/register", v1Handler.HandleRegister)
	authRouter.POST("/logout", v1Handler.HandleAuthMiddleware, v1Handler.HandleLogout)

	protectedRouter := router.Group("", v1Handler.HandleAuthMiddleware)
	protectedRouter.PUT("/profile", v1Handler.HandleUpdateProfile)
	protectedRouter.DELETE("/profile", v1Handler.HandleDeleteProfile)

	protectedRouter.GET("/todos", v1Handler.HandleGetTodos)
	protectedRouter.POST("/todos", v1Handler.HandleCreateTodo)
	protectedRouter.PUT("/todos/:id", v1Handler.HandleUpdateTodo)
	protectedRouter.DELETE("/todos/:id", v1Handler.HandleDeleteTodo)

	protectedRouter.GET("/categories", v1Handler.HandleGetCategories)
	protectedRouter.POST("/categories", v1Handler.HandleCreateCategory)
	protectedRouter.PUT("/categories/:id", v1Handler.HandleRenameCategory)
	protectedRouter.DELETE("/categories/:id", v1Handler.HandleDeleteCategory)
}
