package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-access-admin/internal/auth"
	"go-access-admin/internal/config"
	"go-access-admin/internal/database"
	"go-access-admin/internal/event"
	"go-access-admin/internal/handler"
	"go-access-admin/internal/middleware"
	"go-access-admin/internal/repository"
	"go-access-admin/internal/router"
	"go-access-admin/internal/service"
	"go-access-admin/internal/storage"
	"go-access-admin/internal/websocket"
)

const defaultAdminLogin = "admin"

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	tokens, err := auth.NewTokenServiceFromFiles(cfg.JWTPrivateKeyFile, cfg.JWTPublicKeyFile, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing keys: %w", err)
	}

	photos, err := storage.New(cfg.PhotoRoot, cfg.ThumbnailRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	adminHash, err := auth.HashPassword(defaultAdminLogin)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to hash default admin password: %w", err)
	}

	if err := db.Seed(context.Background(), defaultAdminLogin, adminHash); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	layerRepo := repository.NewAccessLayerRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	accessLogRepo := repository.NewAccessLogRepository(pool)
	slog.Info("database ready")

	bus := event.NewBus()
	hub := websocket.NewHub(bus)
	go hub.Run()

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, layerRepo)
	employeeService := service.NewEmployeeService(employeeRepo, photos, cfg.AllowedMIMETypes)
	accessLogService := service.NewAccessLogService(accessLogRepo, employeeRepo, bus)

	authMiddleware := middleware.NewAuthMiddleware(tokens, userRepo, cfg.SecureCookies)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:      handler.NewAuthHandler(authService, cfg.SecureCookies),
		User:      handler.NewUserHandler(userService),
		Employee:  handler.NewEmployeeHandler(employeeService, cfg.MaxPhotoSize),
		AccessLog: handler.NewAccessLogHandler(accessLogService),
	}, hub)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() {
				db.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
