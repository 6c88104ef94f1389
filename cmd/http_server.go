package cmd

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

	"github.com/frahmantamala/timeoff-management/internal"
	directoryPostgres "github.com/frahmantamala/timeoff-management/internal/directory/postgres"
	timeoffPostgres "github.com/frahmantamala/timeoff-management/internal/timeoff/postgres"
	userPostgres "github.com/frahmantamala/timeoff-management/internal/user/postgres"

	"github.com/frahmantamala/timeoff-management/internal/core/events"
	"github.com/frahmantamala/timeoff-management/internal/directory"
	"github.com/frahmantamala/timeoff-management/internal/timeoff"
	"github.com/frahmantamala/timeoff-management/internal/transport"
	"github.com/frahmantamala/timeoff-management/internal/transport/middleware"
	"github.com/frahmantamala/timeoff-management/internal/transport/rest"
	"github.com/frahmantamala/timeoff-management/internal/user"
	"github.com/frahmantamala/timeoff-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) error {
	gormDB, err := openGorm(deps.DB)
	if err != nil {
		return fmt.Errorf("failed to open gorm over db connection: %w", err)
	}

	publicKey, err := deps.Config.Identity.GetPublicKey()
	if err != nil {
		return fmt.Errorf("failed to load identity public key: %w", err)
	}
	auth := middleware.NewAuthenticator(publicKey, deps.Config.Identity.Issuer, deps.Logger)

	// Validate the served OpenAPI document at boot; a missing file is fine in
	// stripped deployments, a broken one is not.
	if _, err := rest.LoadOpenAPISpec(context.Background(), "./api/openapi.yml"); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			deps.Logger.Warn("openapi spec not found, swagger UI will be empty")
		} else {
			deps.Logger.Warn("openapi spec validation failed", "error", err)
		}
	}

	base := transport.NewBaseHandler(deps.Logger)
	bus := events.NewEventBus(deps.Logger)
	registerNotificationHandlers(bus, deps.Logger)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, deps.Logger)
	userHandler := user.NewHandler(base, userService)
	webhookHandler := user.NewWebhookHandler(base, userService, deps.Config.Identity.WebhookSecret)

	directoryRepo := directoryPostgres.NewDirectoryRepository(gormDB)
	directoryService := directory.NewService(directoryRepo, deps.Logger)
	directoryHandler := directory.NewHandler(base, directoryService)

	timeoffRepo := timeoffPostgres.NewTimeOffRepository(gormDB)
	timeoffService := timeoff.NewService(timeoffRepo, userService, bus, deps.Logger)
	timeoffHandler := timeoff.NewHandler(base, timeoffService, userService)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, auth,
		userHandler, webhookHandler, directoryHandler, timeoffHandler, deps.Logger)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Logging.Level)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the pgx-backed connection pool shared by the health check and
// the GORM repositories.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// openGorm layers GORM over the already-open *sql.DB so repositories and the
// health check share one pool.
func openGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}
