package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ruangkerja/leave-management/internal"
	"github.com/ruangkerja/leave-management/internal/auth"
	authRepo "github.com/ruangkerja/leave-management/internal/auth/postgres"
	"github.com/ruangkerja/leave-management/internal/balance"
	balanceRepo "github.com/ruangkerja/leave-management/internal/balance/postgres"
	"github.com/ruangkerja/leave-management/internal/core/events"
	"github.com/ruangkerja/leave-management/internal/employee"
	employeeRepo "github.com/ruangkerja/leave-management/internal/employee/postgres"
	"github.com/ruangkerja/leave-management/internal/leave"
	leaveRepo "github.com/ruangkerja/leave-management/internal/leave/postgres"
	"github.com/ruangkerja/leave-management/internal/leavetype"
	leavetypeRepo "github.com/ruangkerja/leave-management/internal/leavetype/postgres"
	"github.com/ruangkerja/leave-management/internal/report"
	reportRepo "github.com/ruangkerja/leave-management/internal/report/postgres"
	"github.com/ruangkerja/leave-management/internal/transport"
	"github.com/ruangkerja/leave-management/internal/transport/rest"
	"github.com/ruangkerja/leave-management/pkg/logger"
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
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	RBAC     *auth.RBACAuthorization
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.RBAC, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	appLogger := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm rides on the pgx pool sqlx already opened
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	eventBus := events.NewEventBus(appLogger)
	checker := auth.NewPermissionChecker()
	baseHandler := transport.NewBaseHandler(appLogger)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo.NewRepository(gormDB), tokenGen)
	authHandler := auth.NewHandler(authService)

	leavetypeService := leavetype.NewService(leavetypeRepo.NewLeaveTypeRepository(gormDB), checker, appLogger)
	balanceService := balance.NewService(balanceRepo.NewBalanceRepository(gormDB), leavetypeService, checker, appLogger)
	leaveService := leave.NewService(leaveRepo.NewLeaveRepository(gormDB), leavetypeService, balanceService, eventBus, checker, appLogger)
	reportService := report.NewService(reportRepo.NewReportRepository(gormDB), checker, appLogger)
	employeeService := employee.NewService(employeeRepo.NewEmployeeRepository(gormDB), balanceService, checker, appLogger)

	handlers := rest.Handlers{
		Auth:      authHandler,
		LeaveType: leavetype.NewHandler(baseHandler, leavetypeService),
		Leave:     leave.NewHandler(baseHandler, leaveService),
		Balance:   balance.NewHandler(baseHandler, balanceService),
		Report:    report.NewHandler(baseHandler, reportService),
		Employee:  employee.NewHandler(baseHandler, employeeService),
	}

	return &Dependencies{
		Config:   config,
		Logger:   appLogger,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		RBAC:     auth.NewRBACAuthorization(checker, appLogger),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
