package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/academic_records/internal/config"
	"github.com/locvowork/academic_records/internal/database"
	"github.com/locvowork/academic_records/internal/domain"
	"github.com/locvowork/academic_records/internal/handler"
	"github.com/locvowork/academic_records/internal/logger"
	"github.com/locvowork/academic_records/internal/repository"
	"github.com/locvowork/academic_records/internal/service"
	"github.com/locvowork/academic_records/web"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Echo *echo.Echo
	DB   *sql.DB

	Departments domain.DepartmentRepository
	Professors  domain.ProfessorRepository
	Students    domain.StudentRepository
	Books       domain.BookRepository
	Exports     *service.ExportService
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{Echo: e}
}

// Initialize loads config, opens the database, ensures the schema and
// builds the repositories. It is shared by the server and the CLI.
func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	// Initialize logging
	logger.InitLogging(cfg.LOG_FILE_PATH, cfg.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Initialize database connection
	dbConfig := database.Config{
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	}

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db
	logger.InfoLog(ctx, "Connected to PostgreSQL at %s:%d/%s", cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME)

	if err := database.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return a.initDependencies()
}

func (a *App) initDependencies() error {
	a.Departments = repository.NewDepartmentRepository(a.DB)
	a.Professors = repository.NewProfessorRepository(a.DB)
	a.Students = repository.NewStudentRepository(a.DB)
	a.Books = repository.NewBookRepository(a.DB)

	exports, err := service.NewExportService(a.Departments, a.Professors, a.Students, a.Books)
	if err != nil {
		return fmt.Errorf("failed to initialize export service: %w", err)
	}
	a.Exports = exports
	return nil
}

// ConfigureServer seeds sample rows when enabled and mounts the HTTP surface.
func (a *App) ConfigureServer(ctx context.Context) error {
	if config.DefaultEnvConfig.SEED_ON_START {
		data, err := database.LoadSeedData()
		if err != nil {
			return err
		}
		if _, err := database.NewDataSeeder(a.DB).SeedData(ctx, data); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
	}

	a.RegisterMiddlewares()
	a.RegisterRoutes()
	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	a.Echo.Use(logger.ContextMiddleware())
	a.Echo.Use(logger.RequestLogger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes() {
	api := a.Echo.Group("/api")
	exports := handler.NewExportHandler(a.Exports)

	api.GET("/health", handler.NewHealthHandler(a.DB).HealthHandler)
	api.GET("/export", exports.AllHandler)

	registerEntity[domain.Department, domain.DepartmentInput](api, "departments", "Department", a.Departments, exports)
	registerEntity[domain.Professor, domain.ProfessorInput](api, "professors", "Professor", a.Professors, exports)
	registerEntity[domain.Student, domain.StudentInput](api, "students", "Student", a.Students, exports)
	registerEntity[domain.Book, domain.BookInput](api, "books", "Book", a.Books, exports)

	a.Echo.StaticFS("/", echo.MustSubFS(web.Static, "static"))
}

func registerEntity[R any, W any](api *echo.Group, key, name string, repo domain.CRUDRepository[R, W], exports *handler.ExportHandler) {
	g := api.Group("/" + key)
	// Static segments take precedence over /:id in the echo router.
	g.GET("/export", exports.EntityHandler(key))
	handler.NewEntityHandler(name, repo).Register(g)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	defer a.DB.Close()

	addr := ":" + config.DefaultEnvConfig.APP_PORT
	errCh := make(chan error, 1)
	go func() {
		logger.InfoLog(ctx, "Server listening on %s", addr)
		errCh <- a.Echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.InfoLog(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Echo.Shutdown(shutdownCtx)
}
