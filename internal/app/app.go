package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/archetype-studio/archetype/config"
	"github.com/archetype-studio/archetype/internal/database"
	"github.com/archetype-studio/archetype/internal/domain"
	httpHandler "github.com/archetype-studio/archetype/internal/http"
	"github.com/archetype-studio/archetype/internal/http/middleware"
	"github.com/archetype-studio/archetype/internal/repository"
	"github.com/archetype-studio/archetype/internal/service"
	"github.com/archetype-studio/archetype/pkg/logger"
	"github.com/archetype-studio/archetype/pkg/mailer"
	"github.com/archetype-studio/archetype/pkg/storage"
	"github.com/archetype-studio/archetype/pkg/tracing"
)

// App encapsulates the application dependencies and configuration
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB
	mailer mailer.Mailer
	store  storage.ObjectStore

	// Repositories
	clientRepo    domain.ClientRepository
	sessionRepo   domain.SessionRepository
	responseRepo  domain.ResponseRepository
	promptRepo    domain.GeneratedPromptRepository
	proposalRepo  domain.ProposalRepository
	selectionRepo domain.SelectionRepository
	outboxRepo    domain.OutboxRepository
	userRepo      domain.UserRepository

	// Services
	userService      *service.UserService
	clientService    *service.ClientService
	sessionService   *service.SessionService
	responseService  *service.ResponseService
	analystService   *service.AnalystServiceImpl
	voiceService     *service.VoiceServiceImpl
	chatService      *service.ChatServiceImpl
	showroomService  *service.ShowroomService
	proposalService  *service.ProposalService
	dashboardService *service.DashboardService
	outboxWorker     *service.OutboxWorker

	mux    *http.ServeMux
	server *http.Server
}

// AppOption configures the App during construction
type AppOption func(*App)

// WithMailer overrides the mailer, used by tests
func WithMailer(m mailer.Mailer) AppOption {
	return func(a *App) {
		a.mailer = m
	}
}

// WithLogger overrides the logger
func WithLogger(l logger.Logger) AppOption {
	return func(a *App) {
		a.logger = l
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config: cfg,
		logger: logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:    http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing
func (a *App) InitTracing() error {
	if err := tracing.InitTracing(&a.config.Tracing); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if a.config.Tracing.Enabled {
		a.logger.WithField("service_name", a.config.Tracing.ServiceName).
			WithField("sampling_rate", a.config.Tracing.SamplingProbability).
			Info("Tracing initialized")
	}

	return nil
}

// InitDB connects to Postgres and applies the schema
func (a *App) InitDB() error {
	a.logger.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, dbname: %s",
		a.config.Database.Host, a.config.Database.Port, a.config.Database.User,
		a.config.Database.SSLMode, a.config.Database.DBName))

	if err := database.EnsureDatabaseExists(&a.config.Database); err != nil {
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}

	var db *sql.DB
	var err error
	if a.config.Tracing.Enabled {
		db, err = tracing.OpenTracedDB(database.GetSystemDSN(&a.config.Database))
		if err == nil {
			a.logger.Info("Database driver wrapped with OpenCensus tracing")
		}
	} else {
		db, err = database.Connect(&a.config.Database)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := database.InitializeDatabase(db, a.config.RootEmail); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	maxOpen, maxIdle, maxLifetime := database.GetConnectionPoolSettings()
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	a.db = db
	return nil
}

// InitMailer initializes the mailer
func (a *App) InitMailer() error {
	// Skip if mailer already set (e.g., by tests)
	if a.mailer != nil {
		return nil
	}

	if a.config.IsDevelopment() {
		a.mailer = mailer.NewConsoleMailer()
		a.logger.Info("Using console mailer for development")
	} else {
		a.mailer = mailer.NewSMTPMailer(&mailer.Config{
			SMTPHost:     a.config.SMTP.Host,
			SMTPPort:     a.config.SMTP.Port,
			SMTPUsername: a.config.SMTP.Username,
			SMTPPassword: a.config.SMTP.Password,
			FromEmail:    a.config.SMTP.FromEmail,
			FromName:     a.config.SMTP.FromName,
			AppBaseURL:   a.config.AppBaseURL,
		})
		a.logger.Info("Using SMTP mailer for production")
	}

	return nil
}

// InitStorage initializes the object store when enabled. Proposal image
// uploads and voice note archival degrade gracefully without it.
func (a *App) InitStorage() error {
	if !a.config.Storage.Enabled {
		a.logger.Info("Object storage disabled")
		return nil
	}

	store, err := storage.NewS3Store(&storage.Config{
		Endpoint:        a.config.Storage.Endpoint,
		Region:          a.config.Storage.Region,
		Bucket:          a.config.Storage.Bucket,
		AccessKeyID:     a.config.Storage.AccessKeyID,
		SecretAccessKey: a.config.Storage.SecretAccessKey,
		PublicBaseURL:   a.config.Storage.PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	a.store = store
	a.logger.WithField("bucket", a.config.Storage.Bucket).Info("Object storage initialized")
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.clientRepo = repository.NewClientRepository(a.db)
	a.sessionRepo = repository.NewSessionRepository(a.db)
	a.responseRepo = repository.NewResponseRepository(a.db)
	a.promptRepo = repository.NewGeneratedPromptRepository(a.db)
	a.proposalRepo = repository.NewProposalRepository(a.db)
	a.selectionRepo = repository.NewSelectionRepository(a.db)
	a.outboxRepo = repository.NewOutboxRepository(a.db)
	a.userRepo = repository.NewUserRepository(a.db)

	return nil
}

// InitServices initializes all services
func (a *App) InitServices() error {
	ctx := context.Background()

	a.userService = service.NewUserService(service.UserServiceConfig{
		Repository:   a.userRepo,
		EmailSender:  a.mailer,
		PrivateKey:   a.config.Security.PasetoPrivateKey,
		SecretKey:    a.config.Security.SecretKey,
		IsAdminEmail: a.config.IsAdminEmail,
		IsProduction: a.config.IsProduction(),
		Logger:       a.logger,
	})

	screenshots := service.NewScreenshotService(a.config.Screenshot.APIKey, a.logger)
	a.clientService = service.NewClientService(a.clientRepo, screenshots, a.logger)
	a.sessionService = service.NewSessionService(a.sessionRepo, a.clientRepo, a.responseRepo, a.logger)
	a.responseService = service.NewResponseService(a.responseRepo, a.sessionRepo, a.sessionService, a.logger)

	gemini, err := service.NewGeminiService(ctx, a.config.AI.GeminiAPIKey, a.config.AI.GeminiModel, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize text generation: %w", err)
	}
	groq := service.NewGroqService(a.config.AI.GroqAPIKey, a.config.AI.GroqModel, a.logger)

	a.analystService = service.NewAnalystService(gemini, a.promptRepo, a.logger)
	a.voiceService = service.NewVoiceService(groq, gemini, a.responseRepo, a.store, a.logger)
	a.chatService = service.NewChatService(gemini, a.logger)

	a.showroomService = service.NewShowroomService(
		a.sessionRepo, a.proposalRepo, a.selectionRepo, a.outboxRepo,
		a.config.RootEmail, a.config.AppBaseURL, a.logger)
	a.proposalService = service.NewProposalService(a.proposalRepo, a.sessionRepo, a.store, a.logger)
	a.dashboardService = service.NewDashboardService(
		a.clientRepo, a.sessionRepo, a.responseRepo, a.selectionRepo, a.logger)

	a.outboxWorker = service.NewOutboxWorker(a.outboxRepo, a.mailer, a.logger)

	return nil
}

// InitHandlers registers all HTTP handlers on the mux
func (a *App) InitHandlers() error {
	publicKey := a.config.Security.PasetoPublicKey

	userHandler := httpHandler.NewUserHandler(a.userService, publicKey, a.logger)
	clientHandler := httpHandler.NewClientHandler(a.clientService, a.userService, publicKey, a.logger)
	sessionHandler := httpHandler.NewSessionHandler(a.sessionService, a.userService, publicKey, a.logger)
	responseHandler := httpHandler.NewResponseHandler(a.responseService, a.sessionService, a.logger)
	analystHandler := httpHandler.NewAnalystHandler(a.analystService, a.userService, publicKey, a.logger)
	voiceHandler := httpHandler.NewVoiceHandler(a.voiceService, a.logger)
	showroomHandler := httpHandler.NewShowroomHandler(a.showroomService, a.chatService, a.logger)
	proposalHandler := httpHandler.NewProposalHandler(a.proposalService, a.userService, publicKey, a.logger)
	emailHandler := httpHandler.NewEmailHandler(a.showroomService, a.userService, publicKey, a.logger)
	adminHandler := httpHandler.NewAdminHandler(a.userService, publicKey, a.config.IsAdminEmail, a.logger)
	dashboardHandler := httpHandler.NewDashboardHandler(a.dashboardService, a.userService, publicKey, a.logger)
	catalogHandler := httpHandler.NewCatalogHandler()

	userHandler.RegisterRoutes(a.mux)
	clientHandler.RegisterRoutes(a.mux)
	sessionHandler.RegisterRoutes(a.mux)
	responseHandler.RegisterRoutes(a.mux)
	analystHandler.RegisterRoutes(a.mux)
	voiceHandler.RegisterRoutes(a.mux)
	showroomHandler.RegisterRoutes(a.mux)
	proposalHandler.RegisterRoutes(a.mux)
	emailHandler.RegisterRoutes(a.mux)
	adminHandler.RegisterRoutes(a.mux)
	dashboardHandler.RegisterRoutes(a.mux)
	catalogHandler.RegisterRoutes(a.mux)

	return nil
}

// Initialize runs all initialization steps in order
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting Archetype application")

	if err := a.InitTracing(); err != nil {
		return err
	}
	if err := a.InitDB(); err != nil {
		return err
	}
	if err := a.InitMailer(); err != nil {
		return err
	}
	if err := a.InitStorage(); err != nil {
		return err
	}
	if err := a.InitRepositories(); err != nil {
		return err
	}
	if err := a.InitServices(); err != nil {
		return err
	}
	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// Start launches the outbox worker and the HTTP server. It blocks until the
// server stops.
func (a *App) Start() error {
	var handler http.Handler = a.mux

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}
	handler = middleware.CORSMiddleware(handler)

	a.outboxWorker.Start(context.Background())
	a.logger.Info("Outbox worker started")

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info(fmt.Sprintf("Server starting on %s", addr))

	a.server = &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return a.server.ListenAndServe()
}

// Shutdown gracefully stops the server, the outbox worker and the database
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	if a.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.WithField("error", err.Error()).Error("HTTP server shutdown failed")
		}
	}

	if a.outboxWorker != nil {
		a.outboxWorker.Stop()
		a.logger.Info("Outbox worker stopped")
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	a.logger.Info("Shutdown complete")
	return nil
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the app's HTTP mux
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB returns the app's database handle
func (a *App) GetDB() *sql.DB {
	return a.db
}

// GetMailer returns the app's mailer
func (a *App) GetMailer() mailer.Mailer {
	return a.mailer
}
