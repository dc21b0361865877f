package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/handlers"
	"github.com/justsurfingit/job-board/internal/logging"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/storage"
	"github.com/justsurfingit/job-board/internal/wizard"
)

func main() {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database and resume storage
	db, err := database.Connect(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	repo := database.NewRepository(db)

	resumes, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize resume storage", zap.Error(err))
	}

	// 3. LLM, optional
	var llm services.Completer
	if cfg.LLM.GeminiAPIKey != "" {
		client, err := services.NewLLMService(ctx, cfg.LLM)
		if err != nil {
			logger.Fatal("Failed to initialize LLM client", zap.Error(err))
		}
		llm = client
	} else {
		logger.Warn("GEMINI_API_KEY not set; posting import and email summaries are disabled")
	}

	// 4. Core services
	tenantService := services.NewTenantService(repo, repo, logger)
	jobService := services.NewJobService(repo, repo, logger)
	applicationService := services.NewApplicationService(repo, repo, repo, resumes, cfg.Storage.URLTTL, logger)
	importService := services.NewImportService(llm, logger)
	wizardService := services.NewWizardService(
		wizard.NewStore(cfg.Wizard.SessionTTL),
		jobService,
		applicationService,
		tenantService,
		importService,
		logger,
	)

	// 5. Background jobs
	scheduler := newScheduler(logger)
	if _, err := scheduler.AddFunc(cfg.Wizard.PurgeSchedule, wizardService.Purge); err != nil {
		logger.Fatal("Invalid WIZARD_PURGE_SCHEDULE", zap.Error(err))
	}
	if cfg.Gmail.Enabled {
		mailbox, err := newMailboxService(ctx, cfg.Gmail, repo, llm, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Gmail", zap.Error(err))
		}
		if _, err := scheduler.AddFunc(cfg.Gmail.PollSchedule, mailbox.Run); err != nil {
			logger.Fatal("Invalid GMAIL_POLL_SCHEDULE", zap.Error(err))
		}
		logger.Info("Gmail watcher enabled", zap.String("schedule", cfg.Gmail.PollSchedule))
	}
	scheduler.Start()

	// 6. Router
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(logger))
	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", handlers.TenantHeader, handlers.UserHeader}
	r.Use(cors.New(corsConfig))
	r.MaxMultipartMemory = cfg.Storage.MaxResumeBytes

	handlers.RegisterRoutes(r, handlers.Handlers{
		Tenants:      handlers.NewTenantHandler(tenantService, logger),
		Jobs:         handlers.NewJobHandler(jobService, applicationService, logger),
		Applications: handlers.NewApplicationHandler(applicationService, logger),
		Wizards:      handlers.NewWizardHandler(wizardService, cfg.Storage.MaxResumeBytes, logger),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

func newMailboxService(ctx context.Context, cfg config.GmailConfig, repo *database.Repository, llm services.Completer, logger *zap.Logger) (*services.MailboxService, error) {
	httpClient, err := auth.GmailClient(ctx, cfg.CredentialsFile, cfg.TokenFile)
	if err != nil {
		return nil, err
	}
	gmailService, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}
	return services.NewMailboxService(repo, repo, services.NewGmailClient(gmailService), llm, cfg.Mailbox, logger), nil
}
