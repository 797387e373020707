package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/proposal-backend/internal/api"
	adminapi "github.com/futig/proposal-backend/internal/api/admin"
	authapi "github.com/futig/proposal-backend/internal/api/auth"
	comparisonapi "github.com/futig/proposal-backend/internal/api/comparison"
	intakeapi "github.com/futig/proposal-backend/internal/api/intake"
	proposalapi "github.com/futig/proposal-backend/internal/api/proposal"
	"github.com/futig/proposal-backend/internal/config"
	"github.com/futig/proposal-backend/internal/integration/llm"
	"github.com/futig/proposal-backend/internal/integration/mailer"
	"github.com/futig/proposal-backend/internal/pkg/formatter"
	"github.com/futig/proposal-backend/internal/pkg/metrics"
	"github.com/futig/proposal-backend/internal/pkg/token"
	"github.com/futig/proposal-backend/internal/pkg/validator"
	"github.com/futig/proposal-backend/internal/repository"
	"github.com/futig/proposal-backend/internal/telegram"
	"github.com/futig/proposal-backend/internal/usecase/admin"
	"github.com/futig/proposal-backend/internal/usecase/auth"
	"github.com/futig/proposal-backend/internal/usecase/comparison"
	"github.com/futig/proposal-backend/internal/usecase/intake"
	"github.com/futig/proposal-backend/internal/usecase/proposal"
	"go.uber.org/zap"
)

const (
	swaggerPath              = "docs/openapi.yaml"
	notificationDrainTimeout = 10 * time.Second
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserPostgres(db)
	tokenRepo := repository.NewTokenPostgres(db)
	wizardRepo := repository.NewWizardPostgres(db)
	requestRepo := repository.NewRequestPostgres(db)
	answerRepo := repository.NewAnswerPostgres(db)
	proposalRepo := repository.NewProposalPostgres(db)
	comparisonRepo := repository.NewComparisonPostgres(db)
	reviewRepo := repository.NewReviewPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var llmConnector proposal.LLMConnector
	var mail auth.Mailer

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		llmConnector = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, logger)
	}

	if cfg.MailerCfg.Enabled {
		mail = mailer.NewSMTPMailer(cfg.MailerCfg, logger)
	} else {
		logger.Info("Mail delivery disabled, mails are logged only")
		mail = mailer.NewMockMailer(logger)
	}

	notifier, dispatcher := setupNotifier(cfg, logger)

	m := metrics.New()
	tokens := token.NewManager(cfg.AuthCfg.JWTSecret, cfg.AuthCfg.TokenTTL)
	v := validator.NewValidator(cfg.AuthCfg)

	// Initialize use cases
	authUC := auth.NewUsecase(userRepo, tokenRepo, tokens, mail, notifier, cfg.AuthCfg, logger)
	intakeUC := intake.NewUsecase(wizardRepo, requestRepo, answerRepo, logger)
	proposalUC := proposal.NewUsecase(
		requestRepo,
		answerRepo,
		proposalRepo,
		llmConnector,
		notifier,
		formatter.NewFactory(),
		m,
		proposal.Config{
			MinInterval: cfg.GenerationCfg.ProposalMinInterval,
			MaxTokens:   cfg.LLMConnectorCfg.ProposalMaxTokens,
			Temperature: cfg.LLMConnectorCfg.Temperature,
		},
		logger,
	)
	comparisonUC := comparison.NewUsecase(
		proposalRepo,
		comparisonRepo,
		llmConnector,
		notifier,
		m,
		comparison.Config{
			MinInterval: cfg.GenerationCfg.ComparisonMinInterval,
			MaxTokens:   cfg.LLMConnectorCfg.ComparisonMaxTokens,
			Temperature: cfg.LLMConnectorCfg.Temperature,
		},
		logger,
	)
	adminUC := admin.NewUsecase(reviewRepo, userRepo, logger)
	logger.Info("Use cases initialized")

	handlers := api.Handlers{
		Auth:       authapi.NewHandler(authUC, v),
		Intake:     intakeapi.NewHandler(intakeUC, v),
		Proposal:   proposalapi.NewHandler(proposalUC, v),
		Comparison: comparisonapi.NewHandler(comparisonUC, v),
		Admin:      adminapi.NewHandler(adminUC, v),
	}
	logger.Info("API handlers initialized")

	// Generation waits on the upstream, so the request budget follows its timeout
	requestTimeout := cfg.LLMConnectorCfg.RequestTimeout + 15*time.Second

	router := api.SetupRouter(handlers, tokens, m, api.RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: requestTimeout,
		SwaggerPath:    swaggerPath,
	}, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	// in-flight generations get their whole budget, queued notifications a little more
	shutdownTimeout := requestTimeout + notificationDrainTimeout

	return &App{
		server:          server,
		db:              db,
		notifications:   dispatcher,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}, nil
}

// setupNotifier never fails: a bot that cannot authorize degrades to logging.
// Telegram delivery goes through a Dispatcher so requests never wait on it.
func setupNotifier(cfg *config.Config, logger *zap.Logger) (telegram.Notifier, *telegram.Dispatcher) {
	if !cfg.TelegramCfg.Enabled() {
		logger.Info("Telegram notifications disabled, events are logged only")
		return telegram.NewLogNotifier(logger), nil
	}

	bot, err := telegram.NewBotNotifier(&cfg.TelegramCfg, logger)
	if err != nil {
		logger.Warn("Failed to start telegram notifier, falling back to log output", zap.Error(err))
		return telegram.NewLogNotifier(logger), nil
	}

	tg := cfg.TelegramCfg
	// every attempt may use the full send timeout plus the longest backoff
	deliveryTimeout := time.Duration(max(tg.Retry.Attempts, 1)) * (tg.SendTimeout + tg.Retry.MaxDelay)
	dispatcher := telegram.NewDispatcher(bot, tg.QueueSize, deliveryTimeout, logger)

	logger.Info("Telegram notifications enabled",
		zap.Int64("chat_id", tg.AdminChatID),
		zap.Int("queue_size", tg.QueueSize),
		zap.Duration("delivery_timeout", deliveryTimeout),
	)
	return dispatcher, dispatcher
}
