package app

import (
	"context"
	"fmt"
	"time"

	"github.com/NasaVasa/haltwatch/internal/config"
	"github.com/NasaVasa/haltwatch/internal/delivery/telegram"
	"github.com/NasaVasa/haltwatch/internal/domain"
	"github.com/NasaVasa/haltwatch/internal/infra/asx"
	"github.com/NasaVasa/haltwatch/internal/infra/db"
	"github.com/NasaVasa/haltwatch/internal/infra/log"
	"github.com/NasaVasa/haltwatch/internal/infra/mail"
	"github.com/NasaVasa/haltwatch/internal/infra/memory"
	"github.com/NasaVasa/haltwatch/internal/infra/registry"
	"github.com/NasaVasa/haltwatch/internal/infra/s3"
	"github.com/NasaVasa/haltwatch/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const serviceName = "haltwatch"

type App struct {
	cfg       config.Config
	location  *time.Location
	source    *asx.Client
	store     domain.BlobStore
	notifier  domain.Notifier
	logger    *zap.Logger
	cleanupFn func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return nil, err
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	source := asx.NewClient(asx.Options{
		AnnouncementsURL:        cfg.AnnouncementsURL,
		CompanyAnnouncementsURL: cfg.CompanyAnnouncementsURL,
		ScrapflyAPIKey:          cfg.ScrapflyAPIKey,
		ScrapflyEndpoint:        cfg.ScrapflyEndpoint,
		Timeout:                 cfg.HTTPTimeout,
	}, logger)

	notifier, err := buildNotifier(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:       cfg,
		location:  location,
		source:    source,
		store:     store,
		notifier:  notifier,
		logger:    logger,
		cleanupFn: cleanup,
	}, nil
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (domain.BlobStore, func() error, error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		dbConn, err := db.Open(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() error {
			sqlDB, err := dbConn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		return db.NewBlobRepository(dbConn), cleanup, nil
	case config.StorageMemory:
		logger.Warn("using in-memory storage, nothing will be persisted")
		return memory.NewStore(), nil, nil
	default:
		client, err := s3.NewClient(ctx, cfg.S3Endpoint)
		if err != nil {
			return nil, nil, err
		}
		return s3.NewBlobStore(client, cfg.S3Bucket, logger), nil, nil
	}
}

func buildNotifier(cfg config.Config, logger *zap.Logger) (domain.Notifier, error) {
	var channels []domain.Notifier
	if cfg.EmailEnabled() {
		channels = append(channels, mail.NewSMTPNotifier(mail.Options{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			From:      cfg.SenderEmail,
			Recipient: cfg.RecipientEmail,
		}, logger))
	}
	if cfg.TelegramEnabled() {
		api, err := telegram.NewAPI(cfg.TelegramBotToken)
		if err != nil {
			return nil, fmt.Errorf("telegram: %w", err)
		}
		channels = append(channels, telegram.NewNotifier(api, cfg.TelegramChatID, logger))
	}
	if len(channels) == 0 {
		logger.Warn("no notification channel configured, notifications go to the log")
		channels = append(channels, usecase.NewLogNotifier(logger))
	}
	return usecase.NewFanoutNotifier(logger, channels...), nil
}

// Today is the current calendar day in the configured timezone.
func (a *App) Today() domain.Date {
	return domain.DateOf(time.Now().In(a.location))
}

func (a *App) RunToday(ctx context.Context) (string, error) {
	return a.Run(ctx, a.Today())
}

// Run executes the daily feed for one day and notifies the outcome. It returns
// the success message, or the error whose failure message was sent.
func (a *App) Run(ctx context.Context, today domain.Date) (string, error) {
	runLogger := a.logger.With(zap.String("run_id", uuid.NewString()), zap.Stringer("date", today))
	runLogger.Info("haltwatch run starting")

	registryRepo := registry.NewRepository(a.store, a.cfg.RegistryKey, runLogger)
	monitoring := usecase.NewMonitoringUsecase(registryRepo, runLogger)
	feed := usecase.NewFeedUsecase(a.source, a.source, a.store, monitoring, runLogger)

	report, err := feed.Run(ctx, today)
	if err != nil {
		message := usecase.RenderFailure(err)
		runLogger.Error("haltwatch run failed", zap.Error(err))
		_ = a.notifier.Notify(ctx, usecase.ErrorSubject, message)
		return "", err
	}

	body := usecase.RenderSuccess(report, a.cfg.MemoryMB)
	_ = a.notifier.Notify(ctx, usecase.SuccessSubject, body)
	runLogger.Info("haltwatch run complete", zap.Duration("duration", report.Duration))
	return body, nil
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}

func (a *App) Shutdown() {
	a.logger.Info("haltwatch shutting down")
	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
