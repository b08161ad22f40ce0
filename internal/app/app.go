package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/question-bank/internal/auth"
	"github.com/gokatarajesh/question-bank/internal/config"
	"github.com/gokatarajesh/question-bank/internal/db/filestore"
	"github.com/gokatarajesh/question-bank/internal/db/models"
	"github.com/gokatarajesh/question-bank/internal/db/repository"
	"github.com/gokatarajesh/question-bank/internal/logging"
	"github.com/gokatarajesh/question-bank/internal/metrics"
	"github.com/gokatarajesh/question-bank/internal/question"
	"github.com/gokatarajesh/question-bank/internal/server"
)

// Application aggregates the file stores, session table and HTTP server.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	sessions *auth.SessionTable
	http     *http.Server

	sweeper   *auth.SessionSweeper
	bgCancels []context.CancelFunc
}

// Options lets callers override process-wide defaults, mainly in tests.
type Options struct {
	Logger   *zerolog.Logger
	Registry prometheus.Registerer
	Gatherer prometheus.Gatherer
}

// New bootstraps config, logger, the JSON file stores and the HTTP server.
func New(ctx context.Context, cfg *config.App, opts Options) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger.Info().Msg("starting application bootstrap")

	registry, gatherer := opts.Registry, opts.Gatherer
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	m := metrics.New(registry)

	credentialDoc := filestore.New[models.Credentials](cfg.Storage.CredentialsFile)
	credentialRepo := repository.NewCredentialRepository(credentialDoc)
	created, err := credentialRepo.Seed(ctx, models.Credentials{
		Username: cfg.Admin.DefaultUsername,
		Password: cfg.Admin.DefaultPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("init credentials file: %w", err)
	}
	if created {
		logger.Warn().Str("path", credentialDoc.Path()).Msg("created default admin credentials; change them")
	}

	questionDoc := filestore.New[models.QuestionSet](cfg.Storage.QuestionsFile)
	questionRepo := repository.NewQuestionRepository(questionDoc)
	created, err = questionRepo.Seed(ctx)
	if err != nil {
		return nil, fmt.Errorf("init questions file: %w", err)
	}
	if created {
		logger.Info().Str("path", questionDoc.Path()).Msg("seeded questions file with sample question")
	}

	sessions := auth.NewSessionTable(cfg.Session.TTL)
	authSvc := auth.NewService(credentialRepo, auth.ServiceOptions{
		Sessions: sessions,
		Metrics:  m,
	}, logger)
	authHandlers := auth.NewHTTPHandlers(authSvc, logger)

	questionSvc := question.NewService(questionRepo, m, logger)
	questionHandlers := question.NewHTTPHandlers(questionSvc, cfg.Upload.MaxBytes, logger)

	apiServer := server.NewHTTPServer(cfg, logger, server.Deps{
		AuthSvc:          authSvc,
		AuthHandlers:     authHandlers,
		QuestionHandlers: questionHandlers,
		Metrics:          m,
		Gatherer:         gatherer,
	})

	return &Application{
		cfg:       cfg,
		logger:    logger,
		sessions:  sessions,
		http:      apiServer,
		sweeper:   auth.NewSessionSweeper(sessions, m, cfg.Session.SweepInterval, logger),
		bgCancels: make([]context.CancelFunc, 0, 1),
	}, nil
}

// Handler exposes the routed handler, e.g. for httptest servers.
func (a *Application) Handler() http.Handler {
	return a.http.Handler
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	a.shutdown()
	return runErr
}

func (a *Application) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	// sessions never outlive the process
	a.sessions.Clear()

	a.logger.Info().Msg("shutdown complete")
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.sweeper != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.sweeper.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("session sweeper stopped")
			}
		}()
	}
}
