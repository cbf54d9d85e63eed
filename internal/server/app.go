// Package server wires the user service together: configuration, storage,
// default seeding and the HTTP API, with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/racfadmin/internal/logging"
	"github.com/dmitrijs2005/racfadmin/internal/server/config"
	"github.com/dmitrijs2005/racfadmin/internal/server/httpapi"
	"github.com/dmitrijs2005/racfadmin/internal/server/shared/db"
	"github.com/dmitrijs2005/racfadmin/internal/server/users"
	"github.com/sirupsen/logrus"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       db.RepositoryManager
	userService *users.Service
	metrics     *httpapi.Metrics
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := newLogger(c.LogLevel)
	if err != nil {
		return nil, err
	}

	var rm db.RepositoryManager
	if c.Memory {
		logger.Warn(ctx, "using in-memory storage, data is lost on exit")
		rm = db.NewInMemoryRepositoryManager()
	} else {
		rm, err = db.NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	us := users.NewService(rm.Users(), logger)

	return &App{config: c, logger: logger, repos: rm, userService: us, metrics: httpapi.NewMetrics()}, nil
}

func newLogger(level string) (logging.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(lvl)
	return logging.NewLogrusLogger(l), nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := httpapi.NewHTTPServer(app.config.EndpointAddr, app.logger, app.userService, app.metrics, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run seeds the default users into an empty store, then serves until ctx is
// cancelled or a stop signal arrives. Storage is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Warn(ctx, "closing storage", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	if _, err := app.userService.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	return runErr
}
