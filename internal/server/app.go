// Package server initializes and runs the application: database and blob
// storage backends, the HTTP API and the reminder scheduler, with graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/legalvault/internal/logging"
	"github.com/dmitrijs2005/legalvault/internal/server/blob"
	"github.com/dmitrijs2005/legalvault/internal/server/config"
	"github.com/dmitrijs2005/legalvault/internal/server/notify"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/legalvault/internal/server/rest"
	"github.com/dmitrijs2005/legalvault/internal/server/safety"
	"github.com/dmitrijs2005/legalvault/internal/server/scheduler"
	"github.com/dmitrijs2005/legalvault/internal/server/services"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	server    *rest.Server
	scheduler *scheduler.Scheduler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	blobs, err := blob.NewS3Store(ctx, blob.S3Config{
		User:         c.S3User,
		Password:     c.S3Password,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	notifier, err := notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		User:     c.SMTPUser,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	})
	if err != nil {
		return nil, fmt.Errorf("notifier init error: %w", err)
	}

	us := services.NewUserService(db, m, c)
	ds := services.NewDocumentService(db, m, blobs, safety.NewRulesAnalyzer(), c.MaxAnalyzeBytes)
	as := services.NewActivityService(db, m)

	srv := rest.NewServer(c.EndpointAddrHTTP, logger, us, ds, as, c.SecretKey)

	sched := scheduler.New(db, m, notifier, logger, scheduler.Config{
		Interval:      c.SchedulerInterval,
		Window:        c.SchedulerWindow,
		NotifyTimeout: c.NotifyTimeout,
	})

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		server:    srv,
		scheduler: sched,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, "http server error", "error", err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.scheduler.Run(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing db", "error", err.Error())
	}
}
