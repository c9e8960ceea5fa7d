package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmanav02/WeHack/internal/adapters/http/api"
	"github.com/mmanav02/WeHack/internal/adapters/http/swagger"
	"github.com/mmanav02/WeHack/internal/adapters/mq/queue"
	"github.com/mmanav02/WeHack/internal/adapters/mq/worker"
	"github.com/mmanav02/WeHack/internal/adapters/repository"
	service "github.com/mmanav02/WeHack/internal/app"
	"github.com/mmanav02/WeHack/internal/config"
	"github.com/mmanav02/WeHack/internal/domain/guard"
	"github.com/mmanav02/WeHack/internal/domain/history"
	"github.com/mmanav02/WeHack/internal/domain/validate"
	"github.com/mmanav02/WeHack/internal/notify"
	"github.com/mmanav02/WeHack/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Notification wiring is shared between the service's direct sends and
	// the fan-out broadcaster.
	factoryOpts := []notify.FactoryOption{
		notify.WithFactoryLogger(log),
		notify.WithSMTPAddr(cfg.SMTPHost),
	}
	if cfg.MailgunDomain != "" {
		factoryOpts = append(factoryOpts, notify.WithMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey))
	}
	if cfg.MailgunBaseURL != "" {
		factoryOpts = append(factoryOpts, notify.WithMailgunBaseURL(cfg.MailgunBaseURL))
	}
	if cfg.SlackWebhookURL != "" {
		factoryOpts = append(factoryOpts, notify.WithSlackWebhook(cfg.SlackWebhookURL))
	}
	factory := notify.NewFactory(factoryOpts...)
	registry := notify.NewRegistry()
	caster := notify.NewBroadcaster(registry, factory,
		notify.WithParallelism(cfg.BroadcastParallelism),
		notify.WithBroadcasterLogger(log),
	)

	// Direct notifications (organizer alerts, judge approvals) go through
	// an async outbox drained by a small worker pool.
	outbox := queue.NewInMemoryQueue(queue.WithCapacity(cfg.OutboxCapacity))
	pool := worker.NewPool(outbox, factory,
		worker.WithWorkerCount(cfg.OutboxWorkers),
		worker.WithPoolLogger(log),
	)
	pool.Start(ctx)

	svc := service.New(
		service.WithLogger(log),
		service.WithEventStore(repository.NewMemEventStore(repository.WithShardCount(cfg.ShardCount))),
		service.WithUserStore(repository.NewMemUserStore(repository.WithShardCount(cfg.ShardCount))),
		service.WithTeamStore(repository.NewMemTeamStore(repository.WithShardCount(cfg.ShardCount))),
		service.WithSubmissionStore(repository.NewMemSubmissionStore(repository.WithShardCount(cfg.ShardCount))),
		service.WithScoreStore(repository.NewMemScoreStore(repository.WithShardCount(cfg.ShardCount))),
		service.WithGuard(guard.New(
			validate.NewChain(validate.WithMaxFileSize(cfg.MaxFileSizeBytes)),
			guard.WithCooldown(time.Duration(cfg.SubmitCooldownSeconds)*time.Second),
		)),
		service.WithHistory(history.NewManager(history.WithCapacity(cfg.HistoryDepth))),
		service.WithRegistry(registry),
		service.WithFactory(factory),
		service.WithBroadcaster(caster),
		service.WithScoringWeights(cfg.WeightInnovation, cfg.WeightImpact, cfg.WeightExecution),
		service.WithOutbox(outbox),
	)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register Swagger UI under /swagger
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc)
	apiServer.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	// Drain the outbox before exiting.
	_ = outbox.Close()
	if err := pool.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "outbox shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
