package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"storycast/internal/audio"
	"storycast/internal/config"
	"storycast/internal/metrics"
	"storycast/internal/provider/openai"
	"storycast/internal/publisher"
	"storycast/internal/retry"
	"storycast/internal/scheduler"
	"storycast/internal/service"
	"storycast/internal/storage/blob"
	"storycast/internal/storage/postgres"
	"storycast/internal/telemetry"
)

const usage = `usage: storycast [-config path] <command> [flags]

commands:
  serve     run the generation worker (default)
  submit    queue a new episode
  resume    rerun the missing stages of an episode
  journey   start or advance a listener journey
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	command, args := "serve", flag.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	if err := run(ctx, command, args, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, cfg *config.Config, logger *slog.Logger) error {
	switch command {
	case "serve", "submit", "resume", "journey":
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	switch command {
	case "submit":
		return a.submit(ctx, args)
	case "resume":
		return a.resume(ctx, args)
	case "journey":
		return a.journey(ctx, args)
	}
	return a.serve(ctx)
}

// app holds the wired services shared by every command.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	metrics    *metrics.Metrics
	db         *sqlx.DB
	bus        *publisher.RabbitMQ
	pipeline   *service.Orchestrator
	adventures *service.AdventureService
	journeys   *service.JourneyService
	dispatcher *service.Dispatcher

	shutdownTracing func(context.Context) error
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	a.shutdownTracing, err = telemetry.Setup(ctx, telemetry.Config{
		ServiceName:  cfg.Telemetry.ServiceName,
		Environment:  cfg.Telemetry.Environment,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure: cfg.Telemetry.OTLPInsecure,
		Stdout:       cfg.Telemetry.Stdout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}

	a.metrics = metrics.New(prometheus.NewRegistry())

	a.db, err = sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := a.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("connected to database")

	if err := postgres.Migrate(a.db, logger); err != nil {
		return nil, err
	}

	a.bus, err = publisher.NewRabbitMQ(publisher.Config{
		URL:       cfg.RabbitMQ.URL,
		Exchange:  cfg.RabbitMQ.Exchange,
		QueueName: cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		return nil, err
	}

	episodeStore := postgres.NewEpisodeStore(a.db)
	adventureStore := postgres.NewAdventureStore(a.db)
	journeyStore := postgres.NewJourneyStore(a.db)
	txManager := postgres.NewTransactionManager(a.db)

	objects, err := blob.NewLocalStore(blob.Config{
		Dir:           cfg.Storage.Dir,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return nil, err
	}

	providerCfg := openai.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		ChatModel:   cfg.OpenAI.ChatModel,
		SpeechModel: cfg.OpenAI.SpeechModel,
		Temperature: cfg.OpenAI.Temperature,
		Timeout:     cfg.OpenAI.Timeout,
	}
	content := openai.NewContentClient(providerCfg, logger, openai.WithRecorder(a.metrics))
	speechClient := openai.NewSpeechClient(providerCfg, logger, openai.WithRecorder(a.metrics))

	textExec := a.executor("text", cfg.Retry.Text)
	speechExec := a.executor("speech", cfg.Retry.Speech)

	joiner, err := audio.NewFFmpegJoiner(audio.FFmpegConfig{
		Command:    cfg.Audio.FFmpegCommand,
		SampleRate: cfg.Audio.SampleRate,
		Channels:   cfg.Audio.Channels,
		Bitrate:    cfg.Audio.Bitrate,
		TempDir:    cfg.Audio.TempDir,
	})
	if err != nil {
		return nil, fmt.Errorf("configure ffmpeg: %w", err)
	}
	assembler := audio.NewAssembler(joiner, logger, audio.WithFallbackObserver(a.metrics.AudioFallback))

	speech := service.NewSpeechSynthesizer(speechClient, speechExec, logger)
	nodes := service.NewNodeContentGenerator(content, speech, assembler, objects, adventureStore, textExec, logger)

	a.pipeline = service.NewOrchestrator(
		content,
		speech,
		assembler,
		objects,
		episodeStore,
		a.bus,
		textExec,
		logger,
		service.WithRecorder(a.metrics),
	)
	a.adventures = service.NewAdventureService(
		service.NewGraphBuilder(content, textExec, logger),
		nodes,
		episodeStore,
		adventureStore,
		txManager,
		a.bus,
		a.metrics,
		logger,
	)
	a.journeys = service.NewJourneyService(adventureStore, journeyStore, nodes, a.bus, a.metrics, logger)
	a.dispatcher = service.NewDispatcher(episodeStore, a.pipeline, a.adventures, cfg.Scheduler.BatchSize, logger)

	return a, nil
}

func (a *app) executor(name string, rc config.RetryConfig) *retry.Executor {
	return retry.New(
		retry.Policy{
			MaxRetries:   rc.MaxRetries,
			InitialDelay: rc.InitialDelay,
			MaxDelay:     rc.MaxDelay,
		},
		retry.WithName(name),
		retry.WithObserver(retry.LogObserver(a.logger)),
		retry.WithObserver(a.metrics.RetryObserver()),
	)
}

func (a *app) serve(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	srv := &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("metrics server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	sched := scheduler.NewScheduler(a.dispatcher, a.cfg.Scheduler.Interval, a.cfg.Scheduler.RunTimeout, a.logger)

	a.logger.Info("starting storycast worker",
		"interval", a.cfg.Scheduler.Interval,
		"batch_size", a.cfg.Scheduler.BatchSize,
	)

	return sched.Start(ctx)
}

func (a *app) Close() {
	if a.bus != nil {
		a.bus.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdownTracing(ctx); err != nil {
			a.logger.Warn("failed to flush traces", "error", err)
		}
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
