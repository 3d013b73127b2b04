package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/dbconfig"
	"github.com/mcdev12/pickpool/go/internal/outbox"
	"github.com/mcdev12/pickpool/go/internal/periods"
)

func setupLogging() {
	level, err := zerolog.ParseLevel(strings.ToLower(getEnv("LOG_LEVEL", "info")))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if getEnv("LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}
	setupLogging()

	config, err := loadConfig(getEnv("POOL_CONFIG", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCfg := dbconfig.NewConfigFromEnv()
	database, err := setupDatabase(dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup database")
	}
	defer database.Close()

	infra := Infra{DB: database}

	var publisher outbox.Publisher = outbox.LogPublisher{}
	if url := getEnv("NATS_URL", ""); url != "" {
		jsCfg := outbox.DefaultJetStreamConfig()
		jsCfg.URL = url
		jsPublisher, err := outbox.NewJetStreamPublisher(jsCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to JetStream")
		}
		defer jsPublisher.Close()
		publisher = jsPublisher
		infra.NATS = jsPublisher.Conn()
		infra.JetStream = jsPublisher.JetStream()
	}

	if url := getEnv("REDIS_URL", ""); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		infra.Redis = redis.NewClient(opts)
		defer infra.Redis.Close()
		if err := infra.Redis.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, standings will be computed per request")
		}
	}

	services, err := setupServices(infra, config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup services")
	}

	listenerCfg := outbox.DefaultListenerConfig()
	listenerCfg.DatabaseURL = dbCfg.DSN()
	listenerCfg.NotifyChannel = getEnv("OUTBOX_NOTIFY_CHANNEL", listenerCfg.NotifyChannel)
	listener, err := outbox.NewListener(services.Outbox, publisher, listenerCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start outbox listener")
	}
	go func() {
		if err := listener.Start(ctx); err != nil {
			log.Error().Err(err).Msg("outbox listener stopped")
		}
	}()

	go services.Connections.Start(ctx)
	if services.EventConsumer != nil {
		go func() {
			if err := services.EventConsumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("scoreboard consumer stopped")
			}
		}()
	}

	go periods.NewWatcher(services.PeriodsApp, services.Clock, config.Reconcile.Idle).Run(ctx)

	jobs, err := setupJobs(ctx, services, config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup jobs")
	}
	jobs.Start()
	defer func() { <-jobs.Stop().Done() }()

	server := setupServer(services, outbox.NewHealthChecker(database, infra.NATS, listener))
	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
