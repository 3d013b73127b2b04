package main

import (
	"database/sql"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/contests"
	"github.com/mcdev12/pickpool/go/internal/gateway"
	"github.com/mcdev12/pickpool/go/internal/outbox"
	"github.com/mcdev12/pickpool/go/internal/participants"
	"github.com/mcdev12/pickpool/go/internal/periods"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
	"github.com/mcdev12/pickpool/go/internal/predictions"
	"github.com/mcdev12/pickpool/go/internal/reminders"
	"github.com/mcdev12/pickpool/go/internal/roster"
	"github.com/mcdev12/pickpool/go/internal/schedule"
	"github.com/mcdev12/pickpool/go/internal/scoring"
	"github.com/mcdev12/pickpool/go/internal/seasons"
	"github.com/mcdev12/pickpool/go/internal/standings"
	"github.com/mcdev12/pickpool/go/internal/teams"
)

// Infra holds the external connections the services are built on. NATS and
// Redis are optional.
type Infra struct {
	DB        *sql.DB
	NATS      *nats.Conn
	JetStream jetstream.JetStream
	Redis     *redis.Client
}

type Services struct {
	Seasons      *seasons.Service
	Periods      *periods.Service
	Contests     *contests.Service
	Participants *participants.Service
	Predictions  *predictions.Service
	Roster       *roster.Service
	Teams        *teams.Service
	Standings    *standings.Service
	Reminders    *reminders.Service
	Gateway      *gateway.Handler

	PeriodsApp    *periods.App
	RemindersApp  *reminders.App
	StandingsApp  *standings.App
	Connections   *gateway.ConnectionManager
	EventConsumer *gateway.EventConsumer
	Outbox        *outbox.Repository
	Clock         clock.Clock
}

func setupServices(infra Infra, config *Config) (*Services, error) {
	// Database layer → Repository layer → App layer → Service layer
	queries := pooldb.New(infra.DB)
	clk := clock.New()
	recorder := outbox.NewRepository(queries)

	tmpl, err := schedule.LoadTemplate(config.Schedule.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule template: %w", err)
	}

	// Standings
	var cache standings.Cache
	if infra.Redis != nil {
		cache = standings.NewRedisCache(infra.Redis, config.Standings.CacheTTL)
	}
	standingsApp := standings.NewApp(standings.NewRepository(queries), cache)

	// Periods
	periodsApp := periods.NewApp(periods.NewRepository(queries), recorder, clk)

	// Roster and scoring
	rosterApp := roster.NewApp(roster.NewRepository(queries), recorder, clk)
	engine := scoring.NewEngine(scoring.NewRepository(queries), config.Scoring, clk)

	// Contests
	contestsRepo := contests.NewRepository(queries, infra.DB)
	contestsApp := contests.NewApp(contestsRepo, rosterApp, engine, standingsApp, recorder, clk)

	// Seasons
	generator := schedule.NewGenerator(schedule.NewRepository(queries), contestsApp, periodsApp, recorder, tmpl, clk)
	seasonsApp := seasons.NewApp(seasons.NewRepository(queries), generator, periodsApp, clk)

	// Participants and predictions
	participantsApp := participants.NewApp(participants.NewRepository(queries), rosterApp, clk)
	predictionsRepo := predictions.NewRepository(queries)
	predictionsApp := predictions.NewApp(predictionsRepo, clk)

	// Teams
	teamsApp := teams.NewApp(teams.NewRepository(queries))

	// Reminders
	var notifier reminders.Notifier = reminders.LogNotifier{}
	if infra.NATS != nil {
		notifier = reminders.NewNATSNotifier(infra.NATS)
	}
	remindersApp := reminders.NewApp(predictionsRepo, periodsApp, notifier, config.Reminders.Template, clk)

	// Scoreboard gateway
	connections := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	var consumer *gateway.EventConsumer
	if infra.JetStream != nil {
		consumer = gateway.NewEventConsumer(connections, standingsApp, infra.JetStream, gateway.DefaultJetStreamConsumerConfig())
	} else {
		log.Warn().Msg("no JetStream connection, scoreboard will not receive events")
	}

	return &Services{
		Seasons:      seasons.NewService(seasonsApp),
		Periods:      periods.NewService(periodsApp),
		Contests:     contests.NewService(contestsApp),
		Participants: participants.NewService(participantsApp),
		Predictions:  predictions.NewService(predictionsApp),
		Roster:       roster.NewService(rosterApp),
		Teams:        teams.NewService(teamsApp),
		Standings:    standings.NewService(standingsApp),
		Reminders:    reminders.NewService(remindersApp),
		Gateway:      gateway.NewHandler(connections),

		PeriodsApp:    periodsApp,
		RemindersApp:  remindersApp,
		StandingsApp:  standingsApp,
		Connections:   connections,
		EventConsumer: consumer,
		Outbox:        recorder,
		Clock:         clk,
	}, nil
}
