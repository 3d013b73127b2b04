package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/events"
)

type JetStreamConsumerConfig struct {
	StreamName    string
	ConsumerName  string
	SubjectFilter string
	MaxDeliver    int
	AckWait       time.Duration
	MaxAckPending int
}

func DefaultJetStreamConsumerConfig() JetStreamConsumerConfig {
	return JetStreamConsumerConfig{
		StreamName:    "POOL_EVENTS",
		ConsumerName:  "scoreboard-gateway",
		SubjectFilter: "pool.events.>",
		MaxDeliver:    5,
		AckWait:       30 * time.Second,
		MaxAckPending: 100,
	}
}

// StandingsInvalidator drops cached standings when a contest is rescored
type StandingsInvalidator interface {
	Invalidate(ctx context.Context, seasonID uuid.UUID) error
}

// EventConsumer reads outbox events from JetStream and forwards the
// scoreboard ones to websocket clients.
type EventConsumer struct {
	connectionManager *ConnectionManager
	standings         StandingsInvalidator
	js                jetstream.JetStream
	consumer          jetstream.Consumer
	config            JetStreamConsumerConfig
}

// NewEventConsumer shares the caller's JetStream context. standings may be nil.
func NewEventConsumer(cm *ConnectionManager, standings StandingsInvalidator, js jetstream.JetStream, config JetStreamConsumerConfig) *EventConsumer {
	return &EventConsumer{
		connectionManager: cm,
		standings:         standings,
		js:                js,
		config:            config,
	}
}

func (ec *EventConsumer) ensureConsumer(ctx context.Context) error {
	stream, err := ec.js.Stream(ctx, ec.config.StreamName)
	if err != nil {
		return fmt.Errorf("get stream: %w", err)
	}

	consumer, err := stream.Consumer(ctx, ec.config.ConsumerName)
	if err == nil {
		ec.consumer = consumer
		return nil
	}

	consumer, err = stream.CreateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          ec.config.ConsumerName,
		Durable:       ec.config.ConsumerName,
		Description:   "Scoreboard gateway websocket consumer",
		FilterSubject: ec.config.SubjectFilter,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    ec.config.MaxDeliver,
		AckWait:       ec.config.AckWait,
		MaxAckPending: ec.config.MaxAckPending,
		ReplayPolicy:  jetstream.ReplayInstantPolicy,
	})
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}
	log.Info().
		Str("consumer", ec.config.ConsumerName).
		Str("stream", ec.config.StreamName).
		Msg("created JetStream consumer")
	ec.consumer = consumer
	return nil
}

// Start consumes until ctx is done.
func (ec *EventConsumer) Start(ctx context.Context) error {
	if err := ec.ensureConsumer(ctx); err != nil {
		return err
	}

	messageCh := make(chan jetstream.Msg, 100)
	consumeCtx, err := ec.consumer.Consume(func(msg jetstream.Msg) {
		select {
		case messageCh <- msg:
		case <-ctx.Done():
			msg.Nak()
		}
	})
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	defer consumeCtx.Stop()

	log.Info().Str("consumer", ec.config.ConsumerName).Msg("scoreboard consumer started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-messageCh:
			if err := ec.handle(ctx, msg.Data()); err != nil {
				log.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to process message")
				// A payload that can't be decoded will never succeed.
				if termErr := msg.Term(); termErr != nil {
					log.Error().Err(termErr).Msg("failed to TERM message")
				}
				continue
			}
			if ackErr := msg.Ack(); ackErr != nil {
				log.Error().Err(ackErr).Msg("failed to ACK message")
			}
		}
	}
}

func (ec *EventConsumer) handle(ctx context.Context, data []byte) error {
	var env events.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal event envelope: %w", err)
	}

	event, seasonID, ok, err := toScoreboardEvent(env)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if env.EventType == events.ContestScored && ec.standings != nil {
		if err := ec.standings.Invalidate(ctx, seasonID); err != nil {
			log.Warn().Err(err).Str("season_id", seasonID.String()).Msg("failed to invalidate standings")
		}
	}

	ec.connectionManager.BroadcastToSeason(seasonID, event)
	return nil
}
