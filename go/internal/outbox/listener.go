package outbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type ListenerConfig struct {
	DatabaseURL      string
	NotifyChannel    string        // must match the pool_outbox trigger
	FallbackInterval time.Duration // poll for rows whose notify was missed
	MaxRetries       int
	RetryDelay       time.Duration
	PingInterval     time.Duration
	BatchSize        int32
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		NotifyChannel:    "pool_outbox_events",
		FallbackInterval: 30 * time.Second,
		MaxRetries:       5,
		RetryDelay:       200 * time.Millisecond,
		PingInterval:     90 * time.Second,
		BatchSize:        100,
	}
}

// Publisher delivers one outbox event to the message bus.
type Publisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}

// Store is what the listener needs from the outbox table.
type Store interface {
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error)
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error)
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
}

// ListenerStats is a snapshot of what the relay has done since start.
type ListenerStats struct {
	Running       bool      `json:"running"`
	Published     uint64    `json:"published"`
	Failed        uint64    `json:"failed"`
	LastPublished time.Time `json:"last_published,omitempty"`
}

// Listener relays pool_outbox rows to the Publisher. Rows arrive by
// LISTEN/NOTIFY; anything missed is picked up by the fallback poll and after
// every reconnect.
type Listener struct {
	store     Store
	publisher Publisher
	cfg       ListenerConfig
	pq        *pq.Listener

	mu    sync.Mutex
	stats ListenerStats
}

// NewListener subscribes to the notify channel. Delivery starts with Start.
func NewListener(store Store, publisher Publisher, cfg ListenerConfig) (*Listener, error) {
	pql := pq.NewListener(cfg.DatabaseURL, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		switch {
		case err != nil:
			log.Error().Err(err).Msg("outbox listener connection error")
		case ev == pq.ListenerEventReconnected:
			log.Info().Msg("outbox listener reconnected")
		}
	})
	if err := pql.Listen(cfg.NotifyChannel); err != nil {
		pql.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.NotifyChannel, err)
	}
	return newListener(store, publisher, cfg, pql), nil
}

func newListener(store Store, publisher Publisher, cfg ListenerConfig, pql *pq.Listener) *Listener {
	return &Listener{
		store:     store,
		publisher: publisher,
		cfg:       cfg,
		pq:        pql,
	}
}

// Start relays until ctx is done, then closes the connection.
func (l *Listener) Start(ctx context.Context) error {
	l.setRunning(true)
	defer l.setRunning(false)

	log.Info().
		Str("channel", l.cfg.NotifyChannel).
		Dur("fallback_interval", l.cfg.FallbackInterval).
		Msg("outbox listener started")

	l.drain(ctx, "startup")

	ping := time.NewTicker(l.cfg.PingInterval)
	defer ping.Stop()
	poll := time.NewTicker(l.cfg.FallbackInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("outbox listener stopping")
			return l.Stop()
		case note := <-l.pq.Notify:
			// nil after a reconnect
			if note == nil {
				l.drain(ctx, "reconnect")
				continue
			}
			if err := l.handleNotification(ctx, note.Extra); err != nil {
				log.Error().Err(err).Str("payload", note.Extra).Msg("failed to relay notified outbox event")
			}
		case <-poll.C:
			l.drain(ctx, "poll")
		case <-ping.C:
			if err := l.pq.Ping(); err != nil {
				log.Warn().Err(err).Msg("outbox listener ping failed")
			}
		}
	}
}

func (l *Listener) Stop() error {
	if l.pq == nil {
		return nil
	}
	return l.pq.Close()
}

func (l *Listener) Stats() ListenerStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

func (l *Listener) setRunning(running bool) {
	l.mu.Lock()
	l.stats.Running = running
	l.mu.Unlock()
}

func (l *Listener) record(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.stats.Failed++
		return
	}
	l.stats.Published++
	l.stats.LastPublished = time.Now()
}

// handleNotification relays the row whose id is the notify payload.
func (l *Listener) handleNotification(ctx context.Context, payload string) error {
	id, err := uuid.Parse(payload)
	if err != nil {
		return fmt.Errorf("invalid outbox id in notification: %w", err)
	}
	event, err := l.store.FetchOutboxByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch outbox event: %w", err)
	}
	return l.relay(ctx, *event)
}

func (l *Listener) drain(ctx context.Context, reason string) {
	n, err := l.processUnsent(ctx)
	if err != nil {
		log.Error().Err(err).Str("reason", reason).Msg("failed to drain outbox")
	}
	if n > 0 {
		log.Info().Int("published", n).Str("reason", reason).Msg("drained outbox backlog")
	}
}

// processUnsent relays unsent rows batch by batch until a batch comes back
// short or nothing in it could be published.
func (l *Listener) processUnsent(ctx context.Context) (int, error) {
	total := 0
	for {
		batch, err := l.store.FetchUnsentOutbox(ctx, l.cfg.BatchSize)
		if err != nil {
			return total, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
		}

		published := 0
		for _, event := range batch {
			if err := l.relay(ctx, event); err != nil {
				log.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to relay outbox event")
				continue
			}
			published++
		}
		total += published

		if int32(len(batch)) < l.cfg.BatchSize || published == 0 || ctx.Err() != nil {
			return total, nil
		}
	}
}

func (l *Listener) relay(ctx context.Context, event OutboxEvent) error {
	err := l.publishWithRetry(ctx, event)
	l.record(err)
	return err
}

// publishWithRetry publishes with a linear backoff, then marks the row sent.
// A row that publishes but fails to mark is published again later, so
// consumers see at-least-once delivery.
func (l *Listener) publishWithRetry(ctx context.Context, event OutboxEvent) error {
	var lastErr error
	for attempt := 1; attempt <= l.cfg.MaxRetries+1; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(l.cfg.RetryDelay * time.Duration(attempt-1)):
			}
		}

		lastErr = l.publisher.Publish(ctx, event)
		if lastErr != nil {
			log.Warn().
				Err(lastErr).
				Int("attempt", attempt).
				Str("event_id", event.ID.String()).
				Str("event_type", string(event.EventType)).
				Msg("outbox publish failed")
			continue
		}

		if err := l.store.MarkOutboxSent(ctx, event.ID); err != nil {
			return fmt.Errorf("failed to mark outbox event sent: %w", err)
		}
		log.Debug().
			Str("event_id", event.ID.String()).
			Str("event_type", string(event.EventType)).
			Int("attempt", attempt).
			Msg("outbox event published")
		return nil
	}
	return fmt.Errorf("publish failed after %d attempts: %w", l.cfg.MaxRetries+1, lastErr)
}
