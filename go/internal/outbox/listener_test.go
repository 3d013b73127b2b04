package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pickpool/go/internal/events"
)

type fakeStore struct {
	mu     sync.Mutex
	events map[uuid.UUID]OutboxEvent
	sent   map[uuid.UUID]bool
}

func newFakeStore(evs ...OutboxEvent) *fakeStore {
	s := &fakeStore{events: map[uuid.UUID]OutboxEvent{}, sent: map[uuid.UUID]bool{}}
	for _, ev := range evs {
		s.events[ev.ID] = ev
	}
	return s
}

func (s *fakeStore) FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok || s.sent[id] {
		return nil, errors.New("not found")
	}
	return &ev, nil
}

func (s *fakeStore) FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []OutboxEvent
	for id, ev := range s.events {
		if int32(len(out)) == limit {
			break
		}
		if !s.sent[id] {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *fakeStore) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[id] = true
	return nil
}

type flakyPublisher struct {
	failures  int
	calls     int
	published []OutboxEvent
}

func (p *flakyPublisher) Publish(ctx context.Context, event OutboxEvent) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("nats unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

func testConfig() ListenerConfig {
	cfg := DefaultListenerConfig()
	cfg.MaxRetries = 3
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func scoredEvent() OutboxEvent {
	payload, _ := json.Marshal(events.ContestScoredPayload{ContestID: uuid.NewString(), Scored: 3})
	return OutboxEvent{
		ID:          uuid.New(),
		AggregateID: uuid.New(),
		EventType:   string(events.ContestScored),
		Payload:     payload,
		CreatedAt:   time.Date(2025, 9, 14, 23, 0, 0, 0, time.UTC),
	}
}

func TestPublishWithRetryRecovers(t *testing.T) {
	ev := scoredEvent()
	store := newFakeStore(ev)
	pub := &flakyPublisher{failures: 2}
	l := &Listener{store: store, publisher: pub, cfg: testConfig()}

	require.NoError(t, l.publishWithRetry(context.Background(), ev))
	assert.Equal(t, 3, pub.calls)
	assert.True(t, store.sent[ev.ID])
}

func TestPublishWithRetryGivesUp(t *testing.T) {
	ev := scoredEvent()
	store := newFakeStore(ev)
	pub := &flakyPublisher{failures: 100}
	l := &Listener{store: store, publisher: pub, cfg: testConfig()}

	err := l.publishWithRetry(context.Background(), ev)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 4 attempts")
	assert.False(t, store.sent[ev.ID])
}

func TestHandleNotification(t *testing.T) {
	ev := scoredEvent()
	store := newFakeStore(ev)
	pub := &flakyPublisher{}
	l := &Listener{store: store, publisher: pub, cfg: testConfig()}

	require.NoError(t, l.handleNotification(context.Background(), ev.ID.String()))
	require.Len(t, pub.published, 1)
	assert.Equal(t, ev.ID, pub.published[0].ID)

	assert.Error(t, l.handleNotification(context.Background(), "not-a-uuid"))
	assert.Error(t, l.handleNotification(context.Background(), ev.ID.String()), "already sent")
}

func TestProcessUnsentPublishesEverything(t *testing.T) {
	a, b := scoredEvent(), scoredEvent()
	store := newFakeStore(a, b)
	pub := &flakyPublisher{}
	l := &Listener{store: store, publisher: pub, cfg: testConfig()}

	n, err := l.processUnsent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, pub.published, 2)
	assert.True(t, store.sent[a.ID])
	assert.True(t, store.sent[b.ID])

	stats := l.Stats()
	assert.Equal(t, uint64(2), stats.Published)
	assert.Zero(t, stats.Failed)
	assert.False(t, stats.LastPublished.IsZero())
}

func TestProcessUnsentDrainsInBatches(t *testing.T) {
	var evs []OutboxEvent
	for i := 0; i < 5; i++ {
		evs = append(evs, scoredEvent())
	}
	store := newFakeStore(evs...)
	pub := &flakyPublisher{}
	cfg := testConfig()
	cfg.BatchSize = 2
	l := &Listener{store: store, publisher: pub, cfg: cfg}

	n, err := l.processUnsent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Len(t, store.sent, 5)
}

func TestProcessUnsentStopsWhenNothingPublishes(t *testing.T) {
	store := newFakeStore(scoredEvent(), scoredEvent(), scoredEvent())
	pub := &flakyPublisher{failures: 1000}
	cfg := testConfig()
	cfg.BatchSize = 2
	cfg.MaxRetries = 0
	l := &Listener{store: store, publisher: pub, cfg: cfg}

	n, err := l.processUnsent(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 2, pub.calls)
	assert.Equal(t, uint64(2), l.Stats().Failed)
}

func TestStopWithoutConnection(t *testing.T) {
	l := newListener(newFakeStore(), &flakyPublisher{}, testConfig(), nil)
	assert.NoError(t, l.Stop())
	assert.False(t, l.Stats().Running)
}

func TestMarshalEnvelope(t *testing.T) {
	ev := scoredEvent()
	data, err := MarshalEnvelope(ev)
	require.NoError(t, err)

	var env events.Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, ev.ID.String(), env.EventID)
	assert.Equal(t, events.ContestScored, env.EventType)
	assert.Equal(t, ev.AggregateID.String(), env.AggregateID)
	assert.True(t, env.Timestamp.Equal(ev.CreatedAt))
	assert.JSONEq(t, string(ev.Payload), string(env.Payload))
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }

func TestHealthChecker(t *testing.T) {
	l := newListener(newFakeStore(), &flakyPublisher{}, testConfig(), nil)

	status := NewHealthChecker(stubPinger{}, nil, nil).Check(context.Background())
	assert.True(t, status.Healthy)
	assert.True(t, status.DatabaseConnected)
	assert.Nil(t, status.NATSConnected)

	status = NewHealthChecker(stubPinger{err: errors.New("connection refused")}, nil, l).Check(context.Background())
	assert.False(t, status.Healthy)
	assert.False(t, status.DatabaseConnected)
	assert.Len(t, status.Errors, 2)

	l.setRunning(true)
	status = NewHealthChecker(stubPinger{}, nil, l).Check(context.Background())
	assert.True(t, status.Healthy)
	assert.True(t, status.Listener.Running)
}
