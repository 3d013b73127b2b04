package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pickpool/go/internal/events"
)

type invalidations struct {
	seasons []uuid.UUID
}

func (i *invalidations) Invalidate(ctx context.Context, seasonID uuid.UUID) error {
	i.seasons = append(i.seasons, seasonID)
	return nil
}

func envelope(t *testing.T, eventType events.Type, payload interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	data, err := json.Marshal(events.Envelope{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		AggregateID: uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Payload:     raw,
	})
	require.NoError(t, err)
	return data
}

func dial(t *testing.T, srv *httptest.Server, seasonID uuid.UUID) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/scoreboard?season_id=" + seasonID.String()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestScoreboard_BroadcastsToSeasonSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := NewConnectionManager(DefaultConnectionConfig())
	go cm.Start(ctx)

	r := chi.NewRouter()
	NewHandler(cm).Routes(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	season := uuid.New()
	other := uuid.New()
	watching := dial(t, srv, season)
	elsewhere := dial(t, srv, other)

	require.Eventually(t, func() bool {
		return cm.Stats()["total_connections"] == 2
	}, time.Second, 10*time.Millisecond)

	inv := &invalidations{}
	consumer := NewEventConsumer(cm, inv, nil, DefaultJetStreamConsumerConfig())
	err := consumer.handle(ctx, envelope(t, events.ContestScored, events.ContestScoredPayload{
		ContestID:     uuid.NewString(),
		SeasonID:      season.String(),
		Status:        "final",
		Facts:         []string{"home_win"},
		PointsAwarded: 3,
	}))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{season}, inv.seasons)

	watching.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := watching.ReadMessage()
	require.NoError(t, err)

	var got ScoreboardEvent
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, events.ContestScored, got.Type)
	assert.Equal(t, season.String(), got.SeasonID)
	assert.Contains(t, string(got.Data), `"points_awarded":3`)

	elsewhere.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = elsewhere.ReadMessage()
	assert.Error(t, err)
}

func TestEventConsumer_IgnoresOtherEvents(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	inv := &invalidations{}
	consumer := NewEventConsumer(cm, inv, nil, DefaultJetStreamConsumerConfig())

	err := consumer.handle(context.Background(), envelope(t, events.ParticipantProvisioned, events.ParticipantProvisionedPayload{
		ParticipantID: uuid.NewString(),
	}))
	require.NoError(t, err)
	assert.Empty(t, inv.seasons)
	assert.Empty(t, cm.broadcastCh)

	err = consumer.handle(context.Background(), envelope(t, events.PeriodActivated, events.PeriodActivatedPayload{
		SeasonID: uuid.NewString(),
		Name:     "Week 3",
	}))
	require.NoError(t, err)
	assert.Empty(t, inv.seasons)
	assert.Len(t, cm.broadcastCh, 1)
}

func TestEventConsumer_RejectsBadPayloads(t *testing.T) {
	consumer := NewEventConsumer(NewConnectionManager(DefaultConnectionConfig()), nil, nil, DefaultJetStreamConsumerConfig())

	assert.Error(t, consumer.handle(context.Background(), []byte("not json")))
	assert.Error(t, consumer.handle(context.Background(), envelope(t, events.ContestScored, map[string]string{"season_id": "nope"})))
}

func TestHandleScoreboard_RequiresSeason(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(NewConnectionManager(DefaultConnectionConfig())).Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/scoreboard", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConnectionManager_BroadcastAfterUnregister(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	seasonID := uuid.New()
	conn := cm.newConnection(seasonID, nil)
	cm.registerConnection(conn)
	cm.unregisterConnection(conn)
	cm.unregisterConnection(conn)

	event := &ScoreboardEvent{ID: "evt", SeasonID: seasonID.String(), Type: events.ContestScored}
	assert.NotPanics(t, func() {
		assert.False(t, conn.enqueue([]byte("late")))
		cm.handleBroadcast(BroadcastMessage{SeasonID: seasonID, Event: event})
	})
	assert.Empty(t, conn.Send)
	assert.Equal(t, 0, cm.Stats()["total_connections"])
}

func TestConnectionManager_FullBufferDropsConnection(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	seasonID := uuid.New()
	conn := cm.newConnection(seasonID, nil)
	conn.Send = make(chan []byte, 1)
	cm.registerConnection(conn)

	event := &ScoreboardEvent{ID: "evt", SeasonID: seasonID.String(), Type: events.ContestScored}
	cm.handleBroadcast(BroadcastMessage{SeasonID: seasonID, Event: event})
	cm.handleBroadcast(BroadcastMessage{SeasonID: seasonID, Event: event})

	assert.True(t, conn.closed())
	assert.Len(t, conn.Send, 1)
	assert.Equal(t, 0, cm.Stats()["total_connections"])
}

func TestConnectionManager_ConcurrentUnregisterAndBroadcast(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	seasonID := uuid.New()
	event := &ScoreboardEvent{ID: "evt", SeasonID: seasonID.String(), Type: events.ContestScored}

	for round := 0; round < 50; round++ {
		conns := make([]*Connection, 8)
		for i := range conns {
			conns[i] = cm.newConnection(seasonID, nil)
			cm.registerConnection(conns[i])
		}

		var wg sync.WaitGroup
		for _, conn := range conns {
			wg.Add(1)
			go func(c *Connection) {
				defer wg.Done()
				cm.unregisterConnection(c)
			}(conn)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				cm.handleBroadcast(BroadcastMessage{SeasonID: seasonID, Event: event})
			}
		}()

		wg.Wait()
	}
	assert.Equal(t, 0, cm.Stats()["total_connections"])
}
