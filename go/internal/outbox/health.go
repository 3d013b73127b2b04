package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthStatus struct {
	Healthy           bool          `json:"healthy"`
	DatabaseConnected bool          `json:"database_connected"`
	NATSConnected     *bool         `json:"nats_connected,omitempty"`
	Listener          ListenerStats `json:"listener"`
	Errors            []string      `json:"errors,omitempty"`
}

// HealthChecker reports on the database, the bus and the relay. A nil conn
// means the process runs without NATS, which is not a failure.
type HealthChecker struct {
	db       Pinger
	conn     *nats.Conn
	listener *Listener
	timeout  time.Duration
}

func NewHealthChecker(db Pinger, conn *nats.Conn, listener *Listener) *HealthChecker {
	return &HealthChecker{
		db:       db,
		conn:     conn,
		listener: listener,
		timeout:  2 * time.Second,
	}
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{Healthy: true}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		status.Healthy = false
		status.Errors = append(status.Errors, fmt.Sprintf("database ping failed: %v", err))
	} else {
		status.DatabaseConnected = true
	}

	if h.conn != nil {
		connected := h.conn.IsConnected()
		status.NATSConnected = &connected
		if !connected {
			status.Healthy = false
			status.Errors = append(status.Errors, "NATS disconnected")
		}
	}

	if h.listener != nil {
		status.Listener = h.listener.Stats()
		if !status.Listener.Running {
			status.Healthy = false
			status.Errors = append(status.Errors, "outbox listener not running")
		}
	}
	return status
}
