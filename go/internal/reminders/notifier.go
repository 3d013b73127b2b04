package reminders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const Subject = "pool.reminders"

// NATSNotifier publishes reminders for the email worker to deliver.
type NATSNotifier struct {
	nc      *nats.Conn
	subject string
}

func NewNATSNotifier(nc *nats.Conn) *NATSNotifier {
	return &NATSNotifier{
		nc:      nc,
		subject: Subject,
	}
}

func (n *NATSNotifier) Notify(ctx context.Context, msgs []Message) error {
	for _, msg := range msgs {
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal reminder: %w", err)
		}
		if err := n.nc.Publish(n.subject, data); err != nil {
			return fmt.Errorf("publish reminder to %s: %w", msg.To, err)
		}
	}
	if err := n.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush reminders: %w", err)
	}
	return nil
}

// LogNotifier only logs reminders. Used when no NATS URL is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, msgs []Message) error {
	for _, msg := range msgs {
		log.Info().
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Str("period_id", msg.PeriodID.String()).
			Msg("reminder")
	}
	return nil
}
