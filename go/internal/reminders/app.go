package reminders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/models"
)

// RemindersRepository resolves who still owes picks for a period
type RemindersRepository interface {
	ListNoPickEmails(ctx context.Context, periodID uuid.UUID) ([]string, error)
}

// PeriodResolver returns the period reminders are sent for
type PeriodResolver interface {
	CurrentPeriod(ctx context.Context) (*models.Period, error)
}

// Message is a single reminder email handed to the notifier.
type Message struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	PeriodID uuid.UUID `json:"period_id"`
}

type Notifier interface {
	Notify(ctx context.Context, msgs []Message) error
}

// Result describes one reminder run.
type Result struct {
	PeriodID   uuid.UUID `json:"period_id"`
	PeriodName string    `json:"period_name"`
	Recipients []string  `json:"recipients"`
	Sent       int       `json:"sent"`
}

type App struct {
	repo     RemindersRepository
	periods  PeriodResolver
	notifier Notifier
	template Template
	clock    clock.Clock
}

func NewApp(repo RemindersRepository, periods PeriodResolver, notifier Notifier, template Template, clk clock.Clock) *App {
	return &App{
		repo:     repo,
		periods:  periods,
		notifier: notifier,
		template: template,
		clock:    clk,
	}
}

// Recipients returns the emails of participants holding a no-pick on any
// contest of the current period.
func (a *App) Recipients(ctx context.Context) (*models.Period, []string, error) {
	period, err := a.periods.CurrentPeriod(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve current period: %w", err)
	}
	emails, err := a.repo.ListNoPickEmails(ctx, period.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list recipients: %w", err)
	}
	return period, emails, nil
}

// Send renders one message per recipient and hands them to the notifier.
func (a *App) Send(ctx context.Context) (*Result, error) {
	period, emails, err := a.Recipients(ctx)
	if err != nil {
		return nil, err
	}
	result := &Result{
		PeriodID:   period.ID,
		PeriodName: period.Name,
		Recipients: emails,
	}
	if len(emails) == 0 {
		log.Info().Str("period_id", period.ID.String()).Msg("no reminders to send")
		return result, nil
	}

	subject, body := a.template.Render(period.Name)
	msgs := make([]Message, len(emails))
	for i, email := range emails {
		msgs[i] = Message{
			To:       email,
			Subject:  subject,
			Body:     body,
			PeriodID: period.ID,
		}
	}
	if err := a.notifier.Notify(ctx, msgs); err != nil {
		return nil, fmt.Errorf("failed to send reminders: %w", err)
	}
	result.Sent = len(msgs)

	log.Info().
		Str("period_id", period.ID.String()).
		Str("period", period.Name).
		Int("sent", result.Sent).
		Time("at", a.clock.Now()).
		Msg("reminders sent")
	return result, nil
}
