package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
	"github.com/mcdev12/pickpool/go/internal/predictions"
	"github.com/mcdev12/pickpool/go/internal/sqlutil"
)

// Repository implements provisioning data access. Prediction get-or-create
// comes from the embedded predictions repository.
type Repository struct {
	*predictions.Repository
	queries *pooldb.Queries
}

func NewRepository(queries *pooldb.Queries) *Repository {
	return &Repository{
		Repository: predictions.NewRepository(queries),
		queries:    queries,
	}
}

func (r *Repository) ListContestIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := r.queries.ListContestIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contest ids: %w", err)
	}
	return ids, nil
}

func (r *Repository) ListParticipantIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := r.queries.ListParticipantIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participant ids: %w", err)
	}
	return ids, nil
}

func (r *Repository) PaymentAuditExists(ctx context.Context, participantID uuid.UUID) (bool, error) {
	exists, err := r.queries.PaymentAuditExists(ctx, participantID)
	if err != nil {
		return false, fmt.Errorf("failed to check payment audit: %w", err)
	}
	return exists, nil
}

func (r *Repository) CreatePaymentAudit(ctx context.Context, audit models.PaymentAudit) error {
	err := r.queries.CreatePaymentAudit(ctx, pooldb.CreatePaymentAuditParams{
		ParticipantID: audit.ParticipantID,
		HasPaid:       audit.HasPaid,
		Method:        sqlutil.ToSqlString(audit.Method),
		PaidAt:        sqlutil.ToSqlTime(audit.PaidAt),
	})
	if err != nil {
		return fmt.Errorf("failed to create payment audit: %w", pooldb.Translate(err))
	}
	return nil
}

func (r *Repository) PreferencesExist(ctx context.Context, participantID uuid.UUID) (bool, error) {
	exists, err := r.queries.PreferencesExist(ctx, participantID)
	if err != nil {
		return false, fmt.Errorf("failed to check preferences: %w", err)
	}
	return exists, nil
}

func (r *Repository) CreatePreferences(ctx context.Context, prefs models.Preferences) error {
	err := r.queries.CreatePreferences(ctx, pooldb.CreatePreferencesParams{
		ParticipantID: prefs.ParticipantID,
		PicksLayout:   int16(prefs.PicksLayout),
		WinnersLayout: int16(prefs.WinnersLayout),
	})
	if err != nil {
		return fmt.Errorf("failed to create preferences: %w", pooldb.Translate(err))
	}
	return nil
}

func (r *Repository) CountAlerts(ctx context.Context, participantID uuid.UUID) (int, error) {
	n, err := r.queries.CountAlerts(ctx, participantID)
	if err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}
	return int(n), nil
}

func (r *Repository) CreateAlert(ctx context.Context, alert models.Alert) error {
	metadata, err := sqlutil.ToNullRawMessage(alert.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal alert metadata: %w", err)
	}
	err = r.queries.CreateAlert(ctx, pooldb.CreateAlertParams{
		ID:            alert.ID,
		ParticipantID: alert.ParticipantID,
		Level:         int16(alert.Level),
		Message:       alert.Message,
		Metadata:      metadata,
	})
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", pooldb.Translate(err))
	}
	return nil
}
