package participants

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
	"github.com/mcdev12/pickpool/go/internal/sqlutil"
)

type Repository struct {
	queries *pooldb.Queries
}

func NewRepository(queries *pooldb.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

func (r *Repository) CreateParticipant(ctx context.Context, p models.Participant) (*models.Participant, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	row, err := r.queries.CreateParticipant(ctx, pooldb.CreateParticipantParams{
		ID:             p.ID,
		Username:       p.Username,
		Email:          p.Email,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		FavoriteTeamID: sqlutil.ToNullUUID(p.FavoriteTeamID),
		Timezone:       p.Timezone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", pooldb.Translate(err))
	}
	participant := row.Model()
	return &participant, nil
}

func (r *Repository) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	row, err := r.queries.GetParticipant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", pooldb.Translate(err))
	}
	participant := row.Model()
	return &participant, nil
}

func (r *Repository) GetParticipantByUsername(ctx context.Context, username string) (*models.Participant, error) {
	row, err := r.queries.GetParticipantByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant by username: %w", pooldb.Translate(err))
	}
	participant := row.Model()
	return &participant, nil
}

func (r *Repository) GetParticipantByEmail(ctx context.Context, email string) (*models.Participant, error) {
	row, err := r.queries.GetParticipantByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant by email: %w", pooldb.Translate(err))
	}
	participant := row.Model()
	return &participant, nil
}

func (r *Repository) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	rows, err := r.queries.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	out := make([]models.Participant, len(rows))
	for i, row := range rows {
		out[i] = row.Model()
	}
	return out, nil
}
