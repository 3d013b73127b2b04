package teams

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetTeam(ctx context.Context, id uuid.UUID) (pooldb.Team, error)
	GetTeamByCode(ctx context.Context, code string) (pooldb.Team, error)
	ListTeams(ctx context.Context) ([]pooldb.Team, error)
	GetVenueByName(ctx context.Context, name string) (pooldb.Venue, error)
}

// Repository implements team data access operations
type Repository struct {
	queries Querier
}

func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	row, err := r.queries.GetTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", pooldb.Translate(err))
	}
	team := row.Model()
	return &team, nil
}

func (r *Repository) GetTeamByCode(ctx context.Context, code string) (*models.Team, error) {
	row, err := r.queries.GetTeamByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get team %s: %w", code, pooldb.Translate(err))
	}
	team := row.Model()
	return &team, nil
}

func (r *Repository) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := r.queries.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	teams := make([]models.Team, len(rows))
	for i, row := range rows {
		teams[i] = row.Model()
	}
	return teams, nil
}

func (r *Repository) GetVenueByName(ctx context.Context, name string) (*models.Venue, error) {
	row, err := r.queries.GetVenueByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue %s: %w", name, pooldb.Translate(err))
	}
	venue := row.Model()
	return &venue, nil
}
