package teams

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetTeamByCode(ctx context.Context, code string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetVenueByName(ctx context.Context, name string) (*models.Venue, error)
}

// App handles team and venue lookups. Teams are reference data loaded by
// the seeder; nothing here writes.
type App struct {
	repo TeamsRepository
}

func NewApp(repo TeamsRepository) *App {
	return &App{
		repo: repo,
	}
}

func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := a.repo.GetTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

func (a *App) GetTeamByCode(ctx context.Context, code string) (*models.Team, error) {
	team, err := a.repo.GetTeamByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, fmt.Errorf("failed to get team by code: %w", err)
	}
	return team, nil
}

// ListTeams returns teams in name order. The placeholder team is left out
// unless the filter asks for it.
func (a *App) ListTeams(ctx context.Context, filter TeamFilter) ([]models.Team, error) {
	teams, err := a.repo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	out := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if t.Code == models.UnsetTeamCode && !filter.IncludeUnset {
			continue
		}
		if filter.City != "" && !strings.EqualFold(t.City, filter.City) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// UnsetTeam is the placeholder assigned to contests whose matchup isn't known yet.
func (a *App) UnsetTeam(ctx context.Context) (*models.Team, error) {
	team, err := a.repo.GetTeamByCode(ctx, models.UnsetTeamCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get unset team: %w", err)
	}
	return team, nil
}

func (a *App) DefaultVenue(ctx context.Context) (*models.Venue, error) {
	venue, err := a.repo.GetVenueByName(ctx, models.PlaceholderVenue)
	if err != nil {
		return nil, fmt.Errorf("failed to get default venue: %w", err)
	}
	return venue, nil
}
