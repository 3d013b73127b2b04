package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pickpool/go/internal/clock"
	"github.com/mcdev12/pickpool/go/internal/contests"
	"github.com/mcdev12/pickpool/go/internal/events"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
)

const day = 24 * time.Hour

// ScheduleRepository defines what the generator needs from persistence
type ScheduleRepository interface {
	CountPeriodsBySeason(ctx context.Context, seasonID uuid.UUID) (int, error)
	GetPeriodType(ctx context.Context, id models.PeriodTypeID) (*models.PeriodType, error)
	GetPredictionKind(ctx context.Context, id models.PredictionKindID) (*models.PredictionKind, error)
	GetTeamByCode(ctx context.Context, code string) (*models.Team, error)
	GetVenueByName(ctx context.Context, name string) (*models.Venue, error)
	CreatePeriod(ctx context.Context, p models.Period) (*models.Period, error)
	CreateWinner(ctx context.Context, w models.Winner) (*models.Winner, error)
}

// ContestCreator persists a contest and fans it out to participants
type ContestCreator interface {
	CreateContest(ctx context.Context, req contests.CreateContestRequest) (*models.Contest, error)
}

// PeriodActivator sets the single active period
type PeriodActivator interface {
	Activate(ctx context.Context, periodID uuid.UUID) (*models.Period, error)
}

// EventRecorder writes domain events to the outbox
type EventRecorder interface {
	Record(ctx context.Context, aggregateID uuid.UUID, eventType events.Type, payload interface{}) error
}

// Report describes one generation run.
type Report struct {
	SeasonID uuid.UUID `json:"season_id"`
	Skipped  bool      `json:"skipped"`
	Periods  int       `json:"periods"`
	Contests int       `json:"contests"`
	Winners  int       `json:"winners"`
	Complete bool      `json:"complete"`
	Error    string    `json:"error,omitempty"`
}

// Generator lays out a season's periods and contests from a Template.
type Generator struct {
	repo      ScheduleRepository
	contests  ContestCreator
	activator PeriodActivator
	recorder  EventRecorder
	template  *Template
	clock     clock.Clock
}

func NewGenerator(repo ScheduleRepository, contests ContestCreator, activator PeriodActivator, recorder EventRecorder, template *Template, clk clock.Clock) *Generator {
	return &Generator{
		repo:      repo,
		contests:  contests,
		activator: activator,
		recorder:  recorder,
		template:  template,
		clock:     clk,
	}
}

type plan struct {
	tier Tier
	kind *models.PeriodType
}

// Generate materializes the template for a season that has no periods yet.
// Missing reference rows fail before anything is written. A failure once
// writing has started is logged and leaves what was created in place; the
// report then has Complete false.
func (g *Generator) Generate(ctx context.Context, season models.Season) (*Report, error) {
	report := &Report{SeasonID: season.ID}

	existing, err := g.repo.CountPeriodsBySeason(ctx, season.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count periods: %w", err)
	}
	if existing > 0 {
		log.Info().Str("season_id", season.ID.String()).Int("periods", existing).Msg("season already scheduled, skipping generation")
		report.Skipped = true
		return report, nil
	}

	if _, err := g.repo.GetPredictionKind(ctx, models.KindNoPick); err != nil {
		if errors.Is(err, pooldb.ErrNotFound) {
			return nil, ErrMissingPredictionKind
		}
		return nil, fmt.Errorf("failed to get no-pick prediction kind: %w", err)
	}

	plans := make([]plan, 0, len(g.template.Tiers))
	for _, tier := range g.template.Tiers {
		pt, err := g.repo.GetPeriodType(ctx, tier.PeriodType)
		if err != nil {
			if errors.Is(err, pooldb.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrMissingPeriodType, tier.PeriodType)
			}
			return nil, fmt.Errorf("failed to get period type: %w", err)
		}
		plans = append(plans, plan{tier: tier, kind: pt})
	}

	unset, err := g.repo.GetTeamByCode(ctx, models.UnsetTeamCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get unset team: %w", err)
	}
	venue, err := g.repo.GetVenueByName(ctx, models.PlaceholderVenue)
	if err != nil {
		return nil, fmt.Errorf("failed to get placeholder venue: %w", err)
	}

	if err := g.materialize(ctx, season, plans, unset.ID, venue.ID, report); err != nil {
		report.Error = err.Error()
		log.Error().Err(err).
			Str("season_id", season.ID.String()).
			Int("periods", report.Periods).
			Int("contests", report.Contests).
			Msg("schedule generation stopped early")
	} else {
		report.Complete = true
		log.Info().
			Str("season_id", season.ID.String()).
			Int("periods", report.Periods).
			Int("contests", report.Contests).
			Int("winners", report.Winners).
			Msg("season scheduled")
	}

	if g.recorder != nil {
		err := g.recorder.Record(ctx, season.ID, events.SeasonScheduled, events.SeasonScheduledPayload{
			SeasonID:    season.ID.String(),
			Periods:     report.Periods,
			Contests:    report.Contests,
			Winners:     report.Winners,
			Complete:    report.Complete,
			ScheduledAt: g.clock.Now(),
		})
		if err != nil {
			log.Error().Err(err).Str("season_id", season.ID.String()).Msg("failed to record season scheduled event")
		}
	}
	return report, nil
}

func (g *Generator) materialize(ctx context.Context, season models.Season, plans []plan, unsetTeam, venue uuid.UUID, report *Report) error {
	var (
		start    = g.clock.Now()
		prevEnd  time.Time
		sequence int
	)
	for _, p := range plans {
		if p.tier.Optional && !p.kind.Active {
			log.Info().Str("season_id", season.ID.String()).Str("period_type", p.kind.Name).Msg("period type inactive, tier skipped")
			continue
		}
		for _, spec := range p.tier.Periods {
			if sequence > 0 {
				start = prevEnd.Add(time.Duration(g.template.GapDays) * day)
			}
			sequence++
			end := start.Add(time.Duration(g.template.days(spec)) * day)

			period, err := g.repo.CreatePeriod(ctx, models.Period{
				ID:           uuid.New(),
				SeasonID:     season.ID,
				PeriodTypeID: p.kind.ID,
				Sequence:     sequence,
				Name:         spec.Name,
				StartsAt:     start,
				EndsAt:       end,
				CreatedAt:    g.clock.Now(),
			})
			if err != nil {
				return fmt.Errorf("failed to create period %q: %w", spec.Name, err)
			}
			report.Periods++
			prevEnd = end

			if spec.Winner {
				if _, err := g.repo.CreateWinner(ctx, models.Winner{ID: uuid.New(), PeriodID: period.ID, CreatedAt: g.clock.Now()}); err != nil {
					return fmt.Errorf("failed to create winner for %q: %w", spec.Name, err)
				}
				report.Winners++
			}

			for n := 1; n <= spec.Contests; n++ {
				_, err := g.contests.CreateContest(ctx, contests.CreateContestRequest{
					PeriodID:      period.ID,
					Number:        n,
					StartsAt:      start,
					HomeTeamID:    &unsetTeam,
					VisitorTeamID: &unsetTeam,
					VenueID:       &venue,
				})
				if err != nil {
					return fmt.Errorf("failed to create contest %d of %q: %w", n, spec.Name, err)
				}
				report.Contests++
			}

			if spec.Activate && g.activator != nil {
				if _, err := g.activator.Activate(ctx, period.ID); err != nil {
					return fmt.Errorf("failed to activate %q: %w", spec.Name, err)
				}
			}
		}
	}
	return nil
}
