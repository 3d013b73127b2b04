// Package memstore is an in-memory implementation of every pool repository.
// It backs unit tests and the poolctl --memory dry runs.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/events"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
)

// RecordedEvent is an outbox event captured by Record.
type RecordedEvent struct {
	AggregateID uuid.UUID
	Type        events.Type
	Payload     interface{}
}

type pair struct {
	contest     uuid.UUID
	participant uuid.UUID
}

type Store struct {
	mu sync.RWMutex

	seasons      map[uuid.UUID]models.Season
	periods      map[uuid.UUID]models.Period
	periodTypes  map[models.PeriodTypeID]models.PeriodType
	kinds        map[models.PredictionKindID]models.PredictionKind
	contests     map[uuid.UUID]models.Contest
	teams        map[uuid.UUID]models.Team
	venues       map[uuid.UUID]models.Venue
	participants map[uuid.UUID]models.Participant
	predictions  map[uuid.UUID]models.Prediction
	byPair       map[pair]uuid.UUID
	audits       map[uuid.UUID]models.PaymentAudit
	preferences  map[uuid.UUID]models.Preferences
	alerts       []models.Alert
	winners      []models.Winner
	active       map[models.ActiveKey]uuid.UUID
	events       []RecordedEvent

	// Failure hooks. A non-nil hook returning an error makes the matching call fail.
	FailGetOrCreate  func(contestID, participantID uuid.UUID) error
	FailCreatePeriod func(p models.Period) error
}

func New() *Store {
	return &Store{
		seasons:      make(map[uuid.UUID]models.Season),
		periods:      make(map[uuid.UUID]models.Period),
		periodTypes:  make(map[models.PeriodTypeID]models.PeriodType),
		kinds:        make(map[models.PredictionKindID]models.PredictionKind),
		contests:     make(map[uuid.UUID]models.Contest),
		teams:        make(map[uuid.UUID]models.Team),
		venues:       make(map[uuid.UUID]models.Venue),
		participants: make(map[uuid.UUID]models.Participant),
		predictions:  make(map[uuid.UUID]models.Prediction),
		byPair:       make(map[pair]uuid.UUID),
		audits:       make(map[uuid.UUID]models.PaymentAudit),
		preferences:  make(map[uuid.UUID]models.Preferences),
		active:       make(map[models.ActiveKey]uuid.UUID),
	}
}

// NewSeeded returns a store holding the reference rows the seed tool writes:
// all six prediction kinds, the three period types (active), the sentinel
// team and the placeholder venue.
func NewSeeded() *Store {
	s := New()
	kinds := []models.PredictionKind{
		{ID: models.KindNoPick, Name: "No Pick", Description: "No prediction made"},
		{ID: models.KindHomeWin, Name: "Home Win", Description: "Home team wins"},
		{ID: models.KindVisitorWin, Name: "Visitor Win", Description: "Visiting team wins"},
		{ID: models.KindWithinThree, Name: "Within Three", Description: "Decided by three points or fewer"},
		{ID: models.KindRegulationTie, Name: "Regulation Tie", Description: "Tie stands after regulation"},
		{ID: models.KindOvertimeTie, Name: "Overtime Tie", Description: "Tie stands after overtime"},
	}
	for _, k := range kinds {
		k.SortValue = int(k.ID)
		k.Active = true
		s.kinds[k.ID] = k
	}
	s.periodTypes[models.PeriodTypePreseason] = models.PeriodType{ID: models.PeriodTypePreseason, Name: "Preseason", Active: true}
	s.periodTypes[models.PeriodTypeRegular] = models.PeriodType{ID: models.PeriodTypeRegular, Name: "Regular Season", Active: true}
	s.periodTypes[models.PeriodTypePostseason] = models.PeriodType{ID: models.PeriodTypePostseason, Name: "Postseason", Active: true}

	unset := models.Team{ID: uuid.New(), Code: models.UnsetTeamCode, Name: "To Be Determined"}
	s.teams[unset.ID] = unset
	venue := models.Venue{ID: uuid.New(), Name: models.PlaceholderVenue}
	s.venues[venue.ID] = venue
	return s
}

// SetPeriodTypeActive toggles whether a tier is generated.
func (s *Store) SetPeriodTypeActive(id models.PeriodTypeID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pt := s.periodTypes[id]
	pt.Active = active
	s.periodTypes[id] = pt
}

// DeletePeriodType removes a reference row, for configuration error tests.
func (s *Store) DeletePeriodType(id models.PeriodTypeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.periodTypes, id)
}

// DeletePredictionKind removes a reference row, for configuration error tests.
func (s *Store) DeletePredictionKind(id models.PredictionKindID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.kinds, id)
}

// AddTeam registers a team.
func (s *Store) AddTeam(t models.Team) models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.teams[t.ID] = t
	return t
}

// Seasons

func (s *Store) CreateSeason(ctx context.Context, season models.Season) (*models.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if season.ID == uuid.Nil {
		season.ID = uuid.New()
	}
	if _, ok := s.seasons[season.ID]; ok {
		return nil, pooldb.ErrDuplicate
	}
	season.IsActive = false
	if season.CreatedAt.IsZero() {
		season.CreatedAt = time.Now().UTC()
	}
	s.seasons[season.ID] = season
	return &season, nil
}

func (s *Store) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	season, ok := s.seasons[id]
	if !ok {
		return nil, pooldb.ErrNotFound
	}
	season.IsActive = s.active[models.ActiveSeason] == season.ID
	return &season, nil
}

func (s *Store) ListSeasons(ctx context.Context) ([]models.Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Season, 0, len(s.seasons))
	for _, season := range s.seasons {
		season.IsActive = s.active[models.ActiveSeason] == season.ID
		out = append(out, season)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out, nil
}

// Active registers

func (s *Store) GetActiveID(ctx context.Context, key models.ActiveKey) (uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.active[key]
	if !ok {
		return uuid.Nil, pooldb.ErrNotFound
	}
	return id, nil
}

func (s *Store) SetActiveID(ctx context.Context, key models.ActiveKey, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[key] = id
	return nil
}

// Periods

func (s *Store) CreatePeriod(ctx context.Context, p models.Period) (*models.Period, error) {
	if s.FailCreatePeriod != nil {
		if err := s.FailCreatePeriod(p); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for _, existing := range s.periods {
		if existing.SeasonID == p.SeasonID && existing.Sequence == p.Sequence {
			return nil, pooldb.ErrDuplicate
		}
	}
	p.IsActive = false
	s.periods[p.ID] = p
	return &p, nil
}

func (s *Store) GetPeriod(ctx context.Context, id uuid.UUID) (*models.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.periods[id]
	if !ok {
		return nil, pooldb.ErrNotFound
	}
	p.IsActive = s.active[models.ActivePeriod] == p.ID
	return &p, nil
}

func (s *Store) FindPeriodAt(ctx context.Context, t time.Time) (*models.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *models.Period
	for _, p := range s.periods {
		if !p.Contains(t) {
			continue
		}
		if found == nil || p.StartsAt.After(found.StartsAt) {
			p := p
			p.IsActive = s.active[models.ActivePeriod] == p.ID
			found = &p
		}
	}
	if found == nil {
		return nil, pooldb.ErrNotFound
	}
	return found, nil
}

func (s *Store) ListPeriodsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Period
	for _, p := range s.periods {
		if p.SeasonID == seasonID {
			p.IsActive = s.active[models.ActivePeriod] == p.ID
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (s *Store) CountPeriodsBySeason(ctx context.Context, seasonID uuid.UUID) (int, error) {
	periods, _ := s.ListPeriodsBySeason(ctx, seasonID)
	return len(periods), nil
}

func (s *Store) GetPeriodType(ctx context.Context, id models.PeriodTypeID) (*models.PeriodType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pt, ok := s.periodTypes[id]
	if !ok {
		return nil, pooldb.ErrNotFound
	}
	return &pt, nil
}

func (s *Store) CreateWinner(ctx context.Context, w models.Winner) (*models.Winner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	s.winners = append(s.winners, w)
	return &w, nil
}

// Contests

func (s *Store) CreateContest(ctx context.Context, c models.Contest) (*models.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for _, existing := range s.contests {
		if existing.PeriodID == c.PeriodID && existing.Number == c.Number {
			return nil, pooldb.ErrDuplicate
		}
	}
	s.contests[c.ID] = c
	return &c, nil
}

func (s *Store) GetContest(ctx context.Context, id uuid.UUID) (*models.Contest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contests[id]
	if !ok {
		return nil, pooldb.ErrNotFound
	}
	return &c, nil
}

func (s *Store) ListContestsByPeriod(ctx context.Context, periodID uuid.UUID) ([]models.Contest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Contest
	for _, c := range s.contests {
		if c.PeriodID == periodID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (s *Store) ListContestIDs(ctx context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Contest, 0, len(s.contests))
	for _, c := range s.contests {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].StartsAt.Equal(all[j].StartsAt) {
			return all[i].Number < all[j].Number
		}
		return all[i].StartsAt.Before(all[j].StartsAt)
	})
	ids := make([]uuid.UUID, len(all))
	for i, c := range all {
		ids[i] = c.ID
	}
	return ids, nil
}

func (s *Store) SaveContestResult(ctx context.Context, id uuid.UUID, r models.ContestResult) (*models.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contests[id]
	if !ok {
		return nil, pooldb.ErrNotFound
	}
	c.HomeScore = r.HomeScore
	c.VisitorScore = r.VisitorScore
	c.RegulationTie = r.RegulationTie
	c.UpdatedAt = r.SavedAt
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	s.contests[id] = c
	return &c, nil
}

// Teams

func (s *Store) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok {
		return nil, pooldb.ErrNotFound
	}
	return &t, nil
}

func (s *Store) GetTeamByCode(ctx context.Context, code string) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.teams {
		if t.Code == code {
			return &t, nil
		}
	}
	return nil, pooldb.ErrNotFound
}

func (s *Store) ListTeams(ctx context.Context) ([]models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetVenueByName(ctx context.Context, name string) (*models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.venues {
		if v.Name == name {
			return &v, nil
		}
	}
	return nil, pooldb.ErrNotFound
}
