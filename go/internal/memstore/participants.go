package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/events"
	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/pooldb"
)

// Participants

func (s *Store) CreateParticipant(ctx context.Context, p models.Participant) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for _, existing := range s.participants {
		if strings.EqualFold(existing.Username, p.Username) || strings.EqualFold(existing.Email, p.Email) {
			return nil, pooldb.ErrDuplicate
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.participants[p.ID] = p
	return &p, nil
}

func (s *Store) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participants[id]
	if !ok {
		return nil, pooldb.ErrNotFound
	}
	return &p, nil
}

func (s *Store) GetParticipantByUsername(ctx context.Context, username string) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.participants {
		if strings.EqualFold(p.Username, username) {
			return &p, nil
		}
	}
	return nil, pooldb.ErrNotFound
}

func (s *Store) GetParticipantByEmail(ctx context.Context, email string) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.participants {
		if strings.EqualFold(p.Email, email) {
			return &p, nil
		}
	}
	return nil, pooldb.ErrNotFound
}

func (s *Store) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *Store) ListParticipantIDs(ctx context.Context) ([]uuid.UUID, error) {
	participants, _ := s.ListParticipants(ctx)
	ids := make([]uuid.UUID, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return ids, nil
}

// Predictions

func (s *Store) GetOrCreatePrediction(ctx context.Context, contestID, participantID uuid.UUID) (*models.Prediction, bool, error) {
	if s.FailGetOrCreate != nil {
		if err := s.FailGetOrCreate(contestID, participantID); err != nil {
			return nil, false, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pair{contest: contestID, participant: participantID}
	if id, ok := s.byPair[key]; ok {
		p := s.predictions[id]
		return &p, false, nil
	}
	if _, ok := s.contests[contestID]; !ok {
		return nil, false, pooldb.ErrNotFound
	}
	if _, ok := s.participants[participantID]; !ok {
		return nil, false, pooldb.ErrNotFound
	}
	p := models.Prediction{
		ID:            uuid.New(),
		ContestID:     contestID,
		ParticipantID: participantID,
		KindID:        models.KindNoPick,
		UpdatedAt:     time.Now().UTC(),
	}
	s.predictions[p.ID] = p
	s.byPair[key] = p.ID
	return &p, true, nil
}

func (s *Store) GetPrediction(ctx context.Context, id uuid.UUID) (*models.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.predictions[id]
	if !ok {
		return nil, pooldb.ErrNotFound
	}
	return &p, nil
}

func (s *Store) ResetContestScores(ctx context.Context, contestID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.predictions {
		if p.ContestID == contestID {
			p.Score = 0
			s.predictions[id] = p
		}
	}
	return nil
}

func (s *Store) UpdatePredictionScore(ctx context.Context, id uuid.UUID, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.predictions[id]
	if !ok {
		return pooldb.ErrNotFound
	}
	p.Score = score
	s.predictions[id] = p
	return nil
}

func (s *Store) UpdatePredictionKind(ctx context.Context, id uuid.UUID, kind models.PredictionKindID, at time.Time) (*models.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.predictions[id]
	if !ok {
		return nil, pooldb.ErrNotFound
	}
	p.KindID = kind
	p.UpdatedAt = at
	s.predictions[id] = p
	return &p, nil
}

func (s *Store) ListPredictionsByParticipantPeriod(ctx context.Context, participantID, periodID uuid.UUID) ([]models.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Prediction
	for _, p := range s.predictions {
		if p.ParticipantID != participantID {
			continue
		}
		if c, ok := s.contests[p.ContestID]; ok && c.PeriodID == periodID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.contests[out[i].ContestID].Number < s.contests[out[j].ContestID].Number
	})
	return out, nil
}

func (s *Store) ListPeriodScores(ctx context.Context, seasonID uuid.UUID) ([]models.PeriodScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type key struct{ period, participant uuid.UUID }
	totals := make(map[key]int)
	for _, p := range s.predictions {
		c, ok := s.contests[p.ContestID]
		if !ok {
			continue
		}
		period, ok := s.periods[c.PeriodID]
		if !ok || period.SeasonID != seasonID {
			continue
		}
		totals[key{period: c.PeriodID, participant: p.ParticipantID}] += p.Score
	}
	out := make([]models.PeriodScore, 0, len(totals))
	for k, pts := range totals {
		out = append(out, models.PeriodScore{ParticipantID: k.participant, PeriodID: k.period, Points: pts})
	}
	return out, nil
}

func (s *Store) ListNoPickEmails(ctx context.Context, periodID uuid.UUID) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, p := range s.predictions {
		if p.KindID != models.KindNoPick {
			continue
		}
		c, ok := s.contests[p.ContestID]
		if !ok || c.PeriodID != periodID {
			continue
		}
		if participant, ok := s.participants[p.ParticipantID]; ok && participant.Email != "" {
			seen[participant.Email] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for email := range seen {
		out = append(out, email)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) GetPredictionKind(ctx context.Context, id models.PredictionKindID) (*models.PredictionKind, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.kinds[id]
	if !ok {
		return nil, pooldb.ErrNotFound
	}
	return &k, nil
}

// Provisioning

func (s *Store) PaymentAuditExists(ctx context.Context, participantID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.audits[participantID]
	return ok, nil
}

func (s *Store) CreatePaymentAudit(ctx context.Context, a models.PaymentAudit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.audits[a.ParticipantID]; ok {
		return pooldb.ErrDuplicate
	}
	s.audits[a.ParticipantID] = a
	return nil
}

func (s *Store) PreferencesExist(ctx context.Context, participantID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.preferences[participantID]
	return ok, nil
}

func (s *Store) CreatePreferences(ctx context.Context, p models.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.preferences[p.ParticipantID]; ok {
		return pooldb.ErrDuplicate
	}
	s.preferences[p.ParticipantID] = p
	return nil
}

func (s *Store) CountAlerts(ctx context.Context, participantID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, a := range s.alerts {
		if a.ParticipantID == participantID {
			n++
		}
	}
	return n, nil
}

func (s *Store) CreateAlert(ctx context.Context, a models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	s.alerts = append(s.alerts, a)
	return nil
}

// Events

func (s *Store) Record(ctx context.Context, aggregateID uuid.UUID, eventType events.Type, payload interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, RecordedEvent{AggregateID: aggregateID, Type: eventType, Payload: payload})
	return nil
}
