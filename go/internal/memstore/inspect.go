package memstore

import (
	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/events"
	"github.com/mcdev12/pickpool/go/internal/models"
)

// Predictions returns every stored prediction.
func (s *Store) Predictions() []models.Prediction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Prediction, 0, len(s.predictions))
	for _, p := range s.predictions {
		out = append(out, p)
	}
	return out
}

// PredictionFor returns the prediction for a (contest, participant) pair.
func (s *Store) PredictionFor(contestID, participantID uuid.UUID) (models.Prediction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byPair[pair{contest: contestID, participant: participantID}]
	if !ok {
		return models.Prediction{}, false
	}
	return s.predictions[id], true
}

// Contests returns every stored contest.
func (s *Store) Contests() []models.Contest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Contest, 0, len(s.contests))
	for _, c := range s.contests {
		out = append(out, c)
	}
	return out
}

func (s *Store) Winners() []models.Winner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Winner(nil), s.winners...)
}

func (s *Store) Alerts(participantID uuid.UUID) []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Alert
	for _, a := range s.alerts {
		if a.ParticipantID == participantID {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) Preferences(participantID uuid.UUID) (models.Preferences, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.preferences[participantID]
	return p, ok
}

// Events returns recorded events, optionally filtered by type.
func (s *Store) Events(types ...events.Type) []RecordedEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(types) == 0 {
		return append([]RecordedEvent(nil), s.events...)
	}
	var out []RecordedEvent
	for _, e := range s.events {
		for _, t := range types {
			if e.Type == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
