package pooldb

import (
	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
)

// Row to domain conversions shared by the per-domain repositories.

func (s Season) Model() models.Season {
	return models.Season{
		ID:        s.ID,
		Name:      s.Name,
		StartsAt:  s.StartsAt,
		EndsAt:    s.EndsAt,
		CreatedAt: s.CreatedAt,
	}
}

func (p Period) Model() models.Period {
	return models.Period{
		ID:           p.ID,
		SeasonID:     p.SeasonID,
		PeriodTypeID: models.PeriodTypeID(p.PeriodTypeID),
		Sequence:     int(p.Sequence),
		Name:         p.Name,
		StartsAt:     p.StartsAt,
		EndsAt:       p.EndsAt,
		CreatedAt:    p.CreatedAt,
	}
}

func (t PeriodType) Model() models.PeriodType {
	return models.PeriodType{
		ID:     models.PeriodTypeID(t.ID),
		Name:   t.Name,
		Active: t.Active,
	}
}

func (c Contest) Model() models.Contest {
	return models.Contest{
		ID:            c.ID,
		PeriodID:      c.PeriodID,
		Number:        int(c.Number),
		StartsAt:      c.StartsAt,
		HomeTeamID:    nullUUID(c.HomeTeamID),
		VisitorTeamID: nullUUID(c.VisitorTeamID),
		VenueID:       nullUUID(c.VenueID),
		HomeScore:     int(c.HomeScore),
		VisitorScore:  int(c.VisitorScore),
		RegulationTie: c.RegulationTie,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (p Prediction) Model() models.Prediction {
	return models.Prediction{
		ID:            p.ID,
		ContestID:     p.ContestID,
		ParticipantID: p.ParticipantID,
		KindID:        models.PredictionKindID(p.KindID),
		Score:         int(p.Score),
		UpdatedAt:     p.UpdatedAt,
	}
}

func (k PredictionKind) Model() models.PredictionKind {
	return models.PredictionKind{
		ID:          models.PredictionKindID(k.ID),
		Name:        k.Name,
		SortValue:   int(k.SortValue),
		Active:      k.Active,
		Description: k.Description,
	}
}

func (p Participant) Model() models.Participant {
	return models.Participant{
		ID:             p.ID,
		Username:       p.Username,
		Email:          p.Email,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		FavoriteTeamID: nullUUID(p.FavoriteTeamID),
		Timezone:       p.Timezone,
		CreatedAt:      p.CreatedAt,
	}
}

func (t Team) Model() models.Team {
	return models.Team{
		ID:        t.ID,
		Code:      t.Code,
		Name:      t.Name,
		City:      t.City,
		CreatedAt: t.CreatedAt,
	}
}

func (v Venue) Model() models.Venue {
	return models.Venue{ID: v.ID, Name: v.Name, City: v.City}
}

func (w Winner) Model() models.Winner {
	return models.Winner{
		ID:            w.ID,
		PeriodID:      w.PeriodID,
		ParticipantID: nullUUID(w.ParticipantID),
		CreatedAt:     w.CreatedAt,
	}
}

func nullUUID(v uuid.NullUUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	id := v.UUID
	return &id
}
