package standings

import (
	"sort"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/models"
)

// Compute projects period scores into one standing per participant. Periods
// are expected in sequence order; a participant with no score in a period
// gets a zero row so every standing has the same shape.
func Compute(periods []models.Period, participants []models.Participant, scores []models.PeriodScore) []models.Standing {
	type key struct{ participant, period uuid.UUID }
	points := make(map[key]int, len(scores))
	for _, s := range scores {
		points[key{participant: s.ParticipantID, period: s.PeriodID}] += s.Points
	}

	out := make([]models.Standing, len(participants))
	for i, p := range participants {
		st := models.Standing{
			ParticipantID: p.ID,
			Username:      p.Username,
			Periods:       make([]models.PeriodStanding, len(periods)),
		}
		for j, period := range periods {
			pts := points[key{participant: p.ID, period: period.ID}]
			st.Total += pts
			switch period.PeriodTypeID {
			case models.PeriodTypePreseason:
				st.PreseasonTotal += pts
			case models.PeriodTypeRegular:
				st.RegularTotal += pts
			case models.PeriodTypePostseason:
				st.PostseasonTotal += pts
			}
			st.Periods[j] = models.PeriodStanding{
				PeriodID:     period.ID,
				Name:         period.Name,
				PeriodTypeID: period.PeriodTypeID,
				Points:       pts,
				RunningTotal: st.Total,
			}
		}
		out[i] = st
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Username < out[j].Username
	})
	return out
}
