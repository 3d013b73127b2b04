package scoring

import (
	"fmt"

	"github.com/mcdev12/pickpool/go/internal/models"
	"github.com/mcdev12/pickpool/go/internal/outcome"
)

// Rules is the point table. Values are loaded from the pool config file.
type Rules struct {
	HomeWin       int `yaml:"home_win" json:"home_win"`
	VisitorWin    int `yaml:"visitor_win" json:"visitor_win"`
	WithinThree   int `yaml:"within_three" json:"within_three"`
	RegulationTie int `yaml:"regulation_tie" json:"regulation_tie"`
	OvertimeTie   int `yaml:"overtime_tie" json:"overtime_tie"`
}

func DefaultRules() Rules {
	return Rules{
		HomeWin:       1,
		VisitorWin:    1,
		WithinThree:   2,
		RegulationTie: 3,
		OvertimeTie:   5,
	}
}

func (r Rules) Validate() error {
	for _, c := range outcome.All {
		if r.Points(c) < 0 {
			return fmt.Errorf("points for %s must not be negative", c)
		}
	}
	return nil
}

// Points returns the award for a single matched category.
func (r Rules) Points(c outcome.Category) int {
	switch c {
	case outcome.HomeWin:
		return r.HomeWin
	case outcome.VisitorWin:
		return r.VisitorWin
	case outcome.WithinThree:
		return r.WithinThree
	case outcome.RegulationTie:
		return r.RegulationTie
	case outcome.OvertimeTie:
		return r.OvertimeTie
	default:
		return 0
	}
}

// Score evaluates every rule against the contest outcome in order. Each rule
// that fires sets the score, so a prediction ends with the award of the last
// matching rule. No-pick targets no category and always scores 0.
func (r Rules) Score(o outcome.Outcome, kind models.PredictionKindID) int {
	target, ok := outcome.CategoryOf(kind)
	score := 0
	for _, c := range outcome.All {
		if ok && o.Facts.Has(c) && target == c {
			score = r.Points(c)
		}
	}
	return score
}
