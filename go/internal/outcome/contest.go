package outcome

import (
	"strings"
	"time"

	"github.com/mcdev12/pickpool/go/internal/models"
)

// Status is derived from scores, start time and now. It is never persisted.
type Status int

const (
	StatusNotStarted Status = iota + 1
	StatusUnderway
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusUnderway:
		return "underway"
	case StatusComplete:
		return "complete"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Category is one outcome fact a contest can satisfy and a prediction can target.
type Category uint8

const (
	HomeWin Category = 1 << iota
	VisitorWin
	WithinThree
	RegulationTie
	OvertimeTie
)

// All lists every category in rule evaluation order.
var All = []Category{HomeWin, VisitorWin, WithinThree, RegulationTie, OvertimeTie}

func (c Category) String() string {
	switch c {
	case HomeWin:
		return "home_win"
	case VisitorWin:
		return "visitor_win"
	case WithinThree:
		return "within_three"
	case RegulationTie:
		return "regulation_tie"
	case OvertimeTie:
		return "overtime_tie"
	default:
		return "none"
	}
}

// Set holds several categories at once. A contest can be, for example,
// a home win inside three points.
type Set uint8

func NewSet(cs ...Category) Set {
	var s Set
	for _, c := range cs {
		s |= Set(c)
	}
	return s
}

func (s Set) Has(c Category) bool {
	return c != 0 && s&Set(c) == Set(c)
}

func (s Set) Categories() []Category {
	var out []Category
	for _, c := range All {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s Set) String() string {
	cs := s.Categories()
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.String()
	}
	return strings.Join(names, ",")
}

func (s Set) MarshalJSON() ([]byte, error) {
	cs := s.Categories()
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range cs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`"` + c.String() + `"`)
	}
	b.WriteByte(']')
	return []byte(b.String()), nil
}

// Outcome is the classification of a contest at a point in time.
type Outcome struct {
	Status Status `json:"status"`
	Facts  Set    `json:"facts"`
}

// Classify derives status and outcome facts for c as of now.
//
// A contest is complete only once both scores are nonzero and its start has
// passed, so a 0-0 contest reads as underway. within_three and overtime_tie
// need both scores nonzero; regulation_tie is the stored flag.
func Classify(c models.Contest, now time.Time) Outcome {
	return Outcome{
		Status: statusOf(c, now),
		Facts:  factsOf(c),
	}
}

func statusOf(c models.Contest, now time.Time) Status {
	if c.StartsAt.After(now) {
		return StatusNotStarted
	}
	if scored(c) && c.StartsAt.Before(now) {
		return StatusComplete
	}
	return StatusUnderway
}

func factsOf(c models.Contest) Set {
	var s Set
	if c.HomeScore > c.VisitorScore {
		s |= Set(HomeWin)
	}
	if c.VisitorScore > c.HomeScore {
		s |= Set(VisitorWin)
	}
	if scored(c) && abs(c.HomeScore-c.VisitorScore) <= 3 {
		s |= Set(WithinThree)
	}
	if c.RegulationTie {
		s |= Set(RegulationTie)
	}
	if scored(c) && c.HomeScore == c.VisitorScore {
		s |= Set(OvertimeTie)
	}
	return s
}

func scored(c models.Contest) bool {
	return c.HomeScore != 0 && c.VisitorScore != 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
