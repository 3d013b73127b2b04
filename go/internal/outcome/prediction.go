package outcome

import "github.com/mcdev12/pickpool/go/internal/models"

// CategoryOf maps a prediction kind to the single category it targets.
// No-pick and unknown kinds target nothing and return false.
func CategoryOf(kind models.PredictionKindID) (Category, bool) {
	switch kind {
	case models.KindHomeWin:
		return HomeWin, true
	case models.KindVisitorWin:
		return VisitorWin, true
	case models.KindWithinThree:
		return WithinThree, true
	case models.KindRegulationTie:
		return RegulationTie, true
	case models.KindOvertimeTie:
		return OvertimeTie, true
	default:
		return 0, false
	}
}

// KindOf is the inverse of CategoryOf.
func KindOf(c Category) models.PredictionKindID {
	switch c {
	case HomeWin:
		return models.KindHomeWin
	case VisitorWin:
		return models.KindVisitorWin
	case WithinThree:
		return models.KindWithinThree
	case RegulationTie:
		return models.KindRegulationTie
	case OvertimeTie:
		return models.KindOvertimeTie
	default:
		return models.KindNoPick
	}
}
