package predictions

import (
	"fmt"

	"github.com/mcdev12/pickpool/go/internal/models"
)

var (
	ErrContestStarted = fmt.Errorf("%w: contest has already started", models.ErrConflict)
	ErrInactiveKind   = fmt.Errorf("%w: prediction kind is not active", models.ErrValidation)
)
