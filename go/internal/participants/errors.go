package participants

import (
	"fmt"

	"github.com/mcdev12/pickpool/go/internal/models"
)

var (
	ErrUsernameTaken = fmt.Errorf("%w: username already taken", models.ErrConflict)
	ErrEmailTaken    = fmt.Errorf("%w: email already registered", models.ErrConflict)
)
