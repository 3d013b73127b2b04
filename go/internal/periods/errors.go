package periods

import (
	"fmt"

	"github.com/mcdev12/pickpool/go/internal/pooldb"
)

var (
	ErrNoCurrentPeriod = fmt.Errorf("%w: no current period", pooldb.ErrNotFound)
	ErrNoActiveSeason  = fmt.Errorf("%w: no active season", pooldb.ErrNotFound)
)
