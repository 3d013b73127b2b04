package scoring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/pickpool/go/internal/pooldb"
	"github.com/mcdev12/pickpool/go/internal/predictions"
)

// Repository backs the engine with the prediction queries plus the participant list.
type Repository struct {
	*predictions.Repository
	queries *pooldb.Queries
}

func NewRepository(queries *pooldb.Queries) *Repository {
	return &Repository{
		Repository: predictions.NewRepository(queries),
		queries:    queries,
	}
}

func (r *Repository) ListParticipantIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := r.queries.ListParticipantIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participant ids: %w", err)
	}
	return ids, nil
}
