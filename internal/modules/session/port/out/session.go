package out

import (
	"context"

	"eduvantage/internal/modules/session/domain"
)

// StateStore persists navigation state across launches.
type StateStore interface {
	Save(ctx context.Context, state domain.State) error
	Load(ctx context.Context) (domain.State, error)
	Clear(ctx context.Context) error
}
