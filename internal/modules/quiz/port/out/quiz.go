package out

import (
	"context"

	"eduvantage/internal/modules/quiz/domain"
)

// AttemptStore persists the single active quiz attempt. LoadActive
// returns ErrNoActiveAttempt when none is in flight.
type AttemptStore interface {
	SaveActive(ctx context.Context, attempt domain.Attempt) error
	LoadActive(ctx context.Context) (domain.Attempt, error)
	ClearActive(ctx context.Context) error
}
