package in

import (
	"context"

	"eduvantage/internal/modules/session/dto"
)

type Usecase interface {
	Push(ctx context.Context, input dto.RouteInput) (dto.StateOutput, error)
	Pop(ctx context.Context) (dto.StateOutput, error)
	ResetToRoot(ctx context.Context) (dto.StateOutput, error)
	Authenticate(ctx context.Context) (dto.StateOutput, error)
	EndSession(ctx context.Context) (dto.StateOutput, error)
	Current(ctx context.Context) (dto.StateOutput, error)
}
