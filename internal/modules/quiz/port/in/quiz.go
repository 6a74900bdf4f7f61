package in

import (
	"context"

	"eduvantage/internal/modules/quiz/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Answer(ctx context.Context, input dto.AnswerInput) (dto.AnswerOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Abort(ctx context.Context) error
}
