package in

import (
	"context"

	"eduvantage/internal/modules/quiz/dto"
	quizin "eduvantage/internal/modules/quiz/port/in"
)

type CLIHandler struct {
	usecase quizin.Usecase
}

func NewCLIHandler(usecase quizin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, courseID string) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{CourseID: courseID})
}

func (h CLIHandler) Answer(ctx context.Context, optionIndex int) (dto.AnswerOutput, error) {
	return h.usecase.Answer(ctx, dto.AnswerInput{OptionIndex: optionIndex})
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Abort(ctx context.Context) error {
	return h.usecase.Abort(ctx)
}
