package in

import (
	"context"

	"eduvantage/internal/modules/session/dto"
	sessionin "eduvantage/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Current(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) SignOut(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.EndSession(ctx)
}
