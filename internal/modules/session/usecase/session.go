package usecase

import (
	"context"
	"fmt"
	"strings"

	"eduvantage/internal/modules/session/domain"
	"eduvantage/internal/modules/session/dto"
	sessionin "eduvantage/internal/modules/session/port/in"
	"eduvantage/internal/modules/session/service"
	apperrors "eduvantage/internal/platform/errors"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Push(ctx context.Context, input dto.RouteInput) (dto.StateOutput, error) {
	kind := domain.RouteKind(input.Kind)
	if !kind.Valid() {
		return dto.StateOutput{}, fmt.Errorf("%w: unknown route %q", apperrors.ErrInvalidInput, input.Kind)
	}
	route := domain.Route{Kind: kind}
	if kind == domain.RouteVerifyEmail {
		email := strings.TrimSpace(input.Email)
		if email == "" {
			return dto.StateOutput{}, fmt.Errorf("%w: verifyEmail requires an email", apperrors.ErrInvalidInput)
		}
		route.Email = email
	}
	state, err := i.svc.Push(ctx, route)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return stateOutput(state), nil
}

func (i *Interactor) Pop(ctx context.Context) (dto.StateOutput, error) {
	state, err := i.svc.Pop(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return stateOutput(state), nil
}

func (i *Interactor) ResetToRoot(ctx context.Context) (dto.StateOutput, error) {
	state, err := i.svc.ResetToRoot(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return stateOutput(state), nil
}

func (i *Interactor) Authenticate(ctx context.Context) (dto.StateOutput, error) {
	state, err := i.svc.Authenticate(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return stateOutput(state), nil
}

func (i *Interactor) EndSession(ctx context.Context) (dto.StateOutput, error) {
	state, err := i.svc.EndSession(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return stateOutput(state), nil
}

func (i *Interactor) Current(ctx context.Context) (dto.StateOutput, error) {
	return stateOutput(i.svc.Current()), nil
}

func stateOutput(state domain.State) dto.StateOutput {
	out := dto.StateOutput{
		Authenticated: state.Authenticated,
		Stack:         make([]dto.RouteOutput, 0, len(state.Stack)),
	}
	for _, r := range state.Stack {
		out.Stack = append(out.Stack, dto.RouteOutput{Kind: string(r.Kind), Email: r.Email})
	}
	return out
}
