package in

import (
	"context"

	"eduvantage/internal/modules/account/dto"
)

type Usecase interface {
	Register(ctx context.Context, input dto.RegisterInput) (dto.RegisterOutput, error)
	SignIn(ctx context.Context, input dto.SignInInput) (dto.SignInOutput, error)
	Credential(ctx context.Context) (dto.CredentialOutput, error)
	SignOut(ctx context.Context) error
	ForgetAccount(ctx context.Context) error
}
