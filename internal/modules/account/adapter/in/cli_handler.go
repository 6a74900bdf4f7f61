package in

import (
	"context"
	"time"

	"eduvantage/internal/modules/account/dto"
	accountin "eduvantage/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Register(ctx context.Context, firstName, lastName string, dob time.Time, email, password, confirmPassword string) (dto.RegisterOutput, error) {
	return h.usecase.Register(ctx, dto.RegisterInput{
		FirstName:       firstName,
		LastName:        lastName,
		DOB:             dob,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirmPassword,
	})
}

func (h CLIHandler) SignIn(ctx context.Context, email, password string) (dto.SignInOutput, error) {
	return h.usecase.SignIn(ctx, dto.SignInInput{Email: email, Password: password})
}

func (h CLIHandler) Show(ctx context.Context) (dto.CredentialOutput, error) {
	return h.usecase.Credential(ctx)
}

func (h CLIHandler) SignOut(ctx context.Context) error {
	return h.usecase.SignOut(ctx)
}

func (h CLIHandler) ForgetAccount(ctx context.Context) error {
	return h.usecase.ForgetAccount(ctx)
}
