package usecase

import (
	"context"
	"errors"

	"eduvantage/internal/modules/account/domain"
	"eduvantage/internal/modules/account/dto"
	accountin "eduvantage/internal/modules/account/port/in"
	"eduvantage/internal/modules/account/service"
	recordsdto "eduvantage/internal/modules/records/dto"
	recordsin "eduvantage/internal/modules/records/port/in"
	sessiondto "eduvantage/internal/modules/session/dto"
	sessiondomain "eduvantage/internal/modules/session/domain"
	sessionin "eduvantage/internal/modules/session/port/in"
	"eduvantage/internal/platform/clock"
	apperrors "eduvantage/internal/platform/errors"
)

// Sign-in failures carry the user-facing copy directly.
var (
	ErrNoAccount      = errors.New("No account found on this device. Please create an account first.")
	ErrBadCredentials = errors.New("Incorrect email or password.")
)

type Interactor struct {
	svc     *service.AccountService
	records recordsin.Usecase
	session sessionin.Usecase
	clock   clock.Clock
}

func NewInteractor(svc *service.AccountService, records recordsin.Usecase, session sessionin.Usecase, clock clock.Clock) accountin.Usecase {
	return &Interactor{svc: svc, records: records, session: session, clock: clock}
}

// Register validates, stores the credential, seeds the display profile,
// and pushes the verification screen with the trimmed email.
func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) (dto.RegisterOutput, error) {
	credential, err := domain.Registration{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		DOB:             input.DOB,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	}.Validate(i.clock.Now())
	if err != nil {
		return dto.RegisterOutput{}, err
	}

	if err := i.svc.Save(ctx, credential); err != nil {
		return dto.RegisterOutput{}, err
	}
	if _, err := i.records.SaveProfile(ctx, recordsdto.SaveProfileInput{
		Name:  credential.FullName(),
		Email: credential.Email,
	}); err != nil {
		return dto.RegisterOutput{}, err
	}
	if _, err := i.session.Push(ctx, sessiondto.RouteInput{
		Kind:  string(sessiondomain.RouteVerifyEmail),
		Email: credential.Email,
	}); err != nil {
		return dto.RegisterOutput{}, err
	}
	return dto.RegisterOutput{FullName: credential.FullName(), Email: credential.Email}, nil
}

// SignIn verifies the attempt and flips the session to authenticated.
func (i *Interactor) SignIn(ctx context.Context, input dto.SignInInput) (dto.SignInOutput, error) {
	credential, ok, err := i.svc.Verify(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoCredential) {
			return dto.SignInOutput{}, ErrNoAccount
		}
		return dto.SignInOutput{}, err
	}
	if !ok {
		return dto.SignInOutput{}, ErrBadCredentials
	}
	if _, err := i.session.Authenticate(ctx); err != nil {
		return dto.SignInOutput{}, err
	}
	return dto.SignInOutput{FullName: credential.FullName(), Email: credential.Email}, nil
}

func (i *Interactor) Credential(ctx context.Context) (dto.CredentialOutput, error) {
	credential, err := i.svc.Load(ctx)
	if err != nil {
		return dto.CredentialOutput{}, err
	}
	return dto.CredentialOutput{
		FirstName: credential.FirstName,
		LastName:  credential.LastName,
		DOB:       credential.DOB,
		Email:     credential.Email,
	}, nil
}

// SignOut ends the session but keeps the credential and records so the
// user can sign back in.
func (i *Interactor) SignOut(ctx context.Context) error {
	_, err := i.session.EndSession(ctx)
	return err
}

// ForgetAccount is the destructive logout: it ends the session, clears
// the credential, and deletes the profile along with all progress.
func (i *Interactor) ForgetAccount(ctx context.Context) error {
	if _, err := i.session.EndSession(ctx); err != nil {
		return err
	}
	if err := i.svc.Clear(ctx); err != nil {
		return err
	}
	return i.records.DeleteProfile(ctx)
}
