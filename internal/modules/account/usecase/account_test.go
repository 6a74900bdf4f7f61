package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	accountout "eduvantage/internal/modules/account/adapter/out"
	"eduvantage/internal/modules/account/domain"
	"eduvantage/internal/modules/account/dto"
	accountin "eduvantage/internal/modules/account/port/in"
	accountservice "eduvantage/internal/modules/account/service"
	"eduvantage/internal/modules/account/usecase"
	recordsadapter "eduvantage/internal/modules/records/adapter/out"
	recordsdomain "eduvantage/internal/modules/records/domain"
	recordsout "eduvantage/internal/modules/records/port/out"
	recordsservice "eduvantage/internal/modules/records/service"
	recordsusecase "eduvantage/internal/modules/records/usecase"
	sessionadapter "eduvantage/internal/modules/session/adapter/out"
	sessionin "eduvantage/internal/modules/session/port/in"
	sessionservice "eduvantage/internal/modules/session/service"
	sessionusecase "eduvantage/internal/modules/session/usecase"
	"eduvantage/internal/platform/clock"
	apperrors "eduvantage/internal/platform/errors"
	"eduvantage/internal/platform/id"
	"eduvantage/internal/platform/kvstore"
)

type noopProjector struct{}

func (noopProjector) Reset(context.Context) error { return nil }
func (noopProjector) UpsertCourseProgress(context.Context, recordsdomain.CourseProgress) error {
	return nil
}
func (noopProjector) DeleteCourseProgress(context.Context, string) error { return nil }

var _ recordsout.ProgressProjector = noopProjector{}

type fixture struct {
	account accountin.Usecase
	session sessionin.Usecase
	records *recordsservice.RecordsService
	kv      *kvstore.Store
	stateDir string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	stateDir := filepath.Join(t.TempDir(), "state")
	kv := kvstore.New(stateDir)

	records := recordsservice.NewRecordsService(clock.SystemClock{}, id.UUID{}, recordsadapter.NewFileAggregateStore(kv), noopProjector{})
	recordsUC := recordsusecase.NewInteractor(records)
	session := sessionusecase.NewInteractor(sessionservice.NewSessionService(sessionadapter.NewFileStateStore(kv)))
	account := usecase.NewInteractor(
		accountservice.NewAccountService(accountout.NewFileCredentialStore(kv)),
		recordsUC,
		session,
		clock.SystemClock{},
	)
	return fixture{account: account, session: session, records: records, kv: kv, stateDir: stateDir}
}

func validRegistration() dto.RegisterInput {
	return dto.RegisterInput{
		FirstName:       "  Alex ",
		LastName:        "Rivera",
		DOB:             time.Date(2002, 6, 15, 0, 0, 0, 0, time.UTC),
		Email:           " alex@example.com ",
		Password:        "sunflower9",
		ConfirmPassword: "sunflower9",
	}
}

func TestRegisterStoresCredentialAndPushesVerification(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.account.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if out.FullName != "Alex Rivera" || out.Email != "alex@example.com" {
		t.Fatalf("unexpected output: %+v", out)
	}

	cred, err := f.account.Credential(ctx)
	if err != nil {
		t.Fatalf("credential: %v", err)
	}
	if cred.FirstName != "Alex" || cred.Email != "alex@example.com" {
		t.Fatalf("credential not trimmed: %+v", cred)
	}

	profile, ok := f.records.CurrentUser()
	if !ok || profile.Name != "Alex Rivera" {
		t.Fatalf("profile not seeded: %+v", profile)
	}

	state, err := f.session.Current(ctx)
	if err != nil {
		t.Fatalf("session state: %v", err)
	}
	if len(state.Stack) != 1 || state.Stack[0].Kind != "verifyEmail" || state.Stack[0].Email != "alex@example.com" {
		t.Fatalf("verification route not pushed: %+v", state.Stack)
	}
	if state.Authenticated {
		t.Fatalf("registration must not authenticate")
	}
}

func TestRegisterValidationOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*dto.RegisterInput)
		wantErr error
	}{
		{"blank name", func(r *dto.RegisterInput) { r.LastName = "   " }, domain.ErrNameRequired},
		{"future dob", func(r *dto.RegisterInput) { r.DOB = time.Now().Add(48 * time.Hour) }, domain.ErrInvalidDOB},
		{"missing at sign", func(r *dto.RegisterInput) { r.Email = "alex.example.com" }, domain.ErrInvalidEmail},
		{"short password", func(r *dto.RegisterInput) { r.Password, r.ConfirmPassword = "short", "short" }, domain.ErrPasswordTooShort},
		{"mismatch", func(r *dto.RegisterInput) { r.ConfirmPassword = "sunflower8" }, domain.ErrPasswordMismatch},
	}
	for _, tc := range cases {
		input := validRegistration()
		tc.mutate(&input)
		if _, err := f.account.Register(ctx, input); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestSignInMatchingRules(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.account.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Email matches case-insensitively with surrounding whitespace
	// ignored; the password must match exactly.
	out, err := f.account.SignIn(ctx, dto.SignInInput{Email: " Alex@Example.COM ", Password: "sunflower9"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if out.FullName != "Alex Rivera" {
		t.Fatalf("unexpected output: %+v", out)
	}
	state, err := f.session.Current(ctx)
	if err != nil {
		t.Fatalf("session state: %v", err)
	}
	if !state.Authenticated || len(state.Stack) != 0 {
		t.Fatalf("sign in should authenticate and clear the stack: %+v", state)
	}

	if _, err := f.account.SignIn(ctx, dto.SignInInput{Email: "alex@example.com", Password: "Sunflower9"}); !errors.Is(err, usecase.ErrBadCredentials) {
		t.Fatalf("password compare must be exact, got %v", err)
	}
	if _, err := f.account.SignIn(ctx, dto.SignInInput{Email: "alex@example.com", Password: "sunflower9 "}); !errors.Is(err, usecase.ErrBadCredentials) {
		t.Fatalf("password must not be trimmed, got %v", err)
	}
}

func TestSignInWithoutCredential(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	if _, err := f.account.SignIn(context.Background(), dto.SignInInput{Email: "alex@example.com", Password: "sunflower9"}); !errors.Is(err, usecase.ErrNoAccount) {
		t.Fatalf("expected ErrNoAccount, got %v", err)
	}
}

func TestCorruptCredentialSelfHeals(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	blob := filepath.Join(f.stateDir, "eduVantage_user_v1.json")
	if err := os.MkdirAll(f.stateDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(blob, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt blob: %v", err)
	}

	if _, err := f.account.SignIn(ctx, dto.SignInInput{Email: "alex@example.com", Password: "sunflower9"}); !errors.Is(err, usecase.ErrNoAccount) {
		t.Fatalf("expected ErrNoAccount, got %v", err)
	}
	if _, err := os.Stat(blob); !os.IsNotExist(err) {
		t.Fatalf("corrupt blob should be removed")
	}
}

func TestSignOutKeepsCredential(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.account.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := f.account.SignIn(ctx, dto.SignInInput{Email: "alex@example.com", Password: "sunflower9"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := f.account.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	state, _ := f.session.Current(ctx)
	if state.Authenticated {
		t.Fatalf("sign out should end the session")
	}
	if _, err := f.account.Credential(ctx); err != nil {
		t.Fatalf("credential should survive sign out: %v", err)
	}
	if _, err := f.account.SignIn(ctx, dto.SignInInput{Email: "alex@example.com", Password: "sunflower9"}); err != nil {
		t.Fatalf("sign back in: %v", err)
	}
}

func TestForgetAccountWipesCredentialAndProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.account.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := f.account.SignIn(ctx, dto.SignInInput{Email: "alex@example.com", Password: "sunflower9"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	if err := f.account.ForgetAccount(ctx); err != nil {
		t.Fatalf("forget account: %v", err)
	}
	if _, err := f.account.Credential(ctx); !errors.Is(err, apperrors.ErrNoCredential) {
		t.Fatalf("credential should be cleared, got %v", err)
	}
	if _, ok := f.records.CurrentUser(); ok {
		t.Fatalf("profile should be deleted")
	}
	state, _ := f.session.Current(ctx)
	if state.Authenticated {
		t.Fatalf("forget account should sign out")
	}
}
