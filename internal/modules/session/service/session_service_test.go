package service_test

import (
	"context"
	"path/filepath"
	"testing"

	sessionout "eduvantage/internal/modules/session/adapter/out"
	"eduvantage/internal/modules/session/domain"
	"eduvantage/internal/modules/session/service"
	"eduvantage/internal/platform/kvstore"
)

func newService(t *testing.T) (*service.SessionService, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "state")
	return service.NewSessionService(sessionout.NewFileStateStore(kvstore.New(dir))), dir
}

func TestAuthenticateClearsStack(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Push(ctx, domain.Route{Kind: domain.RouteSignIn}); err != nil {
		t.Fatalf("push: %v", err)
	}
	state, err := svc.Authenticate(ctx)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !state.Authenticated || len(state.Stack) != 0 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestPopOnEmptyStackIsNoOp(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	state, err := svc.Pop(context.Background())
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if state.Authenticated || len(state.Stack) != 0 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestPushPopOrdering(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Push(ctx, domain.Route{Kind: domain.RouteCreateAccount}); err != nil {
		t.Fatalf("push: %v", err)
	}
	state, err := svc.Push(ctx, domain.Route{Kind: domain.RouteVerifyEmail, Email: "alex@example.com"})
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if len(state.Stack) != 2 || state.Stack[1].Email != "alex@example.com" {
		t.Fatalf("unexpected stack: %+v", state.Stack)
	}

	state, err = svc.Pop(ctx)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if len(state.Stack) != 1 || state.Stack[0].Kind != domain.RouteCreateAccount {
		t.Fatalf("unexpected stack after pop: %+v", state.Stack)
	}
}

func TestEndSessionSignsOutAndResets(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	state, err := svc.EndSession(ctx)
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if state.Authenticated || len(state.Stack) != 0 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	t.Parallel()
	svc, dir := newService(t)
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx); err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	relaunched := service.NewSessionService(sessionout.NewFileStateStore(kvstore.New(dir)))
	relaunched.Load(ctx)
	if !relaunched.Current().Authenticated {
		t.Fatalf("authentication should survive a relaunch")
	}
}

func TestLoadFallsBackToWelcome(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	svc.Load(context.Background())
	state := svc.Current()
	if state.Authenticated || len(state.Stack) != 0 {
		t.Fatalf("expected welcome state, got %+v", state)
	}
}
