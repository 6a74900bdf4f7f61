package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	catalogout "eduvantage/internal/modules/catalog/adapter/out"
	catalogservice "eduvantage/internal/modules/catalog/service"
	catalogusecase "eduvantage/internal/modules/catalog/usecase"
	quizout "eduvantage/internal/modules/quiz/adapter/out"
	"eduvantage/internal/modules/quiz/dto"
	quizin "eduvantage/internal/modules/quiz/port/in"
	"eduvantage/internal/modules/quiz/service"
	"eduvantage/internal/modules/quiz/usecase"
	"eduvantage/internal/platform/clock"
	apperrors "eduvantage/internal/platform/errors"
	"eduvantage/internal/platform/id"
	"eduvantage/internal/platform/kvstore"
)

func newQuiz(t *testing.T) quizin.Usecase {
	t.Helper()
	root := t.TempDir()
	projector, err := catalogout.NewSQLiteCourseProjector(filepath.Join(root, ".eduvantage", "eduvantage.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	catalog := catalogusecase.NewInteractor(catalogservice.NewCatalogService(
		catalogout.NewCatalogDocStore(filepath.Join(root, "catalog")),
		projector,
	))
	if _, err := catalog.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := quizout.NewFileAttemptStore(kvstore.New(filepath.Join(root, "state")))
	return usecase.NewInteractor(service.NewQuizService(clock.SystemClock{}, id.UUID{}), catalog, store)
}

func TestQuizRunToCompletion(t *testing.T) {
	t.Parallel()
	uc := newQuiz(t)
	ctx := context.Background()

	started, err := uc.Start(ctx, dto.StartInput{CourseID: "course_psychology_101"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Question.Total != 2 || started.Question.Index != 0 {
		t.Fatalf("unexpected first question: %+v", started.Question)
	}

	if _, err := uc.Start(ctx, dto.StartInput{CourseID: "course_psychology_101"}); !errors.Is(err, apperrors.ErrActiveAttemptExists) {
		t.Fatalf("second start should fail, got %v", err)
	}

	// Wrong answer to the Maslow question, then the right one for the
	// hippocampus question.
	first, err := uc.Answer(ctx, dto.AnswerInput{OptionIndex: 0})
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if first.Correct || first.Score != 0 || first.Finished {
		t.Fatalf("unexpected first answer result: %+v", first)
	}
	if first.Next == nil || first.Next.Index != 1 {
		t.Fatalf("expected next question, got %+v", first.Next)
	}

	status, err := uc.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Answered != 1 || status.Total != 2 {
		t.Fatalf("unexpected status: %+v", status)
	}

	second, err := uc.Answer(ctx, dto.AnswerInput{OptionIndex: 1})
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !second.Correct || second.Score != 1 || !second.Finished {
		t.Fatalf("unexpected final result: %+v", second)
	}
	if second.Explanation == "" {
		t.Fatalf("explanation missing")
	}

	if _, err := uc.Status(ctx); !errors.Is(err, apperrors.ErrNoActiveAttempt) {
		t.Fatalf("finished attempt should be retired, got %v", err)
	}

	if _, err := uc.Start(ctx, dto.StartInput{CourseID: "course_psychology_101"}); err != nil {
		t.Fatalf("restart after completion: %v", err)
	}
}

func TestQuizRejections(t *testing.T) {
	t.Parallel()
	uc := newQuiz(t)
	ctx := context.Background()

	if _, err := uc.Answer(ctx, dto.AnswerInput{OptionIndex: 0}); !errors.Is(err, apperrors.ErrNoActiveAttempt) {
		t.Fatalf("answer without attempt: %v", err)
	}
	if _, err := uc.Start(ctx, dto.StartInput{CourseID: "course_algorithm_design"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("course without quiz should be rejected, got %v", err)
	}
	if _, err := uc.Start(ctx, dto.StartInput{CourseID: "course_unknown"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown course: %v", err)
	}

	if _, err := uc.Start(ctx, dto.StartInput{CourseID: "course_psychology_101"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.Answer(ctx, dto.AnswerInput{OptionIndex: 9}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("out-of-range option: %v", err)
	}
	if err := uc.Abort(ctx); err != nil {
		t.Fatalf("abort: %v", err)
	}
	if _, err := uc.Status(ctx); !errors.Is(err, apperrors.ErrNoActiveAttempt) {
		t.Fatalf("aborted attempt should be gone, got %v", err)
	}
}
