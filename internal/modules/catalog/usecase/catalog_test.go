package usecase_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	catalogout "eduvantage/internal/modules/catalog/adapter/out"
	catalogin "eduvantage/internal/modules/catalog/port/in"
	"eduvantage/internal/modules/catalog/service"
	"eduvantage/internal/modules/catalog/usecase"
	apperrors "eduvantage/internal/platform/errors"

	_ "modernc.org/sqlite"
)

func newCatalog(t *testing.T) (catalogin.Usecase, string) {
	t.Helper()
	root := t.TempDir()
	dbPath := filepath.Join(root, ".eduvantage", "eduvantage.db")
	projector, err := catalogout.NewSQLiteCourseProjector(dbPath)
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	store := catalogout.NewCatalogDocStore(filepath.Join(root, "catalog"))
	return usecase.NewInteractor(service.NewCatalogService(store, projector)), dbPath
}

func TestSeedListAndGet(t *testing.T) {
	t.Parallel()
	uc, dbPath := newCatalog(t)
	ctx := context.Background()

	seeded, err := uc.Seed(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(seeded.Created) != 4 {
		t.Fatalf("expected 4 seeded courses, got %v", seeded.Created)
	}

	again, err := uc.Seed(ctx)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if len(again.Created) != 0 {
		t.Fatalf("reseed should be a no-op, created %v", again.Created)
	}

	list, err := uc.ListCourses(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("expected 4 courses, got %d", len(list))
	}

	detail, err := uc.GetCourse(ctx, "course_quantum_physics_101")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Title != "Quantum Physics 101" || detail.LessonCount != 12 {
		t.Fatalf("unexpected course: %+v", detail.CourseOutput)
	}
	if len(detail.Lessons) != 12 {
		t.Fatalf("lessons not round-tripped: %d", len(detail.Lessons))
	}

	psych, err := uc.GetCourse(ctx, "course_psychology_101")
	if err != nil {
		t.Fatalf("get psychology: %v", err)
	}
	if len(psych.Questions) != 2 || psych.Questions[0].CorrectIndex != 2 {
		t.Fatalf("quiz questions not round-tripped: %+v", psych.Questions)
	}

	if _, err := uc.GetCourse(ctx, "course_unknown"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		t.Fatalf("count courses: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 projected courses, got %d", count)
	}
}

func TestSearchMatchesTitleAndCategory(t *testing.T) {
	t.Parallel()
	uc, _ := newCatalog(t)
	ctx := context.Background()
	if _, err := uc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	byTitle, err := uc.Search(ctx, "quantum")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byTitle) != 1 || byTitle[0].ID != "course_quantum_physics_101" {
		t.Fatalf("unexpected title match: %+v", byTitle)
	}

	byCategory, err := uc.Search(ctx, "science")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byCategory) != 2 {
		t.Fatalf("expected 2 science courses, got %d", len(byCategory))
	}

	all, err := uc.Search(ctx, "  ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("blank query should return everything, got %d", len(all))
	}
}
