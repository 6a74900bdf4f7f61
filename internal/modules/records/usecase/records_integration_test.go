package usecase_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	recordsout "eduvantage/internal/modules/records/adapter/out"
	"eduvantage/internal/modules/records/dto"
	"eduvantage/internal/modules/records/service"
	"eduvantage/internal/modules/records/usecase"
	"eduvantage/internal/platform/clock"
	apperrors "eduvantage/internal/platform/errors"
	"eduvantage/internal/platform/id"
	"eduvantage/internal/platform/kvstore"

	_ "modernc.org/sqlite"
)

func TestEnrollUpdateDropAndReindex(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	dbPath := filepath.Join(root, ".eduvantage", "eduvantage.db")

	store := recordsout.NewFileAggregateStore(kvstore.New(filepath.Join(root, "state")))
	projector, err := recordsout.NewSQLiteProgressProjector(dbPath)
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	uc := usecase.NewInteractor(service.NewRecordsService(clock.SystemClock{}, id.UUID{}, store, projector))
	ctx := context.Background()

	enrolled, err := uc.Enroll(ctx, dto.EnrollInput{
		CourseID:     "course_algorithm_design",
		CourseName:   "Algorithm Design",
		Category:     "Engineering",
		TotalLessons: 10,
	})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if enrolled.ID == "" || enrolled.EnrollmentDate.IsZero() {
		t.Fatalf("enrollment not initialized: %+v", enrolled)
	}

	updated, err := uc.UpdateCourse(ctx, dto.UpdateCourseInput{
		CourseID:             "course_algorithm_design",
		CompletionPercentage: 30,
		LessonsCompleted:     3,
	})
	if err != nil {
		t.Fatalf("update course: %v", err)
	}
	if updated.LastAccessedDate == nil {
		t.Fatalf("last accessed not stamped")
	}

	if _, err := uc.UpdateCourse(ctx, dto.UpdateCourseInput{CourseID: "missing", CompletionPercentage: 10}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.UpdateCourse(ctx, dto.UpdateCourseInput{CourseID: "course_algorithm_design", CompletionPercentage: 120}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	fav, err := uc.ToggleFavorite(ctx, "course_algorithm_design")
	if err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if !fav.IsFavorite {
		t.Fatalf("expected favorite after toggle")
	}

	if err := uc.Reindex(ctx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM course_progress`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one projected row, got %d", count)
	}

	if err := uc.DropCourse(ctx, "course_algorithm_design"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	list, err := uc.ListCourses(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list after drop")
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM course_progress`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("projection should drop the row too, got %d", count)
	}
}

func TestAggregateSurvivesRestart(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	kv := kvstore.New(filepath.Join(root, "state"))
	projector, err := recordsout.NewSQLiteProgressProjector(filepath.Join(root, ".eduvantage", "eduvantage.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	ctx := context.Background()

	first := service.NewRecordsService(clock.SystemClock{}, id.UUID{}, recordsout.NewFileAggregateStore(kv), projector)
	ucFirst := usecase.NewInteractor(first)
	if _, err := ucFirst.SaveProfile(ctx, dto.SaveProfileInput{Name: "Alex Rivera", Email: "alex@example.com", University: "State University"}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if _, err := ucFirst.Enroll(ctx, dto.EnrollInput{CourseID: "course_modern_art_history", CourseName: "Modern Art History", Category: "Arts", TotalLessons: 8}); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := ucFirst.WatchLesson(ctx, dto.WatchLessonInput{LessonID: "lesson-1", WatchedDuration: 300, TotalDuration: 300}); err != nil {
		t.Fatalf("watch: %v", err)
	}

	second := service.NewRecordsService(clock.SystemClock{}, id.UUID{}, recordsout.NewFileAggregateStore(kv), projector)
	second.LoadAll(ctx)
	second.LoadUser(ctx)
	ucSecond := usecase.NewInteractor(second)

	profile, err := ucSecond.GetProfile(ctx)
	if err != nil {
		t.Fatalf("profile after restart: %v", err)
	}
	if profile.Name != "Alex Rivera" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	lesson, err := ucSecond.GetLesson(ctx, "lesson-1")
	if err != nil {
		t.Fatalf("lesson after restart: %v", err)
	}
	if !lesson.IsCompleted {
		t.Fatalf("watch to the end should auto-complete, got %+v", lesson)
	}
	stats, err := ucSecond.Statistics(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.CoursesEnrolled != 1 || stats.LessonsCompleted != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestPreferenceKeys(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	projector, err := recordsout.NewSQLiteProgressProjector(filepath.Join(root, ".eduvantage", "eduvantage.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	store := recordsout.NewFileAggregateStore(kvstore.New(filepath.Join(root, "state")))
	uc := usecase.NewInteractor(service.NewRecordsService(clock.SystemClock{}, id.UUID{}, store, projector))
	ctx := context.Background()

	prefs, err := uc.SetPreference(ctx, dto.SetPreferenceInput{Key: "darkMode", Value: "true"})
	if err != nil {
		t.Fatalf("set darkMode: %v", err)
	}
	if !prefs.DarkModeEnabled {
		t.Fatalf("darkMode not applied")
	}
	prefs, err = uc.SetPreference(ctx, dto.SetPreferenceInput{Key: "language", Value: "Spanish"})
	if err != nil {
		t.Fatalf("set language: %v", err)
	}
	if prefs.Language != "Spanish" {
		t.Fatalf("language not applied: %+v", prefs)
	}
	if _, err := uc.SetPreference(ctx, dto.SetPreferenceInput{Key: "volume", Value: "11"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown key, got %v", err)
	}
	if _, err := uc.SetPreference(ctx, dto.SetPreferenceInput{Key: "notifications", Value: "loud"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad bool, got %v", err)
	}
}
