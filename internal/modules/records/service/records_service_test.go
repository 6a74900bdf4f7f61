package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"eduvantage/internal/modules/records/domain"
	"eduvantage/internal/modules/records/service"
	apperrors "eduvantage/internal/platform/errors"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (g *seqID) New() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type memStore struct {
	aggregate    *domain.AppData
	profile      *domain.UserProfile
	preferences  *domain.UserPreferences
	saveCount    int
	aggregateErr error
}

func (m *memStore) SaveAggregate(_ context.Context, data domain.AppData) error {
	if m.aggregateErr != nil {
		return m.aggregateErr
	}
	m.saveCount++
	copied := data
	m.aggregate = &copied
	return nil
}

func (m *memStore) LoadAggregate(context.Context) (domain.AppData, error) {
	if m.aggregate == nil {
		return domain.AppData{}, apperrors.ErrKeyNotFound
	}
	return *m.aggregate, nil
}

func (m *memStore) DeleteAggregate(context.Context) error {
	m.aggregate = nil
	return nil
}

func (m *memStore) SaveProfile(_ context.Context, profile domain.UserProfile) error {
	m.profile = &profile
	return nil
}

func (m *memStore) LoadProfile(context.Context) (domain.UserProfile, error) {
	if m.profile == nil {
		return domain.UserProfile{}, apperrors.ErrKeyNotFound
	}
	return *m.profile, nil
}

func (m *memStore) DeleteProfile(context.Context) error {
	m.profile = nil
	return nil
}

func (m *memStore) SavePreferences(_ context.Context, prefs domain.UserPreferences) error {
	m.preferences = &prefs
	return nil
}

func (m *memStore) DeletePreferences(context.Context) error {
	m.preferences = nil
	return nil
}

type memProjector struct {
	rows   map[string]domain.CourseProgress
	resets int
}

func newMemProjector() *memProjector {
	return &memProjector{rows: map[string]domain.CourseProgress{}}
}

func (m *memProjector) Reset(context.Context) error {
	m.rows = map[string]domain.CourseProgress{}
	m.resets++
	return nil
}

func (m *memProjector) UpsertCourseProgress(_ context.Context, p domain.CourseProgress) error {
	m.rows[p.ID] = p
	return nil
}

func (m *memProjector) DeleteCourseProgress(_ context.Context, courseID string) error {
	for id, p := range m.rows {
		if p.CourseID == courseID {
			delete(m.rows, id)
		}
	}
	return nil
}

func newService(store *memStore) (*service.RecordsService, *memProjector) {
	projector := newMemProjector()
	svc := service.NewRecordsService(
		fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
		&seqID{},
		store,
		projector,
	)
	return svc, projector
}

func TestUpsertCourseProgressPreservesOrder(t *testing.T) {
	t.Parallel()
	svc, projector := newService(&memStore{})
	ctx := context.Background()

	first := domain.CourseProgress{ID: "a", CourseID: "course-1", CourseName: "One"}
	second := domain.CourseProgress{ID: "b", CourseID: "course-2", CourseName: "Two"}
	if err := svc.UpsertCourseProgress(ctx, first); err != nil {
		t.Fatalf("upsert first: %v", err)
	}
	if err := svc.UpsertCourseProgress(ctx, second); err != nil {
		t.Fatalf("upsert second: %v", err)
	}

	first.CourseName = "One Revised"
	if err := svc.UpsertCourseProgress(ctx, first); err != nil {
		t.Fatalf("upsert replacement: %v", err)
	}

	all := svc.GetAllCourseProgress()
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	if all[0].ID != "a" || all[0].CourseName != "One Revised" {
		t.Fatalf("replacement did not stay in place: %+v", all[0])
	}
	if all[1].ID != "b" {
		t.Fatalf("second record moved: %+v", all[1])
	}
	if projector.rows["a"].CourseName != "One Revised" {
		t.Fatalf("projection not updated: %+v", projector.rows["a"])
	}
}

func TestUpdateCourseProgressMissPersistsSilently(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	svc, projector := newService(store)
	ctx := context.Background()

	if err := svc.UpdateCourseProgress(ctx, "ghost", 50, 3); err != nil {
		t.Fatalf("update on miss: %v", err)
	}
	if store.saveCount != 1 {
		t.Fatalf("expected aggregate persisted on miss, saves=%d", store.saveCount)
	}
	if len(projector.rows) != 0 {
		t.Fatalf("projection should be untouched on miss")
	}
	if _, ok := svc.GetCourseProgress("ghost"); ok {
		t.Fatalf("miss must not create a record")
	}
}

func TestUpdateCourseProgressStampsLastAccessed(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&memStore{})
	ctx := context.Background()

	if err := svc.UpsertCourseProgress(ctx, domain.CourseProgress{ID: "a", CourseID: "course-1"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := svc.UpdateCourseProgress(ctx, "course-1", 42.5, 5); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, ok := svc.GetCourseProgress("course-1")
	if !ok {
		t.Fatalf("record missing")
	}
	if got.CompletionPercentage != 42.5 || got.LessonsCompleted != 5 {
		t.Fatalf("fields not updated: %+v", got)
	}
	if got.LastAccessedDate == nil {
		t.Fatalf("last accessed not stamped")
	}
}

func TestEnrollIsIdempotentPerCourse(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&memStore{})
	ctx := context.Background()

	first, err := svc.Enroll(ctx, "course-1", "Quantum Physics 101", "Science", 12)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	again, err := svc.Enroll(ctx, "course-1", "Quantum Physics 101", "Science", 12)
	if err != nil {
		t.Fatalf("re-enroll: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("re-enroll created a new record: %s vs %s", again.ID, first.ID)
	}
	if len(svc.GetAllCourseProgress()) != 1 {
		t.Fatalf("expected a single record")
	}
}

func TestLessonUpdateCanDuplicateLessonID(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&memStore{})
	ctx := context.Background()

	full := domain.LessonProgress{
		ID:         "rec-1",
		LessonID:   "lesson-1",
		CourseID:   "course-1",
		LessonName: "Intro",
	}
	if err := svc.UpsertLessonProgress(ctx, full); err != nil {
		t.Fatalf("upsert lesson: %v", err)
	}

	// A second record carrying the same lessonId under a different ID
	// appends rather than replaces; lookups keep resolving to the first.
	other := full
	other.ID = "rec-2"
	other.WatchedDuration = 99
	if err := svc.UpsertLessonProgress(ctx, other); err != nil {
		t.Fatalf("upsert duplicate: %v", err)
	}
	if got := len(svc.GetAllLessonProgress()); got != 2 {
		t.Fatalf("expected 2 records, got %d", got)
	}
	resolved, ok := svc.GetLessonProgress("lesson-1")
	if !ok || resolved.ID != "rec-1" {
		t.Fatalf("lookup should resolve to first record, got %+v", resolved)
	}
}

func TestUpdateLessonProgressCreatesPlaceholderRecord(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&memStore{})
	ctx := context.Background()

	if err := svc.UpdateLessonProgress(ctx, "lesson-9", 120, 600, false); err != nil {
		t.Fatalf("update lesson: %v", err)
	}
	got, ok := svc.GetLessonProgress("lesson-9")
	if !ok {
		t.Fatalf("record not created")
	}
	if got.ID == "" || got.CourseID != "" || got.LessonName != "" {
		t.Fatalf("placeholder fields wrong: %+v", got)
	}
	if got.LastWatchedPosition != 120 {
		t.Fatalf("last watched position should track watched duration, got %.1f", got.LastWatchedPosition)
	}
	if got.CompletionDate != nil {
		t.Fatalf("incomplete lesson must not carry a completion date")
	}

	if err := svc.UpdateLessonProgress(ctx, "lesson-9", 600, 600, true); err != nil {
		t.Fatalf("complete via update: %v", err)
	}
	got, _ = svc.GetLessonProgress("lesson-9")
	if !got.IsCompleted || got.CompletionDate == nil {
		t.Fatalf("completion not recorded: %+v", got)
	}
	if len(svc.GetAllLessonProgress()) != 1 {
		t.Fatalf("update must reuse the existing record")
	}
}

func TestMarkLessonCompleteSnapsDuration(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	svc, _ := newService(store)
	ctx := context.Background()

	if err := svc.UpsertLessonProgress(ctx, domain.LessonProgress{
		ID:              "rec-1",
		LessonID:        "lesson-1",
		WatchedDuration: 100,
		TotalDuration:   600,
	}); err != nil {
		t.Fatalf("upsert lesson: %v", err)
	}
	if err := svc.MarkLessonComplete(ctx, "lesson-1"); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	got, _ := svc.GetLessonProgress("lesson-1")
	if !got.IsCompleted || got.CompletionDate == nil {
		t.Fatalf("lesson not completed: %+v", got)
	}
	if got.WatchedDuration != got.TotalDuration {
		t.Fatalf("watched duration not snapped: %.1f vs %.1f", got.WatchedDuration, got.TotalDuration)
	}

	saves := store.saveCount
	if err := svc.MarkLessonComplete(ctx, "absent"); err != nil {
		t.Fatalf("mark complete on miss: %v", err)
	}
	if store.saveCount != saves+1 {
		t.Fatalf("miss should still persist the aggregate")
	}
}

func TestStatistics(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&memStore{})
	ctx := context.Background()

	empty := svc.ComputeStatistics()
	if empty.AverageProgress != 0 {
		t.Fatalf("empty average must be 0, got %.2f", empty.AverageProgress)
	}

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	must(svc.UpsertCourseProgress(ctx, domain.CourseProgress{ID: "a", CourseID: "c1", CompletionPercentage: 100}))
	must(svc.UpsertCourseProgress(ctx, domain.CourseProgress{ID: "b", CourseID: "c2", CompletionPercentage: 50}))
	must(svc.UpsertLessonProgress(ctx, domain.LessonProgress{ID: "l1", LessonID: "x", IsCompleted: true}))
	must(svc.UpsertLessonProgress(ctx, domain.LessonProgress{ID: "l2", LessonID: "y"}))

	stats := svc.ComputeStatistics()
	if stats.CoursesEnrolled != 2 || stats.CoursesCompleted != 1 {
		t.Fatalf("course stats wrong: %+v", stats)
	}
	if stats.LessonsCompleted != 1 {
		t.Fatalf("lesson stats wrong: %+v", stats)
	}
	if stats.AverageProgress != 75 {
		t.Fatalf("expected average 75, got %.2f", stats.AverageProgress)
	}
}

func TestDeleteUserWipesProgressButNotPreferences(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	svc, projector := newService(store)
	ctx := context.Background()

	if err := svc.SaveUser(ctx, domain.UserProfile{Name: "Alex Rivera", Email: "alex@example.com"}); err != nil {
		t.Fatalf("save user: %v", err)
	}
	if err := svc.UpsertCourseProgress(ctx, domain.CourseProgress{ID: "a", CourseID: "c1"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := svc.UpdatePreferences(ctx, domain.UserPreferences{Language: "Spanish"}); err != nil {
		t.Fatalf("prefs: %v", err)
	}

	if err := svc.DeleteUser(ctx); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, ok := svc.CurrentUser(); ok {
		t.Fatalf("profile should be gone")
	}
	if len(svc.GetAllCourseProgress()) != 0 {
		t.Fatalf("progress should be wiped")
	}
	if store.profile != nil || store.aggregate != nil {
		t.Fatalf("persisted blobs should be deleted")
	}
	if store.preferences == nil {
		t.Fatalf("preferences blob must survive user deletion")
	}
	if projector.resets == 0 {
		t.Fatalf("projection should be reset")
	}
}

func TestClearAllRemovesEverything(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	svc, _ := newService(store)
	ctx := context.Background()

	if err := svc.SaveUser(ctx, domain.UserProfile{Name: "Alex"}); err != nil {
		t.Fatalf("save user: %v", err)
	}
	if err := svc.UpdatePreferences(ctx, domain.UserPreferences{Language: "French"}); err != nil {
		t.Fatalf("prefs: %v", err)
	}

	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if store.aggregate != nil || store.profile != nil || store.preferences != nil {
		t.Fatalf("all blobs should be removed")
	}
	if svc.Preferences() != domain.DefaultPreferences() {
		t.Fatalf("preferences should reset to defaults")
	}
}

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	t.Parallel()
	store := &memStore{aggregateErr: fmt.Errorf("disk full")}
	svc, _ := newService(store)
	ctx := context.Background()

	err := svc.UpsertCourseProgress(ctx, domain.CourseProgress{ID: "a", CourseID: "c1"})
	if err == nil {
		t.Fatalf("expected persist error")
	}
	if _, ok := svc.GetCourseProgress("c1"); !ok {
		t.Fatalf("memory should keep the record despite the persist failure")
	}
}

func TestLoadAllFallsBackToEmptyAggregate(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&memStore{})
	svc.LoadAll(context.Background())
	if len(svc.GetAllCourseProgress()) != 0 {
		t.Fatalf("expected empty aggregate")
	}
	if svc.Preferences() != domain.DefaultPreferences() {
		t.Fatalf("expected default preferences")
	}
}

func TestLastSyncDateStampedOnSave(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	svc, _ := newService(store)
	if err := svc.UpsertCourseProgress(context.Background(), domain.CourseProgress{ID: "a", CourseID: "c1"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if store.aggregate == nil || store.aggregate.LastSyncDate == nil {
		t.Fatalf("lastSyncDate not stamped")
	}
	want := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	if !store.aggregate.LastSyncDate.Equal(want) {
		t.Fatalf("unexpected sync stamp: %v", store.aggregate.LastSyncDate)
	}
}
