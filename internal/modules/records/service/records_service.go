package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"eduvantage/internal/modules/records/domain"
	recordsout "eduvantage/internal/modules/records/port/out"
	"eduvantage/internal/platform/clock"
	"eduvantage/internal/platform/id"
)

// RecordsService is the single source of truth for AppData during a
// process lifetime. Mutations update the in-memory aggregate first and
// then persist the whole blob; a failed persist leaves memory
// authoritative for the rest of the process. The mutex guards the
// read-modify-persist sequence because TUI commands run on goroutines.
type RecordsService struct {
	mu        sync.Mutex
	clock     clock.Clock
	idGen     id.Generator
	store     recordsout.AggregateStore
	projector recordsout.ProgressProjector

	data        domain.AppData
	currentUser *domain.UserProfile
}

func NewRecordsService(clock clock.Clock, idGen id.Generator, store recordsout.AggregateStore, projector recordsout.ProgressProjector) *RecordsService {
	return &RecordsService{
		clock:     clock,
		idGen:     idGen,
		store:     store,
		projector: projector,
		data:      domain.NewAppData(),
	}
}

// LoadAll restores the aggregate blob. Missing or corrupt data falls
// back to an empty aggregate without surfacing an error.
func (s *RecordsService) LoadAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.store.LoadAggregate(ctx)
	if err != nil {
		s.data = domain.NewAppData()
		return
	}
	if data.CourseProgress == nil {
		data.CourseProgress = []domain.CourseProgress{}
	}
	if data.LessonProgress == nil {
		data.LessonProgress = []domain.LessonProgress{}
	}
	s.data = data
	s.currentUser = data.User
}

// LoadUser restores the standalone profile blob, independent of the
// aggregate load. Missing or corrupt data is ignored.
func (s *RecordsService) LoadUser(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, err := s.store.LoadProfile(ctx)
	if err != nil {
		return
	}
	s.currentUser = &profile
	s.data.User = &profile
}

// persist stamps lastSyncDate and writes the aggregate. Callers hold the
// mutex.
func (s *RecordsService) persist(ctx context.Context) error {
	now := s.clock.Now()
	s.data.LastSyncDate = &now
	return s.store.SaveAggregate(ctx, s.data)
}

func (s *RecordsService) SaveUser(ctx context.Context, profile domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.ID == "" {
		profile.ID = s.idGen.New()
	}
	if profile.CreatedDate.IsZero() {
		profile.CreatedDate = s.clock.Now()
	}
	s.currentUser = &profile
	s.data.User = &profile
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return err
	}
	return s.persist(ctx)
}

func (s *RecordsService) CurrentUser() (domain.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return domain.UserProfile{}, false
	}
	return *s.currentUser, true
}

// DeleteUser clears the profile from memory and both persisted
// locations, and resets the entire aggregate: deleting the user also
// wipes all course and lesson progress.
func (s *RecordsService) DeleteUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = nil
	s.data = domain.NewAppData()
	if err := s.store.DeleteProfile(ctx); err != nil {
		return err
	}
	if err := s.store.DeleteAggregate(ctx); err != nil {
		return err
	}
	return s.projector.Reset(ctx)
}

func (s *RecordsService) UpsertCourseProgress(ctx context.Context, progress domain.CourseProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertCourseLocked(ctx, progress)
}

// upsertCourseLocked replaces in place on matching ID, preserving
// collection order, and appends otherwise.
func (s *RecordsService) upsertCourseLocked(ctx context.Context, progress domain.CourseProgress) error {
	replaced := false
	for i := range s.data.CourseProgress {
		if s.data.CourseProgress[i].ID == progress.ID {
			s.data.CourseProgress[i] = progress
			replaced = true
			break
		}
	}
	if !replaced {
		s.data.CourseProgress = append(s.data.CourseProgress, progress)
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	return s.projector.UpsertCourseProgress(ctx, progress)
}

// Enroll creates a progress record for a catalog course. Enrolling in a
// course that already has a record is a no-op returning the existing one.
func (s *RecordsService) Enroll(ctx context.Context, courseID, courseName, category string, totalLessons int) (domain.CourseProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.data.CourseProgress {
		if p.CourseID == courseID {
			return p, nil
		}
	}
	progress := domain.CourseProgress{
		ID:             s.idGen.New(),
		CourseID:       courseID,
		CourseName:     courseName,
		Category:       category,
		EnrollmentDate: s.clock.Now(),
		TotalLessons:   totalLessons,
	}
	if err := s.upsertCourseLocked(ctx, progress); err != nil {
		return progress, err
	}
	return progress, nil
}

func (s *RecordsService) GetCourseProgress(courseID string) (domain.CourseProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.data.CourseProgress {
		if p.CourseID == courseID {
			return p, true
		}
	}
	return domain.CourseProgress{}, false
}

// UpdateCourseProgress updates percentage and lessons-completed for the
// first record matching courseID and stamps last-accessed. A miss drops
// the values silently; the aggregate persists either way.
func (s *RecordsService) UpdateCourseProgress(ctx context.Context, courseID string, completionPercentage float64, lessonsCompleted int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var updated *domain.CourseProgress
	for i := range s.data.CourseProgress {
		if s.data.CourseProgress[i].CourseID == courseID {
			now := s.clock.Now()
			s.data.CourseProgress[i].CompletionPercentage = completionPercentage
			s.data.CourseProgress[i].LessonsCompleted = lessonsCompleted
			s.data.CourseProgress[i].LastAccessedDate = &now
			updated = &s.data.CourseProgress[i]
			break
		}
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	if updated != nil {
		return s.projector.UpsertCourseProgress(ctx, *updated)
	}
	return nil
}

func (s *RecordsService) ToggleCourseFavorite(ctx context.Context, courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var toggled *domain.CourseProgress
	for i := range s.data.CourseProgress {
		if s.data.CourseProgress[i].CourseID == courseID {
			s.data.CourseProgress[i].IsFavorite = !s.data.CourseProgress[i].IsFavorite
			toggled = &s.data.CourseProgress[i]
			break
		}
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	if toggled != nil {
		return s.projector.UpsertCourseProgress(ctx, *toggled)
	}
	return nil
}

// DeleteCourseProgress removes every record matching courseID.
func (s *RecordsService) DeleteCourseProgress(ctx context.Context, courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.data.CourseProgress[:0]
	for _, p := range s.data.CourseProgress {
		if p.CourseID != courseID {
			kept = append(kept, p)
		}
	}
	s.data.CourseProgress = kept
	if err := s.persist(ctx); err != nil {
		return err
	}
	return s.projector.DeleteCourseProgress(ctx, courseID)
}

func (s *RecordsService) GetAllCourseProgress() []domain.CourseProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CourseProgress, len(s.data.CourseProgress))
	copy(out, s.data.CourseProgress)
	return out
}

// UpsertLessonProgress matches on the record's internal ID, not
// LessonID. Mixing this with UpdateLessonProgress can leave two records
// for one lessonId; lookups then resolve to the first by insertion order.
func (s *RecordsService) UpsertLessonProgress(ctx context.Context, progress domain.LessonProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertLessonLocked(ctx, progress)
}

func (s *RecordsService) upsertLessonLocked(ctx context.Context, progress domain.LessonProgress) error {
	replaced := false
	for i := range s.data.LessonProgress {
		if s.data.LessonProgress[i].ID == progress.ID {
			s.data.LessonProgress[i] = progress
			replaced = true
			break
		}
	}
	if !replaced {
		s.data.LessonProgress = append(s.data.LessonProgress, progress)
	}
	return s.persist(ctx)
}

func (s *RecordsService) GetLessonProgress(lessonID string) (domain.LessonProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.data.LessonProgress {
		if p.LessonID == lessonID {
			return p, true
		}
	}
	return domain.LessonProgress{}, false
}

// UpdateLessonProgress records watch time for a lesson, constructing a
// record with placeholder courseId/lessonName when none exists yet.
func (s *RecordsService) UpdateLessonProgress(ctx context.Context, lessonID string, watchedDuration, totalDuration float64, isCompleted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lesson domain.LessonProgress
	found := false
	for _, p := range s.data.LessonProgress {
		if p.LessonID == lessonID {
			lesson = p
			found = true
			break
		}
	}
	if !found {
		lesson = domain.LessonProgress{
			ID:       s.idGen.New(),
			LessonID: lessonID,
		}
	}

	lesson.WatchedDuration = watchedDuration
	lesson.TotalDuration = totalDuration
	lesson.LastWatchedPosition = watchedDuration
	lesson.IsCompleted = isCompleted
	if isCompleted {
		now := s.clock.Now()
		lesson.CompletionDate = &now
	}
	return s.upsertLessonLocked(ctx, lesson)
}

// MarkLessonComplete completes the lesson and snaps watched duration to
// the total. Repeating it only re-stamps the completion date.
func (s *RecordsService) MarkLessonComplete(ctx context.Context, lessonID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.LessonProgress {
		if s.data.LessonProgress[i].LessonID == lessonID {
			now := s.clock.Now()
			s.data.LessonProgress[i].IsCompleted = true
			s.data.LessonProgress[i].CompletionDate = &now
			s.data.LessonProgress[i].WatchedDuration = s.data.LessonProgress[i].TotalDuration
			break
		}
	}
	return s.persist(ctx)
}

func (s *RecordsService) SaveLessonNotes(ctx context.Context, lessonID, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.LessonProgress {
		if s.data.LessonProgress[i].LessonID == lessonID {
			s.data.LessonProgress[i].Notes = notes
			break
		}
	}
	return s.persist(ctx)
}

func (s *RecordsService) RateLessonProgress(ctx context.Context, lessonID string, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.LessonProgress {
		if s.data.LessonProgress[i].LessonID == lessonID {
			s.data.LessonProgress[i].Rating = rating
			break
		}
	}
	return s.persist(ctx)
}

func (s *RecordsService) CountCompletedLessons() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, p := range s.data.LessonProgress {
		if p.IsCompleted {
			count++
		}
	}
	return count
}

func (s *RecordsService) GetAllLessonProgress() []domain.LessonProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LessonProgress, len(s.data.LessonProgress))
	copy(out, s.data.LessonProgress)
	return out
}

func (s *RecordsService) Preferences() domain.UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Preferences
}

// UpdatePreferences replaces the settings record wholesale, persisting
// both the standalone blob and the aggregate.
func (s *RecordsService) UpdatePreferences(ctx context.Context, prefs domain.UserPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Preferences = prefs
	if err := s.store.SavePreferences(ctx, prefs); err != nil {
		return err
	}
	return s.persist(ctx)
}

// The single-field setters persist only the aggregate, matching the
// original's asymmetry with UpdatePreferences.

func (s *RecordsService) SetNotifications(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Preferences.NotificationsEnabled = enabled
	return s.persist(ctx)
}

func (s *RecordsService) SetDarkMode(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Preferences.DarkModeEnabled = enabled
	return s.persist(ctx)
}

func (s *RecordsService) SetLanguage(ctx context.Context, language string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Preferences.Language = language
	return s.persist(ctx)
}

// ClearAll wipes all persisted blobs and returns the aggregate to its
// initial state.
func (s *RecordsService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = domain.NewAppData()
	s.currentUser = nil
	if err := s.store.DeleteAggregate(ctx); err != nil {
		return err
	}
	if err := s.store.DeleteProfile(ctx); err != nil {
		return err
	}
	if err := s.store.DeletePreferences(ctx); err != nil {
		return err
	}
	return s.projector.Reset(ctx)
}

// ExportSnapshot serializes the current aggregate to JSON text.
func (s *RecordsService) ExportSnapshot() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export app data: %w", err)
	}
	return string(payload), nil
}

// ComputeStatistics derives the dashboard aggregates. The average is 0
// when nothing is enrolled, never NaN.
func (s *RecordsService) ComputeStatistics() domain.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := domain.Statistics{
		CoursesEnrolled: len(s.data.CourseProgress),
	}
	total := 0.0
	for _, p := range s.data.CourseProgress {
		total += p.CompletionPercentage
		if p.CompletionPercentage >= 100.0 {
			stats.CoursesCompleted++
		}
	}
	for _, p := range s.data.LessonProgress {
		if p.IsCompleted {
			stats.LessonsCompleted++
		}
	}
	if stats.CoursesEnrolled > 0 {
		stats.AverageProgress = total / float64(stats.CoursesEnrolled)
	}
	return stats
}

// Reindex rebuilds the course-progress projection from the aggregate.
func (s *RecordsService) Reindex(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, p := range s.data.CourseProgress {
		if err := s.projector.UpsertCourseProgress(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
