package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"eduvantage/internal/modules/records/domain"
	"eduvantage/internal/modules/records/dto"
	recordsin "eduvantage/internal/modules/records/port/in"
	"eduvantage/internal/modules/records/service"
	apperrors "eduvantage/internal/platform/errors"
)

type Interactor struct {
	svc *service.RecordsService
}

func NewInteractor(svc *service.RecordsService) recordsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) SaveProfile(ctx context.Context, input dto.SaveProfileInput) (dto.ProfileOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return dto.ProfileOutput{}, fmt.Errorf("%w: name is required", apperrors.ErrInvalidInput)
	}
	email := strings.TrimSpace(input.Email)
	if !strings.Contains(email, "@") {
		return dto.ProfileOutput{}, fmt.Errorf("%w: email must include @", apperrors.ErrInvalidInput)
	}

	profile := domain.UserProfile{
		Name:       name,
		Email:      email,
		University: strings.TrimSpace(input.University),
	}
	if existing, ok := i.svc.CurrentUser(); ok {
		profile.ID = existing.ID
		profile.CreatedDate = existing.CreatedDate
		profile.CoursesEnrolled = existing.CoursesEnrolled
		profile.CoursesCompleted = existing.CoursesCompleted
		profile.StreakDays = existing.StreakDays
		profile.LastActiveDate = existing.LastActiveDate
	}
	if url := strings.TrimSpace(input.ProfileImageURL); url != "" {
		profile.ProfileImageURL = &url
	}
	if err := i.svc.SaveUser(ctx, profile); err != nil {
		return dto.ProfileOutput{}, err
	}
	saved, _ := i.svc.CurrentUser()
	return profileOutput(saved), nil
}

func (i *Interactor) GetProfile(ctx context.Context) (dto.ProfileOutput, error) {
	profile, ok := i.svc.CurrentUser()
	if !ok {
		return dto.ProfileOutput{}, apperrors.ErrNotFound
	}
	return profileOutput(profile), nil
}

func (i *Interactor) DeleteProfile(ctx context.Context) error {
	return i.svc.DeleteUser(ctx)
}

func (i *Interactor) Enroll(ctx context.Context, input dto.EnrollInput) (dto.CourseProgressOutput, error) {
	if strings.TrimSpace(input.CourseID) == "" {
		return dto.CourseProgressOutput{}, fmt.Errorf("%w: course id is required", apperrors.ErrInvalidInput)
	}
	progress, err := i.svc.Enroll(ctx, input.CourseID, input.CourseName, input.Category, input.TotalLessons)
	if err != nil {
		return dto.CourseProgressOutput{}, err
	}
	return courseOutput(progress), nil
}

func (i *Interactor) ListCourses(ctx context.Context) ([]dto.CourseProgressOutput, error) {
	all := i.svc.GetAllCourseProgress()
	out := make([]dto.CourseProgressOutput, 0, len(all))
	for _, p := range all {
		out = append(out, courseOutput(p))
	}
	return out, nil
}

func (i *Interactor) GetCourse(ctx context.Context, courseID string) (dto.CourseProgressOutput, error) {
	progress, ok := i.svc.GetCourseProgress(courseID)
	if !ok {
		return dto.CourseProgressOutput{}, apperrors.ErrNotFound
	}
	return courseOutput(progress), nil
}

func (i *Interactor) UpdateCourse(ctx context.Context, input dto.UpdateCourseInput) (dto.CourseProgressOutput, error) {
	if input.CompletionPercentage < 0 || input.CompletionPercentage > 100 {
		return dto.CourseProgressOutput{}, fmt.Errorf("%w: completion percentage must be between 0 and 100", apperrors.ErrInvalidInput)
	}
	if input.LessonsCompleted < 0 {
		return dto.CourseProgressOutput{}, fmt.Errorf("%w: lessons completed must be non-negative", apperrors.ErrInvalidInput)
	}
	if _, ok := i.svc.GetCourseProgress(input.CourseID); !ok {
		return dto.CourseProgressOutput{}, apperrors.ErrNotFound
	}
	if err := i.svc.UpdateCourseProgress(ctx, input.CourseID, input.CompletionPercentage, input.LessonsCompleted); err != nil {
		return dto.CourseProgressOutput{}, err
	}
	progress, _ := i.svc.GetCourseProgress(input.CourseID)
	return courseOutput(progress), nil
}

func (i *Interactor) ToggleFavorite(ctx context.Context, courseID string) (dto.CourseProgressOutput, error) {
	if _, ok := i.svc.GetCourseProgress(courseID); !ok {
		return dto.CourseProgressOutput{}, apperrors.ErrNotFound
	}
	if err := i.svc.ToggleCourseFavorite(ctx, courseID); err != nil {
		return dto.CourseProgressOutput{}, err
	}
	progress, _ := i.svc.GetCourseProgress(courseID)
	return courseOutput(progress), nil
}

func (i *Interactor) DropCourse(ctx context.Context, courseID string) error {
	if _, ok := i.svc.GetCourseProgress(courseID); !ok {
		return apperrors.ErrNotFound
	}
	return i.svc.DeleteCourseProgress(ctx, courseID)
}

func (i *Interactor) WatchLesson(ctx context.Context, input dto.WatchLessonInput) (dto.LessonProgressOutput, error) {
	if strings.TrimSpace(input.LessonID) == "" {
		return dto.LessonProgressOutput{}, fmt.Errorf("%w: lesson id is required", apperrors.ErrInvalidInput)
	}
	if input.WatchedDuration < 0 || input.TotalDuration < 0 {
		return dto.LessonProgressOutput{}, fmt.Errorf("%w: durations must be non-negative", apperrors.ErrInvalidInput)
	}
	completed := input.Completed
	if input.TotalDuration > 0 && input.WatchedDuration >= input.TotalDuration {
		completed = true
	}
	if err := i.svc.UpdateLessonProgress(ctx, input.LessonID, input.WatchedDuration, input.TotalDuration, completed); err != nil {
		return dto.LessonProgressOutput{}, err
	}
	progress, _ := i.svc.GetLessonProgress(input.LessonID)
	return lessonOutput(progress), nil
}

func (i *Interactor) CompleteLesson(ctx context.Context, lessonID string) (dto.LessonProgressOutput, error) {
	if _, ok := i.svc.GetLessonProgress(lessonID); !ok {
		return dto.LessonProgressOutput{}, apperrors.ErrNotFound
	}
	if err := i.svc.MarkLessonComplete(ctx, lessonID); err != nil {
		return dto.LessonProgressOutput{}, err
	}
	progress, _ := i.svc.GetLessonProgress(lessonID)
	return lessonOutput(progress), nil
}

func (i *Interactor) GetLesson(ctx context.Context, lessonID string) (dto.LessonProgressOutput, error) {
	progress, ok := i.svc.GetLessonProgress(lessonID)
	if !ok {
		return dto.LessonProgressOutput{}, apperrors.ErrNotFound
	}
	return lessonOutput(progress), nil
}

func (i *Interactor) ListLessons(ctx context.Context) ([]dto.LessonProgressOutput, error) {
	all := i.svc.GetAllLessonProgress()
	out := make([]dto.LessonProgressOutput, 0, len(all))
	for _, p := range all {
		out = append(out, lessonOutput(p))
	}
	return out, nil
}

func (i *Interactor) SaveLessonNotes(ctx context.Context, lessonID, notes string) error {
	if _, ok := i.svc.GetLessonProgress(lessonID); !ok {
		return apperrors.ErrNotFound
	}
	return i.svc.SaveLessonNotes(ctx, lessonID, notes)
}

func (i *Interactor) RateLesson(ctx context.Context, lessonID string, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", apperrors.ErrInvalidInput)
	}
	if _, ok := i.svc.GetLessonProgress(lessonID); !ok {
		return apperrors.ErrNotFound
	}
	return i.svc.RateLessonProgress(ctx, lessonID, rating)
}

func (i *Interactor) GetPreferences(ctx context.Context) (dto.PreferencesOutput, error) {
	return preferencesOutput(i.svc.Preferences()), nil
}

func (i *Interactor) SetPreference(ctx context.Context, input dto.SetPreferenceInput) (dto.PreferencesOutput, error) {
	prefs := i.svc.Preferences()
	key := strings.TrimSpace(input.Key)
	switch key {
	case "notifications":
		enabled, err := strconv.ParseBool(input.Value)
		if err != nil {
			return dto.PreferencesOutput{}, fmt.Errorf("%w: %s expects true or false", apperrors.ErrInvalidInput, key)
		}
		if err := i.svc.SetNotifications(ctx, enabled); err != nil {
			return dto.PreferencesOutput{}, err
		}
		return preferencesOutput(i.svc.Preferences()), nil
	case "darkMode":
		enabled, err := strconv.ParseBool(input.Value)
		if err != nil {
			return dto.PreferencesOutput{}, fmt.Errorf("%w: %s expects true or false", apperrors.ErrInvalidInput, key)
		}
		if err := i.svc.SetDarkMode(ctx, enabled); err != nil {
			return dto.PreferencesOutput{}, err
		}
		return preferencesOutput(i.svc.Preferences()), nil
	case "language":
		if strings.TrimSpace(input.Value) == "" {
			return dto.PreferencesOutput{}, fmt.Errorf("%w: language must not be empty", apperrors.ErrInvalidInput)
		}
		if err := i.svc.SetLanguage(ctx, input.Value); err != nil {
			return dto.PreferencesOutput{}, err
		}
		return preferencesOutput(i.svc.Preferences()), nil
	case "autoPlay":
		enabled, err := strconv.ParseBool(input.Value)
		if err != nil {
			return dto.PreferencesOutput{}, fmt.Errorf("%w: %s expects true or false", apperrors.ErrInvalidInput, key)
		}
		prefs.AutoPlayEnabled = enabled
	case "playbackQuality":
		prefs.PlaybackQuality = input.Value
	case "privacyLevel":
		prefs.PrivacyLevel = input.Value
	case "emailNotifications":
		enabled, err := strconv.ParseBool(input.Value)
		if err != nil {
			return dto.PreferencesOutput{}, fmt.Errorf("%w: %s expects true or false", apperrors.ErrInvalidInput, key)
		}
		prefs.EmailNotifications = enabled
	case "pushNotifications":
		enabled, err := strconv.ParseBool(input.Value)
		if err != nil {
			return dto.PreferencesOutput{}, fmt.Errorf("%w: %s expects true or false", apperrors.ErrInvalidInput, key)
		}
		prefs.PushNotifications = enabled
	case "theme":
		prefs.Theme = input.Value
	default:
		return dto.PreferencesOutput{}, fmt.Errorf("%w: unknown preference %q", apperrors.ErrInvalidInput, input.Key)
	}
	if err := i.svc.UpdatePreferences(ctx, prefs); err != nil {
		return dto.PreferencesOutput{}, err
	}
	return preferencesOutput(i.svc.Preferences()), nil
}

func (i *Interactor) Statistics(ctx context.Context) (dto.StatisticsOutput, error) {
	stats := i.svc.ComputeStatistics()
	return dto.StatisticsOutput{
		CoursesEnrolled:  stats.CoursesEnrolled,
		CoursesCompleted: stats.CoursesCompleted,
		LessonsCompleted: stats.LessonsCompleted,
		AverageProgress:  stats.AverageProgress,
	}, nil
}

func (i *Interactor) Export(ctx context.Context) (string, error) {
	return i.svc.ExportSnapshot()
}

func (i *Interactor) ClearAll(ctx context.Context) error {
	return i.svc.ClearAll(ctx)
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func preferencesOutput(p domain.UserPreferences) dto.PreferencesOutput {
	return dto.PreferencesOutput{
		NotificationsEnabled: p.NotificationsEnabled,
		DarkModeEnabled:      p.DarkModeEnabled,
		Language:             p.Language,
		AutoPlayEnabled:      p.AutoPlayEnabled,
		PlaybackQuality:      p.PlaybackQuality,
		PrivacyLevel:         p.PrivacyLevel,
		EmailNotifications:   p.EmailNotifications,
		PushNotifications:    p.PushNotifications,
		Theme:                p.Theme,
	}
}

func profileOutput(p domain.UserProfile) dto.ProfileOutput {
	out := dto.ProfileOutput{
		ID:               p.ID,
		Name:             p.Name,
		Email:            p.Email,
		University:       p.University,
		CreatedDate:      p.CreatedDate,
		CoursesEnrolled:  p.CoursesEnrolled,
		CoursesCompleted: p.CoursesCompleted,
		StreakDays:       p.StreakDays,
		LastActiveDate:   p.LastActiveDate,
	}
	if p.ProfileImageURL != nil {
		out.ProfileImageURL = *p.ProfileImageURL
	}
	return out
}

func courseOutput(p domain.CourseProgress) dto.CourseProgressOutput {
	return dto.CourseProgressOutput{
		ID:                   p.ID,
		CourseID:             p.CourseID,
		CourseName:           p.CourseName,
		Category:             p.Category,
		EnrollmentDate:       p.EnrollmentDate,
		CompletionPercentage: p.CompletionPercentage,
		LessonsCompleted:     p.LessonsCompleted,
		TotalLessons:         p.TotalLessons,
		LastAccessedDate:     p.LastAccessedDate,
		IsFavorite:           p.IsFavorite,
	}
}

func lessonOutput(p domain.LessonProgress) dto.LessonProgressOutput {
	return dto.LessonProgressOutput{
		ID:                  p.ID,
		LessonID:            p.LessonID,
		CourseID:            p.CourseID,
		LessonName:          p.LessonName,
		IsCompleted:         p.IsCompleted,
		WatchedDuration:     p.WatchedDuration,
		TotalDuration:       p.TotalDuration,
		CompletionDate:      p.CompletionDate,
		LastWatchedPosition: p.LastWatchedPosition,
		Notes:               p.Notes,
		Rating:              p.Rating,
	}
}
