package in

import (
	"context"

	"eduvantage/internal/modules/records/dto"
)

type Usecase interface {
	SaveProfile(ctx context.Context, input dto.SaveProfileInput) (dto.ProfileOutput, error)
	GetProfile(ctx context.Context) (dto.ProfileOutput, error)
	DeleteProfile(ctx context.Context) error

	Enroll(ctx context.Context, input dto.EnrollInput) (dto.CourseProgressOutput, error)
	ListCourses(ctx context.Context) ([]dto.CourseProgressOutput, error)
	GetCourse(ctx context.Context, courseID string) (dto.CourseProgressOutput, error)
	UpdateCourse(ctx context.Context, input dto.UpdateCourseInput) (dto.CourseProgressOutput, error)
	ToggleFavorite(ctx context.Context, courseID string) (dto.CourseProgressOutput, error)
	DropCourse(ctx context.Context, courseID string) error

	WatchLesson(ctx context.Context, input dto.WatchLessonInput) (dto.LessonProgressOutput, error)
	CompleteLesson(ctx context.Context, lessonID string) (dto.LessonProgressOutput, error)
	GetLesson(ctx context.Context, lessonID string) (dto.LessonProgressOutput, error)
	ListLessons(ctx context.Context) ([]dto.LessonProgressOutput, error)
	SaveLessonNotes(ctx context.Context, lessonID, notes string) error
	RateLesson(ctx context.Context, lessonID string, rating int) error

	GetPreferences(ctx context.Context) (dto.PreferencesOutput, error)
	SetPreference(ctx context.Context, input dto.SetPreferenceInput) (dto.PreferencesOutput, error)

	Statistics(ctx context.Context) (dto.StatisticsOutput, error)
	Export(ctx context.Context) (string, error)
	ClearAll(ctx context.Context) error
	Reindex(ctx context.Context) error
}
