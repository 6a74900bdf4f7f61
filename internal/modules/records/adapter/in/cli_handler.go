package in

import (
	"context"

	"eduvantage/internal/modules/records/dto"
	recordsin "eduvantage/internal/modules/records/port/in"
)

type CLIHandler struct {
	usecase recordsin.Usecase
}

func NewCLIHandler(usecase recordsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Enroll(ctx context.Context, courseID, courseName, category string, totalLessons int) (dto.CourseProgressOutput, error) {
	return h.usecase.Enroll(ctx, dto.EnrollInput{
		CourseID:     courseID,
		CourseName:   courseName,
		Category:     category,
		TotalLessons: totalLessons,
	})
}

func (h CLIHandler) ListCourses(ctx context.Context) ([]dto.CourseProgressOutput, error) {
	return h.usecase.ListCourses(ctx)
}

func (h CLIHandler) GetCourse(ctx context.Context, courseID string) (dto.CourseProgressOutput, error) {
	return h.usecase.GetCourse(ctx, courseID)
}

func (h CLIHandler) UpdateCourse(ctx context.Context, courseID string, percentage float64, lessonsCompleted int) (dto.CourseProgressOutput, error) {
	return h.usecase.UpdateCourse(ctx, dto.UpdateCourseInput{
		CourseID:             courseID,
		CompletionPercentage: percentage,
		LessonsCompleted:     lessonsCompleted,
	})
}

func (h CLIHandler) ToggleFavorite(ctx context.Context, courseID string) (dto.CourseProgressOutput, error) {
	return h.usecase.ToggleFavorite(ctx, courseID)
}

func (h CLIHandler) DropCourse(ctx context.Context, courseID string) error {
	return h.usecase.DropCourse(ctx, courseID)
}

func (h CLIHandler) WatchLesson(ctx context.Context, lessonID string, watched, total float64, completed bool) (dto.LessonProgressOutput, error) {
	return h.usecase.WatchLesson(ctx, dto.WatchLessonInput{
		LessonID:        lessonID,
		WatchedDuration: watched,
		TotalDuration:   total,
		Completed:       completed,
	})
}

func (h CLIHandler) CompleteLesson(ctx context.Context, lessonID string) (dto.LessonProgressOutput, error) {
	return h.usecase.CompleteLesson(ctx, lessonID)
}

func (h CLIHandler) GetLesson(ctx context.Context, lessonID string) (dto.LessonProgressOutput, error) {
	return h.usecase.GetLesson(ctx, lessonID)
}

func (h CLIHandler) ListLessons(ctx context.Context) ([]dto.LessonProgressOutput, error) {
	return h.usecase.ListLessons(ctx)
}

func (h CLIHandler) SaveLessonNotes(ctx context.Context, lessonID, notes string) error {
	return h.usecase.SaveLessonNotes(ctx, lessonID, notes)
}

func (h CLIHandler) RateLesson(ctx context.Context, lessonID string, rating int) error {
	return h.usecase.RateLesson(ctx, lessonID, rating)
}

func (h CLIHandler) GetPreferences(ctx context.Context) (dto.PreferencesOutput, error) {
	return h.usecase.GetPreferences(ctx)
}

func (h CLIHandler) SetPreference(ctx context.Context, key, value string) (dto.PreferencesOutput, error) {
	return h.usecase.SetPreference(ctx, dto.SetPreferenceInput{Key: key, Value: value})
}

func (h CLIHandler) Statistics(ctx context.Context) (dto.StatisticsOutput, error) {
	return h.usecase.Statistics(ctx)
}

func (h CLIHandler) Export(ctx context.Context) (string, error) {
	return h.usecase.Export(ctx)
}

func (h CLIHandler) ClearAll(ctx context.Context) error {
	return h.usecase.ClearAll(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
