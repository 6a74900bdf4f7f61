package usecase

import (
	"context"

	"eduvantage/internal/modules/catalog/domain"
	"eduvantage/internal/modules/catalog/dto"
	catalogin "eduvantage/internal/modules/catalog/port/in"
	"eduvantage/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListCourses(ctx context.Context) ([]dto.CourseOutput, error) {
	courses, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return courseOutputs(courses), nil
}

func (i *Interactor) GetCourse(ctx context.Context, id string) (dto.CourseDetailOutput, error) {
	course, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.CourseDetailOutput{}, err
	}
	detail := dto.CourseDetailOutput{
		CourseOutput: courseOutput(course),
		Description:  course.Description,
	}
	for _, l := range course.Lessons {
		detail.Lessons = append(detail.Lessons, dto.LessonOutput{ID: l.ID, Title: l.Title, Duration: l.Duration})
	}
	for _, q := range course.Questions {
		detail.Questions = append(detail.Questions, dto.QuestionOutput{
			Text:         q.Text,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		})
	}
	return detail, nil
}

func (i *Interactor) Search(ctx context.Context, query string) ([]dto.CourseOutput, error) {
	courses, err := i.svc.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return courseOutputs(courses), nil
}

func (i *Interactor) Seed(ctx context.Context) (dto.SeedOutput, error) {
	created, err := i.svc.Seed(ctx)
	if err != nil {
		return dto.SeedOutput{}, err
	}
	return dto.SeedOutput{Created: created}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func courseOutput(c domain.Course) dto.CourseOutput {
	return dto.CourseOutput{
		ID:          c.ID,
		Slug:        c.Slug,
		Title:       c.Title,
		Category:    c.Category,
		Duration:    c.Duration,
		Difficulty:  c.Difficulty,
		Students:    c.Students,
		LessonCount: len(c.Lessons),
	}
}

func courseOutputs(courses []domain.Course) []dto.CourseOutput {
	out := make([]dto.CourseOutput, 0, len(courses))
	for _, c := range courses {
		out = append(out, courseOutput(c))
	}
	return out
}
