package in

import (
	"context"

	"eduvantage/internal/modules/catalog/dto"
)

type Usecase interface {
	ListCourses(ctx context.Context) ([]dto.CourseOutput, error)
	GetCourse(ctx context.Context, id string) (dto.CourseDetailOutput, error)
	Search(ctx context.Context, query string) ([]dto.CourseOutput, error)
	Seed(ctx context.Context) (dto.SeedOutput, error)
	Reindex(ctx context.Context) error
}
