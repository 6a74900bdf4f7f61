package in

import (
	"context"

	"eduvantage/internal/modules/catalog/dto"
	catalogin "eduvantage/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.CourseOutput, error) {
	return h.usecase.ListCourses(ctx)
}

func (h CLIHandler) Show(ctx context.Context, id string) (dto.CourseDetailOutput, error) {
	return h.usecase.GetCourse(ctx, id)
}

func (h CLIHandler) Search(ctx context.Context, query string) ([]dto.CourseOutput, error) {
	return h.usecase.Search(ctx, query)
}

func (h CLIHandler) Seed(ctx context.Context) (dto.SeedOutput, error) {
	return h.usecase.Seed(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
