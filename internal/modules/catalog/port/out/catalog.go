package out

import (
	"context"

	"eduvantage/internal/modules/catalog/domain"
)

// CourseStore persists catalog courses as documents. FindByID returns
// ErrNotFound for unknown ids.
type CourseStore interface {
	Save(ctx context.Context, course domain.Course) (string, error)
	FindByID(ctx context.Context, id string) (domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
}

// CourseIndexProjector maintains the write-only courses read model.
type CourseIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertCourse(ctx context.Context, course domain.Course) error
}
