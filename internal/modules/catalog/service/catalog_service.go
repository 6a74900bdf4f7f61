package service

import (
	"context"
	"strings"

	"eduvantage/internal/modules/catalog/domain"
	catalogout "eduvantage/internal/modules/catalog/port/out"
	"eduvantage/internal/platform/slug"
)

type CatalogService struct {
	store     catalogout.CourseStore
	projector catalogout.CourseIndexProjector
}

func NewCatalogService(store catalogout.CourseStore, projector catalogout.CourseIndexProjector) *CatalogService {
	return &CatalogService{store: store, projector: projector}
}

func (s *CatalogService) Save(ctx context.Context, course domain.Course) (domain.Course, error) {
	if course.Slug == "" {
		course.Slug = slug.Make(course.Title)
	}
	if err := course.Validate(); err != nil {
		return domain.Course{}, err
	}
	if _, err := s.store.Save(ctx, course); err != nil {
		return domain.Course{}, err
	}
	if err := s.projector.UpsertCourse(ctx, course); err != nil {
		return domain.Course{}, err
	}
	return course, nil
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Course, error) {
	return s.store.List(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id string) (domain.Course, error) {
	return s.store.FindByID(ctx, id)
}

// Search matches the query against title and category, case folded.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Course, error) {
	courses, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return courses, nil
	}
	out := make([]domain.Course, 0, len(courses))
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Title), needle) || strings.Contains(strings.ToLower(c.Category), needle) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Seed writes the built-in courses, skipping any id already present.
func (s *CatalogService) Seed(ctx context.Context) ([]string, error) {
	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(existing))
	for _, c := range existing {
		present[c.ID] = true
	}

	created := []string{}
	for _, course := range domain.SeedCourses() {
		if present[course.ID] {
			continue
		}
		if _, err := s.Save(ctx, course); err != nil {
			return created, err
		}
		created = append(created, course.ID)
	}
	return created, nil
}

// Reindex rebuilds the courses read model from the documents.
func (s *CatalogService) Reindex(ctx context.Context) error {
	courses, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, c := range courses {
		if err := s.projector.UpsertCourse(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
