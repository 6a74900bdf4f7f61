package out

import (
	"context"

	"eduvantage/internal/modules/records/domain"
)

// AggregateStore persists the AppData aggregate plus the redundant
// standalone profile and preferences blobs the original layout keeps.
type AggregateStore interface {
	SaveAggregate(ctx context.Context, data domain.AppData) error
	LoadAggregate(ctx context.Context) (domain.AppData, error)
	SaveProfile(ctx context.Context, profile domain.UserProfile) error
	LoadProfile(ctx context.Context) (domain.UserProfile, error)
	DeleteProfile(ctx context.Context) error
	DeleteAggregate(ctx context.Context) error
	SavePreferences(ctx context.Context, prefs domain.UserPreferences) error
	DeletePreferences(ctx context.Context) error
}

// ProgressProjector maintains the rebuildable course-progress read model.
type ProgressProjector interface {
	Reset(ctx context.Context) error
	UpsertCourseProgress(ctx context.Context, progress domain.CourseProgress) error
	DeleteCourseProgress(ctx context.Context, courseID string) error
}
