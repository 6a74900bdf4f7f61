package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"eduvantage/internal/modules/records/domain"
	recordsout "eduvantage/internal/modules/records/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteProgressProjector maintains a write-only read model of course
// progress. The JSON blobs stay the source of truth; this table exists
// for ad hoc querying and is rebuilt wholesale by reindex.
type SQLiteProgressProjector struct {
	db *sql.DB
}

func NewSQLiteProgressProjector(dbPath string) (recordsout.ProgressProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteProgressProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteProgressProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS course_progress (
  id TEXT PRIMARY KEY,
  course_id TEXT NOT NULL,
  course_name TEXT NOT NULL,
  category TEXT,
  enrollment_date TEXT NOT NULL,
  completion_percentage REAL NOT NULL,
  lessons_completed INTEGER NOT NULL,
  total_lessons INTEGER NOT NULL,
  last_accessed_date TEXT,
  is_favorite INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create course_progress table: %w", err)
	}
	return nil
}

func (s *SQLiteProgressProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM course_progress`); err != nil {
		return fmt.Errorf("reset course_progress: %w", err)
	}
	return nil
}

func (s *SQLiteProgressProjector) UpsertCourseProgress(ctx context.Context, progress domain.CourseProgress) error {
	const stmt = `
INSERT INTO course_progress (id, course_id, course_name, category, enrollment_date, completion_percentage, lessons_completed, total_lessons, last_accessed_date, is_favorite)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  course_id=excluded.course_id,
  course_name=excluded.course_name,
  category=excluded.category,
  enrollment_date=excluded.enrollment_date,
  completion_percentage=excluded.completion_percentage,
  lessons_completed=excluded.lessons_completed,
  total_lessons=excluded.total_lessons,
  last_accessed_date=excluded.last_accessed_date,
  is_favorite=excluded.is_favorite;
`
	var lastAccessed any
	if progress.LastAccessedDate != nil {
		lastAccessed = progress.LastAccessedDate.Format(time.RFC3339)
	}
	favorite := 0
	if progress.IsFavorite {
		favorite = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		progress.ID,
		progress.CourseID,
		progress.CourseName,
		progress.Category,
		progress.EnrollmentDate.Format(time.RFC3339),
		progress.CompletionPercentage,
		progress.LessonsCompleted,
		progress.TotalLessons,
		lastAccessed,
		favorite,
	)
	if err != nil {
		return fmt.Errorf("upsert course progress: %w", err)
	}
	return nil
}

func (s *SQLiteProgressProjector) DeleteCourseProgress(ctx context.Context, courseID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM course_progress WHERE course_id = ?`, courseID); err != nil {
		return fmt.Errorf("delete course progress: %w", err)
	}
	return nil
}
