package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"eduvantage/internal/modules/catalog/domain"
	catalogout "eduvantage/internal/modules/catalog/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteCourseProjector struct {
	db *sql.DB
}

func NewSQLiteCourseProjector(dbPath string) (catalogout.CourseIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteCourseProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteCourseProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS courses (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL,
  title TEXT NOT NULL,
  category TEXT,
  duration TEXT,
  difficulty TEXT,
  students TEXT,
  lesson_count INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create courses table: %w", err)
	}
	return nil
}

func (s *SQLiteCourseProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("reset courses: %w", err)
	}
	return nil
}

func (s *SQLiteCourseProjector) UpsertCourse(ctx context.Context, course domain.Course) error {
	const stmt = `
INSERT INTO courses (id, slug, title, category, duration, difficulty, students, lesson_count)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  slug=excluded.slug,
  title=excluded.title,
  category=excluded.category,
  duration=excluded.duration,
  difficulty=excluded.difficulty,
  students=excluded.students,
  lesson_count=excluded.lesson_count;
`
	_, err := s.db.ExecContext(ctx, stmt,
		course.ID,
		course.Slug,
		course.Title,
		course.Category,
		course.Duration,
		course.Difficulty,
		course.Students,
		len(course.Lessons),
	)
	if err != nil {
		return fmt.Errorf("upsert course: %w", err)
	}
	return nil
}
