package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"eduvantage/internal/modules/catalog/domain"
	catalogout "eduvantage/internal/modules/catalog/port/out"
	apperrors "eduvantage/internal/platform/errors"
	"eduvantage/internal/platform/markdown"
)

// CatalogDocStore keeps one markdown document per course under the
// catalog directory. The description lives in the body; everything else
// is frontmatter.
type CatalogDocStore struct {
	catalogPath string
}

func NewCatalogDocStore(catalogPath string) catalogout.CourseStore {
	return &CatalogDocStore{catalogPath: catalogPath}
}

func (s *CatalogDocStore) Save(_ context.Context, course domain.Course) (string, error) {
	path := filepath.Join(s.catalogPath, course.Slug+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create catalog directory: %w", err)
	}

	body := course.Description
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	rendered, err := markdown.RenderFrontmatter(toFrontmatter(course), body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write course document: %w", err)
	}
	return path, nil
}

func (s *CatalogDocStore) FindByID(ctx context.Context, id string) (domain.Course, error) {
	courses, err := s.List(ctx)
	if err != nil {
		return domain.Course{}, err
	}
	for _, c := range courses {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Course{}, apperrors.ErrNotFound
}

func (s *CatalogDocStore) List(_ context.Context) ([]domain.Course, error) {
	matches, err := filepath.Glob(filepath.Join(s.catalogPath, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob course documents: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.Course, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		meta, body, splitErr := markdown.SplitFrontmatter(string(content))
		if splitErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, splitErr)
		}
		course, convErr := fromFrontmatter(meta, path)
		if convErr != nil {
			return nil, fmt.Errorf("decode course %s: %w", path, convErr)
		}
		course.Description = strings.TrimSpace(body)
		out = append(out, course)
	}
	return out, nil
}

func toFrontmatter(course domain.Course) map[string]any {
	lessons := make([]map[string]any, 0, len(course.Lessons))
	for _, l := range course.Lessons {
		lessons = append(lessons, map[string]any{
			"id":       l.ID,
			"title":    l.Title,
			"duration": l.Duration,
		})
	}
	questions := make([]map[string]any, 0, len(course.Questions))
	for _, q := range course.Questions {
		questions = append(questions, map[string]any{
			"text":          q.Text,
			"options":       q.Options,
			"correct_index": q.CorrectIndex,
			"explanation":   q.Explanation,
		})
	}
	return map[string]any{
		"schema_version": domain.SchemaVersion,
		"id":             course.ID,
		"title":          course.Title,
		"category":       course.Category,
		"duration":       course.Duration,
		"difficulty":     course.Difficulty,
		"students":       course.Students,
		"lessons":        lessons,
		"questions":      questions,
	}
}

func fromFrontmatter(meta map[string]any, path string) (domain.Course, error) {
	course := domain.Course{
		ID:         asString(meta["id"]),
		Title:      asString(meta["title"]),
		Category:   asString(meta["category"]),
		Duration:   asString(meta["duration"]),
		Difficulty: asString(meta["difficulty"]),
		Students:   asString(meta["students"]),
	}
	course.Slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if raw, ok := meta["lessons"].([]any); ok {
		for _, item := range raw {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			course.Lessons = append(course.Lessons, domain.Lesson{
				ID:       asString(entry["id"]),
				Title:    asString(entry["title"]),
				Duration: asFloat(entry["duration"]),
			})
		}
	}
	if raw, ok := meta["questions"].([]any); ok {
		for _, item := range raw {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			course.Questions = append(course.Questions, domain.Question{
				Text:         asString(entry["text"]),
				Options:      asStringSlice(entry["options"]),
				CorrectIndex: int(asFloat(entry["correct_index"])),
				Explanation:  asString(entry["explanation"]),
			})
		}
	}
	if err := course.Validate(); err != nil {
		return domain.Course{}, err
	}
	return course, nil
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	case float32:
		return float64(x)
	case string:
		var out float64
		_, _ = fmt.Sscanf(x, "%f", &out)
		return out
	default:
		return 0
	}
}

func asStringSlice(v any) []string {
	if v == nil {
		return nil
	}
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}
