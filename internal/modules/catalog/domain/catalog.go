package domain

import "fmt"

const SchemaVersion = 1

// Course is one catalog entry, stored as a markdown document with YAML
// frontmatter under the catalog directory.
type Course struct {
	ID          string
	Slug        string
	Title       string
	Category    string
	Duration    string
	Difficulty  string
	Students    string
	Description string
	Lessons     []Lesson
	Questions   []Question
}

type Lesson struct {
	ID       string
	Title    string
	Duration float64
}

// Question is one multiple-choice quiz item attached to a course.
type Question struct {
	Text         string
	Options      []string
	CorrectIndex int
	Explanation  string
}

func (c Course) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("course id is required")
	}
	if c.Title == "" {
		return fmt.Errorf("course title is required")
	}
	for i, q := range c.Questions {
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("question %d: correct index out of range", i)
		}
	}
	return nil
}

// LessonByID searches the course's lesson list.
func (c Course) LessonByID(lessonID string) (Lesson, bool) {
	for _, l := range c.Lessons {
		if l.ID == lessonID {
			return l, true
		}
	}
	return Lesson{}, false
}
