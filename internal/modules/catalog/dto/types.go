package dto

type CourseOutput struct {
	ID          string
	Slug        string
	Title       string
	Category    string
	Duration    string
	Difficulty  string
	Students    string
	LessonCount int
}

type LessonOutput struct {
	ID       string
	Title    string
	Duration float64
}

type QuestionOutput struct {
	Text         string
	Options      []string
	CorrectIndex int
	Explanation  string
}

type CourseDetailOutput struct {
	CourseOutput
	Description string
	Lessons     []LessonOutput
	Questions   []QuestionOutput
}

type SeedOutput struct {
	Created []string
}
