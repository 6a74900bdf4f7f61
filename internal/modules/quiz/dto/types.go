package dto

type StartInput struct {
	CourseID string
}

type QuestionOutput struct {
	Index   int
	Total   int
	Text    string
	Options []string
}

type StartOutput struct {
	AttemptID   string
	CourseID    string
	CourseTitle string
	Question    QuestionOutput
}

type AnswerInput struct {
	OptionIndex int
}

type AnswerOutput struct {
	Correct     bool
	Explanation string
	Score       int
	Finished    bool
	Next        *QuestionOutput
}

type StatusOutput struct {
	AttemptID   string
	CourseID    string
	CourseTitle string
	Score       int
	Answered    int
	Total       int
	Question    *QuestionOutput
}
