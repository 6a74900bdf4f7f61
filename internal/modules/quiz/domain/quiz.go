package domain

import "time"

// Question is a snapshot of a catalog quiz item, copied into the
// attempt so grading keeps working if the catalog changes mid-quiz.
type Question struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// Attempt is one in-flight quiz run. At most one attempt is active at a
// time; finishing the last question retires it.
type Attempt struct {
	ID           string     `json:"id"`
	CourseID     string     `json:"courseId"`
	CourseTitle  string     `json:"courseTitle"`
	StartedAt    time.Time  `json:"startedAt"`
	CurrentIndex int        `json:"currentIndex"`
	Score        int        `json:"score"`
	Answers      []int      `json:"answers"`
	Questions    []Question `json:"questions"`
}

func (a Attempt) Finished() bool {
	return a.CurrentIndex >= len(a.Questions)
}

func (a Attempt) Current() (Question, bool) {
	if a.Finished() {
		return Question{}, false
	}
	return a.Questions[a.CurrentIndex], true
}

// Grade records the answer for the current question and advances.
// Returns whether the answer was correct.
func (a *Attempt) Grade(optionIndex int) bool {
	question, ok := a.Current()
	if !ok {
		return false
	}
	a.Answers = append(a.Answers, optionIndex)
	correct := optionIndex == question.CorrectIndex
	if correct {
		a.Score++
	}
	a.CurrentIndex++
	return correct
}
