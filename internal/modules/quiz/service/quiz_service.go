package service

import (
	"context"

	"eduvantage/internal/modules/quiz/domain"
	"eduvantage/internal/platform/clock"
	"eduvantage/internal/platform/id"
)

type QuizService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewQuizService(clock clock.Clock, idGen id.Generator) *QuizService {
	return &QuizService{clock: clock, idGen: idGen}
}

func (s *QuizService) NewAttempt(_ context.Context, courseID, courseTitle string, questions []domain.Question) domain.Attempt {
	return domain.Attempt{
		ID:          s.idGen.New(),
		CourseID:    courseID,
		CourseTitle: courseTitle,
		StartedAt:   s.clock.Now(),
		Answers:     []int{},
		Questions:   questions,
	}
}
