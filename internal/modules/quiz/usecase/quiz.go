package usecase

import (
	"context"
	"errors"
	"fmt"

	catalogin "eduvantage/internal/modules/catalog/port/in"
	"eduvantage/internal/modules/quiz/domain"
	"eduvantage/internal/modules/quiz/dto"
	quizin "eduvantage/internal/modules/quiz/port/in"
	quizout "eduvantage/internal/modules/quiz/port/out"
	"eduvantage/internal/modules/quiz/service"
	apperrors "eduvantage/internal/platform/errors"
)

type Interactor struct {
	svc         *service.QuizService
	catalog     catalogin.Usecase
	activeStore quizout.AttemptStore
}

func NewInteractor(svc *service.QuizService, catalog catalogin.Usecase, activeStore quizout.AttemptStore) quizin.Usecase {
	return &Interactor{svc: svc, catalog: catalog, activeStore: activeStore}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	if _, err := i.activeStore.LoadActive(ctx); err == nil {
		return dto.StartOutput{}, apperrors.ErrActiveAttemptExists
	} else if !errors.Is(err, apperrors.ErrNoActiveAttempt) {
		return dto.StartOutput{}, err
	}

	course, err := i.catalog.GetCourse(ctx, input.CourseID)
	if err != nil {
		return dto.StartOutput{}, err
	}
	if len(course.Questions) == 0 {
		return dto.StartOutput{}, fmt.Errorf("%w: course %q has no quiz", apperrors.ErrInvalidInput, input.CourseID)
	}

	questions := make([]domain.Question, 0, len(course.Questions))
	for _, q := range course.Questions {
		questions = append(questions, domain.Question{
			Text:         q.Text,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		})
	}
	attempt := i.svc.NewAttempt(ctx, course.ID, course.Title, questions)
	if err := i.activeStore.SaveActive(ctx, attempt); err != nil {
		return dto.StartOutput{}, err
	}

	question, _ := attempt.Current()
	return dto.StartOutput{
		AttemptID:   attempt.ID,
		CourseID:    attempt.CourseID,
		CourseTitle: attempt.CourseTitle,
		Question:    questionOutput(question, attempt.CurrentIndex, len(attempt.Questions)),
	}, nil
}

func (i *Interactor) Answer(ctx context.Context, input dto.AnswerInput) (dto.AnswerOutput, error) {
	attempt, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return dto.AnswerOutput{}, err
	}
	question, ok := attempt.Current()
	if !ok {
		return dto.AnswerOutput{}, apperrors.ErrNoActiveAttempt
	}
	if input.OptionIndex < 0 || input.OptionIndex >= len(question.Options) {
		return dto.AnswerOutput{}, fmt.Errorf("%w: option index out of range", apperrors.ErrInvalidInput)
	}

	correct := attempt.Grade(input.OptionIndex)
	out := dto.AnswerOutput{
		Correct:     correct,
		Explanation: question.Explanation,
		Score:       attempt.Score,
		Finished:    attempt.Finished(),
	}
	if out.Finished {
		if err := i.activeStore.ClearActive(ctx); err != nil {
			return dto.AnswerOutput{}, err
		}
		return out, nil
	}
	if err := i.activeStore.SaveActive(ctx, attempt); err != nil {
		return dto.AnswerOutput{}, err
	}
	next, _ := attempt.Current()
	nextOut := questionOutput(next, attempt.CurrentIndex, len(attempt.Questions))
	out.Next = &nextOut
	return out, nil
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	attempt, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	out := dto.StatusOutput{
		AttemptID:   attempt.ID,
		CourseID:    attempt.CourseID,
		CourseTitle: attempt.CourseTitle,
		Score:       attempt.Score,
		Answered:    len(attempt.Answers),
		Total:       len(attempt.Questions),
	}
	if question, ok := attempt.Current(); ok {
		q := questionOutput(question, attempt.CurrentIndex, len(attempt.Questions))
		out.Question = &q
	}
	return out, nil
}

func (i *Interactor) Abort(ctx context.Context) error {
	if _, err := i.activeStore.LoadActive(ctx); err != nil {
		return err
	}
	return i.activeStore.ClearActive(ctx)
}

func questionOutput(q domain.Question, index, total int) dto.QuestionOutput {
	return dto.QuestionOutput{
		Index:   index,
		Total:   total,
		Text:    q.Text,
		Options: q.Options,
	}
}
