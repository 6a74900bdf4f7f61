package out

import (
	"context"
	"errors"

	"eduvantage/internal/modules/quiz/domain"
	quizout "eduvantage/internal/modules/quiz/port/out"
	apperrors "eduvantage/internal/platform/errors"
	"eduvantage/internal/platform/kvstore"
)

const attemptKey = "activeQuizAttempt"

type FileAttemptStore struct {
	kv *kvstore.Store
}

func NewFileAttemptStore(kv *kvstore.Store) quizout.AttemptStore {
	return &FileAttemptStore{kv: kv}
}

func (s *FileAttemptStore) SaveActive(ctx context.Context, attempt domain.Attempt) error {
	return s.kv.Put(attemptKey, attempt)
}

func (s *FileAttemptStore) LoadActive(ctx context.Context) (domain.Attempt, error) {
	var attempt domain.Attempt
	if err := s.kv.Get(attemptKey, &attempt); err != nil {
		if errors.Is(err, apperrors.ErrKeyNotFound) {
			return domain.Attempt{}, apperrors.ErrNoActiveAttempt
		}
		return domain.Attempt{}, err
	}
	return attempt, nil
}

func (s *FileAttemptStore) ClearActive(ctx context.Context) error {
	return s.kv.Delete(attemptKey)
}
