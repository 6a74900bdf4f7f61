package out

import (
	"context"

	"eduvantage/internal/modules/session/domain"
	sessionout "eduvantage/internal/modules/session/port/out"
	"eduvantage/internal/platform/kvstore"
)

const stateKey = "sessionState"

type FileStateStore struct {
	kv *kvstore.Store
}

func NewFileStateStore(kv *kvstore.Store) sessionout.StateStore {
	return &FileStateStore{kv: kv}
}

func (s *FileStateStore) Save(ctx context.Context, state domain.State) error {
	return s.kv.Put(stateKey, state)
}

func (s *FileStateStore) Load(ctx context.Context) (domain.State, error) {
	var state domain.State
	if err := s.kv.Get(stateKey, &state); err != nil {
		return domain.State{}, err
	}
	return state, nil
}

func (s *FileStateStore) Clear(ctx context.Context) error {
	return s.kv.Delete(stateKey)
}
