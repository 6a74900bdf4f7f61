package out

import (
	"context"

	"eduvantage/internal/modules/records/domain"
	recordsout "eduvantage/internal/modules/records/port/out"
	"eduvantage/internal/platform/kvstore"
)

const (
	aggregateKey   = "appData"
	profileKey     = "currentUser"
	preferencesKey = "userPreferences"
)

// FileAggregateStore persists the record blobs as JSON files in the
// state directory, one file per key.
type FileAggregateStore struct {
	kv *kvstore.Store
}

func NewFileAggregateStore(kv *kvstore.Store) recordsout.AggregateStore {
	return &FileAggregateStore{kv: kv}
}

func (s *FileAggregateStore) SaveAggregate(ctx context.Context, data domain.AppData) error {
	return s.kv.Put(aggregateKey, data)
}

func (s *FileAggregateStore) LoadAggregate(ctx context.Context) (domain.AppData, error) {
	var data domain.AppData
	if err := s.kv.Get(aggregateKey, &data); err != nil {
		return domain.AppData{}, err
	}
	return data, nil
}

func (s *FileAggregateStore) DeleteAggregate(ctx context.Context) error {
	return s.kv.Delete(aggregateKey)
}

func (s *FileAggregateStore) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	return s.kv.Put(profileKey, profile)
}

func (s *FileAggregateStore) LoadProfile(ctx context.Context) (domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := s.kv.Get(profileKey, &profile); err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

func (s *FileAggregateStore) DeleteProfile(ctx context.Context) error {
	return s.kv.Delete(profileKey)
}

func (s *FileAggregateStore) SavePreferences(ctx context.Context, prefs domain.UserPreferences) error {
	return s.kv.Put(preferencesKey, prefs)
}

func (s *FileAggregateStore) DeletePreferences(ctx context.Context) error {
	return s.kv.Delete(preferencesKey)
}
