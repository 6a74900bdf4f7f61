package out

import (
	"context"
	"errors"

	"eduvantage/internal/modules/account/domain"
	accountout "eduvantage/internal/modules/account/port/out"
	apperrors "eduvantage/internal/platform/errors"
	"eduvantage/internal/platform/kvstore"
)

// credentialKey is pinned for compatibility with blobs written by
// earlier releases.
const credentialKey = "eduVantage_user_v1"

type FileCredentialStore struct {
	kv *kvstore.Store
}

func NewFileCredentialStore(kv *kvstore.Store) accountout.CredentialStore {
	return &FileCredentialStore{kv: kv}
}

func (s *FileCredentialStore) Save(ctx context.Context, credential domain.StoredCredential) error {
	return s.kv.Put(credentialKey, credential)
}

// Load self-heals: a blob that no longer decodes is removed so the next
// launch starts from a clean create-account flow.
func (s *FileCredentialStore) Load(ctx context.Context) (domain.StoredCredential, error) {
	var credential domain.StoredCredential
	err := s.kv.Get(credentialKey, &credential)
	if err == nil {
		return credential, nil
	}
	if errors.Is(err, apperrors.ErrKeyNotFound) {
		return domain.StoredCredential{}, apperrors.ErrNoCredential
	}
	_ = s.kv.Delete(credentialKey)
	return domain.StoredCredential{}, apperrors.ErrNoCredential
}

func (s *FileCredentialStore) Clear(ctx context.Context) error {
	return s.kv.Delete(credentialKey)
}
