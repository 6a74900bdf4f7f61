package service

import (
	"context"
	"errors"

	"eduvantage/internal/modules/account/domain"
	accountout "eduvantage/internal/modules/account/port/out"
	apperrors "eduvantage/internal/platform/errors"
)

type AccountService struct {
	store accountout.CredentialStore
}

func NewAccountService(store accountout.CredentialStore) *AccountService {
	return &AccountService{store: store}
}

func (s *AccountService) Save(ctx context.Context, credential domain.StoredCredential) error {
	return s.store.Save(ctx, credential)
}

func (s *AccountService) Load(ctx context.Context) (domain.StoredCredential, error) {
	return s.store.Load(ctx)
}

func (s *AccountService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Verify checks a sign-in attempt against the stored credential. The
// boolean is false on a mismatch; a missing credential surfaces as
// ErrNoCredential.
func (s *AccountService) Verify(ctx context.Context, email, password string) (domain.StoredCredential, bool, error) {
	credential, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoCredential) {
			return domain.StoredCredential{}, false, apperrors.ErrNoCredential
		}
		return domain.StoredCredential{}, false, err
	}
	if !credential.Matches(email, password) {
		return domain.StoredCredential{}, false, nil
	}
	return credential, true, nil
}
