package out

import (
	"context"

	"eduvantage/internal/modules/account/domain"
)

// CredentialStore persists the single sign-in credential. Load returns
// ErrNoCredential when none is stored; a corrupt blob is cleared and
// reported the same way.
type CredentialStore interface {
	Save(ctx context.Context, credential domain.StoredCredential) error
	Load(ctx context.Context) (domain.StoredCredential, error)
	Clear(ctx context.Context) error
}
