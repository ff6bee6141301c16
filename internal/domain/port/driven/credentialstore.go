package driven

import (
	"context"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
)

// Fixed storage keys for the two halves of the credential pair. Every adapter
// stores them under these names within its scope.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// CredentialStore defines the driven port for the durable credential pair.
// Every process sharing a store's scope sees the same pair; there is no
// cross-process invalidation.
type CredentialStore interface {
	// Save persists the pair, replacing any existing value.
	Save(ctx context.Context, cred model.Credential) error

	// Load returns the stored pair, or (nil, nil) when nothing is stored.
	// A partially stored pair is reported as absent.
	Load(ctx context.Context) (*model.Credential, error)

	// Clear removes the stored pair. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
