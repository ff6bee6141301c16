// Package memory implements the CredentialStore port in process memory. The
// pair lives as long as the process; it backs tests and one-shot runs.
package memory

import (
	"context"
	"sync"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
	"github.com/ericfisherdev/shipadmin/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore holds at most one pair behind a mutex.
type CredentialStore struct {
	mu   sync.RWMutex
	cred *model.Credential
}

// NewCredentialStore returns an empty store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

func (s *CredentialStore) Save(_ context.Context, cred model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &cred
	return nil
}

func (s *CredentialStore) Load(_ context.Context) (*model.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.cred.Complete() {
		return nil, nil
	}
	c := *s.cred
	return &c, nil
}

func (s *CredentialStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}
