package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
	"github.com/ericfisherdev/shipadmin/internal/domain/port/driven"
)

// genericRegistrationFailure is reported when the backend rejects a
// registration without a structured reason.
const genericRegistrationFailure = "registration failed"

// SessionService drives login, registration, and logout against the backend
// and keeps the credential store in step. Storage failures are logged and
// otherwise ignored: the operator's action still completes.
type SessionService struct {
	auth   driven.AuthAPI
	creds  driven.CredentialStore
	logger *slog.Logger

	mu             sync.Mutex
	authenticating bool
}

// NewSessionService creates a SessionService with the required dependencies.
func NewSessionService(auth driven.AuthAPI, creds driven.CredentialStore, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		auth:   auth,
		creds:  creds,
		logger: logger,
	}
}

// Login exchanges username and password for a credential pair and stores it.
// Every failure is reported as model.ErrInvalidCredentials; the backend's
// reason is logged, never returned. The stored credential is untouched on failure.
func (s *SessionService) Login(ctx context.Context, username, password string) error {
	s.setAuthenticating(true)
	defer s.setAuthenticating(false)

	cred, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.logger.Warn("login failed", "username", username, "error", err)
		return model.ErrInvalidCredentials
	}

	if err := s.creds.Save(ctx, cred); err != nil {
		s.logger.Warn("credential store unavailable, session will not persist", "error", err)
	}

	s.logger.Info("logged in", "username", username)
	return nil
}

// Register creates an operator account. It does not log in. Failures are a
// *model.ValidationError carrying the backend's reason verbatim, or a generic
// reason when the backend gave none.
func (s *SessionService) Register(ctx context.Context, name, password string) error {
	err := s.auth.Register(ctx, name, password)
	if err == nil {
		s.logger.Info("registered", "name", name)
		return nil
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return verr
	}

	s.logger.Warn("registration failed", "name", name, "error", err)
	return &model.ValidationError{Reason: genericRegistrationFailure}
}

// Logout runs two independent steps: a best-effort remote revocation whose
// outcome is only logged, then an unconditional local clear.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed, clearing local session anyway", "error", err)
	}

	// The local clear must happen even when ctx was cancelled mid-call.
	if err := s.creds.Clear(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("credential store unavailable, nothing cleared", "error", err)
	}

	s.logger.Info("logged out")
}

// Refresh exchanges the stored refresh token for a new access token. It is
// only ever called on explicit operator request; nothing refreshes
// automatically. Without a stored credential it returns model.ErrUnauthorized.
func (s *SessionService) Refresh(ctx context.Context) error {
	cred := s.current(ctx)
	if cred == nil {
		return model.ErrUnauthorized
	}

	access, err := s.auth.Refresh(ctx, cred.RefreshToken)
	if err != nil {
		return err
	}

	if err := s.creds.Save(ctx, model.Credential{AccessToken: access, RefreshToken: cred.RefreshToken}); err != nil {
		s.logger.Warn("credential store unavailable, refreshed token not kept", "error", err)
	}

	s.logger.Info("access token refreshed")
	return nil
}

// State reports Authenticating while a login is in flight, otherwise
// Authenticated exactly when a complete credential is stored.
func (s *SessionService) State(ctx context.Context) model.SessionState {
	s.mu.Lock()
	authenticating := s.authenticating
	s.mu.Unlock()

	if authenticating {
		return model.SessionAuthenticating
	}
	if s.current(ctx) != nil {
		return model.SessionAuthenticated
	}
	return model.SessionAnonymous
}

// current loads the stored credential, treating storage errors as absent.
func (s *SessionService) current(ctx context.Context) *model.Credential {
	cred, err := s.creds.Load(ctx)
	if err != nil {
		s.logger.Warn("credential store unavailable", "error", err)
		return nil
	}
	if !cred.Complete() {
		return nil
	}
	return cred
}

func (s *SessionService) setAuthenticating(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticating = v
}
