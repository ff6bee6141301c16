package backend

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/shipadmin/internal/domain/port/driven"
)

// AuthorizedTransport is the single choke point for backend calls. It reads
// the credential store on every request and attaches the access token as a
// bearer credential. Responses, including 401s, are returned untouched: there
// is no retry and no automatic refresh.
type AuthorizedTransport struct {
	base   http.RoundTripper
	creds  driven.CredentialStore
	logger *slog.Logger
}

// NewAuthorizedTransport wraps base (http.DefaultTransport when nil).
func NewAuthorizedTransport(base http.RoundTripper, creds driven.CredentialStore, logger *slog.Logger) *AuthorizedTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorizedTransport{base: base, creds: creds, logger: logger}
}

// RoundTrip implements http.RoundTripper. A request that already carries an
// Authorization header (the refresh exchange) is sent as-is.
func (t *AuthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()
	ctx := req.Context()

	if req.Header.Get("Authorization") == "" {
		if token := t.accessToken(ctx, requestID); token != "" {
			// RoundTrippers must not mutate the caller's request.
			req = req.Clone(ctx)
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Debug("backend call failed",
			"request_id", requestID,
			"method", req.Method,
			"path", req.URL.Path,
			"error", err,
		)
		return nil, err
	}

	t.logger.Debug("backend call",
		"request_id", requestID,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"authorized", req.Header.Get("Authorization") != "",
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return resp, nil
}

// accessToken returns the stored access token, or "" when no complete pair is
// stored or the store cannot be read.
func (t *AuthorizedTransport) accessToken(ctx context.Context, requestID string) string {
	if t.creds == nil {
		return ""
	}
	cred, err := t.creds.Load(ctx)
	if err != nil {
		t.logger.Warn("credential store unavailable, sending unauthenticated",
			"request_id", requestID,
			"error", err,
		)
		return ""
	}
	if !cred.Complete() {
		return ""
	}
	return cred.AccessToken
}
