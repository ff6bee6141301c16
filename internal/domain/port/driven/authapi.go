package driven

import (
	"context"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
)

// AuthAPI defines the driven port for the backend's session endpoints.
// Errors are classified with the model error taxonomy.
type AuthAPI interface {
	// Login exchanges a username and password for a credential pair.
	Login(ctx context.Context, username, password string) (model.Credential, error)

	// Register creates an operator account. It does not log in.
	Register(ctx context.Context, name, password string) error

	// Logout revokes the access token currently attached by the transport.
	Logout(ctx context.Context) error

	// Refresh exchanges refreshToken for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
