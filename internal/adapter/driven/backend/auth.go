package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login posts the username and password to /auth/login. A 2xx response
// without both tokens is reported as a transport failure.
func (c *Client) Login(ctx context.Context, username, password string) (model.Credential, error) {
	var tr tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &tr, nil); err != nil {
		return model.Credential{}, err
	}

	cred := model.Credential{AccessToken: tr.AccessToken, RefreshToken: tr.RefreshToken}
	if !cred.Complete() {
		return model.Credential{}, fmt.Errorf("POST /auth/login: incomplete token pair: %w", model.ErrTransport)
	}
	return cred, nil
}

// Register posts a new operator account to /api/users.
func (c *Client) Register(ctx context.Context, name, password string) error {
	return c.do(ctx, http.MethodPost, "/api/users", registerRequest{Name: name, Password: password}, nil, nil)
}

// Logout revokes the currently attached access token.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/auth/logout", nil, nil, nil)
}

// Refresh exchanges refreshToken for a new access token. The refresh token is
// sent as the bearer credential for this call only.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+refreshToken)

	var tr tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, &tr, header); err != nil {
		return "", err
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("POST /auth/refresh: missing access token: %w", model.ErrTransport)
	}
	return tr.AccessToken, nil
}
