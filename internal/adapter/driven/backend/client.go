// Package backend implements the AuthAPI and ShipAPI ports over the
// ship-management REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
	"github.com/ericfisherdev/shipadmin/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.AuthAPI = (*Client)(nil)
	_ driven.ShipAPI = (*Client)(nil)
)

// maxErrorBody caps how much of an error response is read when looking for
// the backend's {"error": "..."} message.
const maxErrorBody = 64 << 10

// Client talks to the backend through an http.Client whose transport is an
// AuthorizedTransport.
type Client struct {
	http    *http.Client
	baseURL *url.URL
}

// NewClient creates a Client for baseURL with the following transport stack:
//  1. AuthorizedTransport (bearer attachment from creds)
//  2. http.DefaultTransport
//
// timeout of zero leaves requests unbounded, matching the transport default.
func NewClient(baseURL string, creds driven.CredentialStore, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{
		Transport: NewAuthorizedTransport(http.DefaultTransport, creds, logger),
		Timeout:   timeout,
	}
	return NewClientWithHTTPClient(httpClient, baseURL)
}

// NewClientWithHTTPClient creates a Client with a caller-built http.Client.
// Tests use it to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing base URL %q: scheme and host are required", baseURL)
	}
	return &Client{http: httpClient, baseURL: u}, nil
}

// errorBody is the backend's structured error payload.
type errorBody struct {
	Error string `json:"error"`
}

// do sends a JSON request and decodes a JSON response into out (when non-nil).
// header entries are set on the request before it reaches the transport.
func (c *Client) do(ctx context.Context, method, path string, in, out any, header http.Header) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, model.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %w", method, path, statusError(resp))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w: %w", method, path, model.ErrTransport, err)
	}
	return nil
}

// statusError classifies a non-2xx response into the model error taxonomy.
// Any other status that carries a structured {"error"} message, 5xx included,
// is a validation failure with that message as its reason.
func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return model.ErrUnauthorized
	case http.StatusNotFound:
		return model.ErrNotFound
	}

	var eb errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(data, &eb); err == nil && eb.Error != "" {
		return &model.ValidationError{Reason: eb.Error}
	}

	return fmt.Errorf("%w: unexpected status %d", model.ErrTransport, resp.StatusCode)
}

