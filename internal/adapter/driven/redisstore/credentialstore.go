// Package redisstore implements the CredentialStore port on Redis so several
// operator machines can share one session scope.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
	"github.com/ericfisherdev/shipadmin/internal/domain/port/driven"
)

const keyPrefix = "shipadmin:credentials:"

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore keeps the pair in a Redis hash named after the scope.
type CredentialStore struct {
	client redis.Cmdable
	key    string
}

// NewClient returns a go-redis client for redisURL (e.g. redis://localhost:6379/0)
// after confirming the server answers PING.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// NewCredentialStore creates a store for scope on the given client.
func NewCredentialStore(client redis.Cmdable, scope string) *CredentialStore {
	return &CredentialStore{client: client, key: keyPrefix + scope}
}

// Save writes both fields with a single HSET, after dropping any stale fields.
func (s *CredentialStore) Save(ctx context.Context, cred model.Credential) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		pipe.HSet(ctx, s.key,
			driven.AccessTokenKey, cred.AccessToken,
			driven.RefreshTokenKey, cred.RefreshToken,
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save credential %s: %w", s.key, err)
	}
	return nil
}

// Load returns the pair, or (nil, nil) when the hash is missing or incomplete.
func (s *CredentialStore) Load(ctx context.Context) (*model.Credential, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("load credential %s: %w", s.key, err)
	}

	cred := &model.Credential{
		AccessToken:  fields[driven.AccessTokenKey],
		RefreshToken: fields[driven.RefreshTokenKey],
	}
	if !cred.Complete() {
		return nil, nil
	}
	return cred, nil
}

// Clear deletes the hash.
func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear credential %s: %w", s.key, err)
	}
	return nil
}
