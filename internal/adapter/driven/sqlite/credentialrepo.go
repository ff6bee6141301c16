package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
	"github.com/ericfisherdev/shipadmin/internal/domain/port/driven"
)

// ErrSealedWithoutKey is returned by Load when the stored pair was sealed but
// the repo was constructed without a secret.
var ErrSealedWithoutKey = errors.New("stored credential is sealed: set SHIPADMIN_SECRET")

// hkdfInfo scopes derived keys to credential sealing.
const hkdfInfo = "shipadmin credential store v1"

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port.
// Rows are keyed by (scope, key); when a key is configured, values are sealed
// with AES-256-GCM before write and opened after read.
type CredentialRepo struct {
	db    *DB
	scope string
	key   []byte // 32-byte AES-256 key; nil stores plaintext.
}

// NewCredentialRepo creates a CredentialRepo for the given scope. key must be
// 32 bytes (see DeriveKey) or nil to store tokens unsealed.
func NewCredentialRepo(db *DB, scope string, key []byte) *CredentialRepo {
	return &CredentialRepo{db: db, scope: scope, key: key}
}

// DeriveKey stretches an operator-supplied secret into a 32-byte AES key with
// HKDF-SHA256. An empty secret yields nil.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, nil
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("derive credential key: %w", err)
	}
	return key, nil
}

// Save writes both tokens in one transaction so readers never observe half a pair.
func (r *CredentialRepo) Save(ctx context.Context, cred model.Credential) error {
	access, err := r.seal(cred.AccessToken)
	if err != nil {
		return err
	}
	refresh, err := r.seal(cred.RefreshToken)
	if err != nil {
		return err
	}

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save credential: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `INSERT OR REPLACE INTO credentials (scope, key, value, sealed, updated_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`
	for _, kv := range [][2]string{{driven.AccessTokenKey, access}, {driven.RefreshTokenKey, refresh}} {
		if _, err := tx.ExecContext(ctx, query, r.scope, kv[0], kv[1], r.key != nil); err != nil {
			return fmt.Errorf("save credential %s/%s: %w", r.scope, kv[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save credential: %w", err)
	}
	return nil
}

// Load returns the stored pair for the scope, or (nil, nil) when either half is missing.
func (r *CredentialRepo) Load(ctx context.Context) (*model.Credential, error) {
	const query = `SELECT key, value, sealed FROM credentials WHERE scope = ?`
	rows, err := r.db.Reader.QueryContext(ctx, query, r.scope)
	if err != nil {
		return nil, fmt.Errorf("load credential %s: %w", r.scope, err)
	}
	defer rows.Close()

	values := make(map[string]string, 2)
	for rows.Next() {
		var key, value string
		var sealed bool
		if err := rows.Scan(&key, &value, &sealed); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		if sealed {
			value, err = r.open(value)
			if err != nil {
				return nil, fmt.Errorf("open credential %s/%s: %w", r.scope, key, err)
			}
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}

	cred := &model.Credential{
		AccessToken:  values[driven.AccessTokenKey],
		RefreshToken: values[driven.RefreshTokenKey],
	}
	if !cred.Complete() {
		return nil, nil
	}
	return cred, nil
}

// Clear removes every key stored under the scope.
func (r *CredentialRepo) Clear(ctx context.Context) error {
	const query = `DELETE FROM credentials WHERE scope = ?`
	if _, err := r.db.Writer.ExecContext(ctx, query, r.scope); err != nil {
		return fmt.Errorf("clear credential %s: %w", r.scope, err)
	}
	return nil
}

// seal encrypts plaintext with AES-256-GCM and returns base64(nonce || ciphertext || tag).
// Without a key the plaintext is returned unchanged.
func (r *CredentialRepo) seal(plaintext string) (string, error) {
	if r.key == nil {
		return plaintext, nil
	}

	gcm, err := r.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// open reverses seal.
func (r *CredentialRepo) open(encoded string) (string, error) {
	if r.key == nil {
		return "", ErrSealedWithoutKey
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	gcm, err := r.gcm()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}

func (r *CredentialRepo) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return gcm, nil
}
