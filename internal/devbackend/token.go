package devbackend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type tokenType string

const (
	tokenAccess  tokenType = "access"
	tokenRefresh tokenType = "refresh"
)

type claims struct {
	UserID int64     `json:"user_id"`
	Type   tokenType `json:"type"`
	jwt.RegisteredClaims
}

var errTokenRevoked = errors.New("token has been revoked")

func (s *Server) issueToken(userID int64, typ tokenType) (string, error) {
	ttl := s.cfg.AccessTokenTTL
	if typ == tokenRefresh {
		ttl = s.cfg.RefreshTokenTTL
	}

	now := time.Now().UTC()
	c := claims{
		UserID: userID,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", typ, err)
	}
	return signed, nil
}

func (s *Server) parseToken(raw string) (*claims, error) {
	token, err := jwt.ParseWithClaims(raw, &claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	s.mu.Lock()
	_, revoked := s.revoked[c.ID]
	s.mu.Unlock()
	if revoked {
		return nil, errTokenRevoked
	}
	return c, nil
}

type claimsKey struct{}

func claimsFromContext(ctx context.Context) *claims {
	c, _ := ctx.Value(claimsKey{}).(*claims)
	return c
}

// requireToken rejects requests without a valid, unrevoked bearer token of
// the given type with 401.
func (s *Server) requireToken(want tokenType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r.Header.Get("Authorization"))
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "Missing Authorization Header")
				return
			}

			c, err := s.parseToken(raw)
			if err != nil {
				s.logger.Debug("token rejected", "error", err)
				writeError(w, http.StatusUnauthorized, "Token is invalid or has been revoked")
				return
			}
			if c.Type != want {
				writeError(w, http.StatusUnauthorized, fmt.Sprintf("Only %s tokens are allowed", want))
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, c)))
		})
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
