package devbackend

import (
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username or password missing.")
		return
	}

	u, ok := s.userByName(req.Username)
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Username or password invalid.")
		return
	}

	access, err := s.issueToken(u.id, tokenAccess)
	if err != nil {
		s.logger.Error("issuing access token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	refresh, err := s.issueToken(u.id, tokenRefresh)
	if err != nil {
		s.logger.Error("issuing refresh token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	c := claimsFromContext(r.Context())
	if _, ok := s.userByID(c.UserID); !ok {
		writeError(w, http.StatusUnauthorized, "Unknown user.")
		return
	}

	access, err := s.issueToken(c.UserID, tokenAccess)
	if err != nil {
		s.logger.Error("issuing access token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, accessTokenResponse{AccessToken: access})
}

// handleLogout revokes the bearer token's jti. /auth/logout revokes access
// tokens, /auth/logout2 refresh tokens.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	c := claimsFromContext(r.Context())

	s.mu.Lock()
	s.revoked[c.ID] = time.Now().UTC()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, messageResponse{Message: "Successfully logged out."})
}
