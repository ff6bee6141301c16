package devbackend

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"

	"golang.org/x/crypto/bcrypt"
)

type user struct {
	id           int64
	name         string
	passwordHash []byte
}

type userResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type createUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (u user) response() userResponse {
	return userResponse{ID: u.id, Name: u.name}
}

func (s *Server) userByName(name string) (user, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.name == name {
			return u, true
		}
	}
	return user{}, false
}

func (s *Server) userByID(id int64) (user, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// errUsernameTaken is returned by addUser for duplicate names.
var errUsernameTaken = errors.New("username is already taken")

// addUser hashes password and stores a new user with the next ID.
func (s *Server) addUser(name, password string) (user, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return user{}, fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.name == name {
			return user{}, errUsernameTaken
		}
	}
	s.nextUserID++
	u := user{id: s.nextUserID, name: name, passwordHash: hash}
	s.users[u.id] = u
	return u, nil
}

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]userResponse, 0, len(s.users))
	for _, id := range slices.Sorted(maps.Keys(s.users)) {
		out = append(out, s.users[id].response())
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "")
		return
	}
	u, ok := s.userByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "")
		return
	}
	writeJSON(w, http.StatusOK, u.response())
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil || req.Name == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "The 'name' and 'password' fields are required.")
		return
	}

	u, err := s.addUser(req.Name, req.Password)
	if errors.Is(err, errUsernameTaken) {
		writeError(w, http.StatusBadRequest, "Username is already taken.")
		return
	}
	if err != nil {
		s.logger.Error("creating user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/users/%d", u.id))
	writeJSON(w, http.StatusCreated, u.response())
}
