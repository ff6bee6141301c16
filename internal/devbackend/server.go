// Package devbackend is an in-memory implementation of the ship-management
// REST API. It backs cmd/shipstub and the client integration tests.
package devbackend

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
)

// Config controls token issuance and password hashing.
type Config struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// BcryptCost defaults to bcrypt.DefaultCost when zero.
	BcryptCost int
}

// Server holds the user table, ship table, and token blocklist.
type Server struct {
	cfg    Config
	secret []byte
	logger *slog.Logger

	mu         sync.Mutex
	users      map[int64]user
	nextUserID int64
	ships      map[int64]ship
	nextShipID int64
	revoked    map[string]time.Time
}

// NewServer creates an empty Server.
func NewServer(cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("devbackend: JWT secret is required")
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = 15 * time.Minute
	}
	if cfg.RefreshTokenTTL <= 0 {
		cfg.RefreshTokenTTL = 30 * 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		cfg:     cfg,
		secret:  []byte(cfg.JWTSecret),
		logger:  logger,
		users:   make(map[int64]user),
		ships:   make(map[int64]ship),
		revoked: make(map[string]time.Time),
	}, nil
}

// Router returns the HTTP handler with all routes registered. Each request
// gets a chi request ID, an access log record, and panic recovery.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, accessLog(s.logger), recoverPanics(s.logger))

	r.Get("/health", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.With(s.requireToken(tokenRefresh)).Post("/refresh", s.handleRefresh)
		r.With(s.requireToken(tokenAccess)).Delete("/logout", s.handleLogout)
		r.With(s.requireToken(tokenRefresh)).Delete("/logout2", s.handleLogout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/users", s.handleListUsers)
		r.Post("/users", s.handleCreateUser)
		r.Get("/users/{id}", s.handleGetUser)

		// Every ship route, reads included, needs an access token.
		r.Group(func(r chi.Router) {
			r.Use(s.requireToken(tokenAccess))
			r.Get("/ships", s.handleListShips)
			r.Get("/ships/{id}", s.handleGetShip)
			r.Post("/ships", s.handleCreateShip)
			r.Put("/ships/{id}", s.handleUpdateShip)
			r.Delete("/ships/{id}", s.handleDeleteShip)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
