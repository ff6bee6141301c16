package backend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/shipadmin/internal/adapter/driven/backend"
	"github.com/ericfisherdev/shipadmin/internal/adapter/driven/memory"
	"github.com/ericfisherdev/shipadmin/internal/application"
	"github.com/ericfisherdev/shipadmin/internal/devbackend"
	"github.com/ericfisherdev/shipadmin/internal/domain/model"
	"github.com/ericfisherdev/shipadmin/internal/fixture"
)

// authRecorder remembers the Authorization header of every request by
// method and path.
type authRecorder struct {
	mu   sync.Mutex
	seen map[string]string
	next http.Handler
}

func (a *authRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.seen[r.Method+" "+r.URL.Path] = r.Header.Get("Authorization")
	a.mu.Unlock()
	a.next.ServeHTTP(w, r)
}

func (a *authRecorder) get(key string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seen[key]
}

type stack struct {
	store    *memory.CredentialStore
	sessions *application.SessionService
	ships    *application.ShipService
	recorder *authRecorder
}

func newStack(t *testing.T) stack {
	t.Helper()

	srv, err := devbackend.NewServer(devbackend.Config{JWTSecret: "integration", BcryptCost: bcrypt.MinCost}, nil)
	require.NoError(t, err)
	require.NoError(t, srv.Seed(&fixture.File{
		Users: []fixture.User{{Name: "alice", Password: "correct-password"}},
		Ships: []fixture.Ship{{Model: "T-65 X-wing", ShipClass: "Starfighter", Roles: []string{"Escort", "Patrol"}}},
	}))

	rec := &authRecorder{seen: map[string]string{}, next: srv.Router()}
	ts := httptest.NewServer(rec)
	t.Cleanup(ts.Close)

	store := memory.NewCredentialStore()
	client, err := backend.NewClient(ts.URL, store, 0, nil)
	require.NoError(t, err)

	return stack{
		store:    store,
		sessions: application.NewSessionService(client, store, nil),
		ships:    application.NewShipService(client, nil),
		recorder: rec,
	}
}

func TestIntegration_LoginThenListAttachesBearer(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	require.NoError(t, s.sessions.Login(ctx, "alice", "correct-password"))
	cred, err := s.store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, cred)

	ships, err := s.ships.List(ctx)

	require.NoError(t, err)
	require.Len(t, ships, 1)
	assert.Equal(t, []string{"Escort", "Patrol"}, ships[0].Roles)
	assert.Equal(t, "Bearer "+cred.AccessToken, s.recorder.get("GET /api/ships"))
	assert.Empty(t, s.recorder.get("POST /auth/login"), "no credential existed before login")
}

func TestIntegration_WrongPassword(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	err := s.sessions.Login(ctx, "alice", "wrong-password")

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	cred, loadErr := s.store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Nil(t, cred)
}

func TestIntegration_ListWithoutLoginIsUnauthorized(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	ships, err := s.ships.List(ctx)

	assert.ErrorIs(t, err, model.ErrUnauthorized)
	assert.Nil(t, ships)
	assert.Empty(t, s.recorder.get("GET /api/ships"))

	_, err = s.ships.Get(ctx, 1)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestIntegration_ImportKeepsRolesVerbatim(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	require.NoError(t, s.sessions.Login(ctx, "alice", "correct-password"))
	f := &fixture.File{Ships: []fixture.Ship{
		{Model: "Lambda", ShipClass: "Shuttle", Roles: []string{}},
		{Model: "B-wing", ShipClass: "Assault", Roles: []string{"Heavy, Assault", " Escort "}},
	}}

	created, err := s.ships.Import(ctx, f.DomainShips())

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, []string{}, created[0].Roles)
	assert.Equal(t, []string{"Heavy, Assault", " Escort "}, created[1].Roles)

	stored, err := s.ships.Get(ctx, created[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Heavy, Assault", " Escort "}, stored.Roles)
}

func TestIntegration_MutationWithoutLoginIsUnauthorized(t *testing.T) {
	s := newStack(t)

	_, err := s.ships.Create(context.Background(), model.ShipDraft{Model: "A-wing", ShipClass: "Interceptor"})

	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestIntegration_CreateEditDelete(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	require.NoError(t, s.sessions.Login(ctx, "alice", "correct-password"))

	created, err := s.ships.Create(ctx, model.ShipDraft{
		Model:     "RZ-1 A-wing",
		ShipClass: "Interceptor",
		Roles:     "Escort,  Patrol ,  ",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Escort", "Patrol", ""}, created.Roles)

	draft, err := s.ships.Edit(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Escort, Patrol, ", draft.Roles)

	draft.Affiliation = "Rebel Alliance"
	updated, err := s.ships.Update(ctx, created.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, "Rebel Alliance", updated.Affiliation)
	assert.Equal(t, []string{"Escort", "Patrol", ""}, updated.Roles)

	require.NoError(t, s.ships.Delete(ctx, created.ID))
	assert.ErrorIs(t, s.ships.Delete(ctx, created.ID), model.ErrNotFound)
}

func TestIntegration_RegisterDuplicateName(t *testing.T) {
	s := newStack(t)

	err := s.sessions.Register(context.Background(), "alice", "another-password")

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Username is already taken.", verr.Reason)
}

func TestIntegration_LogoutRevokesAndClears(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	require.NoError(t, s.sessions.Login(ctx, "alice", "correct-password"))
	cred, err := s.store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, cred)

	s.sessions.Logout(ctx)

	assert.Equal(t, "Bearer "+cred.AccessToken, s.recorder.get("DELETE /auth/logout"))
	assert.Equal(t, model.SessionAnonymous, s.sessions.State(ctx))

	// Reinstating the revoked token does not restore access.
	require.NoError(t, s.store.Save(ctx, *cred))
	_, err = s.ships.Create(ctx, model.ShipDraft{Model: "m", ShipClass: "c"})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestIntegration_RefreshReplacesAccessToken(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	require.NoError(t, s.sessions.Login(ctx, "alice", "correct-password"))
	before, err := s.store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, before)

	require.NoError(t, s.sessions.Refresh(ctx))

	after, err := s.store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.NotEqual(t, before.AccessToken, after.AccessToken)
	assert.Equal(t, before.RefreshToken, after.RefreshToken)
	assert.Equal(t, "Bearer "+before.RefreshToken, s.recorder.get("POST /auth/refresh"))
}
