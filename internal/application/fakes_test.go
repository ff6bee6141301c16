package application_test

import (
	"context"
	"errors"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
)

// --- Mock implementations ---

type mockAuthAPI struct {
	login    func(ctx context.Context, username, password string) (model.Credential, error)
	register func(ctx context.Context, name, password string) error
	logout   func(ctx context.Context) error
	refresh  func(ctx context.Context, refreshToken string) (string, error)

	logoutCalls int
}

func (m *mockAuthAPI) Login(ctx context.Context, username, password string) (model.Credential, error) {
	return m.login(ctx, username, password)
}

func (m *mockAuthAPI) Register(ctx context.Context, name, password string) error {
	return m.register(ctx, name, password)
}

func (m *mockAuthAPI) Logout(ctx context.Context) error {
	m.logoutCalls++
	if m.logout == nil {
		return nil
	}
	return m.logout(ctx)
}

func (m *mockAuthAPI) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return m.refresh(ctx, refreshToken)
}

// brokenStore simulates an unavailable storage medium.
type brokenStore struct{}

var errDiskGone = errors.New("disk gone")

func (brokenStore) Save(context.Context, model.Credential) error    { return errDiskGone }
func (brokenStore) Load(context.Context) (*model.Credential, error) { return nil, errDiskGone }
func (brokenStore) Clear(context.Context) error                     { return errDiskGone }

type mockShipAPI struct {
	ships   []model.Ship
	created []model.Ship
	updated map[int64]model.Ship
	deleted []int64
	nextID  int64

	failCreateAt int // 1-based call number that fails; 0 never fails.
	createCalls  int
}

func (m *mockShipAPI) ListShips(_ context.Context) ([]model.Ship, error) {
	return m.ships, nil
}

func (m *mockShipAPI) GetShip(_ context.Context, id int64) (*model.Ship, error) {
	for _, s := range m.ships {
		if s.ID == id {
			c := s
			return &c, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *mockShipAPI) CreateShip(_ context.Context, ship model.Ship) (*model.Ship, error) {
	m.createCalls++
	if m.failCreateAt == m.createCalls {
		return nil, &model.ValidationError{Reason: "Missing required fields: model, ship_class"}
	}
	m.nextID++
	ship.ID = m.nextID
	m.created = append(m.created, ship)
	m.ships = append(m.ships, ship)
	return &ship, nil
}

func (m *mockShipAPI) UpdateShip(_ context.Context, id int64, ship model.Ship) (*model.Ship, error) {
	for i, s := range m.ships {
		if s.ID == id {
			ship.ID = id
			m.ships[i] = ship
			if m.updated == nil {
				m.updated = map[int64]model.Ship{}
			}
			m.updated[id] = ship
			return &ship, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *mockShipAPI) DeleteShip(_ context.Context, id int64) error {
	for i, s := range m.ships {
		if s.ID == id {
			m.ships = append(m.ships[:i], m.ships[i+1:]...)
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return model.ErrNotFound
}
