package driven

import (
	"context"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
)

// ShipAPI defines the driven port for the backend's ship collection.
type ShipAPI interface {
	ListShips(ctx context.Context) ([]model.Ship, error)
	GetShip(ctx context.Context, id int64) (*model.Ship, error)
	// CreateShip submits every field except ID and returns the stored record.
	CreateShip(ctx context.Context, ship model.Ship) (*model.Ship, error)
	// UpdateShip replaces the record with the given ID.
	UpdateShip(ctx context.Context, id int64, ship model.Ship) (*model.Ship, error)
	DeleteShip(ctx context.Context, id int64) error
}
