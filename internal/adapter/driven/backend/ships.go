package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
)

// shipJSON is the wire form of a ship. ID is omitted on create.
type shipJSON struct {
	ID           int64    `json:"id,omitempty"`
	Model        string   `json:"model"`
	ShipClass    string   `json:"ship_class"`
	Affiliation  string   `json:"affiliation"`
	Manufacturer string   `json:"manufacturer"`
	Category     string   `json:"category"`
	Crew         int      `json:"crew"`
	Length       float64  `json:"length"`
	Roles        []string `json:"roles"`
}

// ListShips fetches the full collection in backend order.
func (c *Client) ListShips(ctx context.Context) ([]model.Ship, error) {
	var wire []shipJSON
	if err := c.do(ctx, http.MethodGet, "/api/ships", nil, &wire, nil); err != nil {
		return nil, err
	}

	ships := make([]model.Ship, 0, len(wire))
	for _, s := range wire {
		ships = append(ships, mapShip(s))
	}
	return ships, nil
}

// GetShip fetches one ship. A 404 is reported as model.ErrNotFound.
func (c *Client) GetShip(ctx context.Context, id int64) (*model.Ship, error) {
	var wire shipJSON
	if err := c.do(ctx, http.MethodGet, shipPath(id), nil, &wire, nil); err != nil {
		return nil, err
	}
	ship := mapShip(wire)
	return &ship, nil
}

// CreateShip posts the ship without its ID and returns the stored record.
func (c *Client) CreateShip(ctx context.Context, ship model.Ship) (*model.Ship, error) {
	in := toShipJSON(ship)
	in.ID = 0

	var out shipJSON
	if err := c.do(ctx, http.MethodPost, "/api/ships", in, &out, nil); err != nil {
		return nil, err
	}
	created := mapShip(out)
	return &created, nil
}

// UpdateShip replaces the ship with the given ID.
func (c *Client) UpdateShip(ctx context.Context, id int64, ship model.Ship) (*model.Ship, error) {
	in := toShipJSON(ship)
	in.ID = id

	var out shipJSON
	if err := c.do(ctx, http.MethodPut, shipPath(id), in, &out, nil); err != nil {
		return nil, err
	}
	updated := mapShip(out)
	return &updated, nil
}

// DeleteShip removes the ship. Deleting a missing ship is model.ErrNotFound.
func (c *Client) DeleteShip(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, shipPath(id), nil, nil, nil)
}

func shipPath(id int64) string {
	return fmt.Sprintf("/api/ships/%d", id)
}

// mapShip converts the wire form to the domain model. A null roles field
// becomes an empty slice.
func mapShip(s shipJSON) model.Ship {
	roles := s.Roles
	if roles == nil {
		roles = []string{}
	}
	return model.Ship{
		ID:           s.ID,
		Model:        s.Model,
		ShipClass:    s.ShipClass,
		Affiliation:  s.Affiliation,
		Manufacturer: s.Manufacturer,
		Category:     s.Category,
		Crew:         s.Crew,
		Length:       s.Length,
		Roles:        roles,
	}
}

// toShipJSON converts a domain ship to the wire form; roles are always sent
// as an array, never null.
func toShipJSON(s model.Ship) shipJSON {
	roles := s.Roles
	if roles == nil {
		roles = []string{}
	}
	return shipJSON{
		ID:           s.ID,
		Model:        s.Model,
		ShipClass:    s.ShipClass,
		Affiliation:  s.Affiliation,
		Manufacturer: s.Manufacturer,
		Category:     s.Category,
		Crew:         s.Crew,
		Length:       s.Length,
		Roles:        roles,
	}
}
