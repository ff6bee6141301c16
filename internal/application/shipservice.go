package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
	"github.com/ericfisherdev/shipadmin/internal/domain/port/driven"
)

// ShipService synchronizes the ship collection with the backend. Drafts are
// converted to wire form immediately before submission; nothing is cached, so
// every List reflects the backend's current state.
type ShipService struct {
	api    driven.ShipAPI
	logger *slog.Logger
}

// NewShipService creates a ShipService with the required dependencies.
func NewShipService(api driven.ShipAPI, logger *slog.Logger) *ShipService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShipService{api: api, logger: logger}
}

// List returns the full collection in backend order.
func (s *ShipService) List(ctx context.Context) ([]model.Ship, error) {
	return s.api.ListShips(ctx)
}

// Get returns one ship or model.ErrNotFound.
func (s *ShipService) Get(ctx context.Context, id int64) (*model.Ship, error) {
	return s.api.GetShip(ctx, id)
}

// Edit fetches a ship and adapts it into its editable draft.
func (s *ShipService) Edit(ctx context.Context, id int64) (model.ShipDraft, error) {
	ship, err := s.api.GetShip(ctx, id)
	if err != nil {
		return model.ShipDraft{}, err
	}
	return model.DraftFromShip(*ship), nil
}

// Create submits a new ship and returns it with its backend-assigned ID.
func (s *ShipService) Create(ctx context.Context, draft model.ShipDraft) (*model.Ship, error) {
	created, err := s.api.CreateShip(ctx, draft.Ship())
	if err != nil {
		return nil, err
	}
	s.logger.Info("ship created", "id", created.ID, "model", created.Model)
	return created, nil
}

// Update replaces the ship with id by the converted draft.
func (s *ShipService) Update(ctx context.Context, id int64, draft model.ShipDraft) (*model.Ship, error) {
	updated, err := s.api.UpdateShip(ctx, id, draft.Ship())
	if err != nil {
		return nil, err
	}
	s.logger.Info("ship updated", "id", id)
	return updated, nil
}

// Delete removes the ship. A repeated delete is reported as model.ErrNotFound.
func (s *ShipService) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteShip(ctx, id); err != nil {
		return err
	}
	s.logger.Info("ship deleted", "id", id)
	return nil
}

// Import creates each seed record in order and stops at the first failure.
// Records are submitted as given; their roles never pass through the draft
// text form. It returns the ships created before the failure along with the error.
func (s *ShipService) Import(ctx context.Context, ships []model.Ship) ([]model.Ship, error) {
	created := make([]model.Ship, 0, len(ships))
	for i, seed := range ships {
		ship, err := s.api.CreateShip(ctx, seed)
		if err != nil {
			return created, fmt.Errorf("import ship %d (%s): %w", i+1, seed.Model, err)
		}
		created = append(created, *ship)
	}
	s.logger.Info("ships imported", "count", len(created))
	return created, nil
}
