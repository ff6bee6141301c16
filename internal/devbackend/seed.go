package devbackend

import (
	"fmt"

	"github.com/ericfisherdev/shipadmin/internal/fixture"
)

// Seed loads users and ships from a fixture file. Each table is filled only
// when it is empty, so seeding twice is harmless.
func (s *Server) Seed(f *fixture.File) error {
	s.mu.Lock()
	seedUsers := len(s.users) == 0
	seedShips := len(s.ships) == 0
	s.mu.Unlock()

	if seedUsers {
		for _, u := range f.Users {
			if _, err := s.addUser(u.Name, u.Password); err != nil {
				return fmt.Errorf("seeding user %q: %w", u.Name, err)
			}
		}
		s.logger.Info("seeded users", "count", len(f.Users))
	} else {
		s.logger.Info("users table not empty, skipping user seed")
	}

	if seedShips {
		// Same conversion as `shipadmin import`, so both paths store identical records.
		for _, ms := range f.DomainShips() {
			s.addShip(ship{
				Affiliation:  ms.Affiliation,
				Category:     ms.Category,
				Crew:         ms.Crew,
				Length:       ms.Length,
				Manufacturer: ms.Manufacturer,
				Model:        ms.Model,
				Roles:        ms.Roles,
				ShipClass:    ms.ShipClass,
			})
		}
		s.logger.Info("seeded ships", "count", len(f.Ships))
	} else {
		s.logger.Info("ships table not empty, skipping ship seed")
	}

	return nil
}
