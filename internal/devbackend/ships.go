package devbackend

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
)

// ship is a stored record. Roles may be nil, which is served as null.
type ship struct {
	ID           int64    `json:"id"`
	Affiliation  string   `json:"affiliation"`
	Category     string   `json:"category"`
	Crew         int      `json:"crew"`
	Length       float64  `json:"length"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	Roles        []string `json:"roles"`
	ShipClass    string   `json:"ship_class"`
}

// shipPatch is a create or update body. A nil field was absent from the
// request (or null) and leaves the stored value unchanged.
type shipPatch struct {
	Affiliation  *string   `json:"affiliation"`
	Category     *string   `json:"category"`
	Crew         *int      `json:"crew"`
	Length       *float64  `json:"length"`
	Manufacturer *string   `json:"manufacturer"`
	Model        *string   `json:"model"`
	Roles        *[]string `json:"roles"`
	ShipClass    *string   `json:"ship_class"`
}

const missingShipFields = "Missing required fields: model, ship_class"

func (p shipPatch) applyTo(s *ship) {
	if p.Affiliation != nil {
		s.Affiliation = *p.Affiliation
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Crew != nil {
		s.Crew = *p.Crew
	}
	if p.Length != nil {
		s.Length = *p.Length
	}
	if p.Manufacturer != nil {
		s.Manufacturer = *p.Manufacturer
	}
	if p.Model != nil {
		s.Model = *p.Model
	}
	if p.Roles != nil {
		s.Roles = *p.Roles
	}
	if p.ShipClass != nil {
		s.ShipClass = *p.ShipClass
	}
}

// addShip stores s under the next ID and returns the stored copy.
func (s *Server) addShip(rec ship) ship {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextShipID++
	rec.ID = s.nextShipID
	s.ships[rec.ID] = rec
	return rec
}

func (s *Server) handleListShips(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]ship, 0, len(s.ships))
	for _, id := range slices.Sorted(maps.Keys(s.ships)) {
		out = append(out, s.ships[id])
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetShip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "")
		return
	}

	s.mu.Lock()
	rec, ok := s.ships[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreateShip(w http.ResponseWriter, r *http.Request) {
	var p shipPatch
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "No data in request.")
		return
	}
	if p.Model == nil || p.ShipClass == nil {
		writeError(w, http.StatusBadRequest, missingShipFields)
		return
	}

	var rec ship
	p.applyTo(&rec)
	rec = s.addShip(rec)

	w.Header().Set("Location", fmt.Sprintf("/api/ships/%d", rec.ID))
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUpdateShip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "")
		return
	}

	s.mu.Lock()
	_, exists := s.ships[id]
	s.mu.Unlock()
	if !exists {
		writeError(w, http.StatusNotFound, "")
		return
	}

	var p shipPatch
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "No data in request.")
		return
	}

	s.mu.Lock()
	rec, exists := s.ships[id]
	if exists {
		p.applyTo(&rec)
		s.ships[id] = rec
	}
	s.mu.Unlock()
	if !exists {
		writeError(w, http.StatusNotFound, "")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteShip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "")
		return
	}

	s.mu.Lock()
	_, exists := s.ships[id]
	delete(s.ships, id)
	s.mu.Unlock()
	if !exists {
		writeError(w, http.StatusNotFound, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
