package model

import "strings"

// rolesSeparator is used when joining roles for editing. Parsing splits on a
// bare comma and trims, so both forms round-trip.
const rolesSeparator = ", "

// ShipDraft is the editable form of a Ship. Roles is held as free text,
// one comma-separated entry per role.
type ShipDraft struct {
	ID           int64
	Model        string
	ShipClass    string
	Affiliation  string
	Manufacturer string
	Category     string
	Crew         int
	Length       float64
	Roles        string
}

// DraftFromShip adapts a fetched ship into its editable form.
func DraftFromShip(s Ship) ShipDraft {
	return ShipDraft{
		ID:           s.ID,
		Model:        s.Model,
		ShipClass:    s.ShipClass,
		Affiliation:  s.Affiliation,
		Manufacturer: s.Manufacturer,
		Category:     s.Category,
		Crew:         s.Crew,
		Length:       s.Length,
		Roles:        RolesToText(s.Roles),
	}
}

// Ship converts the draft back into wire shape for submission.
func (d ShipDraft) Ship() Ship {
	return Ship{
		ID:           d.ID,
		Model:        d.Model,
		ShipClass:    d.ShipClass,
		Affiliation:  d.Affiliation,
		Manufacturer: d.Manufacturer,
		Category:     d.Category,
		Crew:         d.Crew,
		Length:       d.Length,
		Roles:        RolesFromText(d.Roles),
	}
}

// RolesToText joins roles with ", ".
func RolesToText(roles []string) string {
	return strings.Join(roles, rolesSeparator)
}

// RolesFromText splits text on commas and trims each piece. Empty pieces are
// kept, so "Escort,  Patrol ,  " yields ["Escort", "Patrol", ""]. Roles that
// themselves contain a comma cannot be represented.
func RolesFromText(text string) []string {
	parts := strings.Split(text, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		roles = append(roles, strings.TrimSpace(p))
	}
	return roles
}
