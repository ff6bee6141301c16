package model

// Ship is a ship record as exchanged with the backend.
// ID is assigned by the backend; zero means the record has not been created yet.
type Ship struct {
	ID           int64
	Model        string
	ShipClass    string
	Affiliation  string
	Manufacturer string
	Category     string
	Crew         int
	Length       float64
	Roles        []string
}
