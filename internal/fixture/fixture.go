// Package fixture reads seed files in the data.json layout: a "users" array
// of name/password pairs and a "ships" array of ship records. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
)

// Format selects the decoder for Parse.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// File is the decoded seed file.
type File struct {
	Users []User `json:"users" yaml:"users"`
	Ships []Ship `json:"ships" yaml:"ships"`
}

// User is an operator account to create.
type User struct {
	Name     string `json:"name" yaml:"name"`
	Password string `json:"password" yaml:"password"`
}

// Ship is a ship record as it appears in a seed file.
type Ship struct {
	Model        string   `json:"model" yaml:"model"`
	ShipClass    string   `json:"ship_class" yaml:"ship_class"`
	Affiliation  string   `json:"affiliation" yaml:"affiliation"`
	Manufacturer string   `json:"manufacturer" yaml:"manufacturer"`
	Category     string   `json:"category" yaml:"category"`
	Crew         int      `json:"crew" yaml:"crew"`
	Length       float64  `json:"length" yaml:"length"`
	Roles        []string `json:"roles" yaml:"roles"`
}

// ToShip converts the fixture to an uncreated domain ship.
func (s Ship) ToShip() model.Ship {
	roles := s.Roles
	if roles == nil {
		roles = []string{}
	}
	return model.Ship{
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

// DomainShips returns the ships in file order with their roles untouched.
func (f *File) DomainShips() []model.Ship {
	ships := make([]model.Ship, 0, len(f.Ships))
	for _, s := range f.Ships {
		ships = append(ships, s.ToShip())
	}
	return ships
}

// FormatForPath picks the decoder from the file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and parses the seed file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	f, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data in the given format. Unknown fields are rejected so a
// misspelled key does not silently drop a value.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown fixture format %q", format)
	}
	return &f, nil
}
