package fixture_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
	"github.com/ericfisherdev/shipadmin/internal/fixture"
)

const seedJSON = `{
  "users": [{"name": "alice", "password": "correct-password"}],
  "ships": [
    {
      "affiliation": "Rebel Alliance",
      "category": "Starfighter",
      "crew": 1,
      "length": 12.5,
      "manufacturer": "Incom Corporation",
      "model": "T-65 X-wing",
      "roles": ["Escort", "Patrol"],
      "ship_class": "Starfighter"
    },
    {"model": "BTL Y-wing", "ship_class": "Bomber", "roles": null}
  ]
}`

const seedYAML = `
users:
  - name: alice
    password: correct-password
ships:
  - model: T-65 X-wing
    ship_class: Starfighter
    affiliation: Rebel Alliance
    crew: 1
    length: 12.5
    roles: [Escort, Patrol]
`

func TestParse_JSON(t *testing.T) {
	f, err := fixture.Parse([]byte(seedJSON), fixture.FormatJSON)

	require.NoError(t, err)
	require.Len(t, f.Users, 1)
	assert.Equal(t, "alice", f.Users[0].Name)
	require.Len(t, f.Ships, 2)
	assert.Equal(t, "T-65 X-wing", f.Ships[0].Model)
	assert.Equal(t, 12.5, f.Ships[0].Length)
	assert.Equal(t, []string{"Escort", "Patrol"}, f.Ships[0].Roles)
	assert.Equal(t, []string{}, f.Ships[1].ToShip().Roles)
}

func TestParse_YAML(t *testing.T) {
	f, err := fixture.Parse([]byte(seedYAML), fixture.FormatYAML)

	require.NoError(t, err)
	require.Len(t, f.Ships, 1)
	assert.Equal(t, "Starfighter", f.Ships[0].ShipClass)
	assert.Equal(t, 1, f.Ships[0].Crew)
	assert.Equal(t, []string{"Escort", "Patrol"}, f.Ships[0].Roles)
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := fixture.Parse([]byte(`{"ships": [{"modle": "X-wing"}]}`), fixture.FormatJSON)
	assert.Error(t, err)

	_, err = fixture.Parse([]byte("ships:\n  - modle: X-wing\n"), fixture.FormatYAML)
	assert.Error(t, err)
}

func TestDomainShips_KeepsRolesVerbatim(t *testing.T) {
	f, err := fixture.Parse([]byte(`{"ships": [
		{"model": "A", "ship_class": "c", "roles": []},
		{"model": "B", "ship_class": "c", "roles": ["Heavy, Assault", " Escort "]},
		{"model": "C", "ship_class": "c"}
	]}`), fixture.FormatJSON)
	require.NoError(t, err)

	ships := f.DomainShips()

	require.Len(t, ships, 3)
	assert.Equal(t, []string{}, ships[0].Roles)
	assert.Equal(t, []string{"Heavy, Assault", " Escort "}, ships[1].Roles)
	assert.Equal(t, []string{}, ships[2].Roles, "missing roles become an empty list")
	assert.Equal(t, int64(0), ships[1].ID)
	assert.Equal(t, "B", ships[1].Model)
}

func TestLoad_PicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "seed.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(seedYAML), 0o600))
	jsonPath := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(seedJSON), 0o600))

	fy, err := fixture.Load(yamlPath)
	require.NoError(t, err)
	assert.Len(t, fy.Ships, 1)

	fj, err := fixture.Load(jsonPath)
	require.NoError(t, err)
	assert.Len(t, fj.Ships, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := fixture.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestToShip_IsUncreated(t *testing.T) {
	s := fixture.Ship{Model: "X", ShipClass: "Y"}.ToShip()
	assert.Equal(t, model.Ship{Model: "X", ShipClass: "Y", Roles: []string{}}, s)
}
