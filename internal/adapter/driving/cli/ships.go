package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ericfisherdev/shipadmin/internal/domain/model"
	"github.com/ericfisherdev/shipadmin/internal/fixture"
)

// shipOutput is the -json rendering of a ship.
type shipOutput struct {
	ID           int64    `json:"id"`
	Model        string   `json:"model"`
	ShipClass    string   `json:"ship_class"`
	Affiliation  string   `json:"affiliation"`
	Manufacturer string   `json:"manufacturer"`
	Category     string   `json:"category"`
	Crew         int      `json:"crew"`
	Length       float64  `json:"length"`
	Roles        []string `json:"roles"`
}

func toShipOutput(s model.Ship) shipOutput {
	roles := s.Roles
	if roles == nil {
		roles = []string{}
	}
	return shipOutput{
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

func (a *App) shipsCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageErrorf("ships: expected list, get, create, edit, or delete")
	}

	switch sub, rest := args[0], args[1:]; sub {
	case "list":
		return a.listShips(ctx, rest)
	case "get":
		return a.getShip(ctx, rest)
	case "create":
		return a.createShip(ctx, rest)
	case "edit":
		return a.editShip(ctx, rest)
	case "delete":
		return a.deleteShip(ctx, rest)
	default:
		return usageErrorf("ships: unknown subcommand %q", sub)
	}
}

func (a *App) listShips(ctx context.Context, args []string) error {
	fs := a.newFlagSet("ships list")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ships, err := a.ships.List(ctx)
	if err != nil {
		return err
	}

	if *asJSON {
		out := make([]shipOutput, 0, len(ships))
		for _, s := range ships {
			out = append(out, toShipOutput(s))
		}
		return a.writeJSON(out)
	}

	if len(ships) == 0 {
		fmt.Fprintln(a.out, "No ships.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODEL\tCLASS\tAFFILIATION\tCREW\tROLES")
	for _, s := range ships {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			s.ID, s.Model, s.ShipClass, s.Affiliation, s.Crew, model.RolesToText(s.Roles))
	}
	return tw.Flush()
}

func (a *App) getShip(ctx context.Context, args []string) error {
	fs := a.newFlagSet("ships get")
	asJSON := fs.Bool("json", false, "print JSON")
	id, err := parseIDAndFlags(fs, args)
	if err != nil {
		return err
	}

	ship, err := a.ships.Get(ctx, id)
	if err != nil {
		return err
	}

	if *asJSON {
		return a.writeJSON(toShipOutput(*ship))
	}
	return a.printShip(*ship)
}

func (a *App) createShip(ctx context.Context, args []string) error {
	fs := a.newFlagSet("ships create")
	sf := bindShipFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var draft model.ShipDraft
	sf.apply(&draft)
	if strings.TrimSpace(draft.Model) == "" || strings.TrimSpace(draft.ShipClass) == "" {
		return usageErrorf("ships create: --model and --class are required")
	}

	created, err := a.ships.Create(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created ship %d.\n", created.ID)
	return nil
}

// editShip loads the current record into a draft, overlays only the flags
// that were given, and submits the whole record.
func (a *App) editShip(ctx context.Context, args []string) error {
	fs := a.newFlagSet("ships edit")
	sf := bindShipFlags(fs)
	id, err := parseIDAndFlags(fs, args)
	if err != nil {
		return err
	}

	draft, err := a.ships.Edit(ctx, id)
	if err != nil {
		return err
	}
	if !sf.apply(&draft) {
		return usageErrorf("ships edit: nothing to change")
	}

	if _, err := a.ships.Update(ctx, id, draft); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated ship %d.\n", id)
	return nil
}

func (a *App) deleteShip(ctx context.Context, args []string) error {
	id, err := parseIDAndFlags(a.newFlagSet("ships delete"), args)
	if err != nil {
		return err
	}
	if err := a.ships.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted ship %d.\n", id)
	return nil
}

func (a *App) importShips(ctx context.Context, args []string) error {
	fs := a.newFlagSet("import")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("import: expected exactly one file")
	}

	f, err := fixture.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	created, err := a.ships.Import(ctx, f.DomainShips())
	fmt.Fprintf(a.out, "Imported %d of %d ships.\n", len(created), len(f.Ships))
	return err
}

func (a *App) printShip(s model.Ship) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%d\n", s.ID)
	fmt.Fprintf(tw, "model:\t%s\n", s.Model)
	fmt.Fprintf(tw, "class:\t%s\n", s.ShipClass)
	fmt.Fprintf(tw, "affiliation:\t%s\n", s.Affiliation)
	fmt.Fprintf(tw, "manufacturer:\t%s\n", s.Manufacturer)
	fmt.Fprintf(tw, "category:\t%s\n", s.Category)
	fmt.Fprintf(tw, "crew:\t%d\n", s.Crew)
	fmt.Fprintf(tw, "length:\t%s\n", strconv.FormatFloat(s.Length, 'f', -1, 64))
	fmt.Fprintf(tw, "roles:\t%s\n", model.RolesToText(s.Roles))
	return tw.Flush()
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// shipFlags binds the editable ship fields to a flag set.
type shipFlags struct {
	fs           *flag.FlagSet
	model        *string
	class        *string
	affiliation  *string
	manufacturer *string
	category     *string
	crew         *int
	length       *float64
	roles        *string
}

func bindShipFlags(fs *flag.FlagSet) *shipFlags {
	return &shipFlags{
		fs:           fs,
		model:        fs.String("model", "", "ship model"),
		class:        fs.String("class", "", "ship class"),
		affiliation:  fs.String("affiliation", "", "affiliation"),
		manufacturer: fs.String("manufacturer", "", "manufacturer"),
		category:     fs.String("category", "", "category"),
		crew:         fs.Int("crew", 0, "crew size"),
		length:       fs.Float64("length", 0, "length in meters"),
		roles:        fs.String("roles", "", `comma-separated roles, e.g. "Escort, Patrol"`),
	}
}

// apply copies every flag that was set on the command line into d and
// reports whether any was.
func (f *shipFlags) apply(d *model.ShipDraft) bool {
	changed := false
	f.fs.Visit(func(fl *flag.Flag) {
		changed = true
		switch fl.Name {
		case "model":
			d.Model = *f.model
		case "class":
			d.ShipClass = *f.class
		case "affiliation":
			d.Affiliation = *f.affiliation
		case "manufacturer":
			d.Manufacturer = *f.manufacturer
		case "category":
			d.Category = *f.category
		case "crew":
			d.Crew = *f.crew
		case "length":
			d.Length = *f.length
		case "roles":
			d.Roles = *f.roles
		}
	})
	return changed
}

// parseIDAndFlags accepts the ship ID either before or after the flags.
func parseIDAndFlags(fs *flag.FlagSet, args []string) (int64, error) {
	var raw string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		raw, args = args[0], args[1:]
	}
	if err := parseFlags(fs, args); err != nil {
		return 0, err
	}
	if raw == "" {
		if fs.NArg() != 1 {
			return 0, usageErrorf("%s: expected a ship ID", fs.Name())
		}
		raw = fs.Arg(0)
	} else if fs.NArg() != 0 {
		return 0, usageErrorf("%s: unexpected arguments %v", fs.Name(), fs.Args())
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageErrorf("%s: invalid ship ID %q", fs.Name(), raw)
	}
	return id, nil
}
