package cmd

import (
	"fmt"
	"strings"

	"github.com/sadopc/liftr/internal/catalog"
)

// CatalogCmd lists catalog exercises, optionally filtered
type CatalogCmd struct {
	Muscle    []string `help:"Only exercises training one of these muscle groups" short:"m"`
	Equipment []string `help:"Only exercises using one of these equipment types" short:"e"`
	Query     string   `arg:"" optional:"" help:"Case-insensitive name search"`
}

// Run executes the catalog command
func (c *CatalogCmd) Run(cli *CLI) error {
	f := catalog.Filter{Query: c.Query}
	for _, m := range c.Muscle {
		mg, ok := catalog.ParseMuscleGroup(m)
		if !ok {
			return fmt.Errorf("unknown muscle group %q", m)
		}
		f.Muscles = append(f.Muscles, mg)
	}
	for _, e := range c.Equipment {
		eq, ok := catalog.ParseEquipment(e)
		if !ok {
			return fmt.Errorf("unknown equipment %q", e)
		}
		f.Equipment = append(f.Equipment, eq)
	}

	w := cli.stdout()
	results := catalog.Search(f)
	if len(results) == 0 {
		fmt.Fprintln(w, "No exercises found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s %-22s %-30s %s\n", "ID", "Name", "Muscles", "Equipment")
	fmt.Fprintln(w, strings.Repeat("─", 76))
	for _, e := range results {
		fmt.Fprintf(w, "%-4s %-22s %-30s %s\n", e.ID, e.Name, e.MuscleLabel(), e.EquipmentLabel())
	}
	return nil
}
