package cmd

import (
	"fmt"
	"strings"
)

// TemplatesCmd lists saved templates
type TemplatesCmd struct{}

// Run executes the templates command
func (t *TemplatesCmd) Run(cli *CLI) error {
	s, err := cli.openStore()
	if err != nil {
		return err
	}
	templates, err := s.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	w := cli.stdout()
	if len(templates) == 0 {
		fmt.Fprintln(w, "No templates saved yet.")
		return nil
	}
	for _, tpl := range templates {
		sets := 0
		names := make([]string, len(tpl.Exercises))
		for i, ex := range tpl.Exercises {
			sets += len(ex.Sets)
			names[i] = ex.Exercise.Name
		}
		fmt.Fprintf(w, "%s  (%d exercises, %d sets)\n", tpl.Name, len(tpl.Exercises), sets)
		fmt.Fprintf(w, "  %s\n", strings.Join(names, ", "))
	}
	return nil
}
