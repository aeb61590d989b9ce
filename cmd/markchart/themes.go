package main

import (
	"sort"

	"github.com/pterm/pterm"

	"github.com/example/markchart/internal/theme"
)

type themesCmd struct {
	*root
}

// rows lists every theme the -theme flag accepts with where it comes from.
func (t *themesCmd) rows() [][]string {
	data := [][]string{{"Theme", "Source", "Active"}}
	active := t.themeName
	mark := func(name string) string {
		if name == active {
			return "*"
		}
		return ""
	}
	var names []string
	for name := range t.config.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		data = append(data, []string{name, "config", mark(name)})
	}
	for _, src := range theme.NewLoader().Available() {
		data = append(data, []string{src.Name, src.Origin, mark(src.Name)})
	}
	return data
}

func (t *themesCmd) Run() error {
	pterm.DefaultTable.WithHasHeader().WithData(t.rows()).Render()
	return nil
}
