package minesweeper

import (
	"sort"
	"strings"
)

// Preset is a named board size.
type Preset struct {
	Name  string
	Rows  int
	Cols  int
	Mines int
}

// Config returns a configuration for the preset with the default generator.
func (p Preset) Config() Config {
	return Config{Rows: p.Rows, Cols: p.Cols, Mines: p.Mines}
}

var presets = map[string]Preset{
	"classic":      {Name: "classic", Rows: DefaultRows, Cols: DefaultCols, Mines: DefaultMines},
	"beginner":     {Name: "beginner", Rows: 9, Cols: 9, Mines: 10},
	"intermediate": {Name: "intermediate", Rows: 16, Cols: 16, Mines: 40},
	"expert":       {Name: "expert", Rows: 16, Cols: 30, Mines: 99},
}

// LookupPreset finds a preset by case-insensitive name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// PresetNames lists the known preset names in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
