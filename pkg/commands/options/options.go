// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// StudyOptions captures the knobs shared by the study modes.
type StudyOptions struct {
	DefinitionFirst bool
	Shuffle         bool
	Favorites       bool
}

func AddStudyArgs(cmd *cobra.Command, o *StudyOptions) {
	cmd.Flags().BoolVarP(&o.DefinitionFirst, "definitions-first", "d", false,
		"Show definitions first and check typed answers against terms.")
	cmd.Flags().BoolVarP(&o.Shuffle, "shuffle", "s", false,
		"Shuffle before the session starts.")
	cmd.Flags().BoolVarP(&o.Favorites, "favorites", "f", false,
		"Study only the starred cards.")
}

// MapOptions overrides the auto-detected column mapping.
type MapOptions struct {
	TermColumn int
	DefColumn  int
}

func AddMapArgs(cmd *cobra.Command, o *MapOptions) {
	cmd.Flags().IntVar(&o.TermColumn, "term-col", -1,
		"Override the term column index.")
	cmd.Flags().IntVar(&o.DefColumn, "def-col", -1,
		"Override the definition column index.")
}

// EditOptions captures the table edits a single edit invocation applies.
type EditOptions struct {
	AddRow     bool
	DeleteRow  int
	DeleteCol  int
	SetCells   []string
	SetHeaders []string
	Save       bool
}

func AddEditArgs(cmd *cobra.Command, o *EditOptions) {
	cmd.Flags().BoolVar(&o.AddRow, "add-row", false,
		"Append an empty row.")
	cmd.Flags().IntVar(&o.DeleteRow, "del-row", -1,
		"Delete the row at this index.")
	cmd.Flags().IntVar(&o.DeleteCol, "del-col", -1,
		"Delete the column at this index.")
	cmd.Flags().StringArrayVar(&o.SetCells, "set", nil,
		`Set a cell, formatted row:col:value. Repeatable.`)
	cmd.Flags().StringArrayVar(&o.SetHeaders, "set-header", nil,
		`Set a header, formatted col:value. Repeatable.`)
	cmd.Flags().BoolVar(&o.Save, "save", false,
		"Write the edited table back to the source file.")
}

// PathOptions toggles path display on listings.
type PathOptions struct {
	ShowPath bool
}

func AddPathArgs(cmd *cobra.Command, o *PathOptions) {
	cmd.Flags().BoolVarP(&o.ShowPath, "show-path", "p", false,
		"Show the source path of each deck.")
}
