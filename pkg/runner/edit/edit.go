package edit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/pkheisig/lexiflow/pkg/printers"
	"github.com/pkheisig/lexiflow/pkg/session"
	"github.com/pkheisig/lexiflow/pkg/store"
)

// Edit applies setup/edit mode operations to a deck's raw table and prints
// the result. Edits touch the source file only when Save is set; otherwise
// the unsaved state is reported and discarded.
type Edit struct {
	Settings store.Settings
	Path     string

	AddRow     bool
	DeleteRow  int      // -1 keeps all rows
	DeleteCol  int      // -1 keeps all columns
	SetCells   []string // row:col:value
	SetHeaders []string // col:value
	Save       bool
}

func (r *Edit) Do(ctx context.Context) error {
	if r.Settings == nil {
		return errors.New("edit: no settings store")
	}
	if r.Path == "" {
		return errors.New("edit: no deck file given")
	}

	s := session.New(r.Settings)
	s.ImportFile(r.Path)
	if s.ErrorMessage != "" {
		return errors.New(s.ErrorMessage)
	}

	if r.AddRow {
		s.AppendRow()
	}
	for _, spec := range r.SetCells {
		row, col, val, err := parseCell(spec)
		if err != nil {
			return err
		}
		s.SetCell(row, col, val)
	}
	for _, spec := range r.SetHeaders {
		col, val, err := parseHeader(spec)
		if err != nil {
			return err
		}
		s.SetHeader(col, val)
	}
	if r.DeleteRow >= 0 {
		s.DeleteRow(r.DeleteRow)
	}
	if r.DeleteCol >= 0 {
		s.DeleteColumn(r.DeleteCol)
	}

	if r.Save && s.Dirty() {
		s.Save()
		if s.ErrorMessage != "" {
			return errors.New(s.ErrorMessage)
		}
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title(r.Path)
	pp.Table(s.Table)

	if s.Dirty() {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println("unsaved changes discarded — rerun with --save to keep them")
	}
	return nil
}

func parseCell(spec string) (row, col int, val string, err error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 {
		return 0, 0, "", fmt.Errorf("edit: --set wants row:col:value, got %q", spec)
	}
	row, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, "", fmt.Errorf("edit: bad row in %q", spec)
	}
	col, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, "", fmt.Errorf("edit: bad column in %q", spec)
	}
	return row, col, parts[2], nil
}

func parseHeader(spec string) (col int, val string, err error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("edit: --set-header wants col:value, got %q", spec)
	}
	col, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("edit: bad column in %q", spec)
	}
	return col, parts[1], nil
}
