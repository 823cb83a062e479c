package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/pkheisig/lexiflow/pkg/card"
	"github.com/pkheisig/lexiflow/pkg/store"
	"github.com/pkheisig/lexiflow/pkg/tabular"
)

const layoutUS = "January 2, 2006"

type PrettyPrint struct {
	ShowPath bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Decks prints the recent decks list, most recent import first.
func (pp *PrettyPrint) Decks(refs ...store.DeckRef) {
	if len(refs) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowPath {
		tbl.AddRow(bold("Name"), bold("Last opened"), bold("Path"))
	} else {
		tbl.AddRow(bold("Name"), bold("Last opened"))
	}
	for _, r := range refs {
		if pp.ShowPath {
			tbl.AddRow(r.Name, r.LastOpened.Format(layoutUS), r.Path)
		} else {
			tbl.AddRow(r.Name, r.LastOpened.Format(layoutUS))
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")
}

// Cards prints term/definition pairs, marking starred content.
func (pp *PrettyPrint) Cards(starred func(card.Card) bool, cards ...card.Card) {
	if len(cards) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow)
	for _, c := range cards {
		marker := "  "
		if starred != nil && starred(c) {
			marker = y.Sprint("★ ")
		}
		_, _ = t.Printf("%s%s — %s\n", marker, bold(c.Term), c.Definition)
	}
	_, _ = t.Println("")
}

// Table prints the raw table with row indices, the setup/edit mode view.
func (pp *PrettyPrint) Table(d tabular.Data) {
	if d.Empty() {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" empty table\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	head := make([]interface{}, 0, d.Width()+1)
	head = append(head, bold("#"))
	for i, h := range d.Headers {
		head = append(head, bold(fmt.Sprintf("%s [%d]", h, i)))
	}
	tbl.AddRow(head...)
	for i, row := range d.Rows {
		cells := make([]interface{}, 0, len(row)+1)
		cells = append(cells, fmt.Sprintf("%d", i))
		for _, c := range row {
			cells = append(cells, c)
		}
		tbl.AddRow(cells...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")
}

// Themes prints the available theme names, marking the active one.
func (pp *PrettyPrint) Themes(current string, names []string) {
	t := color.New()
	a := color.New(color.Bold, color.FgHiGreen)
	for _, n := range names {
		if n == current {
			_, _ = a.Printf("* %s\n", n)
			continue
		}
		_, _ = t.Printf("  %s\n", n)
	}
	_, _ = t.Println("")
}

func bold(in string) string {
	b := color.New(color.Bold)
	return b.Sprint(strings.TrimSpace(in))
}
