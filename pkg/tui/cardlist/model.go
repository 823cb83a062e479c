// Package cardlist is the scrollable reveal-list study UI: every card at
// once, each row hiding its definition until revealed.
package cardlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pkheisig/lexiflow/pkg/session"
	"github.com/pkheisig/lexiflow/pkg/tui/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model drives the list view. Keys: j/k move, enter toggles reveal,
// r reveals all, c hides all, S shuffles the list order (persisted),
// o restores import order, f stars, / filters, q quits.
type Model struct {
	Session *session.Session

	th        theme.Theme
	input     textinput.Model
	searching bool
	cursor    int
	width     int
	height    int
}

func New(s *session.Session, th theme.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.CharLimit = 128
	ti.Prompt = "/ "

	return Model{
		Session: s,
		th:      th,
		input:   ti,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearching(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.input.Blur()
		m.input.SetValue("")
		m.Session.SetSearch("")
		m.cursor = 0
		return m, nil
	case "enter":
		m.searching = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.Session.SetSearch(m.input.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.Session.FilteredListCards()

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(cards)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor < len(cards) {
			m.Session.ToggleReveal(cards[m.cursor].ID)
		}
	case "r":
		m.Session.RevealAll()
	case "c":
		m.Session.ClearReveals()
	case "S":
		m.Session.ShuffleListMode()
		m.cursor = 0
	case "o":
		m.Session.ResetListOrder()
		m.cursor = 0
	case "f":
		if m.cursor < len(cards) {
			m.Session.ToggleStar(cards[m.cursor].ID)
		}
	case "v":
		if m.Session.InFavorites() {
			m.Session.ExitFavorites()
		} else {
			m.Session.EnterFavorites()
		}
		m.cursor = 0
	case "/":
		m.searching = true
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) View() string {
	s := m.Session
	cards := s.FilteredListCards()
	var b strings.Builder

	title := "cards"
	if s.InFavorites() {
		title = "cards ★ favorites"
	}
	b.WriteString(m.th.Title.Render(title))
	b.WriteString(m.th.Faint.Render(fmt.Sprintf("  %d shown", len(cards))))
	if q := s.Search(); q != "" {
		b.WriteString(m.th.Accent.Render(fmt.Sprintf("  /%s", q)))
	}
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	if len(cards) == 0 {
		b.WriteString(m.th.Faint.Render("nothing to show"))
		b.WriteString("\n")
	}

	wrap := m.width - 8
	if wrap < 20 {
		wrap = 20
	}

	for i, c := range cards {
		cursor := "  "
		if i == m.cursor {
			cursor = m.th.Cursor.Render("> ")
		}
		star := "  "
		if s.IsStarred(c) {
			star = m.th.Starred.Render("★ ")
		}
		b.WriteString(cursor + star + m.th.Term.Render(c.Term))
		b.WriteString("\n")
		if s.IsRevealed(c.ID) {
			def := wordwrap.String(c.Definition, wrap)
			for _, line := range strings.Split(def, "\n") {
				b.WriteString("      " + m.th.Definition.Render(line) + "\n")
			}
		}
	}

	if s.ErrorMessage != "" {
		b.WriteString("\n")
		b.WriteString(m.th.Error.Render(s.ErrorMessage))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.th.Help.Render("enter reveal · r all · c clear · S shuffle · o order · f star · v favorites · / filter · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run launches the list view program.
func Run(s *session.Session, th theme.Theme) error {
	_, err := tea.NewProgram(New(s, th), tea.WithAltScreen()).Run()
	return err
}
