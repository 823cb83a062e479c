// Package study is the one-card-at-a-time flip session UI.
package study

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pkheisig/lexiflow/pkg/session"
	"github.com/pkheisig/lexiflow/pkg/tui/theme"
)

const defaultWidth = 72

// Model drives a flip-card study session over the session store. Keys:
// space flips, n/→ advances (wrapping restarts the run), p/← steps back,
// s shuffles, f stars, a checks a typed answer, q quits.
type Model struct {
	Session *session.Session

	th        theme.Theme
	input     textinput.Model
	answering bool
	width     int
}

func New(s *session.Session, th theme.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "your answer"
	ti.CharLimit = 256
	ti.Prompt = "? "

	return Model{
		Session: s,
		th:      th,
		input:   ti,
		width:   defaultWidth,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.answering {
			return m.updateAnswering(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case " ", "enter":
		m.Session.Flip()
	case "n", "right":
		m.Session.Next()
	case "p", "left":
		m.Session.Previous()
	case "s":
		m.Session.ShuffleActive()
	case "f":
		if c, ok := m.Session.CurrentCard(); ok {
			m.Session.ToggleStar(c.ID)
		}
	case "v":
		if m.Session.InFavorites() {
			m.Session.ExitFavorites()
		} else {
			m.Session.EnterFavorites()
		}
	case "a":
		if _, ok := m.Session.CurrentCard(); ok {
			m.answering = true
			m.input.SetValue("")
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m Model) updateAnswering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.answering = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.Session.CheckAnswer(m.input.Value())
		m.answering = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	s := m.Session
	var b strings.Builder

	total := len(s.ActiveCards())
	title := "study"
	if s.InFavorites() {
		title = "study ★ favorites"
	}
	b.WriteString(m.th.Title.Render(title))
	if total > 0 {
		b.WriteString(m.th.Faint.Render(fmt.Sprintf("  %d/%d", s.CurrentIndex()+1, total)))
	}
	b.WriteString("\n\n")

	c, ok := s.CurrentCard()
	if !ok {
		b.WriteString(m.th.Faint.Render("no cards — import a deck first"))
		b.WriteString("\n")
		return b.String()
	}

	front, back := c.Term, c.Definition
	frontStyle, backStyle := m.th.Term, m.th.Definition
	if !s.TermFirst {
		front, back = back, front
		frontStyle, backStyle = backStyle, frontStyle
	}

	wrap := m.width - 10
	if wrap < 20 {
		wrap = 20
	}

	face := frontStyle.Render(wordwrap.String(front, wrap))
	if s.Flipped {
		face = backStyle.Render(wordwrap.String(back, wrap))
	}
	if s.IsStarred(c) {
		face = m.th.Starred.Render("★ ") + face
	}
	b.WriteString(m.th.Frame.Render(face))
	b.WriteString("\n\n")

	if m.answering {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else if s.AnswerChecked {
		if s.AnswerCorrect {
			b.WriteString(m.th.Correct.Render("correct"))
		} else {
			b.WriteString(m.th.Wrong.Render("not quite: ") + backStyle.Render(back))
		}
		b.WriteString("\n")
	}

	if s.ErrorMessage != "" {
		b.WriteString(m.th.Error.Render(s.ErrorMessage))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.th.Help.Render("space flip · n next · p prev · s shuffle · f star · v favorites · a answer · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run launches the flip session program.
func Run(s *session.Session, th theme.Theme) error {
	_, err := tea.NewProgram(New(s, th), tea.WithAltScreen()).Run()
	return err
}
