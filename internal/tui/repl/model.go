// Package repl implements the interactive evaluation loop: a single-line
// prompt whose expression is re-evaluated on every keystroke.
package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/datemath/internal/calendar"
	"github.com/marcus/datemath/internal/expr"
	"github.com/marcus/datemath/internal/history"
	"github.com/marcus/datemath/internal/output"
)

// Recorder receives accepted evaluations. Nil when history is disabled.
type Recorder interface {
	Record(expression, result, today string) error
}

// entry is a line in the session scrollback.
type entry struct {
	expression string
	result     string
	failed     bool
}

// Model is the Bubble Tea model for the repl.
type Model struct {
	Today    calendar.Date
	History  Recorder
	input    textinput.Model
	preview  string
	previewE string
	session  []entry
	quitting bool
}

// New builds a repl model evaluating against the given reference date.
func New(today calendar.Date, rec Recorder) Model {
	ti := textinput.New()
	ti.Placeholder = "dec 30, 2021 + 2 weeks + 1 day"
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	return Model{Today: today, History: rec, input: ti}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.accept(), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.evaluatePreview()
	return m, cmd
}

// accept commits the current line to the scrollback and records it.
func (m Model) accept() Model {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m
	}

	e := entry{expression: line}
	result, err := evaluate(line, m.Today)
	if err != nil {
		e.result = err.Error()
		e.failed = true
	} else {
		e.result = result
		if m.History != nil {
			// Recording failures must not break the session.
			_ = m.History.Record(line, result, m.Today.String())
		}
	}

	m.session = append(m.session, e)
	m.input.Reset()
	m.preview = ""
	m.previewE = ""
	return m
}

// evaluatePreview recomputes the live result line under the prompt.
func (m *Model) evaluatePreview() {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		m.preview = ""
		m.previewE = ""
		return
	}

	result, err := evaluate(line, m.Today)
	if err != nil {
		m.preview = ""
		m.previewE = err.Error()
		return
	}
	m.preview = result
	m.previewE = ""
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(output.Prompt("datemath repl"))
	sb.WriteString(output.Subtle(fmt.Sprintf("  (today: %s, enter to record, esc to quit)", m.Today)))
	sb.WriteString("\n\n")

	for _, e := range m.session {
		sb.WriteString("> " + e.expression + "\n")
		if e.failed {
			sb.WriteString("  " + output.Err(e.result) + "\n")
		} else {
			sb.WriteString("  " + output.OK(e.result) + "\n")
		}
	}
	if len(m.session) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	switch {
	case m.previewE != "":
		sb.WriteString("  " + output.Err(m.previewE) + "\n")
	case m.preview != "":
		sb.WriteString("  " + output.OK(m.preview) + "\n")
	default:
		sb.WriteString("\n")
	}
	return sb.String()
}

func evaluate(line string, today calendar.Date) (string, error) {
	ast, err := expr.Parse(line)
	if err != nil {
		return "", err
	}
	res, err := ast.Eval(today)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// Run starts the repl and blocks until it exits.
func Run(today calendar.Date, db *history.DB) error {
	var rec Recorder
	if db != nil {
		rec = db
	}
	_, err := tea.NewProgram(New(today, rec)).Run()
	return err
}
