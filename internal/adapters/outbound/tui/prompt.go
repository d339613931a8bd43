package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/monolint/monolint/internal/domain"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	listNormalStyle   = lipgloss.NewStyle()
	answerStyle       = lipgloss.NewStyle().Foreground(success)
	cancelStyle       = lipgloss.NewStyle().Foreground(danger)
)

var _ domain.Prompter = (*SelectPrompter)(nil)

// SelectPrompter implements domain.Prompter with an interactive list.
// Without a terminal on stdin every prompt is declined.
type SelectPrompter struct {
	in  *os.File
	out io.Writer
}

// NewSelectPrompter creates a prompter reading keys from in and drawing on out.
func NewSelectPrompter(in *os.File, out io.Writer) *SelectPrompter {
	return &SelectPrompter{in: in, out: out}
}

// SelectOne shows prompt with options and waits for a choice.
func (p *SelectPrompter) SelectOne(prompt string, options []string) (int, bool, error) {
	if len(options) == 0 || !term.IsTerminal(int(p.in.Fd())) {
		return 0, false, nil
	}

	final, err := tea.NewProgram(NewSelectModel(prompt, options),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	).Run()
	if err != nil {
		return 0, false, fmt.Errorf("running prompt: %w", err)
	}

	idx, ok := final.(SelectModel).Choice()
	return idx, ok, nil
}

// SelectModel is the bubbletea model behind SelectPrompter.
type SelectModel struct {
	Prompt   string
	Options  []string
	Cursor   int
	selected int
	done     bool
}

// NewSelectModel creates a model with the cursor on the first option.
func NewSelectModel(prompt string, options []string) SelectModel {
	return SelectModel{Prompt: prompt, Options: options, selected: -1}
}

// Choice returns the selected index; ok is false when the prompt was
// cancelled or is still open.
func (m SelectModel) Choice() (int, bool) {
	return m.selected, m.selected >= 0
}

func (m SelectModel) Init() tea.Cmd {
	return nil
}

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.done = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter":
		m.selected = m.Cursor
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SelectModel) View() string {
	if m.done {
		if m.selected >= 0 {
			return fmt.Sprintf("%s %s %s\n", answerStyle.Render(fixedIcon), m.Prompt, answerStyle.Render(m.Options[m.selected]))
		}
		return fmt.Sprintf("%s %s\n", cancelStyle.Render("✗"), m.Prompt)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("?"), boldStyle.Render(m.Prompt))
	for i, opt := range m.Options {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(" → " + opt))
		} else {
			b.WriteString(listNormalStyle.Render("   " + opt))
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("↑/↓ navigate  ⏎ select  esc skip"))
	b.WriteString("\n")
	return b.String()
}
