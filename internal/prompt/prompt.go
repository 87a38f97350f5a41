// Package prompt asks single-line questions on a terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user cancels a question.
var ErrAborted = errors.New("prompt aborted")

// Question is one line of input. Validate, when set, is run on the trimmed
// answer; a non-nil error is shown and the question is asked again.
type Question struct {
	Prompt      string
	Placeholder string
	Validate    func(string) error
}

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
)

type model struct {
	question Question
	input    textinput.Model
	errMsg   string
	answer   string
	done     bool
	aborted  bool
}

func newModel(q Question) model {
	in := textinput.New()
	in.Prompt = promptStyle.Render(q.Prompt+": ")
	in.Placeholder = q.Placeholder
	in.CharLimit = 256
	in.Focus()
	return model{question: q, input: in}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			answer := strings.TrimSpace(m.input.Value())
			if m.question.Validate != nil {
				if err := m.question.Validate(answer); err != nil {
					m.errMsg = err.Error()
					m.input.SetValue("")
					return m, nil
				}
			}
			m.answer = answer
			m.errMsg = ""
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done {
		return promptStyle.Render(m.question.Prompt+": ") + m.answer + "\n"
	}
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter to confirm · esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

// TeaAsker asks questions through a bubbletea program per question.
type TeaAsker struct {
	in  io.Reader
	out io.Writer
}

// NewTeaAsker creates a TeaAsker reading keys from in and rendering to out.
func NewTeaAsker(in io.Reader, out io.Writer) *TeaAsker {
	return &TeaAsker{in: in, out: out}
}

// Ask blocks until the question is answered with a valid value, the user
// aborts, or ctx is done.
func (a *TeaAsker) Ask(ctx context.Context, q Question) (string, error) {
	p := tea.NewProgram(newModel(q),
		tea.WithInput(a.in),
		tea.WithOutput(a.out),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("ask %q: %w", q.Prompt, err)
	}
	m, ok := final.(model)
	if !ok || m.aborted || !m.done {
		return "", ErrAborted
	}
	return m.answer, nil
}

// Say prints an informational line.
func (a *TeaAsker) Say(msg string) {
	fmt.Fprintln(a.out, messageStyle.Render(msg))
}
