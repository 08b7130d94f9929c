package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

const versionCharLimit = 64

// versionPrompt is the bubbletea model asking for the release version.
// An empty answer accepts the suggestion.
type versionPrompt struct {
	input     textinput.Model
	current   string
	suggested string
	answer    string
	err       error
	cancelled bool
}

func newVersionPrompt(current, suggested string) versionPrompt {
	input := textinput.New()
	input.Placeholder = suggested
	input.CharLimit = versionCharLimit
	input.Prompt = "> "
	input.Focus()

	return versionPrompt{input: input, current: current, suggested: suggested}
}

func (m versionPrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (m versionPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type { //nolint:exhaustive // other keys go to the input
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			answer := strings.TrimSpace(m.input.Value())
			if answer == "" {
				answer = m.suggested
			}
			if err := entities.ValidateVersionAnswer(answer, m.current); err != nil {
				m.err = err
				return m, nil
			}
			m.answer = answer
			m.err = nil
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m versionPrompt) View() string {
	if m.answer != "" {
		return fmt.Sprintf("New version: %s\n", m.answer)
	}

	var view strings.Builder
	view.WriteString(fmt.Sprintf(
		"Type the new version, %q or %q (current %q, suggested %q):\n",
		entities.ReleaseSkip, entities.ReleaseInternal, m.current, m.suggested,
	))
	view.WriteString(m.input.View())
	view.WriteString("\n")
	if m.err != nil {
		view.WriteString(errorStyle.Render(m.err.Error()))
		view.WriteString("\n")
	}
	view.WriteString(hintStyle.Render("enter to confirm, esc to cancel"))
	view.WriteString("\n")
	return view.String()
}
