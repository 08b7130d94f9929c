package console

import tea "github.com/charmbracelet/bubbletea"

// NewVersionPrompt exports newVersionPrompt for testing.
func NewVersionPrompt(current, suggested string) tea.Model {
	return newVersionPrompt(current, suggested)
}

// PromptState exposes the outcome of a version prompt for testing.
func PromptState(model tea.Model) (string, bool, error) {
	prompt := model.(versionPrompt)
	return prompt.answer, prompt.cancelled, prompt.err
}
