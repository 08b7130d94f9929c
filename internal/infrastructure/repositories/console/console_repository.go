package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// ErrPromptCancelled is returned when the user leaves the prompt.
var ErrPromptCancelled = errors.New("prompt cancelled")

// ConsoleRepository talks to the user through the terminal.
type ConsoleRepository struct {
	input  io.Reader
	output io.Writer
}

// NewConsoleRepository creates a ConsoleRepository on stdin and stdout.
func NewConsoleRepository() *ConsoleRepository {
	return &ConsoleRepository{input: os.Stdin, output: os.Stdout}
}

// NewConsoleRepositoryWithIO creates a ConsoleRepository on custom streams.
func NewConsoleRepositoryWithIO(input io.Reader, output io.Writer) *ConsoleRepository {
	return &ConsoleRepository{input: input, output: output}
}

// DisplayCommits prints the commits, dimming the ones left out of the changelog.
func (it *ConsoleRepository) DisplayCommits(commits []entities.TransformedCommit) {
	_, _ = fmt.Fprint(it.output, FormatCommits(commits))
}

// FormatCommits renders the commit listing shown before the version prompt.
func FormatCommits(commits []entities.TransformedCommit) string {
	if len(commits) == 0 {
		return headingStyle.Render("No commits since the last release.") + "\n"
	}

	var out strings.Builder
	out.WriteString(headingStyle.Render(fmt.Sprintf("Found %d commits since the last release:", len(commits))))
	out.WriteString("\n")

	for _, commit := range commits {
		line := commit.Subject
		if commit.Type != "" {
			line = fmt.Sprintf("%s: %s", typeStyle.Render(commit.Type), commit.Subject)
		}
		line = fmt.Sprintf("  * %s %s", hashStyle.Render(commit.ShortHash()), line)
		if !commit.IsVisible() {
			line = hiddenStyle.Render(line)
		}
		out.WriteString(line)
		out.WriteString("\n")

		for _, note := range commit.Notes {
			out.WriteString(fmt.Sprintf("      %s %s\n", noteStyle.Render(note.Title+":"), note.Text))
		}
	}
	return out.String()
}

// ProvideVersion runs the interactive version prompt.
func (it *ConsoleRepository) ProvideVersion(ctx context.Context, current, suggested string) (string, error) {
	program := tea.NewProgram(
		newVersionPrompt(current, suggested),
		tea.WithContext(ctx),
		tea.WithInput(it.input),
		tea.WithOutput(it.output),
	)

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("version prompt failed: %w", err)
	}

	prompt, ok := final.(versionPrompt)
	if !ok || prompt.cancelled || prompt.answer == "" {
		return "", ErrPromptCancelled
	}
	return prompt.answer, nil
}
