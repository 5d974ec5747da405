package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// ConfirmModel - Interactive yes/no prompt
// =============================================================================

// ConfirmModel is the bubbletea model for a yes/no question.
type ConfirmModel struct {
	Prompt   string
	Default  bool // answer on enter
	Answered bool
	Yes      bool
}

// NewConfirmModel creates a prompt answering def on enter.
func NewConfirmModel(prompt string, def bool) ConfirmModel {
	return ConfirmModel{Prompt: prompt, Default: def}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "y":
		m.Answered, m.Yes = true, true
		return m, tea.Quit
	case "n", "q", "esc", "ctrl+c":
		m.Answered, m.Yes = true, false
		return m, tea.Quit
	case "enter":
		m.Answered, m.Yes = true, m.Default
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	hint := "[y/N]"
	if m.Default {
		hint = "[Y/n]"
	}
	if m.Answered {
		answer := "no"
		if m.Yes {
			answer = "yes"
		}
		return StyleWarning.Render(m.Prompt) + " " + StyleDim.Render(answer) + "\n"
	}
	return StyleWarning.Render(m.Prompt) + " " + StyleDim.Render(hint) + " "
}

// =============================================================================
// Prompting
// =============================================================================

// confirm asks a yes/no question on out. Terminals get an interactive
// prompt; other inputs are read until y, n or a newline (def).
func confirm(ctx context.Context, in io.Reader, out io.Writer, prompt string, def bool) (bool, error) {
	if isTerminal(in) && isTerminal(out) {
		p := tea.NewProgram(NewConfirmModel(prompt, def),
			tea.WithContext(ctx),
			tea.WithInput(in),
			tea.WithOutput(out))
		final, err := p.Run()
		if err != nil {
			return false, err
		}
		m := final.(ConfirmModel)
		return m.Answered && m.Yes, nil
	}
	return confirmLine(in, out, prompt, def)
}

func confirmLine(in io.Reader, out io.Writer, prompt string, def bool) (bool, error) {
	fmt.Fprint(out, StyleWarning.Render(prompt)+" ")
	r := bufio.NewReader(in)
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			fmt.Fprintln(out)
			return false, nil
		}
		if err != nil {
			return false, err
		}
		switch b {
		case 'y', 'Y':
			fmt.Fprintln(out)
			return true, nil
		case 'n', 'N':
			fmt.Fprintln(out)
			return false, nil
		case '\n':
			fmt.Fprintln(out)
			return def, nil
		}
	}
}
