package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestConfirmModelUpdate(t *testing.T) {
	tests := []struct {
		name string
		def  bool
		msg  tea.KeyMsg
		yes  bool
	}{
		{"y", false, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true},
		{"Y", false, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Y")}, true},
		{"n", true, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false},
		{"esc", true, tea.KeyMsg{Type: tea.KeyEsc}, false},
		{"ctrl+c", true, tea.KeyMsg{Type: tea.KeyCtrlC}, false},
		{"enter default yes", true, tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"enter default no", false, tea.KeyMsg{Type: tea.KeyEnter}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, cmd := NewConfirmModel("continue?", tt.def).Update(tt.msg)
			m := model.(ConfirmModel)
			if !m.Answered || m.Yes != tt.yes {
				t.Errorf("Answered=%v Yes=%v, want answered %v", m.Answered, m.Yes, tt.yes)
			}
			if cmd == nil {
				t.Error("an answer should quit the program")
			}
		})
	}
}

func TestConfirmModelIgnoresOtherKeys(t *testing.T) {
	m := NewConfirmModel("continue?", true)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if model.(ConfirmModel).Answered || cmd != nil {
		t.Error("unrelated key should not answer")
	}
	if _, cmd := m.Update(tea.WindowSizeMsg{Width: 80}); cmd != nil {
		t.Error("non-key message should be ignored")
	}
}

func TestConfirmModelView(t *testing.T) {
	m := NewConfirmModel("continue?", true)
	if !strings.Contains(m.View(), "[Y/n]") {
		t.Errorf("View() = %q", m.View())
	}
	m.Default = false
	if !strings.Contains(m.View(), "[y/N]") {
		t.Errorf("View() = %q", m.View())
	}
	m.Answered, m.Yes = true, true
	if !strings.Contains(m.View(), "yes") {
		t.Errorf("answered View() = %q", m.View())
	}
}

func TestConfirmLine(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y", false, true},
		{"yes\n", false, true},
		{"N\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"  y", false, true},
		{"", true, false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirm(context.Background(), strings.NewReader(tt.input), &out, "go?", tt.def)
		if err != nil {
			t.Fatalf("confirm(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("confirm(%q, default %v) = %v, want %v", tt.input, tt.def, got, tt.want)
		}
		if !strings.Contains(out.String(), "go?") {
			t.Errorf("prompt not printed: %q", out.String())
		}
	}
}
