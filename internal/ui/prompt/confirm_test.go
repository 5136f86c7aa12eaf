package prompt

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	default:
		return tea.KeyPressMsg{Code: rune(key[0])}
	}
}

func TestConfirmModel_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		key       string
		confirmed bool
		done      bool
		cancelled bool
	}{
		{"y confirms", "y", true, true, false},
		{"Y confirms", "Y", true, true, false},
		{"n declines", "n", false, true, false},
		{"enter defaults to no", "enter", false, true, false},
		{"ctrl+c cancels", "ctrl+c", false, true, true},
		{"esc cancels", "esc", false, true, true},
		{"q cancels", "q", false, true, true},
		{"other keys ignored", "z", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := confirmModel{prompt: "Remove worktree?"}
			updated, cmd := m.Update(keyPress(tt.key))
			um := updated.(confirmModel)

			if um.confirmed != tt.confirmed {
				t.Errorf("confirmed = %v, want %v", um.confirmed, tt.confirmed)
			}
			if um.done != tt.done {
				t.Errorf("done = %v, want %v", um.done, tt.done)
			}
			if um.cancelled != tt.cancelled {
				t.Errorf("cancelled = %v, want %v", um.cancelled, tt.cancelled)
			}
			// A handled key quits the program, an unhandled one does not.
			if (cmd != nil) != tt.done {
				t.Errorf("cmd nil = %v, want nil = %v", cmd == nil, tt.done)
			}
		})
	}
}

func TestConfirmModel_View(t *testing.T) {
	t.Parallel()

	m := confirmModel{prompt: "Remove /ws/wt-old?"}
	view := m.View()
	if !strings.Contains(view.Content, "[y/N]") {
		t.Errorf("view = %q, want the y/N hint", view.Content)
	}

	m.done = true
	if view := m.View(); view.Content != "" {
		t.Errorf("done view = %q, want empty", view.Content)
	}
}

func TestConfirmModel_Init(t *testing.T) {
	t.Parallel()

	if cmd := (confirmModel{}).Init(); cmd != nil {
		t.Error("Init() should return nil cmd")
	}
}
