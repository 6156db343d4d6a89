package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-puzzles/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a", runeKey('a'), core.ActionLeft, false},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"e", runeKey('e'), core.ActionRotateCW, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateCW, false},
		{"z", runeKey('z'), core.ActionRotateCCW, false},
		{"s", runeKey('s'), core.ActionDrop, false},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDrop, false},
		{"r", runeKey('r'), core.ActionReset, false},
		{"f", runeKey('f'), core.ActionForfeit, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"y", runeKey('y'), core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('v'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%s) = %v, %v, expected %v, %v", tt.name, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want MenuAction
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{"k", runeKey('k'), MenuActionUp},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, MenuActionStats},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{"q", runeKey('q'), MenuActionQuit},
		{"x", runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
				t.Errorf("MapKeyToMenuAction(%s) = %v, expected %v", tt.name, got, tt.want)
			}
		})
	}
}
