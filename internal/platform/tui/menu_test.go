package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/tui-puzzles/internal/games/compression"
	_ "github.com/vovakirdan/tui-puzzles/internal/games/drivers"

	"github.com/vovakirdan/tui-puzzles/internal/config"
)

func sendMenu(m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(MenuModel), cmd
}

func TestMenuListsPuzzles(t *testing.T) {
	m := NewMenuModel(testConfig())

	ids := make([]string, len(m.items))
	for i, item := range m.items {
		ids[i] = item.PuzzleID
	}
	want := []string{"compression", "defrag", "drivers"}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Errorf("menu items = %v, expected %v", ids, want)
	}

	view := m.View()
	for _, title := range []string{"Data Compression", "Defragment Disk", "Organise Drivers"} {
		if !strings.Contains(view, title) {
			t.Errorf("menu view missing %q", title)
		}
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(testConfig())

	m, _ = sendMenu(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected to stay at 0", m.cursor)
	}
	for range 5 {
		m, _ = sendMenu(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected to stop at %d", m.cursor, len(m.items)-1)
	}
}

func TestMenuDifficultyCycles(t *testing.T) {
	m := NewMenuModel(testConfig())
	if difficulties[m.difficulty] != config.DifficultyNormal {
		t.Fatalf("initial difficulty = %v, expected normal", difficulties[m.difficulty])
	}

	m, _ = sendMenu(m, tea.KeyMsg{Type: tea.KeyLeft})
	if difficulties[m.difficulty] != config.DifficultyFixed {
		t.Errorf("left from normal = %v, expected fixed", difficulties[m.difficulty])
	}
	m, _ = sendMenu(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = sendMenu(m, tea.KeyMsg{Type: tea.KeyRight})
	if difficulties[m.difficulty] != config.DifficultyEasy {
		t.Errorf("difficulty = %v, expected easy", difficulties[m.difficulty])
	}
	if !strings.Contains(m.View(), "Difficulty: < easy >") {
		t.Error("view should show the chosen difficulty")
	}
}

func TestMenuStartsOnConfiguredDifficulty(t *testing.T) {
	cfg := testConfig()
	cfg.Difficulty = "hard"
	m := NewMenuModel(cfg)
	if difficulties[m.difficulty] != config.DifficultyHard {
		t.Errorf("difficulty = %v, expected hard", difficulties[m.difficulty])
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(testConfig())
	m, _ = sendMenu(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = sendMenu(m, tea.KeyMsg{Type: tea.KeyRight})
	m, cmd := sendMenu(m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("select should end the menu program")
	}
	if m.Selected() == nil || m.Selected().PuzzleID != "defrag" {
		t.Fatalf("Selected() = %+v, expected defrag", m.Selected())
	}
	if m.Config().Difficulty != "easy" {
		t.Errorf("Config().Difficulty = %q, expected easy", m.Config().Difficulty)
	}
}

func TestMenuStatsAndQuit(t *testing.T) {
	m := NewMenuModel(testConfig())
	m, _ = sendMenu(m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsStats() {
		t.Error("tab should open the stats board")
	}

	m = NewMenuModel(testConfig())
	m, _ = sendMenu(m, runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit the menu")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("abcd", 10); got != "   abcd" {
		t.Errorf("centerText() = %q, expected %q", got, "   abcd")
	}
	if got := centerText("too wide", 4); got != "too wide" {
		t.Errorf("centerText() = %q, expected the text unchanged", got)
	}
}
