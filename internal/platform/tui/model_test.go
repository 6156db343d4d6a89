package tui

import (
	"io"
	"math"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/games/defrag"
	"github.com/vovakirdan/tui-puzzles/internal/minigame"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 60, Seed: 7}
}

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewRecorder(store, nil, log.New(io.Discard))
}

func newTestModel(t *testing.T, rec *Recorder) Model {
	t.Helper()
	m, err := NewModel(defrag.ID, rec, testConfig())
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		m, _ = send(m, TickMsg{})
	}
	return m
}

func TestNewModelUnknownPuzzle(t *testing.T) {
	if _, err := NewModel("no-such-puzzle", nil, testConfig()); err == nil {
		t.Error("NewModel() error = nil, expected unknown puzzle")
	}
}

func TestModelCentersViewport(t *testing.T) {
	m := newTestModel(t, nil)
	w, h := m.Session().Puzzle().Size()

	want := core.V(float64((100-w)/2), float64((40-h)/2))
	if got := m.Session().Origin(); got != want {
		t.Errorf("Origin() = %v, expected %v", got, want)
	}

	// Smaller than the viewport pins it to the corner
	m, _ = send(m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if got := m.Session().Origin(); got != core.V(0, 0) {
		t.Errorf("Origin() after shrink = %v, expected (0,0)", got)
	}
}

func TestModelTickAdvancesClock(t *testing.T) {
	m := newTestModel(t, nil)
	m = tick(m, 60)

	if math.Abs(m.clock.Elapsed()-1) > 1e-9 {
		t.Errorf("Elapsed() = %v after 60 ticks, expected 1", m.clock.Elapsed())
	}
	left, ok := m.Session().TimeLeft()
	if !ok || math.Abs(left-119) > 1e-9 {
		t.Errorf("TimeLeft() = %v, %v, expected 119", left, ok)
	}
}

func TestModelPauseFreezesClock(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = send(m, runeKey('p'))
	m = tick(m, 30)
	if m.clock.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v while paused, expected 0", m.clock.Elapsed())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused view should show the banner")
	}

	m, _ = send(m, runeKey('p'))
	m = tick(m, 1)
	if m.clock.Elapsed() == 0 {
		t.Error("clock should run after unpausing")
	}
}

func TestModelMouseDrag(t *testing.T) {
	m := newTestModel(t, nil)
	g := m.Session().Puzzle().(*defrag.Game)
	p := g.Pieces()[0]
	home := p.Anchor

	origin := m.Session().Origin()
	cx := int(origin.X+p.Anchor.X) + p.Cells[0].X*2
	cy := int(origin.Y+p.Anchor.Y) + p.Cells[0].Y

	m, _ = send(m, tea.MouseMsg{X: cx, Y: cy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tick(m, 1)
	if !p.Grabbed {
		t.Fatal("left press over a piece should grab it")
	}

	m, _ = send(m, tea.MouseMsg{X: cx + 3, Y: cy + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = tick(m, 1)
	if p.Anchor != home.Add(core.V(3, 1)) {
		t.Errorf("Anchor = %v after drag, expected %v", p.Anchor, home.Add(core.V(3, 1)))
	}

	m, _ = send(m, tea.MouseMsg{X: cx + 3, Y: cy + 1, Action: tea.MouseActionRelease})
	m = tick(m, 1)
	if p.Grabbed {
		t.Error("release should drop the piece")
	}
	if !p.Placed && p.Anchor != home {
		t.Errorf("dropped piece neither snapped nor went home, anchor %v", p.Anchor)
	}

	// Motion without a held button is ignored
	rest := p.Anchor
	m, _ = send(m, tea.MouseMsg{X: cx + 5, Y: cy, Action: tea.MouseActionMotion})
	m = tick(m, 1)
	if p.Anchor != rest {
		t.Error("hover moved a piece")
	}
}

func TestModelTapInOneFrame(t *testing.T) {
	m := newTestModel(t, nil)
	g := m.Session().Puzzle().(*defrag.Game)
	a, b := g.Pieces()[0], g.Pieces()[1]

	origin := m.Session().Origin()
	at := func(p *defrag.Piece) (int, int) {
		return int(origin.X+p.Anchor.X) + p.Cells[0].X*2, int(origin.Y+p.Anchor.Y) + p.Cells[0].Y
	}

	// Press and release on a before the frame runs
	ax, ay := at(a)
	m, _ = send(m, tea.MouseMsg{X: ax, Y: ay, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(m, tea.MouseMsg{X: ax, Y: ay, Action: tea.MouseActionRelease})
	m = tick(m, 1)
	if a.Grabbed {
		t.Fatal("a tap should grab and release within the same frame")
	}

	// Dragging another piece leaves a where it is
	aStart := a.Anchor
	bx, by := at(b)
	m, _ = send(m, tea.MouseMsg{X: bx, Y: by, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(m, tea.MouseMsg{X: bx + 3, Y: by, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = tick(m, 1)
	if !b.Grabbed {
		t.Fatal("second piece should be grabbed")
	}
	if a.Anchor != aStart {
		t.Errorf("dragging b moved a from %v to %v", aStart, a.Anchor)
	}
}

func TestModelForfeitRecordsResult(t *testing.T) {
	rec := newTestRecorder(t)
	m := newTestModel(t, rec)

	m, _ = send(m, runeKey('f'))
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(m, 1)
	if m.Session().State() != minigame.StateEnding || !m.Session().Forfeited() {
		t.Fatalf("State() = %v, expected a forfeited Ending", m.Session().State())
	}

	results, err := rec.Store().RecentResults(defrag.ID, 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 1 || !results[0].Forfeited || results[0].Message != minigame.MessageForfeited {
		t.Fatalf("results = %+v, expected one forfeit", results)
	}
	if results[0].RunID == "" {
		t.Error("result should carry a run id")
	}

	// Dwell is two seconds of frames
	m = tick(m, 60)
	if m.Done() {
		t.Fatal("Done() before the dwell elapsed")
	}
	m = tick(m, 70)
	if !m.Done() {
		t.Fatal("Done() = false after the dwell")
	}
}

func TestModelStandaloneQuitsWhenDone(t *testing.T) {
	m := newTestModel(t, nil)
	m.standalone = true

	m, _ = send(m, runeKey('f'))
	m, _ = send(m, runeKey('y'))
	var cmd tea.Cmd
	for i := 0; i < 200 && !m.Done(); i++ {
		m, cmd = send(m, TickMsg{})
	}
	if !m.Done() {
		t.Fatal("session never finished")
	}
	if cmd == nil {
		t.Fatal("standalone model should quit when done")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
}

func TestModelQuitKey(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := send(m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, 'c', core.ColorPink)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	for _, want := range []string{"ab", "c"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("first line %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(RenderScreenFaint(s), "ab") {
		t.Error("faint render lost the text")
	}
}
