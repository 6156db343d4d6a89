package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/minigame"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
)

const pausedBanner = " PAUSED - press P to resume "

// Model is the Bubble Tea model hosting one puzzle session.
// Every tick advances the session clock by one frame and runs one
// session update; mouse and keys are forwarded as raw events.
type Model struct {
	puzzleID  string
	session   *minigame.Session
	clock     *core.StepClock
	screen    *core.Screen
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	// Pointer tracking for drag deltas
	pointerHeld bool
	pointerLast core.Vec

	standalone bool // Quit the program when the session exits
	done       bool
	quitting   bool
}

// NewModel builds the puzzle registered under puzzleID and wraps it in a
// session whose results go to rec.
func NewModel(puzzleID string, rec *Recorder, cfg core.RuntimeConfig) (Model, error) {
	build, err := registry.Lookup(puzzleID)
	if err != nil {
		return Model{}, err
	}

	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	clock := core.NewStepClock()
	session, err := minigame.NewSession(build, minigame.Options{
		Clock:      clock,
		Seed:       cfg.Seed,
		ConfigPath: cfg.ConfigPath,
		Difficulty: cfg.Difficulty,
		OnResult:   func(r minigame.Result) { rec.Record(r) },
	})
	if err != nil {
		return Model{}, fmt.Errorf("tui: start %s: %w", puzzleID, err)
	}

	m := Model{
		puzzleID:  puzzleID,
		session:   session,
		clock:     clock,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	m.center()
	return m, nil
}

// center places the puzzle viewport in the middle of the terminal.
func (m *Model) center() {
	w, h := m.session.Puzzle().Size()
	x := max((m.config.ScreenW-w)/2, 0)
	y := max((m.config.ScreenH-h)/2, 0)
	m.session.SetOrigin(core.V(float64(x), float64(y)))
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.center()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionPause:
		m.clock.SetPaused(!m.clock.Paused())
	default:
		if !m.clock.Paused() {
			m.session.HandleRawEvent(minigame.Event{Kind: minigame.EventKey, Action: action})
		}
	}
	return m, nil
}

// handleMouse turns left-button press, motion and release into pointer
// events. Motion is reported as the delta since the last pointer position.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.clock.Paused() {
		return m, nil
	}
	pos := core.V(float64(msg.X), float64(msg.Y))

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.pointerHeld = true
		m.pointerLast = pos
		m.session.HandleRawEvent(minigame.Event{Kind: minigame.EventPointerDown, Pos: pos})

	case tea.MouseActionMotion:
		if !m.pointerHeld {
			return m, nil
		}
		delta := pos.Sub(m.pointerLast)
		m.pointerLast = pos
		if delta != (core.Vec{}) {
			m.session.HandleRawEvent(minigame.Event{Kind: minigame.EventPointerMove, Delta: delta})
		}

	case tea.MouseActionRelease:
		if !m.pointerHeld {
			return m, nil
		}
		m.pointerHeld = false
		m.session.HandleRawEvent(minigame.Event{Kind: minigame.EventPointerUp, Pos: pos})
	}
	return m, nil
}

// handleTick advances the clock one frame and runs the session.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.clock.Advance(1 / float64(m.config.TickRate))
	m.session.Update()

	if m.session.ReadyToExit() {
		m.done = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".puzzles", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.puzzleID, timestamp))

	//nolint:errcheck // Best-effort save, play continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m *Model) draw() {
	m.screen.Clear()
	m.session.Draw(m.screen)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	if m.clock.Paused() {
		m.screen.DrawTextCentered(m.screen.Height()/2, pausedBanner)
		return RenderScreenFaint(m.screen)
	}
	return RenderScreen(m.screen)
}

// Session returns the hosted session.
func (m Model) Session() *minigame.Session {
	return m.session
}

// Done reports whether the session finished its ending dwell.
func (m Model) Done() bool {
	return m.done
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run plays a single puzzle until its session exits or the user quits.
func Run(puzzleID string, rec *Recorder, cfg core.RuntimeConfig) error {
	model, err := NewModel(puzzleID, rec, cfg)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Press, release and drag motion
	)

	_, err = p.Run()
	return err
}
