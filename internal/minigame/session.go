package minigame

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/core"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateActive State = iota
	StateForfeitConfirm
	StateEnding
	StateReadyToExit
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateActive:
		return "Active"
	case StateForfeitConfirm:
		return "ForfeitConfirm"
	case StateEnding:
		return "Ending"
	case StateReadyToExit:
		return "ReadyToExit"
	default:
		return "Unknown"
	}
}

// Outcome is the result of a session once it has ended.
type Outcome int

const (
	OutcomeUndetermined Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "undetermined"
	}
}

// Ending messages set by the lifecycle itself.
const (
	MessageForfeited = "Task Forfeited!"
	MessageTimeOver  = "Time over!"
)

// Result describes a finished session.
type Result struct {
	PuzzleID  string
	Success   bool
	Forfeited bool
	Message   string
	Elapsed   float64
}

// Options configures a new Session.
type Options struct {
	Clock      Clock
	Seed       int64
	Origin     core.Vec
	ConfigPath string
	Difficulty string

	// OnResult is called once, when the session enters Ending.
	OnResult func(Result)
}

type pendingKind int

const (
	pendingClick pendingKind = iota
	pendingLifecycleKey
	pendingEvent
)

type pending struct {
	kind   pendingKind
	pos    core.Vec
	action core.Action
	event  Event
}

// Session drives one puzzle through Active, ForfeitConfirm, Ending and
// ReadyToExit. It is not safe for concurrent use; the host calls it from a
// single frame pump.
type Session struct {
	puzzle    Puzzle
	clock     Clock
	lifecycle config.LifecycleConfig
	origin    core.Vec
	onResult  func(Result)

	state     State
	outcome   Outcome
	forfeited bool
	message   string

	startTime  float64
	endingTime float64

	queue []pending

	forfeitBtn Button
	confirmBtn Button
	cancelBtn  Button

	canvas *core.Screen
}

// NewSession builds the puzzle and wraps it in a fresh Active session.
func NewSession(build Builder, opts Options) (*Session, error) {
	if opts.Clock == nil {
		return nil, fmt.Errorf("minigame: session requires a clock")
	}

	s := &Session{
		clock:     opts.Clock,
		origin:    opts.Origin,
		onResult:  opts.OnResult,
		state:     StateActive,
		startTime: opts.Clock.Elapsed(),
	}

	env := Env{
		Clock:      opts.Clock,
		Rand:       rand.New(rand.NewSource(opts.Seed)),
		Finish:     s.finish,
		IDs:        &Sequence{},
		ConfigPath: opts.ConfigPath,
		Difficulty: opts.Difficulty,
	}

	p, err := build(env)
	if err != nil {
		return nil, fmt.Errorf("minigame: build puzzle: %w", err)
	}
	s.puzzle = p
	s.lifecycle = p.Lifecycle()
	if s.lifecycle.DwellTime < 0 {
		s.lifecycle.DwellTime = 0
	}

	w, h := p.Size()
	s.canvas = core.NewScreen(w, h)
	s.layoutButtons(w)

	return s, nil
}

// layoutButtons places the lifecycle buttons in the top-right corner.
// Cancel takes Forfeit's spot and Confirm sits one row below it.
func (s *Session) layoutButtons(w int) {
	s.forfeitBtn = NewButton("Forfeit", w-11, 1, core.ColorGray)
	s.cancelBtn = NewButton("Cancel", w-11, 1, core.ColorRed)
	s.confirmBtn = NewButton("Confirm", w-11, 2, core.ColorGreen)
}

// Puzzle returns the wrapped puzzle.
func (s *Session) Puzzle() Puzzle {
	return s.puzzle
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Outcome returns undetermined until the session has ended.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// ReadyToExit reports whether the host may tear the session down.
func (s *Session) ReadyToExit() bool {
	return s.state == StateReadyToExit
}

// Forfeited reports whether the player gave up.
func (s *Session) Forfeited() bool {
	return s.forfeited
}

// Message returns the ending message, empty while playing.
func (s *Session) Message() string {
	return s.message
}

// Origin returns the host position of the viewport's top-left corner.
func (s *Session) Origin() core.Vec {
	return s.origin
}

// SetOrigin moves the viewport, e.g. after a terminal resize.
func (s *Session) SetOrigin(origin core.Vec) {
	s.origin = origin
}

// TimeLeft returns the remaining time and whether a limit applies.
func (s *Session) TimeLeft() (float64, bool) {
	if s.lifecycle.TimeLimit <= 0 {
		return 0, false
	}
	left := s.lifecycle.TimeLimit - (s.clock.Elapsed() - s.startTime)
	return math.Max(left, 0), true
}

// Click queues a pointer-down given in host coordinates.
func (s *Session) Click(hostPos core.Vec) {
	s.queue = append(s.queue, pending{kind: pendingClick, pos: hostPos.Sub(s.origin)})
}

// HandleRawEvent accepts an event in host coordinates.
//
// Every event is queued and delivered by the next Update in arrival order,
// so a press and release arriving in the same frame reach the puzzle as
// press then release. Pointer positions are translated on arrival.
func (s *Session) HandleRawEvent(ev Event) {
	switch ev.Kind {
	case EventPointerDown:
		s.Click(ev.Pos)
	case EventPointerUp:
		ev.Pos = ev.Pos.Sub(s.origin)
		s.queue = append(s.queue, pending{kind: pendingEvent, event: ev})
	case EventKey:
		switch ev.Action {
		case core.ActionForfeit, core.ActionConfirm, core.ActionBack:
			s.queue = append(s.queue, pending{kind: pendingLifecycleKey, action: ev.Action})
			return
		}
		s.queue = append(s.queue, pending{kind: pendingEvent, event: ev})
	default:
		s.queue = append(s.queue, pending{kind: pendingEvent, event: ev})
	}
}

func (s *Session) playable() bool {
	return s.state == StateActive || s.state == StateForfeitConfirm
}

// Update advances the session by one frame.
func (s *Session) Update() {
	if !s.playable() {
		s.queue = s.queue[:0]
		s.updateEnding()
		return
	}

	if left, limited := s.TimeLeft(); limited && left <= 0 {
		s.finish(false, MessageTimeOver)
		s.queue = s.queue[:0]
		return
	}

	s.drainQueue()
	if !s.playable() {
		return
	}
	s.puzzle.Update()
}

// drainQueue delivers queued input in arrival order. Anything still queued
// when the session leaves play is discarded.
func (s *Session) drainQueue() {
	for i := 0; i < len(s.queue); i++ {
		if !s.playable() {
			break
		}
		p := s.queue[i]
		switch p.kind {
		case pendingClick:
			if s.handleButtons(p.pos) {
				continue
			}
			s.puzzle.HandleClick(p.pos)
		case pendingLifecycleKey:
			s.handleLifecycleKey(p.action)
		case pendingEvent:
			s.puzzle.HandleEvent(p.event)
		}
	}
	s.queue = s.queue[:0]
}

// handleButtons hit-tests the lifecycle buttons and reports whether the
// click was consumed.
func (s *Session) handleButtons(pos core.Vec) bool {
	if s.state == StateForfeitConfirm {
		switch {
		case s.confirmBtn.Contains(pos):
			s.confirmForfeit()
			return true
		case s.cancelBtn.Contains(pos):
			s.state = StateActive
			return true
		}
		return false
	}
	if s.forfeitBtn.Contains(pos) {
		s.state = StateForfeitConfirm
		return true
	}
	return false
}

func (s *Session) handleLifecycleKey(a core.Action) {
	switch {
	case a == core.ActionForfeit && s.state == StateActive:
		s.state = StateForfeitConfirm
	case a == core.ActionConfirm && s.state == StateForfeitConfirm:
		s.confirmForfeit()
	case a == core.ActionBack && s.state == StateForfeitConfirm:
		s.state = StateActive
	}
}

func (s *Session) confirmForfeit() {
	s.forfeited = true
	s.finish(false, MessageForfeited)
}

// finish moves the session to Ending. Only the first outcome counts.
func (s *Session) finish(success bool, message string) {
	if !s.playable() {
		return
	}
	s.state = StateEnding
	if success {
		s.outcome = OutcomeSuccess
	} else {
		s.outcome = OutcomeFailure
	}
	s.message = message
	s.endingTime = s.clock.Elapsed()

	if s.onResult != nil {
		s.onResult(Result{
			PuzzleID:  s.puzzle.ID(),
			Success:   success,
			Forfeited: s.forfeited,
			Message:   message,
			Elapsed:   s.endingTime - s.startTime,
		})
	}
}

func (s *Session) updateEnding() {
	if s.state != StateEnding {
		return
	}
	if s.clock.Elapsed()-s.endingTime >= s.lifecycle.DwellTime {
		s.state = StateReadyToExit
	}
}

// Draw renders the session into dst at the viewport origin.
func (s *Session) Draw(dst *core.Screen) {
	s.canvas.Clear()
	w, h := s.canvas.Width(), s.canvas.Height()

	if s.playable() {
		s.puzzle.Draw(s.canvas)
		s.drawButtons()
		s.canvas.DrawBox(core.NewRect(0, 0, w, h))
		if left, limited := s.TimeLeft(); limited {
			s.canvas.DrawText(2, 0, fmt.Sprintf(" Time left: %d ", int(math.Ceil(left))))
		}
	} else {
		color := core.ColorRed
		if s.outcome == OutcomeSuccess {
			color = core.ColorGreen
		}
		x := (w - len([]rune(s.message))) / 2
		s.canvas.DrawTextColored(x, h/2, s.message, color)
		s.canvas.DrawBox(core.NewRect(0, 0, w, h))
	}

	dst.Blit(s.canvas, int(math.Floor(s.origin.X)), int(math.Floor(s.origin.Y)))
}

func (s *Session) drawButtons() {
	if s.state == StateForfeitConfirm {
		s.confirmBtn.Draw(s.canvas)
		s.cancelBtn.Draw(s.canvas)
		return
	}
	s.forfeitBtn.Draw(s.canvas)
}
