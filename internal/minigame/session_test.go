package minigame

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/core"
)

// stubPuzzle records what the session hands it.
type stubPuzzle struct {
	env       Env
	lifecycle config.LifecycleConfig
	clicks    []core.Vec
	events    []Event
	updates   int

	// trace records the kind of every delivered input in delivery order.
	trace []EventKind

	// finishOnClick ends the puzzle from inside HandleClick.
	finishOnClick bool
}

func (p *stubPuzzle) ID() string                        { return "stub" }
func (p *stubPuzzle) Size() (int, int)                  { return 40, 12 }
func (p *stubPuzzle) Lifecycle() config.LifecycleConfig { return p.lifecycle }
func (p *stubPuzzle) Update()                           { p.updates++ }
func (p *stubPuzzle) HandleEvent(ev Event) {
	p.events = append(p.events, ev)
	p.trace = append(p.trace, ev.Kind)
}
func (p *stubPuzzle) Draw(dst *core.Screen)             { dst.DrawText(2, 5, "stub board") }

func (p *stubPuzzle) HandleClick(pos core.Vec) {
	p.clicks = append(p.clicks, pos)
	p.trace = append(p.trace, EventPointerDown)
	if p.finishOnClick {
		p.env.Finish(true, "Puzzle Completed!")
	}
}

func newStubSession(t *testing.T, lc config.LifecycleConfig) (*Session, *stubPuzzle, *core.StepClock, *[]Result) {
	t.Helper()
	clock := core.NewStepClock()
	stub := &stubPuzzle{lifecycle: lc}
	var results []Result

	s, err := NewSession(func(env Env) (Puzzle, error) {
		stub.env = env
		return stub, nil
	}, Options{
		Clock:    clock,
		Seed:     1,
		Origin:   core.V(10, 5),
		OnResult: func(r Result) { results = append(results, r) },
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s, stub, clock, &results
}

// forfeitPos is the host position of the Forfeit button for a 40-wide stub
// at origin (10, 5).
var forfeitPos = core.V(10+40-11, 5+1)

func TestNewSessionErrors(t *testing.T) {
	if _, err := NewSession(nil, Options{}); err == nil {
		t.Error("NewSession without a clock should fail")
	}

	boom := errors.New("boom")
	_, err := NewSession(func(Env) (Puzzle, error) { return nil, boom }, Options{Clock: core.NewStepClock()})
	if !errors.Is(err, boom) {
		t.Errorf("NewSession() error = %v, expected wrapped boom", err)
	}
}

func TestClickTranslation(t *testing.T) {
	s, stub, _, _ := newStubSession(t, config.LifecycleConfig{DwellTime: 2})

	s.Click(core.V(15, 8))
	s.Click(core.V(11, 6))
	if len(stub.clicks) != 0 {
		t.Fatal("clicks should wait for Update")
	}

	s.Update()
	if len(stub.clicks) != 2 {
		t.Fatalf("puzzle got %d clicks, expected 2", len(stub.clicks))
	}
	if stub.clicks[0] != core.V(5, 3) || stub.clicks[1] != core.V(1, 1) {
		t.Errorf("clicks = %v, expected [(5,3) (1,1)] in order", stub.clicks)
	}
	if stub.updates != 1 {
		t.Errorf("puzzle updates = %d, expected 1", stub.updates)
	}
}

func TestInputDeliveredInArrivalOrder(t *testing.T) {
	s, stub, _, _ := newStubSession(t, config.LifecycleConfig{DwellTime: 2})

	// A tap: press, nudge and release all land inside one frame
	s.HandleRawEvent(Event{Kind: EventPointerDown, Pos: core.V(15, 8)})
	s.HandleRawEvent(Event{Kind: EventPointerMove, Delta: core.V(1, 0)})
	s.HandleRawEvent(Event{Kind: EventPointerUp, Pos: core.V(16, 8)})
	s.HandleRawEvent(Event{Kind: EventKey, Action: core.ActionLeft})
	if len(stub.trace) != 0 {
		t.Fatalf("puzzle got %d inputs before Update, expected 0", len(stub.trace))
	}

	s.Update()
	want := []EventKind{EventPointerDown, EventPointerMove, EventPointerUp, EventKey}
	if len(stub.trace) != len(want) {
		t.Fatalf("trace = %v, expected %v", stub.trace, want)
	}
	for i := range want {
		if stub.trace[i] != want[i] {
			t.Errorf("trace[%d] = %v, expected %v", i, stub.trace[i], want[i])
		}
	}
	if up := stub.events[1]; up.Pos != core.V(6, 3) {
		t.Errorf("pointer-up Pos = %v, expected (6,3) in puzzle coordinates", up.Pos)
	}
}

func TestForfeitFlow(t *testing.T) {
	s, stub, clock, results := newStubSession(t, config.LifecycleConfig{DwellTime: 2})

	s.Click(forfeitPos)
	s.Update()
	if s.State() != StateForfeitConfirm {
		t.Fatalf("State() = %v, expected ForfeitConfirm", s.State())
	}
	if len(stub.clicks) != 0 {
		t.Error("button click should not reach the puzzle")
	}

	// Cancel occupies the Forfeit spot
	s.Click(forfeitPos)
	s.Update()
	if s.State() != StateActive {
		t.Fatalf("State() = %v, expected Active after cancel", s.State())
	}

	// Forfeit again, then confirm one row below
	s.Click(forfeitPos)
	s.Update()
	s.Click(forfeitPos.Add(core.V(0, 1)))
	clock.Advance(3)
	s.Update()

	if s.State() != StateEnding {
		t.Fatalf("State() = %v, expected Ending", s.State())
	}
	if s.Outcome() != OutcomeFailure || !s.Forfeited() || s.Message() != MessageForfeited {
		t.Errorf("outcome = %v forfeited = %v message = %q", s.Outcome(), s.Forfeited(), s.Message())
	}
	if len(*results) != 1 || !(*results)[0].Forfeited || (*results)[0].Elapsed != 3 {
		t.Errorf("results = %+v, expected one forfeit after 3s", *results)
	}
}

func TestForfeitByKeys(t *testing.T) {
	s, _, _, _ := newStubSession(t, config.LifecycleConfig{DwellTime: 2})

	s.HandleRawEvent(Event{Kind: EventKey, Action: core.ActionConfirm})
	s.Update()
	if s.State() != StateActive {
		t.Fatalf("confirm without forfeit should be ignored, state %v", s.State())
	}

	s.HandleRawEvent(Event{Kind: EventKey, Action: core.ActionForfeit})
	s.HandleRawEvent(Event{Kind: EventKey, Action: core.ActionBack})
	s.Update()
	if s.State() != StateActive {
		t.Fatalf("State() = %v, expected Active after forfeit+back", s.State())
	}

	s.HandleRawEvent(Event{Kind: EventKey, Action: core.ActionForfeit})
	s.HandleRawEvent(Event{Kind: EventKey, Action: core.ActionConfirm})
	s.Update()
	if !s.Forfeited() {
		t.Error("Forfeited() = false after forfeit+confirm")
	}
}

func TestPuzzleKeepsRunningWhileConfirming(t *testing.T) {
	s, stub, _, _ := newStubSession(t, config.LifecycleConfig{DwellTime: 2})

	s.Click(forfeitPos)
	s.Update()
	s.HandleRawEvent(Event{Kind: EventPointerMove, Delta: core.V(1, 0)})
	s.Update()

	if stub.updates != 2 {
		t.Errorf("puzzle updates = %d, expected 2", stub.updates)
	}
	if len(stub.events) != 1 {
		t.Errorf("puzzle events = %d, expected 1", len(stub.events))
	}
}

func TestEndingDwellAndDiscard(t *testing.T) {
	s, stub, clock, results := newStubSession(t, config.LifecycleConfig{DwellTime: 2})
	stub.finishOnClick = true

	clock.Advance(1)
	s.Click(core.V(15, 8))
	s.Click(core.V(16, 8)) // arrives after the finishing click
	s.Update()

	if s.State() != StateEnding || s.Outcome() != OutcomeSuccess {
		t.Fatalf("state = %v outcome = %v, expected Ending success", s.State(), s.Outcome())
	}
	if len(stub.clicks) != 1 {
		t.Errorf("puzzle got %d clicks, expected the rest discarded", len(stub.clicks))
	}
	if stub.updates != 0 {
		t.Errorf("puzzle should not update after finishing, got %d", stub.updates)
	}

	// Input during Ending is ignored
	s.Click(core.V(15, 8))
	s.HandleRawEvent(Event{Kind: EventPointerMove, Delta: core.V(1, 1)})
	s.HandleRawEvent(Event{Kind: EventKey, Action: core.ActionLeft})
	clock.Advance(1.5)
	s.Update()
	if len(stub.clicks) != 1 || len(stub.events) != 0 {
		t.Error("input during Ending reached the puzzle")
	}
	if s.ReadyToExit() {
		t.Fatal("ReadyToExit() before the dwell elapsed")
	}

	clock.Advance(0.5)
	s.Update()
	if !s.ReadyToExit() {
		t.Fatal("ReadyToExit() = false after the dwell")
	}

	// A late finish is ignored and the callback fired once
	stub.env.Finish(false, "late")
	if s.Outcome() != OutcomeSuccess || len(*results) != 1 {
		t.Errorf("outcome = %v results = %d, expected first outcome to stick", s.Outcome(), len(*results))
	}
}

func TestTimeLimit(t *testing.T) {
	s, stub, clock, results := newStubSession(t, config.LifecycleConfig{DwellTime: 2, TimeLimit: 10})

	if left, ok := s.TimeLeft(); !ok || left != 10 {
		t.Fatalf("TimeLeft() = %v, %v, expected 10, true", left, ok)
	}

	clock.Advance(9.5)
	s.Update()
	if s.State() != StateActive {
		t.Fatalf("State() = %v, expected Active before the limit", s.State())
	}

	clock.Advance(0.5)
	s.Click(core.V(15, 8))
	s.Update()
	if s.State() != StateEnding || s.Message() != MessageTimeOver {
		t.Fatalf("state = %v message = %q, expected time over", s.State(), s.Message())
	}
	if len(stub.clicks) != 0 {
		t.Error("clicks queued at time over should be discarded")
	}
	if len(*results) != 1 || (*results)[0].Success {
		t.Errorf("results = %+v, expected one failure", *results)
	}
}

func TestNoTimeLimit(t *testing.T) {
	s, _, clock, _ := newStubSession(t, config.LifecycleConfig{DwellTime: 2})
	if _, ok := s.TimeLeft(); ok {
		t.Error("TimeLeft() should report no limit")
	}
	clock.Advance(1e6)
	s.Update()
	if s.State() != StateActive {
		t.Errorf("State() = %v, expected Active", s.State())
	}
}

func TestDraw(t *testing.T) {
	s, stub, _, _ := newStubSession(t, config.LifecycleConfig{DwellTime: 2, TimeLimit: 60})
	dst := core.NewScreen(60, 20)

	s.Draw(dst)
	if !strings.Contains(dst.Row(5+5), "stub board") {
		t.Errorf("puzzle content missing, row = %q", dst.Row(10))
	}
	if !strings.Contains(dst.Row(6), "[Forfeit]") {
		t.Errorf("forfeit button missing, row = %q", dst.Row(6))
	}
	if !strings.Contains(dst.Row(5), "Time left: 60") {
		t.Errorf("time left missing, row = %q", dst.Row(5))
	}

	stub.env.Finish(false, "Overflow!")
	dst.Clear()
	s.Draw(dst)
	if !strings.Contains(dst.Row(5+6), "Overflow!") {
		t.Errorf("ending message missing, row = %q", dst.Row(11))
	}
	if strings.Contains(dst.String(), "stub board") {
		t.Error("puzzle should not be drawn while ending")
	}
}

func TestSequence(t *testing.T) {
	var seq Sequence
	for want := 1; want <= 3; want++ {
		if got := seq.Next(); got != want {
			t.Errorf("Next() = %d, expected %d", got, want)
		}
	}
}
