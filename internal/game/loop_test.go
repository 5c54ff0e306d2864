package game

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeState struct {
	bus      *InputBus
	unsub    func()
	entered  int
	exited   int
	dts      []float64
	keys     []ebiten.Key
	updErr   error
	enterErr error
}

func (s *fakeState) Name() string { return "fake" }

func (s *fakeState) Enter() error {
	if s.enterErr != nil {
		return s.enterErr
	}
	s.entered++
	s.unsub = s.bus.Subscribe(s)
	return nil
}

func (s *fakeState) Exit() {
	s.exited++
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *fakeState) Update(dt float64) error {
	s.dts = append(s.dts, dt)
	return s.updErr
}

func (s *fakeState) Draw(*ebiten.Image) {}
func (s *fakeState) KeyDown(k ebiten.Key) { s.keys = append(s.keys, k) }
func (s *fakeState) KeyUp(ebiten.Key) {}
func (s *fakeState) DebugReport() string { return "fake report" }

// newFakeLoop returns a loop whose factory records every state it builds.
func newFakeLoop(t *testing.T) (*Loop, *[]*fakeState) {
	t.Helper()
	var built []*fakeState
	factory := func(bus *InputBus) (State, error) {
		s := &fakeState{bus: bus}
		built = append(built, s)
		return s, nil
	}
	logger, _ := test.NewNullLogger()
	l, err := NewLoop(factory, logger)
	if err != nil {
		t.Fatalf("NewLoop: %v", err)
	}
	return l, &built
}

func TestLoop_EnterFirstState(t *testing.T) {
	l, built := newFakeLoop(t)
	if len(*built) != 1 || (*built)[0].entered != 1 {
		t.Fatalf("first state not entered: %+v", *built)
	}
	if l.State() != State((*built)[0]) || l.Bus().Listeners() != 1 {
		t.Fatal("loop not wired to its first state")
	}
}

func TestLoop_EscapeTerminates(t *testing.T) {
	l, built := newFakeLoop(t)
	err := l.step([]ebiten.Key{ebiten.KeyEscape}, nil)
	if !errors.Is(err, ebiten.Termination) {
		t.Fatalf("err=%v, want Termination", err)
	}
	if !l.Stopped() || l.State() != nil {
		t.Fatal("loop still running after Escape")
	}
	if s := (*built)[0]; s.exited != 1 || len(s.dts) != 0 {
		t.Fatalf("state exited=%d updates=%d", s.exited, len(s.dts))
	}
	if l.Bus().Listeners() != 0 {
		t.Fatal("stopped state still subscribed")
	}
	if err := l.step(nil, nil); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("step after stop err=%v", err)
	}
	l.Stop()
	if (*built)[0].exited != 1 {
		t.Fatal("Stop exited the state twice")
	}
}

func TestLoop_RestartSwapsState(t *testing.T) {
	l, built := newFakeLoop(t)
	if err := l.step([]ebiten.Key{ebiten.KeyR}, nil); err != nil {
		t.Fatal(err)
	}
	if len(*built) != 2 {
		t.Fatalf("states built=%d, want 2", len(*built))
	}
	old, cur := (*built)[0], (*built)[1]
	if old.exited != 1 || cur.entered != 1 {
		t.Fatalf("old exited=%d new entered=%d", old.exited, cur.entered)
	}
	if l.Bus().Listeners() != 1 {
		t.Fatalf("listeners=%d after restart, want 1", l.Bus().Listeners())
	}
	if len(cur.keys) != 0 {
		t.Fatal("restart key leaked to the new state")
	}
}

func TestLoop_RestartFailureStops(t *testing.T) {
	calls := 0
	factory := func(bus *InputBus) (State, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("no level")
		}
		return &fakeState{bus: bus}, nil
	}
	logger, hook := test.NewNullLogger()
	l, err := NewLoop(factory, logger)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.step([]ebiten.Key{ebiten.KeyR}, nil); err == nil {
		t.Fatal("restart failure not returned")
	}
	if !l.Stopped() {
		t.Fatal("loop kept running after failed restart")
	}
	if hook.LastEntry() == nil {
		t.Fatal("failure not logged")
	}
}

func TestLoop_KeysReachState(t *testing.T) {
	l, built := newFakeLoop(t)
	if err := l.step([]ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, []ebiten.Key{ebiten.KeyW}); err != nil {
		t.Fatal(err)
	}
	s := (*built)[0]
	if len(s.keys) != 2 || s.keys[0] != ebiten.KeyW || s.keys[1] != ebiten.KeyArrowUp {
		t.Fatalf("keys=%v", s.keys)
	}
}

func TestLoop_DeltaTimeFromClock(t *testing.T) {
	l, built := newFakeLoop(t)
	start := time.Unix(1000, 0)
	times := []time.Time{start, start.Add(500 * time.Millisecond), start.Add(520 * time.Millisecond)}
	i := 0
	l.now = func() time.Time {
		now := times[i]
		i++
		return now
	}
	for range times {
		if err := l.step(nil, nil); err != nil {
			t.Fatal(err)
		}
	}
	dts := (*built)[0].dts
	want := []float64{0, 0.5, 0.02}
	for j := range want {
		if d := dts[j] - want[j]; d > 1e-9 || d < -1e-9 {
			t.Fatalf("dts=%v, want %v", dts, want)
		}
	}
}

func TestLoop_UpdateErrorStops(t *testing.T) {
	l, built := newFakeLoop(t)
	boom := errors.New("boom")
	(*built)[0].updErr = boom
	if err := l.step(nil, nil); !errors.Is(err, boom) {
		t.Fatalf("err=%v, want boom", err)
	}
	if !l.Stopped() || (*built)[0].exited != 1 {
		t.Fatal("loop did not stop after state error")
	}
}

func TestLoop_EnterFailureLeavesNoState(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewLoop(func(bus *InputBus) (State, error) {
		return &fakeState{bus: bus, enterErr: errors.New("no music")}, nil
	}, logger)
	if err == nil {
		t.Fatal("enter error swallowed")
	}
}

func TestLoop_F9CopiesReport(t *testing.T) {
	l, _ := newFakeLoop(t)
	var copied string
	l.copyText = func(s string) error { copied = s; return nil }
	if err := l.step([]ebiten.Key{ebiten.KeyF9}, nil); err != nil {
		t.Fatal(err)
	}
	if copied != "fake report" {
		t.Fatalf("copied %q", copied)
	}

	l.copyText = func(string) error { return errNoClipboard }
	if err := l.step([]ebiten.Key{ebiten.KeyF9}, nil); err != nil {
		t.Fatalf("clipboard failure surfaced as %v", err)
	}
}

func TestCanvasScale(t *testing.T) {
	cases := []struct {
		w, h int
		want float64
	}{
		{640, 640, 1},
		{1280, 1300, 2},
		{1919, 1280, 2},
		{700, 1000, 1},
		{639, 640, 0.5},
		{100, 100, 0.5},
	}
	for _, tc := range cases {
		if got := canvasScale(tc.w, tc.h); got != tc.want {
			t.Errorf("canvasScale(%d,%d)=%v, want %v", tc.w, tc.h, got, tc.want)
		}
	}
}

func TestLoop_DrivesMatch(t *testing.T) {
	logger, _ := test.NewNullLogger()
	lv, err := NewLevel(DefaultLevel(), nil, 25)
	if err != nil {
		t.Fatal(err)
	}
	factory := func(bus *InputBus) (State, error) {
		return NewMatch(MatchSetup{Config: DefaultConfig(), Level: lv, Bus: bus, Logger: logger})
	}
	l, err := NewLoop(factory, logger)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.step([]ebiten.Key{ebiten.KeyD}, nil); err != nil {
		t.Fatal(err)
	}
	if err := l.step(nil, nil); err != nil {
		t.Fatal(err)
	}
	m := l.State().(*Match)
	if x, _ := m.Players()[0].Position(); x != 56 {
		t.Fatalf("P1 x=%d after two ticks holding D, want 56", x)
	}

	if err := l.step([]ebiten.Key{ebiten.KeyR}, nil); err != nil {
		t.Fatal(err)
	}
	fresh := l.State().(*Match)
	if fresh == m || m.Active() || !fresh.Active() {
		t.Fatal("restart did not swap matches")
	}
	if l.Bus().Listeners() != 1 {
		t.Fatalf("listeners=%d after restart", l.Bus().Listeners())
	}
	// The held key was never released; the fresh match starts with empty stacks.
	if fresh.Players()[0].Input.Len() != 0 {
		t.Fatal("input leaked across restart")
	}
}
