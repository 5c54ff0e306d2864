package game

import (
	"strings"
	"testing"
)

func TestSimLog_PerTickGate(t *testing.T) {
	pos := SimEvent{Tick: 1, Player: "P1", Kind: "move", Name: "position", Detail: "(48,48)"}
	land := SimEvent{Tick: 1, Player: "P1", Kind: "move", Name: "step_landed", Detail: "(64,48)"}

	quiet := NewSimLog(false)
	quiet.RecordTick(pos)
	quiet.Record(land)
	if len(quiet.Events()) != 1 {
		t.Fatalf("quiet log kept %d events", len(quiet.Events()))
	}

	loud := NewSimLog(true)
	loud.RecordTick(pos)
	if len(loud.Events()) != 1 {
		t.Fatal("per-tick event dropped")
	}
}

func TestSimLog_SelectCountLast(t *testing.T) {
	sl := NewSimLog(false)
	sl.Record(SimEvent{Tick: 4, Player: "P1", Kind: "move", Name: "step_landed", Detail: "(64,48)"})
	sl.Record(SimEvent{Tick: 4, Player: "P2", Kind: "move", Name: "step_landed", Detail: "(560,48)"})
	sl.Record(SimEvent{Tick: 9, Player: "P2", Kind: "capture", Name: "flag_taken", Detail: "(320,320)", Num: 2})

	if n := len(sl.Select("move", "", "")); n != 2 {
		t.Fatalf("Select(move)=%d", n)
	}
	if n := sl.Count("", "", "P2"); n != 2 {
		t.Fatalf("Count(P2)=%d", n)
	}
	if n := sl.Count("move", "step_landed", "P1"); n != 1 {
		t.Fatalf("Count(P1 landings)=%d", n)
	}
	e, ok := sl.Last("move", "step_landed")
	if !ok || e.Player != "P2" {
		t.Fatalf("Last=%+v ok=%v", e, ok)
	}
	if _, ok := sl.Last("input", "press"); ok {
		t.Fatal("Last found a missing event")
	}

	var b strings.Builder
	if _, err := sl.WriteTo(&b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if strings.Count(out, "\n") != 3 || !strings.Contains(out, "    9 P2  capture.flag_taken (320,320)") {
		t.Fatalf("WriteTo:\n%s", out)
	}
}

func TestMatchSim_LogsLandingsAndCapture(t *testing.T) {
	ms, err := NewMatchSim(
		WithScript(Hold(P2, Left, 1, 65)...),
		WithScript(InputEvent{Tick: 65, Player: P2, Dir: Down, Down: true}),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer ms.Close()

	tick, err := ms.RunUntil(func(ms *MatchSim) bool { return ms.Player(P2).Captures() > 0 }, 300)
	if err != nil {
		t.Fatal(err)
	}
	if tick != 132 {
		t.Fatalf("P2 captured at tick %d, want 132", tick)
	}
	if n := ms.SimLog.Count("move", "step_landed", "P2"); n != 33 {
		t.Fatalf("P2 landed %d steps, want 33", n)
	}
	if n := ms.SimLog.Count("move", "step_landed", "P1"); n != 0 {
		t.Fatalf("idle P1 logged %d landings", n)
	}
	e, ok := ms.SimLog.Last("capture", "flag_taken")
	if !ok || e.Tick != 132 || e.Num != 2 {
		t.Fatalf("capture entry=%+v", e)
	}
}

func TestMatchSim_RunUntilGivesUp(t *testing.T) {
	ms, err := NewMatchSim()
	if err != nil {
		t.Fatal(err)
	}
	tick, err := ms.RunUntil(func(*MatchSim) bool { return false }, 10)
	if err != nil || tick != -1 {
		t.Fatalf("tick=%d err=%v", tick, err)
	}
	if ms.Match.Tick() != 10 {
		t.Fatalf("ran %d ticks, want 10", ms.Match.Tick())
	}
}

func TestMatchSim_BadLevel(t *testing.T) {
	if _, err := NewMatchSim(WithLevelSource("tiny")); err == nil {
		t.Fatal("bad level accepted")
	}
	cfg := DefaultConfig()
	cfg.Speed = 5
	if _, err := NewMatchSim(WithConfig(cfg)); err == nil {
		t.Fatal("bad config accepted")
	}
}
