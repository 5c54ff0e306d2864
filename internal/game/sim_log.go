package game

import (
	"fmt"
	"io"
)

// SimEvent is one line of a headless match record.
type SimEvent struct {
	Tick   int
	Player string // "P1", "P2", or "--" for the match itself
	Kind   string // input, move, capture, objects
	Name   string
	Detail string
	Num    float64
}

func (e SimEvent) String() string {
	return fmt.Sprintf("%5d %-3s %s.%s %s", e.Tick, e.Player, e.Kind, e.Name, e.Detail)
}

// SimLog is the unbounded, queryable record of a headless match. The on-screen
// MatchLog only keeps the last few lines.
type SimLog struct {
	events  []SimEvent
	perTick bool
}

// NewSimLog creates a log. With perTick set, RecordTick entries (positions,
// object counts) are kept as well.
func NewSimLog(perTick bool) *SimLog {
	return &SimLog{perTick: perTick}
}

func (sl *SimLog) Record(e SimEvent) {
	sl.events = append(sl.events, e)
}

// RecordTick records per-tick noise, dropped unless the log is per-tick.
func (sl *SimLog) RecordTick(e SimEvent) {
	if sl.perTick {
		sl.Record(e)
	}
}

func (sl *SimLog) Events() []SimEvent { return sl.events }

// Select returns the events matching kind, name and player; an empty
// argument matches anything.
func (sl *SimLog) Select(kind, name, player string) []SimEvent {
	var out []SimEvent
	for _, e := range sl.events {
		if matches(e, kind, name, player) {
			out = append(out, e)
		}
	}
	return out
}

// Count is len(Select(...)) without the allocation.
func (sl *SimLog) Count(kind, name, player string) int {
	n := 0
	for _, e := range sl.events {
		if matches(e, kind, name, player) {
			n++
		}
	}
	return n
}

// Last returns the newest event of a kind and name.
func (sl *SimLog) Last(kind, name string) (SimEvent, bool) {
	for i := len(sl.events) - 1; i >= 0; i-- {
		if matches(sl.events[i], kind, name, "") {
			return sl.events[i], true
		}
	}
	return SimEvent{}, false
}

// WriteTo prints one event per line.
func (sl *SimLog) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range sl.events {
		n, err := fmt.Fprintln(w, e)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func matches(e SimEvent, kind, name, player string) bool {
	return (kind == "" || e.Kind == kind) &&
		(name == "" || e.Name == name) &&
		(player == "" || e.Player == player)
}
