package game

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// MatchSim is a headless match harness used by tests and cmd/headless-report.
// It drives Match exactly as Loop does but needs no window or sprites, and
// replays scripted key edges at fixed ticks.
type MatchSim struct {
	Match  *Match
	SimLog *SimLog

	level  LevelDef
	cfg    Config
	logger logrus.FieldLogger
	script []InputEvent
}

// InputEvent is a scripted key edge applied just before the given tick runs.
type InputEvent struct {
	Tick   int
	Player PlayerID
	Dir    Direction
	Down   bool
}

// Hold returns the press and release edges for holding dir over
// [from, to) ticks.
func Hold(p PlayerID, d Direction, from, to int) []InputEvent {
	return []InputEvent{
		{Tick: from, Player: p, Dir: d, Down: true},
		{Tick: to, Player: p, Dir: d, Down: false},
	}
}

// SimOption configures a MatchSim.
type SimOption func(*MatchSim)

// WithLevelSource replaces the level grid.
func WithLevelSource(src string) SimOption {
	return func(ms *MatchSim) { ms.level.Source = src }
}

// WithSpawns moves the two spawn points (pixels).
func WithSpawns(p1, p2 image.Point) SimOption {
	return func(ms *MatchSim) { ms.level.Spawns = [2]image.Point{p1, p2} }
}

// WithFlags replaces the flag points (pixels).
func WithFlags(pts ...image.Point) SimOption {
	return func(ms *MatchSim) { ms.level.Flags = pts }
}

// WithConfig replaces the match config.
func WithConfig(cfg Config) SimOption {
	return func(ms *MatchSim) { ms.cfg = cfg }
}

// WithVerbose enables per-tick logging.
func WithVerbose(v bool) SimOption {
	return func(ms *MatchSim) { ms.SimLog = NewSimLog(v) }
}

// WithScript queues key edges.
func WithScript(events ...InputEvent) SimOption {
	return func(ms *MatchSim) { ms.script = append(ms.script, events...) }
}

// WithLogger routes match logging; the default discards it.
func WithLogger(l logrus.FieldLogger) SimOption {
	return func(ms *MatchSim) { ms.logger = l }
}

// BlankLevel is a level grid with no walls.
func BlankLevel() string {
	return strings.Repeat(" ", TilesX*TilesY)
}

// NewMatchSim builds and enters a match on the default level unless options
// say otherwise.
func NewMatchSim(opts ...SimOption) (*MatchSim, error) {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	ms := &MatchSim{
		SimLog: NewSimLog(false),
		level:  DefaultLevel(),
		cfg:    DefaultConfig(),
		logger: quiet,
	}
	for _, o := range opts {
		o(ms)
	}

	lv, err := NewLevel(ms.level, nil, tilesetCellCount(defaultTilesetRows*TileSize))
	if err != nil {
		return nil, err
	}
	var cubes [2]Cube
	for i, id := range ms.cfg.PlayerCubes {
		if id >= 0 && id < cubeCount {
			cubes[i] = Cube{Color: cubeColors[id]}
		}
	}
	m, err := NewMatch(MatchSetup{
		Config: ms.cfg,
		Level:  lv,
		Cubes:  cubes,
		Bus:    NewInputBus(),
		Logger: ms.logger,
	})
	if err != nil {
		return nil, err
	}
	if err := m.Enter(); err != nil {
		return nil, err
	}
	ms.Match = m
	return ms, nil
}

// Player returns a player by seat.
func (ms *MatchSim) Player(id PlayerID) *Player {
	return ms.Match.players[id]
}

// Press sends the key-down for a player's direction through the input bus.
func (ms *MatchSim) Press(id PlayerID, d Direction) {
	ms.Match.bus.KeyDown(keyFor(id, d))
	ms.SimLog.RecordTick(SimEvent{Tick: ms.Match.tick, Player: id.String(), Kind: "input", Name: "press", Detail: d.String()})
}

// Release sends the key-up for a player's direction through the input bus.
func (ms *MatchSim) Release(id PlayerID, d Direction) {
	ms.Match.bus.KeyUp(keyFor(id, d))
	ms.SimLog.RecordTick(SimEvent{Tick: ms.Match.tick, Player: id.String(), Kind: "input", Name: "release", Detail: d.String()})
}

func keyFor(id PlayerID, d Direction) ebiten.Key {
	for k, kd := range playerKeys[id] {
		if kd == d {
			return k
		}
	}
	return -1
}

// Step applies the key edges scripted for the next tick, then runs it.
func (ms *MatchSim) Step() error {
	next := ms.Match.tick + 1
	for _, ev := range ms.script {
		if ev.Tick != next {
			continue
		}
		if ev.Down {
			ms.Press(ev.Player, ev.Dir)
		} else {
			ms.Release(ev.Player, ev.Dir)
		}
	}

	type before struct{ x, y, captures int }
	prev := make([]before, len(ms.Match.players))
	for i, p := range ms.Match.players {
		prev[i] = before{p.x, p.y, p.captures}
	}

	if err := ms.Match.Update(1.0 / TPS); err != nil {
		return err
	}

	tick := ms.Match.tick
	for i, p := range ms.Match.players {
		label := p.id.String()
		if p.captures > prev[i].captures {
			ms.SimLog.Record(SimEvent{Tick: tick, Player: label, Kind: "capture", Name: "flag_taken",
				Detail: fmt.Sprintf("(%d,%d) speed=%d", p.x, p.y, p.speed), Num: float64(p.speed)})
		}
		if !p.Stepping() && (p.x != prev[i].x || p.y != prev[i].y) {
			ms.SimLog.Record(SimEvent{Tick: tick, Player: label, Kind: "move", Name: "step_landed",
				Detail: fmt.Sprintf("(%d,%d)", p.x, p.y)})
		}
		ms.SimLog.RecordTick(SimEvent{Tick: tick, Player: label, Kind: "move", Name: "position",
			Detail: fmt.Sprintf("(%d,%d) dir=%s", p.x, p.y, p.state), Num: float64(p.StepTicksRemaining())})
	}
	n := len(ms.Match.objects)
	ms.SimLog.RecordTick(SimEvent{Tick: tick, Player: "--", Kind: "objects", Name: "live",
		Detail: fmt.Sprintf("%d", n), Num: float64(n)})
	return nil
}

// RunTicks advances the match n ticks.
func (ms *MatchSim) RunTicks(n int) error {
	for i := 0; i < n; i++ {
		if err := ms.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// It returns the tick at which the predicate held, or -1.
func (ms *MatchSim) RunUntil(predicate func(*MatchSim) bool, maxTicks int) (int, error) {
	for i := 0; i < maxTicks; i++ {
		if err := ms.Step(); err != nil {
			return -1, err
		}
		if predicate(ms) {
			return ms.Match.tick, nil
		}
	}
	return -1, nil
}

// Close exits the match.
func (ms *MatchSim) Close() {
	ms.Match.Exit()
}
