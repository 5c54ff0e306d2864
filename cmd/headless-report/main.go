package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Cube-Trails/internal/game"
	"github.com/sirupsen/logrus"
)

type runStats struct {
	runIndex int

	captor      string
	captureTick int
	finalTick   int

	steps         map[string]int
	blockedSteps  map[string]int
	peakTrails    int
	peakObjects   int
	burstsSpawned int

	landing map[string]string // final position per player
}

// scenario scripts the key edges of one headless race.
type scenario struct {
	name   string
	about  string
	script func() []game.InputEvent
}

var scenarios = []scenario{
	{
		name:  "flag-race",
		about: "P1 runs right then down, P2 runs left then down; P2 has one step less to cover",
		script: func() []game.InputEvent {
			var ev []game.InputEvent
			// 17 steps of 4 ticks east, then south.
			ev = append(ev, game.Hold(game.P1, game.Right, 1, 69)...)
			ev = append(ev, game.InputEvent{Tick: 69, Player: game.P1, Dir: game.Down, Down: true})
			// 16 steps west, then south.
			ev = append(ev, game.Hold(game.P2, game.Left, 1, 65)...)
			ev = append(ev, game.InputEvent{Tick: 65, Player: game.P2, Dir: game.Down, Down: true})
			return ev
		},
	},
	{
		name:  "zigzag",
		about: "both players hold two keys from the start and staircase toward the flag",
		script: func() []game.InputEvent {
			return []game.InputEvent{
				{Tick: 1, Player: game.P1, Dir: game.Right, Down: true},
				{Tick: 1, Player: game.P1, Dir: game.Down, Down: true},
				{Tick: 1, Player: game.P2, Dir: game.Left, Down: true},
				{Tick: 1, Player: game.P2, Dir: game.Down, Down: true},
			}
		},
	},
	{
		name:  "wall-hug",
		about: "both players run up into the border wall and keep pushing",
		script: func() []game.InputEvent {
			return []game.InputEvent{
				{Tick: 1, Player: game.P1, Dir: game.Up, Down: true},
				{Tick: 1, Player: game.P2, Dir: game.Up, Down: true},
			}
		},
	},
}

func findScenario(name string) (scenario, bool) {
	for _, s := range scenarios {
		if s.name == name {
			return s, true
		}
	}
	return scenario{}, false
}

func scenarioNames() string {
	names := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		names = append(names, s.name)
	}
	return strings.Join(names, ", ")
}

func main() {
	var runs int
	var ticks int
	var name string
	var verbose bool

	flag.IntVar(&runs, "runs", 3, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 600, "max ticks per run")
	flag.StringVar(&name, "scenario", "flag-race", "scenario name")
	flag.BoolVar(&verbose, "verbose", false, "print the per-tick sim log of the first run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}
	sc, ok := findScenario(name)
	if !ok {
		fmt.Printf("error: unsupported scenario %q (supported: %s)\n", name, scenarioNames())
		os.Exit(2)
	}

	fmt.Printf("=== Headless Race Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d\n%s\n\n", sc.name, runs, ticks, sc.about)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		rs, log, err := runScenario(i+1, sc, ticks, verbose && i == 0)
		if err != nil {
			logrus.WithError(err).WithField("run", i+1).Fatal("run failed")
		}
		if log != "" {
			fmt.Print(log)
			fmt.Println()
		}
		all = append(all, rs)
		printRun(rs)
	}
	printAggregate(all)
}

func runScenario(runIndex int, sc scenario, ticks int, verbose bool) (runStats, string, error) {
	ms, err := game.NewMatchSim(
		game.WithScript(sc.script()...),
		game.WithVerbose(verbose),
	)
	if err != nil {
		return runStats{}, "", err
	}
	defer ms.Close()

	rs := runStats{
		runIndex:     runIndex,
		captureTick:  -1,
		steps:        map[string]int{},
		blockedSteps: map[string]int{},
		landing:      map[string]string{},
	}
	for i := 0; i < ticks; i++ {
		if err := ms.Step(); err != nil {
			return rs, "", err
		}
		trails, total := countObjects(ms.Match.Objects())
		rs.peakTrails = max(rs.peakTrails, trails)
		rs.peakObjects = max(rs.peakObjects, total)
		for _, p := range ms.Match.Players() {
			if blockedThisTick(p) {
				rs.blockedSteps[p.ID().String()]++
			}
		}
	}
	rs.finalTick = ms.Match.Tick()

	events := ms.SimLog.Events()
	rs.captureTick = firstTick(events, "capture", "flag_taken", "")
	if rs.captureTick >= 0 {
		rs.captor = firstPlayer(events, "capture", "flag_taken")
		rs.burstsSpawned = ms.SimLog.Count("capture", "flag_taken", "")
	}
	for _, p := range ms.Match.Players() {
		label := p.ID().String()
		rs.steps[label] = ms.SimLog.Count("move", "step_landed", label)
		x, y := p.Position()
		rs.landing[label] = fmt.Sprintf("(%d,%d)", x, y)
	}

	var log strings.Builder
	if verbose {
		ms.SimLog.WriteTo(&log)
	}
	return rs, log.String(), nil
}

// blockedThisTick reports whether the player's last step closed against a
// wall. Blocked flags are only refreshed when a step starts, so a resting
// player whose direction is flagged spent the tick on a blocked step.
func blockedThisTick(p *game.Player) bool {
	d := p.Direction()
	return !p.Stepping() && d != game.Idle && p.Blocked(d)
}

func countObjects(objs []game.Object) (trails, total int) {
	for _, o := range objs {
		if o.Kind() == game.KindTrail {
			trails++
		}
	}
	return trails, len(objs)
}

func firstTick(events []game.SimEvent, kind, name, contains string) int {
	for _, e := range events {
		if e.Kind != kind || e.Name != name {
			continue
		}
		if contains == "" || strings.Contains(e.Detail, contains) {
			return e.Tick
		}
	}
	return -1
}

func firstPlayer(events []game.SimEvent, kind, name string) string {
	for _, e := range events {
		if e.Kind == kind && e.Name == name {
			return e.Player
		}
	}
	return ""
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d ---\n", rs.runIndex)
	if rs.captureTick >= 0 {
		fmt.Printf("capture: captor=%s tick=%d (%.2fs)\n", rs.captor, rs.captureTick, float64(rs.captureTick)/game.TPS)
	} else {
		fmt.Printf("capture: none within %d ticks\n", rs.finalTick)
	}
	fmt.Printf("steps: %s\n", formatCounts(rs.steps))
	fmt.Printf("blocked_steps: %s\n", formatCounts(rs.blockedSteps))
	fmt.Printf("final_positions: %s\n", formatLabels(rs.landing))
	fmt.Printf("objects: peak_trails=%d peak_total=%d bursts=%d\n\n", rs.peakTrails, rs.peakObjects, rs.burstsSpawned)
}

func printAggregate(all []runStats) {
	wins := map[string]int{}
	var captureTicks []int
	for _, rs := range all {
		if rs.captor != "" {
			wins[rs.captor]++
			captureTicks = append(captureTicks, rs.captureTick)
		}
	}
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d captures=%d\n", len(all), len(captureTicks))
	fmt.Printf("wins: %s\n", formatCounts(wins))
	fmt.Printf("avg_capture_tick=%s\n", avgTickString(captureTicks))
	fmt.Printf("deterministic=%t\n", deterministic(all))
}

// deterministic reports whether every run produced the same outcome. Runs
// share no state, so anything else is a bug.
func deterministic(all []runStats) bool {
	for _, rs := range all[1:] {
		a := all[0]
		if rs.captor != a.captor || rs.captureTick != a.captureTick || rs.peakTrails != a.peakTrails {
			return false
		}
		if formatCounts(rs.steps) != formatCounts(a.steps) {
			return false
		}
	}
	return true
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func formatCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}

func formatLabels(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+m[k])
	}
	return strings.Join(parts, " ")
}
