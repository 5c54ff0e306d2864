package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// errNoClipboard is returned on systems without a clipboard utility.
var errNoClipboard = errors.New("clipboard unsupported on this system")

func writeClipboard(text string) error {
	if clipboard.Unsupported {
		return errNoClipboard
	}
	if text == "" {
		text = " "
	}
	return clipboard.WriteAll(text)
}

// DebugReport describes the match at the current tick: both players' movement
// state, the live objects, and the recent match log.
func (m *Match) DebugReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Cube Trails debug report ---\n")
	fmt.Fprintf(&b, "match=%s level=%s tick=%d elapsed=%s\n\n", m.id, m.level.Name, m.tick, formatClock(m.elapsed))

	for _, p := range m.players {
		tx, ty := p.Tile()
		fmt.Fprintf(&b, "== %s ==\n", p.id)
		fmt.Fprintf(&b, "pos=(%d,%d) tile=(%d,%d) dir=%s prev=%s step_ticks=%d speed=%d\n",
			p.x, p.y, tx, ty, p.state, p.prev, p.StepTicksRemaining(), p.speed)
		fmt.Fprintf(&b, "input=%v blocked[l r u d]=[%t %t %t %t]\n",
			p.Input.Snapshot(), p.blocked[Left], p.blocked[Right], p.blocked[Up], p.blocked[Down])
		fmt.Fprintf(&b, "color=#%02x%02x%02x captures=%d\n\n", p.cube.Color.R, p.cube.Color.G, p.cube.Color.B, p.captures)
	}

	var counts [objectKindCount]int
	for _, o := range m.objects {
		counts[o.Kind()]++
	}
	b.WriteString("objects:")
	for k := ObjectKind(0); k < objectKindCount; k++ {
		fmt.Fprintf(&b, " %s=%d", k, counts[k])
	}
	b.WriteString("\n\nlog:\n")
	for _, e := range m.events.Recent() {
		fmt.Fprintf(&b, "  %5d [%s] %s\n", e.Tick, e.Label, e.Message)
	}
	return b.String()
}
