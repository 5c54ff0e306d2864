package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	matchLogMaxEntries = 32
	matchLogLineHeight = 14
	matchLogVisible    = 8
)

// MatchLogEntry is a single line in the match log.
type MatchLogEntry struct {
	Tick    int
	Label   string // "P1", "P2", or "--" for match-wide events
	Message string
}

// MatchLog is a ring buffer of match events rendered on the canvas.
type MatchLog struct {
	entries []MatchLogEntry
	head    int
	count   int
}

// NewMatchLog creates a log with a fixed capacity.
func NewMatchLog() *MatchLog {
	return &MatchLog{entries: make([]MatchLogEntry, matchLogMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (ml *MatchLog) Add(tick int, label, msg string) {
	ml.entries[ml.head] = MatchLogEntry{Tick: tick, Label: label, Message: msg}
	ml.head = (ml.head + 1) % matchLogMaxEntries
	if ml.count < matchLogMaxEntries {
		ml.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (ml *MatchLog) Recent() []MatchLogEntry {
	result := make([]MatchLogEntry, ml.count)
	for i := 0; i < ml.count; i++ {
		idx := (ml.head - ml.count + i + matchLogMaxEntries) % matchLogMaxEntries
		result[i] = ml.entries[idx]
	}
	return result
}

// Draw renders the newest entries in a panel along the bottom of the canvas.
func (ml *MatchLog) Draw(dst *ebiten.Image) {
	entries := ml.Recent()
	if len(entries) > matchLogVisible {
		entries = entries[len(entries)-matchLogVisible:]
	}
	panelH := matchLogVisible*matchLogLineHeight + 6
	top := ScreenHeight - panelH
	vector.FillRect(dst, 0, float32(top), ScreenWidth, float32(panelH), color.RGBA{R: 8, G: 8, B: 12, A: 200}, false)
	vector.StrokeLine(dst, 0, float32(top), ScreenWidth, float32(top), 1, color.RGBA{R: 60, G: 60, B: 80, A: 255}, false)

	y := top + 3
	for _, e := range entries {
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%5d [%s] %s", e.Tick, e.Label, e.Message), 6, y)
		y += matchLogLineHeight
	}
}
