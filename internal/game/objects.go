package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ObjectKind tags a transient object.
type ObjectKind int

const (
	KindTrail ObjectKind = iota
	KindFlag
	KindBurst
	objectKindCount
)

func (k ObjectKind) String() string {
	switch k {
	case KindTrail:
		return "trail"
	case KindFlag:
		return "flag"
	case KindBurst:
		return "burst"
	default:
		return "unknown"
	}
}

// EventKind identifies a match event.
type EventKind int

const (
	EventCapture EventKind = iota
)

// Event is raised by objects during an update pass and handled by the match
// once the pass is over.
type Event struct {
	Kind   EventKind
	Tick   int
	Player *Player
	X, Y   int
}

// Frame is what an object sees when it updates.
type Frame struct {
	Tick    int
	Players []*Player
	events  []Event
}

// Emit queues an event for the match.
func (f *Frame) Emit(e Event) {
	e.Tick = f.Tick
	f.events = append(f.events, e)
}

// Object is a time-limited thing living in the match. Kinds that do not care
// about players ignore the frame.
type Object interface {
	Kind() ObjectKind
	Update(f *Frame)
	Draw(dst *ebiten.Image)
	Done() bool
}

// TrailSegment is the fading tile left behind a player.
type TrailSegment struct {
	x, y, w, h int
	color      color.RGBA
	alpha      float64
	fade       float64
	minAlpha   float64
	done       bool
}

// NewTrailSegment creates a tile-sized trail at (x,y) using the config's fade.
func NewTrailSegment(x, y int, c color.RGBA, cfg Config) *TrailSegment {
	return &TrailSegment{
		x: x, y: y, w: TileSize, h: TileSize,
		color:    c,
		alpha:    cfg.TrailStartAlpha,
		fade:     cfg.TrailFade,
		minAlpha: cfg.TrailMinAlpha,
	}
}

func (t *TrailSegment) Kind() ObjectKind { return KindTrail }
func (t *TrailSegment) Done() bool { return t.done }
func (t *TrailSegment) Alpha() float64 { return t.alpha }
func (t *TrailSegment) Position() (int, int) { return t.x, t.y }

// Update fades the segment, marking it done once it reaches the floor.
func (t *TrailSegment) Update(*Frame) {
	if t.alpha <= t.minAlpha {
		t.done = true
		return
	}
	t.alpha -= t.fade
}

func (t *TrailSegment) Draw(dst *ebiten.Image) {
	vector.FillRect(dst, float32(t.x), float32(t.y), float32(t.w), float32(t.h), scaleAlpha(t.color, t.alpha), false)
}

// PickupFlag is taken by the first player to stand exactly on it.
type PickupFlag struct {
	x, y   int
	sprite *ebiten.Image
	effect CaptureEffect
	done   bool
	captor *Player
}

// NewPickupFlag places a flag at a tile-aligned pixel position.
func NewPickupFlag(x, y int, sprite *ebiten.Image, effect CaptureEffect) *PickupFlag {
	return &PickupFlag{x: x, y: y, sprite: sprite, effect: effect}
}

func (f *PickupFlag) Kind() ObjectKind { return KindFlag }
func (f *PickupFlag) Done() bool { return f.done }
func (f *PickupFlag) Captor() *Player { return f.captor }
func (f *PickupFlag) Position() (int, int) { return f.x, f.y }

// Update checks players in order; the first one on the flag takes it.
func (f *PickupFlag) Update(fr *Frame) {
	if f.done {
		return
	}
	for _, p := range fr.Players {
		if p.x == f.x && p.y == f.y {
			p.capture(f.effect)
			f.captor = p
			f.done = true
			fr.Emit(Event{Kind: EventCapture, Player: p, X: f.x, Y: f.y})
			break
		}
	}
}

func (f *PickupFlag) Draw(dst *ebiten.Image) {
	if f.sprite == nil {
		vector.StrokeRect(dst, float32(f.x)+1, float32(f.y)+1, TileSize-2, TileSize-2, 2, ColorWhite, false)
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(f.x), float64(f.y))
	dst.DrawImage(f.sprite, op)
}

// burstTicks is how long a capture ring animates (~0.4 s).
const burstTicks = 24

// CaptureBurst is the ring that expands out of a captured flag.
type CaptureBurst struct {
	cx, cy float32
	color  color.RGBA
	radius *gween.Tween
	fade   *gween.Tween
	r      float32
	a      float32
	done   bool
}

// NewCaptureBurst centres a burst on the tile at (x,y).
func NewCaptureBurst(x, y int, c color.RGBA) *CaptureBurst {
	return &CaptureBurst{
		cx:     float32(x) + TileSize/2,
		cy:     float32(y) + TileSize/2,
		color:  c,
		radius: gween.New(TileSize/2, TileSize*3, burstTicks, ease.OutQuad),
		fade:   gween.New(1, 0, burstTicks, ease.InQuad),
		r:      TileSize / 2,
		a:      1,
	}
}

func (b *CaptureBurst) Kind() ObjectKind { return KindBurst }
func (b *CaptureBurst) Done() bool { return b.done }

// Update advances both tweens by one tick.
func (b *CaptureBurst) Update(*Frame) {
	if b.done {
		return
	}
	var finished bool
	b.r, _ = b.radius.Update(1)
	b.a, finished = b.fade.Update(1)
	if finished {
		b.done = true
	}
}

func (b *CaptureBurst) Draw(dst *ebiten.Image) {
	vector.StrokeCircle(dst, b.cx, b.cy, b.r, 2, scaleAlpha(b.color, float64(b.a)), true)
}

// scaleAlpha returns c with its opacity multiplied by a (premultiplied).
func scaleAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
