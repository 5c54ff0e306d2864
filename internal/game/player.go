package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PlayerID identifies a seat.
type PlayerID int

const (
	P1 PlayerID = iota
	P2
)

func (id PlayerID) String() string {
	return fmt.Sprintf("P%d", int(id)+1)
}

// Cube is the visual of a player: a sprite and the colour its trail is
// painted in.
type Cube struct {
	Sprite *ebiten.Image
	Color  color.RGBA
}

// Player is one controllable cube.
type Player struct {
	id    PlayerID
	x, y  int // pixels; tile aligned whenever stepLeft == 0
	Input InputStack
	cube  Cube
	speed int // px per tick while mid-step

	state    Direction // direction of the current step
	prev     Direction // direction committed on the last moving tick
	stepLeft int       // pixels left in the current step
	blocked  [directionCount]bool

	captures int
}

// NewPlayer places a player at a tile-aligned pixel position.
func NewPlayer(id PlayerID, cube Cube, x, y, speed int) *Player {
	return &Player{
		id:    id,
		x:     x,
		y:     y,
		cube:  cube,
		speed: speed,
	}
}

func (p *Player) ID() PlayerID { return p.id }
func (p *Player) Position() (int, int) { return p.x, p.y }
func (p *Player) Tile() (int, int) { return p.x / TileSize, p.y / TileSize }
func (p *Player) Cube() Cube { return p.cube }
func (p *Player) Speed() int { return p.speed }
func (p *Player) Direction() Direction { return p.state }
func (p *Player) Captures() int { return p.captures }
func (p *Player) Blocked(d Direction) bool { return p.blocked[d] }

// Stepping reports whether the player is between tiles.
func (p *Player) Stepping() bool { return p.stepLeft > 0 }

// StepTicksRemaining is the number of ticks until the current step lands.
func (p *Player) StepTicksRemaining() int {
	if p.speed <= 0 {
		return 0
	}
	return p.stepLeft / p.speed
}

// resolveIntent picks the direction of the next step from the input stack.
// When the top repeats the last step and another key is still held, the
// older key wins this step so two held keys alternate axes.
func (p *Player) resolveIntent() Direction {
	d := p.Input.Top()
	if d == p.prev && p.Input.Len() >= 2 {
		d = p.Input.Second()
	}
	return d
}

// checkCollision refreshes the blocked flags from the player's tile.
// Horizontal board edges are checked explicitly; the grid reports anything
// off the board as blocked for the vertical axis.
func (p *Player) checkCollision(grid *TileGrid) {
	tx, ty := p.Tile()
	p.blocked[Left] = grid.IsBlocked(tx-1, ty) || p.x == 0
	p.blocked[Right] = grid.IsBlocked(tx+1, ty) || p.x == (grid.Cols-1)*TileSize
	p.blocked[Up] = grid.IsBlocked(tx, ty-1)
	p.blocked[Down] = grid.IsBlocked(tx, ty+1)
}

// Update advances the movement state machine by one tick.
func (p *Player) Update(grid *TileGrid) {
	if p.stepLeft == 0 {
		p.state = p.resolveIntent()
		if p.state != Idle {
			p.stepLeft = TileSize
			p.checkCollision(grid)
		}
	}

	if p.stepLeft > 0 {
		if p.blocked[p.state] {
			// Close the step this tick without entering the wall.
			p.stepLeft = p.speed
		} else {
			dx, dy := p.state.delta()
			p.x += dx * p.speed
			p.y += dy * p.speed
		}
		p.stepLeft -= p.speed
		if p.stepLeft < 0 {
			p.stepLeft = 0
		}
		p.prev = p.state
	}
}

// capture applies a flag's effect.
func (p *Player) capture(fx CaptureEffect) {
	p.captures++
	p.cube.Color = fx.Color
	if fx.Sprite != nil {
		p.cube.Sprite = fx.Sprite
	}
	if fx.Speed > 0 {
		p.speed = fx.Speed
	}
}

// Draw paints the cube sprite, or a filled tile when no sprite is loaded.
func (p *Player) Draw(dst *ebiten.Image) {
	if p.cube.Sprite == nil {
		vector.FillRect(dst, float32(p.x), float32(p.y), TileSize, TileSize, p.cube.Color, false)
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(p.x), float64(p.y))
	dst.DrawImage(p.cube.Sprite, op)
}
