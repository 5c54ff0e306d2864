package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface geometry. The canvas is fixed; the window scales it.
const (
	ScreenWidth  = 640
	ScreenHeight = 640
	TileSize     = 16
	TilesX       = ScreenWidth / TileSize
	TilesY       = ScreenHeight / TileSize

	// TPS is the fixed update rate handed to ebiten.
	TPS = 60

	// tilesetColumns is the width of the wall sprite sheet in cells.
	tilesetColumns = 5
)

// ErrConfig is returned by Config.Validate.
var ErrConfig = errors.New("invalid config")

// Palette. Names follow the colours the cubes are drawn in.
var (
	ColorCyan  = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	ColorPink  = color.RGBA{R: 255, G: 192, B: 203, A: 255}
	ColorLime  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	ColorWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorBlack = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// CubeID indexes the cube sprite set.
type CubeID int

const (
	CubeBlue CubeID = iota
	CubePink
	CubeGreen
	cubeCount
)

// cubeColors is the display colour paired with each cube sprite.
var cubeColors = [cubeCount]color.RGBA{
	CubeBlue:  ColorCyan,
	CubePink:  ColorPink,
	CubeGreen: ColorLime,
}

// CaptureEffect is applied to a player the tick it takes a flag.
type CaptureEffect struct {
	Color  color.RGBA
	Speed  int           // px per tick after capture; 0 keeps the current speed
	Sprite *ebiten.Image // replaces the cube sprite when set
}

// Config holds the tunables of a match.
type Config struct {
	Speed   int // px per tick while mid-step
	Capture CaptureEffect

	TrailStartAlpha float64
	TrailFade       float64 // opacity lost per tick
	TrailMinAlpha   float64 // trail is done at or below this

	PlayerCubes [2]CubeID
	MatchTrack  string // music name played while a match is active
	ShowGrid    bool   // debug tile grid lines
}

// DefaultConfig returns the canonical rule set.
func DefaultConfig() Config {
	return Config{
		Speed: 4,
		Capture: CaptureEffect{
			Color: ColorWhite,
			Speed: 2,
		},
		TrailStartAlpha: 0.90,
		TrailFade:       0.03,
		TrailMinAlpha:   0.10,
		PlayerCubes:     [2]CubeID{CubeBlue, CubeGreen},
		MatchTrack:      "match",
	}
}

// Validate reports the first setting that would break tile alignment or the
// trail lifecycle.
func (c Config) Validate() error {
	if c.Speed <= 0 || TileSize%c.Speed != 0 {
		return fmt.Errorf("%w: speed %d must divide tile size %d", ErrConfig, c.Speed, TileSize)
	}
	if c.Capture.Speed < 0 || (c.Capture.Speed > 0 && TileSize%c.Capture.Speed != 0) {
		return fmt.Errorf("%w: capture speed %d must divide tile size %d", ErrConfig, c.Capture.Speed, TileSize)
	}
	if c.TrailFade <= 0 {
		return fmt.Errorf("%w: trail fade must be positive", ErrConfig)
	}
	if c.TrailStartAlpha > 1 || c.TrailMinAlpha < 0 || c.TrailMinAlpha >= c.TrailStartAlpha {
		return fmt.Errorf("%w: trail alpha range [%.2f, %.2f]", ErrConfig, c.TrailMinAlpha, c.TrailStartAlpha)
	}
	for i, id := range c.PlayerCubes {
		if id < 0 || id >= cubeCount {
			return fmt.Errorf("%w: player %d cube %d", ErrConfig, i+1, id)
		}
	}
	return nil
}
