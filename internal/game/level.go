package game

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ErrBadPosition is returned when a spawn or flag point is off-grid, not tile
// aligned, or inside a wall.
var ErrBadPosition = errors.New("bad level position")

//go:embed levels/1.txt
var level1 string

// LevelDef is the static description of a level. Points are in pixels.
type LevelDef struct {
	Name       string
	Source     string
	Background color.RGBA
	Spawns     [2]image.Point
	Flags      []image.Point
}

// DefaultLevel returns the built-in arena.
func DefaultLevel() LevelDef {
	return LevelDef{
		Name:       "arena-1",
		Source:     level1,
		Background: ColorBlack,
		Spawns:     [2]image.Point{{X: 48, Y: 48}, {X: 576, Y: 48}},
		Flags:      []image.Point{{X: 320, Y: 320}},
	}
}

// Level is a loaded level. It is not modified after NewLevel.
type Level struct {
	Name       string
	Grid       *TileGrid
	Background color.RGBA
	Spawns     [2]image.Point
	Flags      []image.Point

	tileset *ebiten.Image
	tiles   map[int]*ebiten.Image // sub-image cache keyed by sprite index
}

// NewLevel parses the definition against a tileset holding spriteCells cells.
// The tileset may be nil for headless use.
func NewLevel(def LevelDef, tileset *ebiten.Image, spriteCells int) (*Level, error) {
	grid, err := ParseTileGrid(def.Source, TilesX, TilesY, spriteCells)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", def.Name, err)
	}
	lv := &Level{
		Name:       def.Name,
		Grid:       grid,
		Background: def.Background,
		Spawns:     def.Spawns,
		Flags:      append([]image.Point(nil), def.Flags...),
		tileset:    tileset,
		tiles:      make(map[int]*ebiten.Image),
	}
	for i, p := range lv.Spawns {
		if err := lv.checkPoint(p); err != nil {
			return nil, fmt.Errorf("level %s: spawn P%d: %w", def.Name, i+1, err)
		}
	}
	for i, p := range lv.Flags {
		if err := lv.checkPoint(p); err != nil {
			return nil, fmt.Errorf("level %s: flag %d: %w", def.Name, i, err)
		}
	}
	return lv, nil
}

func (lv *Level) checkPoint(p image.Point) error {
	if p.X%TileSize != 0 || p.Y%TileSize != 0 {
		return fmt.Errorf("%w: (%d,%d) is not tile aligned", ErrBadPosition, p.X, p.Y)
	}
	col, row := p.X/TileSize, p.Y/TileSize
	if !lv.Grid.InBounds(col, row) {
		return fmt.Errorf("%w: (%d,%d) is off the board", ErrBadPosition, p.X, p.Y)
	}
	if lv.Grid.IsBlocked(col, row) {
		return fmt.Errorf("%w: (%d,%d) is inside a wall", ErrBadPosition, p.X, p.Y)
	}
	return nil
}

func (lv *Level) tile(idx int) *ebiten.Image {
	if img, ok := lv.tiles[idx]; ok {
		return img
	}
	sx, sy := tileSheetCell(idx)
	r := image.Rect(sx*TileSize, sy*TileSize, (sx+1)*TileSize, (sy+1)*TileSize)
	img := lv.tileset.SubImage(r).(*ebiten.Image)
	lv.tiles[idx] = img
	return img
}

// Draw paints the background and every wall tile.
func (lv *Level) Draw(dst *ebiten.Image) {
	dst.Fill(lv.Background)
	if lv.tileset == nil {
		return
	}
	for col := 0; col < lv.Grid.Cols; col++ {
		for row := 0; row < lv.Grid.Rows; row++ {
			idx, ok := lv.Grid.Wall(col, row)
			if !ok {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(col*TileSize), float64(row*TileSize))
			dst.DrawImage(lv.tile(idx), op)
		}
	}
}

// drawGrid draws the debug tile lines.
func drawGrid(dst *ebiten.Image) {
	lineCol := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	for x := TileSize; x < ScreenWidth; x += TileSize {
		vector.StrokeLine(dst, float32(x), 0, float32(x), ScreenHeight, 1, lineCol, false)
	}
	for y := TileSize; y < ScreenHeight; y += TileSize {
		vector.StrokeLine(dst, 0, float32(y), ScreenWidth, float32(y), 1, lineCol, false)
	}
}
