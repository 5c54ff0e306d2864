package game

import (
	"fmt"
	"image/color"
	_ "image/png" // sprite files are PNG
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Sprite paths inside an asset directory.
var (
	cubeSpritePaths = [cubeCount]string{
		CubeBlue:  "img/cubes/blue.png",
		CubePink:  "img/cubes/pink.png",
		CubeGreen: "img/cubes/green.png",
	}
	tilesetPath = "img/lvls/1.png"
	flagPath    = "img/objs/flag.png"
)

// defaultTilesetRows is the height in cells of the generated sheet.
const defaultTilesetRows = 5

// Sprites is every image a match draws.
type Sprites struct {
	Cubes    [cubeCount]*ebiten.Image
	Captured *ebiten.Image // white cube worn after a capture; generated even for asset sets
	Tileset  *ebiten.Image
	Flag     *ebiten.Image
}

// LoadSprites reads the sprite set from fsys. Any missing or undecodable file
// is an error; the game cannot start without its sprites.
func LoadSprites(fsys fs.FS) (*Sprites, error) {
	s := &Sprites{}
	load := func(path string) (*ebiten.Image, error) {
		img, _, err := ebitenutil.NewImageFromFileSystem(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("load sprite %s: %w", path, err)
		}
		return img, nil
	}
	var err error
	for id, path := range cubeSpritePaths {
		if s.Cubes[id], err = load(path); err != nil {
			return nil, err
		}
	}
	if s.Tileset, err = load(tilesetPath); err != nil {
		return nil, err
	}
	if s.Tileset.Bounds().Dx() < tilesetColumns*TileSize {
		return nil, fmt.Errorf("load sprite %s: sheet is %dpx wide, want at least %d",
			tilesetPath, s.Tileset.Bounds().Dx(), tilesetColumns*TileSize)
	}
	if s.Flag, err = load(flagPath); err != nil {
		return nil, err
	}
	s.Captured = cubeSprite(ColorWhite)
	return s, nil
}

// TilesetCells is the number of wall sprites a level may index.
func (s *Sprites) TilesetCells() int {
	if s.Tileset == nil {
		return 0
	}
	return tilesetCellCount(s.Tileset.Bounds().Dy())
}

func tilesetCellCount(sheetHeight int) int {
	return tilesetColumns * (sheetHeight / TileSize)
}

// Cube pairs a cube sprite with its display colour.
func (s *Sprites) Cube(id CubeID) Cube {
	return Cube{Sprite: s.Cubes[id], Color: cubeColors[id]}
}

// GenerateSprites draws a plain sprite set so the game runs without an asset
// directory.
func GenerateSprites() *Sprites {
	s := &Sprites{}
	for id := CubeID(0); id < cubeCount; id++ {
		s.Cubes[id] = cubeSprite(cubeColors[id])
	}
	s.Captured = cubeSprite(ColorWhite)

	s.Tileset = ebiten.NewImage(tilesetColumns*TileSize, defaultTilesetRows*TileSize)
	for i := 0; i < tilesetCellCount(defaultTilesetRows*TileSize); i++ {
		sx, sy := tileSheetCell(i)
		x, y := float32(sx*TileSize), float32(sy*TileSize)
		shade := uint8(70 + (i*23)%110)
		face := color.RGBA{R: shade, G: shade, B: shade + 20, A: 255}
		edge := color.RGBA{R: shade / 2, G: shade / 2, B: shade/2 + 10, A: 255}
		vector.FillRect(s.Tileset, x, y, TileSize, TileSize, face, false)
		vector.StrokeRect(s.Tileset, x+0.5, y+0.5, TileSize-1, TileSize-1, 1, edge, false)
	}

	s.Flag = ebiten.NewImage(TileSize, TileSize)
	vector.FillRect(s.Flag, 3, 2, 2, 12, ColorWhite, false)
	vector.FillRect(s.Flag, 5, 2, 8, 6, color.RGBA{R: 230, G: 40, B: 40, A: 255}, false)
	return s
}

func cubeSprite(c color.RGBA) *ebiten.Image {
	img := ebiten.NewImage(TileSize, TileSize)
	img.Fill(c)
	edge := color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 255}
	vector.StrokeRect(img, 0.5, 0.5, TileSize-1, TileSize-1, 1, edge, false)
	return img
}
