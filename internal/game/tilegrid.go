package game

import (
	"errors"
	"fmt"
	"strings"
)

// Level parse errors.
var (
	ErrLevelSize = errors.New("level size mismatch")
	ErrTileIndex = errors.New("tile index out of range")
)

// noWall marks an empty cell.
const noWall = -1

// TileGrid is the static collision surface of a level.
// Cells are stored columns-outer: cells[col][row].
type TileGrid struct {
	Cols  int
	Rows  int
	cells [][]int // sprite index, or noWall
}

// ParseTileGrid builds a grid from a level string. The character for tile
// (col,row) sits at row*cols+col once line breaks are stripped. A space is
// empty; anything else is a wall whose sprite index is ch-'a', which must fall
// inside [0, spriteCells).
func ParseTileGrid(src string, cols, rows, spriteCells int) (*TileGrid, error) {
	src = strings.NewReplacer("\r", "", "\n", "").Replace(src)
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d grid", ErrLevelSize, cols, rows)
	}
	if len(src) != cols*rows {
		return nil, fmt.Errorf("%w: got %d tiles, want %d (%dx%d)", ErrLevelSize, len(src), cols*rows, cols, rows)
	}

	tg := &TileGrid{Cols: cols, Rows: rows, cells: make([][]int, cols)}
	for col := 0; col < cols; col++ {
		column := make([]int, rows)
		for row := 0; row < rows; row++ {
			ch := src[row*cols+col]
			if ch == ' ' {
				column[row] = noWall
				continue
			}
			idx := int(ch) - 'a'
			if idx < 0 || idx >= spriteCells {
				return nil, fmt.Errorf("%w: %q at col %d row %d (index %d, sheet has %d)",
					ErrTileIndex, ch, col, row, idx, spriteCells)
			}
			column[row] = idx
		}
		tg.cells[col] = column
	}
	return tg, nil
}

// InBounds reports whether (col,row) is a tile of the grid.
func (tg *TileGrid) InBounds(col, row int) bool {
	return col >= 0 && col < tg.Cols && row >= 0 && row < tg.Rows
}

// IsBlocked reports whether a tile holds a wall. Anything off the board is
// blocked.
func (tg *TileGrid) IsBlocked(col, row int) bool {
	if !tg.InBounds(col, row) {
		return true
	}
	return tg.cells[col][row] != noWall
}

// Wall returns the sprite index of the wall at (col,row).
func (tg *TileGrid) Wall(col, row int) (int, bool) {
	if !tg.InBounds(col, row) || tg.cells[col][row] == noWall {
		return 0, false
	}
	return tg.cells[col][row], true
}

// WallCount returns the number of wall tiles.
func (tg *TileGrid) WallCount() int {
	n := 0
	for col := range tg.cells {
		for _, c := range tg.cells[col] {
			if c != noWall {
				n++
			}
		}
	}
	return n
}

// tileSheetCell returns the sprite sheet cell (column, row) for a wall index.
func tileSheetCell(idx int) (int, int) {
	return idx % tilesetColumns, idx / tilesetColumns
}
