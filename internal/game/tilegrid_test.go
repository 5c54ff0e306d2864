package game

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTileGrid_ColumnsOuterIndexing(t *testing.T) {
	// 3 cols x 2 rows: row 0 = "a b", row 1 = " c "
	tg, err := ParseTileGrid("a b\n c ", 3, 2, 25)
	if err != nil {
		t.Fatalf("ParseTileGrid: %v", err)
	}
	cases := []struct {
		col, row int
		idx      int
		wall     bool
	}{
		{0, 0, 0, true},
		{1, 0, 0, false},
		{2, 0, 1, true},
		{0, 1, 0, false},
		{1, 1, 2, true},
		{2, 1, 0, false},
	}
	for _, tc := range cases {
		idx, ok := tg.Wall(tc.col, tc.row)
		if ok != tc.wall || (ok && idx != tc.idx) {
			t.Errorf("Wall(%d,%d) = (%d,%v), want (%d,%v)", tc.col, tc.row, idx, ok, tc.idx, tc.wall)
		}
		if tg.IsBlocked(tc.col, tc.row) != tc.wall {
			t.Errorf("IsBlocked(%d,%d) = %v, want %v", tc.col, tc.row, !tc.wall, tc.wall)
		}
	}
	if tg.WallCount() != 3 {
		t.Fatalf("WallCount = %d, want 3", tg.WallCount())
	}
}

func TestParseTileGrid_StripsCRLF(t *testing.T) {
	tg, err := ParseTileGrid("ab\r\n  \r\n", 2, 2, 25)
	if err != nil {
		t.Fatalf("ParseTileGrid: %v", err)
	}
	if !tg.IsBlocked(1, 0) || tg.IsBlocked(1, 1) {
		t.Fatal("CRLF level parsed into the wrong cells")
	}
}

func TestParseTileGrid_SizeMismatch(t *testing.T) {
	for _, src := range []string{"", "abc", strings.Repeat(" ", 5)} {
		if _, err := ParseTileGrid(src, 2, 2, 25); !errors.Is(err, ErrLevelSize) {
			t.Errorf("ParseTileGrid(%q) err=%v, want ErrLevelSize", src, err)
		}
	}
	if _, err := ParseTileGrid("", 0, 0, 25); !errors.Is(err, ErrLevelSize) {
		t.Errorf("zero-size grid err=%v, want ErrLevelSize", err)
	}
}

func TestParseTileGrid_TileIndexRange(t *testing.T) {
	// 'y' is index 24, the last cell of a 5x5 sheet.
	if _, err := ParseTileGrid("y ", 2, 1, 25); err != nil {
		t.Fatalf("last cell rejected: %v", err)
	}
	for _, src := range []string{"z ", "A ", "# "} {
		if _, err := ParseTileGrid(src, 2, 1, 25); !errors.Is(err, ErrTileIndex) {
			t.Errorf("ParseTileGrid(%q) err=%v, want ErrTileIndex", src, err)
		}
	}
}

func TestTileGrid_OffBoardIsBlocked(t *testing.T) {
	tg, err := ParseTileGrid("    ", 2, 2, 25)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {99, 99}} {
		if tg.InBounds(c[0], c[1]) {
			t.Errorf("InBounds(%d,%d) = true", c[0], c[1])
		}
		if !tg.IsBlocked(c[0], c[1]) {
			t.Errorf("IsBlocked(%d,%d) = false off the board", c[0], c[1])
		}
		if _, ok := tg.Wall(c[0], c[1]); ok {
			t.Errorf("Wall(%d,%d) reported a sprite off the board", c[0], c[1])
		}
	}
}

func TestTileSheetCell(t *testing.T) {
	cases := []struct{ idx, col, row int }{
		{0, 0, 0}, {4, 4, 0}, {5, 0, 1}, {24, 4, 4},
	}
	for _, tc := range cases {
		c, r := tileSheetCell(tc.idx)
		if c != tc.col || r != tc.row {
			t.Errorf("tileSheetCell(%d) = (%d,%d), want (%d,%d)", tc.idx, c, r, tc.col, tc.row)
		}
	}
	if n := tilesetCellCount(5 * TileSize); n != 25 {
		t.Errorf("tilesetCellCount = %d, want 25", n)
	}
}

func TestBuiltInLevelParses(t *testing.T) {
	lv, err := NewLevel(DefaultLevel(), nil, tilesetCellCount(defaultTilesetRows*TileSize))
	if err != nil {
		t.Fatalf("NewLevel: %v", err)
	}
	g := lv.Grid
	if g.Cols != TilesX || g.Rows != TilesY {
		t.Fatalf("grid %dx%d, want %dx%d", g.Cols, g.Rows, TilesX, TilesY)
	}
	for col := 0; col < g.Cols; col++ {
		if !g.IsBlocked(col, 0) || !g.IsBlocked(col, g.Rows-1) {
			t.Fatalf("border missing at column %d", col)
		}
	}
	for row := 0; row < g.Rows; row++ {
		if !g.IsBlocked(0, row) || !g.IsBlocked(g.Cols-1, row) {
			t.Fatalf("border missing at row %d", row)
		}
	}
}
