package game

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"
)

// hudFontSize is the HUD text height in canvas pixels.
const hudFontSize = 10

// NewHUDFace loads the embedded Go Mono face used for the clock and labels.
func NewHUDFace() (*text.GoTextFace, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("hud font: %w", err)
	}
	return &text.GoTextFace{Source: src, Size: hudFontSize}, nil
}

// formatClock renders seconds as m:ss.
func formatClock(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func (m *Match) drawHUD(dst *ebiten.Image) {
	clock := formatClock(m.elapsed)
	if m.face == nil {
		ebitenutil.DebugPrintAt(dst, clock, ScreenWidth/2-12, 0)
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(ScreenWidth/2, 2)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(ColorWhite)
	text.Draw(dst, clock, m.face, op)

	// Player badges in the top corners, coloured with the current trail colour.
	for i, p := range m.players {
		label := p.id.String()
		if p.captures > 0 {
			label += " *"
		}
		x := float64(TileSize / 2)
		align := text.AlignStart
		if i == 1 {
			x = ScreenWidth - TileSize/2
			align = text.AlignEnd
		}
		bop := &text.DrawOptions{}
		bop.GeoM.Translate(x, 2)
		bop.PrimaryAlign = align
		bop.ColorScale.ScaleWithColor(p.cube.Color)
		text.Draw(dst, label, m.face, bop)
	}

	// Thin bar under the clock marks whether the flag is still up.
	flagsUp := 0
	for _, o := range m.objects {
		if o.Kind() == KindFlag {
			flagsUp++
		}
	}
	if flagsUp > 0 {
		vector.FillRect(dst, ScreenWidth/2-8, 14, 16, 1, color.RGBA{R: 200, G: 200, B: 200, A: 255}, false)
	}
}
