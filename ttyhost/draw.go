package ttyhost

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/phanxgames/stillwater"
)

var (
	baseStyle   = tcell.StyleDefault
	titleStyle  = baseStyle.Foreground(tcellColor(stillwater.Hex(stillwater.LeafPalette[0], 1))).Bold(true)
	statusStyle = baseStyle.Foreground(tcell.ColorWhite).Bold(true)
	dimStyle    = baseStyle.Foreground(tcell.ColorGray)
)

// The waterline shimmers between these two tones.
var (
	waterDeep  = colorful.Color{R: 0x2b / 255.0, G: 0x5f / 255.0, B: 0x87 / 255.0}
	waterLight = colorful.Color{R: 0x9f / 255.0, G: 0xd3 / 255.0, B: 0xe8 / 255.0}
)

// waveRunes is the repeating waterline pattern, shifted one cell per tick.
var waveRunes = []rune("~~≈~-~≈≈~")

func tcellColor(c stillwater.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R*255), int32(c.G*255), int32(c.B*255))
}

type line struct {
	text  string
	style tcell.Style
}

func (a *App) lines() []line {
	return []line{
		{"Stillwater", titleStyle},
		{"", baseStyle},
		{a.session.StatusText(), statusStyle},
		{a.session.MusicText(), dimStyle},
		{"", baseStyle},
		{stillwater.HelpText, dimStyle},
		{"Q: quit", dimStyle},
	}
}

func (a *App) draw() {
	s := a.screen
	s.Clear()
	w, h := s.Size()

	lines := a.lines()
	top := max((h-len(lines))/2, 0)
	for i, l := range lines {
		drawCentered(s, w, top+i, l.text, l.style)
	}
	if h > len(lines)+2 {
		a.drawWater(w, h-1)
	}
	s.Show()
}

func (a *App) drawWater(w, y int) {
	for x := 0; x < w; x++ {
		r := waveRunes[(x+a.frame)%len(waveRunes)]
		a.screen.SetContent(x, y, r, nil, baseStyle.Foreground(waterColor(x, a.frame)))
	}
}

// waterColor is the shimmer tone of column x at frame.
func waterColor(x, frame int) tcell.Color {
	t := 0.5 + 0.5*math.Sin(float64(x+frame)/4)
	r, g, b := waterDeep.BlendLab(waterLight, t).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func drawCentered(s tcell.Screen, w, y int, text string, style tcell.Style) {
	x := max((w-runewidth.StringWidth(text))/2, 0)
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
