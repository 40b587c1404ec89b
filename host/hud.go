package host

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/stillwater"
)

const (
	hudWidth  = 300
	hudHeight = 64
	hudMargin = 8
)

// hud is the status overlay in the top-left corner. Its image is redrawn
// only when the text changes.
type hud struct {
	img  *ebiten.Image
	text string
}

func (h *hud) draw(dst *ebiten.Image, text string) {
	if h.img == nil {
		h.img = ebiten.NewImage(hudWidth, hudHeight)
	}
	if text != h.text {
		h.img.Clear()
		// Semi-transparent background for readability
		h.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(h.img, text)
		h.text = text
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(hudMargin, hudMargin)
	dst.DrawImage(h.img, op)
}

func (h *hud) dispose() {
	if h.img != nil {
		h.img.Deallocate()
		h.img = nil
	}
}

// hudText is the overlay content for the current session state.
func (h *Host) hudText() string {
	lines := []string{
		h.session.StatusText(),
		h.session.MusicText(),
		stillwater.HelpText,
	}
	if h.cfg.Debug {
		lines = append(lines, fmt.Sprintf("FPS: %.0f  TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return strings.Join(lines, "\n")
}
