package host

import "github.com/hajimehoshi/ebiten/v2"

// keyRune maps a physical key to the character the session bindings use.
func keyRune(k ebiten.Key) (rune, bool) {
	switch k {
	case ebiten.KeyDigit1, ebiten.KeyNumpad1:
		return '1', true
	case ebiten.KeyDigit2, ebiten.KeyNumpad2:
		return '2', true
	case ebiten.KeyDigit3, ebiten.KeyNumpad3:
		return '3', true
	case ebiten.KeyDigit4, ebiten.KeyNumpad4:
		return '4', true
	case ebiten.KeyDigit5, ebiten.KeyNumpad5:
		return '5', true
	case ebiten.KeyM:
		return 'm', true
	case ebiten.KeyC:
		return 'c', true
	case ebiten.KeyS:
		return 's', true
	case ebiten.KeyEscape:
		return keyQuit, true
	}
	return 0, false
}

// keyQuit is the rune injected for Escape.
const keyQuit = '\x1b'

// InjectKey queues a typed character to be handled on the next Update, as
// if the matching key had been pressed. Scripts and tests drive the host
// through it.
func (h *Host) InjectKey(r rune) {
	h.injectQueue = append(h.injectQueue, r)
}
