package ebitenrender

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/wriggle"
)

// Pointer samples mouse and touch state into a wriggle.FrameInput. The
// first active touch takes precedence over the mouse and keeps control
// until it lifts.
type Pointer struct {
	touchIDs []ebiten.TouchID
	touch    ebiten.TouchID
	touching bool
	last     wriggle.FrameInput
}

// Read returns the pointer state for this frame.
func (p *Pointer) Read() wriggle.FrameInput {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])

	if p.touching && !containsTouch(p.touchIDs, p.touch) {
		// Lifted: keep the last position so the creature settles there.
		p.touching = false
		p.last.Held = false
		return p.last
	}
	if !p.touching && len(p.touchIDs) > 0 {
		p.touch = p.touchIDs[0]
		p.touching = true
	}
	if p.touching {
		x, y := ebiten.TouchPosition(p.touch)
		p.last = wriggle.FrameInput{PointerX: float64(x), PointerY: float64(y), Held: true}
		return p.last
	}

	mx, my := ebiten.CursorPosition()
	p.last = wriggle.FrameInput{
		PointerX: float64(mx),
		PointerY: float64(my),
		Held:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
	return p.last
}

func containsTouch(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, t := range ids {
		if t == id {
			return true
		}
	}
	return false
}

// Action is a keyboard command understood by the demo hosts.
type Action uint8

const (
	ActionNone Action = iota
	ActionSelect
	ActionClear
	ActionFaster
	ActionSlower
	ActionMore
	ActionFewer
	ActionToggleFPS
	ActionToggleDebug
)

// KeyCommand is one keyboard command read this frame. Kind is set for
// ActionSelect.
type KeyCommand struct {
	Action Action
	Kind   wriggle.Kind
}

var selectKeys = [...]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2,
	ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
}

// ReadKeys appends the keyboard commands pressed this frame to buf.
func ReadKeys(buf []KeyCommand) []KeyCommand {
	for i, k := range selectKeys {
		if inpututil.IsKeyJustPressed(k) {
			buf = append(buf, KeyCommand{Action: ActionSelect, Kind: wriggle.Kind(i)})
		}
	}
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}
	if pressed(ebiten.KeyC) {
		buf = append(buf, KeyCommand{Action: ActionClear})
	}
	if pressed(ebiten.KeyEqual, ebiten.KeyNumpadAdd) {
		buf = append(buf, KeyCommand{Action: ActionFaster})
	}
	if pressed(ebiten.KeyMinus, ebiten.KeyNumpadSubtract) {
		buf = append(buf, KeyCommand{Action: ActionSlower})
	}
	if pressed(ebiten.KeyBracketRight) {
		buf = append(buf, KeyCommand{Action: ActionMore})
	}
	if pressed(ebiten.KeyBracketLeft) {
		buf = append(buf, KeyCommand{Action: ActionFewer})
	}
	if pressed(ebiten.KeyF) {
		buf = append(buf, KeyCommand{Action: ActionToggleFPS})
	}
	if pressed(ebiten.KeyD) {
		buf = append(buf, KeyCommand{Action: ActionToggleDebug})
	}
	return buf
}
