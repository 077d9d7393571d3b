//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostTouch struct {
	ch chan TouchEvent

	down  bool
	lastX int
	lastY int
}

func newHostTouch() *hostTouch {
	return &hostTouch{ch: make(chan TouchEvent, 64)}
}

func (t *hostTouch) Events() <-chan TouchEvent { return t.ch }

func (t *hostTouch) emit(ev TouchEvent) {
	select {
	case t.ch <- ev:
	default:
	}
}

// poll turns the left mouse button (or the first finger) into touch events.
func (t *hostTouch) poll() {
	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y = ebiten.TouchPosition(ids[0])
		pressed = true
	}

	switch {
	case pressed && !t.down:
		t.down = true
		t.emit(TouchEvent{State: TouchStart, X: x, Y: y})
	case pressed && (x != t.lastX || y != t.lastY):
		t.emit(TouchEvent{State: TouchDrag, X: x, Y: y})
	case !pressed && t.down:
		t.down = false
		t.emit(TouchEvent{State: TouchRelease, X: t.lastX, Y: t.lastY})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		// Press and release inside one tick.
		t.emit(TouchEvent{State: TouchStart, X: x, Y: y})
		t.emit(TouchEvent{State: TouchRelease, X: x, Y: y})
	}
	t.lastX, t.lastY = x, y
}
