//go:build !cgo

package hal

type hostTouch struct {
	ch chan TouchEvent
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
