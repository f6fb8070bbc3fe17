// Package notify decouples the event-capture goroutine from the
// presentation layer. A Notifier carries a payload-free "stats changed"
// signal across goroutines; the receiver pulls its own fresh snapshot, so
// no mutable state ever crosses with the signal.
package notify

// Notifier posts a "stats changed" signal. Signal must be safe to call
// from any goroutine and must never block on the presentation layer.
type Notifier interface {
	Signal()
}

// Func adapts an ordinary function to the Notifier interface.
type Func func()

func (f Func) Signal() {
	f()
}

// Noop is the headless notifier: signals go nowhere.
type Noop struct{}

func (Noop) Signal() {}
