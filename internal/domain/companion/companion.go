// Package companion models the draggable floating widget.
package companion

import (
	"sync"
	"time"
)

const (
	DefaultInteractiveDelay = time.Second

	// margin kept between the widget and the viewport edge after a resize
	viewportMargin = 20
)

// Snapshot is a point-in-time copy of the widget state.
type Snapshot struct {
	Left        float64 `json:"left"`
	Top         float64 `json:"top"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Dragging    bool    `json:"dragging"`
	Interactive bool    `json:"interactive"`
}

// Widget is safe for concurrent use; interactive-state timers fire on
// their own goroutines.
type Widget struct {
	mu sync.Mutex

	left, top     float64
	width, height float64

	offsetX, offsetY float64
	dragging         bool
	interactive      bool

	delay time.Duration
}

func New(left, top, width, height float64, delay time.Duration) *Widget {
	if delay <= 0 {
		delay = DefaultInteractiveDelay
	}
	return &Widget{
		left:   left,
		top:    top,
		width:  width,
		height: height,
		delay:  delay,
	}
}

func (w *Widget) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

// Click sets the interactive state and clears it after the delay. The
// timer is never cancelled.
func (w *Widget) Click() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.interactive = true
	time.AfterFunc(w.delay, w.clearInteractive)

	return w.snapshot()
}

// StartDrag grabs the widget at pointer (x, y).
func (w *Widget) StartDrag(x, y float64) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.dragging = true
	w.interactive = true
	w.offsetX = x - w.left
	w.offsetY = y - w.top

	return w.snapshot()
}

// DragTo follows the pointer keeping the grab offset. No clamping while
// dragging.
func (w *Widget) DragTo(x, y float64) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dragging {
		w.left = x - w.offsetX
		w.top = y - w.offsetY
	}

	return w.snapshot()
}

func (w *Widget) EndDrag() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dragging {
		w.dragging = false
		w.interactive = false
	}

	return w.snapshot()
}

// Resize pulls the widget back inside a viewport of the given size. All
// edges are checked against the position before the resize.
func (w *Widget) Resize(viewportWidth, viewportHeight float64) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	left, top := w.left, w.top
	right, bottom := left+w.width, top+w.height

	if right > viewportWidth {
		w.left = viewportWidth - w.width - viewportMargin
	}
	if bottom > viewportHeight {
		w.top = viewportHeight - w.height - viewportMargin
	}
	if left < 0 {
		w.left = viewportMargin
	}
	if top < 0 {
		w.top = viewportMargin
	}

	return w.snapshot()
}

func (w *Widget) clearInteractive() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interactive = false
}

func (w *Widget) snapshot() Snapshot {
	return Snapshot{
		Left:        w.left,
		Top:         w.top,
		Width:       w.width,
		Height:      w.height,
		Dragging:    w.dragging,
		Interactive: w.interactive,
	}
}
