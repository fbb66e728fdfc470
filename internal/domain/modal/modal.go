// Package modal holds the state machines of the two overlay widgets: the
// single image viewer and the paginated comic reader. Every transition is a
// value method returning the next state.
package modal

// Key is a keyboard key name as reported by the browser.
type Key string

const (
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyEscape     Key = "Escape"
)

// Target is the part of an open modal a pointer event landed on.
type Target string

const (
	TargetBackdrop Target = "backdrop"
	TargetContent  Target = "content"
	TargetClose    Target = "close"
)
