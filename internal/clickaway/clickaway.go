// Package clickaway detects pointer presses that land outside a region of
// the screen, the terminal equivalent of a "click outside" listener.
package clickaway

import tea "github.com/charmbracelet/bubbletea"

// Region is a rectangle of terminal cells. Everything drawn inside the
// rectangle, however deeply nested, counts as inside.
type Region struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Detector invokes its callback for presses outside the attached region.
// It only listens between Attach and Detach.
type Detector struct {
	region   *Region
	callback func()
}

// New creates a detached detector.
func New(callback func()) *Detector {
	return &Detector{callback: callback}
}

// Attach starts listening for presses outside region. A nil region leaves
// the detector detached.
func (d *Detector) Attach(region *Region) {
	d.region = region
}

// Detach stops listening. Always safe to call.
func (d *Detector) Detach() {
	d.region = nil
}

// Attached reports whether the detector is currently listening.
func (d *Detector) Attached() bool { return d.region != nil }

// Handle inspects a mouse event and fires the callback once if it is a
// press outside the attached region. It reports whether the callback ran.
func (d *Detector) Handle(msg tea.MouseMsg) bool {
	if d.region == nil || d.callback == nil {
		return false
	}
	if msg.Action != tea.MouseActionPress || tea.MouseEvent(msg).IsWheel() {
		return false
	}
	if d.region.Contains(msg.X, msg.Y) {
		return false
	}
	d.callback()
	return true
}
