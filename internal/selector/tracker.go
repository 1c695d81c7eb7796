// Package selector implements the interactive screen-region picker: a modal
// full-screen overlay the user drags a rectangle on. The drag logic lives in
// Tracker so it can be exercised without a window; the overlay is the thin
// OS-specific shell around it.
package selector

import (
	"github.com/dokzlo13/glowd/internal/region"
)

// Phase is the state of a drag-select gesture.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseCommitted
	PhaseCancelled
)

// Tracker is the drag-select state machine: Idle -> Dragging -> Committed or
// Cancelled. Inputs outside the expected order (a Move before any Press, a
// stray Release) are ignored rather than treated as errors.
type Tracker struct {
	phase          Phase
	startX, startY int
	curX, curY     int
}

// Phase returns the current gesture phase.
func (t *Tracker) Phase() Phase {
	return t.phase
}

// Press starts a drag at the given point.
func (t *Tracker) Press(x, y int) {
	if t.phase != PhaseIdle {
		return
	}
	t.phase = PhaseDragging
	t.startX, t.startY = x, y
	t.curX, t.curY = x, y
}

// Move updates the drag endpoint.
func (t *Tracker) Move(x, y int) {
	if t.phase != PhaseDragging {
		return
	}
	t.curX, t.curY = x, y
}

// Release ends the drag at the given point and commits the selection.
func (t *Tracker) Release(x, y int) {
	if t.phase != PhaseDragging {
		return
	}
	t.curX, t.curY = x, y
	t.phase = PhaseCommitted
}

// Cancel aborts the gesture. A committed selection stays committed.
func (t *Tracker) Cancel() {
	if t.phase == PhaseCommitted {
		return
	}
	t.phase = PhaseCancelled
}

// Outline returns the rubber-band rectangle to draw, valid only mid-drag.
func (t *Tracker) Outline() (region.Region, bool) {
	if t.phase != PhaseDragging {
		return region.Region{}, false
	}
	return region.FromPoints(t.startX, t.startY, t.curX, t.curY), true
}

// Result returns the committed selection. ok is false unless the gesture
// reached Committed, so a cancelled pick never yields a box.
func (t *Tracker) Result() (region.Region, bool) {
	if t.phase != PhaseCommitted {
		return region.Region{}, false
	}
	return region.FromPoints(t.startX, t.startY, t.curX, t.curY), true
}

// Done reports whether the gesture reached a terminal phase.
func (t *Tracker) Done() bool {
	return t.phase == PhaseCommitted || t.phase == PhaseCancelled
}
