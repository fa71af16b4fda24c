package pick

// DefaultClickThreshold is the cumulative movement, in canvas cells, below
// which a press/release pair counts as a click.
const DefaultClickThreshold = 3

// Pointer classifies press → move* → release sequences as clicks or drags.
type Pointer struct {
	threshold int

	pressed   bool
	dragging  bool
	travelled int
	lastX     int
	lastY     int
	pressX    int
	pressY    int
}

// NewPointer creates a tracker. A non-positive threshold selects the default.
func NewPointer(threshold int) *Pointer {
	if threshold <= 0 {
		threshold = DefaultClickThreshold
	}
	return &Pointer{threshold: threshold}
}

// Threshold returns the click threshold in cells.
func (p *Pointer) Threshold() int { return p.threshold }

// Pressed reports whether a press is in progress.
func (p *Pointer) Pressed() bool { return p.pressed }

// Dragging reports whether the current press has become a drag.
func (p *Pointer) Dragging() bool { return p.dragging }

// Press starts a new gesture.
func (p *Pointer) Press(x, y int) {
	p.pressed = true
	p.dragging = false
	p.travelled = 0
	p.lastX, p.lastY = x, y
	p.pressX, p.pressY = x, y
}

// Move records pointer motion. While dragging it returns the delta since
// the previous event and drag=true.
func (p *Pointer) Move(x, y int) (dx, dy int, drag bool) {
	if !p.pressed {
		return 0, 0, false
	}
	dx, dy = x-p.lastX, y-p.lastY
	p.travelled += abs(dx) + abs(dy)
	p.lastX, p.lastY = x, y

	if !p.dragging && p.travelled > p.threshold {
		p.dragging = true
		// The motion that crossed the threshold rotates from the press point.
		dx, dy = x-p.pressX, y-p.pressY
	}
	if !p.dragging {
		return 0, 0, false
	}
	return dx, dy, true
}

// Release ends the gesture. click is true when movement stayed within the
// threshold; x and y are the release position.
func (p *Pointer) Release(x, y int) (click bool) {
	if !p.pressed {
		return false
	}
	p.Move(x, y)
	click = !p.dragging
	p.pressed = false
	p.dragging = false
	p.travelled = 0
	return click
}

// Cancel abandons the current gesture without producing a click.
func (p *Pointer) Cancel() {
	p.pressed = false
	p.dragging = false
	p.travelled = 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
