// Package selection owns the report-wide sample selection vector and the
// keyboard focus that moves between panels.
package selection

import "strings"

const (
	SelectedClass    = "selectedSample"
	NotSelectedClass = "notSelectedSample"

	// ScrollStep is the horizontal scroll distance of one navigation key.
	ScrollStep = 100
	// DividerPadding is added back after scrolling a panel under the top menu.
	DividerPadding = 2
)

// Snapshot is an immutable copy of the selection handed to observers.
type Snapshot struct {
	Selected []bool
	Focus    int
}

// Active reports whether any sample is selected.
func (s Snapshot) Active() bool {
	for _, v := range s.Selected {
		if v {
			return true
		}
	}
	return false
}

// Class returns the highlight class of sample i: selected samples are always
// marked, unselected samples only while a selection is active.
func (s Snapshot) Class(i int) string {
	if i < 0 || i >= len(s.Selected) {
		return ""
	}
	if s.Selected[i] {
		return SelectedClass
	}
	if s.Active() {
		return NotSelectedClass
	}
	return ""
}

// InScope returns the indexes legends aggregate over: the selected samples,
// or every sample when nothing is selected.
func (s Snapshot) InScope() []int {
	out := make([]int, 0, len(s.Selected))
	active := s.Active()
	for i, v := range s.Selected {
		if v || !active {
			out = append(out, i)
		}
	}
	return out
}

// Observer is notified synchronously after every selection mutation.
type Observer interface {
	SelectionChanged(Snapshot)
}

type ObserverFunc func(Snapshot)

func (f ObserverFunc) SelectionChanged(s Snapshot) { f(s) }

// Scroller moves the host viewport.
type Scroller interface {
	ScrollBy(dx, dy int)
	ScrollIntoView(panel int)
	TopMenuHeight() int
}

type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// ParseKey maps a host key name to a navigation key. Letters follow both the
// WASD and the vi layouts.
func ParseKey(name string) Key {
	switch strings.ToLower(name) {
	case "esc", "escape":
		return KeyEscape
	case "a", "h", "left":
		return KeyLeft
	case "d", "l", "right":
		return KeyRight
	case "w", "k", "up":
		return KeyUp
	case "s", "j", "down":
		return KeyDown
	}
	return KeyNone
}

// Modifiers are the modifier keys held during an input.
type Modifiers struct {
	Ctrl, Shift, Alt, Meta bool
}

func (m Modifiers) Any() bool {
	return m.Ctrl || m.Shift || m.Alt || m.Meta
}

// Secondary is the multi-select modifier.
func (m Modifiers) Secondary() bool {
	return m.Ctrl || m.Meta
}

// Controller is the single owner of the selection vector.
type Controller struct {
	selected  []bool
	focus     int
	panels    int
	scroller  Scroller
	observers []Observer
}

func NewController(sampleCount, panelCount int, scroller Scroller) *Controller {
	return &Controller{
		selected: make([]bool, sampleCount),
		panels:   panelCount,
		scroller: scroller,
	}
}

func (c *Controller) Observe(o Observer) {
	c.observers = append(c.observers, o)
}

// SetPanelCount changes the number of focusable panels, clamping the focus.
func (c *Controller) SetPanelCount(n int) {
	c.panels = n
	c.clampFocus()
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{Selected: append([]bool(nil), c.selected...), Focus: c.focus}
}

// Click handles a click on sample i. A plain click selects i exclusively, a
// click with the secondary modifier toggles it.
func (c *Controller) Click(i int, mods Modifiers) {
	if i < 0 || i >= len(c.selected) {
		return
	}

	if mods.Secondary() {
		c.selected[i] = !c.selected[i]
	} else {
		for j := range c.selected {
			c.selected[j] = j == i
		}
	}

	c.notify()
}

// BackgroundClick clears the selection unless the secondary modifier is
// held. It reports whether the selection was cleared.
func (c *Controller) BackgroundClick(mods Modifiers) bool {
	if mods.Secondary() {
		return false
	}
	c.Clear()
	return true
}

func (c *Controller) Clear() {
	for i := range c.selected {
		c.selected[i] = false
	}
	c.notify()
}

// Set replaces the selection. Extra values are ignored and missing ones are
// false.
func (c *Controller) Set(selected []bool) {
	for i := range c.selected {
		c.selected[i] = i < len(selected) && selected[i]
	}
	c.notify()
}

// RotateLeft shifts every selection one position toward the start, wrapping
// the first onto the last.
func (c *Controller) RotateLeft() {
	n := len(c.selected)
	if n == 0 {
		return
	}
	first := c.selected[0]
	copy(c.selected, c.selected[1:])
	c.selected[n-1] = first
	c.notify()
}

// RotateRight is the inverse of RotateLeft.
func (c *Controller) RotateRight() {
	n := len(c.selected)
	if n == 0 {
		return
	}
	last := c.selected[n-1]
	copy(c.selected[1:], c.selected[:n-1])
	c.selected[0] = last
	c.notify()
}

// Key handles a navigation key. Keys pressed with any modifier are ignored.
// It reports whether the key was consumed.
func (c *Controller) Key(k Key, mods Modifiers) bool {
	if mods.Any() {
		return false
	}

	active := c.Snapshot().Active()

	switch k {
	case KeyEscape:
		c.Clear()
	case KeyLeft:
		if active {
			c.RotateLeft()
		} else if c.scroller != nil {
			c.scroller.ScrollBy(-ScrollStep, 0)
		}
	case KeyRight:
		if active {
			c.RotateRight()
		} else if c.scroller != nil {
			c.scroller.ScrollBy(ScrollStep, 0)
		}
	case KeyUp:
		c.moveFocus(-1)
	case KeyDown:
		c.moveFocus(1)
	default:
		return false
	}

	return true
}

func (c *Controller) moveFocus(delta int) {
	c.focus += delta
	c.clampFocus()

	if c.scroller == nil || c.panels == 0 {
		return
	}
	c.scroller.ScrollIntoView(c.focus)
	c.scroller.ScrollBy(0, -c.scroller.TopMenuHeight()+DividerPadding)
}

func (c *Controller) clampFocus() {
	if c.focus >= c.panels {
		c.focus = c.panels - 1
	}
	if c.focus < 0 {
		c.focus = 0
	}
}

func (c *Controller) notify() {
	snap := c.Snapshot()
	for _, o := range c.observers {
		o.SelectionChanged(snap)
	}
}
