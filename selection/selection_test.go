package selection

import (
	"reflect"
	"testing"
)

type fakeScroller struct {
	scrolls [][2]int
	views   []int
}

func (f *fakeScroller) ScrollBy(dx, dy int)      { f.scrolls = append(f.scrolls, [2]int{dx, dy}) }
func (f *fakeScroller) ScrollIntoView(panel int) { f.views = append(f.views, panel) }
func (f *fakeScroller) TopMenuHeight() int       { return 40 }

func TestClick(t *testing.T) {
	c := NewController(4, 6, nil)

	c.Click(1, Modifiers{})
	c.Click(2, Modifiers{})
	if got := c.Snapshot().Selected; !reflect.DeepEqual(got, []bool{false, false, true, false}) {
		t.Fatalf("plain click should select exclusively, got %v", got)
	}

	c.Click(0, Modifiers{Ctrl: true})
	c.Click(3, Modifiers{Meta: true})
	c.Click(2, Modifiers{Ctrl: true})
	if got := c.Snapshot().Selected; !reflect.DeepEqual(got, []bool{true, false, false, true}) {
		t.Fatalf("modified clicks should toggle, got %v", got)
	}

	if c.BackgroundClick(Modifiers{Ctrl: true}) {
		t.Fatalf("background click with ctrl must not clear")
	}
	if !c.BackgroundClick(Modifiers{}) || c.Snapshot().Active() {
		t.Fatalf("background click should clear")
	}
}

func TestRotateRoundTrip(t *testing.T) {
	vectors := [][]bool{
		{true},
		{true, false},
		{false, true, true, false, false},
		{true, false, false, false, false, false, false, true},
	}

	for _, v := range vectors {
		c := NewController(len(v), 1, nil)
		c.Set(v)

		c.RotateLeft()
		c.RotateRight()
		if got := c.Snapshot().Selected; !reflect.DeepEqual(got, v) {
			t.Errorf("left then right: expected %v, got %v", v, got)
		}

		c.RotateRight()
		c.RotateLeft()
		if got := c.Snapshot().Selected; !reflect.DeepEqual(got, v) {
			t.Errorf("right then left: expected %v, got %v", v, got)
		}
	}
}

func TestRotateWraps(t *testing.T) {
	c := NewController(3, 1, nil)
	c.Click(0, Modifiers{})

	c.Key(KeyLeft, Modifiers{})
	if got := c.Snapshot().Selected; !reflect.DeepEqual(got, []bool{false, false, true}) {
		t.Errorf("rotate left should wrap to the end, got %v", got)
	}

	c.Key(KeyRight, Modifiers{})
	c.Key(KeyRight, Modifiers{})
	if got := c.Snapshot().Selected; !reflect.DeepEqual(got, []bool{false, true, false}) {
		t.Errorf("unexpected vector %v", got)
	}
}

func TestKeysWithoutSelectionScroll(t *testing.T) {
	s := &fakeScroller{}
	c := NewController(3, 3, s)

	c.Key(ParseKey("h"), Modifiers{})
	c.Key(ParseKey("right"), Modifiers{})
	if !reflect.DeepEqual(s.scrolls, [][2]int{{-100, 0}, {100, 0}}) {
		t.Errorf("unexpected scrolls %v", s.scrolls)
	}

	if c.Key(KeyLeft, Modifiers{Shift: true}) {
		t.Errorf("keys with modifiers must be ignored")
	}
}

func TestFocus(t *testing.T) {
	s := &fakeScroller{}
	c := NewController(2, 3, s)

	for _, k := range []string{"up", "down", "j", "s", "down", "w"} {
		c.Key(ParseKey(k), Modifiers{})
	}

	if !reflect.DeepEqual(s.views, []int{0, 1, 2, 2, 2, 1}) {
		t.Errorf("unexpected focus sequence %v", s.views)
	}
	if s.scrolls[0] != [2]int{0, -38} {
		t.Errorf("expected the menu offset scroll, got %v", s.scrolls[0])
	}
	if c.Snapshot().Focus != 1 {
		t.Errorf("unexpected focus %d", c.Snapshot().Focus)
	}
}

func TestObserversSeeOneSnapshot(t *testing.T) {
	c := NewController(3, 1, nil)

	var seen []Snapshot
	for i := 0; i < 3; i++ {
		c.Observe(ObserverFunc(func(s Snapshot) { seen = append(seen, s) }))
	}

	c.Click(1, Modifiers{})
	if len(seen) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(seen))
	}
	for _, s := range seen {
		if !reflect.DeepEqual(s.Selected, []bool{false, true, false}) {
			t.Errorf("observer saw %v", s.Selected)
		}
	}

	// Snapshots must not alias the controller's vector.
	seen[0].Selected[0] = true
	if c.Snapshot().Selected[0] {
		t.Errorf("snapshot aliases controller state")
	}
}

func TestSnapshotClass(t *testing.T) {
	s := Snapshot{Selected: []bool{false, true, false}}
	expected := []string{NotSelectedClass, SelectedClass, NotSelectedClass}
	for i, e := range expected {
		if got := s.Class(i); got != e {
			t.Errorf("Class(%d): expected %q, got %q", i, e, got)
		}
	}
	if got := s.InScope(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("unexpected scope %v", got)
	}

	none := Snapshot{Selected: []bool{false, false}}
	if none.Class(0) != "" {
		t.Errorf("no class expected without an active selection")
	}
	if got := none.InScope(); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("unexpected scope %v", got)
	}
}
