package scene

import (
	"strings"
	"testing"
)

func TestSetKeepsOrder(t *testing.T) {
	r := New("rect").Set("x", "1").Set("y", "2").Set("x", "3")
	attrs := r.Attrs()
	if len(attrs) != 2 || attrs[0] != (Attr{"x", "3"}) || attrs[1] != (Attr{"y", "2"}) {
		t.Errorf("unexpected attrs %v", attrs)
	}
	if r.GetNum("y") != 2 || r.GetNum("missing") != 0 {
		t.Errorf("unexpected numeric attrs")
	}
}

func TestFindAndRemove(t *testing.T) {
	root := New("svg")
	g := root.Append("g").AddClass("sample")
	g.Append("rect").AddClass("bar")
	g.Append("rect").AddClass("bar")
	root.Append("g").AddClass("callout").Append("text").AddClass("bar")

	if got := len(root.FindAll("bar")); got != 3 {
		t.Fatalf("expected 3 bars, got %d", got)
	}
	if root.Find("sample") != g {
		t.Errorf("Find returned the wrong element")
	}
	if got := root.RemoveAll("callout"); got != 1 {
		t.Errorf("expected 1 removal, got %d", got)
	}
	if got := len(root.FindAll("bar")); got != 2 {
		t.Errorf("expected 2 bars after removal, got %d", got)
	}
}

func TestClassed(t *testing.T) {
	e := New("g").AddClass("sample", "sample", "")
	e.Classed("selectedSample", true)
	e.Classed("sample", false)
	if got := e.Classes(); len(got) != 1 || got[0] != "selectedSample" {
		t.Errorf("unexpected classes %v", got)
	}
}

func TestClone(t *testing.T) {
	root := New("svg")
	root.Append("rect").Set("x", "1").AddClass("a")

	c := root.Clone()
	c.Children[0].Set("x", "2").AddClass("b")

	if v, _ := root.Children[0].Get("x"); v != "1" {
		t.Errorf("clone aliases attributes")
	}
	if root.Children[0].HasClass("b") {
		t.Errorf("clone aliases classes")
	}
}

func TestParseTranslate(t *testing.T) {
	cases := []struct {
		In   string
		X, Y float64
		OK   bool
	}{
		{"translate(12,5)", 12, 5, true},
		{"translate(12.5, -3)", 12.5, -3, true},
		{"translate(7)", 7, 0, true},
		{"translate(7,0) rotate(-90)", 7, 0, true},
		{"rotate(-90)", 0, 0, false},
		{"translate(a,b)", 0, 0, false},
	}

	for _, cs := range cases {
		x, y, ok := ParseTranslate(cs.In)
		if ok != cs.OK || x != cs.X || y != cs.Y {
			t.Errorf("ParseTranslate(%q): got %v %v %v", cs.In, x, y, ok)
		}
	}
	if got := Translate(17.5, 0); got != "translate(17.5,0)" {
		t.Errorf("unexpected translate %q", got)
	}
}

func TestString(t *testing.T) {
	root := New("svg").Set("width", "525")
	root.Append("text").Set("data-name", `a "b"`).Style("fill", "#fff").SetText("x < y & z")
	style := root.Append("style")
	style.Raw = true
	style.SetText("/* <![CDATA[ */ .a{fill:red} /* ]]> */")

	out := root.String()
	for _, want := range []string{
		`<svg width="525">`,
		`data-name="a &quot;b&quot;"`,
		`style="fill:#fff;"`,
		`>x &lt; y &amp; z</text>`,
		`<![CDATA[ */ .a{fill:red}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}
