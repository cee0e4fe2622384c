// Package scene is a small retained SVG element tree. Panels build it once
// and patch attributes in place on relayout or selection changes.
package scene

import (
	"fmt"
	"strconv"
	"strings"
)

type Attr struct {
	Name, Value string
}

type Element struct {
	Tag      string
	Text     string
	Children []*Element

	// Raw text is written without escaping, for style sheets.
	Raw bool

	attrs   []Attr
	classes []string
	style   []Attr
}

func New(tag string) *Element {
	return &Element{Tag: tag}
}

// Append adds a new child element and returns it.
func (e *Element) Append(tag string) *Element {
	child := New(tag)
	e.Children = append(e.Children, child)
	return child
}

// AppendElement adds an existing element as the last child.
func (e *Element) AppendElement(child *Element) *Element {
	e.Children = append(e.Children, child)
	return child
}

// Set sets an attribute, keeping the position of attributes already present.
// "class" and "style" have their own accessors.
func (e *Element) Set(name, value string) *Element {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return e
		}
	}
	e.attrs = append(e.attrs, Attr{name, value})
	return e
}

func (e *Element) SetNum(name string, v float64) *Element {
	return e.Set(name, Num(v))
}

func (e *Element) SetInt(name string, v int) *Element {
	return e.Set(name, strconv.Itoa(v))
}

func (e *Element) Get(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// GetNum returns a numeric attribute, or 0 when it is absent or not a number.
func (e *Element) GetNum(name string) float64 {
	v, ok := e.Get(name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func (e *Element) Unset(name string) *Element {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			break
		}
	}
	return e
}

func (e *Element) Attrs() []Attr {
	return append([]Attr(nil), e.attrs...)
}

// SetText replaces the text content.
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

func (e *Element) AddClass(names ...string) *Element {
	for _, name := range names {
		if name != "" && !e.HasClass(name) {
			e.classes = append(e.classes, name)
		}
	}
	return e
}

func (e *Element) RemoveClass(name string) *Element {
	for i, c := range e.classes {
		if c == name {
			e.classes = append(e.classes[:i], e.classes[i+1:]...)
			break
		}
	}
	return e
}

// Classed adds or removes a class.
func (e *Element) Classed(name string, on bool) *Element {
	if on {
		return e.AddClass(name)
	}
	return e.RemoveClass(name)
}

func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

func (e *Element) Classes() []string {
	return append([]string(nil), e.classes...)
}

func (e *Element) Style(name, value string) *Element {
	for i := range e.style {
		if e.style[i].Name == name {
			e.style[i].Value = value
			return e
		}
	}
	e.style = append(e.style, Attr{name, value})
	return e
}

func (e *Element) GetStyle(name string) (string, bool) {
	for _, a := range e.style {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Walk visits e and its descendants depth first. Returning false from fn
// skips the children of that element.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// FindAll returns descendants of e carrying class, in document order.
func (e *Element) FindAll(class string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		c.Walk(func(el *Element) bool {
			if el.HasClass(class) {
				out = append(out, el)
			}
			return true
		})
	}
	return out
}

// Find returns the first descendant carrying class, or nil.
func (e *Element) Find(class string) *Element {
	all := e.FindAll(class)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// ChildrenWithTag returns the direct children of e with the given tag.
func (e *Element) ChildrenWithTag(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// RemoveAll drops every descendant carrying class and returns how many were
// removed.
func (e *Element) RemoveAll(class string) int {
	removed := 0
	kept := e.Children[:0]
	for _, c := range e.Children {
		if c.HasClass(class) {
			removed++
			continue
		}
		removed += c.RemoveAll(class)
		kept = append(kept, c)
	}
	for i := len(kept); i < len(e.Children); i++ {
		e.Children[i] = nil
	}
	e.Children = kept
	return removed
}

// Clone deep copies the tree rooted at e.
func (e *Element) Clone() *Element {
	out := &Element{
		Tag:     e.Tag,
		Text:    e.Text,
		Raw:     e.Raw,
		attrs:   append([]Attr(nil), e.attrs...),
		classes: append([]string(nil), e.classes...),
		style:   append([]Attr(nil), e.style...),
	}
	if len(e.Children) > 0 {
		out.Children = make([]*Element, len(e.Children))
		for i, c := range e.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Num formats a coordinate with the shortest representation that round
// trips, so 12 renders as "12" and 12.5 as "12.5".
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func Translate(x, y float64) string {
	return "translate(" + Num(x) + "," + Num(y) + ")"
}

// ParseTranslate extracts the offsets of a transform that starts with a
// translate. A single argument means y is 0.
func ParseTranslate(transform string) (x, y float64, ok bool) {
	s := strings.TrimSpace(transform)
	if !strings.HasPrefix(s, "translate(") {
		return 0, 0, false
	}
	end := strings.IndexByte(s, ')')
	if end < 0 {
		return 0, 0, false
	}

	args := strings.FieldsFunc(s[len("translate("):end], func(r rune) bool { return r == ',' || r == ' ' })
	if len(args) == 0 || len(args) > 2 {
		return 0, 0, false
	}

	var err error
	if x, err = strconv.ParseFloat(args[0], 64); err != nil {
		return 0, 0, false
	}
	if len(args) == 2 {
		if y, err = strconv.ParseFloat(args[1], 64); err != nil {
			return 0, 0, false
		}
	}

	return x, y, true
}

func Rotate(deg, cx, cy float64) string {
	if cx == 0 && cy == 0 {
		return fmt.Sprintf("rotate(%s)", Num(deg))
	}
	return fmt.Sprintf("rotate(%s,%s,%s)", Num(deg), Num(cx), Num(cy))
}
