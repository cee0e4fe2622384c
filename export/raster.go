package export

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/carbocation/mirreport/scene"
	"github.com/fogleman/gg"
	"github.com/icza/gox/imagex/colorx"
	"golang.org/x/image/font/basicfont"
)

const (
	emPixels = 11.0

	// Opacity of classed elements the stylesheet fades.
	notSelectedOpacity = 0.3
)

// Rasterize draws the subset of SVG the panels emit: rect, circle, line,
// text, absolute M/H/V/L/Z paths and groups with translate, rotate and scale
// transforms. Unpainted pixels stay transparent.
func Rasterize(root *scene.Element) (image.Image, error) {
	w, h := int(root.GetNum("width")), int(root.GetNum("height"))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("scene has no size (%dx%d)", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetFontFace(basicfont.Face7x13)

	r := rasterizer{dc: dc}
	r.draw(root, 1)

	return dc.Image(), nil
}

type rasterizer struct {
	dc *gg.Context
}

func (r *rasterizer) draw(e *scene.Element, opacity float64) {
	switch e.Tag {
	case "defs", "style", "title":
		return
	}
	if v, ok := e.GetStyle("display"); ok && v == "none" {
		return
	}

	opacity *= elementOpacity(e)
	if opacity <= 0 {
		return
	}

	dc := r.dc
	dc.Push()
	defer dc.Pop()

	if t, ok := e.Get("transform"); ok {
		applyTransform(dc, t)
	}

	switch e.Tag {
	case "rect":
		x, y := e.GetNum("x"), e.GetNum("y")
		w, h := e.GetNum("width"), e.GetNum("height")
		if rx := e.GetNum("rx"); rx > 0 {
			dc.DrawRoundedRectangle(x, y, w, h, rx)
		} else {
			dc.DrawRectangle(x, y, w, h)
		}
		r.paint(e, opacity, "#000000")
	case "circle":
		dc.DrawCircle(e.GetNum("cx"), e.GetNum("cy"), e.GetNum("r"))
		r.paint(e, opacity, "#000000")
	case "line":
		dc.DrawLine(e.GetNum("x1"), e.GetNum("y1"), e.GetNum("x2"), e.GetNum("y2"))
		r.stroke(e, opacity, "#000000")
	case "path":
		if d, ok := e.Get("d"); ok && tracePath(dc, d) {
			r.stroke(e, opacity, "#000000")
		}
	case "text":
		r.text(e, opacity)
	}

	for _, c := range e.Children {
		r.draw(c, opacity)
	}
}

func (r *rasterizer) paint(e *scene.Element, opacity float64, fallback string) {
	dc := r.dc
	fill := paintValue(e, "fill", fallback)
	stroke := paintValue(e, "stroke", "none")

	if c, ok := parseColor(fill); ok {
		setColor(dc, c, opacity)
		if stroke != "none" {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if c, ok := parseColor(stroke); ok {
		setColor(dc, c, opacity)
		dc.SetLineWidth(strokeWidth(e))
		dc.Stroke()
	}
	dc.ClearPath()
}

func (r *rasterizer) stroke(e *scene.Element, opacity float64, fallback string) {
	dc := r.dc
	if c, ok := parseColor(paintValue(e, "stroke", fallback)); ok {
		setColor(dc, c, opacity)
		dc.SetLineWidth(strokeWidth(e))
		dc.Stroke()
	}
	dc.ClearPath()
}

func (r *rasterizer) text(e *scene.Element, opacity float64) {
	if e.Text == "" {
		return
	}
	c, ok := parseColor(paintValue(e, "fill", "#000000"))
	if !ok {
		return
	}
	setColor(r.dc, c, opacity)

	x, y := e.GetNum("x"), e.GetNum("y")
	if v, ok := e.Get("dy"); ok {
		y += length(v)
	}
	if v, ok := e.Get("dx"); ok {
		x += length(v)
	}

	ax := 0.0
	switch anchor, _ := e.GetStyle("text-anchor"); anchor {
	case "middle":
		ax = .5
	case "end":
		ax = 1
	}

	r.dc.DrawStringAnchored(e.Text, x, y, ax, 0)
}

func elementOpacity(e *scene.Element) float64 {
	out := 1.0
	if v, ok := e.GetStyle("opacity"); ok {
		out *= number(v, 1)
	} else if v, ok := e.Get("opacity"); ok {
		out *= number(v, 1)
	}
	if e.HasClass("notSelectedSample") {
		out *= notSelectedOpacity
	}
	return out
}

// paintValue resolves a paint property; inline style wins over attributes.
func paintValue(e *scene.Element, name, fallback string) string {
	if v, ok := e.GetStyle(name); ok {
		return v
	}
	if v, ok := e.Get(name); ok {
		return v
	}
	return fallback
}

func strokeWidth(e *scene.Element) float64 {
	return number(paintValue(e, "stroke-width", "1"), 1)
}

func parseColor(v string) (color.RGBA, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "none", "transparent":
		return color.RGBA{}, false
	case "white":
		return color.RGBA{255, 255, 255, 255}, true
	case "black":
		return color.RGBA{0, 0, 0, 255}, true
	}

	c, err := colorx.ParseHexColor(v)
	if err != nil {
		return color.RGBA{}, false
	}
	return c, true
}

func setColor(dc *gg.Context, c color.RGBA, opacity float64) {
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255*opacity)
}

func number(v string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return fallback
	}
	return f
}

// length converts an SVG length in px or em to pixels.
func length(v string) float64 {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "em") {
		return number(strings.TrimSuffix(v, "em"), 0) * emPixels
	}
	return number(v, 0)
}

// applyTransform applies a transform list such as
// "translate(10,20)rotate(-90,0,12)" left to right.
func applyTransform(dc *gg.Context, t string) {
	for _, op := range splitTransform(t) {
		args := op.args
		switch op.name {
		case "translate":
			if len(args) == 1 {
				args = append(args, 0)
			}
			if len(args) >= 2 {
				dc.Translate(args[0], args[1])
			}
		case "rotate":
			switch len(args) {
			case 1:
				dc.Rotate(gg.Radians(args[0]))
			case 3:
				dc.RotateAbout(gg.Radians(args[0]), args[1], args[2])
			}
		case "scale":
			if len(args) == 1 {
				args = append(args, args[0])
			}
			if len(args) >= 2 {
				dc.Scale(args[0], args[1])
			}
		}
	}
}

type transformOp struct {
	name string
	args []float64
}

func splitTransform(t string) []transformOp {
	var out []transformOp
	for {
		open := strings.IndexByte(t, '(')
		end := strings.IndexByte(t, ')')
		if open < 0 || end < open {
			return out
		}

		op := transformOp{name: strings.TrimSpace(t[:open])}
		for _, f := range strings.FieldsFunc(t[open+1:end], func(r rune) bool { return r == ',' || r == ' ' }) {
			if v, err := strconv.ParseFloat(f, 64); err == nil {
				op.args = append(op.args, v)
			}
		}
		out = append(out, op)
		t = t[end+1:]
	}
}

// tracePath adds an absolute M/H/V/L/Z path to the context. It reports
// whether anything was traced.
func tracePath(dc *gg.Context, d string) bool {
	var (
		x, y    float64
		cmd     byte
		nums    []float64
		started bool
	)

	flush := func() {
		switch cmd {
		case 'M', 'L':
			for i := 0; i+1 < len(nums); i += 2 {
				x, y = nums[i], nums[i+1]
				if cmd == 'M' && i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
				started = true
			}
		case 'H':
			for _, v := range nums {
				x = v
				dc.LineTo(x, y)
			}
		case 'V':
			for _, v := range nums {
				y = v
				dc.LineTo(x, y)
			}
		case 'Z':
			dc.ClosePath()
		}
		nums = nums[:0]
	}

	var token strings.Builder
	push := func() {
		if token.Len() == 0 {
			return
		}
		if v, err := strconv.ParseFloat(token.String(), 64); err == nil {
			nums = append(nums, v)
		}
		token.Reset()
	}

	for i := 0; i < len(d); i++ {
		ch := d[i]
		switch {
		case strings.IndexByte("MLHVZmlhvz", ch) >= 0:
			push()
			flush()
			cmd = ch &^ 0x20
		case ch == ',' || ch == ' ':
			push()
		case ch == '-' && token.Len() > 0:
			push()
			token.WriteByte(ch)
		default:
			token.WriteByte(ch)
		}
	}
	push()
	flush()

	return started
}
