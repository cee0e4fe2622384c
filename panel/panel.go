// Package panel renders the report's chart panels. Every panel shares one
// pipeline (axes, quality flag glyphs, sample columns, legend) and differs
// only in its Descriptor.
package panel

import (
	"strconv"

	"github.com/BenLubar/memoize"
	"github.com/carbocation/mirreport/binning"
	"github.com/carbocation/mirreport/layout"
	"github.com/carbocation/mirreport/legend"
	"github.com/carbocation/mirreport/reportdata"
	"github.com/carbocation/mirreport/scene"
	"github.com/carbocation/mirreport/selection"
)

const (
	PhredID         = "phred"
	LengthID        = "length"
	QCID            = "qc"
	RNATypeID       = "rnatype"
	ComplexityID    = "complexity"
	ContaminationID = "contamination"
)

// Context carries the shared state every render call reads. The engine owns
// it; panels never mutate it.
type Context struct {
	Report    *reportdata.Report
	Layout    layout.State
	Bins      binning.BinSet
	Selection selection.Snapshot
}

func (c *Context) Samples() []*reportdata.SampleResult {
	return c.Report.Results
}

// Config is the static identity of a panel.
type Config struct {
	ID             string
	Title          string
	YAxisLabel     string
	LegendCaption  string
	LegendHeight   int
	YLabelOffset   int
	KeepSampleAxis bool
}

type Tick struct {
	Value float64
	Label string
}

// Descriptor is implemented once per panel kind.
type Descriptor interface {
	Config() Config

	// PlotHeight returns the plot and box heights for a layout.
	PlotHeight(l layout.State) (plot, box int)

	// YAxis returns the value scale, its ticks and the vertical offset of
	// the axis group.
	YAxis(ctx *Context, geo Geometry) (LinearScale, []Tick, float64)

	// ReadCount is the count shown above a sample's column.
	ReadCount(s *reportdata.SampleResult) int

	// RenderSample returns the background and the mark group of sample i.
	RenderSample(ctx *Context, geo Geometry, i int) (background, marks *scene.Element)

	RenderLegend(g *scene.Element, ctx *Context, geo Geometry)

	// UpdateLegend rescopes the legend to the selection in ctx.
	UpdateLegend(g *scene.Element, ctx *Context) legend.Summary
}

type geometryKey struct {
	PlotHeight       int
	BoxHeight        int
	LegendHeight     int
	FlagStrip        bool
	KeepSampleAxis   bool
	SampleLabelWidth int
	CountLabelWidth  int
}

// Geometry is derived from the layout and the panel's static config only.
type Geometry struct {
	ColumnWidth    int
	PlotWidth      int
	Width          int
	Height         int
	Margins        layout.Margins
	PlotHeight     int
	BoxHeight      int
	Compressed     bool
	ShowAxes       bool
	ShowSampleAxis bool
	FlagStrip      bool
	LegendYOffset  int
}

var memoizedGeometry = memoize.Memoize(computeGeometry)

func geometryFor(l layout.State, k geometryKey) Geometry {
	return memoizedGeometry.(func(layout.State, geometryKey) Geometry)(l, k)
}

func computeGeometry(l layout.State, k geometryKey) Geometry {
	m := l.Margins
	if k.FlagStrip {
		m.Top += layout.QCFlagsOffset
	}

	g := Geometry{
		ColumnWidth:    l.SampleColumnWidth,
		PlotWidth:      l.PlotWidth,
		Width:          l.SVGWidth,
		Margins:        m,
		PlotHeight:     k.PlotHeight,
		BoxHeight:      k.BoxHeight,
		Compressed:     l.Compressed,
		ShowAxes:       !l.Compressed,
		ShowSampleAxis: !l.Compressed || k.KeepSampleAxis,
		FlagStrip:      k.FlagStrip,
	}

	// Room for the rotated tick labels plus the tick marks.
	maxText := 0
	if g.ShowSampleAxis && k.SampleLabelWidth > maxText {
		maxText = k.SampleLabelWidth
	}
	if g.ShowAxes && k.CountLabelWidth > maxText {
		maxText = k.CountLabelWidth
	}
	maxText += 10
	g.LegendYOffset = maxText + 40

	if l.Compressed {
		g.Height = m.Top + k.PlotHeight + 3
		if k.KeepSampleAxis {
			g.Height += maxText
		}
	} else {
		g.Height = k.PlotHeight + m.Top + m.Bottom + g.LegendYOffset + k.LegendHeight
	}

	return g
}

// MarkX is the left edge of sample i's marks.
func (g Geometry) MarkX(i int) float64 {
	return float64(i*g.ColumnWidth + layout.SamplePadding + g.Margins.Left)
}

func (g Geometry) MarkWidth() float64 {
	return float64(g.ColumnWidth - layout.SamplePadding)
}

// CenterX is the horizontal center of sample i's column.
func (g Geometry) CenterX(i int) float64 {
	return g.MarkX(i) + float64(g.ColumnWidth)/2
}

// TickX is the tick offset of sample i within an x axis group.
func (g Geometry) TickX(i int) float64 {
	return float64(g.ColumnWidth)/2 + float64(i*g.ColumnWidth)
}

func (g Geometry) LegendY() int {
	return g.PlotHeight + g.Margins.Top + g.LegendYOffset
}

// Panel is one rendered panel: a descriptor and the scene it owns.
type Panel struct {
	desc Descriptor

	ctx     *Context
	key     geometryKey
	geo     Geometry
	root    *scene.Element
	legend  *scene.Element
	summary legend.Summary
}

func New(d Descriptor) *Panel {
	return &Panel{desc: d}
}

func (p *Panel) ID() string {
	return p.desc.Config().ID
}

func (p *Panel) Config() Config {
	return p.desc.Config()
}

func (p *Panel) Root() *scene.Element {
	return p.root
}

func (p *Panel) Geometry() Geometry {
	return p.geo
}

// Legend returns the legend values of the last selection update.
func (p *Panel) Legend() legend.Summary {
	return p.summary
}

func (p *Panel) staticKey(ctx *Context) geometryKey {
	cfg := p.desc.Config()
	plot, box := p.desc.PlotHeight(ctx.Layout)

	k := geometryKey{
		PlotHeight:     plot,
		BoxHeight:      box,
		LegendHeight:   cfg.LegendHeight,
		KeepSampleAxis: cfg.KeepSampleAxis,
	}

	var names, counts []string
	for _, s := range ctx.Samples() {
		if s.Flag(cfg.ID).Status == reportdata.FlagBad {
			k.FlagStrip = true
		}
		names = append(names, s.Name)
		counts = append(counts, FormatCount(p.desc.ReadCount(s), 3))
	}
	k.SampleLabelWidth = maxTextWidth(names)
	k.CountLabelWidth = maxTextWidth(counts)

	return k
}

// Render builds the panel's scene from scratch and applies the selection in
// ctx.
func (p *Panel) Render(ctx *Context) *scene.Element {
	cfg := p.desc.Config()

	p.ctx = ctx
	p.key = p.staticKey(ctx)
	p.geo = geometryFor(ctx.Layout, p.key)
	geo := p.geo

	svg := scene.New("svg").
		Set("version", "1.1").
		Set("xmlns", "http://www.w3.org/2000/svg").
		Set("data-panel", cfg.ID).
		SetInt("width", geo.Width).
		SetInt("height", geo.Height).
		AddClass("plotSVG")
	style := svg.Append("defs").Append("style").Set("type", "text/css")
	style.Raw = true
	style.SetText(DefaultCSS)

	if geo.ShowSampleAxis {
		p.renderSampleAxis(svg, ctx)
	}
	if geo.ShowAxes {
		p.renderReadCountAxis(svg, ctx)
		p.renderYAxis(svg, ctx)
	}

	p.renderFlags(svg, ctx)

	backgrounds := svg.Append("g").AddClass("sampleColumnBackgrounds")
	marks := svg.Append("g").AddClass("samples")
	for i := range ctx.Samples() {
		bg, m := p.desc.RenderSample(ctx, geo, i)
		bg.AddClass("sampleColumnBackground").SetInt("data-index", i)
		m.AddClass("sample").SetInt("data-index", i)
		backgrounds.AppendElement(bg)
		marks.AppendElement(m)
	}

	p.legend = svg.Append("g").
		AddClass("legendGroup").
		Set("transform", scene.Translate(layout.LegendXMargin, float64(geo.LegendY())))
	p.desc.RenderLegend(p.legend, ctx, geo)

	p.root = svg
	p.applySelection(ctx)

	return svg
}

func (p *Panel) renderSampleAxis(svg *scene.Element, ctx *Context) {
	geo := p.geo
	axis := svg.Append("g").
		AddClass("x", "axis", "sampleAxis").
		Set("transform", scene.Translate(float64(geo.Margins.Left), float64(geo.Margins.Top+geo.PlotHeight)))

	for i, s := range ctx.Samples() {
		tick := axis.Append("g").AddClass("tick").Set("transform", scene.Translate(geo.TickX(i), 0))
		tick.Append("line").Set("x2", "0").Set("y2", "8")
		tick.Append("text").
			Set("y", "11").
			Set("dy", ".5em").
			Set("transform", scene.Rotate(-90, 0, 12)).
			Style("text-anchor", "end").
			SetText(s.Name)
	}

	axis.Append("path").AddClass("domain").Set("d", "M0,6V0H"+strconv.Itoa(geo.PlotWidth)+"V6")
}

func (p *Panel) renderReadCountAxis(svg *scene.Element, ctx *Context) {
	geo := p.geo
	axis := svg.Append("g").
		AddClass("x", "axis", "readCountAxis").
		Set("transform", scene.Translate(float64(geo.Margins.Left-1), float64(geo.Margins.Top)))

	dx := ".4em"
	if geo.FlagStrip {
		dx = "1.4em"
	}

	for i, s := range ctx.Samples() {
		tick := axis.Append("g").AddClass("tick").Set("transform", scene.Translate(geo.TickX(i), 0))
		tick.Append("text").
			Set("dy", ".5em").
			Set("dx", dx).
			Set("transform", scene.Rotate(-90, 0, 0)).
			Style("text-anchor", "start").
			SetText(FormatCount(p.desc.ReadCount(s), 3))
	}
}

func (p *Panel) renderYAxis(svg *scene.Element, ctx *Context) {
	geo := p.geo
	cfg := p.desc.Config()
	scale, ticks, offset := p.desc.YAxis(ctx, geo)

	axis := svg.Append("g").
		AddClass("y", "axis").
		Set("transform", scene.Translate(float64(geo.Margins.Left-2), offset))
	for _, t := range ticks {
		tick := axis.Append("g").AddClass("ytick").Set("transform", scene.Translate(0, scale.At(t.Value)))
		tick.Append("line").Set("x2", "-6").Set("y2", "0")
		tick.Append("text").
			Set("x", "-9").
			Set("dy", ".32em").
			Style("text-anchor", "end").
			SetText(t.Label)
	}
	axis.Append("path").AddClass("domain").
		Set("d", "M-6,"+scene.Num(scale.R0)+"H0V"+scene.Num(scale.R1)+"H-6")

	labelOffset := cfg.YLabelOffset
	if labelOffset == 0 {
		labelOffset = layout.YAxisLabelX
	}
	svg.Append("g").
		Set("transform", scene.Translate(float64(geo.Margins.Left-labelOffset), float64(geo.Margins.Top)+float64(geo.PlotHeight)/2)).
		Append("text").
		AddClass("yAxisLabel").
		Set("transform", scene.Rotate(-90, 0, 0)).
		Set("dy", ".71em").
		SetText(cfg.YAxisLabel)
}

// Relayout patches the existing scene for a new column width. Marks, glyphs,
// backgrounds, ticks and the canvas width move; classes and legend state stay.
func (p *Panel) Relayout(ctx *Context) {
	if p.root == nil {
		return
	}

	p.ctx = ctx
	p.geo = geometryFor(ctx.Layout, p.key)
	geo := p.geo

	p.root.SetInt("width", geo.Width)

	for i, bar := range p.root.FindAll("qcBar") {
		_, y, _ := scene.ParseTranslate(transformOf(bar))
		bar.Set("transform", scene.Translate(geo.CenterX(i), y))
	}

	for i, s := range p.root.FindAll("sample") {
		for _, c := range s.Children {
			switch {
			case c.Tag == "rect":
				c.SetNum("x", geo.MarkX(i)).SetNum("width", geo.MarkWidth())
			case c.HasClass("noCladesDetectedWarning"):
				_, y, _ := scene.ParseTranslate(transformOf(c))
				c.Set("transform", scene.Translate(geo.CenterX(i), y)+scene.Rotate(-90, 0, 0))
			}
		}
	}

	for i, bg := range p.root.FindAll("sampleColumnBackground") {
		bg.SetNum("x", geo.MarkX(i)).SetNum("width", geo.MarkWidth())
	}

	for _, axis := range p.root.FindAll("x") {
		for i, tick := range axis.FindAll("tick") {
			tick.Set("transform", scene.Translate(geo.TickX(i), 0))
		}
		for _, d := range axis.FindAll("domain") {
			d.Set("d", "M0,6V0H"+strconv.Itoa(geo.PlotWidth)+"V6")
		}
	}
}

func transformOf(e *scene.Element) string {
	v, _ := e.Get("transform")
	return v
}

// SelectionChanged applies a new selection to this panel's highlight classes
// and legend.
func (p *Panel) SelectionChanged(snap selection.Snapshot) {
	if p.root == nil {
		return
	}
	local := *p.ctx
	local.Selection = snap
	p.applySelection(&local)
}

func (p *Panel) applySelection(ctx *Context) {
	snap := ctx.Selection

	mark := func(els []*scene.Element) {
		for i, e := range els {
			e.RemoveClass(selection.SelectedClass).RemoveClass(selection.NotSelectedClass)
			e.AddClass(snap.Class(i))
		}
	}

	mark(p.root.FindAll("qcBar"))
	mark(p.root.FindAll("sample"))
	mark(p.root.FindAll("sampleColumnBackground"))
	for _, axis := range p.root.FindAll("x") {
		mark(axis.FindAll("tick"))
	}

	p.summary = p.desc.UpdateLegend(p.legend, ctx)
}
