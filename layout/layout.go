// Package layout derives the shared column, plot and canvas widths of the
// report panels from the viewport width, the sample count and the display
// mode.
package layout

const (
	SamplePadding   = 1
	MinSampleWidth  = 12
	MaxSampleWidth  = 35
	FixedMargin     = 110
	MinSVGWidth     = 525
	QCFlagsOffset   = 10
	LegendXMargin   = 30
	CaptionOffsetY  = -8
	YAxisLabelX     = 42
	TargetHeight    = 307
	CompressedPlotH = 80
)

type Margins struct {
	Top, Right, Bottom, Left int
}

var (
	FullMargins       = Margins{Top: 62, Right: 25, Bottom: 25, Left: 70}
	CompressedMargins = Margins{Top: 5, Right: 25, Bottom: 5, Left: 70}
)

// State is the layout every panel renders against. It is a comparable value
// so it can key memoized geometry.
type State struct {
	SampleColumnWidth int
	PlotWidth         int
	SVGWidth          int
	Margins           Margins
	Compressed        bool
}

// TargetPlotHeight is the nominal plot height for the mode.
func (s State) TargetPlotHeight() int {
	if s.Compressed {
		return CompressedPlotH
	}
	return TargetHeight
}

// ColumnWidth returns the per-sample column width. Samples get the maximum
// width while it fits, and otherwise share what is left after the fixed
// margin, never dropping below the minimum.
func ColumnWidth(viewportWidth, sampleCount int) int {
	if sampleCount <= 0 {
		return MaxSampleWidth
	}
	if sampleCount*(MaxSampleWidth+SamplePadding)+FixedMargin <= viewportWidth {
		return MaxSampleWidth
	}

	w := (viewportWidth - FixedMargin) / sampleCount
	if w < MinSampleWidth {
		w = MinSampleWidth
	}
	return w
}

func PlotWidth(columnWidth, sampleCount int) int {
	return columnWidth * sampleCount
}

func SVGWidth(plotWidth int, m Margins) int {
	w := plotWidth + m.Left + m.Right
	if w < MinSVGWidth {
		return MinSVGWidth
	}
	return w
}

// Compute returns the full layout state.
func Compute(viewportWidth, sampleCount int, compressed bool) State {
	m := FullMargins
	if compressed {
		m = CompressedMargins
	}

	cw := ColumnWidth(viewportWidth, sampleCount)
	pw := PlotWidth(cw, sampleCount)

	return State{
		SampleColumnWidth: cw,
		PlotWidth:         pw,
		SVGWidth:          SVGWidth(pw, m),
		Margins:           m,
		Compressed:        compressed,
	}
}

// Engine owns the current layout state. Recompute is the only mutator.
type Engine struct {
	sampleCount int
	current     State
}

func NewEngine(viewportWidth, sampleCount int, compressed bool) *Engine {
	return &Engine{
		sampleCount: sampleCount,
		current:     Compute(viewportWidth, sampleCount, compressed),
	}
}

func (e *Engine) State() State {
	return e.current
}

// Recompute updates the state for a new viewport width and reports whether
// the column width changed. Only a column width change requires panels to be
// patched.
func (e *Engine) Recompute(viewportWidth int) (State, bool) {
	next := Compute(viewportWidth, e.sampleCount, e.current.Compressed)
	changed := next.SampleColumnWidth != e.current.SampleColumnWidth
	e.current = next
	return next, changed
}

// SetCompressed switches mode and returns the new state. Switching mode changes
// margins and plot heights, so callers rebuild rather than patch.
func (e *Engine) SetCompressed(viewportWidth int, compressed bool) State {
	e.current = Compute(viewportWidth, e.sampleCount, compressed)
	return e.current
}
