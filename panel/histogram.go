package panel

import (
	"fmt"
	"math"
	"strconv"

	"github.com/carbocation/mirreport/layout"
	"github.com/carbocation/mirreport/legend"
	"github.com/carbocation/mirreport/palette"
	"github.com/carbocation/mirreport/reportdata"
	"github.com/carbocation/mirreport/scene"
)

const (
	maxPhredScore = 42

	gradientMaxWidth  = 380
	gradientBarHeight = 6
	gradientTickSize  = 13
	scopeSummaryY     = 36

	phredGoodScore  = 30
	minInsertLength = 18
)

// gradientDomain are the fraction thresholds of the histogram palettes.
var gradientDomain = []float64{.001, .01, .05, .10, .25, .40}

// histogram is a per-bucket heat column: bucket i of a sample is a box
// colored by its share of the sample total.
type histogram struct {
	cfg     Config
	min     int
	max     int
	colors  palette.Threshold
	buckets func(*reportdata.SampleResult) []int

	// Summary line drawn under the gradient: the in-scope share of buckets
	// from summaryFrom upward.
	summaryFrom   int
	summaryFormat string
}

// NewPhred describes the nucleotide PHRED score distribution panel.
func NewPhred(r *reportdata.Report) Descriptor {
	return &histogram{
		cfg: Config{
			ID:            PhredID,
			Title:         "PHRED Score Distribution",
			YAxisLabel:    "PHRED score",
			LegendCaption: "Percentage of all nucleotides",
			LegendHeight:  scopeSummaryY,
		},
		min:           r.MinPhredScore,
		max:           maxPhredScore,
		colors:        palette.Threshold{Domain: gradientDomain, Scheme: palette.Reds7},
		buckets:       func(s *reportdata.SampleResult) []int { return s.Stats.PhredScores },
		summaryFrom:   phredGoodScore - r.MinPhredScore,
		summaryFormat: "PHRED ≥ %d: %s of nucleotides",
	}
}

// NewLength describes the read length distribution panel.
func NewLength(r *reportdata.Report) Descriptor {
	return &histogram{
		cfg: Config{
			ID:            LengthID,
			Title:         "Length Distribution",
			YAxisLabel:    "Read length",
			LegendCaption: "Percentage of all reads",
			LegendHeight:  scopeSummaryY,
		},
		min:           0,
		max:           r.MaxSequenceLength,
		colors:        palette.Threshold{Domain: gradientDomain, Scheme: palette.YlOrBr7},
		buckets:       func(s *reportdata.SampleResult) []int { return s.Stats.Length },
		summaryFrom:   minInsertLength,
		summaryFormat: "Length ≥ %d nt: %s of reads",
	}
}

func (h *histogram) Config() Config { return h.cfg }

func (h *histogram) PlotHeight(l layout.State) (int, int) {
	box := int(math.Round(float64(l.TargetPlotHeight()-1) / float64(h.max+1)))
	return box*(h.max+1) + 1, box
}

func (h *histogram) YAxis(ctx *Context, geo Geometry) (LinearScale, []Tick, float64) {
	scale := LinearScale{
		D0: float64(h.min),
		D1: float64(h.max),
		R0: float64(geo.PlotHeight - geo.BoxHeight + geo.Margins.Top),
		R1: float64(geo.Margins.Top),
	}

	var ticks []Tick
	for v := 0; v < h.max; v += 5 {
		if v < h.min {
			continue
		}
		ticks = append(ticks, Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	ticks = append(ticks, Tick{Value: float64(h.max), Label: "≥" + strconv.Itoa(h.max)})

	return scale, ticks, float64(geo.BoxHeight) / 2
}

func (h *histogram) ReadCount(s *reportdata.SampleResult) int {
	return s.Stats.AllSeqsCount
}

func (h *histogram) RenderSample(ctx *Context, geo Geometry, i int) (*scene.Element, *scene.Element) {
	bg := scene.New("rect").
		SetNum("x", geo.MarkX(i)).
		SetInt("y", geo.Margins.Top).
		SetNum("width", geo.MarkWidth()).
		SetInt("height", geo.PlotHeight+1).
		Set("fill", "#000000")

	g := scene.New("g")

	buckets := h.buckets(ctx.Samples()[i])
	total := reportdata.Sum(buckets)
	if total == 0 {
		return bg, g
	}

	for b, n := range buckets {
		if b > h.max {
			break
		}
		g.Append("rect").
			SetNum("x", geo.MarkX(i)).
			SetInt("y", geo.PlotHeight-(b+1)*geo.BoxHeight+geo.Margins.Top).
			SetNum("width", geo.MarkWidth()).
			SetInt("height", geo.BoxHeight).
			Style("fill", h.colors.Color(float64(n)/float64(total)))
	}

	return bg, g
}

func (h *histogram) RenderLegend(g *scene.Element, ctx *Context, geo Geometry) {
	width := geo.Width - geo.Margins.Right - geo.Margins.Left
	if width > gradientMaxWidth {
		width = gradientMaxWidth
	}
	step := float64(width) / float64(len(h.colors.Scheme))

	for k, color := range h.colors.Scheme {
		g.Append("rect").
			SetNum("x", float64(k)*step).
			SetNum("width", step).
			SetInt("height", gradientBarHeight).
			Style("fill", color)
	}

	axis := g.Append("g").AddClass("key")
	for k, v := range h.colors.Domain {
		tick := axis.Append("g").AddClass("legendTick").Set("transform", scene.Translate(float64(k+1)*step, 0))
		tick.Append("line").SetInt("y2", gradientTickSize).Style("stroke", "#000")
		tick.Append("text").
			SetInt("y", gradientTickSize+3).
			Set("dy", ".71em").
			Style("text-anchor", "middle").
			SetText(gradientLabel(k, v, len(h.colors.Domain)))
	}

	g.Append("text").
		AddClass("legendTableHeader").
		SetInt("y", layout.CaptionOffsetY).
		SetText(h.cfg.LegendCaption)

	g.Append("text").
		AddClass("legendScopeSummary").
		SetInt("y", gradientTickSize+scopeSummaryY-4)
}

func gradientLabel(k int, v float64, n int) string {
	switch k {
	case 0:
		return FormatPercent(v, 1)
	case n - 1:
		return FormatPercent(v, 0)
	}
	return strconv.Itoa(int(math.Round(v * 100)))
}

func (h *histogram) legendSpec() legend.Spec {
	n := h.max - h.min + 1
	if n < 1 {
		n = 1
	}
	names := make([]string, n)
	for i := range names {
		names[i] = strconv.Itoa(h.min + i)
	}
	return legend.Spec{
		Names:  names,
		Counts: h.buckets,
	}
}

func (h *histogram) UpdateLegend(g *scene.Element, ctx *Context) legend.Summary {
	summary := legend.Aggregate(ctx.Selection, ctx.Samples(), h.legendSpec())

	scope := "all samples"
	if ctx.Selection.Active() {
		scope = "selected samples"
	}
	if line := g.Find("legendScopeSummary"); line != nil {
		line.SetText(fmt.Sprintf(h.summaryFormat, h.min+h.summaryFrom, FormatPercent(summary.FractionAtLeast(h.summaryFrom), 1)) + " in " + scope)
	}

	return summary
}
