package panel

import (
	"math"

	"github.com/carbocation/mirreport/binning"
	"github.com/carbocation/mirreport/layout"
	"github.com/carbocation/mirreport/legend"
	"github.com/carbocation/mirreport/palette"
	"github.com/carbocation/mirreport/reportdata"
	"github.com/carbocation/mirreport/scene"
)

const (
	complexityLabelOffset = layout.YAxisLabelX + 20
	complexityColumnStep  = 110
	complexityRows        = 3
	complexityYTicks      = 10
)

// complexity draws, per sample, one band per detection count bin. A band
// spans the read depths at which the sample reached the bin's first and last
// distinct miRNA.
type complexity struct {
	cfg      Config
	bins     binning.BinSet
	colors   []string
	maxDepth int
}

// NewComplexity describes the miRNA complexity panel over the given bins.
func NewComplexity(r *reportdata.Report, bins binning.BinSet) Descriptor {
	maxDepth := 0
	for _, s := range r.Results {
		if s.Stats.AllSeqsCount > maxDepth {
			maxDepth = s.Stats.AllSeqsCount
		}
	}

	return &complexity{
		cfg: Config{
			ID:            ComplexityID,
			Title:         "miRNA Complexity",
			YAxisLabel:    "Read depth",
			LegendCaption: "Distinct miRNA gene count intervals",
			LegendHeight:  30,
			YLabelOffset:  complexityLabelOffset,
		},
		bins:     bins,
		colors:   palette.Purples(len(bins)),
		maxDepth: maxDepth,
	}
}

func (c *complexity) Config() Config { return c.cfg }

func (c *complexity) PlotHeight(l layout.State) (int, int) {
	return l.TargetPlotHeight(), 0
}

func (c *complexity) scales(geo Geometry) (screen, data LinearScale) {
	screen = LinearScale{D1: float64(c.maxDepth), R0: float64(geo.PlotHeight + geo.Margins.Top), R1: float64(geo.Margins.Top)}
	data = LinearScale{D1: float64(c.maxDepth), R0: float64(geo.PlotHeight)}
	return screen, data
}

func (c *complexity) YAxis(ctx *Context, geo Geometry) (LinearScale, []Tick, float64) {
	screen, _ := c.scales(geo)

	var ticks []Tick
	for _, v := range NiceTicks(0, float64(c.maxDepth), complexityYTicks) {
		ticks = append(ticks, Tick{Value: v, Label: FormatCount(int(v), 2)})
	}
	return screen, ticks, 0
}

func (c *complexity) ReadCount(s *reportdata.SampleResult) int {
	return s.Stats.AllSeqsCount
}

// Bands returns the [start,end] read depths of each band of s.
func (c *complexity) Bands(s *reportdata.SampleResult) [][2]int {
	depths := s.Stats.ComplexityReadDepth
	detected := len(depths) - 1

	var out [][2]int
	binStart := 0
	for _, b := range c.bins {
		if b.End >= detected {
			out = append(out, [2]int{reportdata.At(depths, binStart), s.Stats.AllSeqsCount})
			break
		}
		out = append(out, [2]int{reportdata.At(depths, binStart), reportdata.At(depths, b.End)})
		binStart = b.End
	}
	return out
}

func (c *complexity) RenderSample(ctx *Context, geo Geometry, i int) (*scene.Element, *scene.Element) {
	s := ctx.Samples()[i]
	screen, data := c.scales(geo)
	all := float64(s.Stats.AllSeqsCount)

	bg := scene.New("rect").
		SetNum("x", geo.MarkX(i)).
		SetNum("y", math.Floor(screen.At(all))-1).
		SetNum("width", geo.MarkWidth()).
		SetNum("height", float64(geo.PlotHeight)-math.Floor(data.At(all))+2).
		Set("fill", "#000000")

	g := scene.New("g")
	for b, band := range c.Bands(s) {
		height := float64(geo.PlotHeight) - math.Floor(data.At(float64(band[1]-band[0])))
		if height < 0 {
			height = 0
		}
		rect := g.Append("rect").
			SetNum("x", geo.MarkX(i)).
			SetNum("y", math.Floor(screen.At(float64(band[1])))).
			SetNum("width", geo.MarkWidth()).
			SetNum("height", height)
		if b < len(c.colors) {
			rect.Style("fill", c.colors[b])
		}
	}

	return bg, g
}

func (c *complexity) RenderLegend(g *scene.Element, ctx *Context, geo Geometry) {
	for i, b := range c.bins {
		entry := g.Append("g").
			AddClass("legend").
			SetInt("data-index", i).
			Set("transform", scene.Translate(float64(i/complexityRows*complexityColumnStep), float64(i%complexityRows*20)))

		swatch := entry.Append("rect").
			SetInt("width", legendSwatch).
			SetInt("height", legendSwatch).
			Style("stroke", "#000000").
			Style("stroke-width", "1").
			Style("shape-rendering", "crispEdges")
		if i < len(c.colors) {
			swatch.Style("fill", c.colors[i])
		}

		entry.Append("text").
			SetInt("x", legendTextX).
			SetInt("y", legendTextY).
			Set("dy", ".35em").
			Style("text-anchor", "start").
			SetText(b.String())
	}

	g.Append("text").
		AddClass("legendTableHeader").
		SetInt("y", layout.CaptionOffsetY).
		SetText(c.cfg.LegendCaption)
}

func (c *complexity) legendSpec() legend.Spec {
	names := make([]string, len(c.bins))
	for i, b := range c.bins {
		names[i] = b.String()
	}

	return legend.Spec{
		Names:  names,
		Colors: c.colors,
		// Each sample counts once, in the bin of its distinct miRNA count.
		Counts: func(s *reportdata.SampleResult) []int {
			row := make([]int, len(c.bins))
			if len(s.Stats.ComplexityReadDepth) == 0 {
				return row
			}
			d := len(s.Stats.ComplexityReadDepth) - 1
			k := c.bins.Index(d)
			if k < 0 && d > c.bins.Last().End {
				k = len(c.bins) - 1
			}
			if k >= 0 {
				row[k] = 1
			}
			return row
		},
	}
}

// UpdateLegend dims the bins no in-scope sample reaches.
func (c *complexity) UpdateLegend(g *scene.Element, ctx *Context) legend.Summary {
	summary := legend.Aggregate(ctx.Selection, ctx.Samples(), c.legendSpec())
	highest := legend.HighestDetectionCount(ctx.Selection, ctx.Samples())

	entries := g.FindAll("legend")
	for i, b := range c.bins {
		reached := highest >= b.Start
		summary.Entries[i].Detected = reached
		if i < len(entries) {
			entries[i].Style("opacity", opacity(reached, "1", "0.3"))
		}
	}

	return summary
}
