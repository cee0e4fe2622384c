package panel

import (
	"fmt"
	"strconv"

	"github.com/carbocation/mirreport/layout"
	"github.com/carbocation/mirreport/legend"
	"github.com/carbocation/mirreport/palette"
	"github.com/carbocation/mirreport/reportdata"
	"github.com/carbocation/mirreport/scene"
)

const (
	legendSwatch     = 14
	legendTextX      = 18
	legendTextY      = 7
	legendPillWidth  = 56
	legendPillHeight = 18
	legendPillRadius = 6
	legendPillColor  = "#303030"
	legendPillOffset = 3
	legendPillText   = 48

	noCladesDetected = "― No clades detected ―"
)

var (
	QCStatusNames = []string{
		"Low PHRED score",
		"Low complexity",
		"Length < 18 nt",
		"Adapter not detected",
		"Adapter detected, insert ≥ 18 nt",
	}

	RNATypeNames = []string{"miRNA", "rRNA", "tRNA", "Artifacts", "Unknown"}

	CladeDisplayNames = []string{
		"Bryophytes", "Lycopods", "Gymnosperms", "Monocots", "Dicots",
		"Sponges",
		"Nematode", "Insects", "Lophotrochozoa", "Echinoderms",
		"Fish", "Birds/Reptiles", "Rodents", "Primates",
	}
)

type legendText struct {
	X, Y   int
	Class  string
	Anchor string
	Text   string
}

// tableLegend is the layout of a category legend: one row per category with
// a swatch, a name, a fraction pill and optionally the detected and total
// reference counts.
type tableLegend struct {
	rowY    func(i int) int
	pillX   int
	refX    []int
	format  string
	headers []legendText
}

// stacked draws each sample as a cumulative bar of category fractions.
type stacked struct {
	cfg         Config
	spec        legend.Spec
	topDown     bool
	placeholder string
	readCount   func(*reportdata.SampleResult) int
	legend      tableLegend
}

// NewQC describes the QC status panel. Its categories stack top-down so the
// discarded reads sit above the retained ones.
func NewQC() Descriptor {
	rows := []int{120, 100, 80, 40, 20}
	return &stacked{
		cfg: Config{
			ID:           QCID,
			Title:        "QC Status",
			YAxisLabel:   "Reads (%)",
			LegendHeight: 110,
		},
		spec: legend.Spec{
			Names:  QCStatusNames,
			Colors: palette.Greens5,
			Counts: func(s *reportdata.SampleResult) []int { return s.Stats.QC },
		},
		topDown:   true,
		readCount: func(s *reportdata.SampleResult) int { return s.Stats.AllSeqsCount },
		legend: tableLegend{
			rowY:    func(i int) int { return rows[i] },
			pillX:   297,
			format:  "%3.1f%%",
			headers: []legendText{
				{X: legendTextX, Y: legendTextY, Class: "legendCategoryHeader", Text: "― Retained ―"},
				{X: legendTextX, Y: 60 + legendTextY, Class: "legendCategoryHeader", Text: "― Discarded ―"},
				{X: legendTextX, Y: layout.CaptionOffsetY, Class: "legendTableHeader", Text: "QC status"},
				{X: 300, Y: layout.CaptionOffsetY, Class: "legendTableHeader", Text: "Fraction (%)"},
			},
		},
	}
}

// NewRNAType describes the RNA type composition panel.
func NewRNAType(r *reportdata.Report) Descriptor {
	return &stacked{
		cfg: Config{
			ID:           RNATypeID,
			Title:        "RNA Type Composition",
			YAxisLabel:   "Quality filtered reads (%)",
			LegendHeight: 90,
		},
		spec: legend.Spec{
			Names:  RNATypeNames,
			Colors: palette.Reversed(palette.Blues5),
			Counts: func(s *reportdata.SampleResult) []int { return s.Stats.RNAType },
			Found: func(s *reportdata.SampleResult, i int) []string {
				if i >= len(s.Stats.FoundRNAReads) {
					return nil
				}
				ids := make([]string, len(s.Stats.FoundRNAReads[i]))
				for k, id := range s.Stats.FoundRNAReads[i] {
					ids[k] = strconv.Itoa(id)
				}
				return ids
			},
			// Unknown has no reference set.
			TotalRefs: firstN(r.RNATypeRefSeqCounts, len(RNATypeNames)-1),
		},
		readCount: func(s *reportdata.SampleResult) int { return reportdata.Sum(s.Stats.RNAType) },
		legend: tableLegend{
			rowY:    func(i int) int { return i*20 + 18 },
			pillX:   107,
			refX:    []int{299, 373},
			format:  "%.1f%%",
			headers: refHeaders("RNA type", 110, "― Reference seqs ―", 373),
		},
	}
}

// NewContamination describes the clade contamination panel. In trace mode it
// is the only panel and carries a different title.
func NewContamination(r *reportdata.Report) Descriptor {
	title := "Contamination Check"
	if r.Mode == reportdata.ModeTrace {
		title = "Clade-Specific miRNA Profile"
	}

	n := len(CladeDisplayNames)
	return &stacked{
		cfg: Config{
			ID:             ContaminationID,
			Title:          title,
			YAxisLabel:     "Clade-specific miRNAs (%)",
			LegendHeight:   275,
			KeepSampleAxis: true,
		},
		spec: legend.Spec{
			Names:  CladeDisplayNames,
			Colors: palette.Clades,
			Counts: func(s *reportdata.SampleResult) []int { return s.Stats.Clades },
			Found: func(s *reportdata.SampleResult, i int) []string {
				if i >= len(s.Stats.FoundCladeFamilies) {
					return nil
				}
				return s.Stats.FoundCladeFamilies[i]
			},
			TotalRefs: firstN(r.CladeRefFamilyCounts, n),
		},
		placeholder: noCladesDetected,
		readCount:   func(s *reportdata.SampleResult) int { return reportdata.Sum(s.Stats.Clades) },
		legend: tableLegend{
			// Animals on top.
			rowY:    func(i int) int { return (n-1-i)*20 + 18 },
			pillX:   137,
			refX:    []int{299, 371},
			format:  "%.1f%%",
			headers: refHeaders("Clade", 140, "― miRNA families ―", 371),
		},
	}
}

func refHeaders(name string, fractionX int, group string, totalX int) []legendText {
	y := layout.CaptionOffsetY + 18
	return []legendText{
		{X: legendTextX, Y: y, Class: "legendTableHeader", Text: name},
		{X: fractionX, Y: y, Class: "legendTableHeader", Text: "Fraction (%)"},
		{X: 240, Y: layout.CaptionOffsetY, Class: "legendCategoryHeader", Text: group},
		{X: 299, Y: y, Class: "legendTableHeader", Anchor: "end", Text: "Detected"},
		{X: totalX, Y: y, Class: "legendTableHeader", Anchor: "end", Text: "Total"},
	}
}

// firstN returns xs[:n], padded with zeros.
func firstN(xs []int, n int) []int {
	out := make([]int, n)
	copy(out, xs)
	return out
}

func (s *stacked) Config() Config { return s.cfg }

func (s *stacked) PlotHeight(l layout.State) (int, int) {
	return l.TargetPlotHeight(), 0
}

func (s *stacked) YAxis(ctx *Context, geo Geometry) (LinearScale, []Tick, float64) {
	scale := LinearScale{
		D0: 0,
		D1: 1,
		R0: float64(geo.PlotHeight + geo.Margins.Top),
		R1: float64(geo.Margins.Top),
	}
	ticks := make([]Tick, len(Deciles))
	for i, d := range Deciles {
		ticks[i] = Tick{Value: d, Label: FormatDecile(d)}
	}
	return scale, ticks, 0
}

func (s *stacked) ReadCount(sample *reportdata.SampleResult) int {
	return s.readCount(sample)
}

func (s *stacked) RenderSample(ctx *Context, geo Geometry, i int) (*scene.Element, *scene.Element) {
	bg := scene.New("rect").
		SetNum("x", geo.MarkX(i)).
		SetInt("y", geo.Margins.Top-1).
		SetNum("width", geo.MarkWidth()).
		SetInt("height", geo.PlotHeight+2).
		Set("fill", "#000000")

	g := scene.New("g")

	counts := s.spec.Counts(ctx.Samples()[i])
	total := reportdata.Sum(counts)
	if total == 0 {
		if s.placeholder != "" {
			y := float64(geo.Margins.Top-1) + float64(geo.PlotHeight)/2
			g.Append("text").
				AddClass("noCladesDetectedWarning").
				Set("transform", scene.Translate(geo.CenterX(i), y)+scene.Rotate(-90, 0, 0)).
				Set("dy", ".31em").
				Style("text-anchor", "middle").
				SetText(s.placeholder)
		}
		return bg, g
	}

	plotH := float64(geo.PlotHeight)
	top := float64(geo.Margins.Top)
	var lo float64
	for c, n := range counts {
		hi := lo + float64(n)/float64(total)

		y := lo*plotH + top
		if !s.topDown {
			y = plotH - hi*plotH + top
		}

		rect := g.Append("rect").
			SetNum("x", geo.MarkX(i)).
			SetNum("y", y).
			SetNum("width", geo.MarkWidth()).
			SetNum("height", (hi-lo)*plotH)
		if c < len(s.spec.Colors) {
			rect.Style("fill", s.spec.Colors[c])
		}

		lo = hi
	}

	return bg, g
}

func (s *stacked) RenderLegend(g *scene.Element, ctx *Context, geo Geometry) {
	l := s.legend

	for i, name := range s.spec.Names {
		entry := g.Append("g").
			AddClass("legend").
			SetInt("data-index", i).
			Set("transform", scene.Translate(0, float64(l.rowY(i))))

		entry.Append("rect").
			SetInt("width", legendSwatch).
			SetInt("height", legendSwatch).
			Style("stroke", "#000000").
			Style("stroke-width", "1").
			Style("shape-rendering", "crispEdges").
			Style("fill", s.spec.Colors[i%len(s.spec.Colors)])
		entry.Append("text").
			AddClass("legendCol1").
			SetInt("x", legendTextX).
			SetInt("y", legendTextY).
			Set("dy", ".35em").
			Style("text-anchor", "start").
			SetText(name)
		entry.Append("rect").
			AddClass("legendCol2").
			SetInt("x", l.pillX).
			Set("y", "-2").
			SetInt("rx", legendPillRadius).
			SetInt("ry", legendPillRadius).
			SetInt("width", legendPillWidth).
			SetInt("height", legendPillHeight).
			Style("fill", legendPillColor)
		entry.Append("text").
			AddClass("legendCol2").
			SetInt("x", l.pillX+legendPillOffset+legendPillText).
			SetInt("y", legendTextY).
			Set("dy", ".35em").
			Style("text-anchor", "end").
			Style("fill", "#fff")

		for k, x := range l.refX {
			entry.Append("text").
				AddClass("legendCol"+strconv.Itoa(k+3)).
				SetInt("x", x).
				SetInt("y", legendTextY).
				Set("dy", ".35em").
				Style("text-anchor", "end")
		}
	}

	for _, h := range l.headers {
		t := g.Append("text").
			AddClass(h.Class).
			SetInt("x", h.X).
			SetInt("y", h.Y).
			SetText(h.Text)
		if h.Anchor != "" {
			t.Style("text-anchor", h.Anchor)
		}
	}
}

func (s *stacked) UpdateLegend(g *scene.Element, ctx *Context) legend.Summary {
	summary := legend.Aggregate(ctx.Selection, ctx.Samples(), s.spec)

	entries := g.FindAll("legend")
	for i, e := range summary.Entries {
		if i >= len(entries) {
			break
		}
		row := entries[i]

		row.Style("opacity", opacity(e.Detected, "1", "0.3"))

		for _, c := range row.FindAll("legendCol2") {
			if c.Tag == "rect" {
				c.Style("opacity", opacity(e.Detected, "1", "0"))
				continue
			}
			c.SetText(fmt.Sprintf(s.legend.format, e.Fraction*100))
		}

		detected, total := "-", "-"
		if e.HasRefs {
			detected, total = strconv.Itoa(e.DetectedRefs), strconv.Itoa(e.TotalRefs)
		}
		if c := row.Find("legendCol3"); c != nil {
			c.SetText(detected)
		}
		if c := row.Find("legendCol4"); c != nil {
			c.SetText(total)
		}
	}

	return summary
}

func opacity(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}
