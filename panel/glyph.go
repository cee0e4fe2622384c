package panel

import (
	"strings"

	"github.com/carbocation/mirreport/layout"
	"github.com/carbocation/mirreport/reportdata"
	"github.com/carbocation/mirreport/scene"
)

const (
	glyphColor     = "#cd1c1c"
	glyphRadius    = 5
	calloutSize    = 400
	calloutNameN   = 10
	calloutNameMax = 12

	calloutOffset           = 40
	calloutCompressedOffset = 145
)

// renderFlags draws one qcBar group per sample. Only bad flags get a glyph.
func (p *Panel) renderFlags(svg *scene.Element, ctx *Context) {
	geo := p.geo
	id := p.desc.Config().ID

	strip := svg.Append("g").AddClass("qc_flags_bar")
	for i, s := range ctx.Samples() {
		bar := strip.Append("g").
			AddClass("qcBar").
			SetInt("data-index", i).
			Set("transform", scene.Translate(geo.CenterX(i), float64(geo.Margins.Top-layout.QCFlagsOffset)))

		if s.Flag(id).Status != reportdata.FlagBad {
			continue
		}

		entry := bar.Append("g").AddClass("qcBarEntry").Set("data-panel", id)
		entry.Append("circle").
			SetInt("r", glyphRadius).
			Style("fill", glyphColor)
		entry.Append("text").
			Set("dy", ".35em").
			Style("text-anchor", "middle").
			Style("fill", "#ffffff").
			Style("font-weight", "bold").
			SetText("!")
	}
}

// Callout is the transient detail popover of one flag glyph.
type Callout struct {
	PanelID string
	Sample  int
	Top     float64
	Root    *scene.Element
}

// Callout builds the detail popover for the glyph of sample i, opened at
// pointer height pointerY. It returns false when the sample's flag in this
// panel is not bad.
func (p *Panel) Callout(i int, pointerY float64) (*Callout, bool) {
	if p.ctx == nil || i < 0 || i >= len(p.ctx.Samples()) {
		return nil, false
	}

	cfg := p.desc.Config()
	s := p.ctx.Samples()[i]
	flag := s.Flag(cfg.ID)
	if flag.Status != reportdata.FlagBad {
		return nil, false
	}

	top := pointerY - calloutOffset
	if p.geo.Compressed {
		top = pointerY - calloutCompressedOffset
	}

	svg := scene.New("svg").
		Set("version", "1.1").
		Set("xmlns", "http://www.w3.org/2000/svg").
		SetInt("width", calloutSize).
		SetInt("height", calloutSize).
		AddClass("callout")
	g := svg.Append("g").AddClass("bigWarningGroup").Set("transform", scene.Translate(20, 20))

	g.Append("circle").Set("r", "10").Style("fill", glyphColor)
	g.Append("text").
		Set("dy", ".35em").
		Style("text-anchor", "middle").
		Style("fill", "#ffffff").
		Style("font-weight", "bold").
		SetText("!")

	g.Append("text").
		AddClass("calloutSampleName").
		Set("x", "20").
		Set("dy", ".35em").
		SetText(truncateName(s.Name))
	g.Append("text").
		AddClass("calloutClose").
		SetInt("x", calloutSize-50).
		Set("dy", ".35em").
		SetText("[x]")

	g.Append("text").
		AddClass("calloutMessage").
		Set("y", "30").
		Style("font-weight", "bold").
		SetText(flag.Message)

	y := 50
	for _, line := range strings.Split(p.ctx.Report.QCCriteriaVerbose[cfg.ID], "\n") {
		g.Append("text").
			AddClass("calloutCriteria").
			SetInt("y", y).
			SetText(line)
		y += 16
	}

	return &Callout{PanelID: cfg.ID, Sample: i, Top: top, Root: svg}, true
}

func truncateName(name string) string {
	r := []rune(name)
	if len(r) > calloutNameMax {
		return string(r[:calloutNameN]) + "..."
	}
	return name
}
