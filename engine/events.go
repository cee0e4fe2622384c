package engine

import (
	"github.com/carbocation/mirreport/selection"
)

type Kind int

const (
	KindClick Kind = iota + 1
	KindBackground
	KindKey
	KindTick
	KindCompressToggle
	KindGlyph
	KindCloseCallout
	KindExport
	KindSelect
)

func (k Kind) String() string {
	switch k {
	case KindClick:
		return "click"
	case KindBackground:
		return "background"
	case KindKey:
		return "key"
	case KindTick:
		return "tick"
	case KindCompressToggle:
		return "compress"
	case KindGlyph:
		return "glyph"
	case KindCloseCallout:
		return "close-callout"
	case KindExport:
		return "export"
	case KindSelect:
		return "select"
	}
	return "unknown"
}

// Event is one input to the engine. Only the fields of its Kind are read.
type Event struct {
	Kind Kind

	// Click, glyph
	Sample int
	Mods   selection.Modifiers

	// Key
	Key selection.Key

	// Glyph, export
	Panel    string
	PointerY float64
	Ext      string

	// Select
	Selected []bool
}

type handler func(e *Engine, ev Event) []string

var handlers = map[Kind]handler{
	KindClick:          (*Engine).handleClick,
	KindBackground:     (*Engine).handleBackground,
	KindKey:            (*Engine).handleKey,
	KindTick:           (*Engine).handleTick,
	KindCompressToggle: (*Engine).handleCompress,
	KindGlyph:          (*Engine).handleGlyph,
	KindCloseCallout:   (*Engine).handleCloseCallout,
	KindExport:         (*Engine).handleExport,
	KindSelect:         (*Engine).handleSelect,
}

func (e *Engine) handleClick(ev Event) []string {
	if ev.Sample < 0 || ev.Sample >= len(e.report.Results) {
		return nil
	}
	e.sel.Click(ev.Sample, ev.Mods)
	return e.allPanels()
}

// handleBackground clears the selection and closes the callout, unless the
// multi-select modifier is held.
func (e *Engine) handleBackground(ev Event) []string {
	if !e.sel.BackgroundClick(ev.Mods) {
		return nil
	}
	e.callout = nil
	return e.allPanels()
}

func (e *Engine) handleKey(ev Event) []string {
	before := e.sel.Snapshot()
	if !e.sel.Key(ev.Key, ev.Mods) {
		return nil
	}

	switch ev.Key {
	case selection.KeyUp, selection.KeyDown:
		return nil
	case selection.KeyLeft, selection.KeyRight:
		if !before.Active() {
			return nil
		}
	}
	return e.allPanels()
}

// handleTick relayouts every panel when the viewport width moved the column
// width. The callout is anchored to stale coordinates, so it closes.
func (e *Engine) handleTick(ev Event) []string {
	st, changed := e.layout.Recompute(e.host.ViewportWidth())
	if !changed {
		return nil
	}

	e.ctx.Layout = st
	e.callout = nil
	for _, p := range e.panels {
		p.Relayout(e.ctx)
	}
	return e.allPanels()
}

// handleCompress rebuilds every panel in the other display mode. The
// selection survives through the shared context.
func (e *Engine) handleCompress(ev Event) []string {
	st := e.layout.SetCompressed(e.host.ViewportWidth(), !e.ctx.Layout.Compressed)

	e.ctx.Layout = st
	e.callout = nil
	for _, p := range e.panels {
		p.Render(e.ctx)
	}
	return e.allPanels()
}

func (e *Engine) handleGlyph(ev Event) []string {
	p := e.byID[ev.Panel]
	if p == nil {
		return nil
	}
	c, ok := p.Callout(ev.Sample, ev.PointerY)
	if !ok {
		return nil
	}
	e.callout = c
	return []string{ev.Panel}
}

func (e *Engine) handleCloseCallout(ev Event) []string {
	if e.callout == nil {
		return nil
	}
	id := e.callout.PanelID
	e.callout = nil
	return []string{id}
}

func (e *Engine) handleExport(ev Event) []string {
	p := e.byID[ev.Panel]
	if p == nil {
		e.logger.Printf("Export requested for unknown panel %q\n", ev.Panel)
		return nil
	}
	if e.opts.Exporter == nil {
		e.host.Notice(NoDownloadNotice)
		return nil
	}

	path := e.opts.Exporter.Export(p.ID(), p.Root(), ev.Ext)
	e.logger.Printf("Exporting %s\n", path)
	return nil
}

func (e *Engine) handleSelect(ev Event) []string {
	e.sel.Set(ev.Selected)
	return e.allPanels()
}
