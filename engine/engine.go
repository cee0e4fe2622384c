// Package engine wires the report panels, the shared layout and the sample
// selection into one event loop. Every state change happens in Dispatch, one
// event at a time.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/carbocation/mirreport/binning"
	"github.com/carbocation/mirreport/export"
	"github.com/carbocation/mirreport/layout"
	"github.com/carbocation/mirreport/monitor"
	"github.com/carbocation/mirreport/panel"
	"github.com/carbocation/mirreport/reportdata"
	"github.com/carbocation/mirreport/selection"
)

const (
	UnknownModeAlert = "Unknown miRTrace mode."
	NoDownloadNotice = "Download not supported on this platform."

	queueSize = 64
)

// Host is the surface the report is displayed on.
type Host interface {
	selection.Scroller

	ViewportWidth() int
	Alert(msg string)
	Notice(msg string)
}

type Options struct {
	Tool       string
	Compressed bool
	Logger     *log.Logger

	// Exporter writes panel downloads. Without one, export requests only
	// produce a host notice.
	Exporter *export.Exporter

	// PollInterval enables the viewport monitor in Run. Zero disables it.
	PollInterval time.Duration

	// Post replaces the internal queue for hosts that run their own event
	// loop and call Dispatch themselves.
	Post func(Event)
}

type Engine struct {
	report *reportdata.Report
	host   Host
	opts   Options
	logger *log.Logger

	layout *layout.Engine
	bins   binning.BinSet
	ctx    *panel.Context
	sel    *selection.Controller

	panels []*panel.Panel
	byID   map[string]*panel.Panel

	rows     []reportdata.SampleRow
	rowClass []string
	callout  *panel.Callout

	queue chan Event
}

// Descriptors returns the panels of a report in display order.
func Descriptors(r *reportdata.Report, bins binning.BinSet) []panel.Descriptor {
	if r.Mode == reportdata.ModeTrace {
		return []panel.Descriptor{panel.NewContamination(r)}
	}

	return []panel.Descriptor{
		panel.NewPhred(r),
		panel.NewLength(r),
		panel.NewQC(),
		panel.NewRNAType(r),
		panel.NewComplexity(r, bins),
		panel.NewContamination(r),
	}
}

// New builds every panel of r against the host's current viewport.
func New(r *reportdata.Report, host Host, opts Options) (*Engine, error) {
	if err := r.CheckMode(); err != nil {
		host.Alert(UnknownModeAlert)
		return nil, err
	}

	if opts.Tool == "" {
		opts.Tool = "miRTrace"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	n := len(r.Results)
	e := &Engine{
		report: r,
		host:   host,
		opts:   opts,
		logger: logger,
		layout: layout.NewEngine(host.ViewportWidth(), n, opts.Compressed),
		bins:   binning.Compute(r.MaxDetectionCount()),
		byID:   make(map[string]*panel.Panel),
		rows:   r.SampleTable(),
		queue:  make(chan Event, queueSize),
	}

	descs := Descriptors(r, e.bins)
	e.sel = selection.NewController(n, len(descs), host)
	e.ctx = &panel.Context{
		Report:    r,
		Layout:    e.layout.State(),
		Bins:      e.bins,
		Selection: e.sel.Snapshot(),
	}

	// The shared context must see a snapshot before any panel does.
	e.sel.Observe(selection.ObserverFunc(func(s selection.Snapshot) { e.ctx.Selection = s }))
	for _, d := range descs {
		p := panel.New(d)
		e.panels = append(e.panels, p)
		e.byID[p.ID()] = p
		e.sel.Observe(p)
	}
	e.sel.Observe(selection.ObserverFunc(e.updateRows))

	for _, p := range e.panels {
		p.Render(e.ctx)
	}
	e.updateRows(e.ctx.Selection)

	logger.Printf("Rendered %d panel(s) for %d sample(s) in %s mode\n", len(e.panels), n, r.Mode)

	return e, nil
}

func (e *Engine) updateRows(s selection.Snapshot) {
	e.rowClass = make([]string, len(e.rows))
	for i := range e.rows {
		e.rowClass[i] = s.Class(i)
	}
}

func (e *Engine) Report() *reportdata.Report { return e.report }

func (e *Engine) Tool() string { return e.opts.Tool }

func (e *Engine) Panels() []*panel.Panel { return e.panels }

// Panel returns the panel with the given id, or nil.
func (e *Engine) Panel(id string) *panel.Panel { return e.byID[id] }

func (e *Engine) Layout() layout.State { return e.ctx.Layout }

func (e *Engine) Bins() binning.BinSet { return e.bins }

func (e *Engine) Selection() selection.Snapshot { return e.sel.Snapshot() }

// Callout returns the open detail callout, if any.
func (e *Engine) Callout() *panel.Callout { return e.callout }

func (e *Engine) SampleRows() []reportdata.SampleRow { return e.rows }

// RowClass is the highlight class of sample table row i.
func (e *Engine) RowClass(i int) string {
	if i < 0 || i >= len(e.rowClass) {
		return ""
	}
	return e.rowClass[i]
}

// Post hands ev to the event loop.
func (e *Engine) Post(ev Event) {
	if e.opts.Post != nil {
		e.opts.Post(ev)
		return
	}
	e.queue <- ev
}

// postTick drops the tick when the loop is behind; the next one carries the
// same information.
func (e *Engine) postTick() {
	ev := Event{Kind: KindTick}
	if e.opts.Post != nil {
		e.opts.Post(ev)
		return
	}
	select {
	case e.queue <- ev:
	default:
	}
}

// Run processes posted events until ctx is done. With a poll interval set,
// it also checks the viewport on every tick.
func (e *Engine) Run(ctx context.Context) error {
	if e.opts.PollInterval > 0 {
		m := monitor.New(e.opts.PollInterval, e.postTick)
		m.Start()
		defer m.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-e.queue:
			e.Dispatch(ev)
		}
	}
}

// Monitor returns a viewport monitor that posts ticks to this engine, for
// hosts that drive Dispatch themselves.
func (e *Engine) Monitor(interval time.Duration) *monitor.Monitor {
	return monitor.New(interval, e.postTick)
}

// Dispatch runs the handler of ev to completion and returns the ids of the
// panels whose scenes changed.
func (e *Engine) Dispatch(ev Event) []string {
	h, ok := handlers[ev.Kind]
	if !ok {
		e.logger.Printf("Ignoring event of unknown kind %d\n", ev.Kind)
		return nil
	}

	return h(e, ev)
}

func (e *Engine) allPanels() []string {
	out := make([]string, len(e.panels))
	for i, p := range e.panels {
		out[i] = p.ID()
	}
	return out
}
