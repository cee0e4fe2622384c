package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carbocation/mirreport/compileinfo"
	"github.com/carbocation/mirreport/config"
	"github.com/carbocation/mirreport/engine"
	"github.com/carbocation/mirreport/export"
	"github.com/carbocation/mirreport/panel"
	"github.com/carbocation/mirreport/reportdata"
	"github.com/carbocation/mirreport/selection"
)

const (
	// cellWidth is the number of report pixels one terminal column stands for.
	cellWidth = 8

	sampleCellWidth = 10
)

// tuiHost records what the engine asks of the terminal.
type tuiHost struct {
	cols       int
	xOffset    int
	focusPanel int
	status     string
}

func (h *tuiHost) ViewportWidth() int { return h.cols * cellWidth }
func (h *tuiHost) TopMenuHeight() int { return 0 }

func (h *tuiHost) ScrollBy(dx, dy int) {
	h.xOffset += dx / cellWidth
	if h.xOffset < 0 {
		h.xOffset = 0
	}
}

func (h *tuiHost) ScrollIntoView(panel int) { h.focusPanel = panel }
func (h *tuiHost) Alert(msg string)         { h.status = "Alert: " + msg }
func (h *tuiHost) Notice(msg string)        { h.status = msg }

type exportedMsg struct {
	path string
	err  error
}

var headerStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("4")).
	Foreground(lipgloss.Color("15")).
	Bold(true).
	Padding(0, 1)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("250")).
	Padding(0, 1)

var activePanelStyle = lipgloss.NewStyle().
	Border(lipgloss.ThickBorder()).
	BorderForeground(lipgloss.Color("39")).
	Padding(0, 1)

var calloutStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(lipgloss.Color("#cd1c1c")).
	Padding(0, 1)

var (
	selectedStyle    = lipgloss.NewStyle().Reverse(true).Bold(true)
	notSelectedStyle = lipgloss.NewStyle().Faint(true)
	cursorStyle      = lipgloss.NewStyle().Underline(true)
	glyphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#cd1c1c")).Bold(true)
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

type model struct {
	e    *engine.Engine
	host *tuiHost

	// cursor is the sample the enter, space and g keys act on.
	cursor int

	winHeight    int
	scrollOffset int
}

// newViewer builds the model for report. Events the engine posts, such as
// monitor ticks, and export results are handed to send.
func newViewer(report *reportdata.Report, cfg *config.Config, send func(tea.Msg)) (*model, *export.Exporter, error) {
	host := &tuiHost{cols: cfg.Report.ViewportWidth / cellWidth}
	exporter := &export.Exporter{
		Dir:  cfg.Export.Dir,
		Tool: cfg.Report.Tool,
		Done: func(path string, err error) {
			send(exportedMsg{path: path, err: err})
		},
	}

	e, err := engine.New(report, host, engine.Options{
		Tool:       cfg.Report.Tool,
		Compressed: cfg.Report.Compressed,
		Exporter:   exporter,
		Post:       func(ev engine.Event) { send(ev) },
	})
	if err != nil {
		return nil, nil, err
	}
	if len(cfg.Report.Selected) > 0 {
		e.Dispatch(engine.Event{Kind: engine.KindSelect, Selected: cfg.Report.SelectionVector(len(report.Results))})
	}

	return &model{e: e, host: host, winHeight: 24}, exporter, nil
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case engine.Event:
		m.e.Dispatch(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.host.cols = msg.Width
		m.winHeight = msg.Height
		m.e.Dispatch(engine.Event{Kind: engine.KindTick})
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.host.status = fmt.Sprintf("Export of %s failed: %v", msg.path, msg.err)
		} else {
			m.host.status = "Wrote " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	samples := len(m.e.Report().Results)

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "[":
		if m.cursor > 0 {
			m.cursor--
		}
	case "]":
		if m.cursor < samples-1 {
			m.cursor++
		}
	case "enter":
		m.e.Dispatch(engine.Event{Kind: engine.KindClick, Sample: m.cursor})
	case " ":
		m.e.Dispatch(engine.Event{Kind: engine.KindClick, Sample: m.cursor, Mods: selection.Modifiers{Ctrl: true}})
	case "x":
		m.e.Dispatch(engine.Event{Kind: engine.KindBackground})
	case "c":
		m.e.Dispatch(engine.Event{Kind: engine.KindCompressToggle})
	case "g":
		if p := m.focused(); p != nil {
			m.e.Dispatch(engine.Event{Kind: engine.KindGlyph, Panel: p.ID(), Sample: m.cursor})
		}
	case "e":
		if p := m.focused(); p != nil {
			m.e.Dispatch(engine.Event{Kind: engine.KindExport, Panel: p.ID(), Ext: "png"})
		}
	case "E":
		for _, p := range m.e.Panels() {
			m.e.Dispatch(engine.Event{Kind: engine.KindExport, Panel: p.ID(), Ext: "svg"})
		}
	case "pgdown":
		m.scrollOffset += 5
	case "pgup":
		m.scrollOffset -= 5
		if m.scrollOffset < 0 {
			m.scrollOffset = 0
		}

	case "esc":
		if m.e.Callout() != nil {
			m.e.Dispatch(engine.Event{Kind: engine.KindCloseCallout})
			return m, nil
		}
		fallthrough
	default:
		if k := selection.ParseKey(msg.String()); k != selection.KeyNone {
			m.e.Dispatch(engine.Event{Kind: engine.KindKey, Key: k})
		}
	}

	return m, nil
}

func (m *model) focused() *panel.Panel {
	ps := m.e.Panels()
	f := m.e.Selection().Focus
	if f < 0 || f >= len(ps) {
		return nil
	}
	return ps[f]
}

func (m *model) renderSamples(p *panel.Panel) string {
	snap := m.e.Selection()
	var cells []string
	for i, s := range m.e.Report().Results {
		if i < m.host.xOffset {
			continue
		}

		name := shortName(s.Name)
		if s.Flag(p.ID()).Status == reportdata.FlagBad {
			name = glyphStyle.Render("!") + name
		}

		style := lipgloss.NewStyle()
		switch snap.Class(i) {
		case selection.SelectedClass:
			style = selectedStyle
		case selection.NotSelectedClass:
			style = notSelectedStyle
		}
		if i == m.cursor {
			style = style.Copy().Inherit(cursorStyle)
		}
		cells = append(cells, style.Render(name))
	}
	return strings.Join(cells, "  ")
}

// shortName cuts name to the width of a sample cell.
func shortName(name string) string {
	r := []rune(name)
	if len(r) > sampleCellWidth {
		return string(r[:sampleCellWidth])
	}
	return name
}

func (m *model) renderLegend(p *panel.Panel) string {
	sum := p.Legend()
	var lines []string
	for _, entry := range sum.Entries {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(entry.Color)).Render("  ")
		line := fmt.Sprintf("%s %-28s %s", swatch, entry.Name, panel.FormatPercent(entry.Fraction, 1))
		if entry.HasRefs {
			line += fmt.Sprintf("  %d/%d", entry.DetectedRefs, entry.TotalRefs)
		}
		if !entry.Detected {
			line = dimStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("%d sample(s) in scope, %s reads", len(sum.InScope), panel.FormatCount(sum.Total, 3))))
	return strings.Join(lines, "\n")
}

func (m *model) renderCallout() string {
	c := m.e.Callout()
	if c == nil {
		return ""
	}

	var lines []string
	for _, class := range []string{"calloutSampleName", "calloutMessage", "calloutCriteria"} {
		for _, el := range c.Root.FindAll(class) {
			lines = append(lines, el.Text)
		}
	}
	lines = append(lines, dimStyle.Render("esc: close"))
	return calloutStyle.Render(strings.Join(lines, "\n"))
}

func (m *model) View() string {
	r := m.e.Report()
	header := headerStyle.Render(r.DocumentTitle(m.e.Tool()))

	instructions := dimStyle.Render("[ ]: Cursor | enter: Select | space: Toggle | x: Clear | ←→↑↓: Navigate | g: Flag details | c: Compress | e/E: Export | q: Quit")

	var b strings.Builder
	focus := m.e.Selection().Focus
	for i, p := range m.e.Panels() {
		style := panelStyle
		if i == focus {
			style = activePanelStyle
		}
		body := lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render(p.Config().Title),
			m.renderSamples(p),
			m.renderLegend(p),
		)
		b.WriteString(style.Render(body))
		b.WriteString("\n")

		if c := m.e.Callout(); c != nil && c.PanelID == p.ID() {
			b.WriteString(m.renderCallout())
			b.WriteString("\n")
		}
	}
	b.WriteString(dimStyle.Render(r.Footer(m.e.Tool()) + " - viewer " + compileinfo.Get().Short()))

	staticPart := header + "\n" + instructions + "\n" + m.host.status + "\n\n"

	contentLines := strings.Split(b.String(), "\n")
	available := m.winHeight - lipgloss.Height(staticPart)
	if available < 1 {
		available = 1
	}
	maxScroll := len(contentLines) - available
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scrollOffset > maxScroll {
		m.scrollOffset = maxScroll
	}
	end := m.scrollOffset + available
	if end > len(contentLines) {
		end = len(contentLines)
	}

	return staticPart + strings.Join(contentLines[m.scrollOffset:end], "\n")
}

func main() {
	var configPath, reportPath, outputFolder string
	flag.StringVar(&configPath, "config", "", "(Optional) Path to a TOML or JSON config file")
	flag.StringVar(&reportPath, "report", "", "Path to the mirtrace-results.json file. May be a local path or a gs:// path.")
	flag.StringVar(&outputFolder, "output_folder", "", "(Optional) Folder where exported plots are written")
	flag.Parse()

	if reportPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			log.Fatalln(err)
		}
	}
	if outputFolder != "" {
		cfg.Export.Dir = outputFolder
	}

	report, err := reportdata.Load(context.Background(), reportPath)
	if err != nil {
		log.Fatalln(err)
	}

	var p *tea.Program
	m, exporter, err := newViewer(report, cfg, func(msg tea.Msg) { p.Send(msg) })
	if err != nil {
		log.Fatalln(err)
	}
	p = tea.NewProgram(m)

	// Viewport changes are picked up by the monitor, whose ticks reach Update
	// through the engine's Post.
	mon := m.e.Monitor(cfg.Report.PollDuration())
	mon.Start()

	_, err = p.Run()
	mon.Stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	exporter.Wait()
}
