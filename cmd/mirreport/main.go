package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/carbocation/mirreport/compileinfo"
	"github.com/carbocation/mirreport/config"
	"github.com/carbocation/mirreport/engine"
	"github.com/carbocation/mirreport/export"
	"github.com/carbocation/mirreport/reportdata"
	"github.com/carbocation/pfx"

	_ "github.com/carbocation/mirreport/compileinfoprint"
)

// staticHost is a fixed-width surface with nowhere to scroll.
type staticHost struct {
	width int
}

func (h staticHost) ViewportWidth() int  { return h.width }
func (h staticHost) TopMenuHeight() int  { return 0 }
func (h staticHost) ScrollBy(dx, dy int) {}
func (h staticHost) ScrollIntoView(int)  {}
func (h staticHost) Alert(msg string)    { log.Println("Alert:", msg) }
func (h staticHost) Notice(msg string)   { log.Println(msg) }

func main() {
	var configPath, reportPath, outputFolder, formats, selected string
	var width int
	var compressed, noTables bool

	flag.StringVar(&configPath, "config", "", "(Optional) Path to a TOML or JSON config file")
	flag.StringVar(&reportPath, "report", "", "Path to the mirtrace-results.json file. May be a local path or a gs:// path.")
	flag.StringVar(&outputFolder, "output_folder", "", "(Optional) Folder where plots and tables are written. Overrides the config file.")
	flag.StringVar(&formats, "formats", "", "(Optional) Comma-delimited export formats, e.g. svg,png. Overrides the config file.")
	flag.StringVar(&selected, "selected", "", "(Optional) Comma-delimited sample indexes to highlight before exporting")
	flag.IntVar(&width, "width", 0, "(Optional) Viewport width in pixels. Overrides the config file.")
	flag.BoolVar(&compressed, "compressed", false, "Render the compressed layout")
	flag.BoolVar(&noTables, "notables", false, "Do not write the statistics tables")
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
	if formats != "" {
		cfg.Export.Formats = strings.Split(formats, ",")
	}
	if width > 0 {
		cfg.Report.ViewportWidth = width
	}
	if compressed {
		cfg.Report.Compressed = true
	}
	if noTables {
		cfg.Export.Tables = false
	}
	if selected != "" {
		idx, err := parseIndexes(selected)
		if err != nil {
			log.Fatalln(err)
		}
		cfg.Report.Selected = idx
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}

	if err := run(cfg, reportPath); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg *config.Config, reportPath string) error {
	report, err := reportdata.Load(context.Background(), reportPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Export.Dir, 0755); err != nil {
		return pfx.Err(err)
	}

	tool := cfg.Report.Tool
	log.Println(report.DocumentTitle(tool))
	for _, field := range report.HeaderFields() {
		log.Println(field.Caption, strings.Join(field.Entries, ", "))
	}

	var failures int32
	exporter := &export.Exporter{
		Dir:  cfg.Export.Dir,
		Tool: tool,
		Done: func(path string, err error) {
			if err != nil {
				log.Printf("Failed to write %s: %v\n", path, err)
				atomic.AddInt32(&failures, 1)
				return
			}
			log.Printf("Wrote %s\n", path)
		},
	}

	e, err := engine.New(report, staticHost{width: cfg.Report.ViewportWidth}, engine.Options{
		Tool:       tool,
		Compressed: cfg.Report.Compressed,
		Exporter:   exporter,
	})
	if err != nil {
		return err
	}

	if len(cfg.Report.Selected) > 0 {
		e.Dispatch(engine.Event{Kind: engine.KindSelect, Selected: cfg.Report.SelectionVector(len(report.Results))})
	}

	for _, p := range e.Panels() {
		for _, ext := range cfg.Export.Formats {
			e.Dispatch(engine.Event{Kind: engine.KindExport, Panel: p.ID(), Ext: ext})
		}
	}
	exporter.Wait()

	if cfg.Export.Tables {
		if err := writeTables(cfg.Export.Dir, tool, report, e); err != nil {
			return err
		}
	}

	log.Println(report.Footer(tool), "- rendered with", compileinfo.Get().Short())

	if n := atomic.LoadInt32(&failures); n > 0 {
		return fmt.Errorf("%d export(s) failed", n)
	}

	return nil
}

func writeTables(dir, tool string, report *reportdata.Report, e *engine.Engine) error {
	slug := export.Slug(tool)
	for _, table := range report.StatsTables(slug) {
		if err := writeTo(filepath.Join(dir, table.FileName), table.WriteTSV); err != nil {
			return err
		}
	}

	return writeTo(filepath.Join(dir, slug+"-samples.tsv"), func(w io.Writer) error {
		return reportdata.WriteSampleTable(w, e.SampleRows())
	})
}

func writeTo(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return pfx.Err(err)
	}
	log.Printf("Wrote %s\n", path)

	return f.Close()
}

func parseIndexes(list string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(list, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid sample index %q", field)
		}
		out = append(out, i)
	}
	return out, nil
}
