package reportdata

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func loadFixture(t *testing.T) *Report {
	t.Helper()

	r, err := Load(context.Background(), "testdata/mirtrace-results.json")
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestLoad(t *testing.T) {
	r := loadFixture(t)

	if len(r.Results) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(r.Results))
	}
	if r.Results[0].Stats.AllSeqsCount != 1000 {
		t.Errorf("unexpected read count %d", r.Results[0].Stats.AllSeqsCount)
	}
	if got := len(r.Results[0].Stats.FoundCladeFamilies[13]); got != 2 {
		t.Errorf("expected 2 primate families, got %d", got)
	}
	if r.MaxDetectionCount() != 2588 {
		t.Errorf("unexpected max detection count %d", r.MaxDetectionCount())
	}
	if err := r.CheckMode(); err != nil {
		t.Error(err)
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"results": [`)); err == nil {
		t.Fatal("expected an error for truncated input")
	}
}

func TestCheckMode(t *testing.T) {
	for _, mode := range []Mode{ModeQC, ModeTrace} {
		r := &Report{Mode: mode}
		if err := r.CheckMode(); err != nil {
			t.Errorf("%s: %v", mode, err)
		}
	}

	r := &Report{Mode: "bulk"}
	if err := r.CheckMode(); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestFlags(t *testing.T) {
	r := loadFixture(t)
	s := r.Results[0]

	cases := []struct {
		Panel    string
		Expected FlagStatus
	}{
		{"phred", FlagOK},
		{"length", FlagUnknown},
		{"qc", FlagBad},
		{"complexity", FlagUnknown},
	}

	for _, cs := range cases {
		if got := s.Flag(cs.Panel).Status; got != cs.Expected {
			t.Errorf("%s: expected %s, got %s", cs.Panel, cs.Expected, got)
		}
	}

	if msg := s.Flag("qc").Message; msg != "Too few reads passed QC." {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestDocumentTitle(t *testing.T) {
	r := loadFixture(t)

	expected := "miRTrace - Plasma pilot (2018-03-05 14:22) - 2 samples, Homo sapiens"
	if got := r.DocumentTitle("miRTrace"); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}

	r.Mode = ModeTrace
	r.Results = r.Results[:1]
	expected = "miRTrace - Plasma pilot (2018-03-05 14:22) - 1 sample"
	if got := r.DocumentTitle("miRTrace"); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
	if fields := r.HeaderFields(); len(fields) != 2 {
		t.Errorf("trace mode should omit species, got %d fields", len(fields))
	}
}

func TestGeneratedAt(t *testing.T) {
	r := loadFixture(t)

	ts, err := r.GeneratedAt()
	if err != nil {
		t.Fatal(err)
	}
	if ts.Year() != 2018 || ts.Month() != 3 || ts.Day() != 5 {
		t.Errorf("unexpected timestamp %v", ts)
	}
}

func TestSampleTable(t *testing.T) {
	r := loadFixture(t)
	rows := r.SampleTable()

	if rows[0].QCPassedReads != 900 || rows[0].MiRNAReads != 500 {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if rows[1].Adapter != "(none)" || rows[1].AdapterProvided {
		t.Errorf("expected a missing adapter, got %+v", rows[1])
	}
	if rows[0].AdapterColor == rows[1].AdapterColor {
		t.Errorf("distinct adapters share a color")
	}

	var buf bytes.Buffer
	if err := WriteSampleTable(&buf, rows); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Sample\tFilename\tTotal reads\tQC-passed reads\tmiRNA reads\tAdapter" {
		t.Errorf("unexpected header %q", lines[0])
	}
}

func TestStatsTables(t *testing.T) {
	r := loadFixture(t)

	tables := r.StatsTables("mirtrace")
	if len(tables) != 6 {
		t.Fatalf("expected 6 tables in qc mode, got %d", len(tables))
	}

	byName := make(map[string]StatsTable)
	for _, tab := range tables {
		byName[tab.FileName] = tab
	}

	complexity := byName["mirtrace-stats-mirna-complexity.tsv"]
	if len(complexity.Rows) != 4 {
		t.Fatalf("expected 4 complexity rows, got %d", len(complexity.Rows))
	}
	if got := complexity.Rows[3]; got[1] != "9" || got[2] != "" {
		t.Errorf("unexpected ragged row %v", got)
	}

	clades := byName["mirtrace-stats-contamination_basic.tsv"]
	if clades.Rows[13][0] != "primates" || clades.Rows[13][1] != "7" {
		t.Errorf("unexpected primate row %v", clades.Rows[13])
	}

	var buf bytes.Buffer
	if err := byName["mirtrace-stats-rnatype.tsv"].WriteTSV(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "RNA_TYPE\tplasma_1\tplasma_2\nmiRNA\t500\t10\n") {
		t.Errorf("unexpected TSV %q", buf.String())
	}

	r.Mode = ModeTrace
	if got := len(r.StatsTables("mirtrace")); got != 1 {
		t.Errorf("expected only the clade table in trace mode, got %d", got)
	}
}
