package reportdata

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/carbocation/pfx"
)

// CladeNames are the pipeline's clade identifiers, in panel order.
var CladeNames = []string{
	"bryophytes", "lycopods", "gymnosperms", "monocots", "dicots",
	"sponges",
	"nematode", "insects", "lophotrochozoa",
	"echinoderms",
	"fish", "birds_reptiles",
	"rodents", "primates",
}

// StatsTable is one per-statistic table: one row per bucket or category and
// one column per sample.
type StatsTable struct {
	FileName string
	Header   []string
	Rows     [][]string
}

// StatsTables returns the tables for the report's mode. Trace mode only carries
// clade statistics.
func (r *Report) StatsTables(tool string) []StatsTable {
	var out []StatsTable
	if r.Mode == ModeQC {
		out = append(out,
			r.bucketTable(tool+"-stats-phred.tsv", "PHRED_SCORE", func(s *SampleResult) []int { return s.Stats.PhredScores }, r.MinPhredScore),
			r.categoryTable(tool+"-stats-qcstatus.tsv", "QC_STATUS",
				[]string{"LOW_PHRED", "LOW_COMLPEXITY", "LENGTH_SHORTER_THAN_18", "ADAPTER_NOT_DETECTED", "ADAPTER_REMOVED_LENGTH_OK"},
				func(s *SampleResult) []int { return s.Stats.QC }),
			r.bucketTable(tool+"-stats-length.tsv", "LENGTH", func(s *SampleResult) []int { return s.Stats.Length }, 0),
			r.categoryTable(tool+"-stats-rnatype.tsv", "RNA_TYPE",
				[]string{"miRNA", "rRNA", "tRNA", "artifact", "unknown"},
				func(s *SampleResult) []int { return s.Stats.RNAType }),
			r.raggedTable(tool+"-stats-mirna-complexity.tsv", "DISTINCT_MIRNA_HAIRPINS_ACCUMULATED_COUNT",
				func(s *SampleResult) []int { return s.Stats.ComplexityReadDepth }),
		)
	}

	clades := r.CladeIdentifiers
	if len(clades) == 0 {
		clades = CladeNames
	}
	out = append(out, r.categoryTable(tool+"-stats-contamination_basic.tsv", "CLADE", clades,
		func(s *SampleResult) []int { return s.Stats.Clades }))

	return out
}

func (r *Report) header(first string) []string {
	out := []string{first}
	for _, s := range r.Results {
		out = append(out, s.Name)
	}
	return out
}

// bucketTable sizes itself by the first sample's histogram.
func (r *Report) bucketTable(fileName, first string, stat func(*SampleResult) []int, labelOffset int) StatsTable {
	t := StatsTable{FileName: fileName, Header: r.header(first)}
	if len(r.Results) == 0 {
		return t
	}

	for i := range stat(r.Results[0]) {
		row := []string{strconv.Itoa(labelOffset + i)}
		for _, s := range r.Results {
			row = append(row, strconv.Itoa(At(stat(s), i)))
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

func (r *Report) categoryTable(fileName, first string, labels []string, stat func(*SampleResult) []int) StatsTable {
	t := StatsTable{FileName: fileName, Header: r.header(first)}
	for i, label := range labels {
		row := []string{label}
		for _, s := range r.Results {
			row = append(row, strconv.Itoa(At(stat(s), i)))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// raggedTable leaves a cell empty once a sample's series has ended.
func (r *Report) raggedTable(fileName, first string, stat func(*SampleResult) []int) StatsTable {
	t := StatsTable{FileName: fileName, Header: r.header(first)}

	rows := 0
	for _, s := range r.Results {
		if n := len(stat(s)); n > rows {
			rows = n
		}
	}

	for i := 0; i < rows; i++ {
		row := []string{strconv.Itoa(i)}
		for _, s := range r.Results {
			series := stat(s)
			if i < len(series) {
				row = append(row, strconv.Itoa(series[i]))
			} else {
				row = append(row, "")
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// WriteTSV writes the table with tab separators.
func (t StatsTable) WriteTSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(t.Header); err != nil {
		return pfx.Err(err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return pfx.Err(err)
	}

	return nil
}
