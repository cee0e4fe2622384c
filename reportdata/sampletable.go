package reportdata

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/mirreport/palette"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// SampleRow is one row of the sample statistics table.
type SampleRow struct {
	Sample          string `csv:"Sample"`
	Filename        string `csv:"Filename"`
	TotalReads      int    `csv:"Total reads"`
	QCPassedReads   int    `csv:"QC-passed reads"`
	MiRNAReads      int    `csv:"miRNA reads"`
	Adapter         string `csv:"Adapter"`
	AdapterColor    string `csv:"-"`
	AdapterProvided bool   `csv:"-"`
}

// SampleTable returns one row per sample. QC-passed reads are the reads that
// lacked an adapter or kept an insert of at least 18 nt after trimming.
func (r *Report) SampleTable() []SampleRow {
	colors := palette.NewOrdinal(palette.Category10)

	out := make([]SampleRow, 0, len(r.Results))
	for _, s := range r.Results {
		row := SampleRow{
			Sample:          s.Name,
			Filename:        s.Filename,
			TotalReads:      s.Stats.AllSeqsCount,
			QCPassedReads:   At(s.Stats.QC, 3) + At(s.Stats.QC, 4),
			MiRNAReads:      At(s.Stats.RNAType, 0),
			Adapter:         s.Adapter,
			AdapterProvided: s.Adapter != "",
		}
		if !row.AdapterProvided {
			row.Adapter = "(none)"
		}
		row.AdapterColor = colors.Color(row.Adapter)
		out = append(out, row)
	}

	return out
}

// WriteSampleTable writes rows as a tab separated table with a header line.
func WriteSampleTable(w io.Writer, rows []SampleRow) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	return nil
}
