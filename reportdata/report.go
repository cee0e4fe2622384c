// Package reportdata holds the read-only report data model produced by the
// upstream pipeline, and the views derived from it that are not tied to a
// particular chart.
package reportdata

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Mode string

const (
	ModeQC    Mode = "qc"
	ModeTrace Mode = "trace"
)

var ErrUnknownMode = errors.New("unknown miRTrace mode")

// Stats are the per-sample statistics. Histogram indexes follow the upstream
// pipeline: PhredScores[i] counts nucleotides with score MinPhredScore+i, and
// Length[i] counts reads of length i with the last bucket meaning "at least".
type Stats struct {
	AllSeqsCount            int               `json:"allSeqsCount"`
	UniqueQCPassedSeqsCount int               `json:"uniqueQCPassedSeqsCount"`
	PhredScores             []int             `json:"statsNucleotidePhredScores"`
	Length                  []int             `json:"statsLength"`
	RNAType                 []int             `json:"statsRNAType"`
	QC                      []int             `json:"statsQC"`
	Clades                  []int             `json:"statsClades"`
	FoundCladeFamilies      [][]string        `json:"foundCladeFamilies"`
	FoundRNAReads           [][]int           `json:"foundRNAReads"`
	QCFlags                 map[string]string `json:"qcAnalysisFlags"`
	ComplexityReadDepth     []int             `json:"statsComplexityReadDepth"`
}

type SampleResult struct {
	Name                 string          `json:"verbosename"`
	Filename             string          `json:"filename"`
	Adapter              string          `json:"adapter"`
	FileSize             int64           `json:"fileSize"`
	DisplayOrder         int             `json:"displayOrder"`
	FileModificationTime json.RawMessage `json:"fileModificationTime,omitempty"`
	Stats                Stats           `json:"stats"`
}

type Report struct {
	Results              []*SampleResult   `json:"results"`
	Title                string            `json:"reportTitle"`
	Comments             []string          `json:"reportComments"`
	GenerationDateTime   string            `json:"reportGenerationDateTime"`
	CladeIdentifiers     []string          `json:"cladeIdentifiers"`
	Species              string            `json:"species"`
	SpeciesVerboseName   string            `json:"speciesVerbosename"`
	Version              string            `json:"mirtraceVersion"`
	Mode                 Mode              `json:"mirtraceMode"`
	RRNASubunits         string            `json:"rRNASubunits"`
	CladeRefSeqCounts    []int             `json:"cladeRefSeqCounts"`
	CladeRefFamilyCounts []int             `json:"cladeRefFamilyCounts"`
	RNATypeRefSeqCounts  []int             `json:"rnaTypeRefSeqCounts"`
	MinPhredScore        int               `json:"minPhredScore"`
	MinSequenceLength    int               `json:"minSequenceLength"`
	MaxSequenceLength    int               `json:"maxSequenceLength"`
	Warnings             []string          `json:"warnings"`
	QCCriteriaVerbose    map[string]string `json:"qcCriteriaVerbose"`
}

// CheckMode returns ErrUnknownMode unless the report is in qc or trace mode.
func (r *Report) CheckMode() error {
	switch r.Mode {
	case ModeQC, ModeTrace:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownMode, r.Mode)
}

// MaxDetectionCount is the number of miRNA reference sequences, which bounds
// the distinct miRNA count any sample can reach.
func (r *Report) MaxDetectionCount() int {
	return At(r.RNATypeRefSeqCounts, 0)
}

// Sum adds up xs.
func Sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

// At returns xs[i], or 0 when i is out of range.
func At(xs []int, i int) int {
	if i < 0 || i >= len(xs) {
		return 0
	}
	return xs[i]
}
