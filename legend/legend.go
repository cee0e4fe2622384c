// Package legend aggregates per-category legend values over the samples in
// the current selection scope.
package legend

import (
	"github.com/carbocation/mirreport/reportdata"
	"github.com/carbocation/mirreport/selection"
)

// Spec describes the categories of one panel.
type Spec struct {
	Names  []string
	Colors []string

	// Counts returns the per-category counts of a sample.
	Counts func(*reportdata.SampleResult) []int

	// Found returns the distinct reference ids a sample hit in category i.
	// Nil for panels without reference sets.
	Found func(s *reportdata.SampleResult, i int) []string

	// TotalRefs holds the number of reference ids per category. Categories
	// past its end have no reference set.
	TotalRefs []int
}

type Entry struct {
	Name     string
	Color    string
	Detected bool
	Fraction float64

	HasRefs      bool
	DetectedRefs int
	TotalRefs    int
}

type Summary struct {
	Entries []Entry
	// Total is the in-scope count over all categories.
	Total   int
	InScope []int
}

// Aggregate computes the legend of spec for the samples in scope of snap. It
// is a pure function of its inputs. A zero in-scope total yields zero
// fractions.
func Aggregate(snap selection.Snapshot, samples []*reportdata.SampleResult, spec Spec) Summary {
	scope := snap.InScope()
	if len(snap.Selected) != len(samples) {
		scope = make([]int, len(samples))
		for i := range samples {
			scope[i] = i
		}
	}

	counts := make([]int, len(spec.Names))
	found := make([]map[string]struct{}, len(spec.Names))

	for _, si := range scope {
		s := samples[si]
		row := spec.Counts(s)
		for c := range spec.Names {
			counts[c] += reportdata.At(row, c)

			if spec.Found == nil {
				continue
			}
			for _, id := range spec.Found(s, c) {
				if found[c] == nil {
					found[c] = make(map[string]struct{})
				}
				found[c][id] = struct{}{}
			}
		}
	}

	out := Summary{Entries: make([]Entry, len(spec.Names)), InScope: scope}
	for _, c := range counts {
		out.Total += c
	}

	for c, name := range spec.Names {
		e := Entry{
			Name:         name,
			Detected:     counts[c] > 0 || len(found[c]) > 0,
			DetectedRefs: len(found[c]),
		}
		if c < len(spec.Colors) {
			e.Color = spec.Colors[c]
		}
		if out.Total > 0 {
			e.Fraction = float64(counts[c]) / float64(out.Total)
		}
		if spec.Found != nil && c < len(spec.TotalRefs) {
			e.HasRefs = true
			e.TotalRefs = spec.TotalRefs[c]
		}
		out.Entries[c] = e
	}

	return out
}

// HighestDetectionCount returns the largest distinct miRNA count reached by
// any in-scope sample, or -1 when no in-scope sample has a read depth curve.
func HighestDetectionCount(snap selection.Snapshot, samples []*reportdata.SampleResult) int {
	scope := snap.InScope()
	if len(snap.Selected) != len(samples) {
		scope = nil
		for i := range samples {
			scope = append(scope, i)
		}
	}

	highest := -1
	for _, si := range scope {
		if n := len(samples[si].Stats.ComplexityReadDepth) - 1; n > highest {
			highest = n
		}
	}
	return highest
}

// FractionAtLeast sums the fractions of entries from index from onward.
func (s Summary) FractionAtLeast(from int) float64 {
	var total float64
	for i := from; i < len(s.Entries); i++ {
		if i >= 0 {
			total += s.Entries[i].Fraction
		}
	}
	return total
}
