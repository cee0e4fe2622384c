// Package binning splits the distinct-miRNA detection count range of the
// complexity panel into at most nine legend intervals.
package binning

import "fmt"

const (
	MaxBins = 9

	unitBinLimit   = 8
	coarseBinLimit = 115
	// Share of the domain covered by the first eight coarse bins.
	coarseHeadShare = 0.7
)

// Bin is an inclusive integer interval.
type Bin struct {
	Start, End int
}

func (b Bin) String() string {
	return fmt.Sprintf("%d—%d", b.Start, b.End)
}

// Contains reports whether v lies in the bin.
func (b Bin) Contains(v int) bool {
	return v >= b.Start && v <= b.End
}

// BinSet holds ascending, contiguous, non-overlapping bins.
type BinSet []Bin

// Compute bins the range [0, maxDetectionCount]:
//
//	< 1      a single [0,0] bin
//	1..8     one unit bin per value below max
//	9..114   eight bins of floor(max/9), the last bin takes the rest
//	>= 115   eight bins whose width is a multiple of ten chosen so they
//	         cover about 70% of the range, the last bin takes the rest
func Compute(maxDetectionCount int) BinSet {
	switch {
	case maxDetectionCount < 1:
		return BinSet{{0, 0}}
	case maxDetectionCount <= unitBinLimit:
		out := make(BinSet, 0, maxDetectionCount)
		for i := 0; i < maxDetectionCount; i++ {
			out = append(out, Bin{i, i})
		}
		return out
	case maxDetectionCount < coarseBinLimit:
		return headAndTail(maxDetectionCount, maxDetectionCount/MaxBins)
	}

	perBin := int(float64(maxDetectionCount)*coarseHeadShare/float64(MaxBins-1)/10) * 10
	return headAndTail(maxDetectionCount, perBin)
}

func headAndTail(max, perBin int) BinSet {
	out := make(BinSet, 0, MaxBins)
	start := 0
	for i := 0; i < MaxBins-1; i++ {
		out = append(out, Bin{start, start + perBin - 1})
		start += perBin
	}
	return append(out, Bin{start, max})
}

// Last returns the final bin.
func (bs BinSet) Last() Bin {
	return bs[len(bs)-1]
}

// Index returns the bin holding v, or -1.
func (bs BinSet) Index(v int) int {
	for i, b := range bs {
		if b.Contains(v) {
			return i
		}
	}
	return -1
}
