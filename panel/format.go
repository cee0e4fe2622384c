package panel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var siPrefixes = []string{"y", "z", "a", "f", "p", "n", "µ", "m", "", "k", "M", "G", "T", "P", "E", "Z", "Y"}

// FormatSI formats v with precision significant digits and an SI prefix,
// e.g. FormatSI(1234, 3) is "1.23k".
func FormatSI(v float64, precision int) string {
	if v == 0 {
		return "0"
	}
	if precision < 1 {
		precision = 1
	}

	rounded := roundSignificant(v, precision)
	exp := decimalExponent(rounded)

	k := exp / 3
	if exp < 0 && exp%3 != 0 {
		k--
	}
	if k < -8 {
		k = -8
	}
	if k > 8 {
		k = 8
	}

	scaled := rounded / math.Pow(10, float64(3*k))
	decimals := precision - 1 - decimalExponent(scaled)
	if decimals < 0 {
		decimals = 0
	}

	return strconv.FormatFloat(scaled, 'f', decimals, 64) + siPrefixes[k+8]
}

func roundSignificant(v float64, precision int) float64 {
	p := precision - 1 - decimalExponent(v)
	if p >= 0 {
		scale := math.Pow(10, float64(p))
		return math.Round(v*scale) / scale
	}
	scale := math.Pow(10, float64(-p))
	return math.Round(v/scale) * scale
}

// decimalExponent returns floor(log10(|v|)) without the rounding error of
// math.Log10 at exact powers of ten.
func decimalExponent(v float64) int {
	s := strconv.FormatFloat(math.Abs(v), 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[i+1:])
	return exp
}

// FormatCount renders read counts: padded integers below 1000, SI above.
func FormatCount(n, precision int) string {
	if n < 1000 {
		return fmt.Sprintf("%3d", n)
	}
	return FormatSI(float64(n), precision)
}

// FormatDecile renders a fraction tick: "0%" below one tenth, the bare
// percentage above.
func FormatDecile(d float64) string {
	if d < .1 {
		return strconv.Itoa(int(math.Round(d*100))) + "%"
	}
	return strconv.Itoa(int(math.Round(d * 100)))
}

func FormatPercent(frac float64, decimals int) string {
	return strconv.FormatFloat(frac*100, 'f', decimals, 64) + "%"
}

// NiceTicks returns about m evenly spaced round values covering [start,
// stop], with steps of 1, 2 or 5 times a power of ten.
func NiceTicks(start, stop float64, m int) []float64 {
	if stop < start {
		start, stop = stop, start
	}
	span := stop - start
	if span == 0 || m <= 0 {
		return []float64{start}
	}

	step := math.Pow(10, float64(decimalExponent(span/float64(m))))
	err := float64(m) / span * step
	switch {
	case err <= .15:
		step *= 10
	case err <= .35:
		step *= 5
	case err <= .75:
		step *= 2
	}

	var out []float64
	first := math.Ceil(start/step) * step
	last := math.Floor(stop/step)*step + step*.5
	for v := first; v < last; v += step {
		// Snap accumulated float error back onto the step grid.
		out = append(out, math.Round(v/step)*step)
	}
	return out
}

// Deciles are the fixed ticks of the percentage panels.
var Deciles = []float64{0, .1, .2, .3, .4, .5, .6, .7, .8, .9, 1}

// LinearScale maps [D0,D1] onto [R0,R1].
type LinearScale struct {
	D0, D1, R0, R1 float64
}

func (s LinearScale) At(v float64) float64 {
	if s.D1 == s.D0 {
		return s.R0
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}
