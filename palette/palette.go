// Package palette holds the sequential and categorical color schemes used by
// the report panels.
package palette

// Colorbrewer schemes, lightest first.
var (
	Reds7   = []string{"#fee5d9", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#99000d"}
	YlOrBr7 = []string{"#ffffd4", "#fee391", "#fec44f", "#fe9929", "#ec7014", "#cc4c02", "#8c2d04"}
	Greens5 = []string{"#edf8e9", "#bae4b3", "#74c476", "#31a354", "#006d2c"}
	Blues5  = []string{"#eff3ff", "#bdd7e7", "#6baed6", "#3182bd", "#08519c"}
)

var purples = map[int][]string{
	3: {"#efedf5", "#bcbddc", "#756bb1"},
	4: {"#f2f0f7", "#cbc9e2", "#9e9ac8", "#6a51a3"},
	5: {"#f2f0f7", "#cbc9e2", "#9e9ac8", "#756bb1", "#54278f"},
	6: {"#f2f0f7", "#dadaeb", "#bcbddc", "#9e9ac8", "#756bb1", "#54278f"},
	7: {"#f2f0f7", "#dadaeb", "#bcbddc", "#9e9ac8", "#807dba", "#6a51a3", "#4a1486"},
	8: {"#fcfbfd", "#efedf5", "#dadaeb", "#bcbddc", "#9e9ac8", "#807dba", "#6a51a3", "#4a1486"},
	9: {"#fcfbfd", "#efedf5", "#dadaeb", "#bcbddc", "#9e9ac8", "#807dba", "#6a51a3", "#54278f", "#3f007d"},
}

// Purples returns an n-class Purples scheme. Colorbrewer defines 3 to 9
// classes; smaller n takes the darkest end of the 3-class scheme and larger n
// is capped at 9.
func Purples(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > 9 {
		n = 9
	}
	if n < 3 {
		return append([]string(nil), purples[3][3-n:]...)
	}
	return append([]string(nil), purples[n]...)
}

// Reversed returns a reversed copy of scheme.
func Reversed(scheme []string) []string {
	out := make([]string, len(scheme))
	for i, c := range scheme {
		out[len(scheme)-1-i] = c
	}
	return out
}

// Clades colors the 14 contamination clades, plants through animals.
var Clades = []string{
	"#edf8e9", "#bae4b3", "#74c476", "#31a354", "#006d2c",
	"#969696",
	"#f6e8c3", "#dfc27d", "#bf812d", "#8c510a",
	"#eff3ff", "#bdd7e7", "#6baed6", "#2171b5",
}

// Category10 is the ten-color categorical scheme used for adapters.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Ordinal assigns scheme colors to keys in order of first appearance,
// cycling when the scheme is exhausted.
type Ordinal struct {
	scheme []string
	index  map[string]int
}

func NewOrdinal(scheme []string) *Ordinal {
	return &Ordinal{scheme: scheme, index: make(map[string]int)}
}

func (o *Ordinal) Color(key string) string {
	i, exists := o.index[key]
	if !exists {
		i = len(o.index)
		o.index[key] = i
	}
	return o.scheme[i%len(o.scheme)]
}

// Threshold maps a value to the color of the first domain boundary it does
// not reach: values below domain[0] get scheme[0], values at or above
// domain[len-1] get scheme[len(domain)].
type Threshold struct {
	Domain []float64
	Scheme []string
}

func (t Threshold) Color(v float64) string {
	for i, bound := range t.Domain {
		if v < bound {
			return t.Scheme[i]
		}
	}
	return t.Scheme[len(t.Domain)]
}
