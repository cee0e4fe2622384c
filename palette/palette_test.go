package palette

import "testing"

func TestPurples(t *testing.T) {
	for n := 1; n <= 12; n++ {
		got := Purples(n)
		want := n
		if want > 9 {
			want = 9
		}
		if len(got) != want {
			t.Fatalf("Purples(%d): expected %d colors, got %d", n, want, len(got))
		}
	}

	if got := Purples(1); got[0] != "#756bb1" {
		t.Errorf("Purples(1): expected the darkest 3-class color, got %s", got[0])
	}
}

func TestThreshold(t *testing.T) {
	th := Threshold{
		Domain: []float64{.001, .01, .05, .10, .25, .40},
		Scheme: Reds7,
	}

	cases := []struct {
		Value    float64
		Expected string
	}{
		{0, Reds7[0]},
		{.0005, Reds7[0]},
		{.001, Reds7[1]},
		{.2, Reds7[4]},
		{.40, Reds7[6]},
		{1, Reds7[6]},
	}

	for _, cs := range cases {
		if got := th.Color(cs.Value); got != cs.Expected {
			t.Errorf("Threshold(%v): expected %s, got %s", cs.Value, cs.Expected, got)
		}
	}
}

func TestOrdinal(t *testing.T) {
	o := NewOrdinal(Category10)
	a := o.Color("TGGAATTCTCGGGTGCCAAGG")
	b := o.Color("AACTGTAGGCACCATCAAT")
	if a == b {
		t.Fatalf("distinct keys received the same color %s", a)
	}
	if o.Color("TGGAATTCTCGGGTGCCAAGG") != a {
		t.Errorf("repeated key changed color")
	}
}

func TestReversed(t *testing.T) {
	r := Reversed(Blues5)
	if r[0] != Blues5[4] || r[4] != Blues5[0] {
		t.Errorf("unexpected reversal %v", r)
	}
	if Blues5[0] != "#eff3ff" {
		t.Errorf("Reversed mutated its input")
	}
}
