package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/carbocation/mirreport/scene"
)

func testScene() *scene.Element {
	svg := scene.New("svg").SetInt("width", 20).SetInt("height", 10)
	style := svg.Append("defs").Append("style")
	style.Raw = true
	style.SetText(".a { fill: red; }")
	svg.Append("rect").
		SetInt("x", 0).SetInt("y", 0).
		SetInt("width", 10).SetInt("height", 10).
		Style("fill", "#ff0000")
	return svg
}

func TestFileName(t *testing.T) {
	cases := []struct{ ext, want string }{
		{"svg", "mirtrace-phred-plot.svg"},
		{".png", "mirtrace-phred-plot.png"},
	}
	for _, c := range cases {
		if got := FileName("miRTrace", "phred", c.ext); got != c.want {
			t.Errorf("FileName(%q) = %q, expected %q", c.ext, got, c.want)
		}
	}
}

func TestSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"miRTrace", "mirtrace"},
		{"miR Trace QC", "mir-trace-qc"},
		{"mirtrace", "mirtrace"},
	}
	for _, c := range cases {
		if got := Slug(c.in); got != c.want {
			t.Errorf("Slug(%q) = %q, expected %q", c.in, got, c.want)
		}
	}
}

func TestWriteSVGWrapsStylesheet(t *testing.T) {
	root := testScene()

	var buf bytes.Buffer
	if err := WriteSVG(&buf, root); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, cdataOpen+".a { fill: red; }"+cdataClose) {
		t.Errorf("stylesheet not wrapped in CDATA:\n%s", out)
	}
	if strings.Contains(root.String(), cdataOpen) {
		t.Errorf("WriteSVG modified the live scene")
	}
}

func TestRasterize(t *testing.T) {
	img, err := Rasterize(testScene())
	if err != nil {
		t.Fatal(err)
	}

	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Fatalf("unexpected bounds %v", b)
	}

	r, g, b, a := img.At(5, 5).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 || a>>8 != 255 {
		t.Errorf("inside the rect: %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
	if _, _, _, a := img.At(15, 5).RGBA(); a != 0 {
		t.Errorf("outside the rect should be transparent, alpha %d", a>>8)
	}
}

func TestRasterizeFadesUnselected(t *testing.T) {
	root := testScene()
	root.Children[1].AddClass("notSelectedSample")

	img, err := Rasterize(root)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := img.At(5, 5).RGBA(); a>>8 > 100 {
		t.Errorf("unselected mark not faded, alpha %d", a>>8)
	}
}

func TestRasterizeNeedsSize(t *testing.T) {
	if _, err := Rasterize(scene.New("svg")); err == nil {
		t.Fatalf("expected an error for a scene without size")
	}
}

func TestEncodeFlattensOnWhite(t *testing.T) {
	img, err := Rasterize(testScene())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, "png"); err != nil {
		t.Fatal(err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := decoded.At(15, 5).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("background not white: %d %d %d", r>>8, g>>8, b>>8)
	}

	if err := Encode(&buf, img, "webp"); err == nil {
		t.Errorf("expected an error for an unsupported format")
	}
}

func TestExporterSnapshotsScene(t *testing.T) {
	dir := t.TempDir()

	var (
		mu    sync.Mutex
		paths []string
	)
	e := &Exporter{
		Dir:  dir,
		Tool: "miRTrace",
		Done: func(path string, err error) {
			if err != nil {
				t.Errorf("export %s: %v", path, err)
			}
			mu.Lock()
			paths = append(paths, path)
			mu.Unlock()
		},
	}

	root := testScene()
	svgPath := e.Export("qc", root, "svg")
	e.Export("qc", root, "png")

	// Mutating the live scene must not reach the encoder.
	root.Children[1].Style("fill", "#00ff00")
	e.Wait()

	if len(paths) != 2 {
		t.Fatalf("expected 2 completed exports, got %d", len(paths))
	}

	raw, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "#ff0000") || strings.Contains(string(raw), "#00ff00") {
		t.Errorf("export did not use the snapshot:\n%s", raw)
	}

	if _, err := os.Stat(filepath.Join(dir, "mirtrace-qc-plot.png")); err != nil {
		t.Errorf("png export missing: %v", err)
	}
}
