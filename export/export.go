// Package export writes panel scenes to disk as SVG documents or raster
// images.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/carbocation/mirreport/scene"
	"github.com/carbocation/pfx"
	"github.com/disintegration/imaging"
)

const (
	cdataOpen  = "/* <![CDATA[ */"
	cdataClose = "/* ]]> */"
)

// Slug is the file name form of a tool name: "miRTrace" becomes "mirtrace".
func Slug(tool string) string {
	return strings.ToLower(strings.Join(strings.Fields(tool), "-"))
}

// FileName is the download name of a panel export.
func FileName(tool, panelID, ext string) string {
	return fmt.Sprintf("%s-%s-plot.%s", Slug(tool), panelID, strings.TrimPrefix(ext, "."))
}

// WriteSVG writes root as a standalone SVG document. Embedded stylesheets are
// wrapped in a CDATA section. root itself is not modified.
func WriteSVG(w io.Writer, root *scene.Element) error {
	doc := root.Clone()
	doc.Walk(func(e *scene.Element) bool {
		if e.Tag == "style" && !strings.Contains(e.Text, cdataOpen) {
			e.Raw = true
			e.SetText(cdataOpen + e.Text + cdataClose)
		}
		return true
	})

	if _, err := io.WriteString(w, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`+"\n"); err != nil {
		return pfx.Err(err)
	}
	if _, err := doc.WriteTo(w); err != nil {
		return pfx.Err(err)
	}
	return nil
}

// Encode flattens img onto a white background and encodes it in the format
// named by ext (png, jpg, gif, tif or bmp).
func Encode(w io.Writer, img image.Image, ext string) error {
	format, err := imaging.FormatFromExtension(strings.TrimPrefix(ext, "."))
	if err != nil {
		return pfx.Err(err)
	}

	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	flat := imaging.Overlay(bg, img, image.Pt(0, 0), 1)

	if err := imaging.Encode(w, flat, format); err != nil {
		return pfx.Err(err)
	}
	return nil
}

// WriteFile renders root in the format named by ext and writes it to path.
func WriteFile(path string, root *scene.Element, ext string) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if strings.EqualFold(strings.TrimPrefix(ext, "."), "svg") {
		if err := WriteSVG(f, root); err != nil {
			return err
		}
		return closeFile(f)
	}

	img, err := Rasterize(root)
	if err != nil {
		return err
	}
	if err := Encode(f, img, ext); err != nil {
		return err
	}

	return closeFile(f)
}

func closeFile(f *os.File) error {
	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}
	return nil
}

// Exporter writes panel snapshots in the background. The scene is cloned
// before Export returns, so later changes to the panel never reach the
// encoder.
type Exporter struct {
	Dir    string
	Tool   string
	Logger *log.Logger

	// Done, if set, is called from the encoding goroutine.
	Done func(path string, err error)

	wg sync.WaitGroup
}

// Export starts writing root and returns the destination path.
func (e *Exporter) Export(panelID string, root *scene.Element, ext string) string {
	path := filepath.Join(e.Dir, FileName(e.Tool, panelID, ext))
	snapshot := root.Clone()

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		err := WriteFile(path, snapshot, ext)
		if err != nil && e.Logger != nil {
			e.Logger.Printf("Export of %s failed: %v\n", path, err)
		}
		if e.Done != nil {
			e.Done(path, err)
		}
	}()

	return path
}

// Wait blocks until every started export has finished.
func (e *Exporter) Wait() {
	e.wg.Wait()
}
