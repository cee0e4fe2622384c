package reportdata

import (
	"context"
	"encoding/json"
	"io"
	"log"

	"github.com/carbocation/mirreport"
	"github.com/carbocation/pfx"
)

// Decode reads one report document from r.
func Decode(r io.Reader) (*Report, error) {
	out := &Report{}

	dec := json.NewDecoder(r)
	if err := dec.Decode(out); err != nil {
		if serr, ok := err.(*json.SyntaxError); ok {
			log.Println("Report syntax error at byte offset", serr.Offset)
		}
		return nil, pfx.Err(err)
	}

	return out, nil
}

// Load opens path (local, ~-relative or gs://, optionally compressed) and
// decodes the report it holds.
func Load(ctx context.Context, path string) (*Report, error) {
	rc, err := mirreport.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return Decode(rc)
}
