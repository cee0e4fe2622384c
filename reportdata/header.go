package reportdata

import (
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/carbocation/pfx"
)

// HeaderField is one caption/value row of the report header.
type HeaderField struct {
	Caption string
	Entries []string
}

// GeneratedAt parses the free-form generation timestamp written by the
// pipeline.
func (r *Report) GeneratedAt() (time.Time, error) {
	t, err := dateparse.ParseAny(r.GenerationDateTime)
	if err != nil {
		return time.Time{}, pfx.Err(err)
	}
	return t, nil
}

// DocumentTitle is the page title, e.g.
// "miRTrace - run 4 (2018-03-05 12:00) - 3 samples, Homo sapiens".
func (r *Report) DocumentTitle(tool string) string {
	plural := "s"
	if len(r.Results) == 1 {
		plural = ""
	}

	title := fmt.Sprintf("%s - %s (%s) - %d sample%s", tool, r.Title, r.GenerationDateTime, len(r.Results), plural)
	if r.Mode == ModeQC {
		title += ", " + r.SpeciesVerboseName
	}

	return title
}

func (r *Report) HeaderFields() []HeaderField {
	out := []HeaderField{{Caption: "Report generated:", Entries: []string{r.GenerationDateTime}}}
	if r.Mode == ModeQC {
		out = append(out, HeaderField{Caption: "Species:", Entries: []string{r.SpeciesVerboseName + " (" + r.Species + ")"}})
	}
	out = append(out, HeaderField{Caption: "Sample count:", Entries: []string{strconv.Itoa(len(r.Results))}})

	return out
}

// RRNASubunitsCaption lists the rRNA subunits that have reference sequences.
func (r *Report) RRNASubunitsCaption() string {
	subunits := r.RRNASubunits
	if subunits == "" {
		subunits = "(None)"
	}
	return "Reference seqs are available for these rRNA subunits: " + subunits
}

func (r *Report) Footer(tool string) string {
	return fmt.Sprintf("Generated by %s (version %s)", tool, r.Version)
}
