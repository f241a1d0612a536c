// Package annotate drives the annotation pipeline: for each transcript, it
// queries an Annotations bundle with the merged SpliceList and a junction
// tolerance, then rewrites each of the transcript's segments' raw lines
// with the resulting TR:Z: tag.
package annotate

import (
	"strings"

	"github.com/ning-y/trcls/gtf"
	"github.com/ning-y/trcls/sam"
	"github.com/ning-y/trcls/transcript"
)

// noMatch is the tag value written when the annotation query returns no
// identifiers.
const noMatch = "*"

// Annotator ties one Annotations bundle to a junction tolerance.
type Annotator struct {
	Annotations       *gtf.Annotations
	JunctionTolerance int64
}

// New returns an Annotator over annotations using junctionTolerance for
// every transcript it tags.
func New(annotations *gtf.Annotations, junctionTolerance int64) *Annotator {
	return &Annotator{Annotations: annotations, JunctionTolerance: junctionTolerance}
}

// Tag annotates every segment of tr and returns the resulting SAM lines, in
// the order the segments appear in tr, each with a TR:Z: field appended.
// The annotator never partially tags a segment: the same identifier set is
// computed once for the whole transcript and applied to every one of its
// lines.
func (a *Annotator) Tag(tr *transcript.Transcript) []string {
	ids := a.Annotations.GetAnnotations(tr.Merged(), a.JunctionTolerance)
	value := noMatch
	if len(ids) > 0 {
		value = strings.Join(ids, ",")
	}

	lines := make([]string, len(tr.Segments))
	for i, seg := range tr.Segments {
		lines[i] = sam.WithTag(seg.RawLine, value)
	}
	return lines
}
