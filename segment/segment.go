// Package segment turns one SAM alignment line into a Segment: a SpliceList
// derived from its CIGAR string, paired with the original raw line so the
// final output tag can be appended to it unmodified.
package segment

import (
	"github.com/ning-y/trcls/cigar"
	"github.com/ning-y/trcls/sam"
	"github.com/ning-y/trcls/splice"
)

// Segment is one aligned read turned into a SpliceList. The SpliceList's
// identifier is the line's QNAME.
type Segment struct {
	RawLine    string
	SpliceList *splice.SpliceList
}

// FromLine interprets line's CIGAR with the given tolerances and builds the
// Segment's SpliceList. It returns cigar.ErrNoMapping unchanged when the
// line is unmapped or maps to nothing above mapTolerance, so callers can
// drop the line and log a warning without inspecting the error further.
func FromLine(line sam.Line, skipTolerance, mapTolerance int64) (Segment, error) {
	regions, setLeft, setRight, err := cigar.Interpret(line.CIGAR, line.POS, skipTolerance, mapTolerance)
	if err != nil {
		return Segment{}, err
	}

	exons := make([]splice.Exon, len(regions))
	for i, r := range regions {
		exons[i] = splice.Exon{Start: r.Start, Stop: r.Stop}
	}

	sl, err := splice.NewFromExons(line.QNAME, exons, setLeft, setRight)
	if err != nil {
		return Segment{}, err
	}
	return Segment{RawLine: line.Raw, SpliceList: sl}, nil
}
