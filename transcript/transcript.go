// Package transcript assembles one read group's Segments into a Transcript,
// wiring inter-segment splice-complement cross-references, and groups raw
// SAM lines into read groups per the SAM pairing flags and RNEXT chains.
package transcript

import (
	"errors"

	"github.com/ning-y/trcls/cigar"
	"github.com/ning-y/trcls/event"
	"github.com/ning-y/trcls/sam"
	"github.com/ning-y/trcls/segment"
	"github.com/ning-y/trcls/splice"
)

// ErrNoMappedSegments signals that every line in a read group produced
// cigar.ErrNoMapping: the whole group is dropped, silently, by the caller.
var ErrNoMappedSegments = errors.New("transcript: no mapped segments in group")

// Transcript is a non-empty, ordered group of Segments from one read group,
// with complement cross-references installed between adjacent Junctions
// drawn from the concatenation of all segments' SpliceLists.
type Transcript struct {
	Segments []segment.Segment
}

// Assemble builds one Segment per line, dropping NoMapping lines with a
// warning through sink. Any other error (such as a malformed CIGAR) is
// returned as is. If every line in the group fails to map, it returns
// ErrNoMappedSegments and the caller skips the group entirely.
func Assemble(lines []sam.Line, skipTolerance, mapTolerance int64, sink event.Sink) (*Transcript, error) {
	sink = event.OrNop(sink)

	var segments []segment.Segment
	for _, line := range lines {
		seg, err := segment.FromLine(line, skipTolerance, mapTolerance)
		if err != nil {
			if !errors.Is(err, cigar.ErrNoMapping) {
				return nil, err
			}
			sink.Warnf("transcript: dropping unmapped segment %s: %v", line.QNAME, err)
			continue
		}
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		return nil, ErrNoMappedSegments
	}

	lists := make([]*splice.SpliceList, len(segments))
	for i, seg := range segments {
		lists[i] = seg.SpliceList
	}
	splice.WireComplements(lists)

	return &Transcript{Segments: segments}, nil
}

// Merged returns the n-ary union of every segment's SpliceList: the single
// query structure an Annotations is matched against.
func (t *Transcript) Merged() *splice.SpliceList {
	lists := make([]*splice.SpliceList, len(t.Segments))
	for i, seg := range t.Segments {
		lists[i] = seg.SpliceList
	}
	return splice.UnionMany(lists)
}
