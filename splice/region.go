package splice

import "fmt"

// Region is a contiguous, 1-based, closed interval of reference positions,
// e.g. one exon or one exonic span of an alignment.
type Region struct {
	Start int64
	Stop  int64
}

// NewRegion returns the Region [start, stop]. It panics if start > stop,
// mirroring the invariant checks the teacher uses for its own interval types
// (see Pos/PosRange in fusion/position.go).
func NewRegion(start, stop int64) Region {
	if start > stop {
		panic(fmt.Sprintf("splice: inverted region [%d, %d]", start, stop))
	}
	return Region{Start: start, Stop: stop}
}

// Len returns the number of positions covered by r.
func (r Region) Len() int64 { return r.Stop - r.Start + 1 }

// Overlaps reports whether r and o share at least one position, or touch
// (r.Stop+1 == o.Start or vice versa).
func (r Region) Overlaps(o Region) bool {
	return r.Start <= o.Stop+1 && o.Start <= r.Stop+1
}

func (r Region) String() string { return fmt.Sprintf("region %d-%d", r.Start, r.Stop) }
