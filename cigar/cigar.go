// Package cigar interprets a SAM CIGAR string and start position into the
// reference-coordinate regions and soft-clip edge flags that a Segment's
// SpliceList is built from.
package cigar

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ning-y/trcls/splice"
)

// ErrNoMapping signals a CIGAR of "*", or a set of candidate regions that
// is empty after the map-tolerance filter: the read is effectively
// unmapped for annotation purposes.
var ErrNoMapping = errors.New("cigar: no mapping")

type op struct {
	length int64
	code   byte
}

// class distinguishes the two run categories that survive soft-clip
// removal: a match run belongs to an exon, a skip run separates exons
// (unless later absorbed).
type class int

const (
	match class = iota
	skip
)

type run struct {
	class  class
	length int64
}

// Interpret runs the full §4.5 pipeline: expand, detect soft-clipped edges,
// classify, run-length encode, absorb short skips, merge adjacent
// same-class runs, and materialise regions from pos. It returns
// ErrNoMapping if cigarStr is "*" or if every candidate region is dropped
// by mapTolerance.
func Interpret(cigarStr string, pos int64, skipTolerance, mapTolerance int64) (regions []splice.Region, setLeftJunction, setRightJunction bool, err error) {
	if cigarStr == "*" {
		return nil, false, false, ErrNoMapping
	}

	ops, err := expand(cigarStr)
	if err != nil {
		return nil, false, false, err
	}

	setLeftJunction, setRightJunction = detectSoftClipEdges(ops, skipTolerance)

	runs := classify(ops)
	runs = absorbShortSkips(runs, skipTolerance)
	runs = mergeAdjacent(runs)

	regions = materialize(runs, pos)
	regions = filterByMapTolerance(regions, mapTolerance)
	if len(regions) == 0 {
		return nil, false, false, ErrNoMapping
	}
	return regions, setLeftJunction, setRightJunction, nil
}

// expand parses a CIGAR string such as "3M1I2D4M" into a sequence of
// (length, op) runs.
func expand(cigarStr string) ([]op, error) {
	var ops []op
	start := 0
	for i := 0; i < len(cigarStr); i++ {
		c := cigarStr[i]
		if c < '0' || c > '9' {
			if i == start {
				return nil, fmt.Errorf("cigar: malformed op in %q at %d", cigarStr, i)
			}
			n, err := strconv.ParseInt(cigarStr[start:i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("cigar: malformed length in %q: %w", cigarStr, err)
			}
			if !isKnownOp(c) {
				return nil, fmt.Errorf("cigar: unknown op %q in %q", string(c), cigarStr)
			}
			ops = append(ops, op{length: n, code: c})
			start = i + 1
		}
	}
	if start != len(cigarStr) {
		return nil, fmt.Errorf("cigar: trailing garbage in %q", cigarStr)
	}
	return ops, nil
}

func isKnownOp(c byte) bool {
	switch c {
	case 'M', 'I', 'D', 'N', 'S', 'H', 'P', '=', 'X':
		return true
	}
	return false
}

// detectSoftClipEdges restricts ops to {M,D,N,=,X,S} (dropping ops that
// consume only the query, such as I) and checks whether a leading or
// trailing run of S exceeds skipTolerance in total length.
func detectSoftClipEdges(ops []op, skipTolerance int64) (left, right bool) {
	var kept []op
	for _, o := range ops {
		switch o.code {
		case 'M', 'D', 'N', '=', 'X', 'S':
			kept = append(kept, o)
		}
	}
	if len(kept) == 0 {
		return false, false
	}
	if kept[0].code == 'S' && kept[0].length > skipTolerance {
		left = true
	}
	if last := kept[len(kept)-1]; last.code == 'S' && last.length > skipTolerance {
		right = true
	}
	return left, right
}

// classify drops S ops and run-length encodes the rest as match ({M,=,X})
// or skip ({D,N}) runs.
func classify(ops []op) []run {
	var runs []run
	for _, o := range ops {
		var c class
		switch o.code {
		case 'M', '=', 'X':
			c = match
		case 'D', 'N':
			c = skip
		default: // S, I, H, P consume no reference-aligned exon/intron span
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].class == c {
			runs[n-1].length += o.length
			continue
		}
		runs = append(runs, run{class: c, length: o.length})
	}
	return runs
}

// absorbShortSkips relabels any skip run of length ≤ skipTolerance as
// match, so that short deletions and small reference skips do not split an
// exon.
func absorbShortSkips(runs []run, skipTolerance int64) []run {
	out := make([]run, len(runs))
	for i, r := range runs {
		if r.class == skip && r.length <= skipTolerance {
			r.class = match
		}
		out[i] = r
	}
	return out
}

// mergeAdjacent merges consecutive runs of the same class, which
// absorbShortSkips can create by turning a skip run into match next to an
// existing match run.
func mergeAdjacent(runs []run) []run {
	var out []run
	for _, r := range runs {
		if n := len(out); n > 0 && out[n-1].class == r.class {
			out[n-1].length += r.length
			continue
		}
		out = append(out, r)
	}
	return out
}

// materialize walks runs from pos, emitting a Region per match run and
// advancing pos across skip runs without emitting anything.
func materialize(runs []run, pos int64) []splice.Region {
	var regions []splice.Region
	for _, r := range runs {
		if r.class == match {
			regions = append(regions, splice.NewRegion(pos, pos+r.length-1))
		}
		pos += r.length
	}
	return regions
}

// filterByMapTolerance drops any region shorter than mapTolerance.
func filterByMapTolerance(regions []splice.Region, mapTolerance int64) []splice.Region {
	var out []splice.Region
	for _, r := range regions {
		if r.Len() >= mapTolerance {
			out = append(out, r)
		}
	}
	return out
}
