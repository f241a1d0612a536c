package splice

import "sort"

// Union merges two SpliceLists. The result's regions are the
// contiguous-position union of a's and b's regions; adjacent or overlapping
// regions collapse into one. A junction from either input survives only if
// the position just inside it (p-1 for a Start, p+1 for an End) is not
// covered by the merged regions — a junction strictly inside a now-contiguous
// region is no longer a boundary. The two inputs' Junction objects are
// reused by reference (not copied), so any Complement already wired on them
// remains visible through the merged result.
func Union(a, b *SpliceList) *SpliceList {
	identifier := a.Identifier
	if a.Identifier != b.Identifier {
		identifier = a.Identifier + "," + b.Identifier
	}

	merged := mergeRegions(append(append([]Region{}, a.Regions()...), b.Regions()...))

	var comps []component
	for _, r := range merged {
		comps = append(comps, regionComponentOf(r))
	}

	junctions := append(append([]*Junction{}, a.Junctions()...), b.Junctions()...)
	var surviving []*Junction
	for _, j := range junctions {
		var inner int64
		if j.Kind == Start {
			inner = j.Position - 1
		} else {
			inner = j.Position + 1
		}
		if !coveredBy(merged, inner) {
			surviving = append(surviving, j)
		}
	}
	for _, j := range dedupeJunctions(surviving) {
		comps = append(comps, junctionComponentOf(j))
	}

	sort.SliceStable(comps, func(i, k int) bool {
		pi, pk := comps[i].position(), comps[k].position()
		if pi != pk {
			return pi < pk
		}
		// Ties are broken region-before-junction, matching the merge order
		// (regions are appended to comps before junctions above).
		return comps[i].kind == regionComponent && comps[k].kind == junctionComponent
	})

	return &SpliceList{Identifier: identifier, components: comps}
}

// UnionMany left-folds Union over sls. It panics if sls is empty; callers
// (transcripts always have at least one segment) never pass an empty slice.
func UnionMany(sls []*SpliceList) *SpliceList {
	if len(sls) == 0 {
		panic("splice: UnionMany called with no SpliceLists")
	}
	joined := sls[0]
	for _, sl := range sls[1:] {
		joined = Union(joined, sl)
	}
	return joined
}

// mergeRegions collapses a set of possibly-overlapping or touching regions
// into their minimal sorted, disjoint cover. A linear sweep over sorted
// boundaries rather than materialising every integer position, per the
// "region-overhang set arithmetic" design note — same observable contract,
// less memory.
func mergeRegions(regions []Region) []Region {
	if len(regions) == 0 {
		return nil
	}
	sorted := append([]Region{}, regions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	out := make([]Region, 0, len(sorted))
	cur := sorted[0]
	for _, r := range sorted[1:] {
		if r.Start <= cur.Stop+1 {
			if r.Stop > cur.Stop {
				cur.Stop = r.Stop
			}
			continue
		}
		out = append(out, cur)
		cur = r
	}
	out = append(out, cur)
	return out
}

// coveredBy reports whether pos falls within any of the disjoint, sorted
// regions.
func coveredBy(regions []Region, pos int64) bool {
	i := sort.Search(len(regions), func(i int) bool { return regions[i].Stop >= pos })
	return i < len(regions) && regions[i].Start <= pos
}

// junctionKey identifies a Junction by the (position, kind) pair that makes
// two Junctions from different inputs logically the same boundary, per
// spec.md §4.2 step 3's "set union of input junctions" — a plain
// concatenation is not a set and would carry such a junction twice into the
// merged result (breaking splice.Contains' match_order index pairing for
// any duplicated complement member).
type junctionKey struct {
	position int64
	kind     Kind
}

// dedupeJunctions collapses js to one *Junction per (position, kind),
// preserving first-seen order. When two Junctions share a key and only one
// carries a Complement, the one with the Complement is kept, so wiring
// installed on either input survives the union.
func dedupeJunctions(js []*Junction) []*Junction {
	seen := make(map[junctionKey]*Junction, len(js))
	order := make([]junctionKey, 0, len(js))
	for _, j := range js {
		k := junctionKey{position: j.Position, kind: j.Kind}
		if existing, ok := seen[k]; ok {
			if existing.Complement == nil && j.Complement != nil {
				seen[k] = j
			}
			continue
		}
		seen[k] = j
		order = append(order, k)
	}
	out := make([]*Junction, len(order))
	for i, k := range order {
		out[i] = seen[k]
	}
	return out
}
