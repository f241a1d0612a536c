package splice

// Contains decides whether other (typically a transcript's merged
// SpliceList) could have originated from s (an annotated variant or the
// pre-mRNA), given a per-junction nucleotide tolerance tol.
//
// Two checks must both pass:
//
//  1. Every region of other must be covered by s's regions to within tol —
//     a contiguous overhang run longer than tol means a whole exon is
//     missing from s, which no tolerance should absorb.
//  2. Every junction of other must have a matching junction of the same
//     Kind in s within tol positions. Junctions that are part of a
//     complementary pair in other (Complement != nil) additionally record
//     the matched index in s.Junctions(); consecutive pairs of such indices
//     must be adjacent (differ by at most 1), which is the exon-skipping
//     test — it rejects a candidate variant whose matching boundary would
//     have to cross an intervening exon.
//
// When more than one of s's junctions falls within tolerance of a given
// other junction, the last one scanned (not the first) is the one recorded
// for the adjacency test. This reproduces an otherwise-unremarkable
// `continue`-without-`break` in the original scan and is specified here as
// the intended, observable behavior.
func (s *SpliceList) Contains(other *SpliceList, tol int64) bool {
	if overhangExceeds(other.Regions(), s.Regions(), tol) {
		return false
	}

	selfJunctions := s.Junctions()
	var matchOrder []int
	for _, j := range other.Junctions() {
		matched := -1
		for i, sj := range selfJunctions {
			if sj.Kind != j.Kind {
				continue
			}
			if sj.Position < j.Position-tol || sj.Position > j.Position+tol {
				continue
			}
			matched = i // last match within tolerance wins, not the first
		}
		if matched == -1 {
			return false
		}
		if j.Complement != nil {
			matchOrder = append(matchOrder, matched)
		}
	}

	for i := 0; i+1 < len(matchOrder); i += 2 {
		if abs(matchOrder[i]-matchOrder[i+1]) > 1 {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// overhangExceeds reports whether any maximal run of otherRegions' positions
// left uncovered by selfRegions exceeds tol in length. selfRegions is
// assumed sorted and disjoint, as produced by Regions().
func overhangExceeds(otherRegions, selfRegions []Region, tol int64) bool {
	for _, or := range otherRegions {
		for _, piece := range subtractCoverage(or, selfRegions) {
			if piece.Len() > tol {
				return true
			}
		}
	}
	return false
}

// subtractCoverage returns the maximal sub-intervals of region not covered
// by coverage (sorted, disjoint). This is the interval-sweep equivalent of
// materialising every integer position and taking a set difference, per the
// "region-overhang set arithmetic" design note.
func subtractCoverage(region Region, coverage []Region) []Region {
	var out []Region
	cur := region.Start
	for _, c := range coverage {
		if c.Stop < cur {
			continue
		}
		if c.Start > region.Stop {
			break
		}
		if c.Start > cur {
			stop := c.Start - 1
			if stop > region.Stop {
				stop = region.Stop
			}
			out = append(out, NewRegion(cur, stop))
		}
		if c.Stop+1 > cur {
			cur = c.Stop + 1
		}
		if cur > region.Stop {
			break
		}
	}
	if cur <= region.Stop {
		out = append(out, NewRegion(cur, region.Stop))
	}
	return out
}
