package transcript

import "github.com/ning-y/trcls/sam"

// Group groups non-header SAM lines per §4.7: lines with FLAG bit 0x1 unset
// are ungrouped singletons. Among lines with 0x1 set, each first-in-template
// line (0x40) follows its RNEXT chain — "=" meaning the same QNAME, "*"
// terminating the chain, anything else naming the QNAME to look for — to
// consume middle lines (neither 0x40 nor 0x80) until a last-in-template
// line (0x80) is found or the chain breaks. A first that consumed at least
// one middle or last is emitted as a group regardless of whether the chain
// ended in a matching last; only a first with zero continuation becomes an
// orphan singleton. Any middle/last never consumed into a chain is also an
// orphan singleton.
//
// Emission order: proper groups, then ungrouped singletons, then orphan
// singletons, each class preserving input order.
func Group(lines []sam.Line) [][]sam.Line {
	var ungrouped []sam.Line
	var paired []sam.Line
	for _, l := range lines {
		if l.HasFlag(sam.FlagPaired) {
			paired = append(paired, l)
		} else {
			ungrouped = append(ungrouped, l)
		}
	}

	var firsts, middles, lasts []sam.Line
	for _, l := range paired {
		switch {
		case l.HasFlag(sam.FlagFirst):
			firsts = append(firsts, l)
		case l.HasFlag(sam.FlagLast):
			lasts = append(lasts, l)
		default:
			middles = append(middles, l)
		}
	}

	// middlesByName and lastsByName index middles and lasts by QNAME, preserving each
	// name's lines in input order so the earliest-appearing match is
	// consumed first.
	middlesByName := make(map[string][]int)
	for i, l := range middles {
		middlesByName[l.QNAME] = append(middlesByName[l.QNAME], i)
	}
	lastsByName := make(map[string][]int)
	for i, l := range lasts {
		lastsByName[l.QNAME] = append(lastsByName[l.QNAME], i)
	}
	middleConsumed := make([]bool, len(middles))
	lastConsumed := make([]bool, len(lasts))

	var groups [][]sam.Line
	var orphans []sam.Line

	popMiddle := func(name string) (sam.Line, bool) {
		idxs := middlesByName[name]
		for len(idxs) > 0 && middleConsumed[idxs[0]] {
			idxs = idxs[1:]
		}
		middlesByName[name] = idxs
		if len(idxs) == 0 {
			return sam.Line{}, false
		}
		middleConsumed[idxs[0]] = true
		return middles[idxs[0]], true
	}
	popLast := func(name string) (sam.Line, bool) {
		idxs := lastsByName[name]
		for len(idxs) > 0 && lastConsumed[idxs[0]] {
			idxs = idxs[1:]
		}
		lastsByName[name] = idxs
		if len(idxs) == 0 {
			return sam.Line{}, false
		}
		lastConsumed[idxs[0]] = true
		return lasts[idxs[0]], true
	}

	for _, first := range firsts {
		group := []sam.Line{first}
		rnext := first.RNEXT
		name := first.QNAME

	chain:
		for {
			switch rnext {
			case "*":
				break chain
			case "=":
				// refers to the same QNAME as the record this RNEXT belongs to
			default:
				name = rnext
			}

			if mid, ok := popMiddle(name); ok {
				group = append(group, mid)
				rnext = mid.RNEXT
				if rnext != "=" {
					name = rnext
				}
				continue
			}
			if last, ok := popLast(name); ok {
				group = append(group, last)
			}
			break chain
		}

		// A first that consumed at least one continuation is emitted as a
		// group even if the chain never reached a last: only a first with
		// zero continuation becomes an orphan singleton.
		if len(group) > 1 {
			groups = append(groups, group)
		} else {
			orphans = append(orphans, first)
		}
	}

	for i, l := range middles {
		if !middleConsumed[i] {
			orphans = append(orphans, l)
		}
	}
	for i, l := range lasts {
		if !lastConsumed[i] {
			orphans = append(orphans, l)
		}
	}

	var out [][]sam.Line
	out = append(out, groups...)
	for _, u := range ungrouped {
		out = append(out, []sam.Line{u})
	}
	for _, o := range orphans {
		out = append(out, []sam.Line{o})
	}
	return out
}
