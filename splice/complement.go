package splice

// WireComplements walks the concatenation of every list's components, in
// the order the lists are given, and links adjacent Junction pairs that
// qualify as complements: both components must be Junctions (not Regions),
// of opposite Kind, and both already flagged HasComplement (meaning each
// sits at a soft-clipped read edge that could be spliced against its
// neighbour). This is how paired segments landing on adjacent exons get
// their shared splice boundary recorded.
//
// Intended for use by transcript assembly, where lists is the ordered
// per-segment SpliceLists of one read group.
func WireComplements(lists []*SpliceList) {
	var all []component
	for _, l := range lists {
		all = append(all, l.components...)
	}
	for i := 0; i+1 < len(all); i++ {
		a, b := all[i], all[i+1]
		if a.kind != junctionComponent || b.kind != junctionComponent {
			continue
		}
		if a.junction.Kind != b.junction.Kind && a.junction.HasComplement && b.junction.HasComplement {
			a.junction.Complement = b.junction
			b.junction.Complement = a.junction
		}
	}
}
