package gtf

import (
	"context"
	"sort"

	farm "github.com/dgryski/go-farm"
	"github.com/pkg/errors"

	"github.com/ning-y/trcls/splice"
)

const (
	transcriptIDKey = "transcript_id"
	preMRNAID       = "pre-mRNA"
)

// Annotations holds one SpliceList per transcript variant, parsed from a GTF
// file's exon rows, plus a synthesized whole-locus pre-mRNA SpliceList
// appended last. The pre-mRNA is a variant like any other for matching
// purposes. Its only junctions are the locus's two outer boundaries, so it
// matches a transcript that lies inside the locus bounds and carries no
// junction other than (within tolerance) those two; such a transcript that
// matches no individual variant shows up as ["pre-mRNA"].
type Annotations struct {
	Variants []*splice.SpliceList

	cache map[cacheKey][]string
}

type cacheKey struct {
	hash uint64
	tol  int64
}

// Build reads the GTF file at path and groups its exon rows into variant
// SpliceLists. Grouping is by consecutive run of identical transcript_id,
// not by a global regroup: if the same transcript_id reappears later, after
// other ids have intervened, it starts a second, independent variant rather
// than being merged into the first. This matches the upstream prototype,
// which never regroups either.
func Build(ctx context.Context, path string) (*Annotations, error) {
	rows, err := readRows(ctx, path)
	if err != nil {
		return nil, err
	}

	var variants []*splice.SpliceList
	var haveBounds bool
	var loStart, hiStop int64

	flush := func(id string, exons []splice.Exon) error {
		sl, err := splice.NewFromExons(id, exons, true, true)
		if err != nil {
			return errors.Wrapf(err, "gtf: transcript %s", id)
		}
		variants = append(variants, sl)
		return nil
	}

	var curID string
	var curExons []splice.Exon
	for _, r := range rows {
		id, err := attribute(r.Attributes, transcriptIDKey)
		if err != nil {
			return nil, errors.Wrapf(err, "gtf: row %s:%d-%d", r.Chrom, r.Start, r.Stop)
		}

		start, stop := r.Start, r.Stop
		if start > stop {
			start, stop = stop, start
		}
		if !haveBounds || start < loStart {
			loStart = start
		}
		if !haveBounds || stop > hiStop {
			hiStop = stop
		}
		haveBounds = true

		if id != curID && len(curExons) > 0 {
			if err := flush(curID, curExons); err != nil {
				return nil, err
			}
			curExons = nil
		}
		curID = id
		curExons = append(curExons, splice.Exon{Start: start, Stop: stop})
	}
	if len(curExons) > 0 {
		if err := flush(curID, curExons); err != nil {
			return nil, err
		}
	}

	if haveBounds {
		preMRNA, err := splice.NewFromExons(preMRNAID, []splice.Exon{{Start: loStart, Stop: hiStop}}, true, true)
		if err != nil {
			return nil, errors.Wrap(err, "gtf: synthesizing pre-mRNA")
		}
		variants = append(variants, preMRNA)
	}

	return &Annotations{
		Variants: variants,
		cache:    make(map[cacheKey][]string),
	}, nil
}

// GetAnnotations evaluates variant.Contains(merged, tol) for every variant in
// file order (the trailing pre-mRNA included) and returns the identifiers of
// every variant that matches, in that same order. merged is the n-ary union
// of a transcript's segments' SpliceLists (splice.UnionMany) — the union
// itself happens at the call site rather than here, so this package need not
// depend on the transcript/segment packages to compute it.
//
// Results are memoized against a farm hash of merged's region and junction
// geometry together with tol, since many reads share the same splice
// pattern (most obviously, exonic reads with no splice signal at all) and
// would otherwise repeat the same full variant scan.
func (a *Annotations) GetAnnotations(merged *splice.SpliceList, tol int64) []string {
	key := cacheKey{hash: canonicalHash(merged), tol: tol}
	if ids, hit := a.cache[key]; hit {
		return ids
	}

	var ids []string
	for _, v := range a.Variants {
		if v.Contains(merged, tol) {
			ids = append(ids, v.Identifier)
		}
	}
	a.cache[key] = ids
	return ids
}

// canonicalHash farm-hashes a deterministic encoding of sl's regions and
// junctions (including whether each junction has a wired Complement, which
// Contains' adjacency test depends on), so that two transcripts assembled
// from different reads but covering identical splice geometry share one
// cache entry.
func canonicalHash(sl *splice.SpliceList) uint64 {
	regions := append([]splice.Region{}, sl.Regions()...)
	sort.Slice(regions, func(i, j int) bool { return regions[i].Start < regions[j].Start })
	junctions := append([]*splice.Junction{}, sl.Junctions()...)
	sort.Slice(junctions, func(i, j int) bool { return junctions[i].Position < junctions[j].Position })

	buf := make([]byte, 0, 16*len(regions)+10*len(junctions))
	for _, r := range regions {
		buf = appendInt64(buf, r.Start)
		buf = appendInt64(buf, r.Stop)
	}
	for _, j := range junctions {
		buf = appendInt64(buf, j.Position)
		buf = append(buf, byte(j.Kind))
		if j.Complement != nil {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return farm.Hash64(buf)
}

func appendInt64(buf []byte, v int64) []byte {
	return append(buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}
