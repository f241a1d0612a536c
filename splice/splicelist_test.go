package splice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeExons() []Exon {
	return []Exon{{100, 200}, {300, 400}, {500, 600}}
}

func TestNewFromExonsComponentCounts(t *testing.T) {
	sl, err := NewFromExons("t", threeExons(), false, false)
	require.NoError(t, err)
	assert.Equal(t, 3*3-2, sl.Len())
	assert.Len(t, sl.Regions(), 3)
	assert.Equal(t, regionComponent, sl.components[0].kind)
	assert.Equal(t, regionComponent, sl.components[len(sl.components)-1].kind)

	slBoth, err := NewFromExons("t", threeExons(), true, true)
	require.NoError(t, err)
	assert.Equal(t, 3*3, slBoth.Len())
	assert.Equal(t, junctionComponent, slBoth.components[0].kind)
	assert.Equal(t, junctionComponent, slBoth.components[len(slBoth.components)-1].kind)
}

func TestNewFromExonsSortsInput(t *testing.T) {
	reversed := []Exon{{500, 600}, {100, 200}, {300, 400}}
	sl, err := NewFromExons("t", reversed, false, false)
	require.NoError(t, err)
	regions := sl.Regions()
	require.Len(t, regions, 3)
	assert.Equal(t, int64(100), regions[0].Start)
	assert.Equal(t, int64(300), regions[1].Start)
	assert.Equal(t, int64(500), regions[2].Start)
}

func TestNewFromExonsOverlapRejected(t *testing.T) {
	_, err := NewFromExons("t", []Exon{{100, 200}, {200, 300}}, false, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOverlappingExons))

	_, err = NewFromExons("t", []Exon{{100, 205}, {200, 300}}, false, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOverlappingExons))
}

func TestSelfContainment(t *testing.T) {
	sl, err := NewFromExons("t", threeExons(), true, true)
	require.NoError(t, err)
	for _, tol := range []int64{0, 5, 20} {
		assert.True(t, sl.Contains(sl, tol))
	}
}

func TestContainsMissingExonFails(t *testing.T) {
	full, err := NewFromExons("full", threeExons(), true, true)
	require.NoError(t, err)
	partial, err := NewFromExons("partial", []Exon{{100, 200}, {500, 600}}, true, true)
	require.NoError(t, err)

	// partial skips the middle exon entirely. full does contain partial:
	// partial's regions lie inside full's, each of its junctions has a
	// same-kind match in full, and no complement is wired, so the adjacency
	// test never applies. The reverse direction fails: full has a 101-base
	// overhang at the middle exon [300,400] that partial cannot cover.
	assert.False(t, partial.Contains(full, 10))
}

func TestToleranceMonotonicity(t *testing.T) {
	full, err := NewFromExons("full", threeExons(), true, true)
	require.NoError(t, err)
	shifted, err := NewFromExons("shifted", []Exon{{105, 200}, {300, 400}, {500, 595}}, true, true)
	require.NoError(t, err)

	assert.False(t, full.Contains(shifted, 2))
	assert.True(t, full.Contains(shifted, 5))
	assert.True(t, full.Contains(shifted, 6))
}

func TestUnionIdempotence(t *testing.T) {
	sl, err := NewFromExons("t", threeExons(), true, true)
	require.NoError(t, err)
	u := Union(sl, sl)
	assert.Equal(t, sl.Regions(), u.Regions())
	assert.Equal(t, "t", u.Identifier)

	// The junction set, not just the region extent, must match sl's: union
	// is a set union of junctions, so unioning sl with itself must not
	// double up every surviving junction.
	require.Len(t, u.Junctions(), len(sl.Junctions()))
	for i, j := range sl.Junctions() {
		assert.Equal(t, j.Position, u.Junctions()[i].Position)
		assert.Equal(t, j.Kind, u.Junctions()[i].Kind)
	}
}

func TestUnionDedupesSharedJunctionAcrossDistinctInputs(t *testing.T) {
	// a's region [100,200] and b's region [150,200] overlap and merge into
	// one [100,200] region, but both independently contribute an End
	// junction at the same position 200 — the shared boundary two
	// overlapping, soft-clipped segments can each produce. Since that
	// position's inner edge (201) is not covered by the merged region,
	// both junctions survive the coverage filter; the union must still
	// carry only one of them, not two.
	a, err := NewFromExons("a", []Exon{{100, 200}}, false, true)
	require.NoError(t, err)
	b, err := NewFromExons("b", []Exon{{150, 200}}, false, true)
	require.NoError(t, err)

	u := Union(a, b)
	require.Len(t, u.Regions(), 1)
	assert.Equal(t, int64(100), u.Regions()[0].Start)
	assert.Equal(t, int64(200), u.Regions()[0].Stop)

	junctions := u.Junctions()
	require.Len(t, junctions, 1)
	assert.Equal(t, int64(200), junctions[0].Position)
	assert.Equal(t, End, junctions[0].Kind)
}

func TestUnionMergesAdjacentRegionsAndDropsInternalJunctions(t *testing.T) {
	a, err := NewFromExons("a", []Exon{{100, 200}}, false, true)
	require.NoError(t, err)
	b, err := NewFromExons("b", []Exon{{201, 300}}, true, false)
	require.NoError(t, err)

	u := Union(a, b)
	regions := u.Regions()
	require.Len(t, regions, 1)
	assert.Equal(t, int64(100), regions[0].Start)
	assert.Equal(t, int64(300), regions[0].Stop)
	assert.Empty(t, u.Junctions())
	assert.Equal(t, "a,b", u.Identifier)
}

func TestUnionKeepsSeparateRegionsAndJunctions(t *testing.T) {
	a, err := NewFromExons("a", []Exon{{100, 200}}, true, true)
	require.NoError(t, err)
	b, err := NewFromExons("b", []Exon{{300, 400}}, true, true)
	require.NoError(t, err)

	u := Union(a, b)
	regions := u.Regions()
	require.Len(t, regions, 2)
	junctions := u.Junctions()
	require.Len(t, junctions, 4)
}

func TestUnionManyAssociative(t *testing.T) {
	a, _ := NewFromExons("a", []Exon{{100, 200}}, true, true)
	b, _ := NewFromExons("b", []Exon{{300, 400}}, true, true)
	c, _ := NewFromExons("c", []Exon{{500, 600}}, true, true)

	left := Union(Union(a, b), c)
	right := UnionMany([]*SpliceList{a, b, c})
	assert.Equal(t, left.Regions(), right.Regions())
}

func TestWireComplements(t *testing.T) {
	left, err := NewFromExons("left", []Exon{{100, 200}}, false, true)
	require.NoError(t, err)
	right, err := NewFromExons("right", []Exon{{300, 400}}, true, false)
	require.NoError(t, err)

	WireComplements([]*SpliceList{left, right})

	leftEnd := left.Junctions()[0]
	rightStart := right.Junctions()[0]
	require.NotNil(t, leftEnd.Complement)
	assert.Same(t, rightStart, leftEnd.Complement)
	assert.Same(t, leftEnd, rightStart.Complement)
}
