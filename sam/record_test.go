package sam

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLine(qname string, flag int, pos int64, cigar, rnext string) string {
	return fmt.Sprintf("%s\t%d\tchr1\t%d\t60\t%s\t%s\t0\t0\tACGT\tIIII", qname, flag, pos, cigar, rnext)
}

func TestParseLine(t *testing.T) {
	raw := sampleLine("read1", 0x1|0x40, 100, "10M", "=")
	l, err := ParseLine(raw)
	require.NoError(t, err)
	assert.Equal(t, "read1", l.QNAME)
	assert.Equal(t, 0x1|0x40, l.Flag)
	assert.Equal(t, int64(100), l.POS)
	assert.Equal(t, "10M", l.CIGAR)
	assert.Equal(t, "=", l.RNEXT)
	assert.Equal(t, raw, l.Raw)
}

func TestParseLineTooFewColumns(t *testing.T) {
	_, err := ParseLine("read1\t0\tchr1")
	assert.Error(t, err)
}

func TestHasFlag(t *testing.T) {
	l := Line{Flag: FlagPaired | FlagFirst}
	assert.True(t, l.HasFlag(FlagPaired))
	assert.True(t, l.HasFlag(FlagFirst))
	assert.False(t, l.HasFlag(FlagLast))
}

func TestIsHeader(t *testing.T) {
	assert.True(t, IsHeader("@HD\tVN:1.6"))
	assert.False(t, IsHeader("read1\t0\tchr1"))
}

func TestWithTag(t *testing.T) {
	assert.Equal(t, "line\tTR:Z:NM_1,NM_2", WithTag("line", "NM_1,NM_2"))
}
