package annotate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ning-y/trcls/gtf"
	"github.com/ning-y/trcls/sam"
	"github.com/ning-y/trcls/transcript"
)

const testGTF = `chr1	test	exon	100	200	.	+	.	gene_id "G1"; transcript_id "T1";
chr1	test	exon	300	400	.	+	.	gene_id "G1"; transcript_id "T1";
`

func buildAnnotations(t *testing.T) *gtf.Annotations {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.gtf")
	require.NoError(t, os.WriteFile(path, []byte(testGTF), 0o644))
	ann, err := gtf.Build(context.Background(), path)
	require.NoError(t, err)
	return ann
}

func mustParse(t *testing.T, raw string) sam.Line {
	t.Helper()
	l, err := sam.ParseLine(raw)
	require.NoError(t, err)
	return l
}

func TestTagAppliesMatchedIdentifiers(t *testing.T) {
	ann := buildAnnotations(t)
	a := New(ann, 0)

	line := mustParse(t, "readX\t0\tchr1\t100\t60\t101M99N101M\t*\t0\t0\tACGT\tIIII")
	tr, err := transcript.Assemble([]sam.Line{line}, 0, 0, nil)
	require.NoError(t, err)

	lines := a.Tag(tr)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "TR:Z:T1")
}

func TestTagNoMatchUsesAsterisk(t *testing.T) {
	ann := buildAnnotations(t)
	a := New(ann, 0)

	line := mustParse(t, "readY\t0\tchr1\t5000\t60\t50M\t*\t0\t0\tACGT\tIIII")
	tr, err := transcript.Assemble([]sam.Line{line}, 0, 0, nil)
	require.NoError(t, err)

	lines := a.Tag(tr)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "TR:Z:*")
}
