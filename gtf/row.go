// Package gtf reads GTF exon/transcript records and builds the annotated
// SpliceLists (variants, and a synthesized whole-locus pre-mRNA) that reads
// are compared against.
package gtf

import (
	"bufio"
	"context"
	"io"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

// row is one line of a GTF file, read positionally: GTF carries no header
// and its 9 columns are fixed, so a plain tsv.Reader into a tagless struct
// works the same way readRawGTF's gtfRecord does.
type row struct {
	Chrom      string
	Source     string
	Feature    string
	Start      int64
	Stop       int64
	Score      string
	Strand     string
	Frame      string
	Attributes string
}

// readRows reads every "exon" row of the GTF file at path, in file order.
// Non-exon feature rows (gene, transcript, CDS, ...) are skipped: transcript
// structure here is derived entirely from the exon rows' transcript_id,
// matching annotations.py which never consults the transcript or gene
// feature rows either.
func readRows(ctx context.Context, path string) ([]row, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "gtf: open %s", path)
	}
	defer func() {
		if cerr := f.Close(ctx); cerr != nil {
			log.Error.Printf("gtf: closing %s: %v", path, cerr)
		}
	}()

	var in io.Reader = f.Reader(ctx)
	if u := compress.NewReaderPath(in, f.Name()); u != nil {
		in = u
	}

	reader := tsv.NewReader(bufio.NewReaderSize(in, 64<<10))
	reader.Comment = '#'
	reader.LazyQuotes = true

	var rows []row
	for {
		var r row
		if err := reader.Read(&r); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "gtf: reading %s", path)
		}
		if r.Feature != "exon" {
			continue
		}
		rows = append(rows, r)
	}
	return rows, nil
}
