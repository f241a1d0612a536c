// Package sam reads raw SAM alignment lines field-by-field, without
// building a full record model. Only the five fields the pipeline consumes
// (QNAME, FLAG, POS, CIGAR, RNEXT) are parsed out; the rest of the line is
// kept verbatim so it can be re-emitted byte-for-byte with a TR:Z: tag
// appended.
package sam

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FLAG bits consumed by read grouping (§4.7).
const (
	FlagPaired = 0x1
	FlagFirst  = 0x40
	FlagLast   = 0x80
)

const (
	colQNAME = 0
	colFLAG  = 1
	colPOS   = 3
	colCIGAR = 5
	colRNEXT = 6

	minColumns = 11
)

// Line is one non-header SAM alignment line, parsed just enough to drive
// CIGAR interpretation and read grouping. Raw holds the original line
// unmodified.
type Line struct {
	Raw   string
	QNAME string
	Flag  int
	POS   int64
	CIGAR string
	RNEXT string
}

// ParseLine splits a raw tab-separated SAM alignment line into a Line. It
// does not validate the full eleven-column-plus-tags grammar; it checks
// only that at least the eleven mandatory columns are present and that
// FLAG/POS parse as integers.
func ParseLine(raw string) (Line, error) {
	fields := strings.Split(raw, "\t")
	if len(fields) < minColumns {
		return Line{}, errors.Errorf("sam: line has %d columns, want at least %d: %q", len(fields), minColumns, raw)
	}

	flag, err := strconv.Atoi(fields[colFLAG])
	if err != nil {
		return Line{}, errors.Wrapf(err, "sam: FLAG field %q", fields[colFLAG])
	}
	pos, err := strconv.ParseInt(fields[colPOS], 10, 64)
	if err != nil {
		return Line{}, errors.Wrapf(err, "sam: POS field %q", fields[colPOS])
	}

	return Line{
		Raw:   raw,
		QNAME: fields[colQNAME],
		Flag:  flag,
		POS:   pos,
		CIGAR: fields[colCIGAR],
		RNEXT: fields[colRNEXT],
	}, nil
}

// IsHeader reports whether raw is a SAM header line, passed through
// verbatim rather than parsed.
func IsHeader(raw string) bool {
	return strings.HasPrefix(raw, "@")
}

// HasFlag reports whether every bit set in mask is also set in l.Flag.
func (l Line) HasFlag(mask int) bool {
	return l.Flag&mask == mask
}

// WithTag returns raw's text with a tab-separated TR:Z:value field
// appended.
func WithTag(raw, value string) string {
	return raw + "\tTR:Z:" + value
}
