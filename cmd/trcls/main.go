// Command trcls annotates RNA-seq read alignments with the splice-variant
// transcripts each read could have originated from, by comparing the SAM
// input's CIGAR-derived splice structure against a GTF's exon annotations.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/compress"
	baseerrors "github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/ning-y/trcls/annotate"
	"github.com/ning-y/trcls/event"
	"github.com/ning-y/trcls/gtf"
	"github.com/ning-y/trcls/sam"
	"github.com/ning-y/trcls/transcript"
)

const version = "0.1.0"

func usage() {
	fmt.Fprint(os.Stderr, `trcls annotates SAM alignments with their splice-variant transcript of origin.

Usage:
  trcls [flags] <alignment.sam> <features.gtf>

  Required Positional Arguments:
    alignment      SAM file of aligned reads.
    features       GTF file of gene/transcript/exon annotations.

Flags:
`)
	flag.PrintDefaults()
}

type cliFlags struct {
	mapTolerance      int
	skipTolerance     int
	junctionTolerance int
	quiet             bool
	verbose           bool
	veryVerbose       bool
	showVersion       bool
}

func main() {
	flag.Usage = usage

	var flags cliFlags
	flag.IntVar(&flags.mapTolerance, "map-tolerance", 10, "minimum match-run length to count as a region")
	flag.IntVar(&flags.mapTolerance, "m", 10, "shorthand for -map-tolerance")
	flag.IntVar(&flags.skipTolerance, "skip-tolerance", 20, "maximum skip-run length absorbed into the surrounding match; also the minimum soft-clip length to mark a read edge as a junction")
	flag.IntVar(&flags.skipTolerance, "s", 20, "shorthand for -skip-tolerance")
	flag.IntVar(&flags.junctionTolerance, "junction-tolerance", 20, "positional slack in variant matching for regions and junctions")
	flag.IntVar(&flags.junctionTolerance, "o", 20, "shorthand for -junction-tolerance")
	flag.BoolVar(&flags.quiet, "quiet", false, "log errors only")
	flag.BoolVar(&flags.quiet, "q", false, "shorthand for -quiet")
	flag.BoolVar(&flags.verbose, "verbose", false, "log info messages")
	flag.BoolVar(&flags.verbose, "v", false, "shorthand for -verbose")
	flag.BoolVar(&flags.veryVerbose, "very-verbose", false, "log debug messages")
	flag.BoolVar(&flags.veryVerbose, "vv", false, "shorthand for -very-verbose")
	flag.BoolVar(&flags.showVersion, "version", false, "print version and exit")

	cleanup := grail.Init()
	defer cleanup()

	if flags.showVersion {
		fmt.Println("trcls", version)
		os.Exit(0)
	}

	if flag.NArg() < 2 {
		usage()
		os.Exit(1)
	}

	ctx := vcontext.Background()
	alignmentPath, featuresPath := flag.Arg(0), flag.Arg(1)

	sink := event.LogSink{Level: verbosityLevel(flags)}

	annotations, err := gtf.Build(ctx, featuresPath)
	if err != nil {
		log.Fatal(baseerrors.E(err, "trcls: reading features", featuresPath))
	}

	if err := run(ctx, alignmentPath, annotations, flags, sink); err != nil {
		log.Fatal(baseerrors.E(err, "trcls: processing alignment", alignmentPath))
	}
}

func verbosityLevel(flags cliFlags) event.Level {
	switch {
	case flags.quiet:
		return event.LevelError
	case flags.veryVerbose:
		return event.LevelDebug
	case flags.verbose:
		return event.LevelInfo
	default:
		return event.LevelWarn
	}
}

// run streams alignmentPath's lines, passing headers through verbatim,
// grouping the rest per §4.7, assembling and annotating one transcript at a
// time, and writing each tagged line to stdout.
func run(ctx context.Context, alignmentPath string, annotations *gtf.Annotations, flags cliFlags, sink event.LogSink) error {
	f, err := file.Open(ctx, alignmentPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(ctx); cerr != nil {
			log.Error.Printf("trcls: closing %s: %v", alignmentPath, cerr)
		}
	}()

	var in io.Reader = f.Reader(ctx)
	if u := compress.NewReaderPath(in, f.Name()); u != nil {
		in = u
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64<<10), 1<<20)

	out := bufio.NewWriterSize(os.Stdout, 64<<10)
	defer out.Flush()

	annotator := annotate.New(annotations, int64(flags.junctionTolerance))

	var lines []sam.Line
	for scanner.Scan() {
		raw := scanner.Text()
		if sam.IsHeader(raw) {
			fmt.Fprintln(out, raw)
			continue
		}
		line, err := sam.ParseLine(raw)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	for _, group := range transcript.Group(lines) {
		tr, err := transcript.Assemble(group, int64(flags.skipTolerance), int64(flags.mapTolerance), sink)
		if errors.Is(err, transcript.ErrNoMappedSegments) {
			continue
		}
		if err != nil {
			return err
		}
		for _, tagged := range annotator.Tag(tr) {
			fmt.Fprintln(out, tagged)
		}
	}
	return nil
}
