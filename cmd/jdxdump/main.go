// Command jdxdump inspects and extracts data from JCAMP-DX files.
//
// Usage:
//
//	jdxdump dump [options] <input.jdx>   Print the block/LDR structure
//	jdxdump data [options] <input.jdx>   Print one record's points as CSV
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sciformats/jdx"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "dump":
		err = runDump(os.Args[2:])
	case "data":
		err = runData(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "jdxdump: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "jdxdump: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  jdxdump dump [options] <input.jdx>   Print the block/LDR structure
  jdxdump data [options] <input.jdx>   Print one record's points as CSV

Use "-" as input to read from stdin.

Run "jdxdump <command> -h" for command-specific options.
`)
}

// openInput returns an io.ReadCloser for path. If path is "-", stdin
// is returned wrapped so that closing it is a no-op.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func parseOptions(maxDepth int, strictX bool) []jdx.ParseOption {
	var opts []jdx.ParseOption
	if maxDepth > 0 {
		opts = append(opts, jdx.WithMaxBlockDepth(maxDepth))
	}
	if strictX {
		opts = append(opts, jdx.WithStrictXCheck(true))
	}
	return opts
}

// --- dump ---

func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	maxDepth := fs.Int("max-depth", 0, "maximum LINK block nesting depth (0=default)")
	strictX := fs.Bool("strict-x", false, "enforce the (X++(Y..Y)) abscissa cross-check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("dump: missing input file\nUsage: jdxdump dump [options] <input.jdx>")
	}

	in, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	root, err := jdx.Parse(in, parseOptions(*maxDepth, *strictX)...)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	dumpBlock(w, root, 0)
	return nil
}

func dumpBlock(w io.Writer, b *jdx.Block, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%sBLOCK %q\n", indent, b.Title())
	for _, ldr := range b.Ldrs() {
		fmt.Fprintf(w, "%s  %s = %s\n", indent, ldr.Label, oneLine(ldr.Value))
	}
	for _, c := range b.BlockComments() {
		fmt.Fprintf(w, "%s  ## %s\n", indent, oneLine(c))
	}
	for _, rec := range dumpRecords(b) {
		fmt.Fprintf(w, "%s  [%s]\n", indent, rec)
	}
	for _, nested := range b.NestedBlocks() {
		dumpBlock(w, nested, depth+1)
	}
}

func dumpRecords(b *jdx.Block) []string {
	var recs []string
	if _, ok := b.XyData(); ok {
		recs = append(recs, "XYDATA")
	}
	if _, ok := b.RaData(); ok {
		recs = append(recs, "RADATA")
	}
	if _, ok := b.XyPoints(); ok {
		recs = append(recs, "XYPOINTS")
	}
	if _, ok := b.PeakTable(); ok {
		recs = append(recs, "PEAKTABLE")
	}
	if _, ok := b.PeakAssignments(); ok {
		recs = append(recs, "PEAKASSIGNMENTS")
	}
	if _, ok := b.AuditTrail(); ok {
		recs = append(recs, "AUDITTRAIL")
	}
	if nt, ok := b.NTuples(); ok {
		recs = append(recs, fmt.Sprintf("NTUPLES %s (%d page(s))", nt.DataForm, len(nt.Pages)))
	}
	return recs
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " \\ ")
}

// --- data ---

func runData(args []string) error {
	fs := flag.NewFlagSet("data", flag.ContinueOnError)
	record := fs.String("record", "xydata", "record to extract: xydata, radata, xypoints, ntuples")
	maxDepth := fs.Int("max-depth", 0, "maximum LINK block nesting depth (0=default)")
	strictX := fs.Bool("strict-x", false, "enforce the (X++(Y..Y)) abscissa cross-check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("data: missing input file\nUsage: jdxdump data [options] <input.jdx>")
	}

	in, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	root, err := jdx.Parse(in, parseOptions(*maxDepth, *strictX)...)
	if err != nil {
		return err
	}

	points, err := extractPoints(root, strings.ToLower(*record))
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, p := range points {
		fmt.Fprintf(w, "%g,%g\n", p.X, p.Y)
	}
	return nil
}

// extractPoints walks b depth-first for the first block carrying the
// named record and returns its decoded points.
func extractPoints(b *jdx.Block, record string) ([]jdx.Point, error) {
	switch record {
	case "xydata":
		if rec, ok := b.XyData(); ok {
			return rec.GetData()
		}
	case "radata":
		if rec, ok := b.RaData(); ok {
			return rec.GetData()
		}
	case "xypoints":
		if rec, ok := b.XyPoints(); ok {
			return rec.GetData()
		}
	case "ntuples":
		if rec, ok := b.NTuples(); ok {
			for _, page := range rec.Pages {
				if page.DataTable != nil {
					return page.DataTable.GetData()
				}
			}
		}
	default:
		return nil, fmt.Errorf("unknown record %q (use xydata, radata, xypoints, or ntuples)", record)
	}
	for _, nested := range b.NestedBlocks() {
		if points, err := extractPoints(nested, record); err == nil && points != nil {
			return points, nil
		}
	}
	return nil, fmt.Errorf("no %s record found", record)
}
