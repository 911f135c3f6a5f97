package jdx

import (
	"regexp"
	"strings"

	"github.com/sciformats/jdx/internal/ldrlex"
	"github.com/sciformats/jdx/internal/textio"
	"github.com/sciformats/jdx/internal/tuples"
)

// peakTupleRegex matches 2-3 peak components as groups 1-3, covering
// (XY..XY), (XYW..XYW), and (XYM..XYM): X as group 1, Y as group 2,
// and W or M as group 3.
var peakTupleRegex = regexp.MustCompile(`^\s*([^,]*)(?:\s*,\s*([^,]*))(?:\s*,\s*([^,]*))?$`)

// PeakTable represents a PEAK TABLE record: a packed list of (X, Y[,
// W]) or (X, Y[, M]) peak entries, one or more per physical line.
type PeakTable struct {
	reader       *textio.Reader
	offset       int64
	variableList string
	widthFunc    *string
}

func newPeakTable(label, variableList string, r *textio.Reader, ldrs []StringLdr) (*PeakTable, error) {
	if err := validateVariableList(label, variableList, "PEAKTABLE", []string{"(XY..XY)", "(XYW..XYW)", "(XYM..XYM)"}); err != nil {
		return nil, err
	}
	widthFunc := readWidthFunction(r)
	offset := r.Tell()
	if err := skipDataBody(r); err != nil {
		return nil, err
	}
	return &PeakTable{
		reader:       r,
		offset:       offset,
		variableList: strings.TrimSpace(variableList),
		widthFunc:    widthFunc,
	}, nil
}

// WidthFunction returns the textual definition of the peak width (or
// other kernel) function, found in "$$" comment lines immediately
// following the record's variable-list line, if any were present.
func (p *PeakTable) WidthFunction() *string { return p.widthFunc }

// GetData decodes and returns the record's peaks.
func (p *PeakTable) GetData() ([]Peak, error) {
	return withReaderPos(p.reader, p.offset, func() ([]Peak, error) {
		var peaks []Peak
		var queue []string
		for {
			tuple, ok, err := nextQueuedTuple(p.reader, &queue)
			if err != nil {
				return nil, wrapErr(KindTupleSyntax, err, "failed to parse peak table entry")
			}
			if !ok {
				break
			}
			peak, err := parsePeak(tuple, p.variableList)
			if err != nil {
				return nil, wrapErr(KindTupleSyntax, err, "failed to parse peak table entry")
			}
			peaks = append(peaks, peak)
		}
		return peaks, nil
	})
}

func parsePeak(tuple, variableList string) (Peak, error) {
	tokens, err := tuples.ExtractTokens(tuple, peakTupleRegex, 4)
	if err != nil {
		return Peak{}, err
	}
	peak := Peak{
		X: tuples.ParseDoubleToken(tokens[1]),
		Y: tuples.ParseDoubleToken(tokens[2]),
	}
	switch variableList {
	case "(XY..XY)":
		if tokens[3] != nil {
			return Peak{}, newErr(KindTupleSyntax, "illegal peak component for (XY..XY): %s", tuple)
		}
	case "(XYW..XYW)":
		w := tuples.ParseDoubleToken(tokens[3])
		peak.W = &w
	case "(XYM..XYM)":
		peak.M = tokens[3]
	default:
		return Peak{}, newErr(KindUnsupportedFeature, "unsupported variable list for peak table: %s", variableList)
	}
	return peak, nil
}

// nextQueuedTuple pulls the next tuple string for a PEAK TABLE body,
// splitting and buffering a physical line's worth of packed tuples in
// queue as needed.
func nextQueuedTuple(r *textio.Reader, queue *[]string) (string, bool, error) {
	for len(*queue) == 0 {
		if r.Eof() {
			return "", false, nil
		}
		pos := r.Tell()
		line, _ := r.ReadLine()
		if ldrlex.IsLdrStart(line) {
			r.Seek(pos)
			return "", false, nil
		}
		content, _ := ldrlex.StripLineComment(line)
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		parts, err := tuples.SplitQueuedTuples(content)
		if err != nil {
			return "", false, err
		}
		*queue = append(*queue, parts...)
	}
	tuple := (*queue)[0]
	*queue = (*queue)[1:]
	return tuple, true, nil
}

// readWidthFunction collects consecutive "$$" comment lines
// immediately following a tabular record's variable-list line. It
// stops at the first non-comment line, leaving the reader positioned
// there.
func readWidthFunction(r *textio.Reader) *string {
	var lines []string
	for {
		if r.Eof() {
			break
		}
		pos := r.Tell()
		line, _ := r.ReadLine()
		if !ldrlex.IsPureComment(line) {
			r.Seek(pos)
			break
		}
		_, comment := ldrlex.StripLineComment(line)
		lines = append(lines, strings.TrimSpace(comment))
	}
	if len(lines) == 0 {
		return nil
	}
	joined := strings.Join(lines, "\n")
	return &joined
}
