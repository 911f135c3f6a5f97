package jdx

import (
	"regexp"
	"strings"

	"github.com/sciformats/jdx/internal/textio"
	"github.com/sciformats/jdx/internal/tuples"
)

// peakAssignmentRegex matches 2-5 assignment components as groups
// 1-5: X[, Y][, W or M][, W], A, with X as group 1 and the assignment
// string A as group 5.
var peakAssignmentRegex = regexp.MustCompile(`^\s*\(\s*([^,]*)(?:\s*,\s*([^,]*))?(?:\s*,\s*([^,]*))?(?:\s*,\s*([^,]*))?\s*,\s*<(.*)>\s*\)\s*$`)

// PeakAssignments represents a PEAK ASSIGNMENTS record: a list of
// assignment tuples, each of which may span multiple physical lines.
type PeakAssignments struct {
	reader       *textio.Reader
	offset       int64
	variableList string
	widthFunc    *string
}

func newPeakAssignments(label, variableList string, r *textio.Reader, ldrs []StringLdr) (*PeakAssignments, error) {
	if err := validateVariableList(label, variableList, "PEAKASSIGNMENTS", []string{"(XYA)", "(XYWA)", "(XYMA)", "(XYMWA)"}); err != nil {
		return nil, err
	}
	widthFunc := readWidthFunction(r)
	offset := r.Tell()
	if err := skipDataBody(r); err != nil {
		return nil, err
	}
	return &PeakAssignments{
		reader:       r,
		offset:       offset,
		variableList: strings.TrimSpace(variableList),
		widthFunc:    widthFunc,
	}, nil
}

// WidthFunction returns the textual definition of the peak width (or
// other kernel) function, found in "$$" comment lines immediately
// following the record's variable-list line, if any were present.
func (p *PeakAssignments) WidthFunction() *string { return p.widthFunc }

// GetData decodes and returns the record's peak assignments.
func (p *PeakAssignments) GetData() ([]PeakAssignment, error) {
	return withReaderPos(p.reader, p.offset, func() ([]PeakAssignment, error) {
		var assignments []PeakAssignment
		for {
			tuple, ok, err := tuples.NextMultiline(p.reader, " ")
			if err != nil {
				return nil, wrapErr(KindTupleSyntax, err, "failed to parse peak assignments entry")
			}
			if !ok {
				break
			}
			assignment, err := parsePeakAssignment(tuple, p.variableList)
			if err != nil {
				return nil, wrapErr(KindTupleSyntax, err, "failed to parse peak assignments entry")
			}
			assignments = append(assignments, assignment)
		}
		return assignments, nil
	})
}

func parsePeakAssignment(tuple, variableList string) (PeakAssignment, error) {
	// token2 is Y in every variable list; token3 and token4 shift
	// meaning by variable list (W for (XYWA), M for (XYMA)/(XYMWA),
	// with token4 as W again for (XYMWA)); token5 is always A.
	tokens, err := tuples.ExtractTokens(tuple, peakAssignmentRegex, 6)
	if err != nil {
		return PeakAssignment{}, err
	}
	token2, token3, token4 := tokens[2], tokens[3], tokens[4]

	switch variableList {
	case "(XYA)":
		if token3 != nil || token4 != nil {
			return PeakAssignment{}, newErr(KindTupleSyntax, "illegal peak assignments entry for (XYA): %s", tuple)
		}
	case "(XYWA)":
		if token4 != nil {
			return PeakAssignment{}, newErr(KindTupleSyntax, "illegal peak assignments entry for (XYWA): %s", tuple)
		}
		if token2 != nil && token3 == nil {
			return PeakAssignment{}, newErr(KindTupleSyntax, "ambiguous peak assignments entry for (XYWA): %s", tuple)
		}
	case "(XYMA)":
		if token4 != nil {
			return PeakAssignment{}, newErr(KindTupleSyntax, "illegal peak assignments entry for (XYMA): %s", tuple)
		}
		if token2 != nil && token3 == nil {
			return PeakAssignment{}, newErr(KindTupleSyntax, "ambiguous peak assignments entry for (XYMA): %s", tuple)
		}
	case "(XYMWA)":
		allPresent := token2 != nil && token3 != nil && token4 != nil
		anyPresent := token2 != nil || token3 != nil || token4 != nil
		if !allPresent && anyPresent {
			return PeakAssignment{}, newErr(KindTupleSyntax, "ambiguous peak assignments entry for (XYMWA): %s", tuple)
		}
	default:
		return PeakAssignment{}, newErr(KindUnsupportedFeature, "unsupported variable list for peak assignments: %s", variableList)
	}

	assignment := PeakAssignment{
		X: tuples.ParseDoubleToken(tokens[1]),
		A: derefOrEmpty(tokens[5]),
	}

	switch variableList {
	case "(XYA)":
		if token2 != nil {
			v := tuples.ParseDoubleToken(token2)
			assignment.Y = &v
		}
	case "(XYWA)":
		if token2 != nil && token3 != nil {
			v := tuples.ParseDoubleToken(token2)
			assignment.Y = &v
			w := tuples.ParseDoubleToken(token3)
			assignment.W = &w
		}
	case "(XYMA)":
		if token2 != nil && token3 != nil {
			v := tuples.ParseDoubleToken(token2)
			assignment.Y = &v
			assignment.M = token3
		}
	case "(XYMWA)":
		if token2 != nil && token3 != nil && token4 != nil {
			v := tuples.ParseDoubleToken(token2)
			assignment.Y = &v
			assignment.M = token3
			w := tuples.ParseDoubleToken(token4)
			assignment.W = &w
		}
	}

	return assignment, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
