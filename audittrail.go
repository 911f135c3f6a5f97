package jdx

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sciformats/jdx/internal/ldrlex"
	"github.com/sciformats/jdx/internal/textio"
	"github.com/sciformats/jdx/internal/tuples"
)

var auditTrailVariableLists = []string{
	"(NUMBER, WHEN, WHO, WHERE, WHAT)",
	"(NUMBER, WHEN, WHO, WHERE, VERSION, WHAT)",
	"(NUMBER, WHEN, WHO, WHERE, PROCESS, VERSION, WHAT)",
}

// auditTrailEntryRegex matches 5-7 entry segments as groups 1-7,
// groups 5 and 6 optional, corresponding to one of (NUMBER, WHEN, WHO,
// WHERE, WHAT), (NUMBER, WHEN, WHO, WHERE, VERSION, WHAT), (NUMBER,
// WHEN, WHO, WHERE, PROCESS, VERSION, WHAT).
var auditTrailEntryRegex = regexp.MustCompile(
	`^\s*\(\s*(\d)(?:\s*,\s*<([^>]*)>)(?:\s*,\s*<([^>]*)>)(?:\s*,\s*<([^>]*)>)(?:\s*,\s*<([^>]*)>)?(?:\s*,\s*<([^>]*)>)?(?:\s*,\s*<([^>]*)>)\s*\)\s*$`)

const brukerAuditTrailTitleMarker = "$$ ##TITLE= Audit trail,"
const brukerAuditTrailLdrMarker = "$$ ##AUDIT TRAIL="

// AuditTrail represents an AUDIT TRAIL record. Some instruments (e.g.
// Bruker) write a generic variable list on the "##AUDITTRAIL=" line
// itself but hide the real, overruling variable list in a "$$
// ##AUDIT TRAIL=" comment a few lines into the record; this is
// detected and preferred over the declared one when present.
type AuditTrail struct {
	reader       *textio.Reader
	offset       int64
	variableList string
}

func newAuditTrail(label, variableList string, r *textio.Reader, ldrs []StringLdr) (*AuditTrail, error) {
	trimmed := strings.TrimSpace(variableList)
	if err := validateVariableList(label, trimmed, "AUDITTRAIL", auditTrailVariableLists); err != nil {
		return nil, err
	}

	brukerVarList, err := scanForBrukerVarList(r)
	if err != nil {
		return nil, err
	}
	effective := trimmed
	if brukerVarList != nil {
		if err := validateVariableList(label, *brukerVarList, "AUDITTRAIL", auditTrailVariableLists); err != nil {
			return nil, err
		}
		effective = *brukerVarList
	}

	offset := r.Tell()
	if err := skipDataBody(r); err != nil {
		return nil, err
	}
	return &AuditTrail{reader: r, offset: offset, variableList: effective}, nil
}

// scanForBrukerVarList peeks past the AUDITTRAIL start line looking
// for Bruker's "$$ ##TITLE= Audit trail," marker followed eventually
// by a "$$ ##AUDIT TRAIL=" comment carrying the real variable list. If
// neither marker is found the reader is left exactly where it was.
func scanForBrukerVarList(r *textio.Reader) (*string, error) {
	start := r.Tell()
	if r.Eof() {
		return nil, nil
	}
	first, _ := r.ReadLine()
	if !strings.HasPrefix(first, brukerAuditTrailTitleMarker) {
		r.Seek(start)
		return nil, nil
	}
	for !r.Eof() {
		pos := r.Tell()
		line, _ := r.ReadLine()
		if !ldrlex.IsPureComment(line) {
			r.Seek(pos)
			break
		}
		if strings.HasPrefix(line, brukerAuditTrailLdrMarker) {
			_, comment := ldrlex.StripLineComment(line)
			label, varList := ldrlex.ParseLdrStart(strings.TrimSpace(comment))
			if ldrlex.NormalizeLabel(label) != "AUDITTRAIL" {
				continue
			}
			trimmed := strings.TrimSpace(varList)
			return &trimmed, nil
		}
	}
	return nil, nil
}

// GetData decodes and returns the record's audit trail entries.
func (a *AuditTrail) GetData() ([]AuditTrailEntry, error) {
	return withReaderPos(a.reader, a.offset, func() ([]AuditTrailEntry, error) {
		var entries []AuditTrailEntry
		for {
			tuple, ok, err := tuples.NextMultiline(a.reader, "\n")
			if err != nil {
				return nil, wrapErr(KindTupleSyntax, err, "failed to parse audit trail entry")
			}
			if !ok {
				break
			}
			entry, err := parseAuditTrailEntry(tuple, a.variableList)
			if err != nil {
				return nil, wrapErr(KindTupleSyntax, err, "failed to parse audit trail entry")
			}
			entries = append(entries, entry)
		}
		return entries, nil
	})
}

func parseAuditTrailEntry(tuple, variableList string) (AuditTrailEntry, error) {
	tokens, err := tuples.ExtractTokens(tuple, auditTrailEntryRegex, 8)
	if err != nil {
		return AuditTrailEntry{}, err
	}
	if tokens[1] == nil || tokens[2] == nil || tokens[3] == nil || tokens[4] == nil || tokens[7] == nil {
		return AuditTrailEntry{}, newErr(KindTupleSyntax, "illegal audit trail entry string: %s", tuple)
	}
	number, nerr := strconv.ParseInt(*tokens[1], 10, 64)
	if nerr != nil {
		return AuditTrailEntry{}, newErr(KindTupleSyntax, "illegal audit trail entry number: %s", *tokens[1])
	}
	entry := AuditTrailEntry{
		Number: number,
		When:   *tokens[2],
		Who:    *tokens[3],
		Where:  *tokens[4],
		What:   *tokens[7],
	}
	token5, token6 := tokens[5], tokens[6]
	switch variableList {
	case "(NUMBER, WHEN, WHO, WHERE, WHAT)":
		if token5 != nil || token6 != nil {
			return AuditTrailEntry{}, newErr(KindTupleSyntax,
				"illegal audit trail entry components for (NUMBER, WHEN, WHO, WHERE, WHAT): %s", tuple)
		}
	case "(NUMBER, WHEN, WHO, WHERE, VERSION, WHAT)":
		if token5 == nil || token6 != nil {
			return AuditTrailEntry{}, newErr(KindTupleSyntax,
				"illegal audit trail entry component for (NUMBER, WHEN, WHO, WHERE, VERSION, WHAT): %s", tuple)
		}
		entry.Version = token5
	case "(NUMBER, WHEN, WHO, WHERE, PROCESS, VERSION, WHAT)":
		if token5 == nil || token6 == nil {
			return AuditTrailEntry{}, newErr(KindTupleSyntax,
				"illegal audit trail entry component for (NUMBER, WHEN, WHO, WHERE, PROCESS, VERSION, WHAT): %s", tuple)
		}
		entry.Process = token5
		entry.Version = token6
	default:
		return AuditTrailEntry{}, newErr(KindUnsupportedFeature, "unsupported variable list for audit trail: %s", variableList)
	}
	return entry, nil
}
