package jdx

import (
	"strconv"
	"strings"

	"github.com/sciformats/jdx/internal/ldrlex"
	"github.com/sciformats/jdx/internal/textio"
)

// withReaderPos seeks r to offset, runs decode, then restores r's
// position to whatever it was before the call — on success or error —
// so a record's GetData never disturbs another record's place in the
// reader the two share.
func withReaderPos[T any](r *textio.Reader, offset int64, decode func() (T, error)) (T, error) {
	saved := r.Tell()
	r.Seek(offset)
	result, err := decode()
	r.Seek(saved)
	return result, err
}

// skipDataBody advances r past an already-parsed data record's body,
// stopping at the next LDR start (or leaving r at EOF if somehow none
// follows, though a well-formed file always has a closing "##END=").
func skipDataBody(r *textio.Reader) error {
	for !r.Eof() {
		pos := r.Tell()
		line, _ := r.ReadLine()
		if ldrlex.IsLdrStart(line) {
			r.Seek(pos)
			return nil
		}
	}
	return nil
}

// findLdrValue looks up label (normalized) in ldrs and returns its raw
// value.
func findLdrValue(ldrs []StringLdr, label string) (string, bool) {
	normalized := ldrlex.NormalizeLabel(label)
	for _, ldr := range ldrs {
		if ldrlex.NormalizeLabel(ldr.Label) == normalized {
			return ldr.Value, true
		}
	}
	return "", false
}

// requiredFields collects the parsed values and error for a batch of
// required string/float LDR lookups, so constructors can report every
// missing field in one error rather than failing on the first.
type requiredFields struct {
	ldrs    []StringLdr
	missing []string
}

func newRequiredFields(ldrs []StringLdr) *requiredFields {
	return &requiredFields{ldrs: ldrs}
}

func (r *requiredFields) str(label string) string {
	v, ok := findLdrValue(r.ldrs, label)
	if !ok {
		r.missing = append(r.missing, label)
	}
	return v
}

func (r *requiredFields) float(label string) float64 {
	v, ok := findLdrValue(r.ldrs, label)
	if !ok {
		r.missing = append(r.missing, label)
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		r.missing = append(r.missing, label)
		return 0
	}
	return f
}

func (r *requiredFields) uint(label string) uint64 {
	v, ok := findLdrValue(r.ldrs, label)
	if !ok {
		r.missing = append(r.missing, label)
		return 0
	}
	u, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		r.missing = append(r.missing, label)
		return 0
	}
	return u
}

// err returns the accumulated missing-field error, or nil if every
// required field was present and parsed.
func (r *requiredFields) err(recordLabel string) error {
	if len(r.missing) == 0 {
		return nil
	}
	return newErr(KindMissingRequired, "required LDR(s) missing for %s: {%s }", recordLabel, " "+strings.Join(r.missing, " "))
}

// optionalFloat parses an optional numeric LDR, returning nil if absent.
func optionalFloat(ldrs []StringLdr, label string) *float64 {
	v, ok := findLdrValue(ldrs, label)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	return &f
}

// optionalString returns a pointer to the trimmed LDR value, or nil if
// absent.
func optionalString(ldrs []StringLdr, label string) *string {
	v, ok := findLdrValue(ldrs, label)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}

// readLdrValue reads the continuation lines of an LDR value that
// started with firstValue: lines are appended, joined by "\n", until
// the next LDR start is reached (left unconsumed in r for the caller)
// or a pure "$$" comment line is reached (consumed and discarded,
// ending accumulation). A value ending in "=" joins the next physical
// line directly with no break (the soft-wrap marker).
func readLdrValue(r *textio.Reader, firstValue string) (string, error) {
	value := strings.TrimSpace(firstValue)
	for {
		if r.Eof() {
			return value, nil
		}
		pos := r.Tell()
		line, _ := r.ReadLine()
		if ldrlex.IsLdrStart(line) {
			r.Seek(pos)
			return value, nil
		}
		if ldrlex.IsPureComment(line) {
			return value, nil
		}
		content, _ := ldrlex.StripLineComment(line)
		if content != "" && value != "" && strings.HasSuffix(value, "=") {
			value = ldrlex.TrimSoftWrapMarker(value) + line
		} else {
			value += "\n" + line
		}
	}
}

// skipPureCommentLines advances r past any leading run of "$$"-only
// comment lines, leaving it positioned at the first line that is not
// a pure comment (or at EOF).
func skipPureCommentLines(r *textio.Reader) error {
	for !r.Eof() {
		pos := r.Tell()
		line, _ := r.ReadLine()
		if !ldrlex.IsPureComment(line) {
			r.Seek(pos)
			return nil
		}
	}
	return nil
}

// readLdrsUntil reads a run of "##LABEL=value" LDRs (with multi-line
// value continuation via readLdrValue) until one whose normalized
// label is in terminators is reached. That terminating line is left
// unconsumed in r so the caller can read it as a fresh LDR start.
func readLdrsUntil(r *textio.Reader, terminators []string) ([]StringLdr, error) {
	var ldrs []StringLdr
	for {
		if r.Eof() {
			return nil, newErr(KindUnexpectedContent, "unexpected end of input while reading LDRs")
		}
		pos := r.Tell()
		lineNo := r.Line()
		line, _ := r.ReadLine()
		if !ldrlex.IsLdrStart(line) {
			return nil, newErr(KindUnexpectedContent, "unexpected content found: %s", line).withLine(lineNo)
		}
		label, value := ldrlex.ParseLdrStart(line)
		normalized := ldrlex.NormalizeLabel(label)
		for _, t := range terminators {
			if normalized == t {
				r.Seek(pos)
				return ldrs, nil
			}
		}
		full, err := readLdrValue(r, value)
		if err != nil {
			return nil, err
		}
		ldrs = append(ldrs, StringLdr{Label: normalized, Value: full})
	}
}

// validateVariableList checks a record's label and variable list
// against the expected label and the set of variable lists the record
// type supports.
func validateVariableList(label, variableList, expectedLabel string, expectedLists []string) error {
	if ldrlex.NormalizeLabel(label) != expectedLabel {
		return newErr(KindIllegalVariableList, "illegal label at %s start: %s", expectedLabel, label)
	}
	trimmed := strings.TrimSpace(variableList)
	for _, want := range expectedLists {
		if trimmed == want {
			return nil
		}
	}
	return newErr(KindIllegalVariableList, "illegal variable list for %s: %s", expectedLabel, trimmed)
}
