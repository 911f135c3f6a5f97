// Package tuples implements the two tuple-parsing strategies shared by
// PEAK TABLE, PEAK ASSIGNMENTS, and AUDIT TRAIL: a parenthesis-balanced
// multiline tuple ("(1, 2, 3)" possibly spanning several physical
// lines, closed by a line ending in ")") and a single-line queue of
// comma-tuples separated by whitespace or semicolons ("1,2,3 4,5,6").
// Like internal/asdf it has no notion of LDRs or records; it only
// knows how to carve a reader or a line into tuple strings.
package tuples

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sciformats/jdx/internal/ldrlex"
	"github.com/sciformats/jdx/internal/textio"
)

// ExtractTokens matches tuple, with its trailing "$$" comment
// stripped, against re and returns exactly numGroups tokens (index 0
// is the whole match). An unmatched group yields a nil token.
func ExtractTokens(tuple string, re *regexp.Regexp, numGroups int) ([]*string, error) {
	content, _ := ldrlex.StripLineComment(tuple)
	content = strings.TrimSpace(content)
	m := re.FindStringSubmatchIndex(content)
	if m == nil {
		return nil, fmt.Errorf("tuples: illegal tuple: %s", tuple)
	}
	tokens := make([]*string, numGroups)
	for i := 0; i < numGroups && i*2 < len(m); i++ {
		start, end := m[i*2], m[i*2+1]
		if start == -1 {
			continue
		}
		s := content[start:end]
		tokens[i] = &s
	}
	return tokens, nil
}

// ParseDoubleToken parses token as a float64, treating a nil or empty
// token as the "missing value" marker (NaN), matching how PEAK TABLE
// and PEAK ASSIGNMENTS entries represent an absent Y or W component.
func ParseDoubleToken(token *string) float64 {
	if token == nil || *token == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*token), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// peakSeparator matches the boundary between two single-line tuples:
// whitespace or a semicolon, optionally padded with more whitespace,
// flanked on both sides by a character that is neither a comma nor
// whitespace (so that the comma-separated fields within one tuple are
// never mistaken for a tuple boundary).
var peakSeparator = regexp.MustCompile(`[^,\s](\s*(?:\s|;)\s*)[^,\s]`)

// SplitQueuedTuples splits one physical line carrying several
// comma-field tuples (PEAK TABLE's packed form) into the individual
// tuple strings.
func SplitQueuedTuples(line string) ([]string, error) {
	parts := splitOnGroup(peakSeparator, line)
	if len(parts) == 0 {
		return nil, fmt.Errorf("tuples: unexpected content while splitting tuples: %s", line)
	}
	return parts, nil
}

// splitOnGroup splits input at the span of regex's first capturing
// group across all non-overlapping matches, keeping everything outside
// those spans (including the anchor characters the match consumed on
// either side of the group).
func splitOnGroup(re *regexp.Regexp, input string) []string {
	matches := re.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return []string{input}
	}
	out := make([]string, 0, len(matches)+1)
	prevEnd := 0
	for _, m := range matches {
		groupStart, groupEnd := m[2], m[3]
		out = append(out, input[prevEnd:groupStart])
		prevEnd = groupEnd
	}
	out = append(out, input[prevEnd:])
	return out
}

// NextMultiline reads and returns the next parenthesis-delimited tuple
// from r, joining continuation lines with joiner. ok is false once the
// next LDR is reached with no tuple pending. r is left positioned at
// the start of the next LDR line in that case; otherwise it is left
// positioned immediately after the tuple's closing line.
func NextMultiline(r *textio.Reader, joiner string) (tuple string, ok bool, err error) {
	var b strings.Builder

	for {
		if r.Eof() {
			return "", false, nil
		}
		pos := r.Tell()
		line, _ := r.ReadLine()
		content, _ := ldrlex.StripLineComment(line)
		content = strings.TrimSpace(content)
		if isTupleStart(content) {
			b.WriteString(content)
			break
		}
		if ldrlex.IsLdrStart(line) {
			r.Seek(pos)
			return "", false, nil
		}
		if content != "" {
			return "", false, fmt.Errorf("tuples: illegal content found: %s", line)
		}
	}

	if isTupleEnd(b.String()) {
		return b.String(), true, nil
	}

	for {
		if r.Eof() {
			return "", false, fmt.Errorf("tuples: file ended before closing parenthesis was found for entry: %s", b.String())
		}
		pos := r.Tell()
		line, _ := r.ReadLine()
		content, _ := ldrlex.StripLineComment(line)
		content = strings.TrimSpace(content)

		if ldrlex.IsLdrStart(line) {
			r.Seek(pos)
			return "", false, fmt.Errorf("tuples: no closing parenthesis found for entry: %s", b.String())
		}
		b.WriteString(joiner)
		b.WriteString(content)
		if isTupleEnd(content) {
			return b.String(), true, nil
		}
	}
}

func isTupleStart(s string) bool {
	s = strings.TrimLeft(s, " \t")
	return s != "" && s[0] == '('
}

func isTupleEnd(s string) bool {
	s = strings.TrimRight(s, " \t")
	return s != "" && s[len(s)-1] == ')'
}
