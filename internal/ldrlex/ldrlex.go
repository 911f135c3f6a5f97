// Package ldrlex implements the lexical rules for Labelled Data Record
// headers: recognizing "##LABEL=value" lines, normalizing labels for
// comparison, and stripping "$$" line comments. It mirrors the
// teacher's constants.go approach of hoisting magic byte patterns into
// named, independently testable helpers, adapted from FourCC matching
// to line-prefix matching.
package ldrlex

import "strings"

// IsLdrStart reports whether line begins a new LDR, i.e. matches
// `^\s*##.*=`. JCAMP-DX allows leading whitespace before the "##".
func IsLdrStart(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "##") {
		return false
	}
	return strings.Contains(trimmed, "=")
}

// IsPureComment reports whether line, once line-comments are stripped,
// contains nothing but whitespace. A line consisting solely of a "$$"
// comment is pure; a data line ending in a "$$" comment is not.
func IsPureComment(line string) bool {
	stripped, _ := StripLineComment(line)
	return strings.TrimSpace(stripped) == ""
}

// StripLineComment splits line at the first "$$" marker,
// returning the content before it and the comment text after it (with
// the marker itself removed). If no marker is present, comment is "".
func StripLineComment(line string) (content, comment string) {
	idx := strings.Index(line, "$$")
	if idx == -1 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx+2:])
}

// ParseLdrStart splits an LDR start line into its raw label and value.
// The caller must have already verified IsLdrStart(line). The label is
// everything between "##" and the first "=", the value is everything
// after that "=" (line-comment not yet stripped).
func ParseLdrStart(line string) (label, value string) {
	trimmed := strings.TrimLeft(line, " \t")
	body := trimmed[2:] // drop leading "##"
	eq := strings.Index(body, "=")
	if eq == -1 {
		return strings.TrimSpace(body), ""
	}
	return strings.TrimSpace(body[:eq]), body[eq+1:]
}

// NormalizeLabel canonicalizes a raw LDR label for comparison against
// the fixed set of special labels (TITLE, DATA TYPE, XYDATA, ...): it
// uppercases and removes spaces, hyphens, underscores, and slashes, so
// that "Data Type", "DATA-TYPE" and "DATATYPE" all normalize alike, per
// the JCAMP-DX label-equivalence rule.
func NormalizeLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch r {
		case ' ', '-', '_', '/':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}

// HasSoftWrapContinuation reports whether value (the unstripped content
// following an LDR's "=") ends in "=", which JCAMP-DX treats as a
// marker that the value continues, unbroken, on the next physical line.
func HasSoftWrapContinuation(value string) bool {
	return strings.HasSuffix(strings.TrimRight(value, " \t"), "=")
}

// TrimSoftWrapMarker removes a trailing soft-wrap "=" (and any
// whitespace after it) from value, for joining with the next line.
func TrimSoftWrapMarker(value string) string {
	trimmed := strings.TrimRight(value, " \t")
	return strings.TrimSuffix(trimmed, "=")
}

// SplitCommaList splits a variable-list or parameter string on commas,
// trimming whitespace from each element and dropping empty elements
// produced by trailing commas.
func SplitCommaList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
