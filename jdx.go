// Package jdx implements a decoder for the JCAMP-DX spectroscopy data
// interchange format.
//
// JCAMP-DX files are a sequence of labelled data records (LDRs) nested
// into blocks, with the numeric spectrum itself stored in one of
// several compact encodings (AFFN, PAC, or the ASDF run-length forms).
// Parse reads a whole file into a Block tree; the heavy numeric
// decoding of each data record is deferred until its GetData method is
// called.
package jdx

import (
	"bytes"
	"io"
	"strings"

	"github.com/sciformats/jdx/internal/ldrlex"
	"github.com/sciformats/jdx/internal/textio"
)

// Parse reads a JCAMP-DX document from r and returns its root block.
func Parse(r io.Reader, opts ...ParseOption) (*Block, error) {
	tr, err := textio.FromReader(r)
	if err != nil {
		return nil, wrapErr(KindIo, err, "reading input")
	}
	return parseDocument(tr, opts...)
}

// ParseFile reads and parses the JCAMP-DX document at path.
func ParseFile(path string, opts ...ParseOption) (*Block, error) {
	tr, err := textio.Open(path)
	if err != nil {
		return nil, wrapErr(KindIo, err, "opening %s", path)
	}
	return parseDocument(tr, opts...)
}

func parseDocument(tr *textio.Reader, opts ...ParseOption) (*Block, error) {
	o := defaultParseOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := skipPureCommentLines(tr); err != nil {
		return nil, err
	}
	if tr.Eof() {
		return nil, newErr(KindMalformedLdr, "empty input, expected ##TITLE= as first LDR")
	}
	line, _ := tr.ReadLine()
	if !ldrlex.IsLdrStart(line) {
		return nil, newErr(KindMalformedLdr, "expected ##TITLE= as first LDR, found: %s", line)
	}
	label, value := ldrlex.ParseLdrStart(line)
	if ldrlex.NormalizeLabel(label) != "TITLE" {
		return nil, newErr(KindMalformedLdr, "expected ##TITLE= as first LDR, found: %s", line)
	}
	return parseBlock(tr, value, 0, o)
}

// CanParse reports whether a file at path, sniffed via its leading
// bytes in peek, looks like a JCAMP-DX document: a ".jdx"/".dx"
// extension, or a first non-blank, non-"$$"-comment line starting
// with "##TITLE=" (label matching is case- and whitespace-insensitive
// per the format's label equivalence rules, so peek is scanned with
// the same normalization Parse uses rather than a literal match).
func CanParse(path string, peek []byte) bool {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".jdx") || strings.HasSuffix(lower, ".dx") {
		return true
	}
	for _, raw := range strings.Split(string(bytes.ReplaceAll(peek, []byte("\r\n"), []byte("\n"))), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || ldrlex.IsPureComment(line) {
			continue
		}
		if !ldrlex.IsLdrStart(line) {
			return false
		}
		label, _ := ldrlex.ParseLdrStart(line)
		return ldrlex.NormalizeLabel(label) == "TITLE"
	}
	return false
}
