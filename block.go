package jdx

import (
	"strings"

	"github.com/sciformats/jdx/internal/ldrlex"
	"github.com/sciformats/jdx/internal/textio"
)

// specialBlockLabels are the labels Block dispatches to dedicated
// handling rather than storing as a plain LDR. Unlike the source this
// is grounded on, AUDITTRAIL and NTUPLES are both wired in here as
// first-class block members.
var specialBlockLabels = map[string]bool{
	"":                true, // "##=" comment
	"END":             true,
	"TITLE":           true,
	"XYDATA":          true,
	"RADATA":          true,
	"XYPOINTS":        true,
	"PEAKTABLE":       true,
	"PEAKASSIGNMENTS": true,
	"NTUPLES":         true,
	"AUDITTRAIL":      true,
}

// Block represents a JCAMP-DX block: a TITLE-delimited record possibly
// nesting further blocks (a LINK block) and carrying at most one of
// each recognized data record.
type Block struct {
	title    string
	ldrs     []StringLdr
	comments []string
	Blocks   []*Block

	xyData          *XyData
	raData          *RaData
	xyPoints        *XyPoints
	peakTable       *PeakTable
	peakAssignments *PeakAssignments
	auditTrail      *AuditTrail
	nTuples         *NTuples
}

// Title returns the block's TITLE value.
func (b *Block) Title() string { return b.title }

// BlockComments returns the block's own "##=" comment lines, in file
// order. Comments belonging to a nested block are not included.
func (b *Block) BlockComments() []string { return b.comments }

// Ldrs returns the block's plain LDRs, in file order. This never
// includes "##=" comments or any of the recognized data records — use
// BlockComments, NestedBlocks, XyData, and so on for those.
func (b *Block) Ldrs() []StringLdr { return b.ldrs }

// Ldr looks up a single LDR by label (normalized per JCAMP-DX label
// equivalence rules).
func (b *Block) Ldr(label string) (StringLdr, bool) {
	normalized := ldrlex.NormalizeLabel(label)
	for _, ldr := range b.ldrs {
		if ldr.Label == normalized {
			return ldr, true
		}
	}
	return StringLdr{}, false
}

// NestedBlocks returns the child blocks of a LINK block, in file
// order. A data block has none.
func (b *Block) NestedBlocks() []*Block { return b.Blocks }

// XyData returns the block's XYDATA record, if present.
func (b *Block) XyData() (*XyData, bool) { return b.xyData, b.xyData != nil }

// RaData returns the block's RADATA record, if present.
func (b *Block) RaData() (*RaData, bool) { return b.raData, b.raData != nil }

// XyPoints returns the block's XYPOINTS record, if present.
func (b *Block) XyPoints() (*XyPoints, bool) { return b.xyPoints, b.xyPoints != nil }

// PeakTable returns the block's PEAK TABLE record, if present.
func (b *Block) PeakTable() (*PeakTable, bool) { return b.peakTable, b.peakTable != nil }

// PeakAssignments returns the block's PEAK ASSIGNMENTS record, if
// present.
func (b *Block) PeakAssignments() (*PeakAssignments, bool) {
	return b.peakAssignments, b.peakAssignments != nil
}

// AuditTrail returns the block's AUDIT TRAIL record, if present.
func (b *Block) AuditTrail() (*AuditTrail, bool) { return b.auditTrail, b.auditTrail != nil }

// NTuples returns the block's NTUPLES record, if present.
func (b *Block) NTuples() (*NTuples, bool) { return b.nTuples, b.nTuples != nil }

// defaultMaxBlockDepth guards against runaway or maliciously nested
// LINK blocks; it is overridable via WithMaxBlockDepth.
const defaultMaxBlockDepth = 32

func parseBlock(r *textio.Reader, title string, depth int, opts *ParseOptions) (*Block, error) {
	if depth > opts.maxBlockDepth {
		return nil, newErr(KindUnsupportedFeature, "block nesting exceeds maximum depth %d", opts.maxBlockDepth)
	}

	titleValue, err := readLdrValue(r, title)
	if err != nil {
		return nil, err
	}
	b := &Block{title: titleValue, ldrs: []StringLdr{{Label: "TITLE", Value: titleValue}}}

	for {
		if r.Eof() {
			return nil, newErr(KindUnexpectedContent, "no END LDR found for block: %s", b.title).withBlock(b.title)
		}
		lineNo := r.Line()
		line, _ := r.ReadLine()
		if !ldrlex.IsLdrStart(line) {
			return nil, newErr(KindUnexpectedContent, "unexpected content found in block %q: %s", b.title, line).withBlock(b.title).withLine(lineNo)
		}
		label, value := ldrlex.ParseLdrStart(line)
		normalized := ldrlex.NormalizeLabel(label)

		if !specialBlockLabels[normalized] {
			if _, ok := b.Ldr(normalized); ok {
				return nil, newErr(KindDuplicate, "multiple %s LDRs found in block: %s", normalized, b.title).withBlock(b.title).withLabel(normalized).withLine(lineNo)
			}
			full, err := readLdrValue(r, value)
			if err != nil {
				return nil, err
			}
			b.ldrs = append(b.ldrs, StringLdr{Label: normalized, Value: full})
			continue
		}

		switch normalized {
		case "":
			full, err := readLdrValue(r, value)
			if err != nil {
				return nil, err
			}
			b.comments = append(b.comments, strings.TrimSpace(full))
		case "END":
			return b, nil
		case "TITLE":
			nested, err := parseBlock(r, value, depth+1, opts)
			if err != nil {
				return nil, err
			}
			b.Blocks = append(b.Blocks, nested)
			if err := skipPureCommentLines(r); err != nil {
				return nil, err
			}
		case "XYDATA":
			if b.xyData != nil {
				return nil, newErr(KindDuplicate, "multiple XYDATA LDRs found in block: %s", b.title).withBlock(b.title).withLine(lineNo)
			}
			b.xyData, err = newXyData(normalized, value, r, b.ldrs, opts)
		case "RADATA":
			if b.raData != nil {
				return nil, newErr(KindDuplicate, "multiple RADATA LDRs found in block: %s", b.title).withBlock(b.title).withLine(lineNo)
			}
			b.raData, err = newRaData(normalized, value, r, b.ldrs, opts)
		case "XYPOINTS":
			if b.xyPoints != nil {
				return nil, newErr(KindDuplicate, "multiple XYPOINTS LDRs found in block: %s", b.title).withBlock(b.title).withLine(lineNo)
			}
			b.xyPoints, err = newXyPoints(normalized, value, r, b.ldrs)
		case "PEAKTABLE":
			if b.peakTable != nil {
				return nil, newErr(KindDuplicate, "multiple PEAKTABLE LDRs found in block: %s", b.title).withBlock(b.title).withLine(lineNo)
			}
			b.peakTable, err = newPeakTable(normalized, value, r, b.ldrs)
		case "PEAKASSIGNMENTS":
			if b.peakAssignments != nil {
				return nil, newErr(KindDuplicate, "multiple PEAKASSIGNMENTS LDRs found in block: %s", b.title).withBlock(b.title).withLine(lineNo)
			}
			b.peakAssignments, err = newPeakAssignments(normalized, value, r, b.ldrs)
		case "AUDITTRAIL":
			if b.auditTrail != nil {
				return nil, newErr(KindDuplicate, "multiple AUDITTRAIL LDRs found in block: %s", b.title).withBlock(b.title).withLine(lineNo)
			}
			b.auditTrail, err = newAuditTrail(normalized, value, r, b.ldrs)
		case "NTUPLES":
			if b.nTuples != nil {
				return nil, newErr(KindDuplicate, "multiple NTUPLES LDRs found in block: %s", b.title).withBlock(b.title).withLine(lineNo)
			}
			content, _ := ldrlex.StripLineComment(value)
			b.nTuples, err = newNTuples(strings.TrimSpace(content), r, b.ldrs, opts)
		}
		if err != nil {
			return nil, err
		}
	}
}
