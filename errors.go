package jdx

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a parse error. The set is closed: every failure this
// module can produce maps to exactly one Kind.
type Kind int

const (
	// KindIo indicates the underlying text source failed.
	KindIo Kind = iota
	// KindMalformedLdr indicates a missing "##" or "=", or an otherwise
	// syntactically invalid LDR header.
	KindMalformedLdr
	// KindUnexpectedContent indicates non-comment text between LDRs, or
	// content after a block's "##END=" that is not a pure comment.
	KindUnexpectedContent
	// KindDuplicate indicates a standard LDR or special record appeared
	// twice in one block.
	KindDuplicate
	// KindMissingRequired indicates a parameter LDR required to
	// interpret a data record is absent.
	KindMissingRequired
	// KindIllegalVariableList indicates a record's variable list does
	// not match its allow-list.
	KindIllegalVariableList
	// KindNPointsMismatch indicates a decoded count differs from
	// NPOINTS or VAR_DIM.
	KindNPointsMismatch
	// KindYCheck indicates the inter-line Y-checksum was violated by
	// more than 1.
	KindYCheck
	// KindAsdfSyntax indicates an ASDF token rule was violated.
	KindAsdfSyntax
	// KindTupleSyntax indicates a bracket/angle-bracket mismatch, wrong
	// component count, or premature EOF inside a tuple.
	KindTupleSyntax
	// KindUnsupportedFeature indicates a label or form outside this
	// module's scope.
	KindUnsupportedFeature
)

func (k Kind) String() string {
	switch k {
	case KindIo:
		return "io"
	case KindMalformedLdr:
		return "malformed_ldr"
	case KindUnexpectedContent:
		return "unexpected_content"
	case KindDuplicate:
		return "duplicate"
	case KindMissingRequired:
		return "missing_required"
	case KindIllegalVariableList:
		return "illegal_variable_list"
	case KindNPointsMismatch:
		return "npoints_mismatch"
	case KindYCheck:
		return "y_check"
	case KindAsdfSyntax:
		return "asdf_syntax"
	case KindTupleSyntax:
		return "tuple_syntax"
	case KindUnsupportedFeature:
		return "unsupported_feature"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by this module. It carries
// enough context (the kind, the containing block's title, the
// offending label, and a source line when known) to report a useful
// message without a caller needing to parse the message string.
type Error struct {
	Kind  Kind
	Block string
	Label string
	Line  int
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	where := e.Block
	if e.Label != "" {
		where = fmt.Sprintf("%s/%s", where, e.Label)
	}
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Line)
	}
	if where == "" {
		return fmt.Sprintf("jdx: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("jdx: %s: %s [%s]", e.Kind, e.Msg, where)
}

func (e *Error) Unwrap() error { return e.Err }

// newErr builds an *Error with no block/label context. Record and
// block constructors attach that context with withBlock/withLabel.
func newErr(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapErr(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: errors.Wrap(cause, kind.String())}
}

func (e *Error) withBlock(title string) *Error {
	e.Block = title
	return e
}

func (e *Error) withLabel(label string) *Error {
	e.Label = label
	return e
}

func (e *Error) withLine(line int) *Error {
	e.Line = line
	return e
}
