package jdx

// ParseOptions controls optional parsing behavior. The defaults set by
// defaultParseOptions (not the zero value, whose block depth limit of
// 0 rejects any nested block) match the permissive, standard-conforming
// behavior most files need.
type ParseOptions struct {
	maxBlockDepth int
	strictXCheck  bool
}

// ParseOption configures a ParseOptions value. Use one of
// WithMaxBlockDepth or WithStrictXCheck.
type ParseOption func(*ParseOptions)

func defaultParseOptions() *ParseOptions {
	return &ParseOptions{maxBlockDepth: defaultMaxBlockDepth}
}

// WithMaxBlockDepth overrides the maximum nesting depth allowed for
// LINK blocks. Parsing a block nested deeper than depth fails with a
// KindUnsupportedFeature error instead of recursing further.
func WithMaxBlockDepth(depth int) ParseOption {
	return func(o *ParseOptions) { o.maxBlockDepth = depth }
}

// WithStrictXCheck enables a cross-check the standard leaves
// unenforced: that the nominal abscissa value printed on each
// "(X++(Y..Y))"-encoded line (ordinarily discarded) agrees with the
// abscissa FIRSTX/LASTX/NPOINTS would reconstruct for that position.
// Off by default, since most real-world files carry this value purely
// as a visual aid and let it drift.
func WithStrictXCheck(strict bool) ParseOption {
	return func(o *ParseOptions) { o.strictXCheck = strict }
}
