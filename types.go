package jdx

// Point is one (X, Y) pair of a decoded data record. Y is NaN where
// the source marked the value as missing ("?").
type Point struct {
	X float64
	Y float64
}

// StringLdr is a plain labelled data record: a normalized label and
// its string value (joined with "\n" if the value spanned several
// physical lines).
type StringLdr struct {
	Label string
	Value string
}

// XyParameters carries the parameters needed to interpret an XYDATA or
// XYPOINTS record's encoded body.
type XyParameters struct {
	XUnits string
	YUnits string
	FirstX float64
	LastX  float64
	MaxX   *float64
	MinX   *float64
	MaxY   *float64
	MinY   *float64
	XFactor float64
	YFactor float64
	NPoints uint64

	FirstY     *float64
	Resolution *float64
	DeltaX     *float64
}

// RaParameters carries the parameters needed to interpret a RADATA
// record's encoded body. The standard leaves several of these fields
// ambiguously specified; the set and optionality here follow what
// parsing in practice requires and what real files provide.
type RaParameters struct {
	RUnits string
	AUnits string
	FirstR float64
	LastR  float64
	MaxA   *float64
	MinA   *float64
	RFactor float64
	AFactor float64
	NPoints uint64
	FirstA  float64

	Resolution *float64
	DeltaR     *float64
	ZDP        *float64
	Alias      *string
}

// Peak is one entry of a PEAK TABLE record: an (X, Y) pair with an
// optional peak width (W) or multiplicity code (M), depending on the
// record's variable list.
type Peak struct {
	X float64
	Y float64
	W *float64
	M *string
}

// PeakAssignment is one entry of a PEAK ASSIGNMENTS record: an X value
// with an assignment string A, and optionally Y and/or a peak width W
// or multiplicity code M, depending on the record's variable list.
type PeakAssignment struct {
	X float64
	Y *float64
	W *float64
	M *string
	A string
}

// AuditTrailEntry is one entry of an AUDIT TRAIL record, describing a
// single change made to the data file.
type AuditTrailEntry struct {
	Number  int64
	When    string
	Who     string
	Where   string
	Process *string
	Version *string
	What    string
}

// NTuplesAttributes is one column of an NTUPLES record's attribute
// table (one per VAR_NAME/SYMBOL), before any merging with the
// enclosing BLOCK's or PAGE's own LDRs.
type NTuplesAttributes struct {
	VarName string
	Symbol  string
	VarType *string
	VarForm *string
	VarDim  *uint64
	Units   *string
	First   *float64
	Last    *float64
	Min     *float64
	Max     *float64
	Factor  *float64

	ApplicationAttributes []StringLdr
}

// DataTableVariables holds the abscissa and ordinate attribute columns
// relevant to one DATA TABLE, merged from the NTUPLES attribute table,
// the enclosing BLOCK's LDRs, and the PAGE's own LDRs.
type DataTableVariables struct {
	X NTuplesAttributes
	Y NTuplesAttributes
}
