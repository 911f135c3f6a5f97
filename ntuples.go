package jdx

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sciformats/jdx/internal/ldrlex"
	"github.com/sciformats/jdx/internal/textio"
)

var ntuplesStandardAttrs = map[string]bool{
	"VARNAME": true, "SYMBOL": true, "VARTYPE": true, "VARFORM": true,
	"VARDIM": true, "UNITS": true, "FIRST": true, "LAST": true,
	"MIN": true, "MAX": true, "FACTOR": true,
}

// NTuples represents an NTUPLES record: a set of named variables
// (columns, e.g. X, Y, or R, I) shared by one or more pages of data,
// each potentially carrying its own DATA TABLE.
type NTuples struct {
	DataForm   string
	Attributes []NTuplesAttributes
	Pages      []*Page
}

func newNTuples(dataForm string, r *textio.Reader, blockLdrs []StringLdr, opts *ParseOptions) (*NTuples, error) {
	if err := skipPureCommentLines(r); err != nil {
		return nil, err
	}
	attrLdrs, err := readLdrsUntil(r, []string{"PAGE", "ENDNTUPLES", "END"})
	if err != nil {
		return nil, err
	}
	attrs, err := parseNTuplesAttributes(dataForm, attrLdrs)
	if err != nil {
		return nil, err
	}

	nt := &NTuples{DataForm: dataForm, Attributes: attrs}
	for {
		if r.Eof() {
			return nil, newErr(KindUnexpectedContent, "unexpected end of NTUPLES record: %s", dataForm)
		}
		line, _ := r.ReadLine()
		label, value := ldrlex.ParseLdrStart(line)
		normalized := ldrlex.NormalizeLabel(label)
		if normalized == "ENDNTUPLES" {
			break
		}
		if normalized != "PAGE" {
			return nil, newErr(KindUnexpectedContent, "unexpected content found in NTUPLES record: %s", line)
		}
		content, _ := ldrlex.StripLineComment(value)
		page, err := newPage(strings.TrimSpace(content), attrs, blockLdrs, r, opts)
		if err != nil {
			return nil, err
		}
		nt.Pages = append(nt.Pages, page)
	}
	return nt, nil
}

func parseNTuplesAttributes(dataForm string, ldrs []StringLdr) ([]NTuplesAttributes, error) {
	columns := make(map[string][]string, len(ldrs))
	for _, ldr := range ldrs {
		if _, dup := columns[ldr.Label]; dup {
			return nil, newErr(KindDuplicate, "duplicate LDR found in NTUPLES: %s", ldr.Label)
		}
		content, _ := ldrlex.StripLineComment(ldr.Value)
		columns[ldr.Label] = ldrlex.SplitCommaList(content)
	}

	varNames, ok := columns["VARNAME"]
	if !ok {
		return nil, newErr(KindMissingRequired, "no VAR_NAME LDR found in NTUPLES: %s", dataForm)
	}

	column := func(key string, i int) *string {
		vals, ok := columns[key]
		if !ok || i >= len(vals) {
			return nil
		}
		v := strings.TrimSpace(vals[i])
		return &v
	}
	floatColumn := func(key string, i int) *float64 {
		v := column(key, i)
		if v == nil || *v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(*v, 64)
		if err != nil {
			return nil
		}
		return &f
	}
	uintColumn := func(key string, i int) *uint64 {
		v := column(key, i)
		if v == nil || *v == "" {
			return nil
		}
		u, err := strconv.ParseUint(*v, 10, 64)
		if err != nil {
			return nil
		}
		return &u
	}

	attrs := make([]NTuplesAttributes, 0, len(varNames))
	for i := range varNames {
		varName := column("VARNAME", i)
		symbol := column("SYMBOL", i)
		if varName == nil {
			return nil, newErr(KindMissingRequired, "VAR_NAME missing in NTUPLES column: %d", i)
		}
		if symbol == nil {
			return nil, newErr(KindMissingRequired, "SYMBOL missing in NTUPLES column: %d", i)
		}
		attr := NTuplesAttributes{
			VarName: *varName,
			Symbol:  *symbol,
			VarType: column("VARTYPE", i),
			VarForm: column("VARFORM", i),
			VarDim:  uintColumn("VARDIM", i),
			Units:   column("UNITS", i),
			First:   floatColumn("FIRST", i),
			Last:    floatColumn("LAST", i),
			Min:     floatColumn("MIN", i),
			Max:     floatColumn("MAX", i),
			Factor:  floatColumn("FACTOR", i),
		}
		for label := range columns {
			if ntuplesStandardAttrs[label] {
				continue
			}
			if v := column(label, i); v != nil {
				attr.ApplicationAttributes = append(attr.ApplicationAttributes, StringLdr{Label: label, Value: *v})
			}
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func findNTuplesAttribute(attrs []NTuplesAttributes, symbol string) (NTuplesAttributes, bool) {
	for _, a := range attrs {
		if a.Symbol == symbol {
			return a, true
		}
	}
	return NTuplesAttributes{}, false
}

// Page represents one PAGE of an NTUPLES record: its page variables
// (e.g. "N=1"), any LDRs local to the page, and an optional DATA
// TABLE.
type Page struct {
	Variables string
	Ldrs      []StringLdr
	DataTable *DataTable
}

func newPage(pageVar string, nTuplesAttrs []NTuplesAttributes, blockLdrs []StringLdr, r *textio.Reader, opts *ParseOptions) (*Page, error) {
	if err := skipPureCommentLines(r); err != nil {
		return nil, err
	}
	pageLdrs, err := readLdrsUntil(r, []string{"PAGE", "ENDNTUPLES", "END", "DATATABLE"})
	if err != nil {
		return nil, err
	}
	if r.Eof() {
		return nil, newErr(KindUnexpectedContent, "unexpected end of input while parsing NTUPLES PAGE")
	}
	pos := r.Tell()
	line, _ := r.ReadLine()
	label, value := ldrlex.ParseLdrStart(line)
	normalized := ldrlex.NormalizeLabel(label)
	if normalized == "PAGE" || normalized == "ENDNTUPLES" || normalized == "END" {
		r.Seek(pos)
		return &Page{Variables: pageVar, Ldrs: pageLdrs}, nil
	}
	if normalized != "DATATABLE" {
		return nil, newErr(KindUnexpectedContent, "unexpected content found while parsing NTUPLES PAGE: %s", line)
	}

	variableList, plotDesc := splitDataTableVars(value)
	dt, err := newDataTable(variableList, plotDesc, nTuplesAttrs, blockLdrs, pageLdrs, r, opts)
	if err != nil {
		return nil, err
	}
	return &Page{Variables: pageVar, Ldrs: pageLdrs, DataTable: dt}, nil
}

// dataTableVarSplit finds the boundary between a DATA TABLE's variable
// list and its optional plot descriptor: the first ")" followed by a
// comma, e.g. "(X++(Y..Y)), XYDATA".
var dataTableVarSplit = regexp.MustCompile(`\)\s*,\s*`)

func splitDataTableVars(raw string) (variableList string, plotDescriptor *string) {
	content, _ := ldrlex.StripLineComment(raw)
	content = strings.TrimSpace(content)
	loc := dataTableVarSplit.FindStringIndex(content)
	if loc == nil {
		return content, nil
	}
	varList := strings.TrimSpace(content[:loc[0]+1])
	desc := strings.TrimSpace(content[loc[1]:])
	return varList, &desc
}

var ntuplesVarListKinds = map[string]string{
	"(X++(Y..Y))": "XppYY",
	"(X++(R..R))": "XppRR",
	"(X++(I..I))": "XppII",
	"(XY..XY)":    "XyXy",
}

var ntuplesPlotDescriptors = map[string]bool{
	"PROFILE": true, "XYDATA": true, "PEAKS": true, "CONTOUR": true,
}

// DataTable represents an NTUPLES PAGE's DATA TABLE: the actual
// numeric data, decoded lazily by GetData, with its abscissa/ordinate
// attributes merged from the NTUPLES attribute table and the
// enclosing BLOCK's and PAGE's own LDRs.
type DataTable struct {
	variableList   string
	kind           string
	plotDescriptor *string
	Variables      DataTableVariables
	reader         *textio.Reader
	offset         int64
	strictXCheck   bool
}

func newDataTable(variableList string, plotDescriptor *string, nTuplesAttrs []NTuplesAttributes, blockLdrs, pageLdrs []StringLdr, r *textio.Reader, opts *ParseOptions) (*DataTable, error) {
	kind, ok := ntuplesVarListKinds[variableList]
	if !ok {
		return nil, newErr(KindIllegalVariableList, "unsupported variable type in NTUPLES PAGE: %s", variableList)
	}
	if plotDescriptor != nil && *plotDescriptor != "" {
		desc := strings.ToUpper(strings.TrimSpace(*plotDescriptor))
		if !ntuplesPlotDescriptors[desc] {
			return nil, newErr(KindIllegalVariableList, "illegal plot descriptor in NTUPLES PAGE: %s", *plotDescriptor)
		}
	}

	xAttrs, ok := findNTuplesAttribute(nTuplesAttrs, "X")
	if !ok {
		return nil, newErr(KindMissingRequired, "could not find NTUPLES parameters for SYMBOL: X")
	}
	ySymbol := map[string]string{"XppYY": "Y", "XppRR": "R", "XppII": "I", "XyXy": "Y"}[kind]
	yAttrs, ok := findNTuplesAttribute(nTuplesAttrs, ySymbol)
	if !ok {
		return nil, newErr(KindMissingRequired, "could not find NTUPLES parameters for SYMBOL: %s", ySymbol)
	}

	mergedX := mergeNTuplesVariables(xAttrs, "X", blockLdrs, pageLdrs)
	mergedY := mergeNTuplesVariables(yAttrs, ySymbol, blockLdrs, pageLdrs)

	offset := r.Tell()
	if err := skipDataBody(r); err != nil {
		return nil, err
	}

	return &DataTable{
		variableList:   variableList,
		kind:           kind,
		plotDescriptor: plotDescriptor,
		Variables:      DataTableVariables{X: mergedX, Y: mergedY},
		reader:         r,
		offset:         offset,
		strictXCheck:   opts.strictXCheck,
	}, nil
}

// mergeNTuplesVariables fills in an NTUPLES attribute column's missing
// First/Last/Min/Max/Units/Factor from the enclosing BLOCK's
// corresponding X*/Y* LDRs, then lets the PAGE's own LDRs (if any,
// under the same names) override unconditionally; a page LDR that
// doesn't match one of those falls through to ApplicationAttributes.
// VAR_DIM falls back to the block's NPOINTS if absent either way.
func mergeNTuplesVariables(attrs NTuplesAttributes, symbol string, blockLdrs, pageLdrs []StringLdr) NTuplesAttributes {
	merged := attrs
	var unitsLabel, firstLabel, lastLabel, minLabel, maxLabel, factorLabel string
	if symbol == "X" {
		unitsLabel, firstLabel, lastLabel, minLabel, maxLabel, factorLabel =
			"XUNITS", "FIRSTX", "LASTX", "MINX", "MAXX", "XFACTOR"
	} else {
		unitsLabel, firstLabel, lastLabel, minLabel, maxLabel, factorLabel =
			"YUNITS", "FIRSTY", "LASTY", "MINY", "MAXY", "YFACTOR"
	}

	for _, ldr := range blockLdrs {
		switch ldr.Label {
		case unitsLabel:
			if merged.Units == nil || *merged.Units == "" {
				v := ldr.Value
				merged.Units = &v
			}
		case firstLabel:
			if merged.First == nil {
				merged.First = parsePtrFloat(ldr.Value)
			}
		case lastLabel:
			if merged.Last == nil {
				merged.Last = parsePtrFloat(ldr.Value)
			}
		case minLabel:
			if merged.Min == nil {
				merged.Min = parsePtrFloat(ldr.Value)
			}
		case maxLabel:
			if merged.Max == nil {
				merged.Max = parsePtrFloat(ldr.Value)
			}
		case factorLabel:
			if merged.Factor == nil {
				merged.Factor = parsePtrFloat(ldr.Value)
			}
		case "NPOINTS":
			if merged.VarDim == nil {
				merged.VarDim = parsePtrUint(ldr.Value)
			}
		}
	}

	for _, ldr := range pageLdrs {
		switch ldr.Label {
		case unitsLabel:
			v := ldr.Value
			merged.Units = &v
		case firstLabel:
			merged.First = parsePtrFloat(ldr.Value)
		case lastLabel:
			merged.Last = parsePtrFloat(ldr.Value)
		case minLabel:
			merged.Min = parsePtrFloat(ldr.Value)
		case maxLabel:
			merged.Max = parsePtrFloat(ldr.Value)
		case factorLabel:
			merged.Factor = parsePtrFloat(ldr.Value)
		default:
			merged.ApplicationAttributes = append(merged.ApplicationAttributes, ldr)
		}
	}

	return merged
}

func parsePtrFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

func parsePtrUint(s string) *uint64 {
	u, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &u
}

// PlotDescriptor returns the DATA TABLE's plot descriptor (e.g.
// "XYDATA" or "PEAKS"), if the variable list line carried one.
func (d *DataTable) PlotDescriptor() *string { return d.plotDescriptor }

// VariableList returns the DATA TABLE's raw variable list, e.g.
// "(X++(Y..Y))".
func (d *DataTable) VariableList() string { return d.variableList }

// GetData decodes and returns the DATA TABLE's (X, Y) points, using
// either the XppYY-style compressed encoding or an explicit XY..XY
// pair list depending on the table's variable list.
func (d *DataTable) GetData() ([]Point, error) {
	return withReaderPos(d.reader, d.offset, func() ([]Point, error) {
		yFactor := 1.0
		if d.Variables.Y.Factor != nil {
			yFactor = *d.Variables.Y.Factor
		}
		xFactor := 1.0
		if d.Variables.X.Factor != nil {
			xFactor = *d.Variables.X.Factor
		}
		switch d.kind {
		case "XppYY", "XppRR", "XppII":
			if d.Variables.X.First == nil || d.Variables.X.Last == nil || d.Variables.Y.VarDim == nil {
				return nil, newErr(KindMissingRequired, "missing FIRST/LAST/VAR_DIM for DATA TABLE")
			}
			yRaw, err := readXppYYValues(d.reader, *d.Variables.X.First, *d.Variables.X.Last, xFactor, *d.Variables.Y.VarDim, d.strictXCheck)
			if err != nil {
				return nil, err
			}
			return reconstructXppYY(yRaw, *d.Variables.X.First, *d.Variables.X.Last, yFactor, *d.Variables.Y.VarDim)
		case "XyXy":
			raw, err := readXyXyValues(d.reader)
			if err != nil {
				return nil, err
			}
			points := make([]Point, len(raw))
			for i, p := range raw {
				points[i] = Point{X: p.X * xFactor, Y: p.Y * yFactor}
			}
			return points, nil
		default:
			return nil, newErr(KindUnsupportedFeature, "unsupported variable list in PAGE's DATA TABLE: %s", d.variableList)
		}
	})
}
