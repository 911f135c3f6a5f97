package jdx

import (
	"strings"

	"github.com/sciformats/jdx/internal/textio"
)

// XyData represents an XYDATA record: an abscissa/ordinate pair of
// data points. Its body is decoded lazily by GetData, not at
// construction time.
type XyData struct {
	params       XyParameters
	reader       *textio.Reader
	offset       int64
	variableList string
	strictXCheck bool
}

func parseXyParameters(ldrs []StringLdr) (XyParameters, error) {
	f := newRequiredFields(ldrs)
	p := XyParameters{
		XUnits:  f.str("XUNITS"),
		YUnits:  f.str("YUNITS"),
		FirstX:  f.float("FIRSTX"),
		LastX:   f.float("LASTX"),
		XFactor: f.float("XFACTOR"),
		YFactor: f.float("YFACTOR"),
		NPoints: f.uint("NPOINTS"),
	}
	if err := f.err("XYDATA"); err != nil {
		return XyParameters{}, err
	}
	p.FirstY = optionalFloat(ldrs, "FIRSTY")
	p.MaxX = optionalFloat(ldrs, "MAXX")
	p.MinX = optionalFloat(ldrs, "MINX")
	p.MaxY = optionalFloat(ldrs, "MAXY")
	p.MinY = optionalFloat(ldrs, "MINY")
	p.Resolution = optionalFloat(ldrs, "RESOLUTION")
	p.DeltaX = optionalFloat(ldrs, "DELTAX")
	return p, nil
}

func newXyData(label, variableList string, r *textio.Reader, ldrs []StringLdr, opts *ParseOptions) (*XyData, error) {
	if err := validateVariableList(label, variableList, "XYDATA", []string{"(X++(Y..Y))", "(XY..XY)"}); err != nil {
		return nil, err
	}
	params, err := parseXyParameters(ldrs)
	if err != nil {
		return nil, err
	}
	offset := r.Tell()
	if err := skipDataBody(r); err != nil {
		return nil, err
	}
	return &XyData{
		params:       params,
		reader:       r,
		offset:       offset,
		variableList: strings.TrimSpace(variableList),
		strictXCheck: opts.strictXCheck,
	}, nil
}

// Parameters returns the XYDATA record's parsed parameters.
func (x *XyData) Parameters() XyParameters { return x.params }

// GetData decodes and returns the record's points. Each call re-reads
// and re-decodes the body; callers that need the data repeatedly
// should cache the result themselves.
func (x *XyData) GetData() ([]Point, error) {
	return withReaderPos(x.reader, x.offset, func() ([]Point, error) {
		switch x.variableList {
		case "(X++(Y..Y))":
			yRaw, err := readXppYYValues(x.reader, x.params.FirstX, x.params.LastX, x.params.XFactor, x.params.NPoints, x.strictXCheck)
			if err != nil {
				return nil, err
			}
			return reconstructXppYY(yRaw, x.params.FirstX, x.params.LastX, x.params.YFactor, x.params.NPoints)
		case "(XY..XY)":
			raw, err := readXyXyValues(x.reader)
			if err != nil {
				return nil, err
			}
			return scaleXyXy(raw, x.params.XFactor, x.params.YFactor, x.params.NPoints)
		default:
			return nil, newErr(KindUnsupportedFeature, "unsupported XYDATA variable list: %s", x.variableList)
		}
	})
}
