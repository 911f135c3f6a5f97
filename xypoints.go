package jdx

import "github.com/sciformats/jdx/internal/textio"

// XyPoints represents an XYPOINTS record: an explicit list of (X, Y)
// pairs, unlike XYDATA's compressed abscissa-run encoding. It shares
// XYDATA's parameter set but allows only the "(XY..XY)" variable list.
type XyPoints struct {
	params XyParameters
	reader *textio.Reader
	offset int64
}

func newXyPoints(label, variableList string, r *textio.Reader, ldrs []StringLdr) (*XyPoints, error) {
	if err := validateVariableList(label, variableList, "XYPOINTS", []string{"(XY..XY)"}); err != nil {
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
	return &XyPoints{params: params, reader: r, offset: offset}, nil
}

// Parameters returns the XYPOINTS record's parsed parameters.
func (x *XyPoints) Parameters() XyParameters { return x.params }

// GetData decodes and returns the record's explicit (X, Y) pairs.
func (x *XyPoints) GetData() ([]Point, error) {
	return withReaderPos(x.reader, x.offset, func() ([]Point, error) {
		raw, err := readXyXyValues(x.reader)
		if err != nil {
			return nil, err
		}
		return scaleXyXy(raw, x.params.XFactor, x.params.YFactor, x.params.NPoints)
	})
}
