package jdx

import (
	"strings"

	"github.com/sciformats/jdx/internal/textio"
)

// RaData represents a RADATA record: a reciprocal-axis/amplitude data
// pair, decoded lazily by GetData.
type RaData struct {
	params       RaParameters
	reader       *textio.Reader
	offset       int64
	variableList string
	strictXCheck bool
}

func parseRaParameters(ldrs []StringLdr) (RaParameters, error) {
	f := newRequiredFields(ldrs)
	p := RaParameters{
		RUnits:  f.str("RUNITS"),
		AUnits:  f.str("AUNITS"),
		FirstR:  f.float("FIRSTR"),
		LastR:   f.float("LASTR"),
		RFactor: f.float("RFACTOR"),
		AFactor: f.float("AFACTOR"),
		NPoints: f.uint("NPOINTS"),
		FirstA:  f.float("FIRSTA"),
	}
	if err := f.err("RADATA"); err != nil {
		return RaParameters{}, err
	}
	p.MaxA = optionalFloat(ldrs, "MAXA")
	p.MinA = optionalFloat(ldrs, "MINA")
	p.Resolution = optionalFloat(ldrs, "RESOLUTION")
	p.DeltaR = optionalFloat(ldrs, "DELTAR")
	p.ZDP = optionalFloat(ldrs, "ZDP")
	p.Alias = optionalString(ldrs, "ALIAS")
	return p, nil
}

func newRaData(label, variableList string, r *textio.Reader, ldrs []StringLdr, opts *ParseOptions) (*RaData, error) {
	if err := validateVariableList(label, variableList, "RADATA", []string{"(R++(A..A))"}); err != nil {
		return nil, err
	}
	params, err := parseRaParameters(ldrs)
	if err != nil {
		return nil, err
	}
	offset := r.Tell()
	if err := skipDataBody(r); err != nil {
		return nil, err
	}
	return &RaData{
		params:       params,
		reader:       r,
		offset:       offset,
		variableList: strings.TrimSpace(variableList),
		strictXCheck: opts.strictXCheck,
	}, nil
}

// Parameters returns the RADATA record's parsed parameters.
func (d *RaData) Parameters() RaParameters { return d.params }

// GetData decodes and returns the record's points, with R reconstructed
// from FirstR/LastR/NPoints and A scaled by AFactor.
func (d *RaData) GetData() ([]Point, error) {
	return withReaderPos(d.reader, d.offset, func() ([]Point, error) {
		aRaw, err := readXppYYValues(d.reader, d.params.FirstR, d.params.LastR, d.params.RFactor, d.params.NPoints, d.strictXCheck)
		if err != nil {
			return nil, err
		}
		return reconstructXppYY(aRaw, d.params.FirstR, d.params.LastR, d.params.AFactor, d.params.NPoints)
	})
}
