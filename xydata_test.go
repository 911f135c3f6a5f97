package jdx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sciformats/jdx/internal/textio"
)

func xyParamLdrs(firstX, lastX string) []StringLdr {
	return []StringLdr{
		{Label: "XUNITS", Value: "1/CM"},
		{Label: "YUNITS", Value: "TRANSMITTANCE"},
		{Label: "FIRSTX", Value: firstX},
		{Label: "LASTX", Value: lastX},
		{Label: "XFACTOR", Value: "1"},
		{Label: "YFACTOR", Value: "1"},
		{Label: "NPOINTS", Value: "5"},
	}
}

func TestXyData_XppYY(t *testing.T) {
	body := "0 2 3 4\n3 6 7\n##END=\n"
	r := textio.New([]byte(body))
	xy, err := newXyData("XYDATA", "(X++(Y..Y))", r, xyParamLdrs("0", "4"), defaultParseOptions())
	require.NoError(t, err)

	points, err := xy.GetData()
	require.NoError(t, err)
	want := []Point{{0, 2}, {1, 3}, {2, 4}, {3, 6}, {4, 7}}
	require.Equal(t, want, points)
}

func TestXyData_StrictXCheck(t *testing.T) {
	// nominal abscissa on the second line (5) disagrees with the
	// abscissa FIRSTX/LASTX/NPOINTS reconstructs for that position (3).
	body := "0 2 3 4\n5 6 7\n##END=\n"

	r := textio.New([]byte(body))
	permissive, err := newXyData("XYDATA", "(X++(Y..Y))", r, xyParamLdrs("0", "4"), defaultParseOptions())
	require.NoError(t, err)
	_, err = permissive.GetData()
	require.NoError(t, err, "strict checking is off by default")

	strictOpts := defaultParseOptions()
	strictOpts.strictXCheck = true
	r2 := textio.New([]byte(body))
	strict, err := newXyData("XYDATA", "(X++(Y..Y))", r2, xyParamLdrs("0", "4"), strictOpts)
	require.NoError(t, err)
	_, err = strict.GetData()
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	require.Equal(t, KindYCheck, jerr.Kind)
}

func TestXyData_XyXy(t *testing.T) {
	ldrs := withNPoints(xyParamLdrs("0", "0"), "3")
	body := "1 2 3 4\n5 6\n##END=\n"
	r := textio.New([]byte(body))
	xy, err := newXyData("XYDATA", "(XY..XY)", r, ldrs, defaultParseOptions())
	require.NoError(t, err)

	points, err := xy.GetData()
	require.NoError(t, err)
	want := []Point{{1, 2}, {3, 4}, {5, 6}}
	require.Equal(t, want, points)
}

func TestXyData_IllegalVariableList(t *testing.T) {
	r := textio.New([]byte("##END=\n"))
	_, err := newXyData("XYDATA", "(X++(R..R))", r, xyParamLdrs("0", "4"), defaultParseOptions())
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	require.Equal(t, KindIllegalVariableList, jerr.Kind)
}

func TestXyData_MissingRequiredField(t *testing.T) {
	ldrs := []StringLdr{{Label: "XUNITS", Value: "1/CM"}}
	r := textio.New([]byte("##END=\n"))
	_, err := newXyData("XYDATA", "(X++(Y..Y))", r, ldrs, defaultParseOptions())
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	require.Equal(t, KindMissingRequired, jerr.Kind)
}
