package jdx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sciformats/jdx/internal/textio"
)

func raParamLdrs(firstR, lastR string) []StringLdr {
	return []StringLdr{
		{Label: "RUNITS", Value: "SECONDS"},
		{Label: "AUNITS", Value: "ARBITRARY UNITS"},
		{Label: "FIRSTR", Value: firstR},
		{Label: "LASTR", Value: lastR},
		{Label: "RFACTOR", Value: "1"},
		{Label: "AFACTOR", Value: "1"},
		{Label: "NPOINTS", Value: "3"},
		{Label: "FIRSTA", Value: "2"},
	}
}

func TestRaData_GetData(t *testing.T) {
	body := "0 2 3 4\n##END=\n"
	r := textio.New([]byte(body))
	ra, err := newRaData("RADATA", "(R++(A..A))", r, raParamLdrs("0", "2"), defaultParseOptions())
	require.NoError(t, err)

	points, err := ra.GetData()
	require.NoError(t, err)
	want := []Point{{0, 2}, {1, 3}, {2, 4}}
	require.Equal(t, want, points)
}

func TestRaData_OptionalFields(t *testing.T) {
	ldrs := append(raParamLdrs("0", "2"), StringLdr{Label: "ZDP", Value: "1.5"}, StringLdr{Label: "ALIAS", Value: "none"})
	r := textio.New([]byte("0 2 3 4\n##END=\n"))
	ra, err := newRaData("RADATA", "(R++(A..A))", r, ldrs, defaultParseOptions())
	require.NoError(t, err)
	params := ra.Parameters()
	require.NotNil(t, params.ZDP)
	require.Equal(t, 1.5, *params.ZDP)
	require.NotNil(t, params.Alias)
	require.Equal(t, "none", *params.Alias)
}

func TestRaData_IllegalVariableList(t *testing.T) {
	r := textio.New([]byte("##END=\n"))
	_, err := newRaData("RADATA", "(XY..XY)", r, raParamLdrs("0", "2"), defaultParseOptions())
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	require.Equal(t, KindIllegalVariableList, jerr.Kind)
}
