package jdx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/sciformats/jdx/internal/textio"
)

func ntuplesAttrLdrs() []StringLdr {
	return []StringLdr{
		{Label: "VARNAME", Value: "FREQUENCY, INTENSITY"},
		{Label: "SYMBOL", Value: "X, Y"},
		{Label: "VARTYPE", Value: "INDEPENDENT, DEPENDENT"},
		{Label: "VARFORM", Value: "AFFN, ASDF"},
		{Label: "VARDIM", Value: "3, 3"},
		{Label: "UNITS", Value: "HZ, ARBITRARY UNITS"},
		{Label: "FIRST", Value: "0, 2"},
		{Label: "LAST", Value: "2, 4"},
		{Label: "FACTOR", Value: "1, 1"},
	}
}

func TestNTuples_SinglePage(t *testing.T) {
	body := "##VARNAME=FREQUENCY, INTENSITY\n" +
		"##SYMBOL=X, Y\n" +
		"##VARTYPE=INDEPENDENT, DEPENDENT\n" +
		"##VARFORM=AFFN, ASDF\n" +
		"##VARDIM=3, 3\n" +
		"##UNITS=HZ, ARBITRARY UNITS\n" +
		"##FIRST=0, 2\n" +
		"##LAST=2, 4\n" +
		"##FACTOR=1, 1\n" +
		"##PAGE=N=1\n" +
		"##DATATABLE=(X++(Y..Y)), XYDATA\n" +
		"0 2 3 4\n" +
		"##ENDNTUPLES=FREQUENCY\n"
	r := textio.New([]byte(body))
	nt, err := newNTuples("FREQUENCY", r, nil, defaultParseOptions())
	require.NoError(t, err)
	require.Len(t, nt.Attributes, 2)
	require.Len(t, nt.Pages, 1)

	page := nt.Pages[0]
	require.Equal(t, "N=1", page.Variables)
	require.NotNil(t, page.DataTable)
	require.Equal(t, "XYDATA", *page.DataTable.PlotDescriptor())

	points, err := page.DataTable.GetData()
	require.NoError(t, err)
	want := []Point{{0, 2}, {1, 3}, {2, 4}}
	if diff := cmp.Diff(want, points, cmpopts.EquateNaN()); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestNTuples_BlockAttributeMerge(t *testing.T) {
	blockLdrs := []StringLdr{{Label: "NPOINTS", Value: "4"}}
	attrs, err := parseNTuplesAttributes("FREQUENCY", ntuplesAttrLdrs())
	require.NoError(t, err)

	xAttr, ok := findNTuplesAttribute(attrs, "X")
	require.True(t, ok)
	merged := mergeNTuplesVariables(xAttr, "X", blockLdrs, nil)
	require.NotNil(t, merged.VarDim)
	require.EqualValues(t, 3, *merged.VarDim, "NTUPLES-level VAR_DIM is not overridden by the block's NPOINTS")
}

func TestNTuples_PageOverridesBlock(t *testing.T) {
	blockLdrs := []StringLdr{{Label: "FIRSTX", Value: "0"}}
	pageLdrs := []StringLdr{{Label: "FIRSTX", Value: "10"}}
	attrs, err := parseNTuplesAttributes("FREQUENCY", ntuplesAttrLdrs())
	require.NoError(t, err)

	xAttr, ok := findNTuplesAttribute(attrs, "X")
	require.True(t, ok)
	merged := mergeNTuplesVariables(xAttr, "X", blockLdrs, pageLdrs)
	require.NotNil(t, merged.First)
	require.Equal(t, 10.0, *merged.First)
}

func TestNTuples_UnexpectedContentFails(t *testing.T) {
	body := "##VARNAME=X, Y\n##SYMBOL=X, Y\n##GARBAGE=oops\n"
	r := textio.New([]byte(body))
	_, err := newNTuples("FREQUENCY", r, nil, defaultParseOptions())
	require.Error(t, err)
}
