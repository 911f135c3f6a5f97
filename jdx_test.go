package jdx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_SimpleXyDataDocument(t *testing.T) {
	doc := "##TITLE=simple spectrum\n" +
		"##JCAMP-DX=5.01\n" +
		"##DATA TYPE=INFRARED SPECTRUM\n" +
		"##ORIGIN=acme labs\n" +
		"##OWNER=public domain\n" +
		"##XUNITS=1/CM\n##YUNITS=TRANSMITTANCE\n" +
		"##FIRSTX=0\n##LASTX=4\n##XFACTOR=1\n##YFACTOR=1\n##NPOINTS=5\n" +
		"##XYDATA=(X++(Y..Y))\n" +
		"0 2 3 4 6 7\n" +
		"##END=\n"

	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, "simple spectrum", root.Title())

	origin, ok := root.Ldr("ORIGIN")
	require.True(t, ok)
	require.Equal(t, "acme labs", origin.Value)

	xy, ok := root.XyData()
	require.True(t, ok)
	points, err := xy.GetData()
	require.NoError(t, err)
	want := []Point{{0, 2}, {1, 3}, {2, 4}, {3, 6}, {4, 7}}
	require.Equal(t, want, points)

	_, ok = root.NTuples()
	require.False(t, ok)
}

func TestParse_LinkBlockWithMixedRecords(t *testing.T) {
	doc := "##TITLE=compound study\n" +
		"##DATA TYPE=LINK\n" +
		"##TITLE=infrared\n" +
		"##DATA TYPE=INFRARED SPECTRUM\n" +
		"##XUNITS=1/CM\n##YUNITS=TRANSMITTANCE\n" +
		"##FIRSTX=0\n##LASTX=1\n##XFACTOR=1\n##YFACTOR=1\n##NPOINTS=2\n" +
		"##XYDATA=(XY..XY)\n0 1\n1 2\n" +
		"##END=\n" +
		"##TITLE=mass spec peaks\n" +
		"##DATA TYPE=MASS SPECTRUM\n" +
		"##PEAKTABLE=(XY..XY)\n" +
		"10,5 20,8\n" +
		"##END=\n" +
		"##END=\n"

	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, "compound study", root.Title())
	require.Len(t, root.NestedBlocks(), 2)

	irBlock := root.NestedBlocks()[0]
	require.Equal(t, "infrared", irBlock.Title())
	xy, ok := irBlock.XyData()
	require.True(t, ok)
	points, err := xy.GetData()
	require.NoError(t, err)
	require.Equal(t, []Point{{0, 1}, {1, 2}}, points)

	msBlock := root.NestedBlocks()[1]
	require.Equal(t, "mass spec peaks", msBlock.Title())
	pt, ok := msBlock.PeakTable()
	require.True(t, ok)
	peaks, err := pt.GetData()
	require.NoError(t, err)
	require.Len(t, peaks, 2)
	require.Equal(t, 10.0, peaks[0].X)
	require.Equal(t, 20.0, peaks[1].X)
}

func TestParse_RejectsMissingTitle(t *testing.T) {
	_, err := Parse(strings.NewReader("##ORIGIN=acme\n##END=\n"))
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	require.Equal(t, KindMalformedLdr, jerr.Kind)
}

func TestParse_RejectsEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
}

func TestCanParse_ByExtension(t *testing.T) {
	require.True(t, CanParse("sample.jdx", nil))
	require.True(t, CanParse("sample.DX", nil))
	require.False(t, CanParse("sample.txt", nil))
}

func TestCanParse_ByContentSniff(t *testing.T) {
	require.True(t, CanParse("sample.dat", []byte("##TITLE=foo\n##END=\n")))
	require.False(t, CanParse("sample.dat", []byte("not jcamp at all\n")))
}

func TestCanParse_SkipsLeadingComments(t *testing.T) {
	peek := []byte("$$ a leading comment\n\n##TITLE=foo\n")
	require.True(t, CanParse("sample.dat", peek))
}
