package jdx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func nestedLinkDoc(depth int) string {
	var b strings.Builder
	for i := 0; i <= depth; i++ {
		b.WriteString("##TITLE=level ")
		b.WriteString(strings.Repeat("x", i))
		b.WriteString("\n##DATA TYPE=LINK\n")
	}
	for i := 0; i <= depth; i++ {
		b.WriteString("##END=\n")
	}
	return b.String()
}

func TestWithMaxBlockDepth_ExceedsLimit(t *testing.T) {
	doc := nestedLinkDoc(3)
	_, err := Parse(strings.NewReader(doc), WithMaxBlockDepth(2))
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	require.Equal(t, KindUnsupportedFeature, jerr.Kind)
}

func TestWithMaxBlockDepth_WithinLimit(t *testing.T) {
	doc := nestedLinkDoc(2)
	_, err := Parse(strings.NewReader(doc), WithMaxBlockDepth(5))
	require.NoError(t, err)
}

func TestWithMaxBlockDepth_Default(t *testing.T) {
	require.Equal(t, 32, defaultParseOptions().maxBlockDepth)
}

func TestWithStrictXCheck_Default(t *testing.T) {
	require.False(t, defaultParseOptions().strictXCheck)
}

func TestWithStrictXCheck_AppliedToXyData(t *testing.T) {
	doc := "##TITLE=sample\n" +
		"##XUNITS=1/CM\n##YUNITS=TRANSMITTANCE\n" +
		"##FIRSTX=0\n##LASTX=4\n##XFACTOR=1\n##YFACTOR=1\n##NPOINTS=5\n" +
		"##XYDATA=(X++(Y..Y))\n" +
		"0 2 3 4\n5 6 7\n" +
		"##END=\n"

	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	xy, ok := root.XyData()
	require.True(t, ok)
	_, err = xy.GetData()
	require.NoError(t, err, "permissive by default")

	root, err = Parse(strings.NewReader(doc), WithStrictXCheck(true))
	require.NoError(t, err)
	xy, ok = root.XyData()
	require.True(t, ok)
	_, err = xy.GetData()
	require.Error(t, err, "strict mode catches the disagreeing nominal abscissa on the second line")
}
