package jdx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sciformats/jdx/internal/textio"
)

func TestPeakTable_XYW(t *testing.T) {
	body := "1,2,0.5 3,4,0.25\n5,6,0.1\n##END=\n"
	r := textio.New([]byte(body))
	pt, err := newPeakTable("PEAKTABLE", "(XYW..XYW)", r, nil)
	require.NoError(t, err)

	peaks, err := pt.GetData()
	require.NoError(t, err)
	require.Len(t, peaks, 3)
	require.Equal(t, 1.0, peaks[0].X)
	require.Equal(t, 2.0, peaks[0].Y)
	require.NotNil(t, peaks[0].W)
	require.Equal(t, 0.5, *peaks[0].W)
	require.Equal(t, 5.0, peaks[2].X)
}

func TestPeakTable_XYM(t *testing.T) {
	r := textio.New([]byte("1,2,d\n##END=\n"))
	pt, err := newPeakTable("PEAKTABLE", "(XYM..XYM)", r, nil)
	require.NoError(t, err)

	peaks, err := pt.GetData()
	require.NoError(t, err)
	require.Len(t, peaks, 1)
	require.NotNil(t, peaks[0].M)
	require.Equal(t, "d", *peaks[0].M)
}

func TestPeakTable_WidthFunction(t *testing.T) {
	body := "$$ W(x) = a*x + b\n$$ continued\n1,2\n##END=\n"
	r := textio.New([]byte(body))
	pt, err := newPeakTable("PEAKTABLE", "(XY..XY)", r, nil)
	require.NoError(t, err)
	require.NotNil(t, pt.WidthFunction())
	require.Equal(t, "W(x) = a*x + b\ncontinued", *pt.WidthFunction())

	peaks, err := pt.GetData()
	require.NoError(t, err)
	require.Len(t, peaks, 1)
}

func TestPeakTable_IllegalComponentForXY(t *testing.T) {
	r := textio.New([]byte("1,2,3\n##END=\n"))
	pt, err := newPeakTable("PEAKTABLE", "(XY..XY)", r, nil)
	require.NoError(t, err)
	_, err = pt.GetData()
	require.Error(t, err)
}
