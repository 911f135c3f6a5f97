package jdx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sciformats/jdx/internal/textio"
)

func TestPeakAssignments_XYA(t *testing.T) {
	r := textio.New([]byte("(1.0, 2.0, <CH3>)\n##END=\n"))
	pa, err := newPeakAssignments("PEAKASSIGNMENTS", "(XYA)", r, nil)
	require.NoError(t, err)

	entries, err := pa.GetData()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 1.0, entries[0].X)
	require.NotNil(t, entries[0].Y)
	require.Equal(t, 2.0, *entries[0].Y)
	require.Equal(t, "CH3", entries[0].A)
}

func TestPeakAssignments_XYMA(t *testing.T) {
	r := textio.New([]byte("(1.0, 2.0, s, <CH3>)\n##END=\n"))
	pa, err := newPeakAssignments("PEAKASSIGNMENTS", "(XYMA)", r, nil)
	require.NoError(t, err)

	entries, err := pa.GetData()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].M)
	require.Equal(t, "s", *entries[0].M)
}

func TestPeakAssignments_XOnlyNoAmbiguity(t *testing.T) {
	r := textio.New([]byte("(1.0, <unassigned>)\n##END=\n"))
	pa, err := newPeakAssignments("PEAKASSIGNMENTS", "(XYA)", r, nil)
	require.NoError(t, err)

	entries, err := pa.GetData()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Nil(t, entries[0].Y)
	require.Equal(t, "unassigned", entries[0].A)
}

func TestPeakAssignments_WidthFunction(t *testing.T) {
	body := "$$ W(x) = a*x + b\n$$ continued\n(1.0, 2.0, <CH3>)\n##END=\n"
	r := textio.New([]byte(body))
	pa, err := newPeakAssignments("PEAKASSIGNMENTS", "(XYA)", r, nil)
	require.NoError(t, err)
	require.NotNil(t, pa.WidthFunction())
	require.Equal(t, "W(x) = a*x + b\ncontinued", *pa.WidthFunction())

	entries, err := pa.GetData()
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestPeakAssignments_AmbiguousEntryFails(t *testing.T) {
	// Y present but W/M component missing for (XYWA) is ambiguous.
	r := textio.New([]byte("(1.0, 2.0, <note>)\n##END=\n"))
	pa, err := newPeakAssignments("PEAKASSIGNMENTS", "(XYWA)", r, nil)
	require.NoError(t, err)
	_, err = pa.GetData()
	require.Error(t, err)
}
