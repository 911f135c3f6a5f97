package jdx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sciformats/jdx/internal/textio"
)

func TestAuditTrail_Simple(t *testing.T) {
	body := "(1, <2024-01-01>, <jdoe>, <PEAK PICK>, <initial processing>)\n##END=\n"
	r := textio.New([]byte(body))
	at, err := newAuditTrail("AUDITTRAIL", "(NUMBER, WHEN, WHO, WHERE, WHAT)", r, nil)
	require.NoError(t, err)

	entries, err := at.GetData()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.EqualValues(t, 1, entries[0].Number)
	require.Equal(t, "2024-01-01", entries[0].When)
	require.Equal(t, "jdoe", entries[0].Who)
	require.Nil(t, entries[0].Version)
	require.Nil(t, entries[0].Process)
}

func TestAuditTrail_WithVersion(t *testing.T) {
	body := "(1, <when>, <who>, <where>, <1.0>, <what>)\n##END=\n"
	r := textio.New([]byte(body))
	at, err := newAuditTrail("AUDITTRAIL", "(NUMBER, WHEN, WHO, WHERE, VERSION, WHAT)", r, nil)
	require.NoError(t, err)

	entries, err := at.GetData()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Version)
	require.Equal(t, "1.0", *entries[0].Version)
}

func TestAuditTrail_BrukerOverride(t *testing.T) {
	body := "$$ ##TITLE= Audit trail, Version 1.0\n" +
		"$$ some other comment\n" +
		"$$ ##AUDIT TRAIL= (NUMBER, WHEN, WHO, WHERE, PROCESS, VERSION, WHAT)\n" +
		"(1, <when>, <who>, <where>, <proc>, <1.0>, <what>)\n##END=\n"
	r := textio.New([]byte(body))
	at, err := newAuditTrail("AUDITTRAIL", "(NUMBER, WHEN, WHO, WHERE, WHAT)", r, nil)
	require.NoError(t, err)

	entries, err := at.GetData()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Process)
	require.Equal(t, "proc", *entries[0].Process)
	require.NotNil(t, entries[0].Version)
	require.Equal(t, "1.0", *entries[0].Version)
}

func TestAuditTrail_IllegalVariableList(t *testing.T) {
	r := textio.New([]byte("##END=\n"))
	_, err := newAuditTrail("AUDITTRAIL", "(NUMBER, WHO)", r, nil)
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	require.Equal(t, KindIllegalVariableList, jerr.Kind)
}
