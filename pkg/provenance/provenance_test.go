package provenance_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bankrot/pkg/provenance"
	"github.com/agentstation/bankrot/pkg/records"
)

func TestTracker(t *testing.T) {
	tr := provenance.NewTracker(true)
	tr.Track(records.KindLegal, "g1", records.FullName, provenance.Provenance{Source: "fullName", Stage: "detail", Value: "ООО Ромашка"})
	tr.Track(records.KindLegal, "g1", records.INN, provenance.Provenance{Source: "inn", Stage: "list", Value: "770000001"})
	tr.Track(records.KindPerson, "p1", records.FullName, provenance.Provenance{Source: "fio", Stage: "list", Value: "Иванов"})

	got := tr.FindByField(records.KindLegal, "g1", records.FullName)
	require.Len(t, got, 1)
	assert.Equal(t, "ООО Ромашка", got[0].Value)
	assert.False(t, got[0].Timestamp.IsZero(), "timestamp is filled in")

	byRecord := tr.FindByRecord(records.KindLegal, "g1")
	assert.Len(t, byRecord, 2)
	assert.Contains(t, byRecord, records.INN)

	m := tr.Map()
	assert.Len(t, m, 3)
	delete(m, "legal:g1:INN")
	assert.Len(t, tr.Map(), 3, "Map returns a copy")

	tr.Clear()
	assert.Empty(t, tr.Map())
}

func TestTracker_Disabled(t *testing.T) {
	tr := provenance.NewTracker(false)
	tr.Track(records.KindLegal, "g1", records.INN, provenance.Provenance{Source: "inn"})

	assert.Nil(t, tr.FindByField(records.KindLegal, "g1", records.INN))
	assert.Nil(t, tr.FindByRecord(records.KindLegal, "g1"))
	assert.Nil(t, tr.Map())
}

func TestCoverage(t *testing.T) {
	tr := provenance.NewTracker(true)
	tr.Track(records.KindLegal, "g1", records.INN, provenance.Provenance{Source: "inn"})
	tr.Track(records.KindLegal, "g2", records.INN, provenance.Provenance{Source: "inn"})
	tr.Track(records.KindLegal, "g3", records.INN, provenance.Provenance{Source: "deep:inn"})
	tr.Track(records.KindPerson, "p1", records.SNILS, provenance.Provenance{Source: "snils"})

	rows := provenance.Coverage(tr.Map())
	require.Len(t, rows, 3)
	assert.Equal(t, provenance.CoverageRow{Kind: records.KindLegal, Field: records.INN, Source: "inn", Count: 2}, rows[0])
	assert.Equal(t, provenance.CoverageRow{Kind: records.KindLegal, Field: records.INN, Source: "deep:inn", Count: 1}, rows[1])
	assert.Equal(t, records.KindPerson, rows[2].Kind)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provenance.yaml")

	missing, err := provenance.Load(path)
	require.NoError(t, err)
	assert.Nil(t, missing)

	tr := provenance.NewTracker(true)
	tr.Track(records.KindLegal, "g1", records.INN, provenance.Provenance{Source: "inn", Stage: "list", Value: "770000001"})
	require.NoError(t, provenance.Save(path, &provenance.ProvenanceFile{RunID: "run-1", Provenance: tr.Map()}))

	pf, err := provenance.Load(path)
	require.NoError(t, err)
	require.NotNil(t, pf)
	assert.Equal(t, "run-1", pf.RunID)
	require.Len(t, pf.Provenance["legal:g1:INN"], 1)
	assert.Equal(t, "770000001", pf.Provenance["legal:g1:INN"][0].Value)
}
