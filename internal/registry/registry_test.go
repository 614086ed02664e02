package registry

import (
	"testing"

	"github.com/studiolab/labkeeper/core/lab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryPutGet(t *testing.T) {
	reg := New()

	_, ok := reg.Get("c1")
	assert.False(t, ok)
	assert.Equal(t, lab.StatusNotCreated, reg.Status("c1"))

	reg.Put(lab.Record{CourseID: "c1", LabID: "L1", Status: lab.StatusBuilding})
	rec, ok := reg.Get("c1")
	require.True(t, ok)
	assert.Equal(t, "L1", rec.LabID)
	assert.Equal(t, lab.StatusBuilding, reg.Status("c1"))
	assert.False(t, reg.IsReady("c1"))
	assert.Empty(t, reg.AccessURL("c1"))

	// Whole-record replacement
	reg.Put(lab.Record{CourseID: "c1", LabID: "L1", Status: lab.StatusRunning, AccessURL: "https://x/c1"})
	rec, ok = reg.Get("c1")
	require.True(t, ok)
	assert.Equal(t, lab.StatusRunning, rec.Status)
	assert.True(t, reg.IsReady("c1"))
	assert.Equal(t, "https://x/c1", reg.AccessURL("c1"))

	// Still exactly one record for the course
	assert.Len(t, reg.List(), 1)
}

func TestRegistryListSorted(t *testing.T) {
	reg := New()
	reg.Put(lab.Record{CourseID: "c2", LabID: "L2", Status: lab.StatusBuilding})
	reg.Put(lab.Record{CourseID: "c1", LabID: "L1", Status: lab.StatusRunning, AccessURL: "https://x/c1"})

	recs := reg.List()
	require.Len(t, recs, 2)
	assert.Equal(t, "c1", recs[0].CourseID)
	assert.Equal(t, "c2", recs[1].CourseID)
}

func TestRegistryClear(t *testing.T) {
	reg := New()
	reg.Put(lab.Record{CourseID: "c1", LabID: "L1", Status: lab.StatusRunning, AccessURL: "https://x/c1"})
	reg.Clear()
	assert.Empty(t, reg.List())
	assert.Equal(t, lab.StatusNotCreated, reg.Status("c1"))
}
