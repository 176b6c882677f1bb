package db

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/suxatcode/gravity-particles/gravity"
)

var testTimeNow = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

func setupMemoryDB() *MemoryDB {
	m := NewMemoryDB()
	m.timeNow = func() time.Time { return testTimeNow }
	return m
}

func TestMemoryDB_CreateRun(t *testing.T) {
	m := setupMemoryDB()
	ctx := context.Background()
	assert := assert.New(t)
	id1, err := m.CreateRun(ctx, Run{Name: "a", Particles: 10, Config: gravity.DefaultSimulationConfig})
	assert.NoError(err)
	id2, err := m.CreateRun(ctx, Run{Name: "b", ID: "ignored"})
	assert.NoError(err)
	assert.NotEqual(id1, id2)
	runs, err := m.Runs(ctx)
	assert.NoError(err)
	assert.Equal([]Run{
		{ID: id1, Name: "a", Particles: 10, CreatedAt: testTimeNow, Config: gravity.DefaultSimulationConfig},
		{ID: id2, Name: "b", CreatedAt: testTimeNow},
	}, runs)
}

func TestMemoryDB_StepRecords(t *testing.T) {
	m := setupMemoryDB()
	ctx := context.Background()
	assert := assert.New(t)
	id, err := m.CreateRun(ctx, Run{Name: "a"})
	assert.NoError(err)

	records, err := m.StepRecords(ctx, id)
	assert.NoError(err)
	assert.Equal([]StepRecord{}, records)

	assert.NoError(m.AddStepRecords(ctx, id, []StepRecord{{Step: 20, Nodes: 5}, {Step: 10, Nodes: 3}}))
	assert.NoError(m.AddStepRecords(ctx, id, []StepRecord{{Step: 30}}))
	records, err = m.StepRecords(ctx, id)
	assert.NoError(err)
	assert.Equal([]StepRecord{{Step: 10, Nodes: 3}, {Step: 20, Nodes: 5}, {Step: 30}}, records)

	err = m.AddStepRecords(ctx, id, []StepRecord{{Step: 20}})
	assert.ErrorContains(err, "already has a record of step 20")
}

func TestMemoryDB_unknownRun(t *testing.T) {
	m := setupMemoryDB()
	ctx := context.Background()
	assert := assert.New(t)
	_, err := m.StepRecords(ctx, "7")
	assert.True(errors.Is(err, ErrRunNotFound))
	err = m.AddStepRecords(ctx, "7", []StepRecord{{Step: 1}})
	assert.True(errors.Is(err, ErrRunNotFound))
}
