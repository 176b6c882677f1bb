package db

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// MemoryDB keeps everything in process memory. It is used when no
// database is configured.
type MemoryDB struct {
	mu      sync.Mutex
	runs    []Run
	records map[string][]StepRecord
	timeNow func() time.Time
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		records: make(map[string][]StepRecord),
		timeNow: time.Now,
	}
}

func (m *MemoryDB) CreateRun(ctx context.Context, run Run) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run.ID = strconv.Itoa(len(m.runs) + 1)
	run.CreatedAt = m.timeNow()
	m.runs = append(m.runs, run)
	m.records[run.ID] = []StepRecord{}
	return run.ID, nil
}

func (m *MemoryDB) AddStepRecords(ctx context.Context, runID string, records []StepRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.records[runID]
	if !ok {
		return errors.Wrapf(ErrRunNotFound, "run '%s'", runID)
	}
	for _, record := range records {
		if slices.ContainsFunc(existing, func(r StepRecord) bool { return r.Step == record.Step }) {
			return errors.Errorf("run '%s' already has a record of step %d", runID, record.Step)
		}
		existing = append(existing, record)
	}
	m.records[runID] = existing
	return nil
}

func (m *MemoryDB) Runs(ctx context.Context) ([]Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.runs), nil
}

func (m *MemoryDB) StepRecords(ctx context.Context, runID string) ([]StepRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.records[runID]
	if !ok {
		return nil, errors.Wrapf(ErrRunNotFound, "run '%s'", runID)
	}
	records := slices.Clone(existing)
	slices.SortFunc(records, func(a, b StepRecord) int { return a.Step - b.Step })
	return records, nil
}
