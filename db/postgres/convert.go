package postgres

import (
	"time"

	"github.com/suxatcode/gravity-particles/db"
)

func NewRun(run db.Run) Run {
	return Run{
		Name:      run.Name,
		Particles: run.Particles,
		Config:    run.Config,
	}
}

func (r Run) Convert() db.Run {
	return db.Run{
		ID:        formatRunID(r.ID),
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		Particles: r.Particles,
		Config:    r.Config,
	}
}

// NewStepRecord stores durations in nanoseconds.
func NewStepRecord(runID uint, record db.StepRecord) StepRecord {
	return StepRecord{
		RunID:         runID,
		Step:          record.Step,
		Particles:     record.Particles,
		Inserted:      record.Inserted,
		Excluded:      record.Excluded,
		Nodes:         record.Nodes,
		TreeTime:      int64(record.TreeTime),
		ForceTime:     int64(record.ForceTime),
		IntegrateTime: int64(record.IntegrateTime),
		MinNorm:       record.MinNorm,
		MaxNorm:       record.MaxNorm,
	}
}

func (s StepRecord) Convert() db.StepRecord {
	return db.StepRecord{
		Step:          s.Step,
		Particles:     s.Particles,
		Inserted:      s.Inserted,
		Excluded:      s.Excluded,
		Nodes:         s.Nodes,
		TreeTime:      time.Duration(s.TreeTime),
		ForceTime:     time.Duration(s.ForceTime),
		IntegrateTime: time.Duration(s.IntegrateTime),
		MinNorm:       s.MinNorm,
		MaxNorm:       s.MaxNorm,
	}
}
