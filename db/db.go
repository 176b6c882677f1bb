// Package db stores simulation runs and the statistics recorded while they
// progress.
package db

import (
	"context"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
	"github.com/suxatcode/gravity-particles/gravity"
)

//go:generate mockgen -destination db_mock.go -package db . DB
type DB interface {
	// returns ID of the created run on success
	CreateRun(ctx context.Context, run Run) (string, error)
	AddStepRecords(ctx context.Context, runID string, records []StepRecord) error
	// Runs returns all runs, oldest first.
	Runs(ctx context.Context) ([]Run, error)
	// StepRecords returns the records of a run ordered by step.
	StepRecords(ctx context.Context, runID string) ([]StepRecord, error)
}

var ErrRunNotFound = errors.New("run not found")

// Run is one simulation, started with Config on Particles particles.
type Run struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	CreatedAt time.Time                `json:"createdAt"`
	Particles int                      `json:"particles"`
	Config    gravity.SimulationConfig `json:"config"`
}

// StepRecord is the persisted form of gravity.StepStats, extended by the
// extrema of the run's extremum field after the step.
type StepRecord struct {
	Step          int           `json:"step"`
	Particles     int           `json:"particles"`
	Inserted      int           `json:"inserted"`
	Excluded      int           `json:"excluded"`
	Nodes         int           `json:"nodes"`
	TreeTime      time.Duration `json:"treeTime"`
	ForceTime     time.Duration `json:"forceTime"`
	IntegrateTime time.Duration `json:"integrateTime"`
	MinNorm       float64       `json:"minNorm"`
	MaxNorm       float64       `json:"maxNorm"`
}

func NewStepRecord(stats gravity.StepStats, minNorm, maxNorm float64) StepRecord {
	return StepRecord{
		Step:          stats.Step,
		Particles:     stats.Particles,
		Inserted:      stats.Inserted,
		Excluded:      stats.Excluded,
		Nodes:         stats.Nodes,
		TreeTime:      stats.TreeTime,
		ForceTime:     stats.ForceTime,
		IntegrateTime: stats.IntegrateTime,
		MinNorm:       minNorm,
		MaxNorm:       maxNorm,
	}
}

type Config struct {
	// PGHost is empty if no postgres database is used.
	PGHost     string `env:"PG_HOST" envDefault:""`
	PGPassword string `env:"PG_PASSWORD" envDefault:""`
	PGUser     string `env:"PG_USER" envDefault:"gravity"`
	PGDBName   string `env:"PG_DBNAME" envDefault:"gravity"`
}

func GetEnvConfig() Config {
	conf := Config{}
	env.Parse(&conf)
	return conf
}
