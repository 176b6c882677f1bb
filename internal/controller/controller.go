package controller

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/gravity-particles/db"
	"github.com/suxatcode/gravity-particles/gravity"
)

const DefaultRecordEvery = 10

// Controller advances a simulation in the background, records its
// statistics and serves read requests. Readers wait until the first step
// has completed.
type Controller struct {
	db          db.DB
	sim         Stepper
	recordEvery int

	runID string

	// gradient is shared by all rendered frames, so colors stay stable
	// between requests.
	gradientMu sync.Mutex
	gradient   *gravity.GradientRange

	// closed after the first step
	waitForFirstStep chan bool
	firstStepDone    bool
}

// Status summarizes the state of the simulation.
type Status struct {
	RunID   string  `json:"runID"`
	Steps   int     `json:"steps"`
	MinNorm float64 `json:"minNorm"`
	MaxNorm float64 `json:"maxNorm"`
	Field   string  `json:"field"`
}

// NewController records every recordEvery steps. Rendered frames measure
// the color gradient every sampleInterval frames.
func NewController(newdb db.DB, sim Stepper, recordEvery, sampleInterval int) *Controller {
	if recordEvery <= 0 {
		recordEvery = DefaultRecordEvery
	}
	return &Controller{
		db:               newdb,
		sim:              sim,
		recordEvery:      recordEvery,
		gradient:         &gravity.GradientRange{Field: sim.Config().ExtremumField, SampleInterval: sampleInterval},
		waitForFirstStep: make(chan bool),
	}
}

// StartRun registers the simulation as a new run. Statistics are only
// recorded after a run was started.
func (c *Controller) StartRun(ctx context.Context, name string, particles int) (string, error) {
	id, err := c.db.CreateRun(ctx, db.Run{Name: name, Particles: particles, Config: c.sim.Config()})
	if err != nil {
		log.Ctx(ctx).Error().Msgf("%v", err)
		return "", err
	}
	c.runID = id
	log.Ctx(ctx).Info().Msgf("started run '%s' (%s) with %d particles", name, id, particles)
	return id, nil
}

// PeriodicSimulation steps the simulation once on startup and then every
// interval, until ctx is done.
func (c *Controller) PeriodicSimulation(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	c.periodicSimulation(ctx, ticker.C)
}

func (c *Controller) periodicSimulation(ctx context.Context, trigger <-chan time.Time) {
	c.step(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-trigger:
			c.step(ctx)
		}
	}
}

func (c *Controller) step(ctx context.Context) {
	stats := c.sim.Step()
	log.Ctx(ctx).Trace().Msgf("step %d: %d nodes, tree %v, force %v, integrate %v",
		stats.Step, stats.Nodes, stats.TreeTime, stats.ForceTime, stats.IntegrateTime)
	if !c.firstStepDone {
		c.firstStepDone = true
		close(c.waitForFirstStep)
	}
	if c.runID == "" || stats.Step%c.recordEvery != 0 {
		return
	}
	min, max := c.sim.Extrema()
	err := c.db.AddStepRecords(ctx, c.runID, []db.StepRecord{db.NewStepRecord(stats, min, max)})
	if err != nil {
		log.Ctx(ctx).Error().Msgf("failed to record step %d: %v", stats.Step, err)
	}
}

func (c *Controller) waitReady(ctx context.Context) error {
	select {
	case <-c.waitForFirstStep:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "waiting for the first simulation step")
	}
}

// Particles returns all particles inside area.
func (c *Controller) Particles(ctx context.Context, area gravity.Rect) ([]gravity.ParticleState, error) {
	if err := c.waitReady(ctx); err != nil {
		log.Ctx(ctx).Error().Msgf("%v", err)
		return nil, err
	}
	particles := c.sim.Snapshot(area)
	log.Ctx(ctx).Debug().Msgf("Particles(%+v) -> %d particles", area, len(particles))
	return particles, nil
}

// Frame renders the current state as PNG.
func (c *Controller) Frame(ctx context.Context, w io.Writer, conf gravity.FrameConfig) error {
	if err := c.waitReady(ctx); err != nil {
		log.Ctx(ctx).Error().Msgf("%v", err)
		return err
	}
	c.gradientMu.Lock()
	defer c.gradientMu.Unlock()
	if err := gravity.DrawFrame(w, c.sim, conf, c.gradient); err != nil {
		log.Ctx(ctx).Error().Msgf("%v", err)
		return err
	}
	return nil
}

func (c *Controller) TreeBounds(ctx context.Context) ([]gravity.Rect, error) {
	if err := c.waitReady(ctx); err != nil {
		log.Ctx(ctx).Error().Msgf("%v", err)
		return nil, err
	}
	bounds := c.sim.TreeBounds()
	log.Ctx(ctx).Debug().Msgf("TreeBounds() -> %d nodes", len(bounds))
	return bounds, nil
}

func (c *Controller) Status(ctx context.Context) (*Status, error) {
	if err := c.waitReady(ctx); err != nil {
		log.Ctx(ctx).Error().Msgf("%v", err)
		return nil, err
	}
	min, max := c.sim.Extrema()
	return &Status{
		RunID:   c.runID,
		Steps:   c.sim.Steps(),
		MinNorm: min,
		MaxNorm: max,
		Field:   c.sim.Config().ExtremumField.String(),
	}, nil
}

func (c *Controller) Runs(ctx context.Context) ([]db.Run, error) {
	runs, err := c.db.Runs(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Msgf("%v", err)
		return nil, err
	}
	log.Ctx(ctx).Debug().Msgf("Runs() -> %d runs", len(runs))
	return runs, nil
}

func (c *Controller) StepRecords(ctx context.Context, runID string) ([]db.StepRecord, error) {
	records, err := c.db.StepRecords(ctx, runID)
	if err != nil {
		log.Ctx(ctx).Error().Msgf("%v", err)
		return nil, err
	}
	log.Ctx(ctx).Debug().Msgf("StepRecords(%s) -> %d records", runID, len(records))
	return records, nil
}
