package gravity

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Simulation owns a particle store and the quadtree built from it. Step
// advances the system; every other method only reads and may be called
// concurrently with Step. Readers always see the state after a completed
// step, never a half-built tree or a partially integrated store.
type Simulation struct {
	mu        sync.RWMutex
	conf      SimulationConfig
	params    ForceParams
	kernel    Kernel
	particles *Particles
	tree      *QuadTree
	steps     int
}

// StepStats describes one call to Step.
type StepStats struct {
	Step          int           `json:"step"`
	Particles     int           `json:"particles"`
	Inserted      int           `json:"inserted"`
	Excluded      int           `json:"excluded"`
	Nodes         int           `json:"nodes"`
	TreeTime      time.Duration `json:"treeTime"`
	ForceTime     time.Duration `json:"forceTime"`
	IntegrateTime time.Duration `json:"integrateTime"`
}

type Stats struct {
	Iterations int
	TotalTime  time.Duration
	Last       StepStats
}

// NewSimulation takes ownership of particles. Zero values in conf are
// replaced by DefaultSimulationConfig.
func NewSimulation(conf SimulationConfig, particles *Particles) (*Simulation, error) {
	conf = conf.ApplyDefaults()
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid simulation config")
	}
	if particles == nil {
		particles = NewParticles(0)
	}
	if err := particles.Validate(); err != nil {
		return nil, err
	}
	if n := particles.Sanitize(); n > 0 {
		log.Warn().Msgf("%d particles had a non-positive mass", n)
	}
	if conf.SortByMass {
		particles.SortByMass()
	}
	s := &Simulation{
		conf:      conf,
		params:    conf.ForceParams(),
		kernel:    NewKernel(conf.BatchWidth),
		particles: particles,
		tree:      NewQuadTree(&QuadTreeConfig{MaxDepth: conf.MaxDepth}, conf.World),
	}
	s.tree.Build(particles)
	return s, nil
}

// Rebuild replaces the tree by one built from the current positions,
// without computing forces or moving particles.
func (s *Simulation) Rebuild() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Build(s.particles)
}

// Step rebuilds the tree, recomputes all net forces and integrates every
// particle by one time step. The three phases run strictly one after the
// other while holding the write lock.
func (s *Simulation) Step() StepStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	s.tree.Build(s.particles)
	treeDone := time.Now()
	s.particles.ResetAllForces()
	s.calculateForces()
	forceDone := time.Now()
	s.particles.IntegrateParallel(s.kernel, s.conf.TimeStep, s.conf.Parallelization)
	s.steps++
	stats := StepStats{
		Step:          s.steps,
		Particles:     s.particles.Len(),
		Inserted:      s.tree.Inserted(),
		Excluded:      s.tree.Excluded(),
		Nodes:         s.tree.Len(),
		TreeTime:      treeDone.Sub(start),
		ForceTime:     forceDone.Sub(treeDone),
		IntegrateTime: time.Since(forceDone),
	}
	if stats.Excluded > 0 {
		log.Trace().Int("step", stats.Step).Msgf("%d particles outside of world %+v", stats.Excluded, s.conf.World)
	}
	return stats
}

// calculateForces distributes the particles over Parallelization
// goroutines. The tree is read-only here and every goroutine writes the
// accumulators of its own slots only.
func (s *Simulation) calculateForces() {
	total := s.particles.Len()
	p := s.conf.Parallelization
	if total < 2*p {
		p = 1
	}
	parallelRanges(total, 1, p, func(lo, hi int) {
		for slot := lo; slot < hi; slot++ {
			s.tree.CalculateForce(s.particles, slot, s.params)
		}
	})
}

// Run calls Step until steps steps are done or ctx is cancelled. A
// non-positive steps runs until cancellation.
func (s *Simulation) Run(ctx context.Context, steps int) Stats {
	startTime := time.Now()
	stats := Stats{}
simulation:
	for steps <= 0 || stats.Iterations < steps {
		select {
		case <-ctx.Done():
			break simulation
		default:
			// continue stepping
		}
		stats.Last = s.Step()
		stats.Iterations += 1
	}
	stats.TotalTime = time.Since(startTime)
	return stats
}

// View calls fn with the particle store and the tree of the last completed
// step. fn must not modify either or retain them.
func (s *Simulation) View(fn func(p *Particles, qt *QuadTree)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.particles, s.tree)
}

// Query returns the slots of the particles inside area.
func (s *Simulation) Query(area Rect) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Query(area, s.particles)
}

// Snapshot returns copies of the particles inside area.
func (s *Simulation) Snapshot(area Rect) []ParticleState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.particles.States(s.tree.Query(area, s.particles))
}

// Particles returns a deep copy of the whole store.
func (s *Simulation) Particles() *Particles {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.particles.Clone()
}

func (s *Simulation) TreeBounds() []Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Bounds()
}

// Extrema returns the smallest and largest norm of the configured
// ExtremumField.
func (s *Simulation) Extrema() (min, max float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.particles.MinNorm(s.conf.ExtremumField), s.particles.MaxNorm(s.conf.ExtremumField)
}

func (s *Simulation) Steps() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.steps
}

func (s *Simulation) Config() SimulationConfig {
	return s.conf
}
