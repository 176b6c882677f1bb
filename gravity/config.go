package gravity

import (
	"math"
	"runtime"

	"github.com/pkg/errors"
)

type SimulationConfig struct {
	// World bounds every position the tree can represent. Particles
	// outside are still integrated, but do not take part in the force
	// computation.
	World Rect
	// G is the gravitational constant.
	G float64
	// Softening is the length added in quadrature to every distance, to
	// keep close encounters finite. Zero selects the default; NoSoftening
	// disables softening.
	Softening float64
	// Theta is the multipole acceptance threshold. Smaller values are more
	// accurate and slower. Zero selects the default; ExactTheta always
	// descends to the leaves.
	Theta float64
	// TimeStep is the fixed integration step.
	TimeStep float64
	// BatchWidth is the number of particles integrated per kernel call.
	// 8 selects the lane kernel, 1 the scalar one.
	BatchWidth int
	// MaxDepth bounds the quadtree depth, see QuadTreeConfig.
	MaxDepth int
	// Parallelization is the number of goroutines used for the force
	// traversal and the integration. 1 runs everything on the caller.
	Parallelization int
	// DirectionNorm selects how the force direction is normalized.
	DirectionNorm DirectionNorm
	// ExtremumField selects the field reported by Simulation.Extrema.
	ExtremumField Field
	// SortByMass reorders the particle store once on construction.
	SortByMass bool
}

// NoSoftening and ExactTheta survive ApplyDefaults and act like zero: the
// square of NoSoftening underflows, and ExactTheta accepts no cell of
// positive width.
const (
	NoSoftening = math.SmallestNonzeroFloat64
	ExactTheta  = math.SmallestNonzeroFloat64
)

var DefaultSimulationConfig = SimulationConfig{
	World:           Rect{X: 0, Y: 0, Width: 1000, Height: 1000},
	G:               1.0,
	Softening:       0.01,
	Theta:           0.5,
	TimeStep:        1.0,
	BatchWidth:      DefaultBatchWidth,
	MaxDepth:        DefaultMaxDepth,
	Parallelization: runtime.NumCPU(),
	DirectionNorm:   DirectionNormUnsoftened,
	ExtremumField:   FieldVelocity,
}

// ApplyDefaults replaces every zero value by the default. DirectionNorm,
// ExtremumField and SortByMass have meaningful zero values and are kept.
func (conf SimulationConfig) ApplyDefaults() SimulationConfig {
	if conf.World.Width == 0.0 || conf.World.Height == 0.0 {
		conf.World = DefaultSimulationConfig.World
	}
	if conf.G == 0.0 {
		conf.G = DefaultSimulationConfig.G
	}
	if conf.Softening == 0.0 {
		conf.Softening = DefaultSimulationConfig.Softening
	}
	if conf.Theta == 0.0 {
		conf.Theta = DefaultSimulationConfig.Theta
	}
	if conf.TimeStep == 0.0 {
		conf.TimeStep = DefaultSimulationConfig.TimeStep
	}
	if conf.BatchWidth == 0 {
		conf.BatchWidth = DefaultSimulationConfig.BatchWidth
	}
	if conf.MaxDepth == 0 {
		conf.MaxDepth = DefaultSimulationConfig.MaxDepth
	}
	if conf.Parallelization == 0 {
		conf.Parallelization = DefaultSimulationConfig.Parallelization
	}
	return conf
}

func (conf SimulationConfig) Validate() error {
	if conf.World.Empty() || !isFinite(conf.World.X) || !isFinite(conf.World.Y) ||
		!isFinite(conf.World.Width) || !isFinite(conf.World.Height) {
		return errors.Errorf("world rectangle %+v must have a finite, positive size", conf.World)
	}
	for name, v := range map[string]float64{
		"G": conf.G, "Softening": conf.Softening, "Theta": conf.Theta, "TimeStep": conf.TimeStep,
	} {
		if v < 0 || !isFinite(v) {
			return errors.Errorf("%s = %v, must be finite and not negative", name, v)
		}
	}
	if conf.BatchWidth < 0 {
		return errors.Errorf("BatchWidth = %d, must not be negative", conf.BatchWidth)
	}
	if conf.MaxDepth < 0 || conf.MaxDepth > math.MaxInt16 {
		return errors.Errorf("MaxDepth = %d out of range", conf.MaxDepth)
	}
	if conf.Parallelization < 0 {
		return errors.Errorf("Parallelization = %d, must not be negative", conf.Parallelization)
	}
	if conf.DirectionNorm != DirectionNormUnsoftened && conf.DirectionNorm != DirectionNormSoftened {
		return errors.Errorf("unknown DirectionNorm %d", conf.DirectionNorm)
	}
	if conf.ExtremumField != FieldVelocity && conf.ExtremumField != FieldNetForce {
		return errors.Errorf("unknown ExtremumField %d", conf.ExtremumField)
	}
	return nil
}

func (conf SimulationConfig) ForceParams() ForceParams {
	return ForceParams{
		G:             conf.G,
		Softening:     conf.Softening,
		Theta:         conf.Theta,
		DirectionNorm: conf.DirectionNorm,
	}
}
