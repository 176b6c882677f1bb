package controller

import (
	"github.com/suxatcode/gravity-particles/gravity"
)

// Stepper is the part of a gravity simulation the controller drives and
// reads. Step is the only mutating call; all others may run concurrently
// with it.
//
//go:generate mockgen -destination stepper_mock.go -package controller . Stepper
type Stepper interface {
	gravity.Viewer
	Step() gravity.StepStats
	Steps() int
	// Extrema returns the smallest and largest norm of the configured
	// extremum field.
	Extrema() (min, max float64)
	Snapshot(area gravity.Rect) []gravity.ParticleState
	TreeBounds() []gravity.Rect
}

var _ Stepper = (*gravity.Simulation)(nil)
