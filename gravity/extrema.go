package gravity

import (
	"math"
)

// Field names a per-particle 2D quantity whose norm drives the color
// gradient of rendered frames. It has no effect on the physics.
type Field int

const (
	FieldVelocity Field = iota
	FieldNetForce
)

func (f Field) String() string {
	switch f {
	case FieldVelocity:
		return "velocity"
	case FieldNetForce:
		return "netforce"
	}
	return "unknown"
}

// ParseField accepts the names returned by Field.String.
func ParseField(s string) (Field, bool) {
	switch s {
	case "velocity", "":
		return FieldVelocity, true
	case "netforce", "force":
		return FieldNetForce, true
	}
	return FieldVelocity, false
}

func (p *Particles) field(f Field) (xs, ys []float64) {
	if f == FieldNetForce {
		return p.forceX, p.forceY
	}
	return p.velX, p.velY
}

// Norm returns the euclidean norm of field f of one particle.
func (p *Particles) Norm(f Field, slot int) float64 {
	xs, ys := p.field(f)
	return math.Hypot(xs[slot], ys[slot])
}

// MaxNorm returns the largest norm of field f, or 0 for an empty store.
func (p *Particles) MaxNorm(f Field) float64 {
	xs, ys := p.field(f)
	max := 0.0
	for i := range xs {
		if n := math.Sqrt(xs[i]*xs[i] + ys[i]*ys[i]); n > max {
			max = n
		}
	}
	return max
}

// MinNorm returns the smallest norm of field f, or 0 for an empty store.
func (p *Particles) MinNorm(f Field) float64 {
	xs, ys := p.field(f)
	if len(xs) == 0 {
		return 0
	}
	min := math.Inf(+1)
	for i := range xs {
		if n := math.Sqrt(xs[i]*xs[i] + ys[i]*ys[i]); n < min {
			min = n
		}
	}
	return min
}

// GradientRange keeps running averages of the minimum and maximum norm of
// a field, so colors do not flicker from frame to frame.
type GradientRange struct {
	Field Field
	// SampleInterval is the number of Sample calls between two actual
	// measurements; values below 1 measure on every call.
	SampleInterval int

	calls   int
	samples int
	avgMin  float64
	avgMax  float64
	lastMin float64
	lastMax float64
}

// Sample measures p if the sample interval has elapsed and reports
// whether it did.
func (g *GradientRange) Sample(p *Particles) bool {
	interval := g.SampleInterval
	if interval < 1 {
		interval = 1
	}
	due := g.calls%interval == 0
	g.calls++
	if !due {
		return false
	}
	g.lastMin, g.lastMax = p.MinNorm(g.Field), p.MaxNorm(g.Field)
	n := float64(g.samples)
	g.avgMin = (g.avgMin*n + g.lastMin) / (n + 1)
	g.avgMax = (g.avgMax*n + g.lastMax) / (n + 1)
	g.samples++
	return true
}

// Range returns the averaged minimum and maximum.
func (g *GradientRange) Range() (min, max float64) {
	return g.avgMin, g.avgMax
}

// Last returns the most recent measurement.
func (g *GradientRange) Last() (min, max float64) {
	return g.lastMin, g.lastMax
}

// Position maps a norm to [0, 1] within the averaged range. Non-finite
// norms map to 0.
func (g *GradientRange) Position(norm float64) float64 {
	lo, hi := g.Range()
	if !(hi > lo) || !isFinite(norm) {
		return 0
	}
	return clamp((norm-lo)/(hi-lo), 0, 1)
}
