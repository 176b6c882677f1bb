// Package population creates initial particle sets, either from simple
// generators or from files.
package population

import (
	"math"

	"github.com/quartercastle/vector"
	"github.com/suxatcode/gravity-particles/gravity"
	"golang.org/x/exp/rand"
)

const (
	galaxyStarRadius = 0.001
	galaxySunRadius  = 1.5
	circleRadius     = 0.00001
	squareRadius     = 0.001
	// galaxyPadding keeps stars away from the sun, where the orbital
	// velocity diverges.
	galaxyPadding = 2.0
	// squareSpreadFactor is the default velocity spread of a square,
	// relative to its mean speed.
	squareSpreadFactor = 0.3
)

// Generator appends particles to a store. Ids continue after the largest
// id already present.
type Generator interface {
	Populate(rnd *rand.Rand, p *gravity.Particles, G float64)
}

// Galaxy is a central sun orbited by stars on circular orbits.
type Galaxy struct {
	Center   vector.Vector
	Velocity vector.Vector
	Radius   float64
	SunMass  float64
	StarMass float64
	Stars    int
}

// Circle scatters resting particles uniformly in angle and radius.
type Circle struct {
	Center vector.Vector
	Radius float64
	Mass   float64
	Amount int
}

// Square places particles uniformly in an axis-aligned square. Each
// velocity is Velocity plus a random offset in a disc of radius
// VelocitySpread; zero selects 30% of the mean speed.
type Square struct {
	Center         vector.Vector
	Side           float64
	Mass           float64
	Velocity       vector.Vector
	VelocitySpread float64
	Amount         int
}

func orZero(v vector.Vector) vector.Vector {
	if len(v) < 2 {
		return vector.Vector{0, 0}
	}
	return v
}

func nextID(p *gravity.Particles) int {
	id := 0
	for slot := 0; slot < p.Len(); slot++ {
		if p.ID(slot) >= id {
			id = p.ID(slot) + 1
		}
	}
	return id
}

// randomInCircle picks an angle and a distance in [padding, radius)
// uniformly, so points cluster towards the center.
func randomInCircle(rnd *rand.Rand, radius, padding float64, center vector.Vector) vector.Vector {
	angle := rnd.Float64() * 2 * math.Pi
	distance := padding + rnd.Float64()*(radius-padding)
	return vector.Vector{distance * math.Cos(angle), distance * math.Sin(angle)}.Add(center)
}

func (g Galaxy) Populate(rnd *rand.Rand, p *gravity.Particles, G float64) {
	center, velocity := orZero(g.Center), orZero(g.Velocity)
	id := nextID(p)
	for i := 0; i < g.Stars; i++ {
		pos := randomInCircle(rnd, g.Radius, math.Min(galaxyPadding, g.Radius/2), center)
		rel := pos.Sub(center)
		speed := math.Sqrt(G * g.SunMass / rel.Magnitude())
		// perpendicular to the radius, counter-clockwise on screen
		dir := vector.Vector{rel.Y(), -rel.X()}.Unit()
		p.Add(pos, dir.Scale(speed).Add(velocity), g.StarMass, galaxyStarRadius, id)
		id++
	}
	p.Add(center, velocity, g.SunMass, galaxySunRadius, id)
}

func (c Circle) Populate(rnd *rand.Rand, p *gravity.Particles, _ float64) {
	id := nextID(p)
	for i := 0; i < c.Amount; i++ {
		p.Add(randomInCircle(rnd, c.Radius, 0, orZero(c.Center)), nil, c.Mass, circleRadius, id)
		id++
	}
}

func (s Square) Populate(rnd *rand.Rand, p *gravity.Particles, _ float64) {
	center, velocity := orZero(s.Center), orZero(s.Velocity)
	spread := s.VelocitySpread
	if spread == 0 {
		spread = velocity.Magnitude() * squareSpreadFactor
	}
	id := nextID(p)
	half := s.Side / 2
	for i := 0; i < s.Amount; i++ {
		pos := vector.Vector{
			center.X() - half + rnd.Float64()*s.Side,
			center.Y() - half + rnd.Float64()*s.Side,
		}
		p.Add(pos, randomInCircle(rnd, spread, 0, velocity), s.Mass, squareRadius, id)
		id++
	}
}
