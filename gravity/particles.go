package gravity

import (
	"math"

	"github.com/pkg/errors"
	"github.com/quartercastle/vector"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// MinMass replaces non-positive or NaN masses. The integrator divides by
// mass, so a particle must never carry zero.
const MinMass = 1e-12

// Particles stores every particle attribute in its own slice. A slot
// indexes all slices at once; the id of a particle stays with it when
// slots are reordered.
type Particles struct {
	posX, posY     []float64
	velX, velY     []float64
	forceX, forceY []float64
	mass           []float64
	radius         []float64
	id             []int
}

// ParticleState is one row of the store, used wherever particles leave
// the simulation (JSON, renderer, population files).
type ParticleState struct {
	ID     int           `json:"id"`
	Pos    vector.Vector `json:"pos"`
	Vel    vector.Vector `json:"vel"`
	Mass   float64       `json:"mass"`
	Radius float64       `json:"radius,omitempty"`
}

func NewParticles(capacity int) *Particles {
	return &Particles{
		posX:   make([]float64, 0, capacity),
		posY:   make([]float64, 0, capacity),
		velX:   make([]float64, 0, capacity),
		velY:   make([]float64, 0, capacity),
		forceX: make([]float64, 0, capacity),
		forceY: make([]float64, 0, capacity),
		mass:   make([]float64, 0, capacity),
		radius: make([]float64, 0, capacity),
		id:     make([]int, 0, capacity),
	}
}

// NewParticlesFromStates builds a store from rows, e.g. read from a file.
func NewParticlesFromStates(states []ParticleState) *Particles {
	p := NewParticles(len(states))
	for _, s := range states {
		p.Add(s.Pos, s.Vel, s.Mass, s.Radius, s.ID)
	}
	return p
}

// Add appends a particle with zero net force. Masses that are not
// strictly positive and finite, including NaN and +Inf, are clamped to
// MinMass.
func (p *Particles) Add(pos, vel vector.Vector, mass, radius float64, id int) {
	p.posX = append(p.posX, component(pos, 0))
	p.posY = append(p.posY, component(pos, 1))
	p.velX = append(p.velX, component(vel, 0))
	p.velY = append(p.velY, component(vel, 1))
	p.forceX = append(p.forceX, 0)
	p.forceY = append(p.forceY, 0)
	p.mass = append(p.mass, sanitizeMass(mass, id))
	p.radius = append(p.radius, radius)
	p.id = append(p.id, id)
}

func component(v vector.Vector, i int) float64 {
	if len(v) <= i {
		return 0
	}
	return v[i]
}

func sanitizeMass(m float64, id int) float64 {
	if m > 0 && !math.IsInf(m, 0) {
		return m
	}
	if !isFinite(m) {
		log.Error().Int("id", id).Float64("mass", m).Msgf("invalid mass, clamped to %g", MinMass)
		return MinMass
	}
	log.Warn().Int("id", id).Float64("mass", m).Msgf("mass clamped to %g", MinMass)
	return MinMass
}

// Sanitize clamps every non-positive or non-finite mass to MinMass and returns how many were
// changed.
func (p *Particles) Sanitize() int {
	changed := 0
	for i, m := range p.mass {
		if s := sanitizeMass(m, p.id[i]); s != m {
			p.mass[i] = s
			changed++
		}
	}
	return changed
}

// Validate checks the store invariants: all slices share one length and
// ids are unique.
func (p *Particles) Validate() error {
	n := len(p.id)
	for name, l := range map[string]int{
		"posX": len(p.posX), "posY": len(p.posY),
		"velX": len(p.velX), "velY": len(p.velY),
		"forceX": len(p.forceX), "forceY": len(p.forceY),
		"mass": len(p.mass), "radius": len(p.radius),
	} {
		if l != n {
			return errors.Errorf("particle store corrupt: len(%s) = %d, but %d ids", name, l, n)
		}
	}
	seen := make(map[int]int, n)
	for slot, id := range p.id {
		if other, exists := seen[id]; exists {
			return errors.Errorf("duplicate particle id %d in slots %d and %d", id, other, slot)
		}
		seen[id] = slot
	}
	return nil
}

func (p *Particles) Len() int {
	return len(p.id)
}

func (p *Particles) Position(slot int) vector.Vector {
	return vector.Vector{p.posX[slot], p.posY[slot]}
}

func (p *Particles) SetPosition(slot int, pos vector.Vector) {
	p.posX[slot], p.posY[slot] = pos.X(), pos.Y()
}

func (p *Particles) Velocity(slot int) vector.Vector {
	return vector.Vector{p.velX[slot], p.velY[slot]}
}

func (p *Particles) SetVelocity(slot int, vel vector.Vector) {
	p.velX[slot], p.velY[slot] = vel.X(), vel.Y()
}

func (p *Particles) NetForce(slot int) vector.Vector {
	return vector.Vector{p.forceX[slot], p.forceY[slot]}
}

func (p *Particles) SetNetForce(slot int, force vector.Vector) {
	p.forceX[slot], p.forceY[slot] = force.X(), force.Y()
}

func (p *Particles) Mass(slot int) float64 {
	return p.mass[slot]
}

func (p *Particles) Radius(slot int) float64 {
	return p.radius[slot]
}

func (p *Particles) ID(slot int) int {
	return p.id[slot]
}

// Slot returns the current slot of the particle with the given id, or -1.
func (p *Particles) Slot(id int) int {
	for slot, other := range p.id {
		if other == id {
			return slot
		}
	}
	return -1
}

func (p *Particles) ResetAllForces() {
	for i := range p.forceX {
		p.forceX[i] = 0
	}
	for i := range p.forceY {
		p.forceY[i] = 0
	}
}

// AccumulateForce adds f to the net force of a single particle.
func (p *Particles) AccumulateForce(slot int, f vector.Vector) {
	p.addForce(slot, f.X(), f.Y())
}

func (p *Particles) addForce(slot int, fx, fy float64) {
	p.forceX[slot] += fx
	p.forceY[slot] += fy
}

// massKey truncates a mass to the integer key used for sorting.
func massKey(m float64) uint32 {
	if math.IsNaN(m) {
		return 0
	}
	return uint32(clamp(m, 0, math.MaxUint32))
}

// SortByMass reorders slots by ascending truncated mass. Ties end up in no
// particular order. All slices are permuted together.
func (p *Particles) SortByMass() {
	perm := make([]int, p.Len())
	for i := range perm {
		perm[i] = i
	}
	slices.SortFunc(perm, func(a, b int) int {
		ka, kb := massKey(p.mass[a]), massKey(p.mass[b])
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
	p.permute(perm)
}

// permute moves the particle in slot perm[i] to slot i.
func (p *Particles) permute(perm []int) {
	p.posX = permuted(p.posX, perm)
	p.posY = permuted(p.posY, perm)
	p.velX = permuted(p.velX, perm)
	p.velY = permuted(p.velY, perm)
	p.forceX = permuted(p.forceX, perm)
	p.forceY = permuted(p.forceY, perm)
	p.mass = permuted(p.mass, perm)
	p.radius = permuted(p.radius, perm)
	p.id = permuted(p.id, perm)
}

func permuted[T any](in []T, perm []int) []T {
	out := make([]T, len(perm), cap(in))
	for i, from := range perm {
		out[i] = in[from]
	}
	return out
}

// Clone returns a deep copy.
func (p *Particles) Clone() *Particles {
	return &Particles{
		posX:   slices.Clone(p.posX),
		posY:   slices.Clone(p.posY),
		velX:   slices.Clone(p.velX),
		velY:   slices.Clone(p.velY),
		forceX: slices.Clone(p.forceX),
		forceY: slices.Clone(p.forceY),
		mass:   slices.Clone(p.mass),
		radius: slices.Clone(p.radius),
		id:     slices.Clone(p.id),
	}
}

func (p *Particles) State(slot int) ParticleState {
	return ParticleState{
		ID:     p.id[slot],
		Pos:    p.Position(slot),
		Vel:    p.Velocity(slot),
		Mass:   p.mass[slot],
		Radius: p.radius[slot],
	}
}

// States returns the rows for the given slots, or for all particles if
// slots is nil.
func (p *Particles) States(slots []int) []ParticleState {
	if slots == nil {
		states := make([]ParticleState, p.Len())
		for i := range states {
			states[i] = p.State(i)
		}
		return states
	}
	states := make([]ParticleState, 0, len(slots))
	for _, slot := range slots {
		states = append(states, p.State(slot))
	}
	return states
}
