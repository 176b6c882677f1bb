package gravity

import (
	"math/rand"

	"github.com/quartercastle/vector"
)

// randomParticles places n particles uniformly inside world, with masses
// in [0.5, 50) and small random velocities.
func randomParticles(rnd *rand.Rand, n int, world Rect) *Particles {
	p := NewParticles(n)
	for i := 0; i < n; i++ {
		p.Add(
			vector.Vector{world.X + rnd.Float64()*world.Width, world.Y + rnd.Float64()*world.Height},
			vector.Vector{rnd.NormFloat64() * 0.1, rnd.NormFloat64() * 0.1},
			0.5+rnd.Float64()*49.5,
			rnd.Float64(),
			i,
		)
	}
	return p
}

func particlesOf(states ...ParticleState) *Particles {
	return NewParticlesFromStates(states)
}
