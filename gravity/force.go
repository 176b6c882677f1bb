package gravity

import (
	"math"

	"github.com/quartercastle/vector"
)

// DirectionNorm selects the length used to turn the separation vector into
// a unit direction. The force magnitude always uses the softened distance.
type DirectionNorm int

const (
	// DirectionNormUnsoftened divides (dx, dy) by sqrt(dx²+dy²). Bodies at
	// exactly the same position exert no force on each other.
	DirectionNormUnsoftened DirectionNorm = iota
	// DirectionNormSoftened divides (dx, dy) by sqrt(dx²+dy²+ε²), which
	// shrinks the force below the softening length.
	DirectionNormSoftened
)

func (d DirectionNorm) String() string {
	switch d {
	case DirectionNormUnsoftened:
		return "unsoftened"
	case DirectionNormSoftened:
		return "softened"
	}
	return "unknown"
}

// ParseDirectionNorm accepts the names returned by DirectionNorm.String.
func ParseDirectionNorm(s string) (DirectionNorm, bool) {
	switch s {
	case "unsoftened", "":
		return DirectionNormUnsoftened, true
	case "softened":
		return DirectionNormSoftened, true
	}
	return DirectionNormUnsoftened, false
}

// ForceParams are the constants of the force traversal.
type ForceParams struct {
	// G is the gravitational constant.
	G float64
	// Softening is added in quadrature to every distance.
	Softening float64
	// Theta is the multipole acceptance threshold: a cell of width s at
	// softened distance d is treated as one body if s/d < Theta. Zero
	// always descends to the leaves.
	Theta         float64
	DirectionNorm DirectionNorm
}

// attraction returns the force that a mass m2 at (dx, dy) relative to a
// mass m1 exerts on m1.
func (fp *ForceParams) attraction(dx, dy, m1, m2 float64) (float64, float64) {
	d2 := dx*dx + dy*dy
	r2 := d2 + fp.Softening*fp.Softening
	var norm float64
	if fp.DirectionNorm == DirectionNormSoftened {
		norm = math.Sqrt(r2)
	} else {
		norm = math.Sqrt(d2)
	}
	if norm == 0 {
		return 0, 0
	}
	scale := fp.G * m1 * m2 / r2 / norm
	return dx * scale, dy * scale
}

// Attraction is the force the particle in slot other exerts on the
// particle in slot slot.
func (fp ForceParams) Attraction(p *Particles, slot, other int) vector.Vector {
	fx, fy := fp.attraction(p.posX[other]-p.posX[slot], p.posY[other]-p.posY[slot], p.mass[slot], p.mass[other])
	return vector.Vector{fx, fy}
}

// DirectForce sums the attraction of every other particle on slot,
// without any approximation. It costs O(N) per particle and serves as the
// reference for the tree traversal.
func DirectForce(p *Particles, slot int, params ForceParams) vector.Vector {
	var fx, fy float64
	px, py, m := p.posX[slot], p.posY[slot], p.mass[slot]
	for other := range p.mass {
		if other == slot {
			continue
		}
		dfx, dfy := params.attraction(p.posX[other]-px, p.posY[other]-py, m, p.mass[other])
		fx += dfx
		fy += dfy
	}
	return vector.Vector{fx, fy}
}
