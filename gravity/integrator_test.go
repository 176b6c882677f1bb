package gravity

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/quartercastle/vector"
	"github.com/stretchr/testify/assert"
)

func TestNewKernel(t *testing.T) {
	for _, test := range []struct {
		Width  int
		Expect Kernel
	}{
		{Width: 0, Expect: ScalarKernel{}},
		{Width: 1, Expect: ScalarKernel{}},
		{Width: 8, Expect: LaneKernel{}},
		{Width: 4, Expect: SliceKernel{N: 4}},
		{Width: 16, Expect: SliceKernel{N: 16}},
	} {
		t.Run(fmt.Sprint(test.Width), func(t *testing.T) {
			assert.Equal(t, test.Expect, NewKernel(test.Width))
		})
	}
}

func TestIntegrate_constantForce(t *testing.T) {
	// m=2 and F=(10,0) give a=5: after k steps v=5k and x=5k(k+1)/2.
	for _, kernel := range []Kernel{ScalarKernel{}, LaneKernel{}, SliceKernel{N: 4}, SliceKernel{N: 3}} {
		for _, n := range []int{1, 8, 9, 17} {
			t.Run(fmt.Sprintf("%T/%d/%d", kernel, kernel.Width(), n), func(t *testing.T) {
				assert := assert.New(t)
				p := NewParticles(n)
				for i := 0; i < n; i++ {
					p.Add(vector.Vector{0, 0}, nil, 2, 0, i)
				}
				for k := 1; k <= 5; k++ {
					for slot := 0; slot < n; slot++ {
						p.SetNetForce(slot, vector.Vector{10, 0})
					}
					p.Integrate(kernel, 1)
					for slot := 0; slot < n; slot++ {
						assert.Equal(vector.Vector{float64(5 * k), 0}, p.Velocity(slot), "step %d slot %d", k, slot)
						assert.Equal(vector.Vector{float64(5 * k * (k + 1) / 2), 0}, p.Position(slot), "step %d slot %d", k, slot)
					}
				}
				assert.Equal(vector.Vector{25, 0}, p.Velocity(n-1))
				assert.Equal(vector.Vector{75, 0}, p.Position(n-1))
			})
		}
	}
}

func TestIntegrate_semiImplicit(t *testing.T) {
	p := particlesOf(ParticleState{ID: 1, Pos: vector.Vector{1, 1}, Vel: vector.Vector{1, -1}, Mass: 4})
	p.SetNetForce(0, vector.Vector{8, 4})
	p.Integrate(ScalarKernel{}, 0.5)
	assert := assert.New(t)
	// v' = v + F/m*dt, x' = x + v'*dt
	assert.Equal(vector.Vector{2, -0.5}, p.Velocity(0))
	assert.Equal(vector.Vector{2, 0.75}, p.Position(0))
}

func TestIntegrate_zeroForce(t *testing.T) {
	p := particlesOf(
		ParticleState{ID: 1, Pos: vector.Vector{3, 4}, Mass: 1},
		ParticleState{ID: 2, Pos: vector.Vector{5, 6}, Vel: vector.Vector{1, 2}, Mass: 1},
	)
	p.Integrate(LaneKernel{}, 1)
	p.Integrate(LaneKernel{}, 1)
	assert := assert.New(t)
	assert.Equal(vector.Vector{3, 4}, p.Position(0), "no velocity, no force: no motion")
	assert.Equal(vector.Vector{7, 10}, p.Position(1))
	assert.Equal(vector.Vector{1, 2}, p.Velocity(1))
}

func randomForces(rnd *rand.Rand, p *Particles) {
	for slot := 0; slot < p.Len(); slot++ {
		p.SetNetForce(slot, vector.Vector{rnd.NormFloat64() * 10, rnd.NormFloat64() * 10})
	}
}

func TestIntegrate_kernelsAgree(t *testing.T) {
	rnd := rand.New(rand.NewSource(37))
	reference := randomParticles(rnd, 37, Rect{X: -50, Y: -50, Width: 100, Height: 100})
	randomForces(rnd, reference)
	for _, kernel := range []Kernel{LaneKernel{}, SliceKernel{N: 5}, SliceKernel{N: 16}, SliceKernel{N: 64}} {
		t.Run(fmt.Sprintf("%T/%d", kernel, kernel.Width()), func(t *testing.T) {
			expect, actual := reference.Clone(), reference.Clone()
			expect.Integrate(ScalarKernel{}, 0.1)
			actual.Integrate(kernel, 0.1)
			assert.Equal(t, expect.States(nil), actual.States(nil))
		})
	}
}

func TestIntegrateParallel(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	reference := randomParticles(rnd, 1001, Rect{X: 0, Y: 0, Width: 10, Height: 10})
	randomForces(rnd, reference)
	for _, workers := range []int{0, 1, 2, 3, 7, 200} {
		t.Run(fmt.Sprint(workers), func(t *testing.T) {
			expect, actual := reference.Clone(), reference.Clone()
			expect.Integrate(LaneKernel{}, 0.25)
			actual.IntegrateParallel(LaneKernel{}, 0.25, workers)
			assert.Equal(t, expect.States(nil), actual.States(nil))
		})
	}
}

func BenchmarkIntegrate(b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	p := randomParticles(rnd, 100_000, Rect{X: 0, Y: 0, Width: 1000, Height: 1000})
	randomForces(rnd, p)
	for _, kernel := range []Kernel{ScalarKernel{}, LaneKernel{}, SliceKernel{N: 16}} {
		b.Run(fmt.Sprintf("%T/%d", kernel, kernel.Width()), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				p.Integrate(kernel, 1e-3)
			}
		})
	}
}
