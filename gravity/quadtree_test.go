package gravity

import (
	"math"
	"math/rand"
	"testing"

	"github.com/quartercastle/vector"
	"github.com/stretchr/testify/assert"
)

var testWorld = Rect{X: 0, Y: 0, Width: 64, Height: 64}

func buildTree(config *QuadTreeConfig, world Rect, p *Particles) *QuadTree {
	qt := NewQuadTree(config, world)
	qt.Build(p)
	return qt
}

func TestQuadTree_empty(t *testing.T) {
	qt := NewQuadTree(nil, testWorld)
	assert := assert.New(t)
	assert.Equal(1, qt.Len())
	assert.Equal(0, qt.Depth())
	assert.Equal(0.0, qt.Mass())
	assert.Equal(vector.Vector{32, 32}, qt.CenterOfMass())
	assert.Equal([]int{}, qt.Query(testWorld, NewParticles(0)))
	assert.Equal(testWorld, qt.World())
}

func TestQuadTree_Insert(t *testing.T) {
	for _, test := range []struct {
		Name     string
		States   []ParticleState
		Nodes    int
		Depth    int
		Inserted int
		Excluded int
		Mass     float64
		COM      vector.Vector
	}{
		{
			Name:     "single particle stays in root",
			States:   []ParticleState{{ID: 1, Pos: vector.Vector{3, 5}, Mass: 2}},
			Nodes:    1,
			Depth:    0,
			Inserted: 1,
			Mass:     2,
			COM:      vector.Vector{3, 5},
		},
		{
			Name: "two particles in different quadrants",
			States: []ParticleState{
				{ID: 1, Pos: vector.Vector{16, 16}, Mass: 1},
				{ID: 2, Pos: vector.Vector{48, 48}, Mass: 3},
			},
			Nodes:    5,
			Depth:    1,
			Inserted: 2,
			Mass:     4,
			COM:      vector.Vector{40, 40},
		},
		{
			Name: "two particles sharing a quadrant subdivide twice",
			States: []ParticleState{
				{ID: 1, Pos: vector.Vector{8, 8}, Mass: 1},
				{ID: 2, Pos: vector.Vector{24, 24}, Mass: 1},
			},
			Nodes:    9,
			Depth:    2,
			Inserted: 2,
			Mass:     2,
			COM:      vector.Vector{16, 16},
		},
		{
			Name: "particles outside the world are excluded",
			States: []ParticleState{
				{ID: 1, Pos: vector.Vector{-1, 5}, Mass: 1},
				{ID: 2, Pos: vector.Vector{64, 5}, Mass: 1},
				{ID: 3, Pos: vector.Vector{5, 5}, Mass: 1},
				{ID: 4, Pos: vector.Vector{5, 100}, Mass: 1},
			},
			Nodes:    1,
			Depth:    0,
			Inserted: 1,
			Excluded: 3,
			Mass:     1,
			COM:      vector.Vector{5, 5},
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			qt := buildTree(nil, testWorld, particlesOf(test.States...))
			assert := assert.New(t)
			assert.Equal(test.Nodes, qt.Len())
			assert.Equal(test.Depth, qt.Depth())
			assert.Equal(test.Inserted, qt.Inserted())
			assert.Equal(test.Excluded, qt.Excluded())
			assert.Equal(test.Mass, qt.Mass())
			assert.InDeltaSlice(test.COM, qt.CenterOfMass(), 1e-12)
		})
	}
}

func TestQuadTree_coincident(t *testing.T) {
	p := particlesOf(
		ParticleState{ID: 1, Pos: vector.Vector{10, 10}, Mass: 1},
		ParticleState{ID: 2, Pos: vector.Vector{10, 10}, Mass: 1},
		ParticleState{ID: 3, Pos: vector.Vector{10, 10}, Mass: 1},
		ParticleState{ID: 4, Pos: vector.Vector{50, 10}, Mass: 1},
	)
	qt := buildTree(&QuadTreeConfig{MaxDepth: 4}, testWorld, p)
	assert := assert.New(t)
	assert.Equal(4, qt.Depth(), "subdivision stops at the maximum depth")
	assert.Equal(1+4*4, qt.Len())
	assert.Equal(4, qt.Inserted())
	assert.ElementsMatch([]int{0, 1, 2}, qt.Query(Rect{X: 9, Y: 9, Width: 2, Height: 2}, p))

	params := ForceParams{G: 1, Softening: 0.01, Theta: 0.5}
	for slot := 0; slot < 3; slot++ {
		f := qt.Force(p, slot, params)
		// only the distant particle pulls, the coincident ones cancel out
		expect := params.Attraction(p, slot, 3)
		assert.InDeltaSlice(expect, f, 1e-15, "slot %d", slot)
	}
	f := qt.Force(p, 3, params)
	assert.InDeltaSlice(DirectForce(p, 3, params), f, 1e-12)
	assert.Less(f.X(), 0.0)
}

func TestQuadTree_defaultDepthBound(t *testing.T) {
	p := particlesOf(
		ParticleState{ID: 1, Pos: vector.Vector{1, 1}, Mass: 1},
		ParticleState{ID: 2, Pos: vector.Vector{1, 1}, Mass: 1},
	)
	qt := buildTree(nil, testWorld, p)
	assert := assert.New(t)
	assert.Equal(DefaultMaxDepth, qt.Depth())
	assert.Equal(1+4*DefaultMaxDepth, qt.Len())
	assert.Equal(vector.Vector{0, 0}, qt.Force(p, 0, ForceParams{G: 1, Softening: 0.1, Theta: 0.5}))
}

func TestQuadTree_orderIndependence(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	p := randomParticles(rnd, 64, testWorld)
	params := ForceParams{G: 1, Softening: 0.01, Theta: 0.5}
	reference := buildTree(nil, testWorld, p)
	for i := 0; i < 5; i++ {
		qt := NewQuadTree(nil, testWorld)
		for _, slot := range rnd.Perm(p.Len()) {
			qt.Insert(p, slot)
		}
		assert := assert.New(t)
		assert.Equal(reference.Len(), qt.Len())
		assert.ElementsMatch(reference.Bounds(), qt.Bounds())
		assert.InDelta(reference.Mass(), qt.Mass(), 1e-9)
		assert.InDeltaSlice(reference.CenterOfMass(), qt.CenterOfMass(), 1e-9)
		for slot := 0; slot < p.Len(); slot++ {
			assert.InDeltaSlice(reference.Force(p, slot, params), qt.Force(p, slot, params), 1e-9, "slot %d", slot)
		}
	}
}

func TestQuadTree_Query(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	world := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	// a third of the particles lie outside the world
	p := randomParticles(rnd, 300, Rect{X: -25, Y: -25, Width: 150, Height: 150})
	qt := buildTree(nil, world, p)
	for _, area := range []Rect{
		world,
		{X: 10, Y: 10, Width: 20, Height: 30},
		{X: 50, Y: 50, Width: 0.5, Height: 0.5},
		{X: -50, Y: -50, Width: 75, Height: 75},
		{X: 200, Y: 200, Width: 10, Height: 10},
		{X: 0, Y: 0, Width: 0, Height: 0},
	} {
		var expect []int
		for slot := 0; slot < p.Len(); slot++ {
			x, y := p.posX[slot], p.posY[slot]
			if world.ContainsPoint(x, y) && area.ContainsPoint(x, y) {
				expect = append(expect, slot)
			}
		}
		assert.ElementsMatch(t, expect, qt.Query(area, p), "area %+v", area)
	}
	assert.Equal(t, p.Len(), qt.Inserted()+qt.Excluded())
}

func TestQuadTree_CalculateForce_exactLimit(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	p := randomParticles(rnd, 100, testWorld)
	qt := buildTree(nil, testWorld, p)
	for _, norm := range []DirectionNorm{DirectionNormUnsoftened, DirectionNormSoftened} {
		t.Run(norm.String(), func(t *testing.T) {
			params := ForceParams{G: 1, Softening: 0.01, Theta: 0, DirectionNorm: norm}
			for slot := 0; slot < p.Len(); slot++ {
				expect := DirectForce(p, slot, params)
				actual := qt.Force(p, slot, params)
				tolerance := 1e-9 * expect.Magnitude()
				assert.InDeltaSlice(t, expect, actual, tolerance, "slot %d", slot)
			}
		})
	}
}

func TestQuadTree_CalculateForce_approximation(t *testing.T) {
	rnd := rand.New(rand.NewSource(8))
	p := randomParticles(rnd, 500, testWorld)
	qt := buildTree(nil, testWorld, p)
	params := ForceParams{G: 1, Softening: 0.01, Theta: 0.5}
	var errSum, forceSum float64
	for slot := 0; slot < p.Len(); slot++ {
		expect := DirectForce(p, slot, params)
		actual := qt.Force(p, slot, params)
		errSum += actual.Sub(expect).Magnitude()
		forceSum += expect.Magnitude()
	}
	assert.Less(t, errSum/forceSum, 0.05)
}

func TestQuadTree_CalculateForce_accumulates(t *testing.T) {
	p := particlesOf(
		ParticleState{ID: 1, Pos: vector.Vector{0, 0}, Mass: 100},
		ParticleState{ID: 2, Pos: vector.Vector{10, 0}, Mass: 1},
	)
	qt := buildTree(nil, testWorld, p)
	params := ForceParams{G: 1, Theta: 0.5}
	p.SetNetForce(1, vector.Vector{1, 1})
	qt.CalculateForce(p, 1, params)
	assert := assert.New(t)
	assert.InDeltaSlice(vector.Vector{0, 1}, p.NetForce(1), 1e-15)
	assert.Equal(vector.Vector{0, 0}, p.NetForce(0), "other slots are untouched")
}

func TestQuadTree_Clear(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	p := randomParticles(rnd, 50, testWorld)
	qt := buildTree(nil, testWorld, p)
	nodes := qt.Len()
	qt.Clear()
	assert := assert.New(t)
	assert.Equal(1, qt.Len())
	assert.Equal(0, qt.Inserted())
	assert.Equal(0.0, qt.Mass())
	qt.Build(p)
	assert.Equal(nodes, qt.Len())
	assert.Equal(50, qt.Inserted())
	assert.False(math.IsNaN(qt.Mass()))
}

func BenchmarkQuadTree(b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	world := Rect{X: 0, Y: 0, Width: 1000, Height: 1000}
	p := randomParticles(rnd, 10_000, world)
	qt := NewQuadTree(nil, world)
	params := ForceParams{G: 1, Softening: 0.01, Theta: 0.5}
	b.Run("Build", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			qt.Build(p)
		}
	})
	b.Run("CalculateForce", func(b *testing.B) {
		qt.Build(p)
		for i := 0; i < b.N; i++ {
			qt.CalculateForce(p, i%p.Len(), params)
		}
	})
}

func TestQuadTree_CalculateForce_outsideWorld(t *testing.T) {
	p := particlesOf(
		ParticleState{ID: 1, Pos: vector.Vector{10, 10}, Mass: 100},
		ParticleState{ID: 2, Pos: vector.Vector{70, 10}, Mass: 1},
	)
	qt := buildTree(nil, testWorld, p)
	params := ForceParams{G: 1, Softening: 0.01, Theta: 0.5}
	qt.CalculateForce(p, 0, params)
	qt.CalculateForce(p, 1, params)
	assert := assert.New(t)
	assert.Equal(vector.Vector{0, 0}, p.NetForce(0), "excluded particles exert nothing")
	assert.Equal(vector.Vector{0, 0}, p.NetForce(1), "excluded particles receive nothing")
	assert.Equal(1, qt.Excluded())
}
