package gravity

import (
	"testing"

	"github.com/quartercastle/vector"
	"github.com/stretchr/testify/assert"
)

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	for _, test := range []struct {
		Name   string
		Pos    vector.Vector
		Expect bool
	}{
		{Name: "inside", Pos: vector.Vector{5, 5}, Expect: true},
		{Name: "top left corner is inside", Pos: vector.Vector{0, 0}, Expect: true},
		{Name: "right edge is outside", Pos: vector.Vector{10, 5}, Expect: false},
		{Name: "bottom edge is outside", Pos: vector.Vector{5, 10}, Expect: false},
		{Name: "left of box", Pos: vector.Vector{-0.001, 5}, Expect: false},
		{Name: "just before right edge", Pos: vector.Vector{9.999999, 9.999999}, Expect: true},
	} {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Expect, r.Contains(test.Pos))
			assert.Equal(t, test.Expect, r.ContainsPoint(test.Pos.X(), test.Pos.Y()))
		})
	}
}

func TestRect_Intersects(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	for _, test := range []struct {
		Name   string
		Other  Rect
		Expect bool
	}{
		{Name: "overlapping", Other: Rect{X: 5, Y: 5, Width: 10, Height: 10}, Expect: true},
		{Name: "contained", Other: Rect{X: 2, Y: 2, Width: 1, Height: 1}, Expect: true},
		{Name: "containing", Other: Rect{X: -5, Y: -5, Width: 100, Height: 100}, Expect: true},
		{Name: "touching right edge", Other: Rect{X: 10, Y: 0, Width: 5, Height: 5}, Expect: true},
		{Name: "touching top edge", Other: Rect{X: 0, Y: -5, Width: 5, Height: 5}, Expect: true},
		{Name: "separated on x", Other: Rect{X: 10.5, Y: 0, Width: 5, Height: 5}, Expect: false},
		{Name: "separated on y", Other: Rect{X: 0, Y: -6, Width: 5, Height: 5}, Expect: false},
	} {
		t.Run(test.Name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(test.Expect, r.Intersects(test.Other))
			assert.Equal(test.Expect, test.Other.Intersects(r), "must be symmetric")
		})
	}
}

func TestRect_quadrants(t *testing.T) {
	r := Rect{X: -4, Y: 2, Width: 8, Height: 6}
	q := r.quadrants()
	assert := assert.New(t)
	assert.Equal(Rect{X: -4, Y: 2, Width: 4, Height: 3}, q[0])
	assert.Equal(Rect{X: 0, Y: 2, Width: 4, Height: 3}, q[1])
	assert.Equal(Rect{X: -4, Y: 5, Width: 4, Height: 3}, q[2])
	assert.Equal(Rect{X: 0, Y: 5, Width: 4, Height: 3}, q[3])
	for _, p := range []vector.Vector{{-4, 2}, {0, 2}, {-4, 5}, {0, 5}, {3.9, 7.9}} {
		inside := 0
		for _, child := range q {
			if child.Contains(p) {
				inside++
			}
		}
		assert.Equal(1, inside, "point %v must be in exactly one quadrant", p)
		assert.True(q[quadrant(r, p.X(), p.Y())].Contains(p))
	}
	assert.Equal(vector.Vector{0, 5}, r.Center())
	assert.True(Rect{}.Empty())
	assert.False(r.Empty())
}
