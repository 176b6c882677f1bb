package gravity

import (
	"math"

	"github.com/quartercastle/vector"
)

// DefaultMaxDepth bounds subdivision. Particles that still share a cell at
// this depth are kept together in one leaf.
const DefaultMaxDepth = 32

type QuadTreeConfig struct {
	MaxDepth int
}

var QUADTREE_DEFAULT_CONFIG = QuadTreeConfig{MaxDepth: DefaultMaxDepth}

type nodeState uint8

const (
	nodeEmpty nodeState = iota
	nodeLeaf
	nodeInternal
)

const noChildren = -1

// node is one cell of the tree. Children of a node are stored next to
// each other in the arena, starting at index children.
type node struct {
	region    Rect
	totalMass float64
	comX      float64
	comY      float64
	state     nodeState
	depth     int32
	children  int32
	// particle is the slot held by a leaf; overflow holds further slots of
	// a leaf at maximum depth.
	particle int
	overflow []int
}

// QuadTree partitions a fixed world rectangle. Every node carries the
// total mass and center of mass of the particles below it.
//
// Nodes live in a flat slice and reference their children by index, so
// the tree can be cleared and rebuilt without reallocating.
type QuadTree struct {
	nodes    []node
	world    Rect
	config   QuadTreeConfig
	inserted int
	excluded int
}

func NewQuadTree(config *QuadTreeConfig, world Rect) *QuadTree {
	qt := new(QuadTree)
	if config == nil {
		config = &QUADTREE_DEFAULT_CONFIG
	}
	qt.config = *config
	if qt.config.MaxDepth <= 0 {
		qt.config.MaxDepth = DefaultMaxDepth
	}
	qt.world = world
	qt.Clear()
	return qt
}

// Clear resets the tree to a single empty root, keeping the arena.
func (qt *QuadTree) Clear() {
	for i := range qt.nodes {
		qt.nodes[i].overflow = nil
	}
	qt.nodes = append(qt.nodes[:0], qt.newNode(qt.world, 0))
	qt.inserted = 0
	qt.excluded = 0
}

func (qt *QuadTree) newNode(region Rect, depth int32) node {
	c := region.Center()
	return node{
		region:   region,
		comX:     c.X(),
		comY:     c.Y(),
		depth:    depth,
		children: noChildren,
		particle: -1,
	}
}

// Build clears the tree and inserts every particle of p.
func (qt *QuadTree) Build(p *Particles) {
	qt.Clear()
	for slot := 0; slot < p.Len(); slot++ {
		qt.Insert(p, slot)
	}
}

// Insert adds the particle in slot to the tree. A particle outside the
// world rectangle is not inserted and false is returned; it neither exerts
// nor receives force through the tree.
func (qt *QuadTree) Insert(p *Particles, slot int) bool {
	x, y, m := p.posX[slot], p.posY[slot], p.mass[slot]
	if !qt.nodes[0].region.ContainsPoint(x, y) {
		qt.excluded++
		return false
	}
	qt.inserted++
	idx := int32(0)
	for {
		n := &qt.nodes[idx]
		switch n.state {
		case nodeEmpty:
			n.state = nodeLeaf
			n.particle = slot
			n.totalMass = m
			n.comX, n.comY = x, y
			return true
		case nodeLeaf:
			if int(n.depth) >= qt.config.MaxDepth {
				n.overflow = append(n.overflow, slot)
				n.add(x, y, m)
				return true
			}
			qt.subdivide(idx)
			n = &qt.nodes[idx]
		}
		n.add(x, y, m)
		idx = n.children + quadrant(n.region, x, y)
	}
}

// add merges a point mass into the aggregate of n.
func (n *node) add(x, y, m float64) {
	total := n.totalMass + m
	if total <= 0 {
		return
	}
	n.comX = (n.comX*n.totalMass + x*m) / total
	n.comY = (n.comY*n.totalMass + y*m) / total
	n.totalMass = total
}

// quadrant returns the child offset of the cell containing (x, y). Points
// on a midpoint go to the right or bottom child.
func quadrant(r Rect, x, y float64) int32 {
	var q int32
	if x >= r.X+r.Width/2 {
		q |= 1
	}
	if y >= r.Y+r.Height/2 {
		q |= 2
	}
	return q
}

// subdivide turns the leaf at idx into an internal node and moves its
// particle into the matching child. The aggregate of idx is unchanged.
func (qt *QuadTree) subdivide(idx int32) {
	parent := qt.nodes[idx]
	first := int32(len(qt.nodes))
	for _, region := range parent.region.quadrants() {
		qt.nodes = append(qt.nodes, qt.newNode(region, parent.depth+1))
	}
	child := &qt.nodes[first+quadrant(parent.region, parent.comX, parent.comY)]
	child.state = nodeLeaf
	child.particle = parent.particle
	child.totalMass = parent.totalMass
	child.comX, child.comY = parent.comX, parent.comY

	n := &qt.nodes[idx]
	n.state = nodeInternal
	n.children = first
	n.particle = -1
}

// CalculateForce adds the force that the tree exerts on the particle in
// slot to its net force. Only the accumulator of slot is written, so
// several goroutines may traverse the same tree for different slots.
// Particles outside the world receive no force.
func (qt *QuadTree) CalculateForce(p *Particles, slot int, params ForceParams) {
	fx, fy := qt.force(p, slot, &params)
	p.addForce(slot, fx, fy)
}

// Force returns the force the tree exerts on the particle in slot without
// touching the particle store.
func (qt *QuadTree) Force(p *Particles, slot int, params ForceParams) vector.Vector {
	fx, fy := qt.force(p, slot, &params)
	return vector.Vector{fx, fy}
}

func (qt *QuadTree) force(p *Particles, slot int, params *ForceParams) (fx, fy float64) {
	px, py, m := p.posX[slot], p.posY[slot], p.mass[slot]
	if !qt.world.ContainsPoint(px, py) {
		return 0, 0
	}
	soft2 := params.Softening * params.Softening
	var buf [4 * DefaultMaxDepth]int32
	stack := append(buf[:0], 0)
	for len(stack) > 0 {
		n := &qt.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		switch n.state {
		case nodeLeaf:
			if n.particle != slot {
				dfx, dfy := params.attraction(p.posX[n.particle]-px, p.posY[n.particle]-py, m, p.mass[n.particle])
				fx += dfx
				fy += dfy
			}
			for _, other := range n.overflow {
				if other == slot {
					continue
				}
				dfx, dfy := params.attraction(p.posX[other]-px, p.posY[other]-py, m, p.mass[other])
				fx += dfx
				fy += dfy
			}
		case nodeInternal:
			dx, dy := n.comX-px, n.comY-py
			d := math.Sqrt(dx*dx + dy*dy + soft2)
			if n.region.Width/d < params.Theta {
				dfx, dfy := params.attraction(dx, dy, m, n.totalMass)
				fx += dfx
				fy += dfy
				continue
			}
			stack = append(stack, n.children+3, n.children+2, n.children+1, n.children)
		}
	}
	return fx, fy
}

// Query returns the slots of all inserted particles whose current
// position lies inside area. Only nodes intersecting area are visited.
func (qt *QuadTree) Query(area Rect, p *Particles) []int {
	result := []int{}
	stack := []int32{0}
	for len(stack) > 0 {
		n := &qt.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !n.region.Intersects(area) {
			continue
		}
		switch n.state {
		case nodeLeaf:
			if area.ContainsPoint(p.posX[n.particle], p.posY[n.particle]) {
				result = append(result, n.particle)
			}
			for _, other := range n.overflow {
				if area.ContainsPoint(p.posX[other], p.posY[other]) {
					result = append(result, other)
				}
			}
		case nodeInternal:
			stack = append(stack, n.children+3, n.children+2, n.children+1, n.children)
		}
	}
	return result
}

// Bounds returns the region of every node, root first, for debug
// overlays.
func (qt *QuadTree) Bounds() []Rect {
	bounds := make([]Rect, len(qt.nodes))
	for i := range qt.nodes {
		bounds[i] = qt.nodes[i].region
	}
	return bounds
}

func (qt *QuadTree) Mass() float64 {
	return qt.nodes[0].totalMass
}

func (qt *QuadTree) CenterOfMass() vector.Vector {
	return vector.Vector{qt.nodes[0].comX, qt.nodes[0].comY}
}

// Len returns the number of nodes.
func (qt *QuadTree) Len() int {
	return len(qt.nodes)
}

// Depth returns the depth of the deepest node; a lone root has depth 0.
func (qt *QuadTree) Depth() int {
	depth := int32(0)
	for i := range qt.nodes {
		if qt.nodes[i].depth > depth {
			depth = qt.nodes[i].depth
		}
	}
	return int(depth)
}

func (qt *QuadTree) Inserted() int {
	return qt.inserted
}

func (qt *QuadTree) Excluded() int {
	return qt.excluded
}

func (qt *QuadTree) World() Rect {
	return qt.world
}
