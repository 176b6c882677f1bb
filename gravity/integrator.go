package gravity

// DefaultBatchWidth is the number of lanes of LaneKernel.
const DefaultBatchWidth = 8

// Batch is a window of equal-length slices into a particle store. Kernels
// update velocity and position in place.
type Batch struct {
	PosX, PosY     []float64
	VelX, VelY     []float64
	ForceX, ForceY []float64
	Mass           []float64
}

func (b Batch) Len() int {
	return len(b.Mass)
}

// Kernel advances a batch by one semi-implicit Euler step:
//
//	v += F/m * dt
//	x += v * dt
//
// Step is only ever called with batches of exactly Width() particles,
// except for ScalarKernel which also handles the remainder.
type Kernel interface {
	Width() int
	Step(b Batch, dt float64)
}

// NewKernel returns the kernel for a batch width.
func NewKernel(width int) Kernel {
	switch {
	case width <= 1:
		return ScalarKernel{}
	case width == DefaultBatchWidth:
		return LaneKernel{}
	default:
		return SliceKernel{N: width}
	}
}

// ScalarKernel updates one particle after the other.
type ScalarKernel struct{}

func (ScalarKernel) Width() int { return 1 }

func (ScalarKernel) Step(b Batch, dt float64) {
	for i := range b.Mass {
		b.VelX[i] += b.ForceX[i] / b.Mass[i] * dt
		b.VelY[i] += b.ForceY[i] / b.Mass[i] * dt
		b.PosX[i] += b.VelX[i] * dt
		b.PosY[i] += b.VelY[i] * dt
	}
}

type lanes [DefaultBatchWidth]float64

func (l *lanes) load(s []float64) { copy(l[:], s) }

func (l *lanes) store(s []float64) { copy(s, l[:]) }

// LaneKernel loads a batch into fixed-size lane arrays, applies each
// operation to all lanes and stores the result back. The fixed trip count
// lets the compiler unroll and drop bounds checks.
type LaneKernel struct{}

func (LaneKernel) Width() int { return DefaultBatchWidth }

func (LaneKernel) Step(b Batch, dt float64) {
	var mass, forceX, forceY, velX, velY, posX, posY lanes
	mass.load(b.Mass)
	forceX.load(b.ForceX)
	forceY.load(b.ForceY)
	velX.load(b.VelX)
	velY.load(b.VelY)
	posX.load(b.PosX)
	posY.load(b.PosY)
	for i := range mass {
		velX[i] += forceX[i] / mass[i] * dt
	}
	for i := range mass {
		velY[i] += forceY[i] / mass[i] * dt
	}
	for i := range mass {
		posX[i] += velX[i] * dt
	}
	for i := range mass {
		posY[i] += velY[i] * dt
	}
	velX.store(b.VelX)
	velY.store(b.VelY)
	posX.store(b.PosX)
	posY.store(b.PosY)
}

// SliceKernel works on batches of any width N.
type SliceKernel struct {
	N int
}

func (k SliceKernel) Width() int { return k.N }

func (k SliceKernel) Step(b Batch, dt float64) {
	n := len(b.Mass)
	vx, vy := b.VelX[:n], b.VelY[:n]
	px, py := b.PosX[:n], b.PosY[:n]
	fx, fy := b.ForceX[:n], b.ForceY[:n]
	for i, m := range b.Mass {
		vx[i] += fx[i] / m * dt
		vy[i] += fy[i] / m * dt
	}
	for i := range b.Mass {
		px[i] += vx[i] * dt
		py[i] += vy[i] * dt
	}
}

func (p *Particles) batch(lo, hi int) Batch {
	return Batch{
		PosX:   p.posX[lo:hi],
		PosY:   p.posY[lo:hi],
		VelX:   p.velX[lo:hi],
		VelY:   p.velY[lo:hi],
		ForceX: p.forceX[lo:hi],
		ForceY: p.forceY[lo:hi],
		Mass:   p.mass[lo:hi],
	}
}

// Integrate advances every particle by dt. Full batches go through the
// kernel, the remaining Len() % Width() particles through ScalarKernel.
func (p *Particles) Integrate(kernel Kernel, dt float64) {
	p.integrateRange(kernel, dt, 0, p.Len())
}

func (p *Particles) integrateRange(kernel Kernel, dt float64, lo, hi int) {
	w := kernel.Width()
	if w < 1 {
		w = 1
	}
	i := lo
	for ; i+w <= hi; i += w {
		kernel.Step(p.batch(i, i+w), dt)
	}
	if i < hi {
		ScalarKernel{}.Step(p.batch(i, hi), dt)
	}
}

// IntegrateParallel splits the store into batch-aligned ranges and
// integrates them on up to workers goroutines.
func (p *Particles) IntegrateParallel(kernel Kernel, dt float64, workers int) {
	parallelRanges(p.Len(), kernel.Width(), workers, func(lo, hi int) {
		p.integrateRange(kernel, dt, lo, hi)
	})
}
