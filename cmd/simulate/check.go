package main

import (
	"github.com/suxatcode/gravity-particles/gravity"
)

type checkResult struct {
	Checked int
	// RelErr is the summed error magnitude over the summed exact force
	// magnitude. MaxRelErr is the largest error of a single particle.
	RelErr    float64
	MaxRelErr float64
}

// exactCheck compares the tree force of up to samples particles, spread
// evenly over the store, against the exact pairwise sum. The tree is
// rebuilt from the current positions first. Particles outside the world
// are skipped as targets but still count as sources of the exact sum.
func exactCheck(sim *gravity.Simulation, samples int) checkResult {
	sim.Rebuild()
	params := sim.Config().ForceParams()
	res := checkResult{}
	var errSum, forceSum float64
	sim.View(func(p *gravity.Particles, qt *gravity.QuadTree) {
		stride := max(1, p.Len()/samples)
		for slot := 0; slot < p.Len() && res.Checked < samples; slot += stride {
			if !qt.World().Contains(p.Position(slot)) {
				continue
			}
			exact := gravity.DirectForce(p, slot, params)
			if exact.Magnitude() == 0 {
				continue
			}
			diff := qt.Force(p, slot, params).Sub(exact).Magnitude()
			res.Checked++
			errSum += diff
			forceSum += exact.Magnitude()
			res.MaxRelErr = max(res.MaxRelErr, diff/exact.Magnitude())
		}
	})
	if res.Checked > 0 {
		res.RelErr = errSum / forceSum
	}
	return res
}
