package physics

import (
	"sync"

	"github.com/Lemon9247/Orbit-Simulator/pkg/vecmath"
)

// Integrator advances a body set with the kick-drift leapfrog scheme.
//
// Every pass reads one frozen snapshot of the bodies and commits all results at
// the end, so the outcome does not depend on the order of the bodies.
type Integrator[V vecmath.Vector[V]] struct {
	G       float64 // gravitational constant
	Dt      float64 // fixed time step
	Epsilon float64 // pairs at distance <= Epsilon exert no force
	Workers int     // goroutines for the compute phase; <= 1 runs inline
}

type kinematics[V vecmath.Vector[V]] struct {
	pos, vel, acc V
}

// Prime sets the initial accelerations and rewinds every velocity by half a
// step, putting velocities on the half-step grid leapfrog expects. Call it
// once, before the first Step.
func (in Integrator[V]) Prime(bodies []*Body[V]) {
	accs := make([]V, len(bodies))
	in.each(len(bodies), func(i int) {
		accs[i] = Acceleration(bodies[i], bodies, in.G, in.Epsilon)
	})
	for i, b := range bodies {
		b.acc = accs[i]
		b.vel = b.vel.Sub(b.acc.Scale(in.Dt / 2))
	}
}

// Step advances all bodies by one time step:
//
//	a' = a(x)
//	v' = v + a'*dt
//	x' = x + v'*dt
//
// This is the kick-drift form: the drift uses the velocity just kicked, not
// the velocity the body had at the start of the tick.
func (in Integrator[V]) Step(bodies []*Body[V]) {
	next := make([]kinematics[V], len(bodies))
	in.each(len(bodies), func(i int) {
		b := bodies[i]
		acc := Acceleration(b, bodies, in.G, in.Epsilon)
		vel := b.vel.Add(acc.Scale(in.Dt))
		next[i] = kinematics[V]{
			pos: b.pos.Add(vel.Scale(in.Dt)),
			vel: vel,
			acc: acc,
		}
	})

	for i, b := range bodies {
		b.pos, b.vel, b.acc = next[i].pos, next[i].vel, next[i].acc
	}
}

// each calls fn for every index in [0, n). With Workers > 1 the range is split
// into contiguous chunks run concurrently; fn must only write to slot i.
func (in Integrator[V]) each(n int, fn func(i int)) {
	workers := in.Workers
	if workers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	if workers > n {
		workers = n
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
