package physics

import "github.com/Lemon9247/Orbit-Simulator/pkg/vecmath"

// Touching reports whether the spheres of a and b touch or overlap.
func Touching[V vecmath.Vector[V]](a, b *Body[V]) bool {
	return vecmath.Magnitude(a.pos.Sub(b.pos)) <= a.radius+b.radius
}

// CollisionDelta is the velocity change of a from an elastic collision with b
// along their line of centres. ok is false when the centres coincide and the
// impulse direction is undefined.
func CollisionDelta[V vecmath.Vector[V]](a, b *Body[V]) (dv V, ok bool) {
	disp := a.pos.Sub(b.pos)
	d2 := disp.Dot(disp)
	if d2 == 0 {
		return dv, false
	}
	massFraction := -2 * b.mass / (a.mass + b.mass)
	relVel := a.vel.Sub(b.vel)
	return disp.Scale(massFraction * relVel.Dot(disp) / d2), true
}

// Collide resolves every touching pair. Each body's velocity changes by the
// sum of its deltas, all computed from the velocities before the pass. It
// returns the number of touching pairs.
func (in Integrator[V]) Collide(bodies []*Body[V]) int {
	deltas := make([]V, len(bodies))
	pairs := make([]int, len(bodies))
	in.each(len(bodies), func(i int) {
		a := bodies[i]
		var dv V
		for j, b := range bodies {
			if b == a || !Touching(a, b) {
				continue
			}
			if j > i {
				pairs[i]++
			}
			if d, ok := CollisionDelta(a, b); ok {
				dv = dv.Add(d)
			}
		}
		deltas[i] = dv
	})

	contacts := 0
	for i, b := range bodies {
		b.vel = b.vel.Add(deltas[i])
		contacts += pairs[i]
	}
	return contacts
}
