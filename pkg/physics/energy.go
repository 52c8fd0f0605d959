package physics

import "github.com/Lemon9247/Orbit-Simulator/pkg/vecmath"

// Momentum returns the total linear momentum, sum of m*v.
func Momentum[V vecmath.Vector[V]](bodies []*Body[V]) V {
	var p V
	for _, b := range bodies {
		p = p.Add(b.vel.Scale(b.mass))
	}
	return p
}

func KineticEnergy[V vecmath.Vector[V]](bodies []*Body[V]) float64 {
	e := 0.0
	for _, b := range bodies {
		e += 0.5 * b.mass * b.vel.Dot(b.vel)
	}
	return e
}

// PotentialEnergy sums -G*mi*mj/r over unordered pairs, skipping pairs within epsilon.
func PotentialEnergy[V vecmath.Vector[V]](bodies []*Body[V], g, epsilon float64) float64 {
	e := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			r := vecmath.Magnitude(bodies[i].pos.Sub(bodies[j].pos))
			if !(r > epsilon) {
				continue
			}
			e -= g * bodies[i].mass * bodies[j].mass / r
		}
	}
	return e
}
