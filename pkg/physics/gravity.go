package physics

import "github.com/Lemon9247/Orbit-Simulator/pkg/vecmath"

// DefaultG is the gravitational constant of the reference scenes, scaled up so
// pixel-sized systems move visibly. It is a tuning value, not SI.
const DefaultG = 66.7

// Acceleration returns the net gravitational acceleration on self from every
// other body. A pair closer than or equal to epsilon contributes nothing, so
// coincident bodies never produce an infinite term.
func Acceleration[V vecmath.Vector[V]](self *Body[V], bodies []*Body[V], g, epsilon float64) V {
	var acc V
	for _, other := range bodies {
		if other == self {
			continue
		}

		disp := self.pos.Sub(other.pos)
		dist := vecmath.Magnitude(disp)
		if !(dist > epsilon) {
			continue
		}
		acc = acc.Add(disp.Scale(-g * other.mass / (dist * dist * dist)))
	}
	return acc
}
