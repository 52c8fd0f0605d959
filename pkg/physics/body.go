package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/Lemon9247/Orbit-Simulator/pkg/vecmath"
)

// ErrInvalidMass is returned for a body whose mass is not a positive finite number.
var ErrInvalidMass = errors.New("physics: mass must be positive and finite")

// Default radius scale factors: radius = k*log10(mass).
const (
	RadiusScale2D = 10.0
	RadiusScale3D = 5.0 // half of the 10*log10(mass) diameter
)

// DefaultRadiusScale returns the radius scale used for vectors of type V.
func DefaultRadiusScale[V vecmath.Vector[V]]() float64 {
	if vecmath.Dimension[V]() == 3 {
		return RadiusScale3D
	}
	return RadiusScale2D
}

// --- Body ---

// Body is a point mass with a spherical extent used only for collisions.
// Mass and radius are fixed at creation; the integrator owns the kinematic state.
type Body[V vecmath.Vector[V]] struct {
	mass   float64
	radius float64
	pos    V
	vel    V
	acc    V
}

// NewBody creates a body. radiusScale <= 0 selects DefaultRadiusScale.
func NewBody[V vecmath.Vector[V]](mass float64, pos, vel V, radiusScale float64) (*Body[V], error) {
	if !(mass > 0) || math.IsInf(mass, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMass, mass)
	}
	if radiusScale <= 0 {
		radiusScale = DefaultRadiusScale[V]()
	}
	return &Body[V]{
		mass:   mass,
		radius: math.Max(0, radiusScale*math.Log10(mass)),
		pos:    pos,
		vel:    vel,
	}, nil
}

func (b *Body[V]) Mass() float64   { return b.mass }
func (b *Body[V]) Radius() float64 { return b.radius }
func (b *Body[V]) Position() V     { return b.pos }
func (b *Body[V]) Velocity() V     { return b.vel }
func (b *Body[V]) Acceleration() V { return b.acc }

func (b *Body[V]) String() string {
	return fmt.Sprintf("m=%.4g r=%.3g p=%v v=%v a=%v", b.mass, b.radius, b.pos.Components(), b.vel.Components(), b.acc.Components())
}
