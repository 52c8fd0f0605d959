// Package vecmath holds the small fixed-dimension vector algebra used by the
// integrator. The dimension is picked at compile time through the Vector
// constraint, so the same physics code runs on Vec2 and Vec3.
package vecmath

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDimension is returned when raw components do not match the vector dimension.
var ErrDimension = errors.New("vecmath: dimension mismatch")

// Vector is satisfied by Vec2 and Vec3.
type Vector[V any] interface {
	Vec2 | Vec3
	Add(V) V
	Sub(V) V
	Scale(float64) V
	Dot(V) float64
	Dim() int
	Components() []float64
}

// --- 2D ---

// Vec2 is a 2D vector with value semantics.
type Vec2 r2.Vec

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(r2.Add(r2.Vec(v), r2.Vec(o)))
}

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2(r2.Sub(r2.Vec(v), r2.Vec(o)))
}

// Scale returns s·v.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2(r2.Scale(s, r2.Vec(v)))
}

// Dot returns the scalar product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return r2.Dot(r2.Vec(v), r2.Vec(o))
}

// Dim returns the number of components.
func (Vec2) Dim() int { return 2 }

// Components returns X and Y.
func (v Vec2) Components() []float64 { return []float64{v.X, v.Y} }

// --- 3D ---

// Vec3 is a 3D vector with value semantics.
type Vec3 r3.Vec

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3(r3.Add(r3.Vec(v), r3.Vec(o)))
}

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3(r3.Sub(r3.Vec(v), r3.Vec(o)))
}

// Scale returns s·v.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3(r3.Scale(s, r3.Vec(v)))
}

// Dot returns the scalar product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return r3.Dot(r3.Vec(v), r3.Vec(o))
}

// Dim returns the number of components.
func (Vec3) Dim() int { return 3 }

// Components returns X, Y and Z.
func (v Vec3) Components() []float64 { return []float64{v.X, v.Y, v.Z} }

// --- Generic helpers ---

// Add returns a+b.
func Add[V Vector[V]](a, b V) V { return a.Add(b) }

// Subtract returns a-b.
func Subtract[V Vector[V]](a, b V) V { return a.Sub(b) }

// Scale multiplies v by s. The scalar comes first, matching s·v.
func Scale[V Vector[V]](s float64, v V) V { return v.Scale(s) }

// Dot returns a·b.
func Dot[V Vector[V]](a, b V) float64 { return a.Dot(b) }

// Magnitude is the Euclidean length sqrt(v·v).
func Magnitude[V Vector[V]](v V) float64 {
	return math.Sqrt(v.Dot(v))
}

// Dimension reports the number of components of V.
func Dimension[V Vector[V]]() int {
	var zero V
	return zero.Dim()
}

// FromSlice builds a V from raw components, e.g. decoded from JSON.
func FromSlice[V Vector[V]](c []float64) (V, error) {
	var zero V
	if len(c) != zero.Dim() {
		return zero, fmt.Errorf("%w: got %d components, want %d", ErrDimension, len(c), zero.Dim())
	}
	var out any
	switch any(zero).(type) {
	case Vec2:
		out = Vec2{X: c[0], Y: c[1]}
	case Vec3:
		out = Vec3{X: c[0], Y: c[1], Z: c[2]}
	}
	return out.(V), nil
}
