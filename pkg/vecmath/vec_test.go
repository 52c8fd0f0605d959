package vecmath

import (
	"errors"
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{X: 3, Y: 4}
	b := Vec2{X: -1, Y: 2}

	if got := Add(a, b); got != (Vec2{X: 2, Y: 6}) {
		t.Errorf("Add = %v, want {2 6}", got)
	}
	if got := Subtract(a, b); got != (Vec2{X: 4, Y: 2}) {
		t.Errorf("Subtract = %v, want {4 2}", got)
	}
	if got := Scale(2, a); got != (Vec2{X: 6, Y: 8}) {
		t.Errorf("Scale = %v, want {6 8}", got)
	}
	if got := Dot(a, b); got != 5 {
		t.Errorf("Dot = %v, want 5", got)
	}
	if got := Magnitude(a); got != 5 {
		t.Errorf("Magnitude = %v, want 5", got)
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 2}
	b := Vec3{X: 0, Y: -1, Z: 4}

	if got := Add(a, b); got != (Vec3{X: 1, Y: 1, Z: 6}) {
		t.Errorf("Add = %v, want {1 1 6}", got)
	}
	if got := Subtract(a, b); got != (Vec3{X: 1, Y: 3, Z: -2}) {
		t.Errorf("Subtract = %v, want {1 3 -2}", got)
	}
	if got := Scale(-0.5, a); got != (Vec3{X: -0.5, Y: -1, Z: -1}) {
		t.Errorf("Scale = %v, want {-0.5 -1 -1}", got)
	}
	if got := Dot(a, b); got != 6 {
		t.Errorf("Dot = %v, want 6", got)
	}
	if got := Magnitude(a); got != 3 {
		t.Errorf("Magnitude = %v, want 3", got)
	}
}

func TestMagnitudeZero(t *testing.T) {
	if got := Magnitude(Vec2{}); got != 0 {
		t.Errorf("Magnitude(0) = %v", got)
	}
	if got := Magnitude(Vec3{}); got != 0 {
		t.Errorf("Magnitude(0) = %v", got)
	}
}

func TestDimension(t *testing.T) {
	if d := Dimension[Vec2](); d != 2 {
		t.Errorf("Dimension[Vec2] = %d", d)
	}
	if d := Dimension[Vec3](); d != 3 {
		t.Errorf("Dimension[Vec3] = %d", d)
	}
}

func TestFromSlice(t *testing.T) {
	v2, err := FromSlice[Vec2]([]float64{1, 2})
	if err != nil || v2 != (Vec2{X: 1, Y: 2}) {
		t.Errorf("FromSlice[Vec2] = %v, %v", v2, err)
	}
	v3, err := FromSlice[Vec3]([]float64{1, 2, 3})
	if err != nil || v3 != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("FromSlice[Vec3] = %v, %v", v3, err)
	}

	tests := []struct {
		name string
		in   []float64
	}{
		{"empty", nil},
		{"short", []float64{1}},
		{"long", []float64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromSlice[Vec2](tt.in); !errors.Is(err, ErrDimension) {
				t.Errorf("FromSlice[Vec2](%v) err = %v, want ErrDimension", tt.in, err)
			}
		})
	}
}

func TestComponentsRoundTrip(t *testing.T) {
	v := Vec3{X: math.Pi, Y: -2, Z: 1e-9}
	back, err := FromSlice[Vec3](v.Components())
	if err != nil {
		t.Fatal(err)
	}
	if back != v {
		t.Errorf("round trip = %v, want %v", back, v)
	}
}
