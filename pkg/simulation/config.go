package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/rand"

	"github.com/Lemon9247/Orbit-Simulator/pkg/physics"
)

// ErrInvalidEnvironment wraps every validation failure of an Environment.
var ErrInvalidEnvironment = errors.New("invalid environment")

// Defaults applied to fields left out of an environment file.
const (
	DefaultTickRate = 240
	DefaultWorkers  = 1
)

// MaxTickRate is the highest tick rate a ticker can serve: one tick per
// nanosecond.
const MaxTickRate = int(time.Second)

// --- Environment file ---

// Environment describes a scene: the integration constants and the initial
// bodies. It is the JSON document read by LoadEnvironment.
type Environment struct {
	Name        string       `json:"name"`
	Dt          float64      `json:"dt"`
	G           *float64     `json:"g,omitempty"`
	Epsilon     float64      `json:"epsilon,omitempty"`
	RadiusScale float64      `json:"radius_scale,omitempty"`
	TickRate    int          `json:"tick_rate,omitempty"`
	Workers     int          `json:"workers,omitempty"`
	AutoOrbit   bool         `json:"auto_orbit,omitempty"`
	Seed        uint64       `json:"seed,omitempty"`
	Bodies      []BodyConfig `json:"bodies"`
}

// BodyConfig is one body of an environment file. Vel may be omitted for a
// body at rest.
type BodyConfig struct {
	Name  string    `json:"name,omitempty"`
	Mass  float64   `json:"mass"`
	Pos   []float64 `json:"pos"`
	Vel   []float64 `json:"vel,omitempty"`
	Color string    `json:"color,omitempty"` // #rrggbb
}

// Appearance is what an external renderer needs besides the body state.
// It has no effect on the physics.
type Appearance struct {
	Name  string
	Color colorful.Color
}

// LoadEnvironment reads a JSON environment file.
func LoadEnvironment(path string) (*Environment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	defer f.Close()

	env, err := ParseEnvironment(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return env, nil
}

// ParseEnvironment decodes and validates an environment document.
func ParseEnvironment(r io.Reader) (*Environment, error) {
	var env Environment
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

// Gravity returns the configured gravitational constant or physics.DefaultG.
func (e *Environment) Gravity() float64 {
	if e.G == nil {
		return physics.DefaultG
	}
	return *e.G
}

// Rate returns the host tick rate or DefaultTickRate.
func (e *Environment) Rate() int {
	if e.TickRate == 0 {
		return DefaultTickRate
	}
	return e.TickRate
}

// WorkerCount returns the goroutine count for the integrator or DefaultWorkers.
func (e *Environment) WorkerCount() int {
	if e.Workers == 0 {
		return DefaultWorkers
	}
	return e.Workers
}

// Dimension is the vector length shared by every body, 2 or 3.
// It is 0 for an empty environment.
func (e *Environment) Dimension() int {
	if len(e.Bodies) == 0 {
		return 0
	}
	return len(e.Bodies[0].Pos)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidEnvironment, fmt.Sprintf(format, args...))
}

// Validate checks the constants and every body. Masses are checked here
// so a bad scene fails before any body is built.
func (e *Environment) Validate() error {
	if !(e.Dt > 0) || math.IsInf(e.Dt, 1) {
		return invalid("dt must be positive, got %v", e.Dt)
	}
	if g := e.Gravity(); math.IsNaN(g) || math.IsInf(g, 0) {
		return invalid("g must be finite, got %v", g)
	} else if e.AutoOrbit && g < 0 {
		return invalid("auto_orbit needs a non-negative g, got %v", g)
	}
	if !(e.Epsilon >= 0) || math.IsInf(e.Epsilon, 1) {
		return invalid("epsilon must be finite and not negative, got %v", e.Epsilon)
	}
	if !(e.RadiusScale >= 0) || math.IsInf(e.RadiusScale, 1) {
		return invalid("radius_scale must be finite and not negative, got %v", e.RadiusScale)
	}
	if e.TickRate < 0 || e.TickRate > MaxTickRate {
		return invalid("tick_rate must be between 0 and %d, got %d", MaxTickRate, e.TickRate)
	}
	if e.Workers < 0 {
		return invalid("workers must not be negative, got %d", e.Workers)
	}
	if len(e.Bodies) == 0 {
		return invalid("no bodies")
	}

	dim := e.Dimension()
	if dim != 2 && dim != 3 {
		return invalid("body 0: position needs 2 or 3 components, got %d", dim)
	}
	for i, b := range e.Bodies {
		if !(b.Mass > 0) || math.IsInf(b.Mass, 1) {
			return invalid("body %d: %v: %v", i, physics.ErrInvalidMass, b.Mass)
		}
		if len(b.Pos) != dim {
			return invalid("body %d: position has %d components, want %d", i, len(b.Pos), dim)
		}
		if b.Vel != nil && len(b.Vel) != dim {
			return invalid("body %d: velocity has %d components, want %d", i, len(b.Vel), dim)
		}
		if b.Color != "" {
			if _, err := colorful.Hex(b.Color); err != nil {
				return invalid("body %d: color %q: %v", i, b.Color, err)
			}
		}
	}
	return nil
}

// --- Initial conditions ---

// initialBodies returns a copy of the bodies with missing velocities filled in
// and, for AutoOrbit, circular orbits set up around the first body.
func (e *Environment) initialBodies() []BodyConfig {
	dim := e.Dimension()
	bodies := make([]BodyConfig, len(e.Bodies))
	for i, b := range e.Bodies {
		b.Pos = append([]float64(nil), b.Pos...)
		if b.Vel == nil {
			b.Vel = make([]float64, dim)
		} else {
			b.Vel = append([]float64(nil), b.Vel...)
		}
		bodies[i] = b
	}
	if e.AutoOrbit {
		SetOrbitalVelocities(bodies, e.Gravity())
	}
	return bodies
}

// SetOrbitalVelocities gives every body after the first that is at rest the
// circular orbit speed sqrt(G*M/r) around body 0. The velocity lies in the XY
// plane, perpendicular to the offset from the central body. Bodies with no
// real orbit speed (G*M/r negative or NaN) are left at rest.
func SetOrbitalVelocities(bodies []BodyConfig, g float64) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	for i := 1; i < len(bodies); i++ {
		if !atRest(bodies[i].Vel) {
			continue
		}

		dx := bodies[i].Pos[0] - central.Pos[0]
		dy := bodies[i].Pos[1] - central.Pos[1]
		r2 := dx*dx + dy*dy
		for k := 2; k < len(bodies[i].Pos); k++ {
			dz := bodies[i].Pos[k] - central.Pos[k]
			r2 += dz * dz
		}
		planar := math.Hypot(dx, dy)
		if planar == 0 {
			continue
		}
		vsq := g * central.Mass / math.Sqrt(r2)
		if !(vsq >= 0) {
			continue
		}
		v := math.Sqrt(vsq)

		vel := make([]float64, len(bodies[i].Pos))
		vel[0] = -dy / planar * v
		vel[1] = dx / planar * v
		bodies[i].Vel = vel
	}
}

func atRest(vel []float64) bool {
	for _, c := range vel {
		if c != 0 {
			return false
		}
	}
	return true
}

// appearances resolves body colours. Bodies without one get a random hue from
// a source seeded by the environment, so a scene always looks the same.
func (e *Environment) appearances() []Appearance {
	rnd := rand.New(rand.NewSource(e.Seed))
	out := make([]Appearance, len(e.Bodies))
	for i, b := range e.Bodies {
		out[i].Name = b.Name
		if out[i].Name == "" {
			out[i].Name = fmt.Sprintf("body-%d", i)
		}
		if c, err := colorful.Hex(b.Color); err == nil {
			out[i].Color = c
		} else {
			out[i].Color = colorful.Hsv(360*rnd.Float64(), 0.6, 0.95)
		}
	}
	return out
}
