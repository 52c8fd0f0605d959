package simulation

import (
	"fmt"
	"sync/atomic"

	"github.com/Lemon9247/Orbit-Simulator/pkg/physics"
	"github.com/Lemon9247/Orbit-Simulator/pkg/vecmath"
)

// --- Simulator ---

// Simulator owns the simulation state of one environment. All body mutation
// happens inside AdvanceTick/Step; the host only toggles the run flag and
// reads bodies between ticks.
type Simulator[V vecmath.Vector[V]] struct {
	Name string

	env        *Environment
	integrator physics.Integrator[V]
	bodies     []*physics.Body[V]
	looks      []Appearance
	simulating atomic.Bool
	stats      Stats
}

// Stats counts work done since the last (re)initialisation.
type Stats struct {
	Ticks    uint64  // passes actually run
	Contacts uint64  // touching pairs summed over all passes
	Time     float64 // simulated time
}

// New builds the bodies of env and primes the integrator. The simulator
// starts paused. V must match the dimension of env.
func New[V vecmath.Vector[V]](env *Environment) (*Simulator[V], error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	if want := vecmath.Dimension[V](); env.Dimension() != want {
		return nil, invalid("environment is %dD, simulator is %dD", env.Dimension(), want)
	}

	s := &Simulator[V]{
		Name: env.Name,
		env:  env,
		integrator: physics.Integrator[V]{
			G:       env.Gravity(),
			Dt:      env.Dt,
			Epsilon: env.Epsilon,
			Workers: env.WorkerCount(),
		},
		looks: env.appearances(),
	}
	if err := s.initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulator[V]) initialize() error {
	configs := s.env.initialBodies()
	bodies := make([]*physics.Body[V], len(configs))
	for i, c := range configs {
		pos, err := vecmath.FromSlice[V](c.Pos)
		if err != nil {
			return fmt.Errorf("body %d position: %w", i, err)
		}
		vel, err := vecmath.FromSlice[V](c.Vel)
		if err != nil {
			return fmt.Errorf("body %d velocity: %w", i, err)
		}
		b, err := physics.NewBody(c.Mass, pos, vel, s.env.RadiusScale)
		if err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
		bodies[i] = b
	}

	s.integrator.Prime(bodies)
	s.bodies = bodies
	s.stats = Stats{}
	return nil
}

// Reset rebuilds the initial bodies of the environment. The run flag is kept.
func (s *Simulator[V]) Reset() error {
	return s.initialize()
}

// AdvanceTick runs one integration and collision pass while simulating and
// does nothing otherwise.
func (s *Simulator[V]) AdvanceTick() {
	if !s.simulating.Load() {
		return
	}
	s.Step()
}

// Step runs one pass regardless of the run flag.
func (s *Simulator[V]) Step() {
	s.integrator.Step(s.bodies)
	contacts := s.integrator.Collide(s.bodies)

	s.stats.Ticks++
	s.stats.Contacts += uint64(contacts)
	s.stats.Time += s.integrator.Dt
}

// SetSimulating toggles the run flag. Safe to call from any goroutine.
func (s *Simulator[V]) SetSimulating(on bool) { s.simulating.Store(on) }

func (s *Simulator[V]) Simulating() bool { return s.simulating.Load() }

// Bodies returns a copy of every body in insertion order.
func (s *Simulator[V]) Bodies() []physics.Body[V] {
	out := make([]physics.Body[V], len(s.bodies))
	for i, b := range s.bodies {
		out[i] = *b
	}
	return out
}

// Appearance returns names and colours, index aligned with Bodies.
func (s *Simulator[V]) Appearance() []Appearance {
	return append([]Appearance(nil), s.looks...)
}

func (s *Simulator[V]) Stats() Stats { return s.stats }

func (s *Simulator[V]) Dt() float64 { return s.integrator.Dt }

// Energy returns the kinetic and potential energy of the current state.
// Velocities sit half a step behind positions, so the sum oscillates slightly.
func (s *Simulator[V]) Energy() (kinetic, potential float64) {
	return physics.KineticEnergy(s.bodies), physics.PotentialEnergy(s.bodies, s.integrator.G, s.integrator.Epsilon)
}

func (s *Simulator[V]) Momentum() V { return physics.Momentum(s.bodies) }
