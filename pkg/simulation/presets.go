package simulation

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
)

var ErrUnknownPreset = errors.New("unknown preset")

func ptr(v float64) *float64 { return &v }

var presets = map[string]func(seed uint64) *Environment{
	// Four equal masses on a cross, each moving tangentially.
	"four-body": func(seed uint64) *Environment {
		return &Environment{
			Name: "four-body",
			Dt:   1.0 / 240,
			G:    ptr(66.7),
			Seed: seed,
			Bodies: []BodyConfig{
				{Name: "west", Mass: 10000, Pos: []float64{100, 300}, Vel: []float64{0, -20}},
				{Name: "east", Mass: 10000, Pos: []float64{500, 300}, Vel: []float64{0, 20}},
				{Name: "north", Mass: 10000, Pos: []float64{300, 100}, Vel: []float64{20, 0}},
				{Name: "south", Mass: 10000, Pos: []float64{300, 500}, Vel: []float64{-20, 0}},
			},
		}
	},
	"binary": func(seed uint64) *Environment {
		return &Environment{
			Name: "binary",
			Dt:   1.0 / 240,
			G:    ptr(66.7),
			Seed: seed,
			Bodies: []BodyConfig{
				{Name: "a", Mass: 10000, Pos: []float64{100, 300}, Vel: []float64{0, -20}},
				{Name: "b", Mass: 10000, Pos: []float64{500, 300}, Vel: []float64{0, 0}},
			},
		}
	},
	// A light planet on a near circular orbit around a heavy star.
	"planet": func(seed uint64) *Environment {
		return &Environment{
			Name: "planet",
			Dt:   1.0 / 240,
			G:    ptr(66.7),
			Seed: seed,
			Bodies: []BodyConfig{
				{Name: "planet", Mass: 10, Pos: []float64{300, 200}, Vel: []float64{81.670, 0}, Color: "#3366ff"},
				{Name: "star", Mass: 10000, Pos: []float64{300, 300}, Color: "#ffcc00"},
			},
		}
	},
	// 5x5 light bodies on a jittered grid, starting at rest.
	"grid": func(seed uint64) *Environment {
		rnd := rand.New(rand.NewSource(seed))
		env := &Environment{
			Name: "grid",
			Dt:   1.0 / 240,
			G:    ptr(66.7),
			Seed: seed,
		}
		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				x := 100 + 100*float64(i) + float64(rnd.Intn(101)-50)
				y := 100 + 100*float64(j) + float64(rnd.Intn(101)-50)
				env.Bodies = append(env.Bodies, BodyConfig{
					Name: fmt.Sprintf("grid-%d-%d", i, j),
					Mass: 10,
					Pos:  []float64{x, y},
				})
			}
		}
		return env
	},
	"cluster-3d": func(seed uint64) *Environment {
		return &Environment{
			Name: "cluster-3d",
			Dt:   0.001,
			G:    ptr(66.7),
			Seed: seed,
			Bodies: []BodyConfig{
				{Name: "comet", Mass: 10, Pos: []float64{0, 0, 80}, Vel: []float64{-100, 20, 0}},
				{Name: "sun", Mass: 10000, Pos: []float64{0, 0, 0}},
				{Name: "giant", Mass: 500, Pos: []float64{0, -40, 0}, Vel: []float64{150, 0, 0}},
				{Name: "moon", Mass: 20, Pos: []float64{0, 40, 0}, Vel: []float64{0, -10, 0}},
			},
		}
	},
}

// Preset returns a fresh copy of a built-in scene. seed only matters for
// scenes with random placement and for default colours.
func Preset(name string, seed uint64) (*Environment, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(seed), nil
}

// PresetNames lists the built-in scenes in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
