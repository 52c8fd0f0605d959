package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Lemon9247/Orbit-Simulator/pkg/simulation"
	"github.com/Lemon9247/Orbit-Simulator/pkg/vecmath"
)

type config struct {
	envPath string
	preset  string
	seed    uint64
	ticks   uint64
	rate    int
	workers int
	report  uint64
	dump    string
	list    bool
	quiet   bool
	verbose bool
}

func parseFlags() *config {
	cfg := &config{}
	flag.StringVar(&cfg.envPath, "env", "", "JSON environment file to load")
	flag.StringVar(&cfg.preset, "preset", "four-body", "built-in scene when -env is not set")
	flag.Uint64Var(&cfg.seed, "seed", 1, "seed for random scenes and colours")
	flag.Uint64Var(&cfg.ticks, "ticks", 2400, "host ticks to run (0 = until interrupted)")
	flag.IntVar(&cfg.rate, "rate", -1, "ticks per second (0 = unthrottled, -1 = environment tick_rate)")
	flag.IntVar(&cfg.workers, "workers", 0, "goroutines for force/collision passes (0 = environment setting)")
	flag.Uint64Var(&cfg.report, "report", 240, "log a state report every N ticks (0 = off)")
	flag.StringVar(&cfg.dump, "dump", "", "write the final state as JSON to this file (- for stdout)")
	flag.BoolVar(&cfg.list, "list", false, "list built-in scenes and exit")
	flag.BoolVar(&cfg.quiet, "quiet", false, "no log output")
	flag.BoolVar(&cfg.verbose, "verbose", false, "log file:line and per-body state")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Orbit Simulator - headless n-body gravity with elastic collisions\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -preset planet -ticks 0\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -env scene.json -rate 0 -ticks 100000 -dump -\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nPresets: %s\n", strings.Join(simulation.PresetNames(), ", "))
	}
	flag.Parse()

	if err := validateFlags(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func validateFlags(cfg *config) error {
	if cfg.rate < -1 || cfg.rate > simulation.MaxTickRate {
		return fmt.Errorf("rate must be -1, 0 or positive up to %d", simulation.MaxTickRate)
	}
	if cfg.workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if cfg.quiet && cfg.verbose {
		return fmt.Errorf("-quiet and -verbose are exclusive")
	}
	return nil
}

func loadEnvironment(cfg *config) (*simulation.Environment, error) {
	var (
		env *simulation.Environment
		err error
	)
	if cfg.envPath != "" {
		env, err = simulation.LoadEnvironment(cfg.envPath)
	} else {
		env, err = simulation.Preset(cfg.preset, cfg.seed)
	}
	if err != nil {
		return nil, err
	}

	if cfg.rate >= 0 {
		env.TickRate = cfg.rate
	}
	if cfg.workers > 0 {
		env.Workers = cfg.workers
	}
	return env, nil
}

func main() {
	cfg := parseFlags()

	if cfg.quiet {
		log.SetOutput(io.Discard)
	} else if cfg.verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	if cfg.list {
		for _, name := range simulation.PresetNames() {
			fmt.Println(name)
		}
		return
	}

	env, err := loadEnvironment(cfg)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch env.Dimension() {
	case 2:
		err = run[vecmath.Vec2](ctx, env, cfg)
	case 3:
		err = run[vecmath.Vec3](ctx, env, cfg)
	default:
		err = fmt.Errorf("unsupported dimension %d", env.Dimension())
	}
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
}

func run[V vecmath.Vector[V]](ctx context.Context, env *simulation.Environment, cfg *config) error {
	sim, err := simulation.New[V](env)
	if err != nil {
		return err
	}

	rate := env.Rate()
	if cfg.rate == 0 {
		rate = 0
	}
	log.Printf("Loaded %q: %d bodies, %dD, dt=%g, G=%g, workers=%d",
		sim.Name, len(env.Bodies), env.Dimension(), env.Dt, env.Gravity(), env.WorkerCount())
	if rate > 0 {
		log.Printf("Running at %d ticks/s", rate)
	} else {
		log.Println("Running unthrottled")
	}
	report(sim, cfg.verbose)

	sim.SetSimulating(true)
	err = sim.Run(ctx, simulation.RunOptions{
		Rate:     rate,
		MaxTicks: cfg.ticks,
		OnTick: func(tick uint64) {
			if cfg.report > 0 && tick%cfg.report == 0 {
				report(sim, cfg.verbose)
			}
		},
	})
	switch {
	case errors.Is(err, context.Canceled):
		log.Println("Interrupted, stopping")
	case err != nil:
		return err
	}

	st := sim.Stats()
	log.Printf("Simulation completed:")
	log.Printf("  Ticks: %d", st.Ticks)
	log.Printf("  Simulated time: %.4f", st.Time)
	log.Printf("  Contacts: %d", st.Contacts)
	report(sim, cfg.verbose)

	if cfg.dump != "" {
		return dumpState(sim, cfg.dump)
	}
	return nil
}

func report[V vecmath.Vector[V]](sim *simulation.Simulator[V], verbose bool) {
	ke, pe := sim.Energy()
	st := sim.Stats()
	log.Printf("t=%.4f ticks=%d | E=%.6e (K=%.6e U=%.6e) | p=%v | contacts=%d",
		st.Time, st.Ticks, ke+pe, ke, pe, sim.Momentum().Components(), st.Contacts)

	if verbose {
		looks := sim.Appearance()
		for i, b := range sim.Bodies() {
			log.Printf("  %-10s %v", looks[i].Name, &b)
		}
	}
}

type bodyState struct {
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	Mass         float64   `json:"mass"`
	Radius       float64   `json:"radius"`
	Position     []float64 `json:"pos"`
	Velocity     []float64 `json:"vel"`
	Acceleration []float64 `json:"acc"`
}

type snapshot struct {
	Name   string      `json:"name"`
	Ticks  uint64      `json:"ticks"`
	Time   float64     `json:"time"`
	Bodies []bodyState `json:"bodies"`
}

func dumpState[V vecmath.Vector[V]](sim *simulation.Simulator[V], path string) error {
	st := sim.Stats()
	looks := sim.Appearance()
	snap := snapshot{Name: sim.Name, Ticks: st.Ticks, Time: st.Time}
	for i, b := range sim.Bodies() {
		snap.Bodies = append(snap.Bodies, bodyState{
			Name:         looks[i].Name,
			Color:        looks[i].Color.Hex(),
			Mass:         b.Mass(),
			Radius:       b.Radius(),
			Position:     b.Position().Components(),
			Velocity:     b.Velocity().Components(),
			Acceleration: b.Acceleration().Components(),
		})
	}

	out := io.Writer(os.Stdout)
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("dump state: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("dump state: %w", err)
	}
	return nil
}
