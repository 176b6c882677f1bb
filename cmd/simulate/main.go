/*
 * simulate runs a scenario headless for a fixed number of steps and writes
 * the final particles as json to stdout
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/gravity-particles/gravity"
	"github.com/suxatcode/gravity-particles/population"
)

type options struct {
	scenario, input  string
	output           string
	steps            int
	frames           string
	frameEvery       int
	sampleEvery      int
	exactCheck       int
	sortByMass, tree bool
	logLevel         string
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	flags := flag.NewFlagSet("simulate", flag.ContinueOnError)
	flags.StringVar(&opts.scenario, "scenario", "", "scenario file to build the population from")
	flags.StringVar(&opts.input, "in", "", "json particle file, used with the default simulation config")
	flags.StringVar(&opts.output, "out", "-", "file for the final particles, - for stdout")
	flags.IntVar(&opts.steps, "steps", 100, "number of steps")
	flags.StringVar(&opts.frames, "frames", "", "directory to write png frames to, empty disables frames")
	flags.IntVar(&opts.frameEvery, "frame-every", 1, "steps between two frames")
	flags.IntVar(&opts.sampleEvery, "sample-every", 1, "frames between two measurements of the color gradient")
	flags.BoolVar(&opts.tree, "frame-tree", false, "outline the quadtree in frames")
	flags.IntVar(&opts.exactCheck, "exact-check", 0, "compare the tree force of this many particles against the exact sum")
	flags.BoolVar(&opts.sortByMass, "sort-by-mass", false, "sort the particles by mass before the first step")
	flags.StringVar(&opts.logLevel, "log", "info", "log level")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if (opts.scenario == "") == (opts.input == "") {
		return nil, errors.New("exactly one of -scenario and -in is required")
	}
	if opts.steps < 0 {
		return nil, errors.New("-steps must not be negative")
	}
	if opts.frameEvery <= 0 || opts.sampleEvery <= 0 {
		return nil, errors.New("-frame-every and -sample-every must be positive")
	}
	return opts, nil
}

func load(opts *options) (*gravity.Particles, gravity.SimulationConfig, error) {
	if opts.scenario != "" {
		scenario, err := population.ReadScenario(opts.scenario)
		if err != nil {
			return nil, gravity.SimulationConfig{}, err
		}
		return scenario.Build()
	}
	states, err := population.LoadJSON(opts.input)
	if err != nil {
		return nil, gravity.SimulationConfig{}, err
	}
	return gravity.NewParticlesFromStates(states), gravity.DefaultSimulationConfig, nil
}

func writeParticles(filename string, p *gravity.Particles) error {
	states := p.States(nil)
	if filename == "-" {
		return population.WriteJSON(os.Stdout, states)
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return population.WriteJSON(file, states)
}

func run(ctx context.Context, opts *options) error {
	p, conf, err := load(opts)
	if err != nil {
		return err
	}
	conf.SortByMass = conf.SortByMass || opts.sortByMass
	sim, err := gravity.NewSimulation(conf, p)
	if err != nil {
		return err
	}
	log.Info().Int("particles", p.Len()).Msgf("Config: %+v", sim.Config())
	frameConf := gravity.DefaultFrameConfig
	frameConf.Viewport = sim.Config().World
	frameConf.Height = int(float64(frameConf.Width) * frameConf.Viewport.Height / frameConf.Viewport.Width)
	frameConf.DrawTree = opts.tree
	gradient := &gravity.GradientRange{Field: sim.Config().ExtremumField, SampleInterval: opts.sampleEvery}
	for i := 0; i < opts.steps; i++ {
		if ctx.Err() != nil {
			log.Warn().Msgf("interrupted after %d steps", i)
			break
		}
		stats := sim.Step()
		log.Debug().Msgf("Stats: %+v", stats)
		if opts.frames != "" && stats.Step%opts.frameEvery == 0 {
			filename := filepath.Join(opts.frames, fmt.Sprintf("frame%05d.png", stats.Step))
			if err := gravity.SaveFrame(filename, sim, frameConf, gradient); err != nil {
				return err
			}
		}
	}
	min, max := sim.Extrema()
	log.Info().Int("steps", sim.Steps()).Float64("min", min).Float64("max", max).Msgf("%s extrema", sim.Config().ExtremumField)
	if opts.exactCheck > 0 {
		res := exactCheck(sim, opts.exactCheck)
		log.Info().Int("checked", res.Checked).Float64("total", res.RelErr).Float64("max", res.MaxRelErr).Msg("relative force error against exact sum")
	}
	return writeParticles(opts.output, sim.Particles())
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal().Msgf("%v", err)
	}
	level, err := zerolog.ParseLevel(opts.logLevel)
	if err != nil {
		log.Fatal().Msgf("%v", err)
	}
	zerolog.SetGlobalLevel(level)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, opts); err != nil {
		log.Fatal().Msgf("%v", err)
	}
}
