package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/quartercastle/vector"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/gravity-particles/db"
	"github.com/suxatcode/gravity-particles/db/postgres"
	"github.com/suxatcode/gravity-particles/gravity"
	"github.com/suxatcode/gravity-particles/internal/controller"
	"github.com/suxatcode/gravity-particles/population"
	"golang.org/x/exp/rand"
)

type Config struct {
	Production bool `env:"PRODUCTION" envDefault:"false"`
	// Levels are {trace, debug, info, warn, error, fatal, panic}.
	// See github.com/rs/zerolog@v1.19.0/log.go for possible values.
	LogLevel string `env:"LOGLEVEL" envDefault:"debug"`
	// HTTP timeouts (read and write)
	HTTPTimeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
	Port        string        `env:"PORT" envDefault:"8080"`

	StepInterval time.Duration `env:"STEP_INTERVAL" envDefault:"50ms"`
	RecordEvery  int           `env:"RECORD_EVERY" envDefault:"10"`
	// SampleInterval is the number of rendered frames between two
	// measurements of the color gradient.
	SampleInterval int `env:"SAMPLE_INTERVAL" envDefault:"1"`

	// Scenario is a scenario file. If set, it replaces the default galaxy
	// and all simulation settings below.
	Scenario  string  `env:"SCENARIO" envDefault:""`
	WorldSize float64 `env:"WORLD_SIZE" envDefault:"1000"`
	Theta     float64 `env:"THETA" envDefault:"0.5"`
	G         float64 `env:"GRAVITY" envDefault:"1"`
	Softening float64 `env:"SOFTENING" envDefault:"0.01"`
	Stars     int     `env:"STARS" envDefault:"1000"`
	Seed      int64   `env:"SEED" envDefault:"1"`
}

func GetEnvConfig() Config {
	conf := Config{}
	env.Parse(&conf)
	return conf
}

func RetryAtIntervals(fn func() error, intervals []time.Duration) {
	var err error
	err = fn()
	i := 0
	for err != nil {
		time.Sleep(intervals[i])
		if i < len(intervals)-1 {
			i++
		}
		err = fn()
	}
}

// connectDB keeps statistics in memory if no postgres host is configured.
func connectDB(conf db.Config) db.DB {
	if conf.PGHost == "" {
		log.Info().Msg("PG_HOST not set, recording statistics in memory")
		return db.NewMemoryDB()
	}
	var (
		backend db.DB
		err     error
	)
	RetryAtIntervals(func() error {
		backend, err = postgres.NewPostgresDB(conf)
		if err != nil {
			log.Error().Msgf("failed to connect to DB: %v", err)
		}
		return err
	}, []time.Duration{
		1 * time.Second,
		5 * time.Second,
		5 * time.Second,
		10 * time.Second,
	})
	return backend
}

// defaultPopulation is a single galaxy in the center of the world.
func defaultPopulation(conf Config) (*gravity.Particles, gravity.SimulationConfig) {
	simconf := gravity.SimulationConfig{
		World:     gravity.Rect{Width: conf.WorldSize, Height: conf.WorldSize},
		G:         conf.G,
		Softening: conf.Softening,
		Theta:     conf.Theta,
	}.ApplyDefaults()
	p := gravity.NewParticles(conf.Stars + 1)
	galaxy := population.Galaxy{
		Center:   simconf.World.Center(),
		Velocity: vector.Vector{0, 0},
		Radius:   simconf.World.Width / 4,
		SunMass:  float64(conf.Stars) * 10,
		StarMass: 1,
		Stars:    conf.Stars,
	}
	galaxy.Populate(rand.New(rand.NewSource(uint64(conf.Seed))), p, simconf.G)
	return p, simconf
}

// NewSimulation builds the simulation from the scenario file, or the
// default galaxy if none is configured. The name identifies the run.
func NewSimulation(conf Config) (sim *gravity.Simulation, name string, err error) {
	var (
		p       *gravity.Particles
		simconf gravity.SimulationConfig
	)
	if conf.Scenario != "" {
		scenario, err := population.ReadScenario(conf.Scenario)
		if err != nil {
			return nil, "", err
		}
		p, simconf, err = scenario.Build()
		if err != nil {
			return nil, "", err
		}
		name = conf.Scenario
	} else {
		p, simconf = defaultPopulation(conf)
		name = "galaxy"
	}
	sim, err = gravity.NewSimulation(simconf, p)
	if err != nil {
		return nil, "", err
	}
	return sim, name, nil
}

func serverHandler(conf Config, dbconf db.Config) (http.Handler, *controller.Controller, error) {
	backend := connectDB(dbconf)
	sim, name, err := NewSimulation(conf)
	if err != nil {
		return nil, nil, err
	}
	ctrl := controller.NewController(backend, sim, conf.RecordEvery, conf.SampleInterval)
	ctx := log.Logger.WithContext(context.Background())
	if _, err := ctrl.StartRun(ctx, name, sim.Particles().Len()); err != nil {
		return nil, nil, err
	}
	go ctrl.PeriodicSimulation(ctx, conf.StepInterval)
	return NewHandler(ctrl, sim.Config().World), ctrl, nil
}

func setupLogging(conf Config) {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		println("failed to parse LogLevel: '" + conf.LogLevel + "', setting to debug")
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if !conf.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// Run serves the simulation until the server fails.
func Run() {
	conf := GetEnvConfig()
	setupLogging(conf)
	dbconf := db.GetEnvConfig()
	log.Info().Msgf("Config: %#v", conf)
	handler, _, err := serverHandler(conf, dbconf)
	if err != nil {
		log.Fatal().Msgf("failed to set up simulation: %v", err)
	}
	server := http.Server{
		Addr:         ":" + conf.Port,
		Handler:      handler,
		ReadTimeout:  conf.HTTPTimeout,
		WriteTimeout: conf.HTTPTimeout,
	}
	log.Info().Msgf("connect to http://0.0.0.0:%s/frame.png to watch the simulation", conf.Port)
	log.Fatal().Msgf("ListenAndServe: %s", server.ListenAndServe())
}
