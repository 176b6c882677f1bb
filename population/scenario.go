package population

import (
	"github.com/pkg/errors"
	"github.com/quartercastle/vector"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/gravity-particles/gravity"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
	"gopkg.in/gcfg.v1"
)

// SimulationSection is the [Simulation] section of a scenario file. Zero
// values select the simulation defaults.
type SimulationSection struct {
	WorldX, WorldY          float64
	WorldWidth, WorldHeight float64

	G, Softening, Theta float64
	TimeStep            float64
	BatchWidth          int
	MaxDepth            int
	Parallelization     int
	DirectionNorm       string
	ExtremumField       string
	SortByMass          bool

	// Seed of the generators; scenarios with equal seeds produce equal
	// populations.
	Seed int64
}

type GalaxySection struct {
	X, Y     float64
	VX, VY   float64
	Radius   float64
	SunMass  float64
	StarMass float64
	Stars    int
}

type CircleSection struct {
	X, Y   float64
	Radius float64
	Mass   float64
	Amount int
}

type SquareSection struct {
	X, Y           float64
	Side           float64
	Mass           float64
	VX, VY         float64
	VelocitySpread float64
	Amount         int
}

type TableSection struct {
	Path             string
	OffsetX, OffsetY float64
}

// Scenario describes a simulation setup in INI format, e.g.
//
//	[Simulation]
//	WorldWidth = 2000
//	WorldHeight = 2000
//	Seed = 42
//
//	[Galaxy "milky way"]
//	X = 1000
//	Y = 1000
//	Radius = 300
//	SunMass = 100000
//	StarMass = 1
//	Stars = 5000
type Scenario struct {
	Simulation SimulationSection
	Galaxy     map[string]*GalaxySection
	Circle     map[string]*CircleSection
	Square     map[string]*SquareSection
	Table      map[string]*TableSection
}

func ReadScenario(filename string) (*Scenario, error) {
	s := Scenario{}
	if err := gcfg.ReadFileInto(&s, filename); err != nil {
		return nil, errors.Wrapf(err, "failed to read scenario '%s'", filename)
	}
	return &s, nil
}

func ParseScenario(str string) (*Scenario, error) {
	s := Scenario{}
	if err := gcfg.ReadStringInto(&s, str); err != nil {
		return nil, errors.Wrap(err, "failed to parse scenario")
	}
	return &s, nil
}

// SimulationConfig converts the [Simulation] section.
func (s *Scenario) SimulationConfig() (gravity.SimulationConfig, error) {
	sec := s.Simulation
	norm, ok := gravity.ParseDirectionNorm(sec.DirectionNorm)
	if !ok {
		return gravity.SimulationConfig{}, errors.Errorf("unknown DirectionNorm '%s'", sec.DirectionNorm)
	}
	field, ok := gravity.ParseField(sec.ExtremumField)
	if !ok {
		return gravity.SimulationConfig{}, errors.Errorf("unknown ExtremumField '%s'", sec.ExtremumField)
	}
	conf := gravity.SimulationConfig{
		World: gravity.Rect{
			X:      sec.WorldX,
			Y:      sec.WorldY,
			Width:  sec.WorldWidth,
			Height: sec.WorldHeight,
		},
		G:               sec.G,
		Softening:       sec.Softening,
		Theta:           sec.Theta,
		TimeStep:        sec.TimeStep,
		BatchWidth:      sec.BatchWidth,
		MaxDepth:        sec.MaxDepth,
		Parallelization: sec.Parallelization,
		DirectionNorm:   norm,
		ExtremumField:   field,
		SortByMass:      sec.SortByMass,
	}.ApplyDefaults()
	return conf, conf.Validate()
}

// generators returns the generator sections sorted by kind and name, so
// that Build is deterministic.
func (s *Scenario) generators() ([]Generator, error) {
	gens := []Generator{}
	for _, name := range sortedKeys(s.Galaxy) {
		sec := s.Galaxy[name]
		if sec.Radius <= 0 || sec.Stars < 0 {
			return nil, errors.Errorf("Galaxy '%s': Radius must be positive and Stars not negative", name)
		}
		gens = append(gens, Galaxy{
			Center:   vector.Vector{sec.X, sec.Y},
			Velocity: vector.Vector{sec.VX, sec.VY},
			Radius:   sec.Radius,
			SunMass:  sec.SunMass,
			StarMass: sec.StarMass,
			Stars:    sec.Stars,
		})
	}
	for _, name := range sortedKeys(s.Circle) {
		sec := s.Circle[name]
		if sec.Radius <= 0 || sec.Amount < 0 {
			return nil, errors.Errorf("Circle '%s': Radius must be positive and Amount not negative", name)
		}
		gens = append(gens, Circle{
			Center: vector.Vector{sec.X, sec.Y},
			Radius: sec.Radius,
			Mass:   sec.Mass,
			Amount: sec.Amount,
		})
	}
	for _, name := range sortedKeys(s.Square) {
		sec := s.Square[name]
		if sec.Side <= 0 || sec.Amount < 0 {
			return nil, errors.Errorf("Square '%s': Side must be positive and Amount not negative", name)
		}
		gens = append(gens, Square{
			Center:         vector.Vector{sec.X, sec.Y},
			Side:           sec.Side,
			Mass:           sec.Mass,
			Velocity:       vector.Vector{sec.VX, sec.VY},
			VelocitySpread: sec.VelocitySpread,
			Amount:         sec.Amount,
		})
	}
	return gens, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Build creates the population and the simulation config of the
// scenario. Tables are appended after all generators.
func (s *Scenario) Build() (*gravity.Particles, gravity.SimulationConfig, error) {
	conf, err := s.SimulationConfig()
	if err != nil {
		return nil, conf, err
	}
	gens, err := s.generators()
	if err != nil {
		return nil, conf, err
	}
	rnd := rand.New(rand.NewSource(uint64(s.Simulation.Seed)))
	p := gravity.NewParticles(0)
	for _, gen := range gens {
		gen.Populate(rnd, p, conf.G)
	}
	for _, name := range sortedKeys(s.Table) {
		sec := s.Table[name]
		states, err := ReadTable(sec.Path, vector.Vector{sec.OffsetX, sec.OffsetY}, nextID(p))
		if err != nil {
			return nil, conf, errors.Wrapf(err, "Table '%s'", name)
		}
		for _, st := range states {
			p.Add(st.Pos, st.Vel, st.Mass, st.Radius, st.ID)
		}
	}
	log.Debug().Int("particles", p.Len()).Int("generators", len(gens)).Int("tables", len(s.Table)).Msg("scenario built")
	return p, conf, nil
}
