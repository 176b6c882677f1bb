package population

import (
	"encoding/json"
	"io"
	"os"

	"github.com/phil-mansfield/table"
	"github.com/pkg/errors"
	"github.com/quartercastle/vector"
	"github.com/suxatcode/gravity-particles/gravity"
)

// File is the JSON representation of a population.
type File struct {
	Particles []gravity.ParticleState `json:"particles"`
}

func ReadJSON(r io.Reader) ([]gravity.ParticleState, error) {
	file := File{}
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(err, "failed to decode population")
	}
	return file.Particles, nil
}

func WriteJSON(w io.Writer, states []gravity.ParticleState) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(File{Particles: states})
}

// LoadJSON reads a population from a JSON file.
func LoadJSON(filename string) ([]gravity.ParticleState, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	states, err := ReadJSON(file)
	return states, errors.Wrapf(err, "file '%s'", filename)
}

// Table columns, in order: x y vx vy mass radius.
var tableColumns = []int{0, 1, 2, 3, 4, 5}

// ReadTable reads a whitespace separated text table with one particle per
// row. Positions are shifted by offset and ids are assigned from firstID
// on.
func ReadTable(filename string, offset vector.Vector, firstID int) ([]gravity.ParticleState, error) {
	cols, err := table.ReadTable(filename, tableColumns, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read table '%s'", filename)
	}
	offset = orZero(offset)
	xs, ys, vxs, vys, ms, rs := cols[0], cols[1], cols[2], cols[3], cols[4], cols[5]
	states := make([]gravity.ParticleState, len(xs))
	for i := range states {
		states[i] = gravity.ParticleState{
			ID:     firstID + i,
			Pos:    vector.Vector{xs[i] + offset.X(), ys[i] + offset.Y()},
			Vel:    vector.Vector{vxs[i], vys[i]},
			Mass:   ms[i],
			Radius: rs[i],
		}
	}
	return states, nil
}
