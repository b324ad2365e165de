package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/fwdeuler/internal/dynamo"
	"github.com/san-kum/fwdeuler/internal/integrators"
)

var ErrMalformedTrajectory = errors.New("storage: malformed trajectory")

// WriteCSV writes one row per time point: time, x0, x1, ...
// Values are written with full precision so a trajectory reads back exactly.
func WriteCSV(w io.Writer, sol *integrators.Solution) error {
	cw := csv.NewWriter(w)

	header := []string{"time"}
	for i := 0; i < sol.Dim; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, sol.Dim+1)
	for n := range sol.T {
		row[0] = strconv.FormatFloat(sol.T[n], 'g', -1, 64)
		for i, val := range sol.U[n] {
			row[i+1] = strconv.FormatFloat(val, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a trajectory written by WriteCSV. Dt is recovered from the
// first two time points.
func ReadCSV(r io.Reader) (*integrators.Solution, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: no data rows", ErrMalformedTrajectory)
	}

	dim := len(records[0]) - 1
	if dim < 1 {
		return nil, fmt.Errorf("%w: no state columns", ErrMalformedTrajectory)
	}

	sol := &integrators.Solution{
		T:   make([]float64, 0, len(records)-1),
		U:   make([]dynamo.State, 0, len(records)-1),
		Dim: dim,
	}
	for i, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedTrajectory, i+1, err)
		}
		u := make(dynamo.State, dim)
		for j := range u {
			if u[j], err = strconv.ParseFloat(record[j+1], 64); err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedTrajectory, i+1, err)
			}
		}
		sol.T = append(sol.T, t)
		sol.U = append(sol.U, u)
	}
	if len(sol.T) > 1 {
		sol.Dt = sol.T[1] - sol.T[0]
	}
	return sol, nil
}

// ExportData is the JSON export layout. Non-finite values in a diverged run
// are encoded as the strings "NaN", "+Inf" and "-Inf".
type ExportData struct {
	ID      string           `json:"id"`
	Model   string           `json:"model"`
	T0      float64          `json:"t0"`
	TEnd    float64          `json:"t_end"`
	Dt      float64          `json:"dt"`
	Steps   int              `json:"steps"`
	Params  map[string]Float `json:"params"`
	Metrics map[string]Float `json:"metrics"`
	Times   []Float          `json:"times"`
	States  [][]Float        `json:"states"`
}

// ExportJSON writes a run and its trajectory as one indented JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, sol *integrators.Solution) error {
	data := ExportData{
		ID:      meta.ID,
		Model:   meta.Model,
		T0:      meta.T0,
		TEnd:    meta.TEnd,
		Dt:      meta.Dt,
		Steps:   meta.Steps,
		Params:  toFloatMap(meta.Params),
		Metrics: toFloatMap(meta.Metrics),
		Times:   toFloats(sol.T),
		States:  make([][]Float, len(sol.U)),
	}
	for i, s := range sol.U {
		data.States[i] = toFloats(s)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
