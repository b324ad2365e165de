package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/fwdeuler/internal/dynamo"
	"github.com/san-kum/fwdeuler/internal/physics"
)

var ErrUnknownModel = errors.New("experiment: unknown model")

// Model is a derivative function the CLI can build by name.
type Model interface {
	dynamo.System
	dynamo.Configurable
	dynamo.Dimensioned
	DefaultState() dynamo.State
}

type Registry struct {
	models map[string]func() Model
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]func() Model),
	}

	r.models["pendulum"] = func() Model { return physics.NewPendulum() }
	r.models["decay"] = func() Model { return physics.NewDecay() }
	r.models["spring_mass"] = func() Model { return physics.NewSpringMass() }
	r.models["vanderpol"] = func() Model { return physics.NewVanDerPol() }
	r.models["lorenz"] = func() Model { return physics.NewLorenz() }
	r.models["duffing"] = func() Model { return physics.NewDuffing() }

	return r
}

// Register adds or replaces a model factory.
func (r *Registry) Register(name string, factory func() Model) {
	r.models[name] = factory
}

func (r *Registry) GetModel(name string) (Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownModel, name, r.ListModels())
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
