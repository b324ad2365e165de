package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fwdeuler/internal/dynamo"
)

type model interface {
	dynamo.System
	dynamo.Configurable
	StateDim() int
	DefaultState() dynamo.State
}

func allModels() map[string]model {
	return map[string]model{
		"pendulum":    NewPendulum(),
		"decay":       NewDecay(),
		"spring_mass": NewSpringMass(),
		"vanderpol":   NewVanDerPol(),
		"lorenz":      NewLorenz(),
		"duffing":     NewDuffing(),
	}
}

func TestModelDimensions(t *testing.T) {
	for name, m := range allModels() {
		t.Run(name, func(t *testing.T) {
			x0 := m.DefaultState()
			if len(x0) != m.StateDim() {
				t.Fatalf("default state has %d components, StateDim is %d", len(x0), m.StateDim())
			}
			dx := m.Derive(0, x0)
			if len(dx) != m.StateDim() {
				t.Errorf("derivative has %d components, want %d", len(dx), m.StateDim())
			}
			if !dx.IsValid() {
				t.Errorf("derivative at default state is not finite: %v", dx)
			}
		})
	}
}

func TestModelParamsRoundTrip(t *testing.T) {
	for name, m := range allModels() {
		t.Run(name, func(t *testing.T) {
			for param, value := range m.Params() {
				if err := m.SetParam(param, value); err != nil {
					t.Errorf("SetParam(%q, %g): %v", param, value, err)
				}
			}
			if err := m.SetParam("no_such_param", 1); err == nil {
				t.Error("expected error for unknown param")
			}
		})
	}
}

// The closed forms must satisfy the ODE: d/dt Exact(t) == Derive(t, Exact(t)).
func TestExactSolutionsSatisfyODE(t *testing.T) {
	damped := NewSpringMass()
	damped.Damping = 0.8

	systems := map[string]dynamo.ExactSystem{
		"decay":         NewDecay(),
		"spring_mass":   NewSpringMass(),
		"damped_spring": damped,
	}

	const h = 1e-6
	for name, sys := range systems {
		t.Run(name, func(t *testing.T) {
			u0 := dynamo.State{1.0}
			if name != "decay" {
				u0 = dynamo.State{1.0, -0.5}
			}
			t0 := 0.3

			start := sys.Exact(t0, t0, u0)
			for i := range u0 {
				if math.Abs(start[i]-u0[i]) > 1e-12 {
					t.Fatalf("Exact(t0) = %v, want %v", start, u0)
				}
			}

			for _, tc := range []float64{0.3, 0.7, 1.5} {
				plus := sys.Exact(tc+h, t0, u0)
				minus := sys.Exact(tc-h, t0, u0)
				f := sys.Derive(tc, sys.Exact(tc, t0, u0))
				for i := range f {
					fd := (plus[i] - minus[i]) / (2 * h)
					if math.Abs(fd-f[i]) > 1e-5*math.Max(1, math.Abs(f[i])) {
						t.Errorf("t=%g component %d: d/dt exact = %g, derive = %g", tc, i, fd, f[i])
					}
				}
			}
		})
	}
}

func TestSpringMassOverdampedHasNoClosedForm(t *testing.T) {
	s := NewSpringMass()
	s.Damping = 100
	if got := s.Exact(1, 0, dynamo.State{1, 0}); got != nil {
		t.Errorf("expected nil for overdamped oscillator, got %v", got)
	}
}

func TestDuffingForcingDependsOnTime(t *testing.T) {
	d := NewDuffing()
	x := dynamo.State{0, 0}
	a := d.Derive(0, x)
	b := d.Derive(math.Pi/(2*d.Omega), x)
	if math.Abs(a[1]-d.Gamma) > 1e-12 {
		t.Errorf("forcing at t=0 = %g, want %g", a[1], d.Gamma)
	}
	if math.Abs(b[1]) > 1e-12 {
		t.Errorf("forcing at quarter period = %g, want 0", b[1])
	}
}

func TestLorenzFixedPointsAreEquilibria(t *testing.T) {
	l := NewLorenz()
	points := l.FixedPoints()
	if len(points) != 3 {
		t.Fatalf("expected 3 fixed points for rho=28, got %d", len(points))
	}
	for _, p := range points {
		for i, v := range l.Derive(0, p) {
			if math.Abs(v) > 1e-12 {
				t.Errorf("derivative at %v component %d = %g, want 0", p, i, v)
			}
		}
	}

	l.Rho = 0.5
	if got := len(l.FixedPoints()); got != 1 {
		t.Errorf("expected only the origin below rho=1, got %d points", got)
	}
}

func TestParamBounds(t *testing.T) {
	tests := []struct {
		name  string
		model dynamo.Configurable
		param string
		value float64
	}{
		{"pendulum length", NewPendulum(), "length", 0},
		{"spring mass", NewSpringMass(), "mass", -1},
		{"vanderpol mu", NewVanDerPol(), "mu", -0.5},
		{"lorenz beta", NewLorenz(), "beta", 0},
		{"duffing delta", NewDuffing(), "delta", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.model.SetParam(tt.param, tt.value); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("got %v, want ErrParameterBounds", err)
			}
		})
	}
}
