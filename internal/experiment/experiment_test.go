package experiment

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/fwdeuler/internal/config"
	"github.com/san-kum/fwdeuler/internal/dynamo"
	"github.com/san-kum/fwdeuler/internal/logging"
)

func TestRegistryModels(t *testing.T) {
	r := NewRegistry()

	want := []string{"decay", "duffing", "lorenz", "pendulum", "spring_mass", "vanderpol"}
	got := r.ListModels()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ListModels() = %v, want %v", got, want)
	}

	for _, name := range want {
		m, err := r.GetModel(name)
		if err != nil {
			t.Fatalf("GetModel(%q): %v", name, err)
		}
		if len(m.DefaultState()) != m.StateDim() {
			t.Errorf("%s: default state width %d, dim %d", name, len(m.DefaultState()), m.StateDim())
		}
	}

	if _, err := r.GetModel("cartpole"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("got %v, want ErrUnknownModel", err)
	}
}

func TestRunDefaultPendulum(t *testing.T) {
	var logs bytes.Buffer
	exp := New(config.DefaultConfig(), NewRegistry(), logging.NewLogger("debug", &logs))

	out, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	sol := out.Solution
	if sol.Len() != config.DefaultSteps+1 {
		t.Errorf("expected %d points, got %d", config.DefaultSteps+1, sol.Len())
	}
	if sol.U[0][0] != math.Pi/4 || sol.U[0][1] != 0 {
		t.Errorf("initial state = %v", sol.U[0])
	}
	if out.Metrics["energy_drift"] <= 0 {
		t.Errorf("expected positive energy drift, got %g", out.Metrics["energy_drift"])
	}
	if out.Metrics["stability"] != 1 {
		t.Errorf("expected stable pendulum, got %g", out.Metrics["stability"])
	}
	if !strings.Contains(logs.String(), "msg=solved") {
		t.Errorf("missing completion log: %q", logs.String())
	}
}

func TestRunScalarModel(t *testing.T) {
	cfg := &config.Config{
		Model:            "decay",
		TEnd:             1,
		Steps:            2,
		InitialCondition: config.Scalar(1),
		Params:           map[string]float64{"rate": -1},
	}

	out, err := New(cfg, NewRegistry(), logging.Discard()).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	u, err := out.Solution.Scalar()
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 0.5, 0.25}
	for i := range want {
		if u[i] != want[i] {
			t.Errorf("u[%d] = %g, want %g", i, u[i], want[i])
		}
	}
}

func TestRunDefaultInitialCondition(t *testing.T) {
	cfg := &config.Config{Model: "lorenz", TEnd: 1, Steps: 100}

	out, err := New(cfg, NewRegistry(), logging.Discard()).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.Solution.Dim != 3 {
		t.Errorf("dim = %d, want 3", out.Solution.Dim)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want error
	}{
		{"unknown model", &config.Config{Model: "cartpole", TEnd: 1, Steps: 1}, ErrUnknownModel},
		{"bad steps", &config.Config{Model: "decay", TEnd: 1, Steps: 0}, config.ErrInvalidConfig},
		{"bad span", &config.Config{Model: "decay", T0: 1, TEnd: 1, Steps: 10}, config.ErrInvalidConfig},
		{"wrong width", &config.Config{Model: "pendulum", TEnd: 1, Steps: 1, InitialCondition: config.Vector(1, 2, 3)}, dynamo.ErrDimensionMismatch},
		{"unknown param", &config.Config{Model: "decay", TEnd: 1, Steps: 1, Params: map[string]float64{"mass": 1}}, dynamo.ErrUnknownParam},
		{"param bounds", &config.Config{Model: "pendulum", TEnd: 1, Steps: 1, Params: map[string]float64{"length": -1}}, dynamo.ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, NewRegistry(), logging.Discard()).Run(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(config.DefaultConfig(), NewRegistry(), logging.Discard()).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestRunWarnsOnInstability(t *testing.T) {
	var logs bytes.Buffer
	cfg := config.GetPreset("decay", "unstable")

	out, err := New(cfg, NewRegistry(), logging.NewLogger("info", &logs)).Run(context.Background())
	if err != nil {
		t.Fatalf("unstable run must still complete: %v", err)
	}
	if out.Metrics["stability"] >= 1 {
		t.Errorf("stability = %g, want < 1", out.Metrics["stability"])
	}
	if !strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("expected a warning, got %q", logs.String())
	}
}

func TestRunTracesEveryPoint(t *testing.T) {
	var logs bytes.Buffer
	cfg := &config.Config{Model: "decay", TEnd: 1, Steps: 4}

	if _, err := New(cfg, NewRegistry(), logging.NewLogger("trace", &logs)).Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := strings.Count(logs.String(), "msg=point"); got != 5 {
		t.Errorf("expected 5 traced points, got %d", got)
	}
}
