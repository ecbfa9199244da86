// Package lab registers the numerical models and runs them from a
// config, producing the dataset, summary metrics and optional grid
// output each model defines.
package lab

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/fieldlab/internal/config"
	"github.com/san-kum/fieldlab/internal/pde"
	"github.com/san-kum/fieldlab/internal/physics"
	"github.com/san-kum/fieldlab/internal/sim"
	"github.com/san-kum/fieldlab/internal/vtk"
)

var (
	// ErrUnknownModel indicates a model name with no registration.
	ErrUnknownModel = errors.New("lab: unknown model")

	// ErrUnknownIntegrator indicates an integrator name other than
	// euler or rk4.
	ErrUnknownIntegrator = errors.New("lab: unknown integrator")
)

// Output is everything one model run produces.
type Output struct {
	Data    *sim.Dataset
	Metrics map[string]float64
	YLabel  string

	// ChartSeries picks which series the PNG chart shows; empty
	// means all of them.
	ChartSeries []string

	// Grid holds a 2D field some models emit alongside their series
	// (the SOR potential), written as a .vti next to the run.
	Grid     *vtk.Dataset
	GridName string
}

type runner func(ctx context.Context, cfg *config.Config) (*Output, error)

var models = map[string]runner{
	"tafel":      runTafel,
	"hydrolysis": runHydrolysis,
	"cooling":    runCooling,
	"fracture":   runFracture,
	"phasefield": runPhaseField,
	"parabolic":  runParabolic,
	"diffusion":  runDiffusion,
	"poisson":    runPoisson,
}

// Models lists registered model names.
func Models() []string {
	out := make([]string, 0, len(models))
	for name := range models {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Run executes the configured model.
func Run(ctx context.Context, cfg *config.Config) (*Output, error) {
	r, ok := models[cfg.Model]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownModel, cfg.Model, Models())
	}
	return r(ctx, cfg)
}

func integrator(name string) (sim.Integrator, error) {
	switch name {
	case "", "euler":
		return sim.NewEuler(), nil
	case "rk4":
		return sim.NewRK4(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownIntegrator, name)
}

// applyParams pushes config params into a configurable model.
func applyParams(m sim.Configurable, params map[string]float64) error {
	for name, v := range params {
		if err := m.SetParam(name, v); err != nil {
			return fmt.Errorf("param %q: %w", name, err)
		}
	}
	return nil
}

// param reads a numeric parameter with a fallback, for the grid
// models that size themselves from the config.
func param(cfg *config.Config, name string, fallback float64) float64 {
	if v, ok := cfg.Params[name]; ok {
		return v
	}
	return fallback
}

func runTafel(_ context.Context, cfg *config.Config) (*Output, error) {
	m := physics.NewTafel()
	if err := applyParams(m, cfg.Params); err != nil {
		return nil, err
	}
	ds := m.Sweep(cfg.Points)

	logNet := ds.Get("log10_abs_i_net")
	minLog := math.Inf(1)
	ecorr := m.Eeq
	for i, v := range logNet {
		if v < minLog {
			minLog = v
			ecorr = ds.X[i]
		}
	}
	return &Output{
		Data:        ds,
		YLabel:      "current density (mA/cm^2)",
		ChartSeries: []string{"i_anodic", "i_cathodic", "i_net"},
		Metrics: map[string]float64{
			"exchange_current": m.I0,
			"e_corr":           ecorr,
		},
	}, nil
}

func runHydrolysis(ctx context.Context, cfg *config.Config) (*Output, error) {
	m := physics.NewHydrolysis()
	if err := applyParams(m, cfg.Params); err != nil {
		return nil, err
	}
	integ, err := integrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	result, err := sim.Run(ctx, m, integ, m.DefaultState(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return nil, err
	}
	ds := result.ToDataset(m)

	ph := ds.Get("pH")
	return &Output{
		Data:   ds,
		YLabel: "mole fraction",
		Metrics: map[string]float64{
			"final_pH":   ph[len(ph)-1],
			"final_xMOH": ds.Get("xMOH")[len(ph)-1],
		},
	}, nil
}

func runCooling(ctx context.Context, cfg *config.Config) (*Output, error) {
	m := physics.NewCooling()
	if err := applyParams(m, cfg.Params); err != nil {
		return nil, err
	}
	integ, err := integrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	result, err := sim.Run(ctx, m, integ, m.DefaultState(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return nil, err
	}
	ds := result.ToDataset(m)
	temps := ds.Get("T")
	return &Output{
		Data:   ds,
		YLabel: "temperature (C)",
		Metrics: map[string]float64{
			"final_T":       temps[len(temps)-1],
			"time_constant": 1 / m.K,
		},
	}, nil
}

func runFracture(_ context.Context, cfg *config.Config) (*Output, error) {
	m := physics.NewFracture()
	if err := applyParams(m, cfg.Params); err != nil {
		return nil, err
	}
	ds := m.Curves(cfg.Points)
	aLoad, aDisp := m.CriticalLengths(cfg.Points)
	return &Output{
		Data:   ds,
		YLabel: "G (J/m^2)",
		Metrics: map[string]float64{
			"critical_a_fixed_load": aLoad,
			"critical_a_fixed_disp": aDisp,
		},
	}, nil
}

func runPhaseField(ctx context.Context, cfg *config.Config) (*Output, error) {
	p := pde.NewAllenCahn()
	p.Nx = int(param(cfg, "nx", float64(p.Nx)))
	p.Steps = int(param(cfg, "steps", float64(p.Steps)))
	p.W = param(cfg, "w", p.W)
	p.Kappa = param(cfg, "kappa", p.Kappa)
	p.M = param(cfg, "m", p.M)
	p.Dt = param(cfg, "dt", p.Dt)
	p.SnapshotEvery = int(param(cfg, "snapshot_every", float64(p.SnapshotEvery)))

	ds, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}
	return &Output{
		Data:    ds,
		YLabel:  "phi",
		Metrics: map[string]float64{"snapshots": float64(len(ds.Series))},
	}, nil
}

func runParabolic(_ context.Context, cfg *config.Config) (*Output, error) {
	p := pde.NewInterface()
	p.W = param(cfg, "w", p.W)
	p.Kappa = param(cfg, "kappa", p.Kappa)
	p.L = param(cfg, "l", p.L)
	p.Nx = int(param(cfg, "nx", float64(p.Nx)))

	res := p.Evaluate()
	return &Output{
		Data:   res.Data,
		YLabel: "phi / energy density",
		Metrics: map[string]float64{
			"interface_thickness": res.Thickness,
			"f_total":             res.FTotal,
			"f_bulk":              res.FBulk,
			"f_grad":              res.FGrad,
		},
	}, nil
}

func runDiffusion(ctx context.Context, cfg *config.Config) (*Output, error) {
	p := pde.NewSpectralDiffusion()
	p.Nx = int(param(cfg, "nx", float64(p.Nx)))
	p.D = param(cfg, "d", p.D)
	p.Dt = param(cfg, "dt", p.Dt)
	p.Steps = int(param(cfg, "steps", float64(p.Steps)))
	p.SnapshotEvery = int(param(cfg, "snapshot_every", float64(p.SnapshotEvery)))

	ds, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}

	last := ds.Series[len(ds.Series)-1].Y
	amp := 0.0
	for _, v := range last {
		if a := math.Abs(v); a > amp {
			amp = a
		}
	}
	return &Output{
		Data:    ds,
		YLabel:  "rho",
		Metrics: map[string]float64{"final_amplitude": amp},
	}, nil
}

func runPoisson(_ context.Context, cfg *config.Config) (*Output, error) {
	// 1D spectral solve for the series output
	nx := int(param(cfg, "nx", 256))
	lx := param(cfg, "lx", 1.0)
	x := make([]float64, nx)
	rho := make([]float64, nx)
	for i := range x {
		x[i] = lx * float64(i) / float64(nx)
		rho[i] = math.Sin(2 * math.Pi * x[i] / lx)
	}
	phi := pde.SolvePoissonFFT1D(rho, lx, pde.Epsilon0)

	ds := &sim.Dataset{
		XLabel: "x",
		X:      x,
		Series: []sim.Series{
			{Name: "rho", Y: rho},
			{Name: "phi", Y: phi},
		},
	}

	// 2D SOR solve emitted as a structured grid for the viewer
	n := int(param(cfg, "n", 64))
	sigma := param(cfg, "sigma", 0.1)
	sor := pde.NewSOR()
	sor.Tol = param(cfg, "tol", sor.Tol)
	charge := pde.GaussianCharge(n, sigma, 1e-8)
	pot, sweeps, err := sor.Solve(charge, 1.0/float64(n-1), pde.Epsilon0)
	if err != nil {
		return nil, err
	}

	grid := vtk.NewDataset([3]int{n, n, 1}, [3]float64{1.0 / float64(n-1), 1.0 / float64(n-1), 1}, [3]float64{})
	flat := make([]float64, 0, n*n)
	flatRho := make([]float64, 0, n*n)
	for j := 0; j < n; j++ {
		flat = append(flat, pot[j]...)
		flatRho = append(flatRho, charge[j]...)
	}
	grid.AddArray("potential", flat)
	grid.AddArray("charge_density", flatRho)

	return &Output{
		Data:     ds,
		YLabel:   "rho / phi",
		Grid:     grid,
		GridName: "potential.vti",
		Metrics:  map[string]float64{"sor_sweeps": float64(sweeps)},
	}, nil
}
