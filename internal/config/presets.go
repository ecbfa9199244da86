package config

var Presets = map[string]map[string]*Config{
	"tafel": {
		"platinum": {
			Model: "tafel", Points: 400,
			Params: map[string]float64{"i0": 1.0, "alpha_a": 0.5, "alpha_c": 0.5},
		},
		"asymmetric": {
			Model: "tafel", Points: 400,
			Params: map[string]float64{"i0": 1.0, "alpha_a": 0.7, "alpha_c": 0.3},
		},
		"sluggish": {
			Model: "tafel", Points: 400,
			Params: map[string]float64{"i0": 1e-3, "alpha_a": 0.5, "alpha_c": 0.5},
		},
	},
	"hydrolysis": {
		"standard": {
			Model: "hydrolysis", Integrator: "euler", Dt: 1e-5, Duration: 2.0,
			Params: map[string]float64{"k1": 1e-4},
		},
		"weak": {
			Model: "hydrolysis", Integrator: "euler", Dt: 1e-5, Duration: 2.0,
			Params: map[string]float64{"k1": 1e-6},
		},
	},
	"cooling": {
		"slow": {
			Model: "cooling", Integrator: "euler", Dt: 0.05, Duration: 200.0,
			Params: map[string]float64{"k": 0.02},
		},
		"fast": {
			Model: "cooling", Integrator: "euler", Dt: 0.05, Duration: 200.0,
			Params: map[string]float64{"k": 0.1},
		},
	},
	"fracture": {
		"brittle": {
			Model: "fracture", Points: 200,
			Params: map[string]float64{"gc": 1000},
		},
		"tough": {
			Model: "fracture", Points: 200,
			Params: map[string]float64{"gc": 10000},
		},
	},
	"phasefield": {
		"coarse": {
			Model: "phasefield",
			Params: map[string]float64{"nx": 100, "steps": 5000, "kappa": 1e-2},
		},
		"fine": {
			Model: "phasefield",
			Params: map[string]float64{"nx": 400, "steps": 20000, "kappa": 1e-2},
		},
		"sharp": {
			Model: "phasefield",
			Params: map[string]float64{"nx": 200, "steps": 10000, "kappa": 1e-3},
		},
	},
	"diffusion": {
		"standard": {
			Model: "diffusion",
			Params: map[string]float64{"nx": 256, "steps": 5000, "d": 1e-4},
		},
	},
	"poisson": {
		"smooth": {
			Model: "poisson",
			Params: map[string]float64{"n": 64, "sigma": 0.1},
		},
		"tight": {
			Model: "poisson",
			Params: map[string]float64{"n": 128, "sigma": 0.05},
		},
	},
}

func GetPreset(model, name string) *Config {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	return group[name]
}

func ListPresets(model string) []string {
	group, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
