// Package physics provides the electrochemistry and mechanics models.
//
// Two kinds of model live here:
//
//   - ODE systems implementing [sim.System], integrated by the shared
//     runner: [Hydrolysis] (metal hydrolysis reaction network) and
//     [Cooling] (Newton cooling).
//   - Algebraic curve models evaluated over a sweep variable:
//     [Tafel] (Butler-Volmer electrode kinetics) and [Fracture]
//     (energy release rate vs crack length).
//
// All models carry their textbook constants as struct fields and also
// implement [sim.Configurable] so presets and config files can
// override them by name.
package physics
