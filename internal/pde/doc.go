// Package pde hosts the grid-based solvers: phase-field evolution,
// diffusion and Poisson solves on fixed small grids. Spectral solvers
// use go-dsp FFTs; the 2D Poisson solver uses successive
// over-relaxation.
package pde
