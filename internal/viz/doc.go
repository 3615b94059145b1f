// Package viz renders solved trajectories in the terminal: captioned line
// charts for state and derived series, braille-canvas phase portraits, and a
// live view that steps a simulation interactively.
//
// Rendering is strictly downstream of the solver. Every function here
// consumes a finished trajectory (or steps its own copy of a system, for the
// live view) and has no effect on simulation results.
package viz
