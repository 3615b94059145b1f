// Package plants provides the process models of a circular-economy
// material-flow testbed. Each plant is a compartment of the flow network:
//
//   - [Incinerator]: six-state mass/energy balance of a waste incinerator
//   - [Droop]: three-state Droop kinetics of a microalgae culture
//   - [Truck]: two-state rigid-body motion of a transport truck
//
// Every plant implements [dynamo.System] with an autonomous derivative and
// [dynamo.Configurable] for pre-run parameter adjustment. Parameters are
// plain struct fields fixed for the duration of a run; the derivative reads
// them and nothing else.
//
// The parameter values are demonstration constants, not measurements of real
// equipment.
package plants
