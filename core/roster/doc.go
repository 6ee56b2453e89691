// Package roster encodes the recurring workforce scheduling problem as a
// MILP and decodes solved variable values into weekly rosters. Workers
// are assigned to parallel stations over a cyclic 7-day week with paired
// day/night shifts; the objective rewards coverage and penalizes uneven
// workload.
package roster
