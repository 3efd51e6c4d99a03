// Package production computes production plans for a fleet of power plants.
//
// Calculate reproduces the merit-order heuristic used by the service: the
// fleet is ranked by descending Pmax and walked once against a single running
// load counter. For thermal plants the returned figure is the capped load
// multiplied by the fuel price, for wind turbines a hundredth of the capped
// wind output. CalculateUnitConsistent is the corrected variant that returns
// megawatts for every plant type. Both are exposed as Planners and selected
// by name through the planner registry.
package production
