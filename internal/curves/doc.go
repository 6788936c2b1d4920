// Package curves provides the closed-form load and stress models plotted by
// the laboratory test demonstrations.
//
// Every model is a pure function of one scalar input:
//
//   - [BTSLoadDisplacement]: bilinear load against displacement
//   - [ClayStressStrain]: hyperbolic deviator stress against axial strain
//   - [ConsolidationVolume]: logarithmic volume decay with a plateau
//   - [CementedClayStressStrain]: linear, peak and softening branches
//
// The constants are fixed design parameters of each demonstration and are not
// configurable. Inputs are not validated against the domain; the clay and
// consolidation models guard negative inputs, the other two do not.
//
// # Example
//
//	c, _ := curves.Lookup("cemented")
//	xs, ys := curves.Sample(c, 0, 15, 61)
package curves
