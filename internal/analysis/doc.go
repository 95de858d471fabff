// Package analysis inspects recorded trajectories.
//
//   - [DominantPeriod]: period of the strongest spectral peak
//   - [Analyze]: amplitude, period and rising crossings of one series
//   - [PhasePortrait]: position against velocity, rendered as text
//
// A spring or pendulum run can be checked against its expected period:
//
//	osc := analysis.Analyze(traj.Times, traj.Y, meta.Dt)
//	fmt.Printf("period %.2fs\n", osc.Period)
package analysis
