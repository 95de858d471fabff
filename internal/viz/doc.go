// Package viz is the live terminal viewer.
//
// The viewer is a Bubble Tea program whose tick message is the engine's
// frame source: every tick calls [engine.Engine.Tick], so the wall-clock
// timestep and its cap come from the engine itself.
//
//   - [Model]: viewer for one scene
//   - [Canvas]: braille canvas mapping scene coordinates to dots
//   - [NewPicker]: preset menu that opens a [Model]
//
// # Key Bindings
//
//	Space - Run/Stop
//	R     - Reset and reload the scene
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
