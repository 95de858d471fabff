// Package manager is the attribute-driven front door to the engine. It
// turns editor-shaped attributes (nested positions, vectors, initial
// accelerations) into engine objects and forces and applies domain
// defaults such as automatic gravity for kinematics scenes.
package manager
