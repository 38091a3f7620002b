// Package interp provides the interpolation primitives used to refine
// sampled response curves before width measurements.
//
// Available methods:
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite (Catmull-Rom), the default
//
// [Resample] maps a uniformly sampled sequence onto a denser uniform grid
// with the same end points.
package interp
