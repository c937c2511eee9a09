package core

import "math"

// Translation returns a matrix moving points by (x, y, z)
func Translation(x, y, z float64) Mat {
	return NewMat([4][4]float64{
		{1, 0, 0, x},
		{0, 1, 0, y},
		{0, 0, 1, z},
		{0, 0, 0, 1},
	}, TransformNoScale)
}

// Scaling returns a matrix scaling each axis
func Scaling(x, y, z float64) Mat {
	return NewMat([4][4]float64{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
		{0, 0, 0, 1},
	}, Transform)
}

// RotationX rotates around the x axis by rad radians
func RotationX(rad float64) Mat {
	sin, cos := math.Sincos(rad)
	return NewMat([4][4]float64{
		{1, 0, 0, 0},
		{0, cos, -sin, 0},
		{0, sin, cos, 0},
		{0, 0, 0, 1},
	}, TransformNoScale)
}

// RotationY rotates around the y axis by rad radians
func RotationY(rad float64) Mat {
	sin, cos := math.Sincos(rad)
	return NewMat([4][4]float64{
		{cos, 0, sin, 0},
		{0, 1, 0, 0},
		{-sin, 0, cos, 0},
		{0, 0, 0, 1},
	}, TransformNoScale)
}

// RotationZ rotates around the z axis by rad radians
func RotationZ(rad float64) Mat {
	sin, cos := math.Sincos(rad)
	return NewMat([4][4]float64{
		{cos, -sin, 0, 0},
		{sin, cos, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}, TransformNoScale)
}

// Shearing moves each component in proportion to the other two
func Shearing(xy, xz, yx, yz, zx, zy float64) Mat {
	return NewMat([4][4]float64{
		{1, xy, xz, 0},
		{yx, 1, yz, 0},
		{zx, zy, 1, 0},
		{0, 0, 0, 1},
	}, General)
}

// ViewTransform orients the world relative to an eye at from looking at to.
// left and the true up are not normalised, so the result is tagged General.
func ViewTransform(from, to, up Tup) Mat {
	forward := to.Sub(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)

	orientation := NewMat([4][4]float64{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	}, General)

	return orientation.Mul(Translation(-from.X, -from.Y, -from.Z))
}

// Chain composes transforms so that the last argument is applied first,
// e.g. Chain(translate, rotate, scale) scales, then rotates, then translates.
func Chain(transforms ...Mat) Mat {
	out := IdentityMatrix()
	for _, t := range transforms {
		out = out.Mul(t)
	}
	return out
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg / 180 * math.Pi
}
