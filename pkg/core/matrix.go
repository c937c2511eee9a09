package core

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags a matrix with the constraints it is known to satisfy so that
// Inverse can pick the cheapest valid algorithm. Kinds are ordered from the
// least to the most specialised.
type Kind int

const (
	// General matrices may contain shear or projection; only the cofactor inverse is valid
	General Kind = iota
	// Transform is an affine rotation/scale/translation without shear
	Transform
	// TransformNoScale is an affine transform whose linear block is orthonormal
	TransformNoScale
	// Identity is the identity matrix
	Identity
)

func (k Kind) String() string {
	switch k {
	case General:
		return "general"
	case Transform:
		return "transform"
	case TransformNoScale:
		return "transform-no-scale"
	case Identity:
		return "identity"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// worst returns the less specialised of two kinds
func (k Kind) worst(other Kind) Kind {
	return min(k, other)
}

// ErrSingularMatrix is returned by TryInverse when no inverse exists
var ErrSingularMatrix = errors.New("matrix is not invertible")

// Mat is an immutable 4x4 row-major matrix
type Mat struct {
	M    [4][4]float64
	Kind Kind
}

// NewMat creates a matrix from rows with the given kind
func NewMat(rows [4][4]float64, kind Kind) Mat {
	return Mat{M: rows, Kind: kind}
}

// IdentityMatrix returns the 4x4 identity matrix
func IdentityMatrix() Mat {
	return Mat{
		M: [4][4]float64{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
		},
		Kind: Identity,
	}
}

// Mul returns m * other. The result carries the worse of the two kinds.
func (m Mat) Mul(other Mat) Mat {
	var out Mat
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out.M[row][col] = m.M[row][0]*other.M[0][col] +
				m.M[row][1]*other.M[1][col] +
				m.M[row][2]*other.M[2][col] +
				m.M[row][3]*other.M[3][col]
		}
	}
	out.Kind = m.Kind.worst(other.Kind)
	return out
}

// MulTup returns m * t
func (m Mat) MulTup(t Tup) Tup {
	return Tup{
		X: m.M[0][0]*t.X + m.M[0][1]*t.Y + m.M[0][2]*t.Z + m.M[0][3]*t.W,
		Y: m.M[1][0]*t.X + m.M[1][1]*t.Y + m.M[1][2]*t.Z + m.M[1][3]*t.W,
		Z: m.M[2][0]*t.X + m.M[2][1]*t.Y + m.M[2][2]*t.Z + m.M[2][3]*t.W,
		W: m.M[3][0]*t.X + m.M[3][1]*t.Y + m.M[3][2]*t.Z + m.M[3][3]*t.W,
	}
}

// Transpose returns the transposed matrix. The transpose of an affine
// transform is no longer affine, so the result is tagged General unless m is
// the identity.
func (m Mat) Transpose() Mat {
	var out Mat
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out.M[col][row] = m.M[row][col]
		}
	}
	out.Kind = General
	if m.Kind == Identity {
		out.Kind = Identity
	}
	return out
}

// submatrix3 removes a row and column from the 4x4 matrix
func (m Mat) submatrix3(skipRow, skipCol int) [3][3]float64 {
	var out [3][3]float64
	r := 0
	for row := 0; row < 4; row++ {
		if row == skipRow {
			continue
		}
		c := 0
		for col := 0; col < 4; col++ {
			if col == skipCol {
				continue
			}
			out[r][c] = m.M[row][col]
			c++
		}
		r++
	}
	return out
}

func det3(a [3][3]float64) float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// Cofactor returns the signed minor at (row, col)
func (m Mat) Cofactor(row, col int) float64 {
	minor := det3(m.submatrix3(row, col))
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// Determinant computes the determinant by cofactor expansion along row 0
func (m Mat) Determinant() float64 {
	det := 0.0
	for col := 0; col < 4; col++ {
		det += m.M[0][col] * m.Cofactor(0, col)
	}
	return det
}

// Invertible reports whether the matrix has an inverse
func (m Mat) Invertible() bool {
	return m.Determinant() != 0
}

// Inverse returns the inverse using the fastest algorithm valid for the
// matrix kind. It panics on a singular matrix: callers must only invert
// matrices built from valid scene data. Use TryInverse at input boundaries.
func (m Mat) Inverse() Mat {
	inv, err := m.TryInverse()
	if err != nil {
		panic(fmt.Sprintf("cannot invert %s matrix:\n%s", m.Kind, m))
	}
	return inv
}

// TryInverse is Inverse with an error instead of a panic
func (m Mat) TryInverse() (Mat, error) {
	switch m.Kind {
	case Identity:
		return m, nil
	case TransformNoScale:
		return m.inverseNoScale(), nil
	case Transform:
		return m.inverseAffine()
	default:
		return m.inverseGeneral()
	}
}

// inverseNoScale transposes the orthonormal rotation block and rotates the
// negated translation into the new basis
func (m Mat) inverseNoScale() Mat {
	var out Mat
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out.M[row][col] = m.M[col][row]
		}
	}
	t := Vector(-m.M[0][3], -m.M[1][3], -m.M[2][3])
	out.M[0][3] = out.M[0][0]*t.X + out.M[0][1]*t.Y + out.M[0][2]*t.Z
	out.M[1][3] = out.M[1][0]*t.X + out.M[1][1]*t.Y + out.M[1][2]*t.Z
	out.M[2][3] = out.M[2][0]*t.X + out.M[2][1]*t.Y + out.M[2][2]*t.Z
	out.M[3][3] = 1
	out.Kind = TransformNoScale
	return out
}

// inverseAffine inverts the 3x3 linear block by its adjugate and rotates the
// negated translation
func (m Mat) inverseAffine() (Mat, error) {
	a := [3][3]float64{
		{m.M[0][0], m.M[0][1], m.M[0][2]},
		{m.M[1][0], m.M[1][1], m.M[1][2]},
		{m.M[2][0], m.M[2][1], m.M[2][2]},
	}
	det := det3(a)
	if det == 0 {
		return Mat{}, ErrSingularMatrix
	}

	var out Mat
	out.M[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) / det
	out.M[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) / det
	out.M[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) / det
	out.M[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) / det
	out.M[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) / det
	out.M[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) / det
	out.M[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) / det
	out.M[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) / det
	out.M[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) / det

	tx, ty, tz := -m.M[0][3], -m.M[1][3], -m.M[2][3]
	for row := 0; row < 3; row++ {
		out.M[row][3] = out.M[row][0]*tx + out.M[row][1]*ty + out.M[row][2]*tz
	}
	out.M[3][3] = 1
	out.Kind = Transform
	return out, nil
}

func (m Mat) inverseGeneral() (Mat, error) {
	det := m.Determinant()
	if det == 0 {
		return Mat{}, ErrSingularMatrix
	}

	var out Mat
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			// transposed on write
			out.M[col][row] = m.Cofactor(row, col) / det
		}
	}
	out.Kind = General
	return out, nil
}

// ApproxEqual compares every element within Epsilon, ignoring kinds
func (m Mat) ApproxEqual(other Mat) bool {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if !FloatEqual(m.M[row][col], other.M[row][col]) {
				return false
			}
		}
	}
	return true
}

func (m Mat) String() string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			fmt.Fprintf(&sb, "%+9.4f", m.M[row][col])
			if col != 3 {
				sb.WriteByte(' ')
			}
		}
		if row != 3 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
