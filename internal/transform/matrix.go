/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package transform

import (
	"fmt"

	"github.com/wovenfox/pdftext/common"
)

// Matrix is a 2D affine transform.
//
//	a  b  0
//	c  d  0
//	e  f  1
//
// PDF coordinate transforms (CTM, Tm, and the cm/Tm operators) are always affine, so unlike the
// general 3x3 homogenous form we keep only the 6 coefficients that can vary.
type Matrix struct {
	A, B, C, D, E, F float64
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return NewMatrix(1, 0, 0, 1, 0, 0)
}

// TranslationMatrix returns a matrix that translates by `tx`, `ty`.
func TranslationMatrix(tx, ty float64) Matrix {
	return NewMatrix(1, 0, 0, 1, tx, ty)
}

// NewMatrix returns the affine transform with coefficients a, b, c, d, e, f.
func NewMatrix(a, b, c, d, e, f float64) Matrix {
	m := Matrix{A: a, B: b, C: c, D: d, E: e, F: f}
	m.clampRange()
	return m
}

// String returns a string describing `m`.
func (m Matrix) String() string {
	return fmt.Sprintf("[%7.4f,%7.4f,%7.4f,%7.4f:%7.4f,%7.4f]", m.A, m.B, m.C, m.D, m.E, m.F)
}

// Concat sets `m` to `b` × `m`, i.e. applies `b` before `m`.
func (m *Matrix) Concat(b Matrix) {
	*m = Matrix{
		A: b.A*m.A + b.B*m.C,
		B: b.A*m.B + b.B*m.D,
		C: b.C*m.A + b.D*m.C,
		D: b.C*m.B + b.D*m.D,
		E: b.E*m.A + b.F*m.C + m.E,
		F: b.E*m.B + b.F*m.D + m.F,
	}
	m.clampRange()
}

// Transform returns coordinates `x`,`y` transformed by `m`.
func (m Matrix) Transform(x, y float64) (float64, float64) {
	xp := x*m.A + y*m.C + m.E
	yp := x*m.B + y*m.D + m.F
	return xp, yp
}

// clampRange forces the elements of `m` to reasonable values. It is a guard against the crazy
// values that a corrupt content stream can produce.
func (m *Matrix) clampRange() {
	clamp := func(x float64) float64 {
		if x > maxAbsNumber {
			common.Log.Debug("CLAMP: %g -> %g", x, maxAbsNumber)
			return maxAbsNumber
		} else if x < -maxAbsNumber {
			common.Log.Debug("CLAMP: %g -> %g", x, -maxAbsNumber)
			return -maxAbsNumber
		}
		return x
	}
	m.A, m.B, m.C, m.D, m.E, m.F = clamp(m.A), clamp(m.B), clamp(m.C), clamp(m.D), clamp(m.E), clamp(m.F)
}

// maxAbsNumber is the maximum absolute value allowed for a matrix element, to avoid floating
// point exceptions on corrupt input.
const maxAbsNumber = 1e9
