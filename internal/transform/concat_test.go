/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package transform

import (
	"math"
	"testing"
)

const concatTol = 1.0e-9

func pointsClose(x0, y0, x1, y1 float64) bool {
	return math.Abs(x0-x1) < concatTol && math.Abs(y0-y1) < concatTol
}

// TestConcatAppliesArgumentFirst pins Concat's documented convention: m.Concat(b) sets
// m := b × m, so b is applied to a point before the original m was.
func TestConcatAppliesArgumentFirst(t *testing.T) {
	b := TranslationMatrix(10, 0)
	m := NewMatrix(0, -1, 1, 0, 0, 0) // 90 degree rotation.
	m.Concat(b)

	// b is applied first: translate (10,0) -> (20,0), then the original m: (y,-x) -> (0,-20).
	gotX, gotY := m.Transform(10, 0)
	if !pointsClose(gotX, gotY, 0, -20) {
		t.Fatalf("Concat composition order: got (%g,%g), want (0,-20)", gotX, gotY)
	}
}

// TestMatrixCompositionAssociative verifies (A.B).C == A.(B.C) for point transforms, to
// floating-point tolerance.
func TestMatrixCompositionAssociative(t *testing.T) {
	a := NewMatrix(1, 2, 3, 4, 5, 6)
	b := NewMatrix(0.5, -1, 2, 0.25, -3, 1)
	c := NewMatrix(-2, 0.1, 0.3, 1.5, 4, -4)

	left := a
	left.Concat(b)
	left.Concat(c)

	bc := b
	bc.Concat(c)
	right := a
	right.Concat(bc)

	for _, p := range [][2]float64{{1, 1}, {0, 0}, {-3, 7}} {
		lx, ly := left.Transform(p[0], p[1])
		rx, ry := right.Transform(p[0], p[1])
		if !pointsClose(lx, ly, rx, ry) {
			t.Fatalf("associativity failed at %v: left=(%g,%g) right=(%g,%g)", p, lx, ly, rx, ry)
		}
	}
}
