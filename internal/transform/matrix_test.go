/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package transform

import "testing"

// TestNewMatrixClampsExtremeValues guards against the floating point exceptions a corrupt
// content stream's cm operands could otherwise trigger.
func TestNewMatrixClampsExtremeValues(t *testing.T) {
	m := NewMatrix(1e20, 0, 0, 1e20, -1e20, 1e20)
	if m.A != maxAbsNumber || m.D != maxAbsNumber {
		t.Fatalf("expected A and D clamped to %g, got A=%g D=%g", maxAbsNumber, m.A, m.D)
	}
	if m.E != -maxAbsNumber || m.F != maxAbsNumber {
		t.Fatalf("expected E=-%g F=%g, got E=%g F=%g", maxAbsNumber, maxAbsNumber, m.E, m.F)
	}
}
