/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package coordinates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wovenfox/pdftext/font"
	"github.com/wovenfox/pdftext/internal/transform"
)

const tol = 1.0e-6

func closeTo(t *testing.T, got, want float64, msg string) {
	t.Helper()
	if got-want > tol || want-got > tol {
		t.Fatalf("%s: got %g, want %g", msg, got, want)
	}
}

func TestBeginTextResetsMatrixAndPending(t *testing.T) {
	c := New(transform.IdentityMatrix())
	c.Tm.Concat(transform.TranslationMatrix(50, 50))
	c.x, c.y = 10, 10

	c.BeginText()

	assert.Equal(t, transform.IdentityMatrix(), c.Tm)
	assert.Equal(t, 0.0, c.x)
	assert.Equal(t, 0.0, c.y)
}

// TestAdjustASCIIShow pins scenario S1: BT /F1 12 Tf 100 200 Td (Hi) Tj ET with CTM = identity.
func TestAdjustASCIIShow(t *testing.T) {
	c := New(transform.IdentityMatrix())
	c.BeginText()
	c.Td(100, 200)
	c.SetTfs(12)

	f := &font.Font{Descent: -200, Height: 700}
	width := 800.0 // unscaled 1/1000 em advance for "Hi"

	chunk := c.Adjust("Hi", 2, width, 0, f)

	require.Equal(t, "Hi", chunk.Text)
	closeTo(t, chunk.BBox.X0, 100, "x0")
	closeTo(t, chunk.BBox.Y0, 200+(-200)*12*0.001, "y0")
}

func TestAdjustAdvancesPendingX(t *testing.T) {
	c := New(transform.IdentityMatrix())
	c.BeginText()
	c.SetTfs(10)

	f := &font.Font{}
	c.Adjust("A", 1, 500, 0, f)

	closeTo(t, c.x, 500*0.001*10, "pending x after one glyph")
}

func TestTDSetsLeadingFromTy(t *testing.T) {
	c := New(transform.IdentityMatrix())
	c.TD(0, -14)
	assert.Equal(t, 14.0, c.TL)
}

func TestTStarUsesLeading(t *testing.T) {
	c := New(transform.IdentityMatrix())
	c.SetTL(12)
	c.TStar()

	x, y := c.Tm.Transform(0, 0)
	closeTo(t, x, 0, "tstar x")
	closeTo(t, y, -12, "tstar y")
}

func TestSetTzScalesHorizontal(t *testing.T) {
	c := New(transform.IdentityMatrix())
	c.SetTz(50)
	assert.Equal(t, 0.5, c.Th)
}
