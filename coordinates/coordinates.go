/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package coordinates implements the text-state machine that the text-extraction core drives
// while interpreting a content stream: the text matrix and its parameters (Tfs, Th, Tc, Tw,
// TL, rise), and the chunk bounding-box algorithm that turns a decoded string's glyph-space
// advance into a page-space box. The CTM save-stack (q/Q/cm) is owned by the
// contentstream package's ContentStreamProcessor; the current CTM is pushed into a
// Coordinates via SetCTM on every operator, so the two never keep independent copies of
// graphics-state truth.
package coordinates

import (
	"github.com/wovenfox/pdftext/converter"
	"github.com/wovenfox/pdftext/font"
	"github.com/wovenfox/pdftext/internal/transform"
)

// Default values for text-state parameters (PDF 32000-1:2008 9.3).
const (
	thDefault = 1.0
	tcDefault = 0.0
	twDefault = 0.0
	tlDefault = 0.0
)

// Coordinates tracks the text matrix and the text-state parameters for a single content
// stream. It is created once per content stream (page or Form XObject expansion) and
// discarded when the stream ends; the CTM it uses in Adjust is whatever was last set by
// SetCTM, not state it maintains itself.
type Coordinates struct {
	CTM transform.Matrix

	Tm   transform.Matrix
	Tfs  float64
	Th   float64
	Tc   float64
	Tw   float64
	TL   float64
	Rise float64

	x, y float64
}

// New returns a Coordinates seeded with `ctm` (derived by the caller from page rotation and
// the CropBox) and default text-state parameters.
func New(ctm transform.Matrix) *Coordinates {
	return &Coordinates{
		CTM: ctm,
		Tm:  transform.IdentityMatrix(),
		Th:  thDefault,
		Tc:  tcDefault,
		Tw:  twDefault,
		TL:  tlDefault,
	}
}

// SetCTM installs the CTM current at the time of the operator being processed. The caller
// (the extractor, driven by a ContentStreamProcessor's "all operands" handler) calls this
// before dispatching any operand to Coordinates, since q/Q/cm are handled by the processor,
// not here.
func (c *Coordinates) SetCTM(ctm transform.Matrix) {
	c.CTM = ctm
}

// BeginText resets Tm to identity and zeroes the pending glyph-advance accumulators, as done
// on every BT.
func (c *Coordinates) BeginText() {
	c.Tm = transform.IdentityMatrix()
	c.x, c.y = 0, 0
}

// Td applies a text-line translation: Tm := translate(x,y) · Tm, i.e. the translation is
// applied before the existing Tm, and resets pending x,y.
func (c *Coordinates) Td(tx, ty float64) {
	m := c.Tm
	m.Concat(transform.TranslationMatrix(tx, ty))
	c.Tm = m
	c.x, c.y = 0, 0
}

// TD is Td followed by TL := -ty.
func (c *Coordinates) TD(tx, ty float64) {
	c.Td(tx, ty)
	c.TL = -ty
}

// SetTm replaces Tm outright and resets pending x,y.
func (c *Coordinates) SetTm(m transform.Matrix) {
	c.Tm = m
	c.x, c.y = 0, 0
}

// TStar moves to the start of the next line: Td(0, -TL).
func (c *Coordinates) TStar() {
	c.Td(0, -c.TL)
}

// SetTfs sets the font size.
func (c *Coordinates) SetTfs(v float64) { c.Tfs = v }

// SetTz sets the horizontal scale from a Tz operand expressed as a percentage.
func (c *Coordinates) SetTz(v float64) { c.Th = v / 100 }

// SetTL sets the leading.
func (c *Coordinates) SetTL(v float64) { c.TL = v }

// SetTc sets the character spacing.
func (c *Coordinates) SetTc(v float64) { c.Tc = v }

// SetTw sets the word spacing.
func (c *Coordinates) SetTw(v float64) { c.Tw = v }

// SetRise sets the text rise, in 1/1000 font-size units like Font.Descent.
func (c *Coordinates) SetRise(v float64) { c.Rise = v }

// Adjust implements the chunk bounding-box algorithm: given a decoded string, its glyph
// count, its unscaled width (1/1000 font-size units) and the pending TJ kerning adjustment,
// it returns a positioned TextChunk and advances the pending x accumulator.
func (c *Coordinates) Adjust(s string, glyphLen int, width, tj float64, f *font.Font) converter.TextChunk {
	if tj != 0 {
		c.x -= tj * c.Tfs * c.Th * 0.001
		c.x += c.Tc * c.Th
	}

	ty := (f.Descent + c.Rise) * 0.001 * c.Tfs
	adv := width * 0.001 * c.Tfs * c.Th

	// Tm is applied before CTM: combined = CTM_old.Concat(Tm) gives apply-Tm-then-CTM.
	tmCTM := c.CTM
	tmCTM.Concat(c.Tm)

	tStart := translate(tmCTM, c.x, c.y)

	if glyphLen > 1 {
		c.x += c.Tc * c.Th * float64(glyphLen-1)
	}
	for _, r := range s {
		if r == ' ' {
			c.x += c.Tw * c.Th
		}
	}

	tEnd := translate(tmCTM, c.x, c.y)

	x0s, y0s := tStart.Transform(0, ty)
	x1s, y1s := tEnd.Transform(adv, ty+f.Height*0.001*c.Tfs)

	c.x += adv

	return converter.TextChunk{
		Text: s,
		BBox: converter.BBox{
			X0: min(x0s, x1s),
			Y0: min(y0s, y1s),
			X1: max(x0s, x1s),
			Y1: max(y0s, y1s),
		},
	}
}

// translate returns m with an additional translation by (x, y) prepended, matching the
// original's translate_matrix: keep m's linear part, move the origin.
func translate(m transform.Matrix, x, y float64) transform.Matrix {
	e := x*m.A + y*m.C + m.E
	f := x*m.B + y*m.D + m.F
	return transform.NewMatrix(m.A, m.B, m.C, m.D, e, f)
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
