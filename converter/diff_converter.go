/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package converter

import (
	"github.com/wovenfox/pdftext/font"
	"github.com/wovenfox/pdftext/internal/textencoding"
)

// DiffConverter wraps a byte-oriented CharsetConverter, overlaying a /Differences override
// table: codes present in the table are translated to the table's glyph name's Unicode value;
// codes absent from it fall through to the base converter.
type DiffConverter struct {
	enc textencoding.SimpleEncoder
}

// NewDiffConverter builds a DiffConverter over `base`'s encoding, overlaid with `diffs`. It
// returns nil if base has no byte-oriented encoding to wrap (e.g. a CID/Identity font) or
// there are no differences to apply.
func NewDiffConverter(base *CharsetConverter, diffs map[textencoding.CharCode]textencoding.GlyphName) *DiffConverter {
	if base == nil || base.simple == nil || len(diffs) == 0 {
		return nil
	}
	return &DiffConverter{enc: textencoding.ApplyDifferences(base.simple, diffs)}
}

// CharOf returns the Unicode scalar for a single byte, consulting the /Differences table
// first and falling back to the base encoding.
func (d *DiffConverter) CharOf(code textencoding.CharCode) (string, bool) {
	if d == nil {
		return "", false
	}
	r, ok := d.enc.CharcodeToRune(code)
	if !ok {
		return "", false
	}
	return string(r), true
}

// StringOf decodes the whole byte string `data`, summing per-code widths from `f`.
func (d *DiffConverter) StringOf(data []byte, f *font.Font) (string, float64) {
	var out []rune
	width := 0.0
	for _, b := range data {
		if s, ok := d.CharOf(textencoding.CharCode(b)); ok {
			out = append(out, []rune(s)...)
		}
		width += f.WidthOf(textencoding.CharCode(b))
	}
	return string(out), width
}
