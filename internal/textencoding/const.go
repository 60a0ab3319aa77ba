/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import "github.com/wovenfox/pdftext/internal/glyphlist"

// MissingCodeRune is substituted for a character code or glyph that cannot be decoded.
const MissingCodeRune = '�' // replacement character

// MissingCodeString is MissingCodeRune as a string.
const MissingCodeString = string(MissingCodeRune)

// GlyphToRune returns the rune that glyph name `glyph` refers to.
func GlyphToRune(glyph GlyphName) (rune, bool) {
	return glyphlist.ToRune(string(glyph))
}

// RuneToGlyph returns a glyph name for rune `r`.
func RuneToGlyph(r rune) (GlyphName, bool) {
	name, ok := glyphlist.FromRune(r)
	return GlyphName(name), ok
}
