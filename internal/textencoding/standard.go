/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import "golang.org/x/text/encoding/charmap"

func init() {
	RegisterSimpleEncoding("WinAnsiEncoding", func() SimpleEncoder {
		return newSimpleEncoderFromMap("WinAnsiEncoding", charmapToRuneTable(charmap.Windows1252))
	})
	RegisterSimpleEncoding("MacRomanEncoding", func() SimpleEncoder {
		return newSimpleEncoderFromMap("MacRomanEncoding", charmapToRuneTable(charmap.Macintosh))
	})
	RegisterSimpleEncoding("StandardEncoding", func() SimpleEncoder {
		return newSimpleEncoderFromMap("StandardEncoding", standardEncodingTable())
	})
	RegisterSimpleEncoding("MacExpertEncoding", func() SimpleEncoder {
		// MacExpertEncoding remaps the upper half to small caps, old-style figures and
		// ligatures that have no common Unicode codepoint; we fall back to Standard's
		// lower 0x20-0x7e range and leave the upper half unmapped rather than guess wrong.
		m := standardEncodingTable()
		for b := range m {
			if b > 0x7e {
				delete(m, b)
			}
		}
		return newSimpleEncoderFromMap("MacExpertEncoding", m)
	})
}

// charmapToRuneTable builds a byte->rune decode table from a golang.org/x/text 8-bit charmap.
func charmapToRuneTable(cm *charmap.Charmap) map[byte]rune {
	m := make(map[byte]rune, 256)
	for b := 0; b < 256; b++ {
		r := cm.DecodeByte(byte(b))
		if r == 0 && b != 0 {
			continue
		}
		m[byte(b)] = r
	}
	return m
}

// standardEncodingTable returns Adobe StandardEncoding's byte->rune mapping. The lower half
// matches ASCII except 0x27 and 0x60 (quoteright and quoteleft); the upper half carries the handful of accented Latin letters and punctuation
// marks that distinguish it from WinAnsi/MacRoman.
func standardEncodingTable() map[byte]rune {
	m := make(map[byte]rune, 149)
	for b := 0x20; b < 0x7f; b++ {
		m[byte(b)] = rune(b)
	}
	upper := map[byte]rune{
		0x27: '’', 0x60: '‘',
		0xA1: '¡', 0xA2: '¢', 0xA3: '£', 0xA4: '⁄', 0xA5: '¥',
		0xA6: 'ƒ', 0xA7: '§', 0xA8: '¤', 0xA9: '\'', 0xAA: '“',
		0xAB: '«', 0xAC: '‹', 0xAD: '›', 0xAE: 'ﬁ', 0xAF: 'ﬂ',
		0xB1: '–', 0xB2: '†', 0xB3: '‡', 0xB4: '·', 0xB6: '¶',
		0xB7: '•', 0xB8: '‚', 0xB9: '„', 0xBA: '”', 0xBB: '»',
		0xBC: '…', 0xBD: '‰', 0xBF: '¿',
		0xC1: '`', 0xC2: '´', 0xC3: 'ˆ', 0xC4: '˜', 0xC5: '¯',
		0xC6: '˘', 0xC7: '˙', 0xC8: '¨', 0xCA: '˚', 0xCB: '¸',
		0xCD: '˝', 0xCE: '˛', 0xCF: 'ˇ', 0xD0: '—', 0xE1: 'Æ',
		0xE3: 'ª', 0xE8: 'Ł', 0xE9: 'Ø', 0xEA: 'Œ', 0xEB: 'º',
		0xF1: 'æ', 0xF5: 'ı', 0xF8: 'ł', 0xF9: 'ø', 0xFA: 'œ', 0xFB: 'ß',
	}
	for b, r := range upper {
		m[b] = r
	}
	return m
}
