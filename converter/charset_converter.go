/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package converter

import (
	"unicode/utf16"

	"github.com/wovenfox/pdftext/common"
	"github.com/wovenfox/pdftext/font"
	"github.com/wovenfox/pdftext/internal/textencoding"
)

// CharsetConverter decodes byte strings according to a single Mode, chosen by a font's
// /Encoding name or inferred from its subtype. It is stateless after construction.
type CharsetConverter struct {
	mode    Mode
	charset namedCharset
	simple  textencoding.SimpleEncoder // for Standard/MacExpert/MacRoman/WinAnsi
}

// NewCharsetConverter builds a CharsetConverter for the given /Encoding name (possibly empty,
// meaning "infer from subtype"). isCID selects the default used when name is empty
// (IdentityTwoByte for a CID font, StandardEncoding otherwise); an unrecognised name falls
// back to StandardEncoding whatever isCID says.
func NewCharsetConverter(encodingName string, isCID bool) *CharsetConverter {
	if encodingName == "" {
		if isCID {
			return &CharsetConverter{mode: ModeIdentityTwoByte}
		}
		return newBuiltinConverter(ModeStandard)
	}

	mode, cs := resolveEncodingName(encodingName)
	switch mode {
	case ModeStandard, ModeMacExpert, ModeMacRoman, ModeWinAnsi:
		return newBuiltinConverter(mode)
	case ModeIdentityTwoByte, ModeUtf8Passthrough:
		return &CharsetConverter{mode: mode, charset: cs}
	case ModeNamedCharset:
		return &CharsetConverter{mode: mode, charset: cs}
	}
	return newBuiltinConverter(ModeStandard)
}

func newBuiltinConverter(mode Mode) *CharsetConverter {
	name := map[Mode]string{
		ModeStandard:   "StandardEncoding",
		ModeMacExpert:  "MacExpertEncoding",
		ModeMacRoman:   "MacRomanEncoding",
		ModeWinAnsi:    "WinAnsiEncoding",
	}[mode]
	enc, err := textencoding.NewSimpleTextEncoder(name, nil)
	if err != nil {
		common.Log.Debug("ERROR: NewCharsetConverter: %v", err)
		return &CharsetConverter{mode: mode}
	}
	return &CharsetConverter{mode: mode, simple: enc}
}

// IsVertical returns true if this converter decodes a vertical-writing encoding: Identity-V
// or a V-suffixed CJK encoding name.
func (c *CharsetConverter) IsVertical() bool {
	return c.charset.vertical
}

// CharOf returns the Unicode scalar(s) for a single byte, for the byte-oriented modes.
// It returns ("", false) for modes that require multi-byte input (IdentityTwoByte,
// NamedCharset).
func (c *CharsetConverter) CharOf(b byte) (string, bool) {
	switch c.mode {
	case ModeUtf8Passthrough:
		return string(rune(b)), true
	case ModeStandard, ModeMacExpert, ModeMacRoman, ModeWinAnsi:
		if c.simple == nil {
			return "", false
		}
		r, ok := c.simple.CharcodeToRune(textencoding.CharCode(b))
		if !ok {
			return "", false
		}
		return string(r), true
	}
	return "", false
}

// StringOf decodes the whole byte string `data`, returning the decoded UTF-8 text and the
// total unscaled advance width (sum of font.WidthOf over each code, in 1/1000 units).
func (c *CharsetConverter) StringOf(data []byte, f *font.Font) (string, float64) {
	switch c.mode {
	case ModeIdentityTwoByte:
		return c.decodeIdentityTwoByte(data, f)
	case ModeNamedCharset:
		return c.decodeNamedCharset(data, f)
	case ModeUtf8Passthrough:
		_, width := c.decodeBytewise(data, f)
		return string(data), width
	default:
		return c.decodeBytewise(data, f)
	}
}

func (c *CharsetConverter) decodeBytewise(data []byte, f *font.Font) (string, float64) {
	var out []rune
	width := 0.0
	for _, b := range data {
		if s, ok := c.CharOf(b); ok {
			out = append(out, []rune(s)...)
		}
		width += f.WidthOf(textencoding.CharCode(b))
	}
	return string(out), width
}

func (c *CharsetConverter) decodeIdentityTwoByte(data []byte, f *font.Font) (string, float64) {
	var units []uint16
	width := 0.0
	for i := 0; i+1 < len(data); i += 2 {
		code := uint16(data[i])<<8 | uint16(data[i+1])
		units = append(units, code)
		width += f.WidthOf(textencoding.CharCode(code))
	}
	return string(utf16.Decode(units)), width
}

func (c *CharsetConverter) decodeNamedCharset(data []byte, f *font.Font) (string, float64) {
	width := 0.0
	// Width is still keyed by 2-byte code for the CID fonts these named charsets serve.
	for i := 0; i+1 < len(data); i += 2 {
		code := uint16(data[i])<<8 | uint16(data[i+1])
		width += f.WidthOf(textencoding.CharCode(code))
	}
	if len(data)%2 == 1 {
		width += f.WidthOf(textencoding.CharCode(data[len(data)-1]))
	}

	if c.charset.enc == nil {
		// No concrete x/text encoding available for this label (e.g. some ISO-2022 variants):
		// fall back to treating the bytes as UTF-16BE, which is the common case in practice.
		return c.decodeIdentityTwoByteText(data), width
	}
	text, err := c.charset.enc.NewDecoder().String(string(data))
	if err != nil {
		common.Log.Debug("ERROR: NamedCharset decode (%s): %v", c.charset.label, err)
		return "", width
	}
	return text, width
}

func (c *CharsetConverter) decodeIdentityTwoByteText(data []byte) string {
	var units []uint16
	for i := 0; i+1 < len(data); i += 2 {
		units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
	}
	return string(utf16.Decode(units))
}
