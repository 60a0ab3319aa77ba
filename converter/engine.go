/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package converter

import (
	"fmt"

	"github.com/wovenfox/pdftext/font"
	"github.com/wovenfox/pdftext/internal/textencoding"
	"github.com/wovenfox/pdftext/objstore"
)

// TextChunk is a decoded, positioned run of text, the unit of output for the
// text-extraction core.
type TextChunk struct {
	Text string
	BBox BBox
}

// BBox is an axis-aligned bounding box in page space.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// Coordinates is the subset of the coordinates package's state that Adjust needs. It is
// defined here, rather than imported, to avoid a dependency cycle: the coordinates package
// imports this package for TextChunk, and ConverterEngine calls back into Coordinates.Adjust.
type Coordinates interface {
	Adjust(text string, glyphLen int, width, tj float64, f *font.Font) TextChunk
}

// ConverterEngine composes a CharsetConverter, an optional DiffConverter and an optional
// ToUnicodeConverter for a single font, producing positioned text chunks from shown byte
// strings.
type ConverterEngine struct {
	Font *font.Font

	base       *CharsetConverter
	diff       *DiffConverter
	toUnicode  *ToUnicodeConverter
}

// NewEngine builds a ConverterEngine for the font dictionary `obj`, resolving indirect
// references through `store`.
func NewEngine(store objstore.Store, obj objstore.Object, f *font.Font) (*ConverterEngine, error) {
	dict, ok := objstore.GetDict(store, obj)
	if !ok {
		return nil, fmt.Errorf("converter: font object is not a dictionary: %T", obj)
	}

	subtype, _ := objstore.GetName(store, dict.Get("Subtype"))
	encodingName, diffs, err := resolveEncoding(store, dict)
	if err != nil {
		return nil, err
	}

	base := NewCharsetConverter(encodingName, subtype == "Type0")
	diff := NewDiffConverter(base, diffs)

	tu, err := font.ToUnicodeCMap(store, obj)
	if err != nil {
		return nil, err
	}

	return &ConverterEngine{
		Font:      f,
		base:      base,
		diff:      diff,
		toUnicode: NewToUnicodeConverter(tu),
	}, nil
}

// resolveEncoding reads a font dictionary's /Encoding entry, which is either a Name (a
// predefined base encoding or a predefined CJK CMap name) or a Dictionary with
// /BaseEncoding and /Differences.
func resolveEncoding(store objstore.Store, dict *objstore.Dictionary) (string, map[textencoding.CharCode]textencoding.GlyphName, error) {
	enc := objstore.Resolve(store, dict.Get("Encoding"))
	switch t := enc.(type) {
	case objstore.Name:
		return string(t), nil, nil
	case *objstore.Dictionary:
		name, _ := objstore.GetName(store, t.Get("BaseEncoding"))
		var diffs map[textencoding.CharCode]textencoding.GlyphName
		if diffObj := objstore.Resolve(store, t.Get("Differences")); !objstore.IsNull(diffObj) {
			arr, ok := diffObj.(*objstore.Array)
			if !ok {
				return "", nil, fmt.Errorf("converter: /Differences is not an array: %T", diffObj)
			}
			d, err := textencoding.FromFontDifferences(arr)
			if err != nil {
				return "", nil, err
			}
			diffs = d
		}
		return string(name), diffs, nil
	}
	return "", nil, nil
}

// IsVertical reports whether this font's active encoding writes vertically.
func (e *ConverterEngine) IsVertical() bool {
	if e.toUnicode.IsVertical() {
		return true
	}
	return e.base != nil && e.base.IsVertical()
}

// diffOrBase returns the DiffConverter if one is configured, else the base CharsetConverter,
// matching the "diff_or_base" fallback chain.
func (e *ConverterEngine) diffOrBase(data []byte) (string, float64) {
	if e.diff != nil {
		return e.diff.StringOf(data, e.Font)
	}
	return e.base.StringOf(data, e.Font)
}

// GetString decodes the shown byte string `data` and asks `coords` to place it, given the
// pending TJ kerning adjustment `tj` (0 if none).
func (e *ConverterEngine) GetString(data []byte, coords Coordinates, tj float64) TextChunk {
	if e.toUnicode == nil {
		text, width := e.diffOrBase(data)
		return coords.Adjust(text, len([]rune(text)), width, tj, e.Font)
	}

	var text []rune
	width := 0.0
	glyphLen := 0
	i := 0
	for i < len(data) {
		if t, w, n, ok := e.toUnicode.TryDecode(data, i, e.Font); ok {
			text = append(text, []rune(t)...)
			width += w
			glyphLen += len([]rune(t))
			i += n
			continue
		}

		// Fall back to a single-byte decode.
		var s string
		if e.diff != nil {
			s, _ = e.diff.CharOf(textencoding.CharCode(data[i]))
		} else {
			s, _ = e.base.CharOf(data[i])
		}
		if s != "" {
			text = append(text, []rune(s)...)
			glyphLen += len([]rune(s))
		} else {
			glyphLen++
		}
		width += e.Font.WidthOf(textencoding.CharCode(data[i]))
		i++
	}

	return coords.Adjust(string(text), glyphLen, width, tj, e.Font)
}

// GetStringsFromArray decodes a TJ operator's array operand: a sequence of shown strings
// interleaved with numeric kerning adjustments. A positive number shifts the origin left (no
// space inserted); a negative number whose magnitude exceeds the font's space-width heuristic
// appends a literal space to the running output at the current position. Chunks with empty
// decoded text are dropped.
func (e *ConverterEngine) GetStringsFromArray(arr *objstore.Array, coords Coordinates) ([]TextChunk, error) {
	var chunks []TextChunk
	tj := 0.0

	note := func(v float64) {
		tj = v
		if v < 0 && -v > e.Font.SpaceWidth {
			chunks = append(chunks, coords.Adjust(" ", 1, 0, 0, e.Font))
		}
	}

	for _, el := range arr.Elements() {
		switch v := el.(type) {
		case *objstore.Integer:
			note(float64(*v))
		case objstore.Integer:
			note(float64(v))
		case *objstore.Float:
			note(float64(*v))
		case objstore.Float:
			note(float64(v))
		case *objstore.String:
			chunk := e.GetString(v.Bytes(), coords, tj)
			tj = 0
			if chunk.Text == "" {
				continue
			}
			chunks = append(chunks, chunk)
		default:
			return nil, fmt.Errorf("converter: invalid TJ array element: %T", el)
		}
	}

	return chunks, nil
}
