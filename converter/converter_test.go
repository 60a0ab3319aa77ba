/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wovenfox/pdftext/font"
	"github.com/wovenfox/pdftext/internal/textencoding"
	"github.com/wovenfox/pdftext/objstore"
)

// recordingCoords is a minimal Coordinates stand-in that records each Adjust call, letting
// converter tests observe what text and spacing decisions reached the positioning layer
// without depending on the coordinates package (which imports this one).
type recordingCoords struct {
	calls []TextChunk
}

func (r *recordingCoords) Adjust(s string, glyphLen int, width, tj float64, f *font.Font) TextChunk {
	chunk := TextChunk{Text: s, BBox: BBox{X0: tj, X1: width}}
	r.calls = append(r.calls, chunk)
	return chunk
}

func simpleFont(spaceWidth float64) *font.Font {
	return &font.Font{
		Widths:       map[textencoding.CharCode]float64{},
		DefaultWidth: 500,
		SpaceWidth:   spaceWidth,
	}
}

func TestCharsetConverterStandardEncodingRoundTrip(t *testing.T) {
	c := NewCharsetConverter("StandardEncoding", false)

	r, ok := c.CharOf('A')
	require.True(t, ok)
	assert.Equal(t, "A", r)
}

func TestCharsetConverterWinAnsiEncoding(t *testing.T) {
	c := NewCharsetConverter("WinAnsiEncoding", false)

	r, ok := c.CharOf(0xE9) // é in WinAnsi.
	require.True(t, ok)
	assert.Equal(t, "é", r)
}

func TestCharsetConverterIdentityTwoByte(t *testing.T) {
	c := NewCharsetConverter("Identity-H", true)
	f := simpleFont(250)

	text, width := c.StringOf([]byte{0x00, 0x41, 0x00, 0x42}, f)
	assert.Equal(t, "AB", text)
	assert.Equal(t, 1000.0, width) // two codes at DefaultWidth=500 each.
}

func TestDiffConverterOverridesBaseEncoding(t *testing.T) {
	base := NewCharsetConverter("StandardEncoding", false)
	diffs := map[textencoding.CharCode]textencoding.GlyphName{
		65: "Adieresis",
		66: "Aring",
	}
	d := NewDiffConverter(base, diffs)
	require.NotNil(t, d)

	s, ok := d.CharOf(65)
	require.True(t, ok)
	assert.Equal(t, "Ä", s)

	s, ok = d.CharOf(66)
	require.True(t, ok)
	assert.Equal(t, "Å", s)

	// A code absent from Differences falls through to the base encoding.
	s, ok = d.CharOf('C')
	require.True(t, ok)
	assert.Equal(t, "C", s)
}

func TestNewDiffConverterNilWhenNoDifferences(t *testing.T) {
	base := NewCharsetConverter("StandardEncoding", false)
	assert.Nil(t, NewDiffConverter(base, nil))
}

func TestNewDiffConverterNilForCIDBase(t *testing.T) {
	base := NewCharsetConverter("Identity-H", true)
	diffs := map[textencoding.CharCode]textencoding.GlyphName{65: "Adieresis"}
	assert.Nil(t, NewDiffConverter(base, diffs))
}

func TestGetStringsFromArrayInsertsSpaceAboveThreshold(t *testing.T) {
	f := simpleFont(500)
	e := &ConverterEngine{
		Font: f,
		base: NewCharsetConverter("StandardEncoding", false),
	}
	coords := &recordingCoords{}

	arr := objstore.MakeArray(
		objstore.MakeString("A"),
		objstore.Integer(-600),
		objstore.MakeString("B"),
	)

	chunks, err := e.GetStringsFromArray(arr, coords)
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	assert.Equal(t, "A", chunks[0].Text)
	assert.Equal(t, " ", chunks[1].Text)
	assert.Equal(t, "B", chunks[2].Text)
}

func TestGetStringsFromArraySkipsSpaceBelowThreshold(t *testing.T) {
	f := simpleFont(500)
	e := &ConverterEngine{
		Font: f,
		base: NewCharsetConverter("StandardEncoding", false),
	}
	coords := &recordingCoords{}

	arr := objstore.MakeArray(
		objstore.MakeString("A"),
		objstore.Integer(-100),
		objstore.MakeString("B"),
	)

	chunks, err := e.GetStringsFromArray(arr, coords)
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, "A", chunks[0].Text)
	assert.Equal(t, "B", chunks[1].Text)
}

func TestGetStringsFromArrayPositiveAdjustmentNeverInsertsSpace(t *testing.T) {
	f := simpleFont(100)
	e := &ConverterEngine{
		Font: f,
		base: NewCharsetConverter("StandardEncoding", false),
	}
	coords := &recordingCoords{}

	arr := objstore.MakeArray(
		objstore.MakeString("A"),
		objstore.Integer(900),
		objstore.MakeString("B"),
	)

	chunks, err := e.GetStringsFromArray(arr, coords)
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, "A", chunks[0].Text)
	assert.Equal(t, "B", chunks[1].Text)
}

func TestGetStringsFromArrayRejectsInvalidElement(t *testing.T) {
	e := &ConverterEngine{
		Font: simpleFont(100),
		base: NewCharsetConverter("StandardEncoding", false),
	}
	arr := objstore.MakeArray(objstore.Name("Bogus"))

	_, err := e.GetStringsFromArray(arr, &recordingCoords{})
	assert.Error(t, err)
}
