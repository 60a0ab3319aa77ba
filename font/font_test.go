/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package font

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wovenfox/pdftext/internal/textencoding"
	"github.com/wovenfox/pdftext/objstore"
)

type mapStore map[int64]objstore.Object

func (s mapStore) GetObject(ref *objstore.Reference) (objstore.Object, bool) {
	obj, ok := s[ref.ObjectNumber]
	return obj, ok
}

func simpleFontDict(firstChar int64, widths []objstore.Object) *objstore.Dictionary {
	dict := objstore.MakeDict()
	dict.Set("Subtype", objstore.Name("Type1"))
	dict.Set("BaseFont", objstore.Name("Helvetica"))
	dict.Set("FirstChar", objstore.Integer(firstChar))
	dict.Set("Widths", objstore.MakeArray(widths...))
	return dict
}

func TestNewSimpleFontWidths(t *testing.T) {
	dict := simpleFontDict(65, []objstore.Object{objstore.Integer(600), objstore.Integer(700)})

	f, err := New(nil, dict)
	require.NoError(t, err)

	assert.Equal(t, 600.0, f.WidthOf(65))
	assert.Equal(t, 700.0, f.WidthOf(66))
	assert.Equal(t, f.DefaultWidth, f.WidthOf(200))
	assert.Equal(t, "Helvetica", f.BaseFont)
	assert.False(t, f.IsCID)
}

func TestNewType0FontUsesDescendantWidths(t *testing.T) {
	cidDict := objstore.MakeDict()
	cidDict.Set("DW", objstore.Integer(1000))
	cidDict.Set("W", objstore.MakeArray(
		objstore.Integer(3),
		objstore.MakeArray(objstore.Integer(500), objstore.Integer(250)),
	))

	dict := objstore.MakeDict()
	dict.Set("Subtype", objstore.Name("Type0"))
	dict.Set("DescendantFonts", objstore.MakeArray(cidDict))

	f, err := New(nil, dict)
	require.NoError(t, err)

	assert.True(t, f.IsCID)
	assert.Equal(t, 500.0, f.WidthOf(3))
	assert.Equal(t, 250.0, f.WidthOf(4))
	assert.Equal(t, 1000.0, f.WidthOf(999))
}

func TestNewType3FontIsUnsupported(t *testing.T) {
	dict := objstore.MakeDict()
	dict.Set("Subtype", objstore.Name("Type3"))

	_, err := New(nil, dict)
	require.Error(t, err)
	assert.True(t, errors.Is(err, objstore.ErrNotSupported))
}

func TestNewNonDictionaryIsError(t *testing.T) {
	_, err := New(nil, objstore.Integer(5))
	assert.Error(t, err)
}

func TestSpaceWidthHeuristicPrefersWidthsMinimum(t *testing.T) {
	dict := simpleFontDict(65, []objstore.Object{objstore.Integer(600), objstore.Integer(400)})

	f, err := New(nil, dict)
	require.NoError(t, err)

	assert.Equal(t, 200.0, f.SpaceWidth)
}

func TestSpaceWidthHeuristicFallsBackToDescriptorMissingWidth(t *testing.T) {
	dict := simpleFontDict(65, nil)
	desc := objstore.MakeDict()
	desc.Set("MissingWidth", objstore.Integer(300))
	dict.Set("FontDescriptor", desc)

	f, err := New(nil, dict)
	require.NoError(t, err)

	assert.Equal(t, 150.0, f.SpaceWidth)
}

func TestSpaceWidthHeuristicFallsBackToDefault(t *testing.T) {
	dict := simpleFontDict(65, nil)

	f, err := New(nil, dict)
	require.NoError(t, err)

	assert.Equal(t, defaultSpaceWidth, f.SpaceWidth)
}

func TestWidthOfNilFontIsZero(t *testing.T) {
	var f *Font
	assert.Equal(t, 0.0, f.WidthOf(textencoding.CharCode(65)))
}

func TestToUnicodeCMapAbsentReturnsNil(t *testing.T) {
	dict := objstore.MakeDict()
	cm, err := ToUnicodeCMap(nil, dict)
	require.NoError(t, err)
	assert.Nil(t, cm)
}
