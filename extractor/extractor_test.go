/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wovenfox/pdftext/contentstream"
	"github.com/wovenfox/pdftext/internal/transform"
	"github.com/wovenfox/pdftext/objstore"
)

type fakeStore map[int64]objstore.Object

func (s fakeStore) GetObject(ref *objstore.Reference) (objstore.Object, bool) {
	obj, ok := s[ref.ObjectNumber]
	return obj, ok
}

// simpleFontDict builds a minimal non-CID font dictionary usable by both font.New and
// converter.NewEngine.
func simpleFontDict(encoding objstore.Name) *objstore.Dictionary {
	dict := objstore.MakeDict()
	dict.Set("Subtype", objstore.Name("TrueType"))
	dict.Set("BaseFont", objstore.Name("Helvetica"))
	dict.Set("Encoding", encoding)
	return dict
}

func pageWithContent(content string, fonts map[string]objstore.Object) *objstore.Dictionary {
	fontDict := objstore.MakeDict()
	for name, obj := range fonts {
		fontDict.Set(objstore.Name(name), obj)
	}
	resources := objstore.MakeDict()
	resources.Set("Font", fontDict)

	page := objstore.MakeDict()
	page.Set("Type", objstore.Name("Page"))
	page.Set("Resources", resources)
	page.Set("MediaBox", objstore.MakeArray(objstore.Integer(0), objstore.Integer(0), objstore.Integer(612), objstore.Integer(792)))
	page.Set("Contents", &objstore.Stream{Dictionary: objstore.MakeDict(), Raw: []byte(content)})
	return page
}

// TestExtractAllSimplePage pins scenario S1 end to end through the page-tree walker.
func TestExtractAllSimplePage(t *testing.T) {
	page := pageWithContent(`BT /F1 12 Tf 100 200 Td (Hi) Tj ET`, map[string]objstore.Object{
		"F1": simpleFontDict("WinAnsiEncoding"),
	})

	pagesRoot := objstore.MakeDict()
	pagesRoot.Set("Type", objstore.Name("Pages"))
	pagesRoot.Set("Kids", objstore.MakeArray(page))

	e := New(nil)
	pages, err := e.ExtractAll(pagesRoot)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Len(t, pages[0], 1)

	assert.Equal(t, "Hi", pages[0][0].Text)
	assert.Equal(t, 100.0, pages[0][0].BBox.X0)
}

// TestPageTreeInheritance pins scenario S8: a leaf page that declares neither /Resources nor
// /Rotate inherits both from its ancestors, and an intermediate node overriding only /Rotate
// does not disturb the /Resources it did not set.
func TestPageTreeInheritance(t *testing.T) {
	fontDict := objstore.MakeDict()
	fontDict.Set("F1", simpleFontDict("WinAnsiEncoding"))
	rootResources := objstore.MakeDict()
	rootResources.Set("Font", fontDict)

	leaf := objstore.MakeDict()
	leaf.Set("Type", objstore.Name("Page"))
	leaf.Set("Contents", &objstore.Stream{
		Dictionary: objstore.MakeDict(),
		Raw:        []byte(`BT /F1 12 Tf 0 0 Td (Hi) Tj ET`),
	})

	intermediate := objstore.MakeDict()
	intermediate.Set("Type", objstore.Name("Pages"))
	intermediate.Set("Rotate", objstore.Integer(90))
	intermediate.Set("Kids", objstore.MakeArray(leaf))

	root := objstore.MakeDict()
	root.Set("Type", objstore.Name("Pages"))
	root.Set("Resources", rootResources)
	root.Set("MediaBox", objstore.MakeArray(objstore.Integer(0), objstore.Integer(0), objstore.Integer(100), objstore.Integer(200)))
	root.Set("Kids", objstore.MakeArray(intermediate))

	e := New(nil)
	pages, err := e.ExtractAll(root)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Len(t, pages[0], 1)
	assert.Equal(t, "Hi", pages[0][0].Text)
}

// TestPageTreeCycleGuardTerminates pins property #8 for the page-tree walker: a node that is
// (through the same *Reference instance a real loader would hand back for one object number)
// its own descendant is visited once and does not recurse forever.
func TestPageTreeCycleGuardTerminates(t *testing.T) {
	ref := &objstore.Reference{ObjectNumber: 1}

	root := objstore.MakeDict()
	root.Set("Type", objstore.Name("Pages"))
	root.Set("Kids", objstore.MakeArray(ref))

	store := fakeStore{1: root}

	e := New(store)
	pages, err := e.ExtractAll(ref)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

// TestFormXObjectCycleGuardTerminates pins property #8 for Form XObject recursion: a Form
// whose content invokes itself via the same named XObject terminates instead of recursing
// until maxFormDepth.
func TestFormXObjectCycleGuardTerminates(t *testing.T) {
	formDict := objstore.MakeDict()
	formDict.Set("Subtype", objstore.Name("Form"))
	form := &objstore.Stream{Dictionary: formDict, Raw: []byte(`/X1 Do`)}

	xobjDict := objstore.MakeDict()
	xobjDict.Set("X1", form)
	formResources := objstore.MakeDict()
	formResources.Set("XObject", xobjDict)
	formDict.Set("Resources", formResources)

	pageResources := contentstream.NewResources(formResources, nil)

	e := New(nil)
	chunks, err := e.interpret(`/X1 Do`, pageResources, transform.IdentityMatrix(), map[*objstore.Stream]struct{}{}, 0)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

// TestFormXObjectMatrixAndResourceFallback pins scenario S7: a Form XObject with its own
// /Matrix but no /Resources falls back to the caller's font resources, and the Matrix is
// applied before the outer CTM.
func TestFormXObjectMatrixAndResourceFallback(t *testing.T) {
	formDict := objstore.MakeDict()
	formDict.Set("Subtype", objstore.Name("Form"))
	formDict.Set("Matrix", objstore.MakeArray(
		objstore.Integer(1), objstore.Integer(0), objstore.Integer(0),
		objstore.Integer(1), objstore.Integer(50), objstore.Integer(50),
	))
	form := &objstore.Stream{
		Dictionary: formDict,
		Raw:        []byte(`BT /F1 12 Tf 0 0 Td (A) Tj ET`),
	}

	xobjDict := objstore.MakeDict()
	xobjDict.Set("X1", form)

	page := pageWithContent(`/X1 Do`, map[string]objstore.Object{
		"F1": simpleFontDict("WinAnsiEncoding"),
	})
	page.Get("Resources").(*objstore.Dictionary).Set("XObject", xobjDict)

	pagesRoot := objstore.MakeDict()
	pagesRoot.Set("Kids", objstore.MakeArray(page))

	e := New(nil)
	pages, err := e.ExtractAll(pagesRoot)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Len(t, pages[0], 1)

	assert.Equal(t, "A", pages[0][0].Text)
	assert.Equal(t, 50.0, pages[0][0].BBox.X0)
}

// TestUnsupportedFontToleratedPerPage pins scenario S9: a Type3 font (unsupported) does not
// abort page extraction; other fonts on the same page still emit chunks.
func TestUnsupportedFontToleratedPerPage(t *testing.T) {
	type3 := objstore.MakeDict()
	type3.Set("Subtype", objstore.Name("Type3"))

	page := pageWithContent(
		`BT /F1 12 Tf (Skip) Tj /F2 12 Tf 100 200 Td (Hi) Tj ET`,
		map[string]objstore.Object{
			"F1": type3,
			"F2": simpleFontDict("WinAnsiEncoding"),
		},
	)

	pagesRoot := objstore.MakeDict()
	pagesRoot.Set("Kids", objstore.MakeArray(page))

	e := New(nil)
	pages, err := e.ExtractAll(pagesRoot)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Len(t, pages[0], 1)
	assert.Equal(t, "Hi", pages[0][0].Text)
}

// TestInitialCTMRotation90 pins scenario S6: a /Rotate 90 page puts a point nearer the
// unrotated left edge further along the new (rotated) x axis than it started.
func TestInitialCTMRotation90(t *testing.T) {
	attrs := pageAttrs{cropBox: [4]float64{0, 0, 100, 200}, rotate: 90}
	ctm := initialCTM(attrs)

	x, y := ctm.Transform(10, 20)

	assert.True(t, x >= 0 && x <= 200, "x %v out of [0,200]", x)
	assert.True(t, y >= 0 && y <= 100, "y %v out of [0,100]", y)
	assert.Greater(t, x, 10.0, "rotated x0 should exceed the unrotated x0")
}
