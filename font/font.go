/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package font implements the per-font descriptor cache that the text-extraction core
// consults for glyph widths and the metrics needed to place a decoded glyph in page space:
// ascent, descent, height, rise and the space-width heuristic.
package font

import (
	"fmt"

	"github.com/wovenfox/pdftext/common"
	"github.com/wovenfox/pdftext/internal/cmap"
	"github.com/wovenfox/pdftext/internal/textencoding"
	"github.com/wovenfox/pdftext/objstore"
)

// defaultSpaceWidth is used when none of the space-width heuristic's data sources are present.
const defaultSpaceWidth = 100.0

// Font is the per-font descriptor cache used by the converter and coordinates packages.
// Widths are in 1/1000 of the font size, matching the PDF glyph space convention.
type Font struct {
	Widths       map[textencoding.CharCode]float64
	DefaultWidth float64

	Ascent  float64
	Descent float64
	Height  float64
	Rise    float64

	SpaceWidth float64

	// BaseFont is the font's /BaseFont name, kept for diagnostics.
	BaseFont string
	// IsCID is true for Type0/composite fonts, which use 2-byte (or CMap-defined) codes.
	IsCID bool
}

// WidthOf returns the width of `code`, in 1/1000 font-size units, falling back to
// DefaultWidth when the code has no explicit width.
func (f *Font) WidthOf(code textencoding.CharCode) float64 {
	if f == nil {
		return 0
	}
	if w, ok := f.Widths[code]; ok {
		return w
	}
	return f.DefaultWidth
}

// New builds a Font from a font dictionary `obj`, resolving indirect references through
// `store`. It handles both simple fonts (/Widths, /FirstChar) and Type0 composite fonts
// (the descendant CIDFont's /W, /DW arrays).
func New(store objstore.Store, obj objstore.Object) (*Font, error) {
	dict, ok := objstore.GetDict(store, obj)
	if !ok {
		return nil, fmt.Errorf("font: font object is not a dictionary: %T", obj)
	}

	f := &Font{Widths: map[textencoding.CharCode]float64{}, DefaultWidth: 0, Height: 1.0}
	if name, ok := objstore.GetName(store, dict.Get("BaseFont")); ok {
		f.BaseFont = string(name)
	}

	subtype, _ := objstore.GetName(store, dict.Get("Subtype"))

	if subtype == "Type3" {
		// Type3 glyphs are themselves content streams scaled by /FontMatrix, not width-table
		// entries; reconstructing their metrics is outside what a width/advance record can
		// express, so callers are told to tolerate the font rather than abort the page.
		return nil, fmt.Errorf("font: Type3 fonts: %w", objstore.ErrNotSupported)
	}

	var fontDescriptorObj objstore.Object
	if subtype == "Type0" {
		f.IsCID = true
		descendants, ok := objstore.GetArray(store, dict.Get("DescendantFonts"))
		if !ok || descendants.Len() == 0 {
			return nil, fmt.Errorf("font: Type0 font missing DescendantFonts")
		}
		cidDict, ok := objstore.GetDict(store, descendants.Get(0))
		if !ok {
			return nil, fmt.Errorf("font: DescendantFonts[0] is not a dictionary")
		}

		dw := 1000.0
		if v, err := objstore.GetNumberAsFloat(store, cidDict.Get("DW")); err == nil {
			dw = v
		}
		f.DefaultWidth = dw

		widths, err := parseCIDFontWidthsArray(store, cidDict.Get("W"))
		if err != nil {
			return nil, err
		}
		f.Widths = widths

		fontDescriptorObj = cidDict.Get("FontDescriptor")
	} else {
		widths, defaultWidth, err := parseSimpleFontWidths(store, dict)
		if err != nil {
			return nil, err
		}
		f.Widths = widths
		f.DefaultWidth = defaultWidth

		fontDescriptorObj = dict.Get("FontDescriptor")
	}

	desc, hasDesc := objstore.GetDict(store, fontDescriptorObj)
	if hasDesc {
		if v, err := objstore.GetNumberAsFloat(store, desc.Get("Ascent")); err == nil {
			f.Ascent = v
		}
		if v, err := objstore.GetNumberAsFloat(store, desc.Get("Descent")); err == nil {
			f.Descent = v
		}
		if v, err := objstore.GetNumberAsFloat(store, desc.Get("CapHeight")); err == nil && v != 0 {
			f.Height = v
		} else if f.Ascent-f.Descent > 0 {
			f.Height = f.Ascent - f.Descent
		}
	} else if f.Ascent-f.Descent > 0 {
		f.Height = f.Ascent - f.Descent
	}

	f.SpaceWidth = spaceWidthHeuristic(store, dict, desc, hasDesc, f.Widths, f.DefaultWidth, subtype == "Type0")

	return f, nil
}

// parseSimpleFontWidths reads a simple font's /Widths array, keyed by /FirstChar, returning the
// per-code width map and the default width (/FontDescriptor's /MissingWidth, or 0).
func parseSimpleFontWidths(store objstore.Store, dict *objstore.Dictionary) (map[textencoding.CharCode]float64, float64, error) {
	widths := map[textencoding.CharCode]float64{}

	firstChar, _ := objstore.ToInt(objstore.Resolve(store, dict.Get("FirstChar")))
	if arr, ok := objstore.GetArray(store, dict.Get("Widths")); ok {
		vals, err := arr.ToFloat64Slice(store)
		if err != nil {
			return nil, 0, fmt.Errorf("font: bad /Widths array: %v", err)
		}
		for i, w := range vals {
			widths[textencoding.CharCode(firstChar+int64(i))] = w
		}
	}

	defaultWidth := 0.0
	if desc, ok := objstore.GetDict(store, dict.Get("FontDescriptor")); ok {
		if v, err := objstore.GetNumberAsFloat(store, desc.Get("MissingWidth")); err == nil {
			defaultWidth = v
		}
	}

	return widths, defaultWidth, nil
}

// parseCIDFontWidthsArray parses a CIDFont's /W array: a sequence of either
// `cFirst [w1 w2 ... wn]` (explicit per-CID widths) or `cFirst cLast w` (a uniform range).
func parseCIDFontWidthsArray(store objstore.Store, w objstore.Object) (map[textencoding.CharCode]float64, error) {
	widths := map[textencoding.CharCode]float64{}
	arr, ok := objstore.GetArray(store, w)
	if !ok {
		return widths, nil
	}

	n := arr.Len()
	for i := 0; i < n-1; i++ {
		first, err := objstore.ToInt(objstore.Resolve(store, arr.Get(i)))
		if err != nil {
			return nil, fmt.Errorf("font: bad /W entry at %d: %v", i, err)
		}
		i++
		if i > n-1 {
			return nil, fmt.Errorf("font: truncated /W array")
		}

		next := objstore.Resolve(store, arr.Get(i))
		if sub, ok := next.(*objstore.Array); ok {
			vals, err := sub.ToFloat64Slice(store)
			if err != nil {
				return nil, fmt.Errorf("font: bad /W width sub-array: %v", err)
			}
			for j, v := range vals {
				widths[textencoding.CharCode(first+int64(j))] = v
			}
			continue
		}

		last, err := objstore.ToInt(next)
		if err != nil {
			return nil, fmt.Errorf("font: bad /W range end at %d: %v", i, err)
		}
		i++
		if i > n-1 {
			return nil, fmt.Errorf("font: truncated /W array")
		}
		v, err := objstore.GetNumberAsFloat(store, arr.Get(i))
		if err != nil {
			return nil, fmt.Errorf("font: bad /W range width at %d: %v", i, err)
		}
		for cid := first; cid <= last; cid++ {
			widths[textencoding.CharCode(cid)] = v
		}
	}

	return widths, nil
}

// spaceWidthHeuristic implements the priority chain from the spec: /Widths minimum,
// /W minimum, /DW, /FontDescriptor AvgWidth or MissingWidth, each halved, falling back
// to defaultSpaceWidth.
func spaceWidthHeuristic(store objstore.Store, dict, desc *objstore.Dictionary, hasDesc bool,
	widths map[textencoding.CharCode]float64, defaultWidth float64, isCID bool) float64 {

	if m, ok := minPositive(widths); ok {
		return m / 2
	}

	if isCID {
		if v, err := objstore.GetNumberAsFloat(store, firstDescendantDW(store, dict)); err == nil && v > 0 {
			return v / 2
		}
	}

	if hasDesc {
		if v, err := objstore.GetNumberAsFloat(store, desc.Get("AvgWidth")); err == nil && v > 0 {
			return v / 2
		}
		if v, err := objstore.GetNumberAsFloat(store, desc.Get("MissingWidth")); err == nil && v > 0 {
			return v / 2
		}
	}

	return defaultSpaceWidth
}

func firstDescendantDW(store objstore.Store, dict *objstore.Dictionary) objstore.Object {
	descendants, ok := objstore.GetArray(store, dict.Get("DescendantFonts"))
	if !ok || descendants.Len() == 0 {
		return nil
	}
	cidDict, ok := objstore.GetDict(store, descendants.Get(0))
	if !ok {
		return nil
	}
	return cidDict.Get("DW")
}

func minPositive(widths map[textencoding.CharCode]float64) (float64, bool) {
	min := 0.0
	found := false
	for _, w := range widths {
		if w > 0 && (!found || w < min) {
			min = w
			found = true
		}
	}
	return min, found
}

// ToUnicodeCMap extracts and parses the font's embedded /ToUnicode CMap, if present. It
// returns (nil, nil) when the font has no /ToUnicode entry.
func ToUnicodeCMap(store objstore.Store, obj objstore.Object) (*cmap.CMap, error) {
	dict, ok := objstore.GetDict(store, obj)
	if !ok {
		return nil, nil
	}
	stream, ok := objstore.GetStream(store, dict.Get("ToUnicode"))
	if !ok {
		return nil, nil
	}
	cm, err := cmap.LoadCmapFromDataCID(stream.Raw)
	if err != nil {
		common.Log.Debug("ERROR: failed to parse ToUnicode CMap: %v", err)
		return nil, err
	}
	return cm, nil
}
