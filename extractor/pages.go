/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package extractor walks a PDF page tree and, for every leaf page, interprets its content
// stream (and any nested Form XObjects) to produce the page's text chunks: the top-level
// entry point of the text-extraction core.
package extractor

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/wovenfox/pdftext/common"
	"github.com/wovenfox/pdftext/contentstream"
	"github.com/wovenfox/pdftext/converter"
	"github.com/wovenfox/pdftext/coordinates"
	"github.com/wovenfox/pdftext/font"
	"github.com/wovenfox/pdftext/internal/transform"
	"github.com/wovenfox/pdftext/objstore"
)

// maxFormDepth bounds Form XObject recursion as a last-resort guard alongside the visited-id
// cycle check, in case a document names a Form its own ancestor through two different
// indirect references that happen to carry identical content.
const maxFormDepth = 32

// PagesExtractor walks a page tree rooted at a Pages catalog object and extracts positioned
// text chunks from every leaf page's content streams, including nested Form XObjects.
//
// Fonts and ConverterEngines are cached for the lifetime of a PagesExtractor (Form XObject
// streams are read afresh on each Do). Caches live for the lifetime of a
// PagesExtractor; a single instance is not safe for concurrent use, but independent instances
// share no state (see the package's concurrency note in the specification this implements).
type PagesExtractor struct {
	store objstore.Store

	fontCache      map[string]*font.Font
	converterCache map[string]*converter.ConverterEngine
}

// New returns a PagesExtractor reading objects from `store`.
func New(store objstore.Store) *PagesExtractor {
	return &PagesExtractor{
		store:          store,
		fontCache:      map[string]*font.Font{},
		converterCache: map[string]*converter.ConverterEngine{},
	}
}

// pageAttrs is the subset of a page's inheritable attributes the extractor needs.
type pageAttrs struct {
	resources *objstore.Dictionary
	cropBox   [4]float64
	rotate    int64
}

// ExtractAll walks the page tree rooted at `pagesRoot` and returns one TextChunk slice per
// leaf page, in document order.
func (e *PagesExtractor) ExtractAll(pagesRoot objstore.Object) ([][]converter.TextChunk, error) {
	var pages [][]converter.TextChunk
	visited := map[*objstore.Reference]struct{}{}

	var walk func(node objstore.Object, ref *objstore.Reference, inherited pageAttrs) error
	walk = func(node objstore.Object, ref *objstore.Reference, inherited pageAttrs) error {
		if ref != nil {
			if _, seen := visited[ref]; seen {
				common.Log.Debug("extractor: cyclic page tree node, skipping")
				return nil
			}
			visited[ref] = struct{}{}
		}

		dict, ok := objstore.GetDict(e.store, node)
		if !ok {
			return fmt.Errorf("extractor: page tree node is not a dictionary: %T", node)
		}

		attrs := inheritAttrs(e.store, dict, inherited)

		if kids, ok := objstore.GetArray(e.store, dict.Get("Kids")); ok {
			for _, kid := range kids.Elements() {
				kidRef, _ := kid.(*objstore.Reference)
				if err := walk(objstore.Resolve(e.store, kid), kidRef, attrs); err != nil {
					return err
				}
			}
			return nil
		}

		chunks, err := e.extractPage(dict, attrs)
		if err != nil {
			return err
		}
		pages = append(pages, chunks)
		return nil
	}

	rootRef, _ := pagesRoot.(*objstore.Reference)
	if err := walk(objstore.Resolve(e.store, pagesRoot), rootRef, pageAttrs{}); err != nil {
		return pages, err
	}
	return pages, nil
}

// inheritAttrs overlays `dict`'s own /Resources, /MediaBox, /CropBox and /Rotate onto
// `parent`, following the page tree's inheritance rules (PDF 32000-1:2008 7.7.3.4).
func inheritAttrs(store objstore.Store, dict *objstore.Dictionary, parent pageAttrs) pageAttrs {
	attrs := parent

	if res, ok := objstore.GetDict(store, dict.Get("Resources")); ok {
		attrs.resources = res
	}
	if box, ok := objstore.GetArray(store, dict.Get("CropBox")); ok {
		if vals, err := box.ToFloat64Slice(store); err == nil && len(vals) == 4 {
			attrs.cropBox = [4]float64{vals[0], vals[1], vals[2], vals[3]}
		}
	} else if box, ok := objstore.GetArray(store, dict.Get("MediaBox")); ok && attrs.cropBox == [4]float64{} {
		if vals, err := box.ToFloat64Slice(store); err == nil && len(vals) == 4 {
			attrs.cropBox = [4]float64{vals[0], vals[1], vals[2], vals[3]}
		}
	}
	if rot, err := objstore.ToInt(objstore.Resolve(store, dict.Get("Rotate"))); err == nil {
		attrs.rotate = ((rot % 360) + 360) % 360
	}

	return attrs
}

// extractPage interprets a single leaf page's content streams and returns its text chunks.
func (e *PagesExtractor) extractPage(page *objstore.Dictionary, attrs pageAttrs) ([]converter.TextChunk, error) {
	content, err := pageContentString(e.store, page)
	if err != nil {
		return nil, err
	}

	resources := contentstream.NewResources(attrs.resources, nil)
	ctm := initialCTM(attrs)

	chunks, err := e.interpret(content, resources, ctm, map[*objstore.Stream]struct{}{}, 0)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// initialCTM derives the page-to-device transform from the CropBox origin and page rotation,
// per the specification's Coordinates lifecycle note. The CropBox translation is applied
// first, moving its origin to (0,0), then the rotation (which carries its own offset so the
// rotated box's origin also lands at (0,0)): final := rotate.Concat(translate), i.e.
// translate-then-rotate using Matrix.Concat's "argument applied before receiver" semantics.
func initialCTM(attrs pageAttrs) transform.Matrix {
	x0, y0 := attrs.cropBox[0], attrs.cropBox[1]
	translate := transform.TranslationMatrix(-x0, -y0)

	w := attrs.cropBox[2] - attrs.cropBox[0]
	h := attrs.cropBox[3] - attrs.cropBox[1]

	var rot transform.Matrix
	switch attrs.rotate {
	case 90:
		// New width = H, new height = W: x' = y, y' = W - x.
		rot = transform.NewMatrix(0, -1, 1, 0, 0, w)
	case 180:
		rot = transform.NewMatrix(-1, 0, 0, -1, w, h)
	case 270:
		// New width = H, new height = W: x' = H - y, y' = x.
		rot = transform.NewMatrix(0, 1, -1, 0, h, 0)
	default:
		return translate
	}

	m := rot
	m.Concat(translate)
	return m
}

// pageContentString concatenates a page's (possibly array-valued) /Contents streams, each
// assumed already decoded by the stream-decoding collaborator and separated by a newline so
// that a token cannot span two originally-separate streams.
func pageContentString(store objstore.Store, page *objstore.Dictionary) (string, error) {
	contents := page.Get("Contents")
	if stream, ok := objstore.GetStream(store, contents); ok {
		return string(stream.Raw), nil
	}
	if arr, ok := objstore.GetArray(store, contents); ok {
		var out []byte
		for _, el := range arr.Elements() {
			stream, ok := objstore.GetStream(store, el)
			if !ok {
				continue
			}
			out = append(out, stream.Raw...)
			out = append(out, '\n')
		}
		return string(out), nil
	}
	return "", nil
}

// interpret tokenizes `content` and drives a ContentStreamProcessor, dispatching
// text-showing operators into a coordinates.Coordinates/ConverterEngine pair and recursing
// into Form XObjects named by Do. `formsVisited` guards against XObject recursion cycles and
// is shared across the whole recursion tree for one page; it is keyed by the resolved
// stream's identity, since the object store hands out one *objstore.Stream per indirect
// object number.
func (e *PagesExtractor) interpret(content string, resources *contentstream.Resources, ctm transform.Matrix,
	formsVisited map[*objstore.Stream]struct{}, depth int) ([]converter.TextChunk, error) {

	if depth > maxFormDepth {
		common.Log.Debug("extractor: Form XObject recursion too deep, stopping")
		return nil, nil
	}

	ops, err := contentstream.NewContentStreamParser(content).Parse()
	if err != nil {
		common.Log.Debug("extractor: content stream parse error: %v", err)
	}

	var chunks []converter.TextChunk
	coords := coordinates.New(ctm)

	var activeEngine *converter.ConverterEngine
	var pendingErr error

	proc := contentstream.NewContentStreamProcessor([]*contentstream.ContentStreamOperation(*ops))

	proc.AddHandler(contentstream.HandlerConditionEnumAllOperands, "",
		func(op *contentstream.ContentStreamOperation, gs contentstream.GraphicsState, res *contentstream.Resources) error {
			if pendingErr != nil {
				return nil
			}
			coords.SetCTM(gs.CTM)

			switch op.Operand {
			case "BT":
				coords.BeginText()
			case "ET":
				// No state change; chunks already emitted are preserved.
			case "Tf":
				eng, err := e.engineFor(op, res)
				if err != nil {
					if xerrors.Is(err, objstore.ErrNotSupported) {
						common.Log.Debug("extractor: Tf: %v, showing no text for this font", err)
						activeEngine = nil
					} else {
						pendingErr = err
						return err
					}
				} else {
					activeEngine = eng
				}
				if v, err := operandFloat(op, 1); err == nil {
					coords.SetTfs(v)
				}
			case "Tz":
				if v, err := operandFloat(op, 0); err == nil {
					coords.SetTz(v)
				}
			case "TL":
				if v, err := operandFloat(op, 0); err == nil {
					coords.SetTL(v)
				}
			case "Tc":
				if v, err := operandFloat(op, 0); err == nil {
					coords.SetTc(v)
				}
			case "Tw":
				if v, err := operandFloat(op, 0); err == nil {
					coords.SetTw(v)
				}
			case "Ts":
				if v, err := operandFloat(op, 0); err == nil {
					coords.SetRise(v)
				}
			case "Td":
				x, y, err := operandXY(op)
				if err == nil {
					coords.Td(x, y)
				}
			case "TD":
				x, y, err := operandXY(op)
				if err == nil {
					coords.TD(x, y)
				}
			case "Tm":
				if len(op.Params) == 6 {
					f, err := objstore.NumbersToFloat64Slice(op.Params)
					if err == nil {
						coords.SetTm(transform.NewMatrix(f[0], f[1], f[2], f[3], f[4], f[5]))
					}
				}
			case "T*":
				coords.TStar()
			case "Tj":
				if activeEngine == nil || len(op.Params) != 1 {
					return nil
				}
				s, ok := op.Params[0].(*objstore.String)
				if !ok {
					return nil
				}
				chunk := activeEngine.GetString(s.Bytes(), coords, 0)
				if chunk.Text != "" {
					chunks = append(chunks, chunk)
				}
			case "TJ":
				if activeEngine == nil || len(op.Params) != 1 {
					return nil
				}
				arr, ok := op.Params[0].(*objstore.Array)
				if !ok {
					return nil
				}
				got, err := activeEngine.GetStringsFromArray(arr, coords)
				if err != nil {
					pendingErr = err
					return err
				}
				chunks = append(chunks, got...)
			case "'":
				if activeEngine == nil || len(op.Params) != 1 {
					return nil
				}
				coords.TStar()
				s, ok := op.Params[0].(*objstore.String)
				if !ok {
					return nil
				}
				chunk := activeEngine.GetString(s.Bytes(), coords, 0)
				if chunk.Text != "" {
					chunks = append(chunks, chunk)
				}
			case `"`:
				if activeEngine == nil || len(op.Params) != 3 {
					return nil
				}
				aw, err1 := objstore.ToFloat(op.Params[0])
				ac, err2 := objstore.ToFloat(op.Params[1])
				s, ok := op.Params[2].(*objstore.String)
				if err1 != nil || err2 != nil || !ok {
					return nil
				}
				coords.SetTw(aw)
				coords.SetTc(ac)
				coords.TStar()
				chunk := activeEngine.GetString(s.Bytes(), coords, 0)
				if chunk.Text != "" {
					chunks = append(chunks, chunk)
				}
			case "Do":
				nested, err := e.doXObject(op, res, gs.CTM, formsVisited, depth)
				if err != nil {
					pendingErr = err
					return err
				}
				chunks = append(chunks, nested...)
			}
			return nil
		})

	if err := proc.Process(ctm, resources); err != nil && pendingErr == nil {
		return chunks, err
	}
	return chunks, pendingErr
}

// doXObject handles a Do operator: if the named XObject is a Form, it is interpreted
// recursively with CTM = XObject /Matrix · outer CTM and a resource scope falling back to
// the caller's.
func (e *PagesExtractor) doXObject(op *contentstream.ContentStreamOperation, res *contentstream.Resources,
	outerCTM transform.Matrix, formsVisited map[*objstore.Stream]struct{}, depth int) ([]converter.TextChunk, error) {

	if len(op.Params) != 1 {
		return nil, nil
	}
	name, ok := op.Params[0].(objstore.Name)
	if !ok {
		return nil, nil
	}
	xobj, ok := res.GetXObject(e.store, name)
	if !ok {
		return nil, nil
	}
	stream, ok := xobj.(*objstore.Stream)
	if !ok {
		return nil, nil
	}
	if subtype, _ := objstore.GetName(e.store, stream.Get("Subtype")); subtype != "Form" {
		return nil, nil
	}

	if _, seen := formsVisited[stream]; seen {
		common.Log.Debug("extractor: cyclic Form XObject, skipping")
		return nil, nil
	}
	formsVisited[stream] = struct{}{}
	defer delete(formsVisited, stream)

	// Matrix is applied before the outer CTM: ctm := Matrix · outerCTM.
	ctm := outerCTM
	if m, ok := objstore.GetArray(e.store, stream.Get("Matrix")); ok {
		if f, err := m.ToFloat64Slice(e.store); err == nil && len(f) == 6 {
			formMatrix := transform.NewMatrix(f[0], f[1], f[2], f[3], f[4], f[5])
			ctm.Concat(formMatrix)
		}
	}

	formDict, _ := objstore.GetDict(e.store, stream.Get("Resources"))
	formResources := contentstream.NewResources(formDict, res)

	return e.interpret(string(stream.Raw), formResources, ctm, formsVisited, depth+1)
}

// engineFor resolves /Tf's font name in the active resource scope, building (and caching) the
// Font and ConverterEngine on first use.
func (e *PagesExtractor) engineFor(op *contentstream.ContentStreamOperation, res *contentstream.Resources) (*converter.ConverterEngine, error) {
	if len(op.Params) != 2 {
		return nil, fmt.Errorf("extractor: Tf expects 2 operands, got %d", len(op.Params))
	}
	name, ok := op.Params[0].(objstore.Name)
	if !ok {
		return nil, fmt.Errorf("extractor: Tf font operand is not a name: %T", op.Params[0])
	}

	fontObj, ok := res.GetFont(e.store, name)
	if !ok {
		return nil, fmt.Errorf("extractor: font %q not found in resource scope", name)
	}

	key := cacheKey(res, string(name))
	f, ok := e.fontCache[key]
	if !ok {
		var err error
		f, err = font.New(e.store, fontObj)
		if err != nil {
			return nil, err
		}
		e.fontCache[key] = f
	}

	eng, ok := e.converterCache[key]
	if !ok {
		var err error
		eng, err = converter.NewEngine(e.store, fontObj, f)
		if err != nil {
			return nil, err
		}
		e.converterCache[key] = eng
	}

	return eng, nil
}

// cacheKey derives a stable per-resource-scope cache key for a font looked up under `name`:
// the Resources pointer stands in for the "stable id" a resource dictionary would carry if
// every document used indirect references for them, since GetFont already resolves those.
func cacheKey(res *contentstream.Resources, name string) string {
	return fmt.Sprintf("%p/%s", res, name)
}

// operandFloat returns op.Params[i] as a float64.
func operandFloat(op *contentstream.ContentStreamOperation, i int) (float64, error) {
	if i >= len(op.Params) {
		return 0, fmt.Errorf("extractor: %s missing operand %d", op.Operand, i)
	}
	return objstore.ToFloat(op.Params[i])
}

// operandXY returns a two-operand operator's (x, y) pair.
func operandXY(op *contentstream.ContentStreamOperation) (float64, float64, error) {
	if len(op.Params) != 2 {
		return 0, 0, fmt.Errorf("extractor: %s expects 2 operands, got %d", op.Operand, len(op.Params))
	}
	x, err := objstore.ToFloat(op.Params[0])
	if err != nil {
		return 0, 0, err
	}
	y, err := objstore.ToFloat(op.Params[1])
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
