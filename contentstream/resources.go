/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package contentstream

import "github.com/wovenfox/pdftext/objstore"

// Resources wraps a page or Form XObject's /Resources dictionary, falling back to the
// enclosing scope's resources when a name is not defined locally. This mirrors how a Form
// XObject may omit its own /Font or /XObject subdictionary and inherit the caller's.
type Resources struct {
	dict   *objstore.Dictionary
	parent *Resources
}

// NewResources returns a Resources scope backed by `dict`, falling back to `parent` (which
// may be nil for the outermost, page-level scope) when a lookup misses.
func NewResources(dict *objstore.Dictionary, parent *Resources) *Resources {
	return &Resources{dict: dict, parent: parent}
}

// subDict returns resources.dict[category] as a Dictionary, e.g. category "Font" or "XObject".
func (r *Resources) subDict(store objstore.Store, category objstore.Name) (*objstore.Dictionary, bool) {
	if r == nil || r.dict == nil {
		return nil, false
	}
	return objstore.GetDict(store, r.dict.Get(category))
}

// lookup resolves `name` within resources.dict[category], falling back to the parent scope.
func (r *Resources) lookup(store objstore.Store, category, name objstore.Name) (objstore.Object, bool) {
	if r == nil {
		return nil, false
	}
	if d, ok := r.subDict(store, category); ok {
		if obj := d.Get(name); obj != nil {
			return objstore.Resolve(store, obj), true
		}
	}
	return r.parent.lookup(store, category, name)
}

// GetFont looks up `name` in the /Font subdictionary, falling back to the parent scope.
func (r *Resources) GetFont(store objstore.Store, name objstore.Name) (objstore.Object, bool) {
	return r.lookup(store, "Font", name)
}

// GetXObject looks up `name` in the /XObject subdictionary, falling back to the parent scope.
func (r *Resources) GetXObject(store objstore.Store, name objstore.Name) (objstore.Object, bool) {
	return r.lookup(store, "XObject", name)
}

// GetXObjectResources returns the /Resources dictionary of this scope itself (nil for a nil
// receiver); the parent scope is not consulted.
func (r *Resources) GetXObjectResources() *objstore.Dictionary {
	if r == nil {
		return nil
	}
	return r.dict
}
