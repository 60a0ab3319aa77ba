/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package objstore implements the PDF primitive object model that the content-stream
// interpreter and font machinery operate on: booleans, numbers, strings, names, arrays,
// dictionaries, indirect references and streams.
//
// It deliberately stops short of being a full PDF object store: there is no writer side and
// no cross-reference table. Resolution of indirect references is delegated to a Store, which
// a caller supplies; this package only describes the shapes objects can take.
package objstore

import (
	"fmt"
	"strconv"

	"github.com/wovenfox/pdftext/internal/strutils"
)

// Object is the interface implemented by every primitive PDF object.
type Object interface {
	// String returns a debug representation of the object.
	String() string
}

// Bool represents the PDF boolean object.
type Bool bool

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Integer represents the PDF integer numerical object.
type Integer int64

func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

// Float represents the PDF floating point numerical object.
type Float float64

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// String represents the PDF string object (either literal or hex encoded in the source).
type String struct {
	val   string
	isHex bool
}

// MakeString returns a String holding the raw bytes `s` decodes to.
func MakeString(s string) *String {
	return &String{val: s}
}

// MakeHexString returns a String that was written in hex notation in the source.
func MakeHexString(s string) *String {
	return &String{val: s, isHex: true}
}

// Str returns the raw, undecoded bytes of the string as a Go string.
func (s *String) Str() string {
	if s == nil {
		return ""
	}
	return s.val
}

// Bytes returns the raw, undecoded bytes of the string.
func (s *String) Bytes() []byte {
	if s == nil {
		return nil
	}
	return []byte(s.val)
}

// Decoded returns the PDFDocEncoding or UTF-16BE decoded contents of the string. UTF-16BE is
// assumed when the string starts with the byte-order mark 0xFE 0xFF, matching how PDF text
// strings in a document's info dictionary and some text-showing operands are encoded.
func (s *String) Decoded() string {
	if s == nil {
		return ""
	}
	b := []byte(s.val)
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		return strutils.UTF16ToString(b[2:])
	}
	return strutils.PDFDocEncodingToString(b)
}

func (s *String) String() string {
	if s == nil {
		return ""
	}
	return s.val
}

// Name represents the PDF name object, e.g. /Font.
type Name string

func (n Name) String() string { return string(n) }

// Array represents the PDF array object.
type Array struct {
	elements []Object
}

// MakeArray returns an Array containing `objects`.
func MakeArray(objects ...Object) *Array {
	return &Array{elements: objects}
}

// Elements returns the Array's elements.
func (a *Array) Elements() []Object {
	if a == nil {
		return nil
	}
	return a.elements
}

// Len returns the number of elements in the array.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.elements)
}

// Get returns the i'th element of the array, or nil if out of range.
func (a *Array) Get(i int) Object {
	if a == nil || i < 0 || i >= len(a.elements) {
		return nil
	}
	return a.elements[i]
}

// Append appends objects to the array.
func (a *Array) Append(objects ...Object) {
	a.elements = append(a.elements, objects...)
}

// ToFloat64Slice converts every element of the array to a float64, resolving references
// through `store`. It fails if any element is not a number.
func (a *Array) ToFloat64Slice(store Store) ([]float64, error) {
	out := make([]float64, 0, a.Len())
	for _, el := range a.Elements() {
		f, err := ToFloat(Resolve(store, el))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (a *Array) String() string {
	return fmt.Sprintf("%v", a.elements)
}

// Dictionary represents the PDF dictionary object, a mapping from Name to Object that
// preserves insertion order for stable iteration and debugging.
type Dictionary struct {
	entries map[Name]Object
	keys    []Name
}

// MakeDict returns an empty Dictionary.
func MakeDict() *Dictionary {
	return &Dictionary{entries: map[Name]Object{}}
}

// Set sets key to val, appending key to the key order if it is new.
func (d *Dictionary) Set(key Name, val Object) {
	if d.entries == nil {
		d.entries = map[Name]Object{}
	}
	if _, ok := d.entries[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = val
}

// Get returns the object stored under key, or nil if absent.
func (d *Dictionary) Get(key Name) Object {
	if d == nil {
		return nil
	}
	return d.entries[key]
}

// Keys returns the dictionary's keys in insertion order.
func (d *Dictionary) Keys() []Name {
	if d == nil {
		return nil
	}
	return d.keys
}

func (d *Dictionary) String() string {
	return fmt.Sprintf("Dict(%d entries)", len(d.keys))
}

// Null represents the PDF null object.
type Null struct{}

func (Null) String() string { return "null" }

// Reference represents an indirect reference to an object held elsewhere in a Store.
type Reference struct {
	ObjectNumber     int64
	GenerationNumber int64
}

func (r *Reference) String() string {
	return fmt.Sprintf("Ref(%d %d)", r.ObjectNumber, r.GenerationNumber)
}

// Stream represents a PDF stream object: a Dictionary describing the stream plus its bytes.
// Decoding (Flate/LZW/ASCII85/predictors) is outside this package's scope: Raw holds bytes
// that whatever built the Store has already decoded, and readers use them as they are.
type Stream struct {
	*Dictionary
	Raw []byte
}

func (s *Stream) String() string {
	return fmt.Sprintf("Stream(%d bytes)", len(s.Raw))
}

// Store resolves indirect References to the Objects they point to. A document's
// cross-reference table, trailer parsing and decryption live behind this interface and are
// not part of this package: callers plug in whatever loader produced the objects.
type Store interface {
	// GetObject resolves a reference to the object it points to. ok is false if the
	// reference cannot be resolved.
	GetObject(ref *Reference) (obj Object, ok bool)
}

// Resolve follows obj through store if it is a Reference, returning the first non-reference
// object found. It returns Null{} if a reference cannot be resolved or store is nil.
func Resolve(store Store, obj Object) Object {
	ref, ok := obj.(*Reference)
	if !ok {
		return obj
	}
	if store == nil {
		return Null{}
	}
	resolved, ok := store.GetObject(ref)
	if !ok {
		return Null{}
	}
	return Resolve(store, resolved)
}

// IsNull returns true if obj is nil or a Null object.
func IsNull(obj Object) bool {
	if obj == nil {
		return true
	}
	_, ok := obj.(Null)
	return ok
}

// ToFloat converts a Integer or Float object to float64.
func ToFloat(obj Object) (float64, error) {
	switch t := obj.(type) {
	case *Integer:
		return float64(*t), nil
	case Integer:
		return float64(t), nil
	case *Float:
		return float64(*t), nil
	case Float:
		return float64(t), nil
	}
	return 0, fmt.Errorf("objstore: not a number: %T", obj)
}

// ToInt converts an Integer object to int64.
func ToInt(obj Object) (int64, error) {
	switch t := obj.(type) {
	case *Integer:
		return int64(*t), nil
	case Integer:
		return int64(t), nil
	case *Float:
		return int64(*t), nil
	case Float:
		return int64(t), nil
	}
	return 0, fmt.Errorf("objstore: not an integer: %T", obj)
}

// GetDict resolves obj and type-asserts it to *Dictionary, including the dictionary embedded
// in a *Stream.
func GetDict(store Store, obj Object) (*Dictionary, bool) {
	switch t := Resolve(store, obj).(type) {
	case *Dictionary:
		return t, true
	case *Stream:
		return t.Dictionary, true
	}
	return nil, false
}

// GetArray resolves obj and type-asserts it to *Array.
func GetArray(store Store, obj Object) (*Array, bool) {
	arr, ok := Resolve(store, obj).(*Array)
	return arr, ok
}

// GetName resolves obj and type-asserts it to Name.
func GetName(store Store, obj Object) (Name, bool) {
	n, ok := Resolve(store, obj).(Name)
	return n, ok
}

// GetStream resolves obj and type-asserts it to *Stream.
func GetStream(store Store, obj Object) (*Stream, bool) {
	s, ok := Resolve(store, obj).(*Stream)
	return s, ok
}

// GetStringVal resolves obj, type-asserts it to *String and returns its decoded value.
func GetStringVal(store Store, obj Object) (string, bool) {
	s, ok := Resolve(store, obj).(*String)
	if !ok {
		return "", false
	}
	return s.Decoded(), true
}

// NumbersToFloat64Slice converts a slice of direct (unresolved) numeric objects to float64,
// as used for content stream operator operands, which are never indirect references.
func NumbersToFloat64Slice(objs []Object) ([]float64, error) {
	out := make([]float64, len(objs))
	for i, obj := range objs {
		f, err := ToFloat(obj)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// GetNumberAsFloat resolves obj and returns it as a float64, also accepting a numeric String
// such as "12" found in malformed content streams.
func GetNumberAsFloat(store Store, obj Object) (float64, error) {
	resolved := Resolve(store, obj)
	if f, err := ToFloat(resolved); err == nil {
		return f, nil
	}
	if s, ok := resolved.(*String); ok {
		if f, err := strconv.ParseFloat(s.Str(), 64); err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("objstore: cannot convert %T to float64", resolved)
}
