/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package objstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore map[int64]Object

func (s mapStore) GetObject(ref *Reference) (Object, bool) {
	obj, ok := s[ref.ObjectNumber]
	return obj, ok
}

func TestResolveFollowsChainOfReferences(t *testing.T) {
	store := mapStore{
		1: &Reference{ObjectNumber: 2},
		2: &Reference{ObjectNumber: 3},
		3: Name("Font"),
	}
	got := Resolve(store, &Reference{ObjectNumber: 1})
	assert.Equal(t, Name("Font"), got)
}

func TestResolveUnresolvableReferenceIsNull(t *testing.T) {
	store := mapStore{}
	got := Resolve(store, &Reference{ObjectNumber: 99})
	assert.True(t, IsNull(got))
}

func TestResolveNilStoreIsNull(t *testing.T) {
	got := Resolve(nil, &Reference{ObjectNumber: 1})
	assert.True(t, IsNull(got))
}

func TestGetDictResolvesThroughReference(t *testing.T) {
	dict := MakeDict()
	dict.Set("Type", Name("Page"))
	store := mapStore{1: dict}

	got, ok := GetDict(store, &Reference{ObjectNumber: 1})
	require.True(t, ok)
	assert.Equal(t, Name("Page"), got.Get("Type"))
}

func TestGetDictWrongKindFails(t *testing.T) {
	store := mapStore{1: Name("not a dict")}
	_, ok := GetDict(store, &Reference{ObjectNumber: 1})
	assert.False(t, ok)
}

func TestToFloatAcceptsIntegerAndFloat(t *testing.T) {
	v, err := ToFloat(Integer(5))
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = ToFloat(Float(2.5))
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	_, err = ToFloat(Name("nope"))
	assert.Error(t, err)
}

func TestArrayToFloat64Slice(t *testing.T) {
	arr := MakeArray(Integer(1), Float(2.5), Integer(-3))
	got, err := arr.ToFloat64Slice(nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -3}, got)
}

func TestDictionaryGetMissingKeyIsNil(t *testing.T) {
	dict := MakeDict()
	assert.Nil(t, dict.Get("Missing"))
}
