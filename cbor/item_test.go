// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package cbor_test

import (
	"math"
	"slices"
	"testing"

	"github.com/blinklabs-io/gocbor/cbor"
	"github.com/blinklabs-io/gocbor/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type encodeTestDefinition struct {
	name    string
	item    cbor.Item
	cborHex string
}

var encodeTests = []encodeTestDefinition{
	{"uint 0", cbor.NewUint(0), "00"},
	{"uint 1", cbor.NewUint(1), "01"},
	{"uint 23", cbor.NewUint(23), "17"},
	{"uint 24", cbor.NewUint(24), "1818"},
	{"uint 100", cbor.NewUint(100), "1864"},
	{"uint 1000", cbor.NewUint(1000), "1903e8"},
	{"uint 1000000", cbor.NewUint(1000000), "1a000f4240"},
	{"uint 1000000000000", cbor.NewUint(1000000000000), "1b000000e8d4a51000"},
	{"uint max", cbor.NewUint(math.MaxUint64), "1bffffffffffffffff"},
	{"nint -1", cbor.NewNint(-1), "20"},
	{"nint -24", cbor.NewNint(-24), "37"},
	{"nint -25", cbor.NewNint(-25), "3818"},
	{"nint -100", cbor.NewNint(-100), "3863"},
	{"nint -1000", cbor.NewNint(-1000), "3903e7"},
	{"nint min", cbor.NewNint(math.MinInt64), "3b7fffffffffffffff"},
	{"false", cbor.NewBool(false), "f4"},
	{"true", cbor.NewBool(true), "f5"},
	{"null", cbor.NewNull(), "f6"},
	{"empty bstr", cbor.NewBstr(nil), "40"},
	{"bstr", cbor.NewBstr([]byte{1, 2, 3, 4}), "44 01020304"},
	{"empty tstr", cbor.NewTstr(""), "60"},
	{"tstr", cbor.NewTstr("IETF"), "64 49455446"},
	{"tstr unicode", cbor.NewTstr("ü"), "62 c3bc"},
	{"empty array", cbor.NewArray(), "80"},
	{"array", cbor.NewArray(1, 2, 3), "83 01 02 03"},
	{"empty map", cbor.NewMap(), "a0"},
	{"semantic", cbor.NewSemantic(1, 1363896240), "c1 1a514b67b0"},
}

func TestEncode(t *testing.T) {
	for _, tc := range encodeTests {
		t.Run(tc.name, func(t *testing.T) {
			expected := test.DecodeHexString(tc.cborHex)
			assert.Equal(t, expected, cbor.Encode(tc.item))
			assert.Equal(t, len(expected), tc.item.EncodedSize())
			assert.Equal(t, string(expected), cbor.EncodeToString(tc.item))

			buf := make([]byte, len(expected)+4)
			n, err := tc.item.EncodeInto(buf)
			require.NoError(t, err)
			assert.Equal(t, expected, buf[:n])

			var fromFunc []byte
			tc.item.EncodeFunc(func(b byte) {
				fromFunc = append(fromFunc, b)
			})
			assert.Equal(t, expected, fromFunc)

			fromMarshal, err := tc.item.MarshalCBOR()
			require.NoError(t, err)
			assert.Equal(t, expected, fromMarshal)
		})
	}
}

func TestEncodeInsufficientSpace(t *testing.T) {
	items := []cbor.Item{
		cbor.NewUint(100000),
		cbor.NewNint(-100000),
		cbor.NewBool(true),
		cbor.NewTstr("hello"),
		cbor.NewBstr([]byte("hello")),
		cbor.NewArray(1, 2, 3),
		cbor.NewMap("a", 1, "b", 2),
		cbor.NewSemantic(24, []byte{1, 2}),
	}
	for _, item := range items {
		for size := range item.EncodedSize() {
			buf := make([]byte, size)
			_, err := item.EncodeInto(buf)
			assert.ErrorIs(t, err, cbor.ErrInsufficientSpace, "%s with %d byte buffer", item.Type(), size)
		}
	}
}

func TestItemTypes(t *testing.T) {
	assert.Equal(t, cbor.MajorTypeUint, cbor.NewUint(1).Type())
	assert.Equal(t, cbor.MajorTypeNint, cbor.NewNint(-1).Type())
	assert.Equal(t, cbor.MajorTypeBstr, cbor.NewBstr(nil).Type())
	assert.Equal(t, cbor.MajorTypeTstr, cbor.NewTstr("").Type())
	assert.Equal(t, cbor.MajorTypeArray, cbor.NewArray().Type())
	assert.Equal(t, cbor.MajorTypeMap, cbor.NewMap().Type())
	assert.Equal(t, cbor.MajorTypeSemantic, cbor.NewSemantic(0, 1).Type())
	assert.Equal(t, cbor.MajorTypeSimple, cbor.NewBool(false).Type())
	assert.Equal(t, cbor.MajorTypeSimple, cbor.NewNull().Type())
	assert.Equal(t, cbor.SimpleTypeBool, cbor.NewBool(false).SimpleType())
	assert.Equal(t, cbor.SimpleTypeNull, cbor.NewNull().SimpleType())
	assert.True(t, cbor.IsCompound(cbor.NewArray()))
	assert.True(t, cbor.IsCompound(cbor.NewSemantic(0, 1)))
	assert.False(t, cbor.IsCompound(cbor.NewTstr("a")))
}

func TestNintPanicsOnNonNegative(t *testing.T) {
	assert.Panics(t, func() { cbor.NewNint(0) })
	assert.Panics(t, func() { cbor.NewNint(5) })
}

func TestEqual(t *testing.T) {
	assert.True(t, cbor.Equal(nil, nil))
	assert.False(t, cbor.Equal(nil, cbor.NewNull()))
	assert.False(t, cbor.Equal(cbor.NewNull(), nil))
	assert.True(t, cbor.Equal(cbor.NewNull(), cbor.NewNull()))
	assert.True(t, cbor.Equal(cbor.NewUint(5), cbor.NewUint(5)))
	assert.False(t, cbor.Equal(cbor.NewUint(5), cbor.NewUint(6)))
	assert.False(t, cbor.Equal(cbor.NewUint(1), cbor.NewNint(-1)))
	assert.False(t, cbor.Equal(cbor.NewBool(false), cbor.NewNull()))
	assert.False(t, cbor.Equal(cbor.NewTstr("a"), cbor.NewBstr([]byte("a"))))
	assert.True(t, cbor.Equal(cbor.NewBstr(nil), cbor.NewBstr([]byte{})))
	assert.True(t, cbor.Equal(
		cbor.NewArray(1, "two", cbor.NewMap(3, []byte{4})),
		cbor.NewArray(1, "two", cbor.NewMap(3, []byte{4})),
	))
	assert.False(t, cbor.Equal(cbor.NewArray(1, 2), cbor.NewArray(1, 2, 3)))
	assert.False(t, cbor.Equal(cbor.NewArray(1, 2), cbor.NewArray(2, 1)))
	assert.False(t, cbor.Equal(cbor.NewSemantic(1, 2), cbor.NewSemantic(2, 2)))
	assert.True(t, cbor.Equal(cbor.NewSemantic(1, "x"), cbor.NewSemantic(1, "x")))
}

func TestClone(t *testing.T) {
	orig := cbor.NewArray(1, cbor.NewArray(2), cbor.NewMap("k", "v"), []byte{9})
	clone := orig.Clone().(*cbor.Array)
	require.True(t, cbor.Equal(orig, clone))

	clone.Get(1).(*cbor.Array).Add(3)
	clone.Get(2).(*cbor.Map).Add("k2", "v2")
	clone.Get(3).(*cbor.Bstr).Value()[0] = 0
	assert.Equal(t, 1, orig.Get(1).(*cbor.Array).Len())
	assert.Equal(t, 1, orig.Get(2).(*cbor.Map).Len())
	assert.Equal(t, []byte{9}, orig.Get(3).(*cbor.Bstr).Value())
	assert.False(t, cbor.Equal(orig, clone))

	sem := cbor.NewSemantic(24, cbor.NewArray(1))
	semClone := sem.Clone().(*cbor.Semantic)
	semClone.Child().(*cbor.Array).Add(2)
	assert.Equal(t, 1, sem.Child().(*cbor.Array).Len())
}

func TestBstrCopiesInput(t *testing.T) {
	src := []byte{1, 2, 3}
	b := cbor.NewBstr(src)
	src[0] = 0xff
	assert.Equal(t, []byte{1, 2, 3}, b.Value())
}

func TestInt64(t *testing.T) {
	v, ok := cbor.Int64(cbor.NewUint(42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)
	v, ok = cbor.Int64(cbor.NewNint(-42))
	assert.True(t, ok)
	assert.Equal(t, int64(-42), v)
	_, ok = cbor.Int64(cbor.NewUint(math.MaxUint64))
	assert.False(t, ok)
	_, ok = cbor.Int64(cbor.NewTstr("42"))
	assert.False(t, ok)
}

type (
	namedInt    int16
	namedUint   uint32
	namedString string
	namedBytes  []byte
	namedBool   bool
)

func TestMakeItem(t *testing.T) {
	existing := cbor.NewArray(1)
	testDefs := []struct {
		name     string
		input    any
		expected cbor.Item
	}{
		{"nil", nil, cbor.NewNull()},
		{"bool", true, cbor.NewBool(true)},
		{"int", 10, cbor.NewUint(10)},
		{"negative int", -10, cbor.NewNint(-10)},
		{"int8", int8(-128), cbor.NewNint(-128)},
		{"int16", int16(300), cbor.NewUint(300)},
		{"int32", int32(-70000), cbor.NewNint(-70000)},
		{"int64", int64(math.MinInt64), cbor.NewNint(math.MinInt64)},
		{"uint", uint(7), cbor.NewUint(7)},
		{"uint8", uint8(255), cbor.NewUint(255)},
		{"uint16", uint16(65535), cbor.NewUint(65535)},
		{"uint32", uint32(math.MaxUint32), cbor.NewUint(math.MaxUint32)},
		{"uint64", uint64(math.MaxUint64), cbor.NewUint(math.MaxUint64)},
		{"string", "hello", cbor.NewTstr("hello")},
		{"runes", []rune("hé"), cbor.NewTstr("hé")},
		{"rune seq", slices.Values([]rune("abc")), cbor.NewTstr("abc")},
		{"bytes", []byte{1, 2}, cbor.NewBstr([]byte{1, 2})},
		{"byte seq", slices.Values([]byte{3, 4}), cbor.NewBstr([]byte{3, 4})},
		{"empty byte seq", slices.Values([]byte{}), cbor.NewBstr(nil)},
		{"ByteString", cbor.NewByteString([]byte{5}), cbor.NewBstr([]byte{5})},
		{"item", existing, cbor.NewArray(1)},
		{"named int", namedInt(-7), cbor.NewNint(-7)},
		{"named uint", namedUint(70000), cbor.NewUint(70000)},
		{"named string", namedString("label"), cbor.NewTstr("label")},
		{"named bytes", namedBytes{0xca, 0xfe}, cbor.NewBstr([]byte{0xca, 0xfe})},
		{"named bool", namedBool(true), cbor.NewBool(true)},
	}
	for _, tc := range testDefs {
		t.Run(tc.name, func(t *testing.T) {
			item := cbor.MakeItem(tc.input)
			assert.True(
				t,
				cbor.Equal(tc.expected, item),
				"got %s, wanted %s",
				test.EncodeHexString(cbor.Encode(item)),
				test.EncodeHexString(cbor.Encode(tc.expected)),
			)
		})
	}
	// Items are adopted, not copied
	assert.Same(t, existing, cbor.MakeItem(existing))
	assert.True(t, cbor.Equal(cbor.NewNint(-3), cbor.NewInt(namedInt(-3))))
}

func TestMakeItemUnsupported(t *testing.T) {
	assert.Panics(t, func() { cbor.MakeItem(1.5) })
	assert.Panics(t, func() { cbor.MakeItem(struct{}{}) })
	assert.Panics(t, func() { cbor.MakeItem(map[string]int{}) })
	assert.Panics(t, func() { cbor.MakeItem((*cbor.Uint)(nil)) })
	assert.Panics(t, func() { cbor.NewArray(1, 2.5) })
	assert.Panics(t, func() { cbor.MakeItem([]namedInt{1}) })
}

func TestNamedTypesInContainers(t *testing.T) {
	arr := cbor.NewArray(namedInt(5), namedString("a"))
	assert.Equal(t, test.DecodeHexString("82 05 6161"), cbor.Encode(arr))

	m := cbor.NewMap(namedString("a"), 1, namedInt(-2), namedBytes{1})
	assert.Equal(t, test.DecodeHexString("a2 6161 01 21 4101"), cbor.Encode(m))
	v, ok := m.Get(namedString("a"))
	require.True(t, ok)
	assert.True(t, cbor.Equal(cbor.NewUint(1), v))
	_, ok = m.Get(namedInt(-2))
	assert.True(t, ok)

	sem := cbor.NewSemantic(1, namedUint(3))
	assert.Equal(t, test.DecodeHexString("c1 03"), cbor.Encode(sem))
}
