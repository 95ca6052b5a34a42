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
	"errors"
	"math"
	"testing"

	"github.com/blinklabs-io/gocbor/cbor"
	"github.com/blinklabs-io/gocbor/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemRoundTrip(t *testing.T) {
	for _, tc := range encodeTests {
		if tc.item.Type() == cbor.MajorTypeSemantic {
			continue
		}
		t.Run(tc.name, func(t *testing.T) {
			data := test.DecodeHexString(tc.cborHex)
			item, n, err := cbor.ParseItem(data)
			require.NoError(t, err)
			assert.Equal(t, len(data), n)
			assert.True(t, cbor.Equal(tc.item, item))
			assert.Equal(t, data, cbor.Encode(item))
		})
	}
}

func TestParseItemComplex(t *testing.T) {
	orig := cbor.NewMap(
		"key", cbor.NewArray(1, 2, cbor.NewArray()),
		3, "x",
		[]byte{1}, cbor.NewMap("n", nil, "neg", -500),
		"b", true,
		cbor.NewArray(false), cbor.NewMap(),
	)
	data := cbor.Encode(orig)
	item, n, err := cbor.ParseItem(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	require.True(t, cbor.Equal(orig, item), "got %s", cbor.PrettyPrint(item))

	m := item.(*cbor.Map)
	assert.Equal(t, 5, m.Len())
	v, ok := m.Get("key")
	require.True(t, ok)
	assert.Equal(t, 3, v.(*cbor.Array).Len())
	v, ok = m.Get([]byte{1})
	require.True(t, ok)
	neg, ok := v.(*cbor.Map).Get("neg")
	require.True(t, ok)
	assert.Equal(t, int64(-500), neg.(*cbor.Nint).Value())
}

func TestParseItemDoesNotAliasInput(t *testing.T) {
	data := test.DecodeHexString("43 010203")
	item, _, err := cbor.ParseItem(data)
	require.NoError(t, err)
	data[1] = 0xff
	assert.Equal(t, []byte{1, 2, 3}, item.(*cbor.Bstr).Value())
}

func TestParseItemTrailingData(t *testing.T) {
	item, n, err := cbor.ParseItem(test.DecodeHexString("01 02"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, cbor.Equal(cbor.NewUint(1), item))

	item, n, err = cbor.ParseItem(test.DecodeHexString("81 01 ff"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, cbor.Equal(cbor.NewArray(1), item))
}

func TestParseItemMinNint(t *testing.T) {
	item, _, err := cbor.ParseItem(test.DecodeHexString("3b 7fffffffffffffff"))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), item.(*cbor.Nint).Value())
}

func TestParseItemErrors(t *testing.T) {
	truncate := func(item cbor.Item, n int) []byte {
		data := cbor.Encode(item)
		return data[:len(data)-n]
	}
	testDefs := []struct {
		name    string
		data    []byte
		pos     int
		message string
	}{
		{
			name:    "incomplete uint",
			data:    truncate(cbor.NewUint(1000), 1),
			pos:     0,
			message: "Need 2 byte(s) for length field, have 1.",
		},
		{
			name:    "incomplete string",
			data:    truncate(cbor.NewTstr("hello"), 2),
			pos:     0,
			message: "Need 5 byte(s) for text string, have 3.",
		},
		{
			name:    "incomplete bstr",
			data:    truncate(cbor.NewBstr([]byte("hello")), 5),
			pos:     0,
			message: "Need 5 byte(s) for byte string, have 0.",
		},
		{
			name:    "incomplete array",
			data:    truncate(cbor.NewArray(1, 2, 3, 4), 1),
			pos:     0,
			message: "Not enough entries for array: need 4 item(s), have 3.",
		},
		{
			name:    "incomplete array entry",
			data:    truncate(cbor.NewArray(1, 2, 3, 400000), 1),
			pos:     4,
			message: "Need 4 byte(s) for length field, have 3.",
		},
		{
			name:    "incomplete map entry",
			data:    truncate(cbor.NewMap(1, 2, 300000, 4), 2),
			pos:     3,
			message: "Need 4 byte(s) for length field, have 3.",
		},
		{
			name:    "nint out of range",
			data:    test.DecodeHexString("3b ffffffffffffffff"),
			pos:     0,
			message: "NINT values that don't fit in int64 are not supported.",
		},
		{
			name:    "semantic",
			data:    test.DecodeHexString("81 d818 41 00"),
			pos:     1,
			message: "Semantic tags not supported",
		},
		{
			name:    "empty",
			data:    nil,
			pos:     0,
			message: "Need 1 byte(s) for header, have 0.",
		},
	}
	for _, tc := range testDefs {
		t.Run(tc.name, func(t *testing.T) {
			item, n, err := cbor.ParseItem(tc.data)
			require.Error(t, err)
			assert.Nil(t, item)
			assert.Equal(t, tc.pos, n)
			var parseErr *cbor.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tc.pos, parseErr.Pos)
			assert.Equal(t, tc.message, parseErr.Message)
		})
	}
}

func TestParseErrorString(t *testing.T) {
	err := &cbor.ParseError{Pos: 3, Message: "Semantic tags not supported"}
	assert.Equal(t, "cbor: Semantic tags not supported (offset 3)", err.Error())
}

func TestParserParseItemOptions(t *testing.T) {
	parser := cbor.NewParser(cbor.WithMaxNestedLevels(1))
	_, _, err := parser.ParseItem(test.DecodeHexString("81 81 00"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Maximum nesting depth exceeded.")

	item, _, err := parser.ParseItem(test.DecodeHexString("82 00 01"))
	require.NoError(t, err)
	assert.Equal(t, 2, item.(*cbor.Array).Len())
}

func TestParseSequence(t *testing.T) {
	items, err := cbor.ParseSequence(test.DecodeHexString("01 6161 80 a1 00 f6"))
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.True(t, cbor.Equal(cbor.NewUint(1), items[0]))
	assert.True(t, cbor.Equal(cbor.NewTstr("a"), items[1]))
	assert.True(t, cbor.Equal(cbor.NewArray(), items[2]))
	assert.True(t, cbor.Equal(cbor.NewMap(0, nil), items[3]))

	items, err = cbor.ParseSequence(nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParseSequenceError(t *testing.T) {
	_, err := cbor.ParseSequence(test.DecodeHexString("01 02 82 01"))
	require.Error(t, err)
	var parseErr *cbor.ParseError
	require.ErrorAs(t, err, &parseErr)
	// The offset is relative to the start of the whole sequence
	assert.Equal(t, 2, parseErr.Pos)
	assert.Equal(t, "Not enough entries for array: need 2 item(s), have 1.", parseErr.Message)
}
