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

package cbor

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"slices"

	_cbor "github.com/fxamacker/cbor/v2"
)

// Create an alias for RawMessage for convenience
type RawMessage = _cbor.RawMessage

// Alias for Tag for convenience
type Tag = _cbor.Tag

var (
	ErrUnhashableKey = errors.New("map key cannot be represented as a Go map key")
	ErrDuplicateKey  = errors.New("duplicate map key")
)

// Value holds an item parsed from an embedded CBOR field, along with the
// original CBOR. It lets an item tree live inside structs that are encoded and
// decoded with github.com/fxamacker/cbor/v2.
type Value struct {
	item Item
	// We store this as a string so that the type is still hashable
	cborData string
}

func NewValue(item Item) Value {
	return Value{item: item}
}

func (v *Value) UnmarshalCBOR(data []byte) error {
	item, n, err := ParseItem(data)
	if err != nil {
		return err
	}
	v.item = item
	// Save the original CBOR
	v.cborData = string(data[:n])
	return nil
}

// MarshalCBOR returns the original CBOR when the Value was decoded, and the
// encoding of the item otherwise
func (v Value) MarshalCBOR() ([]byte, error) {
	if v.cborData != "" {
		return []byte(v.cborData), nil
	}
	if v.item == nil {
		return Encode(NewNull()), nil
	}
	return Encode(v.item), nil
}

func (v Value) Item() Item {
	return v.item
}

func (v Value) Cbor() []byte {
	return []byte(v.cborData)
}

// Diagnose returns the RFC 8949 diagnostic notation for item
func Diagnose(item Item) (string, error) {
	return _cbor.Diagnose(Encode(item))
}

// ToValue converts item into the generic Go representation used by
// github.com/fxamacker/cbor/v2: uint64, int64, []byte, string, bool, nil,
// []any, map[any]any and Tag. Byte string map keys become ByteString. Map
// ordering is not preserved.
func ToValue(item Item) (any, error) {
	switch v := item.(type) {
	case *Uint:
		return v.value, nil
	case *Nint:
		return v.value, nil
	case *Bstr:
		return bytes.Clone(v.value), nil
	case *Tstr:
		return v.value, nil
	case *Bool:
		return v.value, nil
	case *Null:
		return nil, nil
	case *Array:
		ret := make([]any, 0, len(v.entries))
		for _, entry := range v.entries {
			tmp, err := ToValue(entry)
			if err != nil {
				return nil, err
			}
			ret = append(ret, tmp)
		}
		return ret, nil
	case *Map:
		ret := make(map[any]any, len(v.entries)/2)
		for key, value := range v.All() {
			tmpKey, err := toKey(key)
			if err != nil {
				return nil, err
			}
			if _, ok := ret[tmpKey]; ok {
				return nil, fmt.Errorf("%w: %v", ErrDuplicateKey, tmpKey)
			}
			tmpValue, err := ToValue(value)
			if err != nil {
				return nil, err
			}
			ret[tmpKey] = tmpValue
		}
		return ret, nil
	case *Semantic:
		content, err := ToValue(v.child)
		if err != nil {
			return nil, err
		}
		return Tag{Number: v.tag, Content: content}, nil
	default:
		return nil, fmt.Errorf("unknown item type %T", item)
	}
}

func toKey(key Item) (any, error) {
	switch v := key.(type) {
	case *Bstr:
		return NewByteString(v.value), nil
	case *Array, *Map, *Semantic:
		return nil, fmt.Errorf("%w: %s", ErrUnhashableKey, key.Type())
	default:
		return ToValue(key)
	}
}

// FromValue converts a Go value into an Item. In addition to everything
// MakeItem accepts, it handles *big.Int values within the int64/uint64 ranges,
// Tag, RawTag, RawMessage, Value, and arbitrary slices and maps (including the
// []any and map[any]any produced by github.com/fxamacker/cbor/v2). Map entries
// are ordered by the bytewise order of their encoded keys, as in RFC 8949 core
// deterministic encoding.
func FromValue(v any) (Item, error) {
	switch val := v.(type) {
	case nil:
		return NewNull(), nil
	case Item:
		if rv := reflect.ValueOf(val); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, fmt.Errorf("nil %T", val)
		}
		return val, nil
	case Value:
		if val.item == nil {
			return nil, errors.New("empty Value")
		}
		return val.item, nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr,
		string, []rune, []byte, ByteString:
		return MakeItem(val), nil
	case _cbor.ByteString:
		return NewBstr([]byte(val)), nil
	case big.Int:
		return fromBigInt(&val)
	case *big.Int:
		return fromBigInt(val)
	case float32, float64:
		return nil, errors.New("floating point values are not supported")
	case Tag:
		content, err := FromValue(val.Content)
		if err != nil {
			return nil, err
		}
		return &Semantic{tag: val.Number, child: content}, nil
	case _cbor.RawTag:
		content, _, err := ParseItem(val.Content)
		if err != nil {
			return nil, err
		}
		return &Semantic{tag: val.Number, child: content}, nil
	case RawMessage:
		item, _, err := ParseItem(val)
		return item, err
	}
	return fromReflectValue(reflect.ValueOf(v))
}

func fromBigInt(v *big.Int) (Item, error) {
	if v.IsUint64() {
		return NewUint(v.Uint64()), nil
	}
	if v.IsInt64() {
		return NewNint(v.Int64()), nil
	}
	return nil, fmt.Errorf("integer %s does not fit in 64 bits", v.String())
}

func fromReflectValue(rv reflect.Value) (Item, error) {
	if item, ok := makeItemFromKind(rv); ok {
		return item, nil
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return NewNull(), nil
		}
		return FromValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		ret := &Array{entries: make([]Item, 0, rv.Len())}
		for i := range rv.Len() {
			tmp, err := FromValue(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			ret.entries = append(ret.entries, tmp)
		}
		return ret, nil
	case reflect.Map:
		return fromMapValue(rv)
	default:
		return nil, fmt.Errorf("unsupported type %s", rv.Type())
	}
}

func fromMapValue(rv reflect.Value) (Item, error) {
	type mapEntry struct {
		key        Item
		value      Item
		encodedKey []byte
	}
	entries := make([]mapEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := FromValue(iter.Key().Interface())
		if err != nil {
			return nil, err
		}
		value, err := FromValue(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		entries = append(entries, mapEntry{key: key, value: value, encodedKey: Encode(key)})
	}
	slices.SortFunc(entries, func(a, b mapEntry) int {
		return bytes.Compare(a.encodedKey, b.encodedKey)
	})
	ret := &Map{entries: make([]Item, 0, len(entries)*2)}
	for _, entry := range entries {
		ret.entries = append(ret.entries, entry.key, entry.value)
	}
	return ret, nil
}
