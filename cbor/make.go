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
	"fmt"
	"iter"
	"reflect"
)

// Integer matches every Go integer type, including named types over them
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// NewInt returns a Uint for non-negative values and a Nint for negative ones
func NewInt[T Integer](v T) Item {
	if v < 0 {
		return NewNint(int64(v))
	}
	return NewUint(uint64(v))
}

// NewTstrFromRunes builds a Tstr from a sequence of runes
func NewTstrFromRunes(seq iter.Seq[rune]) *Tstr {
	var tmp []rune
	for r := range seq {
		tmp = append(tmp, r)
	}
	return NewTstr(string(tmp))
}

// NewBstrFromSeq builds a Bstr from a sequence of bytes
func NewBstrFromSeq(seq iter.Seq[byte]) *Bstr {
	ret := &Bstr{value: []byte{}}
	for b := range seq {
		ret.value = append(ret.value, b)
	}
	return ret
}

// MakeItem converts a Go value into an Item:
//
//   - bool becomes a Bool
//   - any integer type becomes a Uint, or a Nint if negative
//   - string, []rune and iter.Seq[rune] become a Tstr
//   - []byte, iter.Seq[byte] and ByteString become a Bstr (the bytes are copied)
//   - an existing Item is adopted as-is and is owned by the caller's container
//     from then on
//   - nil becomes a Null
//
// Named types over bool, the integer types, string and []byte are converted by
// their underlying type. MakeItem panics for any other input.
func MakeItem(v any) Item {
	switch val := v.(type) {
	case nil:
		return NewNull()
	case Item:
		if rv := reflect.ValueOf(val); rv.Kind() == reflect.Pointer && rv.IsNil() {
			panic(fmt.Sprintf("cbor: MakeItem called with nil %T", val))
		}
		return val
	case bool:
		return NewBool(val)
	case int:
		return NewInt(val)
	case int8:
		return NewInt(val)
	case int16:
		return NewInt(val)
	case int32:
		return NewInt(val)
	case int64:
		return NewInt(val)
	case uint:
		return NewInt(val)
	case uint8:
		return NewInt(val)
	case uint16:
		return NewInt(val)
	case uint32:
		return NewInt(val)
	case uint64:
		return NewInt(val)
	case uintptr:
		return NewInt(val)
	case string:
		return NewTstr(val)
	case []rune:
		return NewTstr(string(val))
	case iter.Seq[rune]:
		return NewTstrFromRunes(val)
	case []byte:
		return NewBstr(val)
	case iter.Seq[byte]:
		return NewBstrFromSeq(val)
	case ByteString:
		return NewBstr(val.Bytes())
	default:
		if item, ok := makeItemFromKind(reflect.ValueOf(v)); ok {
			return item
		}
		panic(fmt.Sprintf("cbor: MakeItem called with unsupported type %T", v))
	}
}

// makeItemFromKind handles named types whose underlying type is one of the
// scalar types accepted by MakeItem
func makeItemFromKind(rv reflect.Value) (Item, bool) {
	switch rv.Kind() {
	case reflect.Bool:
		return NewBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NewInt(rv.Uint()), true
	case reflect.String:
		return NewTstr(rv.String()), true
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return NewBstr(rv.Bytes()), true
		}
	}
	return nil, false
}
