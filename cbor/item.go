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
	"math"
)

// Item is a CBOR data item. The set of implementations is closed: *Uint, *Nint,
// *Bstr, *Tstr, *Bool, *Null, *Array, *Map and *Semantic. Use a type switch to
// get at the concrete variant.
type Item interface {
	// Type returns the CBOR major type of the item
	Type() MajorType
	// EncodedSize returns the exact number of bytes Encode will produce. For
	// compound items this walks the whole tree.
	EncodedSize() int
	// EncodeInto encodes the item at the start of buf and returns the number of
	// bytes written. It returns ErrInsufficientSpace if buf is too small, in
	// which case the contents of buf are unusable.
	EncodeInto(buf []byte) (int, error)
	// EncodeFunc passes each encoded byte in turn to fn
	EncodeFunc(fn func(byte))
	// Clone returns a deep copy that shares no state with the original
	Clone() Item
	// Equal reports whether other is structurally identical to the item
	Equal(other Item) bool
	// MarshalCBOR allows items to be embedded in values encoded with
	// github.com/fxamacker/cbor/v2
	MarshalCBOR() ([]byte, error)

	isItem()
}

// Encode returns the encoding of item in a new byte slice
func Encode(item Item) []byte {
	ret := make([]byte, 0, item.EncodedSize())
	item.EncodeFunc(func(b byte) {
		ret = append(ret, b)
	})
	return ret
}

// EncodeToString returns the encoding of item as a string
func EncodeToString(item Item) string {
	return string(Encode(item))
}

// Equal compares two items for deep structural equality. Two nil items are equal.
func Equal(a, b Item) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// Int64 returns the value of a Uint or Nint as an int64. It returns false for
// other item types and for Uint values above math.MaxInt64.
func Int64(item Item) (int64, bool) {
	switch v := item.(type) {
	case *Uint:
		if v.value > math.MaxInt64 {
			return 0, false
		}
		return int64(v.value), true
	case *Nint:
		return v.value, true
	default:
		return 0, false
	}
}

// Uint implements CBOR major type 0
type Uint struct {
	value uint64
}

func NewUint(v uint64) *Uint {
	return &Uint{value: v}
}

func (u *Uint) Value() uint64 {
	return u.value
}

func (u *Uint) Type() MajorType {
	return MajorTypeUint
}

func (u *Uint) EncodedSize() int {
	return HeaderSize(u.value)
}

func (u *Uint) EncodeInto(buf []byte) (int, error) {
	return EncodeHeader(MajorTypeUint, u.value, buf)
}

func (u *Uint) EncodeFunc(fn func(byte)) {
	EncodeHeaderFunc(MajorTypeUint, u.value, fn)
}

func (u *Uint) Clone() Item {
	return NewUint(u.value)
}

func (u *Uint) Equal(other Item) bool {
	o, ok := other.(*Uint)
	return ok && o.value == u.value
}

func (u *Uint) MarshalCBOR() ([]byte, error) {
	return Encode(u), nil
}

func (*Uint) isItem() {}

// Nint implements CBOR major type 1.
//
// It can only express values in [math.MinInt64, -1]. Major type 1 values below
// math.MinInt64 are not representable.
type Nint struct {
	value int64
}

// NewNint panics if v is not negative
func NewNint(v int64) *Nint {
	if v >= 0 {
		panic("cbor: Nint requires a negative value")
	}
	return &Nint{value: v}
}

func (n *Nint) Value() int64 {
	return n.value
}

// addlInfo is -1 - value, which fits in a uint64 for the whole int64 range
func (n *Nint) addlInfo() uint64 {
	return uint64(^n.value)
}

func (n *Nint) Type() MajorType {
	return MajorTypeNint
}

func (n *Nint) EncodedSize() int {
	return HeaderSize(n.addlInfo())
}

func (n *Nint) EncodeInto(buf []byte) (int, error) {
	return EncodeHeader(MajorTypeNint, n.addlInfo(), buf)
}

func (n *Nint) EncodeFunc(fn func(byte)) {
	EncodeHeaderFunc(MajorTypeNint, n.addlInfo(), fn)
}

func (n *Nint) Clone() Item {
	return &Nint{value: n.value}
}

func (n *Nint) Equal(other Item) bool {
	o, ok := other.(*Nint)
	return ok && o.value == n.value
}

func (n *Nint) MarshalCBOR() ([]byte, error) {
	return Encode(n), nil
}

func (*Nint) isItem() {}

// Bstr implements CBOR major type 2
type Bstr struct {
	value []byte
}

// NewBstr copies v
func NewBstr(v []byte) *Bstr {
	return &Bstr{value: bytes.Clone(v)}
}

// Value returns the underlying bytes. The slice is owned by the item.
func (b *Bstr) Value() []byte {
	return b.value
}

func (b *Bstr) Type() MajorType {
	return MajorTypeBstr
}

func (b *Bstr) EncodedSize() int {
	return HeaderSize(uint64(len(b.value))) + len(b.value)
}

func (b *Bstr) EncodeInto(buf []byte) (int, error) {
	return encodeString(MajorTypeBstr, b.value, buf)
}

func (b *Bstr) EncodeFunc(fn func(byte)) {
	EncodeHeaderFunc(MajorTypeBstr, uint64(len(b.value)), fn)
	for _, c := range b.value {
		fn(c)
	}
}

func (b *Bstr) Clone() Item {
	return NewBstr(b.value)
}

func (b *Bstr) Equal(other Item) bool {
	o, ok := other.(*Bstr)
	return ok && bytes.Equal(o.value, b.value)
}

func (b *Bstr) MarshalCBOR() ([]byte, error) {
	return Encode(b), nil
}

func (*Bstr) isItem() {}

// Tstr implements CBOR major type 3. The contents are not checked for UTF-8
// validity.
type Tstr struct {
	value string
}

func NewTstr(v string) *Tstr {
	return &Tstr{value: v}
}

func (t *Tstr) Value() string {
	return t.value
}

func (t *Tstr) Type() MajorType {
	return MajorTypeTstr
}

func (t *Tstr) EncodedSize() int {
	return HeaderSize(uint64(len(t.value))) + len(t.value)
}

func (t *Tstr) EncodeInto(buf []byte) (int, error) {
	return encodeString(MajorTypeTstr, t.value, buf)
}

func (t *Tstr) EncodeFunc(fn func(byte)) {
	EncodeHeaderFunc(MajorTypeTstr, uint64(len(t.value)), fn)
	for i := 0; i < len(t.value); i++ {
		fn(t.value[i])
	}
}

func (t *Tstr) Clone() Item {
	return NewTstr(t.value)
}

func (t *Tstr) Equal(other Item) bool {
	o, ok := other.(*Tstr)
	return ok && o.value == t.value
}

func (t *Tstr) MarshalCBOR() ([]byte, error) {
	return Encode(t), nil
}

func (*Tstr) isItem() {}

func encodeString[T ~string | ~[]byte](majorType MajorType, value T, buf []byte) (int, error) {
	n, err := EncodeHeader(majorType, uint64(len(value)), buf)
	if err != nil {
		return 0, err
	}
	if len(buf)-n < len(value) {
		return 0, ErrInsufficientSpace
	}
	n += copy(buf[n:], value)
	return n, nil
}

// Simple is implemented by the major type 7 items, Bool and Null
type Simple interface {
	Item
	SimpleType() SimpleType
}

// Bool implements the CBOR simple values false (20) and true (21)
type Bool struct {
	value bool
}

func NewBool(v bool) *Bool {
	return &Bool{value: v}
}

func (b *Bool) Value() bool {
	return b.value
}

func (b *Bool) addlInfo() uint64 {
	if b.value {
		return uint64(AdditionalInfoTrue)
	}
	return uint64(AdditionalInfoFalse)
}

func (b *Bool) Type() MajorType {
	return MajorTypeSimple
}

func (b *Bool) SimpleType() SimpleType {
	return SimpleTypeBool
}

func (b *Bool) EncodedSize() int {
	return 1
}

func (b *Bool) EncodeInto(buf []byte) (int, error) {
	return EncodeHeader(MajorTypeSimple, b.addlInfo(), buf)
}

func (b *Bool) EncodeFunc(fn func(byte)) {
	EncodeHeaderFunc(MajorTypeSimple, b.addlInfo(), fn)
}

func (b *Bool) Clone() Item {
	return NewBool(b.value)
}

func (b *Bool) Equal(other Item) bool {
	o, ok := other.(*Bool)
	return ok && o.value == b.value
}

func (b *Bool) MarshalCBOR() ([]byte, error) {
	return Encode(b), nil
}

func (*Bool) isItem() {}

// Null implements the CBOR simple value null (22)
type Null struct{}

func NewNull() *Null {
	return &Null{}
}

func (*Null) Type() MajorType {
	return MajorTypeSimple
}

func (*Null) SimpleType() SimpleType {
	return SimpleTypeNull
}

func (*Null) EncodedSize() int {
	return 1
}

func (*Null) EncodeInto(buf []byte) (int, error) {
	return EncodeHeader(MajorTypeSimple, uint64(AdditionalInfoNull), buf)
}

func (*Null) EncodeFunc(fn func(byte)) {
	EncodeHeaderFunc(MajorTypeSimple, uint64(AdditionalInfoNull), fn)
}

func (*Null) Clone() Item {
	return NewNull()
}

func (*Null) Equal(other Item) bool {
	_, ok := other.(*Null)
	return ok
}

func (n *Null) MarshalCBOR() ([]byte, error) {
	return Encode(n), nil
}

func (*Null) isItem() {}
