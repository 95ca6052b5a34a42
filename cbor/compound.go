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
	"iter"
)

// Compound is implemented by the items that contain other items: *Array, *Map
// and *Semantic. A compound item exclusively owns its children.
type Compound interface {
	Item
	// Len returns the number of entries (key/value pairs for a Map)
	Len() int
	// attach adds a child produced by the parser
	attach(child Item)
}

// IsCompound reports whether item contains other items
func IsCompound(item Item) bool {
	_, ok := item.(Compound)
	return ok
}

func encodeEntries(
	majorType MajorType,
	addlInfo uint64,
	entries []Item,
	buf []byte,
) (int, error) {
	pos, err := EncodeHeader(majorType, addlInfo, buf)
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		n, err := entry.EncodeInto(buf[pos:])
		if err != nil {
			return 0, err
		}
		pos += n
	}
	return pos, nil
}

func encodeEntriesFunc(majorType MajorType, addlInfo uint64, entries []Item, fn func(byte)) {
	EncodeHeaderFunc(majorType, addlInfo, fn)
	for _, entry := range entries {
		entry.EncodeFunc(fn)
	}
}

func entriesSize(addlInfo uint64, entries []Item) int {
	size := HeaderSize(addlInfo)
	for _, entry := range entries {
		size += entry.EncodedSize()
	}
	return size
}

func entriesEqual(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func cloneEntries(entries []Item) []Item {
	if entries == nil {
		return nil
	}
	ret := make([]Item, len(entries))
	for i, entry := range entries {
		ret[i] = entry.Clone()
	}
	return ret
}

// Array implements CBOR major type 4.
//
// Arrays are only ever copied through Clone. Items added to an Array are owned
// by it and must not be added anywhere else.
type Array struct {
	entries []Item
	// entries announced by a parsed header that have not been attached yet
	pending int
}

// NewArray builds an Array from a list of values accepted by MakeItem
func NewArray(values ...any) *Array {
	a := &Array{
		entries: make([]Item, 0, len(values)),
	}
	for _, v := range values {
		a.entries = append(a.entries, MakeItem(v))
	}
	return a
}

// Add appends a value accepted by MakeItem and returns the Array for chaining
func (a *Array) Add(v any) *Array {
	a.entries = append(a.entries, MakeItem(v))
	return a
}

// Len returns the number of entries. For an Array handed out by the streaming
// parser before its ItemEnd event this is the count declared in the header.
func (a *Array) Len() int {
	return len(a.entries) + a.pending
}

func (a *Array) Get(idx int) Item {
	return a.entries[idx]
}

// Set replaces the entry at idx with a value accepted by MakeItem
func (a *Array) Set(idx int, v any) {
	a.entries[idx] = MakeItem(v)
}

// All iterates over the entries in order
func (a *Array) All() iter.Seq2[int, Item] {
	return func(yield func(int, Item) bool) {
		for i, entry := range a.entries {
			if !yield(i, entry) {
				return
			}
		}
	}
}

func (a *Array) attach(child Item) {
	a.entries = append(a.entries, child)
	if a.pending > 0 {
		a.pending--
	}
}

func (a *Array) Type() MajorType {
	return MajorTypeArray
}

func (a *Array) EncodedSize() int {
	return entriesSize(uint64(len(a.entries)), a.entries)
}

func (a *Array) EncodeInto(buf []byte) (int, error) {
	return encodeEntries(MajorTypeArray, uint64(len(a.entries)), a.entries, buf)
}

func (a *Array) EncodeFunc(fn func(byte)) {
	encodeEntriesFunc(MajorTypeArray, uint64(len(a.entries)), a.entries, fn)
}

func (a *Array) Clone() Item {
	return &Array{
		entries: cloneEntries(a.entries),
		pending: a.pending,
	}
}

func (a *Array) Equal(other Item) bool {
	o, ok := other.(*Array)
	if !ok || o.Len() != a.Len() {
		return false
	}
	return entriesEqual(a.entries, o.entries)
}

func (a *Array) MarshalCBOR() ([]byte, error) {
	return Encode(a), nil
}

func (*Array) isItem() {}

// Map implements CBOR major type 5.
//
// Entries are stored as a flat key, value, key, value list and encoded in
// insertion order. Lookups are a linear scan comparing keys with Equal.
type Map struct {
	entries []Item
	// keys and values announced by a parsed header that have not been attached yet
	pending int
}

// NewMap builds a Map from alternating keys and values accepted by MakeItem.
// It panics if given an odd number of arguments.
func NewMap(keysAndValues ...any) *Map {
	if len(keysAndValues)%2 != 0 {
		panic("cbor: Map requires an even number of arguments")
	}
	m := &Map{
		entries: make([]Item, 0, len(keysAndValues)),
	}
	for _, v := range keysAndValues {
		m.entries = append(m.entries, MakeItem(v))
	}
	return m
}

// Add appends a key/value pair and returns the Map for chaining. Existing
// entries with an equal key are left in place.
func (m *Map) Add(key any, value any) *Map {
	m.entries = append(m.entries, MakeItem(key), MakeItem(value))
	return m
}

// Len returns the number of key/value pairs. For a Map handed out by the
// streaming parser before its ItemEnd event this is the count declared in the
// header.
func (m *Map) Len() int {
	return (len(m.entries) + m.pending) / 2
}

// Entry returns the key and value of the pair at idx
func (m *Map) Entry(idx int) (Item, Item) {
	return m.entries[idx*2], m.entries[idx*2+1]
}

// Get returns the value for the first entry whose key equals key, which may be
// anything accepted by MakeItem
func (m *Map) Get(key any) (Item, bool) {
	keyItem := MakeItem(key)
	for i := 0; i+1 < len(m.entries); i += 2 {
		if keyItem.Equal(m.entries[i]) {
			return m.entries[i+1], true
		}
	}
	return nil, false
}

// All iterates over the key/value pairs in insertion order
func (m *Map) All() iter.Seq2[Item, Item] {
	return func(yield func(Item, Item) bool) {
		for i := 0; i+1 < len(m.entries); i += 2 {
			if !yield(m.entries[i], m.entries[i+1]) {
				return
			}
		}
	}
}

func (m *Map) attach(child Item) {
	m.entries = append(m.entries, child)
	if m.pending > 0 {
		m.pending--
	}
}

func (m *Map) Type() MajorType {
	return MajorTypeMap
}

func (m *Map) EncodedSize() int {
	return entriesSize(uint64(len(m.entries)/2), m.entries)
}

func (m *Map) EncodeInto(buf []byte) (int, error) {
	return encodeEntries(MajorTypeMap, uint64(len(m.entries)/2), m.entries, buf)
}

func (m *Map) EncodeFunc(fn func(byte)) {
	encodeEntriesFunc(MajorTypeMap, uint64(len(m.entries)/2), m.entries, fn)
}

func (m *Map) Clone() Item {
	return &Map{
		entries: cloneEntries(m.entries),
		pending: m.pending,
	}
}

func (m *Map) Equal(other Item) bool {
	o, ok := other.(*Map)
	if !ok || o.Len() != m.Len() {
		return false
	}
	return entriesEqual(m.entries, o.entries)
}

func (m *Map) MarshalCBOR() ([]byte, error) {
	return Encode(m), nil
}

func (*Map) isItem() {}

// Semantic implements CBOR major type 6, a tag number wrapping exactly one child.
// Semantic items can be encoded, but the parser rejects them.
type Semantic struct {
	tag   uint64
	child Item
}

// NewSemantic wraps a value accepted by MakeItem with the specified tag number
func NewSemantic(tag uint64, child any) *Semantic {
	return &Semantic{
		tag:   tag,
		child: MakeItem(child),
	}
}

func (s *Semantic) Tag() uint64 {
	return s.tag
}

func (s *Semantic) Child() Item {
	return s.child
}

func (s *Semantic) Len() int {
	return 1
}

func (s *Semantic) attach(child Item) {
	s.child = child
}

func (s *Semantic) Type() MajorType {
	return MajorTypeSemantic
}

func (s *Semantic) EncodedSize() int {
	return HeaderSize(s.tag) + s.child.EncodedSize()
}

func (s *Semantic) EncodeInto(buf []byte) (int, error) {
	return encodeEntries(MajorTypeSemantic, s.tag, []Item{s.child}, buf)
}

func (s *Semantic) EncodeFunc(fn func(byte)) {
	EncodeHeaderFunc(MajorTypeSemantic, s.tag, fn)
	s.child.EncodeFunc(fn)
}

func (s *Semantic) Clone() Item {
	return &Semantic{
		tag:   s.tag,
		child: s.child.Clone(),
	}
}

func (s *Semantic) Equal(other Item) bool {
	o, ok := other.(*Semantic)
	return ok && o.tag == s.tag && s.child.Equal(o.child)
}

func (s *Semantic) MarshalCBOR() ([]byte, error) {
	return Encode(s), nil
}

func (*Semantic) isItem() {}
