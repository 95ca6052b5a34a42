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

// Package cbor provides an in-memory CBOR item model with a byte-exact encoder,
// an event-driven streaming parser and a tree parser built on top of it.
//
// # Key Types
//
// Leaf items:
//   - Uint, Nint: major types 0 and 1
//   - Bstr, Tstr: major types 2 and 3
//   - Bool, Null: major type 7 simple values 20/21 and 22
//
// Compound items (own their children, copied only via Clone):
//   - Array: major type 4
//   - Map: major type 5, flat key/value list kept in insertion order
//   - Semantic: major type 6, encode-only
//
// # Building Items
//
//	msg := cbor.NewMap(
//	    "version", 1,
//	    "payload", []byte{0x01, 0x02},
//	    "tags", cbor.NewArray("a", "b", -3),
//	)
//	data := cbor.Encode(msg)
//
// MakeItem maps Go values to items: bool to Bool, integers to Uint or Nint,
// string/[]rune to Tstr, []byte to Bstr, nil to Null, and existing items are
// adopted as-is. Any other input panics.
//
// # Parsing
//
// ParseItem materializes a full tree:
//
//	item, pos, err := cbor.ParseItem(data)
//
// Parse drives a ParseClient with Item/ItemEnd/Error callbacks carrying byte
// offsets into the input. Returning nil from a callback stops the parse
// without an error.
//
// # Limitations
//
//  1. No floating point, no indefinite-length items
//  2. Semantic tags can be encoded but are rejected by the parser
//  3. Nint covers [math.MinInt64, -1]; wider major type 1 values are rejected
package cbor
