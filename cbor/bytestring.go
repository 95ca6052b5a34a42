// Copyright 2023 Blink Labs, LLC.
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
	"encoding/hex"
)

// ByteString wraps a byte string so that it can be used as a Go map key. It is
// what ToValue produces for Bstr map keys.
type ByteString struct {
	// We use a string because []byte isn't comparable, which means it can't be used as a map key
	data string
}

func NewByteString(data []byte) ByteString {
	bs := ByteString{
		data: string(data),
	}
	return bs
}

// UnmarshalCBOR accepts a single encoded Bstr
func (bs *ByteString) UnmarshalCBOR(data []byte) error {
	item, _, err := ParseItem(data)
	if err != nil {
		return err
	}
	b, ok := item.(*Bstr)
	if !ok {
		return &ParseError{Message: "expected byte string, found " + item.Type().String()}
	}
	bs.data = string(b.Value())
	return nil
}

func (bs ByteString) MarshalCBOR() ([]byte, error) {
	return Encode(&Bstr{value: []byte(bs.data)}), nil
}

func (bs ByteString) Bytes() []byte {
	return []byte(bs.data)
}

func (bs ByteString) String() string {
	return hex.EncodeToString([]byte(bs.data))
}
