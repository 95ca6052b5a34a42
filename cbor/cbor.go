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
	"errors"
	"fmt"
)

// MajorType is the top 3 bits of the initial byte of a CBOR item, kept in place
// (i.e. already shifted left by 5)
type MajorType uint8

const (
	MajorTypeUint     MajorType = 0 << 5
	MajorTypeNint     MajorType = 1 << 5
	MajorTypeBstr     MajorType = 2 << 5
	MajorTypeTstr     MajorType = 3 << 5
	MajorTypeArray    MajorType = 4 << 5
	MajorTypeMap      MajorType = 5 << 5
	MajorTypeSemantic MajorType = 6 << 5
	MajorTypeSimple   MajorType = 7 << 5

	// Only the top 3 bits are used to specify the type
	MajorTypeMask uint8 = 0xe0
	// The remaining 5 bits carry the additional info
	AdditionalInfoMask uint8 = 0x1f
)

func (t MajorType) String() string {
	switch t {
	case MajorTypeUint:
		return "uint"
	case MajorTypeNint:
		return "nint"
	case MajorTypeBstr:
		return "bstr"
	case MajorTypeTstr:
		return "tstr"
	case MajorTypeArray:
		return "array"
	case MajorTypeMap:
		return "map"
	case MajorTypeSemantic:
		return "semantic"
	case MajorTypeSimple:
		return "simple"
	default:
		return fmt.Sprintf("MajorType(0x%02x)", uint8(t))
	}
}

// SimpleType distinguishes the major type 7 values we support
type SimpleType uint8

const (
	SimpleTypeBool SimpleType = iota
	SimpleTypeNull
)

// Special additional info values
const (
	AdditionalInfoFalse uint8 = 20
	AdditionalInfoTrue  uint8 = 21
	AdditionalInfoNull  uint8 = 22

	AdditionalInfoOneByte    uint8 = 24
	AdditionalInfoTwoBytes   uint8 = 25
	AdditionalInfoFourBytes  uint8 = 26
	AdditionalInfoEightBytes uint8 = 27
	AdditionalInfoIndefinite uint8 = 31

	// Max value able to be stored in the initial byte without trailing bytes
	MaxInlineValue uint8 = 0x17
)

// ErrInsufficientSpace is returned by the bounded encoders when the destination
// cannot hold the encoding. The destination contents must be discarded.
var ErrInsufficientSpace = errors.New("insufficient space in destination buffer")
