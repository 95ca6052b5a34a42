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
	"encoding/binary"
	"math"
)

// HeaderSize returns the number of bytes needed for a header carrying the
// specified additional info value
func HeaderSize(addlInfo uint64) int {
	switch {
	case addlInfo < uint64(AdditionalInfoOneByte):
		return 1
	case addlInfo <= math.MaxUint8:
		return 2
	case addlInfo <= math.MaxUint16:
		return 3
	case addlInfo <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

// EncodeHeader writes a header with the specified major type and additional info
// to the start of buf. It returns the number of bytes written, or
// ErrInsufficientSpace without writing anything if buf is too small.
func EncodeHeader(majorType MajorType, addlInfo uint64, buf []byte) (int, error) {
	size := HeaderSize(addlInfo)
	if len(buf) < size {
		return 0, ErrInsufficientSpace
	}
	putHeader(majorType, addlInfo, size, buf)
	return size, nil
}

// EncodeHeaderFunc passes each header byte in turn to fn
func EncodeHeaderFunc(majorType MajorType, addlInfo uint64, fn func(byte)) {
	var tmp [9]byte
	size := HeaderSize(addlInfo)
	putHeader(majorType, addlInfo, size, tmp[:])
	for _, b := range tmp[:size] {
		fn(b)
	}
}

// AppendHeader appends a header to buf and returns the extended slice
func AppendHeader(buf []byte, majorType MajorType, addlInfo uint64) []byte {
	var tmp [9]byte
	size := HeaderSize(addlInfo)
	putHeader(majorType, addlInfo, size, tmp[:])
	return append(buf, tmp[:size]...)
}

// putHeader assumes buf holds at least size bytes
func putHeader(majorType MajorType, addlInfo uint64, size int, buf []byte) {
	switch size {
	case 1:
		buf[0] = uint8(majorType) | uint8(addlInfo)
	case 2:
		buf[0] = uint8(majorType) | AdditionalInfoOneByte
		buf[1] = uint8(addlInfo)
	case 3:
		buf[0] = uint8(majorType) | AdditionalInfoTwoBytes
		binary.BigEndian.PutUint16(buf[1:], uint16(addlInfo))
	case 5:
		buf[0] = uint8(majorType) | AdditionalInfoFourBytes
		binary.BigEndian.PutUint32(buf[1:], uint32(addlInfo))
	default:
		buf[0] = uint8(majorType) | AdditionalInfoEightBytes
		binary.BigEndian.PutUint64(buf[1:], addlInfo)
	}
}

// trailingBytes returns the number of big-endian bytes that follow an initial
// byte with the given additional info, or -1 if the value is not a length flag
func trailingBytes(addlInfo uint8) int {
	switch addlInfo {
	case AdditionalInfoOneByte:
		return 1
	case AdditionalInfoTwoBytes:
		return 2
	case AdditionalInfoFourBytes:
		return 4
	case AdditionalInfoEightBytes:
		return 8
	default:
		return -1
	}
}

// readUint reads an n-byte big-endian unsigned integer, n being 1, 2, 4 or 8
func readUint(data []byte, n int) uint64 {
	switch n {
	case 1:
		return uint64(data[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(data))
	case 4:
		return uint64(binary.BigEndian.Uint32(data))
	default:
		return binary.BigEndian.Uint64(data)
	}
}
