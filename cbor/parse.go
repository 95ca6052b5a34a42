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
	"log/slog"
	"math"
)

// DefaultMaxNestedLevels is the default limit on compound item nesting
const DefaultMaxNestedLevels = 256

// ParseClient receives the events produced by the streaming parser. Offsets are
// byte indexes into the buffer being parsed.
//
// Each callback returns the client that receives subsequent events, which lets
// a client hand off a nested structure to another client. Returning nil stops
// the parse without reporting an error.
type ParseClient interface {
	// Item is called for each leaf item once it is fully parsed, and for each
	// compound item once its header is parsed but before its children. For a
	// compound item end equals valueBegin and the item has no children attached;
	// its Len reports the count declared in the header.
	Item(item Item, hdrBegin int, valueBegin int, end int) ParseClient
	// ItemEnd is called for compound items after all children have been parsed
	ItemEnd(item Item, hdrBegin int, valueBegin int, end int) ParseClient
	// Error is called at most once, when the input is malformed. The parse
	// stops afterward.
	Error(pos int, message string)
}

// Parser is a single-pass, depth-first CBOR parser. A Parser holds only
// configuration and may be shared.
type Parser struct {
	maxNestedLevels int
	logger          *slog.Logger
}

// ParserOption is a function that modifies a Parser
type ParserOption func(*Parser)

// WithMaxNestedLevels sets the maximum depth of nested compound items
func WithMaxNestedLevels(levels int) ParserOption {
	return func(p *Parser) {
		p.maxNestedLevels = levels
	}
}

// WithLogger specifies the logger used for reporting parse failures at debug level
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser returns a Parser with the specified options applied
func NewParser(options ...ParserOption) *Parser {
	p := &Parser{
		maxNestedLevels: DefaultMaxNestedLevels,
	}
	for _, option := range options {
		option(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Parse parses the first CBOR item in data with a default Parser
func Parse(data []byte, client ParseClient) int {
	return NewParser().Parse(data, client)
}

// Parse parses the first CBOR item in data, passing events to client. It returns
// the offset just past the item. If the parse fails, or a client stops it before
// the outermost item is complete, the offset of that item's header is returned.
func (p *Parser) Parse(data []byte, client ParseClient) int {
	s := &parseState{
		parser: p,
		data:   data,
	}
	pos, _ := s.parseRecursively(0, client, 0)
	return pos
}

type parseState struct {
	parser *Parser
	data   []byte
}

func insufficientLengthString(bytesNeeded uint64, bytesAvail int, what string) string {
	return fmt.Sprintf("Need %d byte(s) for %s, have %d.", bytesNeeded, what, bytesAvail)
}

func (s *parseState) fail(client ParseClient, pos int, message string) (int, ParseClient) {
	s.parser.logger.Debug(
		"CBOR parse failed",
		"component", "cbor",
		"pos", pos,
		"error", message,
	)
	client.Error(pos, message)
	return pos, nil
}

func (s *parseState) parseRecursively(begin int, client ParseClient, depth int) (int, ParseClient) {
	end := len(s.data)
	if begin >= end {
		return s.fail(client, begin, insufficientLengthString(1, 0, "header"))
	}
	pos := begin
	majorType := MajorType(s.data[pos] & MajorTypeMask)
	addlInfo := s.data[pos] & AdditionalInfoMask
	pos++

	var addlData uint64
	switch {
	case addlInfo <= MaxInlineValue:
		addlData = uint64(addlInfo)
	case addlInfo <= AdditionalInfoEightBytes:
		n := trailingBytes(addlInfo)
		if end-pos < n {
			return s.fail(
				client,
				begin,
				insufficientLengthString(uint64(n), end-pos, "length field"),
			)
		}
		addlData = readUint(s.data[pos:], n)
		pos += n
	case addlInfo == AdditionalInfoIndefinite:
		return s.fail(client, begin, "Indefinite-length items not supported.")
	default:
		return s.fail(client, begin, fmt.Sprintf("Reserved additional info value %d.", addlInfo))
	}

	switch majorType {
	case MajorTypeUint:
		return pos, client.Item(NewUint(addlData), begin, pos, pos)
	case MajorTypeNint:
		if addlData > math.MaxInt64 {
			return s.fail(client, begin, "NINT values that don't fit in int64 are not supported.")
		}
		return pos, client.Item(&Nint{value: -1 - int64(addlData)}, begin, pos, pos)
	case MajorTypeBstr, MajorTypeTstr:
		return s.handleString(majorType, addlData, begin, pos, client)
	case MajorTypeArray:
		return s.handleCompound(
			&Array{pending: pendingCount(addlData)},
			addlData,
			begin,
			pos,
			"array",
			client,
			depth,
		)
	case MajorTypeMap:
		entryCount := uint64(math.MaxUint64)
		if addlData <= math.MaxUint64/2 {
			entryCount = addlData * 2
		}
		return s.handleCompound(
			&Map{pending: pendingCount(entryCount)},
			entryCount,
			begin,
			pos,
			"map",
			client,
			depth,
		)
	case MajorTypeSemantic:
		return s.fail(client, begin, "Semantic tags not supported")
	default:
		return s.handleSimple(addlInfo, addlData, begin, pos, client)
	}
}

// pendingCount keeps absurd declared counts from overflowing int. Such counts
// always run out of input before completing.
func pendingCount(count uint64) int {
	if count > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(count)
}

func (s *parseState) handleString(
	majorType MajorType,
	length uint64,
	hdrBegin int,
	valueBegin int,
	client ParseClient,
) (int, ParseClient) {
	avail := len(s.data) - valueBegin
	if uint64(avail) < length {
		what := "byte string"
		if majorType == MajorTypeTstr {
			what = "text string"
		}
		return s.fail(client, hdrBegin, insufficientLengthString(length, avail, what))
	}
	valueEnd := valueBegin + int(length)
	var item Item
	if majorType == MajorTypeTstr {
		item = NewTstr(string(s.data[valueBegin:valueEnd]))
	} else {
		item = NewBstr(s.data[valueBegin:valueEnd])
	}
	return valueEnd, client.Item(item, hdrBegin, valueBegin, valueEnd)
}

func (s *parseState) handleSimple(
	addlInfo uint8,
	addlData uint64,
	hdrBegin int,
	valueBegin int,
	client ParseClient,
) (int, ParseClient) {
	switch addlInfo {
	case AdditionalInfoTrue, AdditionalInfoFalse:
		item := NewBool(addlInfo == AdditionalInfoTrue)
		return valueBegin, client.Item(item, hdrBegin, valueBegin, valueBegin)
	case AdditionalInfoNull:
		return valueBegin, client.Item(NewNull(), hdrBegin, valueBegin, valueBegin)
	case AdditionalInfoTwoBytes, AdditionalInfoFourBytes, AdditionalInfoEightBytes:
		return s.fail(client, hdrBegin, "Floating-point values not supported.")
	default:
		return s.fail(client, hdrBegin, fmt.Sprintf("Unsupported simple value %d.", addlData))
	}
}

func (s *parseState) handleCompound(
	item Compound,
	entryCount uint64,
	hdrBegin int,
	valueBegin int,
	typeName string,
	client ParseClient,
	depth int,
) (int, ParseClient) {
	if depth >= s.parser.maxNestedLevels {
		return s.fail(client, hdrBegin, "Maximum nesting depth exceeded.")
	}
	client = client.Item(item, hdrBegin, valueBegin, valueBegin)
	if client == nil {
		return hdrBegin, nil
	}
	pos := valueBegin
	for parsed := uint64(0); parsed < entryCount; parsed++ {
		if pos == len(s.data) {
			return s.fail(
				client,
				hdrBegin,
				fmt.Sprintf(
					"Not enough entries for %s: need %d item(s), have %d.",
					typeName,
					entryCount,
					parsed,
				),
			)
		}
		pos, client = s.parseRecursively(pos, client, depth+1)
		if client == nil {
			return hdrBegin, nil
		}
	}
	return pos, client.ItemEnd(item, hdrBegin, valueBegin, pos)
}
