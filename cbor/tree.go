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

// ParseError describes malformed input found by the parser
type ParseError struct {
	// Pos is the offset of the item whose header or payload could not be parsed
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cbor: %s (offset %d)", e.Message, e.Pos)
}

// ParseItem parses the first CBOR item in data into a tree using a default Parser
func ParseItem(data []byte) (Item, int, error) {
	return NewParser().ParseItem(data)
}

// ParseItem parses the first CBOR item in data into a tree. On success it
// returns the item and the offset just past it; any remaining bytes are left
// untouched. On failure it returns a *ParseError and the error offset.
func (p *Parser) ParseItem(data []byte) (Item, int, error) {
	client := &treeClient{}
	p.Parse(data, client)
	if client.message != "" {
		return nil, client.pos, &ParseError{
			Pos:     client.pos,
			Message: client.message,
		}
	}
	return client.root, client.pos, nil
}

// ParseSequence parses data as a CBOR sequence (RFC 8742), a concatenation of
// zero or more items
func ParseSequence(data []byte) ([]Item, error) {
	return NewParser().ParseSequence(data)
}

func (p *Parser) ParseSequence(data []byte) ([]Item, error) {
	var ret []Item
	pos := 0
	for pos < len(data) {
		item, n, err := p.ParseItem(data[pos:])
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Pos += pos
			}
			return nil, err
		}
		ret = append(ret, item)
		pos += n
	}
	return ret, nil
}

// treeClient assembles parse events into an Item tree
type treeClient struct {
	root    Item
	parents []Compound
	pos     int
	message string
}

func (t *treeClient) Item(item Item, hdrBegin int, valueBegin int, end int) ParseClient {
	compound, isCompound := item.(Compound)
	if len(t.parents) == 0 && !isCompound {
		// This is the first and only item
		t.root = item
		t.pos = end
		return nil
	}
	if isCompound {
		// The item stays referenced by the parser until the matching ItemEnd
		t.parents = append(t.parents, compound)
		return t
	}
	t.parents[len(t.parents)-1].attach(item)
	return t
}

func (t *treeClient) ItemEnd(item Item, hdrBegin int, valueBegin int, end int) ParseClient {
	t.parents = t.parents[:len(t.parents)-1]
	if len(t.parents) == 0 {
		t.root = item
		t.pos = end
		return nil
	}
	t.parents[len(t.parents)-1].attach(item)
	return t
}

func (t *treeClient) Error(pos int, message string) {
	t.root = nil
	t.pos = pos
	t.message = message
}
