// Copyright 2023 Blink Labs Software
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
	"slices"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// DefaultMaxBstrSize is the longest byte string PrettyPrint writes out in full
const DefaultMaxBstrSize = 32

type prettyConfig struct {
	maxBstrSize  int
	redactedKeys []string
}

// PrettyOption is a function that modifies the PrettyPrint output
type PrettyOption func(*prettyConfig)

// WithMaxBstrSize sets the length above which byte strings are shown as their
// size and BLAKE2b-256 digest instead of their contents
func WithMaxBstrSize(size int) PrettyOption {
	return func(c *prettyConfig) {
		c.maxBstrSize = size
	}
}

// WithRedactedKeys specifies text map keys whose values are shown as
// "<not printed>". This is useful for output that is compared in tests.
func WithRedactedKeys(keys ...string) PrettyOption {
	return func(c *prettyConfig) {
		c.redactedKeys = append(c.redactedKeys, keys...)
	}
}

// PrettyPrint generates an indented, human-readable representation of item for
// debugging purposes
func PrettyPrint(item Item, options ...PrettyOption) string {
	cfg := prettyConfig{
		maxBstrSize: DefaultMaxBstrSize,
	}
	for _, option := range options {
		option(&cfg)
	}
	var ret strings.Builder
	cfg.prettyPrint(item, &ret, 0)
	return ret.String()
}

// PrettyPrintEncoded parses data and pretty prints the resulting item
func PrettyPrintEncoded(data []byte, options ...PrettyOption) (string, error) {
	item, _, err := ParseItem(data)
	if err != nil {
		return "", fmt.Errorf("data to pretty print is not valid CBOR: %w", err)
	}
	return PrettyPrint(item, options...), nil
}

func allEntriesNonCompound(entries []Item) bool {
	for _, entry := range entries {
		switch entry.Type() {
		case MajorTypeArray, MajorTypeMap:
			return false
		}
	}
	return true
}

func (c *prettyConfig) prettyPrint(item Item, ret *strings.Builder, indent int) {
	indentString := strings.Repeat(" ", indent)
	switch v := item.(type) {
	case *Uint:
		ret.WriteString(strconv.FormatUint(v.value, 10))
	case *Nint:
		ret.WriteString(strconv.FormatInt(v.value, 10))
	case *Bstr:
		if len(v.value) > c.maxBstrSize {
			digest := blake2b.Sum256(v.value)
			fmt.Fprintf(ret, "<bstr size=%d blake2b=%x>", len(v.value), digest)
			break
		}
		ret.WriteString("{")
		for i, b := range v.value {
			if i > 0 {
				ret.WriteString(", ")
			}
			fmt.Fprintf(ret, "0x%02x", b)
		}
		ret.WriteString("}")
	case *Tstr:
		ret.WriteString("'" + v.value + "'")
	case *Array:
		switch {
		case len(v.entries) == 0:
			ret.WriteString("[]")
		case allEntriesNonCompound(v.entries):
			ret.WriteString("[")
			for _, entry := range v.entries {
				c.prettyPrint(entry, ret, indent+2)
				ret.WriteString(", ")
			}
			ret.WriteString("]")
		default:
			ret.WriteString("[\n" + indentString)
			for _, entry := range v.entries {
				ret.WriteString("  ")
				c.prettyPrint(entry, ret, indent+2)
				ret.WriteString(",\n" + indentString)
			}
			ret.WriteString("]")
		}
	case *Map:
		if len(v.entries) == 0 {
			ret.WriteString("{}")
			break
		}
		ret.WriteString("{\n" + indentString)
		for key, value := range v.All() {
			ret.WriteString("  ")
			c.prettyPrint(key, ret, indent+2)
			ret.WriteString(" : ")
			if tstr, ok := key.(*Tstr); ok && slices.Contains(c.redactedKeys, tstr.value) {
				ret.WriteString("<not printed>")
			} else {
				c.prettyPrint(value, ret, indent+2)
			}
			ret.WriteString(",\n" + indentString)
		}
		ret.WriteString("}")
	case *Semantic:
		fmt.Fprintf(ret, "tag %d ", v.tag)
		c.prettyPrint(v.child, ret, indent)
	case *Bool:
		ret.WriteString(strconv.FormatBool(v.value))
	case *Null:
		ret.WriteString("null")
	}
}
