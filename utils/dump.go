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
// Package utils provides helpers shared by the command line tools
package utils

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/blinklabs-io/gocbor/cbor"
)

// DumpValue renders the generic Go value produced by cbor.ToValue as an
// indented tree. Map keys are sorted by their printed form so the output is
// stable.
func DumpValue(data any, prefix string) string {
	var ret bytes.Buffer
	// Add 2 more spaces for nested values
	newPrefix := "  " + prefix
	switch v := data.(type) {
	case uint64, int64:
		return fmt.Sprintf("%s%#x (%d),\n", prefix, v, v)
	case []byte:
		return fmt.Sprintf("%s<bytes> (length %d) %x,\n", prefix, len(v), v)
	case cbor.ByteString:
		return fmt.Sprintf("%s<bytes> (length %d) %s,\n", prefix, len(v.Bytes()), v.String())
	case []any:
		ret.WriteString(prefix + "[\n")
		for _, val := range v {
			ret.WriteString(DumpValue(val, newPrefix))
		}
		ret.WriteString(prefix + "],\n")
	case map[any]any:
		type entry struct {
			key   string
			value any
		}
		entries := make([]entry, 0, len(v))
		for key, val := range v {
			entries = append(entries, entry{key: fmt.Sprintf("%v", key), value: val})
		}
		slices.SortFunc(entries, func(a, b entry) int {
			return bytes.Compare([]byte(a.key), []byte(b.key))
		})
		ret.WriteString(prefix + "{\n")
		for _, e := range entries {
			ret.WriteString(fmt.Sprintf("%s%s =>\n", newPrefix, e.key))
			ret.WriteString(DumpValue(e.value, "  "+newPrefix))
		}
		ret.WriteString(prefix + "},\n")
	case cbor.Tag:
		ret.WriteString(fmt.Sprintf("%stag %d (\n", prefix, v.Number))
		ret.WriteString(DumpValue(v.Content, newPrefix))
		ret.WriteString(prefix + "),\n")
	default:
		return fmt.Sprintf("%s%#v,\n", prefix, v)
	}
	return ret.String()
}
