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
package common

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// LoadInput returns the CBOR selected by the flags: the -hex value, the
// contents of the -input file, or everything on stdin, in that order of
// preference
func LoadInput(f *GlobalFlags, stdin io.Reader) ([]byte, error) {
	if f.Hex != "" {
		return decodeHex([]byte(f.Hex))
	}
	var data []byte
	var err error
	if f.Input != "" {
		data, err = os.ReadFile(f.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
	} else {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
	}
	if f.InputHex {
		return decodeHex(data)
	}
	return data, nil
}

func decodeHex(data []byte) ([]byte, error) {
	// Allow whitespace between bytes and a trailing newline
	fields := bytes.Fields(data)
	ret, err := hex.DecodeString(string(bytes.Join(fields, nil)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex input: %w", err)
	}
	return ret, nil
}
