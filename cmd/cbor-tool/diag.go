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
package main

import (
	"fmt"
	"io"

	"github.com/blinklabs-io/gocbor/cbor"
	"github.com/blinklabs-io/gocbor/cmd/common"
)

// runDiag prints each item in the input in RFC 8949 diagnostic notation
func runDiag(_ *common.GlobalFlags, _ []string, data []byte, w io.Writer) error {
	items, err := cbor.ParseSequence(data)
	if err != nil {
		return err
	}
	for _, item := range items {
		diag, err := cbor.Diagnose(item)
		if err != nil {
			return fmt.Errorf("failed to generate diagnostic notation: %w", err)
		}
		fmt.Fprintln(w, diag)
	}
	return nil
}
