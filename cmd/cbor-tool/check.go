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
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/gocbor/cbor"
	"github.com/blinklabs-io/gocbor/cmd/common"
)

var errNotCanonical = errors.New("input does not match its re-encoding")

type checkResult struct {
	itemSize  int
	trailing  int
	reencoded []byte
}

func checkEncoding(data []byte) (*checkResult, error) {
	parser := cbor.NewParser(cbor.WithLogger(slog.Default()))
	item, n, err := parser.ParseItem(data)
	if err != nil {
		return nil, err
	}
	return &checkResult{
		itemSize:  n,
		trailing:  len(data) - n,
		reencoded: cbor.Encode(item),
	}, nil
}

// runCheck parses the first item in the input, re-encodes it and compares the
// result byte for byte. Only minimally-encoded input passes.
func runCheck(_ *common.GlobalFlags, _ []string, data []byte, w io.Writer) error {
	result, err := checkEncoding(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "item size: %d byte(s)\n", result.itemSize)
	if result.trailing > 0 {
		fmt.Fprintf(w, "trailing data: %d byte(s)\n", result.trailing)
	}
	if !bytes.Equal(data[:result.itemSize], result.reencoded) {
		fmt.Fprintf(w, "re-encoded: %x\n", result.reencoded)
		return errNotCanonical
	}
	fmt.Fprintln(w, "re-encoding matches input")
	return nil
}
