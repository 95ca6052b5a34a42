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
	"io"

	"github.com/blinklabs-io/gocbor/cbor"
	"github.com/blinklabs-io/gocbor/cmd/common"
	"github.com/blinklabs-io/gocbor/utils"
)

// runValue prints the generic Go value that github.com/fxamacker/cbor/v2
// would decode the first item into
func runValue(_ *common.GlobalFlags, _ []string, data []byte, w io.Writer) error {
	item, _, err := cbor.ParseItem(data)
	if err != nil {
		return err
	}
	value, err := cbor.ToValue(item)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, utils.DumpValue(value, ""))
	return err
}
