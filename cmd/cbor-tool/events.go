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
	"log/slog"
	"strings"

	"github.com/blinklabs-io/gocbor/cbor"
	"github.com/blinklabs-io/gocbor/cmd/common"
)

// eventPrinter writes one line per parse event: the header, value and end
// offsets followed by a description indented by nesting depth. Offsets are
// shifted by base so they index the whole input of a sequence.
type eventPrinter struct {
	w     io.Writer
	base  int
	depth int
	err   error
}

func (p *eventPrinter) print(hdrBegin int, valueBegin int, end int, desc string) {
	fmt.Fprintf(
		p.w,
		"%6d %6d %6d  %s%s\n",
		p.base+hdrBegin,
		p.base+valueBegin,
		p.base+end,
		strings.Repeat("  ", p.depth),
		desc,
	)
}

func (p *eventPrinter) Item(item cbor.Item, hdrBegin int, valueBegin int, end int) cbor.ParseClient {
	if compound, ok := item.(cbor.Compound); ok {
		p.print(hdrBegin, valueBegin, end, fmt.Sprintf("%s(%d)", item.Type(), compound.Len()))
		p.depth++
		return p
	}
	p.print(hdrBegin, valueBegin, end, cbor.PrettyPrint(item))
	return p
}

func (p *eventPrinter) ItemEnd(item cbor.Item, hdrBegin int, valueBegin int, end int) cbor.ParseClient {
	p.depth--
	p.print(hdrBegin, valueBegin, end, "end "+item.Type().String())
	return p
}

func (p *eventPrinter) Error(pos int, message string) {
	p.err = fmt.Errorf("parse failed at offset %d: %s", p.base+pos, message)
}

func runEvents(_ *common.GlobalFlags, _ []string, data []byte, w io.Writer) error {
	parser := cbor.NewParser(cbor.WithLogger(slog.Default()))
	fmt.Fprintf(w, "%6s %6s %6s  %s\n", "HDR", "VALUE", "END", "ITEM")
	pos := 0
	for pos < len(data) {
		printer := &eventPrinter{w: w, base: pos}
		n := parser.Parse(data[pos:], printer)
		if printer.err != nil {
			return printer.err
		}
		if n == 0 {
			break
		}
		pos += n
	}
	return nil
}
