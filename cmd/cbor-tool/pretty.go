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
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/blinklabs-io/gocbor/cbor"
	"github.com/blinklabs-io/gocbor/cmd/common"
)

type prettyFlags struct {
	flagset     *flag.FlagSet
	maxBstrSize int
	redact      string
}

func newPrettyFlags() *prettyFlags {
	f := &prettyFlags{
		flagset: flag.NewFlagSet("pretty", flag.ContinueOnError),
	}
	f.flagset.IntVar(
		&f.maxBstrSize,
		"max-bstr",
		cbor.DefaultMaxBstrSize,
		"byte strings longer than this are shown as a size and digest",
	)
	f.flagset.StringVar(
		&f.redact,
		"redact",
		"",
		"comma-separated text map keys whose values are not printed",
	)
	return f
}

func runPretty(_ *common.GlobalFlags, args []string, data []byte, w io.Writer) error {
	prettyFlags := newPrettyFlags()
	if err := prettyFlags.flagset.Parse(args); err != nil {
		return fmt.Errorf("failed to parse subcommand args: %w", err)
	}
	options := []cbor.PrettyOption{
		cbor.WithMaxBstrSize(prettyFlags.maxBstrSize),
	}
	if prettyFlags.redact != "" {
		options = append(
			options,
			cbor.WithRedactedKeys(strings.Split(prettyFlags.redact, ",")...),
		)
	}
	out, err := cbor.PrettyPrintEncoded(data, options...)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}
