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
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

type GlobalFlags struct {
	Flagset  *flag.FlagSet
	Input    string
	Hex      string
	InputHex bool
	Debug    bool
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.Input,
		"input",
		"",
		"file to read CBOR from (defaults to stdin)",
	)
	f.Flagset.StringVar(
		&f.Hex,
		"hex",
		"",
		"hex-encoded CBOR to use instead of reading input",
	)
	f.Flagset.BoolVar(
		&f.InputHex,
		"input-hex",
		false,
		"treat the input file or stdin as hex text rather than raw bytes",
	)
	f.Flagset.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	return f
}

func (f *GlobalFlags) Parse() {
	if err := f.Flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
}

// NewLogger returns a text logger on w, at debug level when -debug is set
func (f *GlobalFlags) NewLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if f.Debug {
		level = slog.LevelDebug
	}
	return slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	)
}
